package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/internal/compiler"
	"github.com/vexlang/vexc/internal/irdump"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Resolve Vex source into Resolved IR and print it as JSON",
	Long: `Parse and resolve Vex source, then print the Resolved IR: the
generation-indexed form produced once every variable and function
reference has been bound to a declaration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addEvalFlag(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := compiler.Compile(filename, input, cfg)
	if err != nil {
		printDiagnostic(err, input, filename)
		return fmt.Errorf("resolving failed")
	}

	doc, err := irdump.Dump(result.Module)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	fmt.Println(doc)
	return nil
}
