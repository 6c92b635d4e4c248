package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/internal/compiler"
	"github.com/vexlang/vexc/internal/config"
)

var (
	emitFormat string
	emitTrace  bool
)

var emitCmd = &cobra.Command{
	Use:   "emit [file]",
	Short: "Run the full compile pipeline and emit its output",
	Long: `Run the full vexc pipeline - parse, resolve, and optionally lower
onto the Runtime Value ABI - and print whichever artifact --format
selects.

The compiler configuration loaded via --config supplies defaults for
--format and --trace; flags explicitly set on the command line win.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEmit,
}

func init() {
	rootCmd.AddCommand(emitCmd)
	addEvalFlag(emitCmd)
	emitCmd.Flags().StringVar(&emitFormat, "format", "", "emit format: resolved-ir or trace (default from config)")
	emitCmd.Flags().BoolVar(&emitTrace, "trace", false, "lower the Resolved IR onto the reference ABI trace")
}

func runEmit(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("format") {
		cfg.Emit = config.EmitFormat(emitFormat)
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = emitTrace
	}
	if cfg.Emit == config.EmitTrace {
		cfg.Trace = true
	}

	result, err := compiler.Compile(filename, input, cfg)
	if err != nil {
		printDiagnostic(err, input, filename)
		return fmt.Errorf("compiling failed")
	}

	out, err := compiler.Emit(result, cfg)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}
