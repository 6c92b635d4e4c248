package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is overwritten by build flags at release time.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "vexc",
	Short: "Vex ahead-of-time compiler",
	Long: `vexc lexes, parses, and resolves Vex source into Resolved IR, and
can lower that IR onto the Runtime Value ABI for inspection.

Vex is a small JavaScript-like dynamic scripting language; vexc is an
ahead-of-time frontend for it, not an interpreter.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".vexc.yaml", "path to compiler configuration")
}
