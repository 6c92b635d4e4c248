package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/internal/config"
	"github.com/vexlang/vexc/internal/diag"
)

var evalExpr string

// readInput resolves a subcommand's source: either -e/--eval inline code,
// or the single positional file argument. It never reads both.
func readInput(args []string) (src, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("provide a file path or use -e/--eval for inline code")
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func addEvalFlag(c *cobra.Command) {
	c.Flags().StringVarP(&evalExpr, "eval", "e", "", "compile inline code instead of reading a file")
}

// printDiagnostic renders err to stderr. If err carries a source position
// (lexer, parser, and resolver errors all do), it is rendered with
// file:line:col, the offending source line, and a caret; otherwise it is
// printed as a bare message.
func printDiagnostic(err error, source, filename string) {
	var positioned diag.Positioned
	if errors.As(err, &positioned) {
		fmt.Fprint(os.Stderr, diag.New(positioned, source, filename).Format(true))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
