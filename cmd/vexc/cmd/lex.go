package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/token"
)

var (
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Vex file or expression",
	Long: `Tokenize (lex) a Vex program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
Vex source code is tokenized.

Examples:
  # Tokenize a script file
  vexc lex script.vex

  # Tokenize an inline expression
  vexc lex -e "var x = 42;"

  # Show token kinds and positions
  vexc lex --show-type --show-pos script.vex

  # Show only illegal tokens
  vexc lex --only-errors script.vex`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	addEvalFlag(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	reader := lexer.NewTokenReader(input)

	tokenCount := 0
	errorCount := 0

	for {
		tok, lexErr := reader.NextToken()
		if lexErr != nil {
			errorCount++
			printDiagnostic(lexErr, input, filename)
			break
		}

		if onlyErrors {
			if tok.Kind == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		printToken(tok)

		if tok.Kind == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errorCount)
	}
	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind)
	}
	output += fmt.Sprintf(" %s", tok)

	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}

	fmt.Println(output)
}
