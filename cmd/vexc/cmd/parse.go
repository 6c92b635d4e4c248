package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Vex source code and display the surface AST",
	Long: `Parse Vex source code and dump the surface Abstract Syntax Tree,
the shape source text takes before name resolution runs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addEvalFlag(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	mod, err := parser.Parse(filename, input)
	if err != nil {
		printDiagnostic(err, input, filename)
		return fmt.Errorf("parsing failed")
	}

	fmt.Printf("Module %q (%d statements)\n", mod.Name, len(mod.Body))
	for _, stmt := range mod.Body {
		dumpASTNode(stmt, 1)
	}
	return nil
}

func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.FunctionDeclaration:
		fmt.Printf("%sFunctionDeclaration %s(%v)\n", pad, n.Name, n.Args)
		for _, stmt := range n.Body.Body {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.FunctionCall:
		fmt.Printf("%sFunctionCall %s\n", pad, n.Name)
		for _, arg := range n.Args {
			dumpASTNode(arg, indent+1)
		}
	case *ast.VariableDeclaration:
		kw := "var"
		if n.Let {
			kw = "let"
		}
		fmt.Printf("%sVariableDeclaration (%s) %s\n", pad, kw, n.Name)
		if n.Right != nil {
			dumpASTNode(n.Right, indent+1)
		}
	case *ast.VariableAssignment:
		fmt.Printf("%sVariableAssignment\n", pad)
		dumpASTNode(n.Left, indent+1)
		if n.Right != nil {
			dumpASTNode(n.Right, indent+1)
		}
	case *ast.BlockStatement:
		fmt.Printf("%sBlockStatement (%d statements)\n", pad, len(n.Body))
		for _, stmt := range n.Body {
			dumpASTNode(stmt, indent+1)
		}
	case *ast.IfElseStatement:
		fmt.Printf("%sIfElseStatement\n", pad)
		fmt.Printf("%s  Condition:\n", pad)
		dumpASTNode(n.Condition, indent+2)
		fmt.Printf("%s  Then:\n", pad)
		dumpASTNode(n.IfClause, indent+2)
		fmt.Printf("%s  Else:\n", pad)
		dumpASTNode(n.ElseClause, indent+2)
	case *ast.WhileLoop:
		fmt.Printf("%sWhileLoop\n", pad)
		dumpASTNode(n.Condition, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.DoWhileLoop:
		fmt.Printf("%sDoWhileLoop\n", pad)
		dumpASTNode(n.Body, indent+1)
		dumpASTNode(n.Condition, indent+1)
	case *ast.ReturnStatement:
		fmt.Printf("%sReturnStatement\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.MemberExpression:
		fmt.Printf("%sMemberExpression root=%s\n", pad, n.Root)
		for p := n.Property; p != nil; p = p.Next {
			switch {
			case p.Computed:
				fmt.Printf("%s  [computed]\n", pad)
				dumpASTNode(p.Key, indent+2)
			case p.IsCall:
				fmt.Printf("%s  .%s(...)\n", pad, p.Name)
				for _, arg := range p.Args {
					dumpASTNode(arg, indent+2)
				}
			default:
				fmt.Printf("%s  .%s\n", pad, p.Name)
			}
		}
	case *ast.FunctionCallValue:
		fmt.Printf("%sFunctionCallValue %s\n", pad, n.Name)
		for _, arg := range n.Args {
			dumpASTNode(arg, indent+1)
		}
	case *ast.ObjectExpression:
		fmt.Printf("%sObjectExpression (%d properties)\n", pad, len(n.Properties))
		for _, prop := range n.Properties {
			fmt.Printf("%s  %s:\n", pad, prop.Key)
			dumpASTNode(prop.Value, indent+2)
		}
	case *ast.ArrayExpression:
		fmt.Printf("%sArrayExpression (%d elements)\n", pad, len(n.Elements))
		for _, el := range n.Elements {
			dumpASTNode(el, indent+1)
		}
	case *ast.UnaryExpression:
		fmt.Printf("%sUnaryExpression (%s)\n", pad, unaryOpName(n.Op))
		dumpASTNode(n.Operand, indent+1)
	case *ast.BinaryExpression:
		fmt.Printf("%sBinaryExpression (%s)\n", pad, binaryOpName(n.Op))
		dumpASTNode(n.Left, indent+1)
		dumpASTNode(n.Right, indent+1)
	case *ast.Grouping:
		dumpASTNode(n.Inner, indent)
	case *ast.NumberLiteral:
		fmt.Printf("%sNumberLiteral: %g\n", pad, n.Value)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral: %q\n", pad, n.Value)
	case *ast.BooleanLiteral:
		fmt.Printf("%sBooleanLiteral: %v\n", pad, n.Value)
	case *ast.UndefinedLiteral:
		fmt.Printf("%sUndefinedLiteral\n", pad)
	case *ast.NullLiteral:
		fmt.Printf("%sNullLiteral\n", pad)
	case *ast.NaNLiteral:
		fmt.Printf("%sNaNLiteral\n", pad)
	case *ast.InfinityLiteral:
		fmt.Printf("%sInfinityLiteral\n", pad)
	default:
		fmt.Printf("%s%T: %v\n", pad, node, node)
	}
}

func unaryOpName(op ast.UnaryOp) string {
	switch op {
	case ast.UnaryNot:
		return "!"
	case ast.UnaryNeg:
		return "-"
	default:
		return "?"
	}
}

func binaryOpName(op ast.BinaryOp) string {
	switch op {
	case ast.BinaryAnd:
		return "&&"
	case ast.BinaryOr:
		return "||"
	case ast.BinaryEq:
		return "=="
	case ast.BinaryNe:
		return "!="
	case ast.BinarySEq:
		return "==="
	case ast.BinarySNe:
		return "!=="
	case ast.BinaryGt:
		return ">"
	case ast.BinaryGe:
		return ">="
	case ast.BinaryLt:
		return "<"
	case ast.BinaryLe:
		return "<="
	case ast.BinaryAdd:
		return "+"
	case ast.BinarySub:
		return "-"
	case ast.BinaryMul:
		return "*"
	case ast.BinaryDiv:
		return "/"
	default:
		return "?"
	}
}
