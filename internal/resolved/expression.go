package resolved

import "github.com/vexlang/vexc/internal/ast"

// Expression is the closed set of resolved value-producing nodes. There is
// no resolved counterpart of ast.Grouping: parentheses only ever affected
// parse-time precedence, so the resolver unwraps them and carries the
// inner expression straight through.
type Expression interface{ isExpression() }

type NumberLiteral struct{ Value float64 }

func (*NumberLiteral) isExpression() {}

type StringLiteral struct{ Value string }

func (*StringLiteral) isExpression() {}

type BooleanLiteral struct{ Value bool }

func (*BooleanLiteral) isExpression() {}

type UndefinedLiteral struct{}

func (*UndefinedLiteral) isExpression() {}

type NullLiteral struct{}

func (*NullLiteral) isExpression() {}

type NaNLiteral struct{}

func (*NaNLiteral) isExpression() {}

type InfinityLiteral struct{}

func (*InfinityLiteral) isExpression() {}

// Property mirrors ast.Property with its Key resolved: a recursive,
// arbitrary-depth link of a member access chain. A dotted link with IsCall
// set is a method call, and Args holds its resolved argument list.
type Property struct {
	Computed bool
	Name     string
	Key      Expression
	IsCall   bool
	Args     []Expression
	Next     *Property
}

// MemberExpression roots a (possibly empty) resolved Property chain at a
// resolved identifier binding.
type MemberExpression struct {
	Root     Identifier
	Property *Property
}

func (*MemberExpression) isExpression() {}

// FunctionCallValue is a function call used where a value is expected.
type FunctionCallValue struct {
	Name Identifier
	Args []Expression
}

func (*FunctionCallValue) isExpression() {}

type ObjectProperty struct {
	Key   string
	Value Expression
}

type ObjectExpression struct{ Properties []ObjectProperty }

func (*ObjectExpression) isExpression() {}

type ArrayExpression struct{ Elements []Expression }

func (*ArrayExpression) isExpression() {}

// UnaryExpression reuses ast.UnaryOp: the operator set does not change
// between the surface and resolved trees, only the operand's identifiers
// do.
type UnaryExpression struct {
	Op      ast.UnaryOp
	Operand Expression
}

func (*UnaryExpression) isExpression() {}

// BinaryExpression reuses ast.BinaryOp for the same reason. Evaluation is
// eager, non-short-circuiting for BinaryAnd/BinaryOr - see internal/lowering.
type BinaryExpression struct {
	Op    ast.BinaryOp
	Left  Expression
	Right Expression
}

func (*BinaryExpression) isExpression() {}
