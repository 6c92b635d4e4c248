package ast

import "github.com/vexlang/vexc/internal/srcpos"

// VariableExpression is the closed set of value-producing expression
// shapes: literals, identifier references, member access, a function call
// used as a value, unary and binary logical/arithmetic combination, and
// parenthesized grouping.
type VariableExpression interface {
	Pos() srcpos.Position
	isVariableExpression()
}

type NumberLiteral struct {
	Position srcpos.Position
	Value    float64
}

func (n *NumberLiteral) Pos() srcpos.Position { return n.Position }
func (*NumberLiteral) isVariableExpression()  {}

type StringLiteral struct {
	Position srcpos.Position
	Value    string
}

func (n *StringLiteral) Pos() srcpos.Position { return n.Position }
func (*StringLiteral) isVariableExpression()  {}

type BooleanLiteral struct {
	Position srcpos.Position
	Value    bool
}

func (n *BooleanLiteral) Pos() srcpos.Position { return n.Position }
func (*BooleanLiteral) isVariableExpression()  {}

type UndefinedLiteral struct{ Position srcpos.Position }

func (n *UndefinedLiteral) Pos() srcpos.Position { return n.Position }
func (*UndefinedLiteral) isVariableExpression()  {}

type NullLiteral struct{ Position srcpos.Position }

func (n *NullLiteral) Pos() srcpos.Position { return n.Position }
func (*NullLiteral) isVariableExpression()  {}

type NaNLiteral struct{ Position srcpos.Position }

func (n *NaNLiteral) Pos() srcpos.Position { return n.Position }
func (*NaNLiteral) isVariableExpression()  {}

type InfinityLiteral struct{ Position srcpos.Position }

func (n *InfinityLiteral) Pos() srcpos.Position { return n.Position }
func (*InfinityLiteral) isVariableExpression()  {}

// Property is one link of a member access chain: either `.name` (Computed
// == false, Key holds the literal name) or `[expr]` (Computed == true, Key
// holds the index/key expression). A dotted link may additionally be a
// method call - `.name(args)` - in which case IsCall is true and Args holds
// the call's argument list. Next continues the chain, or is nil at its end.
type Property struct {
	Position srcpos.Position
	Computed bool
	Name     string
	Key      VariableExpression
	IsCall   bool
	Args     []VariableExpression
	Next     *Property
}

// MemberExpression roots a (possibly empty) Property chain at an
// identifier: `name`, `name.prop`, `name[0].prop`, to arbitrary depth.
type MemberExpression struct {
	Position srcpos.Position
	Root     string
	Property *Property
}

func (n *MemberExpression) Pos() srcpos.Position { return n.Position }
func (*MemberExpression) isVariableExpression()  {}

// FunctionCallValue is a function call used where a value is expected,
// e.g. `f(x) + 1`.
type FunctionCallValue struct {
	Position srcpos.Position
	Name     string
	Args     []VariableExpression
}

func (n *FunctionCallValue) Pos() srcpos.Position { return n.Position }
func (*FunctionCallValue) isVariableExpression()  {}

// ObjectExpression is an object literal `{ key: value, ... }`.
type ObjectExpression struct {
	Position   srcpos.Position
	Properties []ObjectProperty
}

type ObjectProperty struct {
	Key   string
	Value VariableExpression
}

func (n *ObjectExpression) Pos() srcpos.Position { return n.Position }
func (*ObjectExpression) isVariableExpression()  {}

// ArrayExpression is an array literal `[a, b, c]`.
type ArrayExpression struct {
	Position srcpos.Position
	Elements []VariableExpression
}

func (n *ArrayExpression) Pos() srcpos.Position { return n.Position }
func (*ArrayExpression) isVariableExpression()  {}

// UnaryOp identifies the operator of a UnaryExpression.
type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
)

// UnaryExpression applies a prefix operator to an operand: `!a`, `-a`.
type UnaryExpression struct {
	Position srcpos.Position
	Op       UnaryOp
	Operand  VariableExpression
}

func (n *UnaryExpression) Pos() srcpos.Position { return n.Position }
func (*UnaryExpression) isVariableExpression()  {}

// BinaryOp identifies the operator of a BinaryExpression.
type BinaryOp int

const (
	BinaryAnd BinaryOp = iota
	BinaryOr
	BinaryEq
	BinaryNe
	BinarySEq
	BinarySNe
	BinaryGt
	BinaryGe
	BinaryLt
	BinaryLe
	BinaryAdd
	BinarySub
	BinaryMul
	BinaryDiv
)

// BinaryExpression combines two operands with a logical or arithmetic
// operator. Evaluation is eager (not short-circuiting) for && and || - see
// internal/lowering.
type BinaryExpression struct {
	Position srcpos.Position
	Op       BinaryOp
	Left     VariableExpression
	Right    VariableExpression
}

func (n *BinaryExpression) Pos() srcpos.Position { return n.Position }
func (*BinaryExpression) isVariableExpression()  {}

// Grouping is a parenthesized sub-expression, kept as its own node (rather
// than discarded at parse time) so a pretty-printer of the surface AST can
// round trip the source's explicit grouping. The resolver drops it, so the
// Resolved IR and its JSON dump carry no grouping node.
type Grouping struct {
	Position srcpos.Position
	Inner    VariableExpression
}

func (n *Grouping) Pos() srcpos.Position { return n.Position }
func (*Grouping) isVariableExpression()  {}
