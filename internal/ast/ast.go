// Package ast defines the surface abstract syntax tree: the shape source
// text takes immediately after parsing, before any name resolution has
// happened. Every node still carries source identifiers as plain strings;
// internal/resolver is what turns those into generation-indexed names.
package ast

import "github.com/vexlang/vexc/internal/srcpos"

// Module is the root of a parsed source file: an ordered list of
// top-level statements.
type Module struct {
	Name string
	Body []Expression
}

// Expression is the closed set of statement-level constructs: variable and
// function declarations, assignments, calls used as statements, control
// flow, and return. (Despite the name, these are statements; the original
// implementation this is grounded on calls the whole statement grammar
// "Expression" and separately has "VariableExpression" for the value
// grammar, so the naming is kept to avoid a spurious departure from that
// shape.)
type Expression interface {
	Pos() srcpos.Position
	isExpression()
}

// FunctionDeclaration is `function name(arg1, arg2) { ...body }`.
type FunctionDeclaration struct {
	Position srcpos.Position
	Name     string
	Args     []string
	Body     *BlockStatement
}

func (n *FunctionDeclaration) Pos() srcpos.Position { return n.Position }
func (*FunctionDeclaration) isExpression()          {}

// FunctionCall used as a statement: `foo(a, b);`.
type FunctionCall struct {
	Position srcpos.Position
	Name     string
	Args     []VariableExpression
}

func (n *FunctionCall) Pos() srcpos.Position { return n.Position }
func (*FunctionCall) isExpression()          {}

// VariableDeclaration is `var name = value;` or `let name = value;`. A bare
// `var name;` is represented with Right == nil.
type VariableDeclaration struct {
	Position srcpos.Position
	Let      bool
	Name     string
	Right    VariableExpression
}

func (n *VariableDeclaration) Pos() srcpos.Position { return n.Position }
func (*VariableDeclaration) isExpression()          {}

// VariableAssignment is `target = value;`, or a bare reference statement
// `target;` when Right is nil (the left-hand side must still resolve, and
// its evaluation - e.g. a function call nested in a member chain - still
// happens, even though the result is discarded).
type VariableAssignment struct {
	Position srcpos.Position
	Left     *MemberExpression
	Right    VariableExpression
}

func (n *VariableAssignment) Pos() srcpos.Position { return n.Position }
func (*VariableAssignment) isExpression()          {}

// BlockStatement is a `{ ... }`-delimited sequence of statements.
type BlockStatement struct {
	Position srcpos.Position
	Body     []Expression
}

func (n *BlockStatement) Pos() srcpos.Position { return n.Position }
func (*BlockStatement) isExpression()          {}

// IfElseStatement is `if (cond) {...} else {...}`. ElseClause has an empty
// Body when no `else` was written.
type IfElseStatement struct {
	Position   srcpos.Position
	Condition  VariableExpression
	IfClause   *BlockStatement
	ElseClause *BlockStatement
}

func (n *IfElseStatement) Pos() srcpos.Position { return n.Position }
func (*IfElseStatement) isExpression()          {}

// WhileLoop is `while (cond) { ... }`.
type WhileLoop struct {
	Position  srcpos.Position
	Condition VariableExpression
	Body      *BlockStatement
}

func (n *WhileLoop) Pos() srcpos.Position { return n.Position }
func (*WhileLoop) isExpression()          {}

// DoWhileLoop is `do { ... } while (cond);`.
type DoWhileLoop struct {
	Position  srcpos.Position
	Body      *BlockStatement
	Condition VariableExpression
}

func (n *DoWhileLoop) Pos() srcpos.Position { return n.Position }
func (*DoWhileLoop) isExpression()          {}

// ReturnStatement is `return value;` or a bare `return;` (Value == nil).
type ReturnStatement struct {
	Position srcpos.Position
	Value    VariableExpression
}

func (n *ReturnStatement) Pos() srcpos.Position { return n.Position }
func (*ReturnStatement) isExpression()          {}
