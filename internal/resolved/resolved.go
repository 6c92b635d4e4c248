// Package resolved defines the Resolved IR: the shape a surface AST
// (internal/ast) takes after internal/resolver has walked it. Every name
// has become an Identifier carrying a generation index, function
// declarations have been hoisted out of the statement sequence they were
// written in, and syntactic-only nodes (parenthesized grouping) are gone.
package resolved

import "fmt"

// Identifier is a name together with the generation it was bound at -
// the disambiguator that makes shadowing and redeclaration unambiguous
// once block scoping itself is erased.
type Identifier struct {
	Name       string
	Generation uint32
}

func (id Identifier) String() string {
	return fmt.Sprintf("%s#%d", id.Name, id.Generation)
}

// Module is a fully resolved source file: its top-level statement
// sequence, plus every function declaration encountered anywhere in it
// (hoisted, flat, never scoped).
type Module struct {
	Name      string
	Body      []Statement
	Functions []*FunctionDeclaration
}

// Statement is the closed set of resolved statement-level nodes.
type Statement interface{ isStatement() }

// FunctionDeclaration is hoisted out of wherever it was declared; its
// Name binding's scope (tracked during resolution, not here) may have
// since been popped, but the declaration itself lives on in Module.Functions
// regardless.
type FunctionDeclaration struct {
	Name Identifier
	Args []Identifier
	Body *BlockStatement
}

// FunctionCall used as a statement.
type FunctionCall struct {
	Name Identifier
	Args []Expression
}

func (*FunctionCall) isStatement() {}

// VariableDeclaration binds Name to Value (or to an implicit Undefined,
// when Value is nil) in the current scope.
type VariableDeclaration struct {
	Name  Identifier
	Value Expression
}

func (*VariableDeclaration) isStatement() {}

// VariableAssignment stores Value into Left. A nil Value marks a bare
// reference statement (`target;`): Left is evaluated for its side effects
// and nothing is stored.
type VariableAssignment struct {
	Left  *MemberExpression
	Value Expression
}

func (*VariableAssignment) isStatement() {}

// BlockStatement is a resolved `{ ... }` sequence.
type BlockStatement struct {
	Body []Statement
}

func (*BlockStatement) isStatement() {}

// IfElseStatement always has a non-nil ElseClause; an absent `else`
// resolves to an empty block rather than a nil one.
type IfElseStatement struct {
	Condition  Expression
	IfClause   *BlockStatement
	ElseClause *BlockStatement
}

func (*IfElseStatement) isStatement() {}

type WhileLoop struct {
	Condition Expression
	Body      *BlockStatement
}

func (*WhileLoop) isStatement() {}

type DoWhileLoop struct {
	Body      *BlockStatement
	Condition Expression
}

func (*DoWhileLoop) isStatement() {}

// ReturnStatement carries a nil Value for a bare `return;`.
type ReturnStatement struct {
	Value Expression
}

func (*ReturnStatement) isStatement() {}
