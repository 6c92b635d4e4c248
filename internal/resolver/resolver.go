// Package resolver walks a surface AST (internal/ast) top-down and
// produces Resolved IR (internal/resolved): every identifier gains a
// generation index, function declarations are hoisted into a flat list,
// and block scoping is modeled by capturing and restoring container
// lengths rather than by an explicit scope-stack structure.
package resolver

import (
	"fmt"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/container"
	"github.com/vexlang/vexc/internal/resolved"
)

// DefaultPredefinedFunctions returns the builtin function names seeded
// into every Resolver unless the caller supplies its own set: print,
// assert and assert_eq are the runtime's own special-cased builtins; len
// and type_of are added so a resolver with a usable default set can
// exercise member and array access meaningfully on its own.
func DefaultPredefinedFunctions() []string {
	return []string{"print", "assert", "assert_eq", "len", "type_of"}
}

// Resolver holds the state threaded through a single module's resolution
// walk. Its zero value is not usable; construct with New.
type Resolver struct {
	variables             *container.OrderedSet[string]
	functions             *container.OrderedSet[string]
	functionDeclarations []*resolved.FunctionDeclaration
}

// New returns a Resolver with predefinedFunctions already bound as
// function names, ahead of any user code.
func New(predefinedFunctions []string) *Resolver {
	r := &Resolver{
		variables: container.NewOrderedSet[string](),
		functions: container.NewOrderedSet[string](),
	}
	for _, name := range predefinedFunctions {
		r.functions.Insert(name)
	}
	return r
}

// Resolve runs a fresh Resolver seeded with predefinedFunctions over mod.
func Resolve(mod *ast.Module, predefinedFunctions []string) (*resolved.Module, error) {
	r := New(predefinedFunctions)
	body, err := r.resolveStatements(mod.Body)
	if err != nil {
		return nil, err
	}
	return &resolved.Module{Name: mod.Name, Body: body, Functions: r.functionDeclarations}, nil
}

func (r *Resolver) resolveStatements(stmts []ast.Expression) ([]resolved.Statement, error) {
	var out []resolved.Statement
	for _, stmt := range stmts {
		rs, err := r.resolveStatement(stmt)
		if err != nil {
			return nil, err
		}
		if rs != nil {
			out = append(out, rs)
		}
	}
	return out, nil
}

// resolveStatement returns a nil Statement (with a nil error) for a
// FunctionDeclaration: its body has been appended to r.functionDeclarations
// as a side effect, and it leaves no trace in the enclosing statement
// sequence.
func (r *Resolver) resolveStatement(e ast.Expression) (resolved.Statement, error) {
	switch n := e.(type) {
	case *ast.VariableDeclaration:
		return r.resolveVariableDeclaration(n)
	case *ast.FunctionDeclaration:
		return nil, r.resolveFunctionDeclaration(n)
	case *ast.FunctionCall:
		return r.resolveFunctionCall(n)
	case *ast.VariableAssignment:
		return r.resolveVariableAssignment(n)
	case *ast.BlockStatement:
		return r.resolveBlockStatement(n)
	case *ast.IfElseStatement:
		return r.resolveIfElseStatement(n)
	case *ast.WhileLoop:
		return r.resolveWhileLoop(n)
	case *ast.DoWhileLoop:
		return r.resolveDoWhileLoop(n)
	case *ast.ReturnStatement:
		return r.resolveReturnStatement(n)
	default:
		return nil, fmt.Errorf("resolver: unhandled statement %T", e)
	}
}

func (r *Resolver) resolveVariableDeclaration(n *ast.VariableDeclaration) (resolved.Statement, error) {
	value, err := r.resolveOptionalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	gen := r.variables.Insert(n.Name)
	return &resolved.VariableDeclaration{
		Name:  resolved.Identifier{Name: n.Name, Generation: gen},
		Value: value,
	}, nil
}

// resolveFunctionDeclaration binds the function's own name as a
// block-scoped entry in r.functions - it is rolled back on the enclosing
// block's exit exactly like a variable would be - while appending the
// resolved body to r.functionDeclarations, which is never truncated. A
// nested function is therefore visible only within the block it was
// declared in, but its compiled body outlives that scope.
func (r *Resolver) resolveFunctionDeclaration(n *ast.FunctionDeclaration) error {
	gen := r.functions.Insert(n.Name)
	name := resolved.Identifier{Name: n.Name, Generation: gen}

	variablesLen := r.variables.Len()
	args := make([]resolved.Identifier, len(n.Args))
	for i, argName := range n.Args {
		argGen := r.variables.Insert(argName)
		args[i] = resolved.Identifier{Name: argName, Generation: argGen}
	}
	body, err := r.resolveBlockStatement(n.Body)
	if err != nil {
		return err
	}
	r.variables.RemoveLastAdded(r.variables.Len() - variablesLen)

	r.functionDeclarations = append(r.functionDeclarations, &resolved.FunctionDeclaration{
		Name: name,
		Args: args,
		Body: body,
	})
	return nil
}

func (r *Resolver) resolveFunctionCall(n *ast.FunctionCall) (resolved.Statement, error) {
	gen, ok := r.functions.CurrentGeneration(n.Name)
	if !ok {
		return nil, &UndefinedFunctionError{Name: n.Name, Pos: n.Position}
	}
	args, err := r.resolveExprList(n.Args)
	if err != nil {
		return nil, err
	}
	return &resolved.FunctionCall{Name: resolved.Identifier{Name: n.Name, Generation: gen}, Args: args}, nil
}

func (r *Resolver) resolveVariableAssignment(n *ast.VariableAssignment) (resolved.Statement, error) {
	if n.Right != nil {
		if last := lastPropertyLink(n.Left.Property); last != nil && last.IsCall {
			return nil, &InvalidAssignmentTargetError{Pos: n.Position}
		}
	}
	left, err := r.resolveMemberExpression(n.Left)
	if err != nil {
		return nil, err
	}
	value, err := r.resolveOptionalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	return &resolved.VariableAssignment{Left: left, Value: value}, nil
}

// resolveBlockStatement captures the variable and function container
// lengths on entry and restores both on exit, so any name declared inside
// the block - including a nested function's own name binding - stops
// being visible once the block ends.
func (r *Resolver) resolveBlockStatement(n *ast.BlockStatement) (*resolved.BlockStatement, error) {
	variablesLen := r.variables.Len()
	functionsLen := r.functions.Len()

	body, err := r.resolveStatements(n.Body)
	if err != nil {
		return nil, err
	}

	r.variables.RemoveLastAdded(r.variables.Len() - variablesLen)
	r.functions.RemoveLastAdded(r.functions.Len() - functionsLen)
	return &resolved.BlockStatement{Body: body}, nil
}

func (r *Resolver) resolveIfElseStatement(n *ast.IfElseStatement) (resolved.Statement, error) {
	cond, err := r.resolveExpr(n.Condition)
	if err != nil {
		return nil, err
	}
	ifClause, err := r.resolveBlockStatement(n.IfClause)
	if err != nil {
		return nil, err
	}
	elseClause, err := r.resolveBlockStatement(n.ElseClause)
	if err != nil {
		return nil, err
	}
	return &resolved.IfElseStatement{Condition: cond, IfClause: ifClause, ElseClause: elseClause}, nil
}

func (r *Resolver) resolveWhileLoop(n *ast.WhileLoop) (resolved.Statement, error) {
	cond, err := r.resolveExpr(n.Condition)
	if err != nil {
		return nil, err
	}
	body, err := r.resolveBlockStatement(n.Body)
	if err != nil {
		return nil, err
	}
	return &resolved.WhileLoop{Condition: cond, Body: body}, nil
}

func (r *Resolver) resolveDoWhileLoop(n *ast.DoWhileLoop) (resolved.Statement, error) {
	body, err := r.resolveBlockStatement(n.Body)
	if err != nil {
		return nil, err
	}
	cond, err := r.resolveExpr(n.Condition)
	if err != nil {
		return nil, err
	}
	return &resolved.DoWhileLoop{Body: body, Condition: cond}, nil
}

func (r *Resolver) resolveReturnStatement(n *ast.ReturnStatement) (resolved.Statement, error) {
	value, err := r.resolveOptionalExpr(n.Value)
	if err != nil {
		return nil, err
	}
	return &resolved.ReturnStatement{Value: value}, nil
}

func (r *Resolver) resolveMemberExpression(n *ast.MemberExpression) (*resolved.MemberExpression, error) {
	gen, ok := r.variables.CurrentGeneration(n.Root)
	if !ok {
		return nil, &UndefinedVariableError{Name: n.Root, Pos: n.Position}
	}
	prop, err := r.resolveProperty(n.Property)
	if err != nil {
		return nil, err
	}
	return &resolved.MemberExpression{Root: resolved.Identifier{Name: n.Root, Generation: gen}, Property: prop}, nil
}

func (r *Resolver) resolveProperty(p *ast.Property) (*resolved.Property, error) {
	if p == nil {
		return nil, nil
	}
	var key resolved.Expression
	if p.Computed {
		k, err := r.resolveExpr(p.Key)
		if err != nil {
			return nil, err
		}
		key = k
	}
	var args []resolved.Expression
	if p.IsCall {
		a, err := r.resolveExprList(p.Args)
		if err != nil {
			return nil, err
		}
		args = a
	}
	next, err := r.resolveProperty(p.Next)
	if err != nil {
		return nil, err
	}
	return &resolved.Property{Computed: p.Computed, Name: p.Name, Key: key, IsCall: p.IsCall, Args: args, Next: next}, nil
}

// lastPropertyLink walks to the final link of a surface property chain, or
// returns nil for a bare root reference with no links at all.
func lastPropertyLink(p *ast.Property) *ast.Property {
	if p == nil {
		return nil
	}
	for p.Next != nil {
		p = p.Next
	}
	return p
}

func (r *Resolver) resolveOptionalExpr(e ast.VariableExpression) (resolved.Expression, error) {
	if e == nil {
		return nil, nil
	}
	return r.resolveExpr(e)
}

func (r *Resolver) resolveExprList(list []ast.VariableExpression) ([]resolved.Expression, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]resolved.Expression, len(list))
	for i, e := range list {
		v, err := r.resolveExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// resolveExpr lowers grouping away: a Grouping node only ever existed to
// let a value-level pretty-printer round trip source parentheses, and has
// no resolved counterpart.
func (r *Resolver) resolveExpr(e ast.VariableExpression) (resolved.Expression, error) {
	switch n := e.(type) {
	case *ast.NumberLiteral:
		return &resolved.NumberLiteral{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &resolved.StringLiteral{Value: n.Value}, nil
	case *ast.BooleanLiteral:
		return &resolved.BooleanLiteral{Value: n.Value}, nil
	case *ast.UndefinedLiteral:
		return &resolved.UndefinedLiteral{}, nil
	case *ast.NullLiteral:
		return &resolved.NullLiteral{}, nil
	case *ast.NaNLiteral:
		return &resolved.NaNLiteral{}, nil
	case *ast.InfinityLiteral:
		return &resolved.InfinityLiteral{}, nil
	case *ast.MemberExpression:
		return r.resolveMemberExpression(n)
	case *ast.FunctionCallValue:
		gen, ok := r.functions.CurrentGeneration(n.Name)
		if !ok {
			return nil, &UndefinedFunctionError{Name: n.Name, Pos: n.Position}
		}
		args, err := r.resolveExprList(n.Args)
		if err != nil {
			return nil, err
		}
		return &resolved.FunctionCallValue{Name: resolved.Identifier{Name: n.Name, Generation: gen}, Args: args}, nil
	case *ast.ObjectExpression:
		props := make([]resolved.ObjectProperty, len(n.Properties))
		for i, p := range n.Properties {
			v, err := r.resolveExpr(p.Value)
			if err != nil {
				return nil, err
			}
			props[i] = resolved.ObjectProperty{Key: p.Key, Value: v}
		}
		return &resolved.ObjectExpression{Properties: props}, nil
	case *ast.ArrayExpression:
		elems, err := r.resolveExprList(n.Elements)
		if err != nil {
			return nil, err
		}
		return &resolved.ArrayExpression{Elements: elems}, nil
	case *ast.UnaryExpression:
		operand, err := r.resolveExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		return &resolved.UnaryExpression{Op: n.Op, Operand: operand}, nil
	case *ast.BinaryExpression:
		left, err := r.resolveExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.resolveExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &resolved.BinaryExpression{Op: n.Op, Left: left, Right: right}, nil
	case *ast.Grouping:
		return r.resolveExpr(n.Inner)
	default:
		return nil, fmt.Errorf("resolver: unhandled expression %T", e)
	}
}
