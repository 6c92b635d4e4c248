// Package lowering fixes the semantics (not the emission) of turning
// Resolved IR (internal/resolved) into Runtime Value ABI (internal/abi)
// calls: which values are temporaries a caller must deallocate, which are
// borrowed references a caller must leave alone, and the exact
// choreography - argument spilling before a call, eager (non-short-
// circuiting) evaluation of && and ||, typed vs. generic property access
// - a backend must reproduce regardless of what it emits that with.
//
// Driving this package is Lower: it walks a resolved.Module and calls
// Codegen once per primitive operation, owning every is_tmp/deallocate
// decision itself so a Codegen implementation only has to emit the
// operation it's asked for.
package lowering

import (
	"fmt"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/resolved"
)

// Value is a backend-owned handle threaded through a Lower call. Handle is
// opaque to this package. IsTmp records whether Lower considers this
// value owned (it will be passed to Codegen.Deallocate once no longer
// needed) or borrowed (it never will be).
type Value struct {
	Handle any
	IsTmp  bool
}

// Codegen is the primitive-operation surface a backend implements. Lower
// is the only caller that should invoke these methods; a backend never
// decides is_tmp/deallocate timing itself.
type Codegen interface {
	// Literal allocates a fresh runtime value and stores lit into it.
	Literal(lit resolved.Expression) (any, error)

	// LookupVariable returns the storage cell currently bound to id.
	LookupVariable(id resolved.Identifier) (any, error)

	// DeclareVariable allocates a fresh local cell and binds it to id.
	DeclareVariable(id resolved.Identifier) (any, error)

	// Assign stores src into dst.
	Assign(dst, src any) error

	// Deallocate frees a temporary previously produced by this Codegen.
	// Lower only calls this on values it has flagged as owned.
	Deallocate(v any) error

	// Unary applies op to operand, returning a newly allocated result.
	Unary(op ast.UnaryOp, operand any) (any, error)

	// Binary applies op to left and right, returning a newly allocated
	// result. Lower always evaluates both operands first, including for
	// BinaryAnd/BinaryOr - there is no short-circuiting at this level.
	Binary(op ast.BinaryOp, left, right any) (any, error)

	// GetProperty / SetProperty implement one member-access link. key is
	// always a resolved literal or expression; a caller wanting the typed
	// get_property_by_str/by_number/by_boolean dispatch the original ABI
	// exposes inspects key's concrete type.
	GetProperty(object any, key resolved.Expression) (any, error)
	SetProperty(object any, key resolved.Expression, value any) error

	NewObject() (any, error)
	NewArray() (any, error)
	AppendElement(array, value any) error

	// ConvertToBoolean coerces v to its runtime boolean representation;
	// GetBoolean reads the underlying bit of the result. GetBoolean
	// returns a handle to that bit, not a Go bool: an ahead-of-time
	// backend cannot decide at lowering time which way a branch goes, it
	// can only emit an instruction that branches on the bit at run time.
	ConvertToBoolean(v any) (any, error)
	GetBoolean(v any) (any, error)

	// Call invokes a callable - a named function, whose handle is its
	// resolved.Identifier itself (no LookupVariable), or a method value
	// produced by GetProperty -
	// with already-materialized arguments (Lower has already spilled each
	// one through a fresh DeclareVariable/Assign pair per the
	// function-call contract).
	Call(callee any, args []any) (any, error)

	// Branch and Loop are the control-flow hooks a block-structured
	// backend needs. cond/test yield the handle GetBoolean produced, not
	// a resolved direction: a backend is expected to emit code for both
	// then and els (and for body, regardless of what test evaluates to)
	// since the generated program, not the compiler, decides at run time
	// which arm executes.
	Branch(cond any, then, els func() error) error
	Loop(test func() (any, error), body func() error) error

	EnterFunction(decl *resolved.FunctionDeclaration) error
	ExitFunction(decl *resolved.FunctionDeclaration) error
	Return(v any) error
}

// Lower runs every top-level statement and hoisted function declaration
// in mod through cg.
func Lower(mod *resolved.Module, cg Codegen) error {
	for _, fn := range mod.Functions {
		if err := lowerFunction(fn, cg); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	return lowerStatements(mod.Body, cg)
}

func lowerFunction(fn *resolved.FunctionDeclaration, cg Codegen) error {
	if err := cg.EnterFunction(fn); err != nil {
		return err
	}
	if err := lowerStatements(fn.Body.Body, cg); err != nil {
		return err
	}
	return cg.ExitFunction(fn)
}

func lowerStatements(stmts []resolved.Statement, cg Codegen) error {
	for _, stmt := range stmts {
		if err := lowerStatement(stmt, cg); err != nil {
			return err
		}
	}
	return nil
}

func lowerStatement(stmt resolved.Statement, cg Codegen) error {
	switch n := stmt.(type) {
	case *resolved.VariableDeclaration:
		return lowerVariableDeclaration(n, cg)
	case *resolved.VariableAssignment:
		return lowerVariableAssignment(n, cg)
	case *resolved.FunctionCall:
		result, err := lowerCall(Value{Handle: n.Name, IsTmp: false}, n.Args, cg)
		if err != nil {
			return err
		}
		return releaseIfTmp(result, cg)
	case *resolved.BlockStatement:
		return lowerStatements(n.Body, cg)
	case *resolved.IfElseStatement:
		return lowerIfElse(n, cg)
	case *resolved.WhileLoop:
		return lowerWhile(n, cg)
	case *resolved.DoWhileLoop:
		return lowerDoWhile(n, cg)
	case *resolved.ReturnStatement:
		return lowerReturn(n, cg)
	default:
		return fmt.Errorf("lowering: unhandled statement %T", stmt)
	}
}

func lowerVariableDeclaration(n *resolved.VariableDeclaration, cg Codegen) error {
	cell, err := cg.DeclareVariable(n.Name)
	if err != nil {
		return err
	}
	value, err := lowerInitializer(n.Value, cg)
	if err != nil {
		return err
	}
	if err := cg.Assign(cell, value.Handle); err != nil {
		return err
	}
	return releaseIfTmp(value, cg)
}

func lowerVariableAssignment(n *resolved.VariableAssignment, cg Codegen) error {
	// Value == nil means this is a bare reference statement (`target;`
	// with no `=`), not an assignment of Undefined: evaluate the target
	// for its side effects (a trailing method call must still run) and
	// discard the result.
	if n.Value == nil {
		result, err := lowerMemberExpression(n.Left, cg)
		if err != nil {
			return err
		}
		return releaseIfTmp(result, cg)
	}

	value, err := lowerExpr(n.Value, cg)
	if err != nil {
		return err
	}
	if n.Left.Property == nil {
		cell, err := cg.LookupVariable(n.Left.Root)
		if err != nil {
			return err
		}
		if err := cg.Assign(cell, value.Handle); err != nil {
			return err
		}
		return releaseIfTmp(value, cg)
	}

	root, err := cg.LookupVariable(n.Left.Root)
	if err != nil {
		return err
	}
	container, lastKey, err := descendToLastLink(Value{Handle: root, IsTmp: false}, n.Left.Property, cg)
	if err != nil {
		return err
	}
	if err := cg.SetProperty(container.Handle, lastKey, value.Handle); err != nil {
		return err
	}
	return releaseIfTmp(value, cg)
}

// lowerInitializer resolves a (possibly nil, meaning implicit Undefined)
// initializer expression.
func lowerInitializer(e resolved.Expression, cg Codegen) (Value, error) {
	if e == nil {
		e = &resolved.UndefinedLiteral{}
	}
	return lowerExpr(e, cg)
}

func lowerIfElse(n *resolved.IfElseStatement, cg Codegen) error {
	cond, err := evalBoolean(n.Condition, cg)
	if err != nil {
		return err
	}
	return cg.Branch(cond,
		func() error { return lowerStatements(n.IfClause.Body, cg) },
		func() error { return lowerStatements(n.ElseClause.Body, cg) },
	)
}

func lowerWhile(n *resolved.WhileLoop, cg Codegen) error {
	test := func() (any, error) { return evalBoolean(n.Condition, cg) }
	body := func() error { return lowerStatements(n.Body.Body, cg) }
	return cg.Loop(test, body)
}

func lowerDoWhile(n *resolved.DoWhileLoop, cg Codegen) error {
	body := func() error { return lowerStatements(n.Body.Body, cg) }
	if err := body(); err != nil {
		return err
	}
	test := func() (any, error) { return evalBoolean(n.Condition, cg) }
	return cg.Loop(test, body)
}

func lowerReturn(n *resolved.ReturnStatement, cg Codegen) error {
	value, err := lowerInitializer(n.Value, cg)
	if err != nil {
		return err
	}
	// The returned value's ownership transfers to the caller of the
	// compiled function: Lower does not deallocate it.
	return cg.Return(value.Handle)
}

// evalBoolean lowers cond, converts it to its runtime boolean
// representation, reads the bit, and deallocates every intermediate value
// it produced along the way. The returned handle is the bit itself, not a
// resolved direction.
func evalBoolean(cond resolved.Expression, cg Codegen) (any, error) {
	value, err := lowerExpr(cond, cg)
	if err != nil {
		return nil, err
	}
	converted, err := cg.ConvertToBoolean(value.Handle)
	if err != nil {
		return nil, err
	}
	if err := releaseIfTmp(value, cg); err != nil {
		return nil, err
	}
	bit, err := cg.GetBoolean(converted)
	if err != nil {
		return nil, err
	}
	if err := cg.Deallocate(converted); err != nil {
		return nil, err
	}
	return bit, nil
}

func releaseIfTmp(v Value, cg Codegen) error {
	if !v.IsTmp {
		return nil
	}
	return cg.Deallocate(v.Handle)
}

// lowerExpr evaluates e to a Value, tagging it IsTmp per the contract:
// literals, computed results (unary/binary/call/new-object/new-array) are
// owned; variable and property references are borrowed.
func lowerExpr(e resolved.Expression, cg Codegen) (Value, error) {
	switch n := e.(type) {
	case *resolved.NumberLiteral, *resolved.StringLiteral, *resolved.BooleanLiteral,
		*resolved.UndefinedLiteral, *resolved.NullLiteral, *resolved.NaNLiteral, *resolved.InfinityLiteral:
		h, err := cg.Literal(n.(resolved.Expression))
		return Value{Handle: h, IsTmp: true}, err

	case *resolved.MemberExpression:
		return lowerMemberExpression(n, cg)

	case *resolved.FunctionCallValue:
		return lowerCall(Value{Handle: n.Name, IsTmp: false}, n.Args, cg)

	case *resolved.ObjectExpression:
		return lowerObjectExpression(n, cg)

	case *resolved.ArrayExpression:
		return lowerArrayExpression(n, cg)

	case *resolved.UnaryExpression:
		operand, err := lowerExpr(n.Operand, cg)
		if err != nil {
			return Value{}, err
		}
		h, err := cg.Unary(n.Op, operand.Handle)
		if err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(operand, cg); err != nil {
			return Value{}, err
		}
		return Value{Handle: h, IsTmp: true}, nil

	case *resolved.BinaryExpression:
		left, err := lowerExpr(n.Left, cg)
		if err != nil {
			return Value{}, err
		}
		right, err := lowerExpr(n.Right, cg)
		if err != nil {
			return Value{}, err
		}
		h, err := cg.Binary(n.Op, left.Handle, right.Handle)
		if err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(left, cg); err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(right, cg); err != nil {
			return Value{}, err
		}
		return Value{Handle: h, IsTmp: true}, nil

	default:
		return Value{}, fmt.Errorf("lowering: unhandled expression %T", e)
	}
}

// lowerMemberExpression reads a bare identifier (Property == nil, a
// borrowed reference to its bound cell) or walks a property chain,
// re-binding at each link: a plain link yields a fresh borrowed reference,
// a method-call link (.name(args)) invokes it and yields an owned result.
func lowerMemberExpression(n *resolved.MemberExpression, cg Codegen) (Value, error) {
	root, err := cg.LookupVariable(n.Root)
	if err != nil {
		return Value{}, err
	}
	object := Value{Handle: root, IsTmp: false}
	for link := n.Property; link != nil; link = link.Next {
		next, err := evalPropertyLink(object, link, cg)
		if err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(object, cg); err != nil {
			return Value{}, err
		}
		object = next
	}
	return object, nil
}

// evalPropertyLink applies one property link to object: a plain link reads
// it with GetProperty (a borrowed result); a method-call link reads the
// callable with GetProperty and then invokes it through the same call
// contract lowerCall gives a named function (an owned result).
func evalPropertyLink(object Value, link *resolved.Property, cg Codegen) (Value, error) {
	key, err := linkKey(link, cg)
	if err != nil {
		return Value{}, err
	}
	h, err := cg.GetProperty(object.Handle, key)
	if err != nil {
		return Value{}, err
	}
	if !link.IsCall {
		return Value{Handle: h, IsTmp: false}, nil
	}
	return lowerCall(Value{Handle: h, IsTmp: false}, link.Args, cg)
}

// descendToLastLink walks every property link except the last one (via
// evalPropertyLink, releasing each intermediate result once consumed),
// returning the container the final link should be applied to and the key
// describing that final link so the caller can dispatch to SetProperty
// (the add-property family) instead.
func descendToLastLink(root Value, chain *resolved.Property, cg Codegen) (Value, resolved.Expression, error) {
	object := root
	for link := chain; link != nil; link = link.Next {
		if link.Next == nil {
			if link.IsCall {
				return Value{}, nil, fmt.Errorf("lowering: cannot assign through a method call result")
			}
			key, err := linkKey(link, cg)
			if err != nil {
				return Value{}, nil, err
			}
			return object, key, nil
		}
		next, err := evalPropertyLink(object, link, cg)
		if err != nil {
			return Value{}, nil, err
		}
		if err := releaseIfTmp(object, cg); err != nil {
			return Value{}, nil, err
		}
		object = next
	}
	return Value{}, nil, fmt.Errorf("lowering: empty property chain in assignment target")
}

// linkKey turns one Property link into the resolved.Expression key
// GetProperty/SetProperty dispatch on: a dotted name becomes a string
// literal key (routing to the by_str form), a bracketed link carries its
// own already-resolved key expression.
func linkKey(link *resolved.Property, cg Codegen) (resolved.Expression, error) {
	if link.Computed {
		return link.Key, nil
	}
	return &resolved.StringLiteral{Value: link.Name}, nil
}

func lowerObjectExpression(n *resolved.ObjectExpression, cg Codegen) (Value, error) {
	h, err := cg.NewObject()
	if err != nil {
		return Value{}, err
	}
	for _, prop := range n.Properties {
		value, err := lowerExpr(prop.Value, cg)
		if err != nil {
			return Value{}, err
		}
		key := &resolved.StringLiteral{Value: prop.Key}
		if err := cg.SetProperty(h, key, value.Handle); err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(value, cg); err != nil {
			return Value{}, err
		}
	}
	return Value{Handle: h, IsTmp: true}, nil
}

func lowerArrayExpression(n *resolved.ArrayExpression, cg Codegen) (Value, error) {
	h, err := cg.NewArray()
	if err != nil {
		return Value{}, err
	}
	for _, elem := range n.Elements {
		value, err := lowerExpr(elem, cg)
		if err != nil {
			return Value{}, err
		}
		if err := cg.AppendElement(h, value.Handle); err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(value, cg); err != nil {
			return Value{}, err
		}
	}
	return Value{Handle: h, IsTmp: true}, nil
}

// lowerCall implements the function-call argument contract: every
// argument is evaluated, then spilled into a fresh temporary cell so the
// callee can own its copy, and the source value is deallocated if it was
// already a temporary. After the call, every spilled temporary is
// deallocated.
func lowerCall(callee Value, argExprs []resolved.Expression, cg Codegen) (Value, error) {
	args := make([]any, len(argExprs))
	for i, argExpr := range argExprs {
		src, err := lowerExpr(argExpr, cg)
		if err != nil {
			return Value{}, err
		}
		cell, err := cg.DeclareVariable(callArgTempID(i))
		if err != nil {
			return Value{}, err
		}
		if err := cg.Assign(cell, src.Handle); err != nil {
			return Value{}, err
		}
		if err := releaseIfTmp(src, cg); err != nil {
			return Value{}, err
		}
		args[i] = cell
	}

	result, err := cg.Call(callee.Handle, args)
	if err != nil {
		return Value{}, err
	}

	for _, cell := range args {
		if err := cg.Deallocate(cell); err != nil {
			return Value{}, err
		}
	}

	if err := releaseIfTmp(callee, cg); err != nil {
		return Value{}, err
	}

	return Value{Handle: result, IsTmp: true}, nil
}

// callArgTempID names a call argument's spilled temporary with a leading
// '%' - a character the lexer never accepts as an identifier start - so it
// cannot collide with any resolved user identifier. Naming is independent
// of the callee: evaluate-spill-deallocate happens strictly before the
// next argument is touched, so same-named cells across nested or sibling
// calls never have overlapping lifetimes.
func callArgTempID(index int) resolved.Identifier {
	return resolved.Identifier{Name: fmt.Sprintf("%%arg%d", index)}
}
