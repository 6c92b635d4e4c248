// Package abitrace is the reference lowering.Codegen: instead of emitting
// machine code it records, as a line of text per call, exactly what the
// Runtime Value ABI (internal/abi) would have been asked to do. It exists
// to make the lowering contract (internal/lowering) checkable from Go
// without a real code generator, and its output is what the snapshot
// tests in this package pin down.
package abitrace

import (
	"fmt"
	"strings"

	"github.com/vexlang/vexc/internal/abi"
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/resolved"
)

// abiNames ties each trace mnemonic to the abi.* function type that names
// it, so the trace vocabulary and the ABI declarations cannot silently
// drift apart. arithmetic_negate has no entry: the ABI has no dedicated
// arithmetic negation function, unary minus is expected to lower through
// arithmetic_substraction against a zero operand (see DESIGN.md).
var abiNames = map[string]any{
	"logical_not":               abi.LogicalNotFunc(nil),
	"logical_and":               abi.LogicalAndFunc(nil),
	"logical_or":                abi.LogicalOrFunc(nil),
	"logical_eq":                abi.LogicalEqFunc(nil),
	"logical_ne":                abi.LogicalNeFunc(nil),
	"logical_seq":               abi.LogicalSEqFunc(nil),
	"logical_sne":               abi.LogicalSNeFunc(nil),
	"logical_gt":                abi.LogicalGtFunc(nil),
	"logical_ge":                abi.LogicalGeFunc(nil),
	"logical_lt":                abi.LogicalLtFunc(nil),
	"logical_le":                abi.LogicalLeFunc(nil),
	"arithmetic_addition":       abi.ArithmeticAdditionFunc(nil),
	"arithmetic_substraction":   abi.ArithmeticSubstractionFunc(nil),
	"arithmetic_multiplication": abi.ArithmeticMultiplicationFunc(nil),
	"arithmetic_division":       abi.ArithmeticDivisionFunc(nil),
	"function_call":             abi.FunctionCallFunc(nil),
	"convert_to_boolean":        abi.ConvertToBooleanFunc(nil),
	"get_boolean":               abi.GetBooleanFunc(nil),
}

// checkedABIName asserts name is a registered ABI mnemonic before it is
// emitted into the trace, catching a typo or a renamed abi.go type at the
// point a new trace line is written rather than only in a snapshot diff.
func checkedABIName(name string) string {
	if _, ok := abiNames[name]; !ok {
		panic("abitrace: unregistered ABI name " + name)
	}
	return name
}

// Tracer implements lowering.Codegen. Every handle it hands back is a
// string of the form "%N"; the same Tracer must not be reused across
// unrelated Lower calls since its counter and bindings are not reset.
type Tracer struct {
	Log      []string
	bindings map[string]string
	next     int
}

// New returns an empty Tracer ready to drive a single lowering.Lower call.
func New() *Tracer {
	return &Tracer{bindings: make(map[string]string)}
}

// String joins the recorded trace with newlines, suitable for snapshotting.
func (tr *Tracer) String() string {
	return strings.Join(tr.Log, "\n")
}

func (tr *Tracer) fresh() string {
	h := fmt.Sprintf("%%%d", tr.next)
	tr.next++
	return h
}

func (tr *Tracer) emit(format string, args ...any) {
	tr.Log = append(tr.Log, fmt.Sprintf(format, args...))
}

func (tr *Tracer) Literal(lit resolved.Expression) (any, error) {
	h := tr.fresh()
	switch v := lit.(type) {
	case *resolved.NumberLiteral:
		tr.emit("%s = set_number(%v)", h, v.Value)
	case *resolved.StringLiteral:
		tr.emit("%s = set_string(%q)", h, v.Value)
	case *resolved.BooleanLiteral:
		tr.emit("%s = set_boolean(%v)", h, v.Value)
	case *resolved.UndefinedLiteral:
		tr.emit("%s = set_undefined()", h)
	case *resolved.NullLiteral:
		tr.emit("%s = set_null()", h)
	case *resolved.NaNLiteral:
		tr.emit("%s = set_nan()", h)
	case *resolved.InfinityLiteral:
		tr.emit("%s = set_infinity()", h)
	default:
		return nil, fmt.Errorf("abitrace: unhandled literal %T", lit)
	}
	return h, nil
}

func (tr *Tracer) LookupVariable(id resolved.Identifier) (any, error) {
	h, ok := tr.bindings[id.String()]
	if !ok {
		return nil, fmt.Errorf("abitrace: %s has no bound storage", id)
	}
	return h, nil
}

func (tr *Tracer) DeclareVariable(id resolved.Identifier) (any, error) {
	h := tr.fresh()
	tr.emit("%s = alloc()  ; %s", h, id)
	tr.bindings[id.String()] = h
	return h, nil
}

func (tr *Tracer) Assign(dst, src any) error {
	tr.emit("set_variable(%s, %s)", dst, src)
	return nil
}

func (tr *Tracer) Deallocate(v any) error {
	tr.emit("dealloc(%s)", v)
	return nil
}

func (tr *Tracer) Unary(op ast.UnaryOp, operand any) (any, error) {
	h := tr.fresh()
	tr.emit("%s = %s(%s)", h, unaryName(op), operand)
	return h, nil
}

func (tr *Tracer) Binary(op ast.BinaryOp, left, right any) (any, error) {
	h := tr.fresh()
	tr.emit("%s = %s(%s, %s)", h, binaryName(op), left, right)
	return h, nil
}

func (tr *Tracer) GetProperty(object any, key resolved.Expression) (any, error) {
	h := tr.fresh()
	tr.emit("%s = get_property_by_%s(%s, %s)", h, keySuffix(key), object, keyLiteral(key))
	return h, nil
}

func (tr *Tracer) SetProperty(object any, key resolved.Expression, value any) error {
	tr.emit("add_property_by_%s(%s, %s, %s)", keySuffix(key), object, keyLiteral(key), value)
	return nil
}

func (tr *Tracer) NewObject() (any, error) {
	h := tr.fresh()
	tr.emit("%s = set_empty_object()", h)
	return h, nil
}

func (tr *Tracer) NewArray() (any, error) {
	h := tr.fresh()
	tr.emit("%s = set_empty_object()  ; array", h)
	return h, nil
}

func (tr *Tracer) AppendElement(array, value any) error {
	tr.emit("add_property_by_number(%s, <next index>, %s)", array, value)
	return nil
}

func (tr *Tracer) ConvertToBoolean(v any) (any, error) {
	h := tr.fresh()
	tr.emit("%s = %s(%s)", h, checkedABIName("convert_to_boolean"), v)
	return h, nil
}

func (tr *Tracer) GetBoolean(v any) (any, error) {
	h := tr.fresh()
	tr.emit("%s = %s(%s)", h, checkedABIName("get_boolean"), v)
	return h, nil
}

func (tr *Tracer) Call(callee any, args []any) (any, error) {
	h := tr.fresh()
	tr.emit("%s = %s(%s, [%s])", h, checkedABIName("function_call"), callee, joinHandles(args))
	return h, nil
}

// Branch emits both arms: the Tracer is a stand-in for an
// ahead-of-time backend, which must generate code reachable at run time
// down either side regardless of what the condition handle evaluates to.
func (tr *Tracer) Branch(cond any, then, els func() error) error {
	tr.emit("br %s, then, else", cond)
	tr.emit("then:")
	if err := then(); err != nil {
		return err
	}
	tr.emit("else:")
	if err := els(); err != nil {
		return err
	}
	tr.emit("endif:")
	return nil
}

// Loop emits the test and body once each: a real backend would wrap this
// in actual basic blocks and a back-edge, which the Tracer has no need to
// model since it only needs to show each ABI call shape once.
func (tr *Tracer) Loop(test func() (any, error), body func() error) error {
	tr.emit("loop:")
	if _, err := test(); err != nil {
		return err
	}
	tr.emit("body:")
	if err := body(); err != nil {
		return err
	}
	tr.emit("backedge loop")
	return nil
}

// EnterFunction binds each declared parameter to a fresh handle, standing
// in for unpacking the call's argument array into named locals.
func (tr *Tracer) EnterFunction(decl *resolved.FunctionDeclaration) error {
	tr.emit("define %s(%s):", decl.Name, joinIdentifiers(decl.Args))
	for i, arg := range decl.Args {
		h := tr.fresh()
		tr.emit("%s = arg(%d)  ; %s", h, i, arg)
		tr.bindings[arg.String()] = h
	}
	return nil
}

func (tr *Tracer) ExitFunction(decl *resolved.FunctionDeclaration) error {
	tr.emit("end %s", decl.Name)
	return nil
}

func (tr *Tracer) Return(v any) error {
	tr.emit("ret %s", v)
	return nil
}

func joinHandles(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, ", ")
}

func joinIdentifiers(ids []resolved.Identifier) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}

func unaryName(op ast.UnaryOp) string {
	switch op {
	case ast.UnaryNot:
		return checkedABIName("logical_not")
	case ast.UnaryNeg:
		return "arithmetic_negate"
	default:
		return fmt.Sprintf("unary(%d)", op)
	}
}

func binaryName(op ast.BinaryOp) string {
	switch op {
	case ast.BinaryAdd:
		return checkedABIName("arithmetic_addition")
	case ast.BinarySub:
		return checkedABIName("arithmetic_substraction")
	case ast.BinaryMul:
		return checkedABIName("arithmetic_multiplication")
	case ast.BinaryDiv:
		return checkedABIName("arithmetic_division")
	case ast.BinaryAnd:
		return checkedABIName("logical_and")
	case ast.BinaryOr:
		return checkedABIName("logical_or")
	case ast.BinaryEq:
		return checkedABIName("logical_eq")
	case ast.BinaryNe:
		return checkedABIName("logical_ne")
	case ast.BinarySEq:
		return checkedABIName("logical_seq")
	case ast.BinarySNe:
		return checkedABIName("logical_sne")
	case ast.BinaryGt:
		return checkedABIName("logical_gt")
	case ast.BinaryGe:
		return checkedABIName("logical_ge")
	case ast.BinaryLt:
		return checkedABIName("logical_lt")
	case ast.BinaryLe:
		return checkedABIName("logical_le")
	default:
		return fmt.Sprintf("binary(%d)", op)
	}
}

// keySuffix picks the typed get/add_property_by_* suffix a literal key
// dispatches to, falling back to "var" for anything computed at run time.
func keySuffix(key resolved.Expression) string {
	switch key.(type) {
	case *resolved.StringLiteral:
		return "str"
	case *resolved.NumberLiteral:
		return "number"
	case *resolved.BooleanLiteral:
		return "boolean"
	default:
		return "var"
	}
}

func keyLiteral(key resolved.Expression) string {
	switch k := key.(type) {
	case *resolved.StringLiteral:
		return fmt.Sprintf("%q", k.Value)
	case *resolved.NumberLiteral:
		return fmt.Sprintf("%v", k.Value)
	case *resolved.BooleanLiteral:
		return fmt.Sprintf("%v", k.Value)
	default:
		return fmt.Sprintf("<%T>", key)
	}
}
