package lowering_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/lowering"
	"github.com/vexlang/vexc/internal/parser"
	"github.com/vexlang/vexc/internal/resolved"
	"github.com/vexlang/vexc/internal/resolver"
)

// recorder is a minimal lowering.Codegen that logs every call it receives
// and tracks live (non-deallocated) temporaries, so tests can assert on
// the choreography Lower is responsible for rather than on emitted code.
type recorder struct {
	calls []string
	next  int
	live  map[string]bool

	bindings map[string]string
}

func newRecorder() *recorder {
	return &recorder{bindings: make(map[string]string), live: make(map[string]bool)}
}

func (r *recorder) fresh() string {
	h := fmt.Sprintf("t%d", r.next)
	r.next++
	r.live[h] = true
	return h
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// has reports whether any recorded call contains all of subs, in order.
func (r *recorder) has(subs ...string) bool {
	for _, c := range r.calls {
		ok := true
		pos := 0
		for _, s := range subs {
			idx := strings.Index(c[pos:], s)
			if idx < 0 {
				ok = false
				break
			}
			pos += idx + len(s)
		}
		if ok {
			return true
		}
	}
	return false
}

func (r *recorder) Literal(lit resolved.Expression) (any, error) {
	h := r.fresh()
	r.log("literal %T -> %s", lit, h)
	return h, nil
}

func (r *recorder) LookupVariable(id resolved.Identifier) (any, error) {
	h, ok := r.bindings[id.String()]
	if !ok {
		return nil, fmt.Errorf("unbound %s", id)
	}
	r.log("lookup %s -> %s", id, h)
	return h, nil
}

func (r *recorder) DeclareVariable(id resolved.Identifier) (any, error) {
	h := r.fresh()
	if !strings.HasPrefix(id.Name, "%") {
		// A named variable's cell outlives the statement that declares it;
		// only a call-argument spill cell is a temporary Lower frees.
		delete(r.live, h)
	}
	r.bindings[id.String()] = h
	r.log("declare %s -> %s", id, h)
	return h, nil
}

func (r *recorder) Assign(dst, src any) error {
	r.log("assign %s = %s", dst, src)
	return nil
}

func (r *recorder) Deallocate(v any) error {
	h := v.(string)
	if !r.live[h] {
		return fmt.Errorf("double free of %s", h)
	}
	delete(r.live, h)
	r.log("dealloc %s", h)
	return nil
}

func (r *recorder) Unary(op ast.UnaryOp, operand any) (any, error) {
	h := r.fresh()
	r.log("unary %v %s -> %s", op, operand, h)
	return h, nil
}

func (r *recorder) Binary(op ast.BinaryOp, left, right any) (any, error) {
	h := r.fresh()
	r.log("binary %v %s %s -> %s", op, left, right, h)
	return h, nil
}

func (r *recorder) GetProperty(object any, key resolved.Expression) (any, error) {
	h := r.fresh()
	delete(r.live, h) // a property read is borrowed, never freed by Lower
	r.log("get_property %s[%T] -> %s", object, key, h)
	return h, nil
}

func (r *recorder) SetProperty(object any, key resolved.Expression, value any) error {
	r.log("set_property %s[%T] = %s", object, key, value)
	return nil
}

func (r *recorder) NewObject() (any, error) {
	h := r.fresh()
	r.log("new_object -> %s", h)
	return h, nil
}

func (r *recorder) NewArray() (any, error) {
	h := r.fresh()
	r.log("new_array -> %s", h)
	return h, nil
}

func (r *recorder) AppendElement(array, value any) error {
	r.log("append %s <- %s", array, value)
	return nil
}

func (r *recorder) ConvertToBoolean(v any) (any, error) {
	h := r.fresh()
	r.log("convert_to_boolean %s -> %s", v, h)
	return h, nil
}

func (r *recorder) GetBoolean(v any) (any, error) {
	r.log("get_boolean %s", v)
	return v, nil
}

func (r *recorder) Call(callee any, args []any) (any, error) {
	h := r.fresh()
	r.log("call %s(%v) -> %s", callee, args, h)
	return h, nil
}

func (r *recorder) Branch(cond any, then, els func() error) error {
	r.log("branch %s", cond)
	if err := then(); err != nil {
		return err
	}
	return els()
}

func (r *recorder) Loop(test func() (any, error), body func() error) error {
	for i := 0; i < 2; i++ {
		if _, err := test(); err != nil {
			return err
		}
		if err := body(); err != nil {
			return err
		}
	}
	return nil
}

func (r *recorder) EnterFunction(decl *resolved.FunctionDeclaration) error {
	r.log("enter_function %s", decl.Name)
	return nil
}

func (r *recorder) ExitFunction(decl *resolved.FunctionDeclaration) error {
	r.log("exit_function %s", decl.Name)
	return nil
}

func (r *recorder) Return(v any) error {
	r.log("return %s", v)
	return nil
}

func lowerSource(t *testing.T, src string) *recorder {
	t.Helper()
	mod, err := parser.Parse("m", src)
	require.NoError(t, err)
	rmod, err := resolver.Resolve(mod, resolver.DefaultPredefinedFunctions())
	require.NoError(t, err)
	r := newRecorder()
	require.NoError(t, lowering.Lower(rmod, r))
	return r
}

func TestVariableDeclarationAssignsThenReleasesLiteral(t *testing.T) {
	r := lowerSource(t, `var a = 1;`)
	assert.Empty(t, r.live, "the literal temporary must be deallocated once stored")
	assert.True(t, r.has("declare a#0"))
	assert.True(t, r.has("literal *resolved.NumberLiteral"))
	assert.True(t, r.has("assign "))
	assert.True(t, r.has("dealloc "))
}

func TestBareIdentifierIsBorrowedNotDeallocated(t *testing.T) {
	r := lowerSource(t, `var a = 1; var b = a;`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("lookup a#0"), "reading a bare identifier must go through LookupVariable, not Literal")
}

func TestBinaryExpressionReleasesBothOperands(t *testing.T) {
	r := lowerSource(t, `var a = 1 + 2;`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("binary "))
}

func TestFunctionCallSpillsAndDeallocatesArguments(t *testing.T) {
	r := lowerSource(t, `print(1);`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("declare %arg0#0"), "call arguments must be spilled into a fresh declared cell")
	assert.True(t, r.has("call print#0"))
}

func TestIfElseLowersThroughConvertToBooleanAndGetBoolean(t *testing.T) {
	r := lowerSource(t, `if (1) { var a = 1; } else { var b = 2; }`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("convert_to_boolean"))
	assert.True(t, r.has("get_boolean"))
	assert.True(t, r.has("branch"))
}

func TestDoWhileRunsBodyOnceBeforeTesting(t *testing.T) {
	r := lowerSource(t, `do { var a = 1; } while (1);`)
	declareCount := 0
	for _, c := range r.calls {
		if strings.HasPrefix(c, "declare a#0") {
			declareCount++
		}
	}
	// once unconditionally, then twice more inside the recorder's fixed
	// two-iteration Loop stub.
	assert.Equal(t, 3, declareCount)
}

func TestMemberAssignmentWithSingleLinkSetsDirectlyOnRoot(t *testing.T) {
	r := lowerSource(t, `var a = {}; a.b = 1;`)
	assert.False(t, r.has("get_property"), "a single-link assignment target has nothing to descend through")
	assert.True(t, r.has("set_property"))
}

func TestMemberAssignmentWithNestedLinkDescendsThenSetsLastLink(t *testing.T) {
	r := lowerSource(t, `var a = {}; a.b.c = 1;`)
	assert.True(t, r.has("get_property"), "the first link must be read to reach the container the last link sets on")
	assert.True(t, r.has("set_property"))
}

func TestMethodCallAsValueLowersThroughGetPropertyThenCall(t *testing.T) {
	r := lowerSource(t, `var a = {}; var x = a.f(1);`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("get_property"), "the method value must be fetched before it is invoked")
	assert.True(t, r.has("declare %arg0"), "the call argument must be spilled the same way a named call's is")
	assert.True(t, r.has("call t"), "the callee handle is the GetProperty result, not a resolved identifier")
}

func TestBareMethodCallStatementStillInvokesIt(t *testing.T) {
	r := lowerSource(t, `var a = {}; a.f(1);`)
	assert.Empty(t, r.live)
	assert.True(t, r.has("get_property"))
	assert.True(t, r.has("call t"))
}

func TestMethodCallMidChainReleasesIntermediateResult(t *testing.T) {
	r := lowerSource(t, `var a = {}; var x = a.f(1).g;`)
	assert.Empty(t, r.live, "the owned result of the call-shaped link must be released once the next link reads through it")
}

func TestFunctionDeclarationEntersAndExitsScope(t *testing.T) {
	r := lowerSource(t, `function f() { return 1; }`)
	assert.Contains(t, r.calls, "enter_function f#0")
	assert.Contains(t, r.calls, "exit_function f#0")
}
