package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vexlang/vexc/internal/ast"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/parser"
)

func TestVariableDeclarationWithAndWithoutInitializer(t *testing.T) {
	mod, err := parser.Parse("m", `var a = 1; let b;`)
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	a, ok := mod.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.False(t, a.Let)
	assert.Equal(t, "a", a.Name)
	num, ok := a.Right.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 1.0, num.Value)

	b, ok := mod.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.True(t, b.Let)
	assert.Nil(t, b.Right)
}

func TestFunctionCallStatementVsAssignmentAmbiguity(t *testing.T) {
	mod, err := parser.Parse("m", `print(a); a = 2;`)
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	call, ok := mod.Body[0].(*ast.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "print", call.Name)
	require.Len(t, call.Args, 1)

	assign, ok := mod.Body[1].(*ast.VariableAssignment)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Left.Root)
	assert.Nil(t, assign.Left.Property)
	num, ok := assign.Right.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 2.0, num.Value)
}

func TestBareReferenceStatementHasNilRight(t *testing.T) {
	mod, err := parser.Parse("m", `a;`)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)
	assign, ok := mod.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	assert.Nil(t, assign.Right)
}

func TestMemberChainArbitraryDepth(t *testing.T) {
	mod, err := parser.Parse("m", `a.b[0].c = 1;`)
	require.NoError(t, err)
	assign, ok := mod.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Left.Root)

	p1 := assign.Left.Property
	require.NotNil(t, p1)
	assert.False(t, p1.Computed)
	assert.Equal(t, "b", p1.Name)

	p2 := p1.Next
	require.NotNil(t, p2)
	assert.True(t, p2.Computed)
	idx, ok := p2.Key.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 0.0, idx.Value)

	p3 := p2.Next
	require.NotNil(t, p3)
	assert.False(t, p3.Computed)
	assert.Equal(t, "c", p3.Name)
	assert.Nil(t, p3.Next)
}

func TestMethodCallDotAccessParsesArgList(t *testing.T) {
	mod, err := parser.Parse("m", `a.b(c, 1);`)
	require.NoError(t, err)
	assign, ok := mod.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Left.Root)
	assert.Nil(t, assign.Right)

	p := assign.Left.Property
	require.NotNil(t, p)
	assert.Equal(t, "b", p.Name)
	assert.True(t, p.IsCall)
	require.Len(t, p.Args, 2)
	assert.Nil(t, p.Next)
}

func TestMethodCallCanContinueChainAfterCall(t *testing.T) {
	mod, err := parser.Parse("m", `x = a.b(c).d;`)
	require.NoError(t, err)
	assign, ok := mod.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	right := assign.Right.(*ast.MemberExpression)
	assert.Equal(t, "a", right.Root)

	p1 := right.Property
	require.NotNil(t, p1)
	assert.Equal(t, "b", p1.Name)
	assert.True(t, p1.IsCall)
	require.Len(t, p1.Args, 1)

	p2 := p1.Next
	require.NotNil(t, p2)
	assert.Equal(t, "d", p2.Name)
	assert.False(t, p2.IsCall)
}

func TestDotAccessWithoutParensIsNotACall(t *testing.T) {
	mod, err := parser.Parse("m", `a.b;`)
	require.NoError(t, err)
	assign, ok := mod.Body[0].(*ast.VariableAssignment)
	require.True(t, ok)
	p := assign.Left.Property
	require.NotNil(t, p)
	assert.False(t, p.IsCall)
	assert.Nil(t, p.Args)
}

func TestFunctionDeclarationHoistableShape(t *testing.T) {
	mod, err := parser.Parse("m", `function add(x, y) { return x + y; }`)
	require.NoError(t, err)
	fn, ok := mod.Body[0].(*ast.FunctionDeclaration)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, []string{"x", "y"}, fn.Args)
	require.Len(t, fn.Body.Body, 1)

	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, bin.Op)
}

func TestBareReturnHasNilValue(t *testing.T) {
	mod, err := parser.Parse("m", `function f() { return; }`)
	require.NoError(t, err)
	fn := mod.Body[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	assert.Nil(t, ret.Value)
}

func TestIfElseOptionalElseProducesEmptyBlock(t *testing.T) {
	mod, err := parser.Parse("m", `if (a) { b = 1; }`)
	require.NoError(t, err)
	ifs, ok := mod.Body[0].(*ast.IfElseStatement)
	require.True(t, ok)
	require.NotNil(t, ifs.ElseClause)
	assert.Empty(t, ifs.ElseClause.Body)
	assert.Len(t, ifs.IfClause.Body, 1)
}

func TestIfElseWithElseBranch(t *testing.T) {
	mod, err := parser.Parse("m", `if (a) { b = 1; } else { b = 2; }`)
	require.NoError(t, err)
	ifs, ok := mod.Body[0].(*ast.IfElseStatement)
	require.True(t, ok)
	require.Len(t, ifs.ElseClause.Body, 1)
}

func TestWhileAndDoWhileLoops(t *testing.T) {
	mod, err := parser.Parse("m", `while (a) { b = 1; } do { c = 1; } while (d);`)
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	w, ok := mod.Body[0].(*ast.WhileLoop)
	require.True(t, ok)
	assert.Len(t, w.Body.Body, 1)

	dw, ok := mod.Body[1].(*ast.DoWhileLoop)
	require.True(t, ok)
	assert.Len(t, dw.Body.Body, 1)
}

func TestOperatorPrecedence(t *testing.T) {
	mod, err := parser.Parse("m", `a = 1 + 2 * 3;`)
	require.NoError(t, err)
	assign := mod.Body[0].(*ast.VariableAssignment)
	top, ok := assign.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, top.Op)

	left, ok := top.Left.(*ast.NumberLiteral)
	require.True(t, ok)
	assert.Equal(t, 1.0, left.Value)

	right, ok := top.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryMul, right.Op)
}

func TestUnaryNotAndNegation(t *testing.T) {
	mod, err := parser.Parse("m", `a = !b && -c;`)
	require.NoError(t, err)
	assign := mod.Body[0].(*ast.VariableAssignment)
	top, ok := assign.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryAnd, top.Op)

	notExpr, ok := top.Left.(*ast.UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, notExpr.Op)

	negExpr, ok := top.Right.(*ast.UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNeg, negExpr.Op)
}

func TestGroupingOverridesPrecedence(t *testing.T) {
	mod, err := parser.Parse("m", `a = (1 + 2) * 3;`)
	require.NoError(t, err)
	assign := mod.Body[0].(*ast.VariableAssignment)
	top, ok := assign.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryMul, top.Op)
	grouping, ok := top.Left.(*ast.Grouping)
	require.True(t, ok)
	inner, ok := grouping.Inner.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, ast.BinaryAdd, inner.Op)
}

func TestFunctionCallAsValueAndMemberAccessAsArgument(t *testing.T) {
	mod, err := parser.Parse("m", `a = f(b.c, 1);`)
	require.NoError(t, err)
	assign := mod.Body[0].(*ast.VariableAssignment)
	call, ok := assign.Right.(*ast.FunctionCallValue)
	require.True(t, ok)
	assert.Equal(t, "f", call.Name)
	require.Len(t, call.Args, 2)

	member, ok := call.Args[0].(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "b", member.Root)
	assert.Equal(t, "c", member.Property.Name)
}

func TestObjectAndArrayLiterals(t *testing.T) {
	mod, err := parser.Parse("m", `var o = { x: 1, y: "two" }; var arr = [1, 2, 3];`)
	require.NoError(t, err)

	o := mod.Body[0].(*ast.VariableDeclaration)
	obj, ok := o.Right.(*ast.ObjectExpression)
	require.True(t, ok)
	require.Len(t, obj.Properties, 2)
	assert.Equal(t, "x", obj.Properties[0].Key)
	assert.Equal(t, "y", obj.Properties[1].Key)

	arr := mod.Body[1].(*ast.VariableDeclaration)
	arrExpr, ok := arr.Right.(*ast.ArrayExpression)
	require.True(t, ok)
	assert.Len(t, arrExpr.Elements, 3)
}

func TestEmptyObjectAndArrayLiterals(t *testing.T) {
	mod, err := parser.Parse("m", `var o = {}; var arr = [];`)
	require.NoError(t, err)
	o := mod.Body[0].(*ast.VariableDeclaration)
	assert.Empty(t, o.Right.(*ast.ObjectExpression).Properties)
	arr := mod.Body[1].(*ast.VariableDeclaration)
	assert.Empty(t, arr.Right.(*ast.ArrayExpression).Elements)
}

func TestNestedBlockStatement(t *testing.T) {
	mod, err := parser.Parse("m", `{ var a = 1; { var b = 2; } }`)
	require.NoError(t, err)
	outer, ok := mod.Body[0].(*ast.BlockStatement)
	require.True(t, ok)
	require.Len(t, outer.Body, 2)
	_, ok = outer.Body[1].(*ast.BlockStatement)
	assert.True(t, ok)
}

func TestUnexpectedTokenIsFailFast(t *testing.T) {
	_, err := parser.Parse("m", `var = 1;`)
	require.Error(t, err)
	var unexpected *lexer.UnexpectedTokenError
	assert.ErrorAs(t, err, &unexpected)
}
