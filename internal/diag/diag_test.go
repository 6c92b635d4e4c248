package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexlang/vexc/internal/diag"
	"github.com/vexlang/vexc/internal/parser"
	"github.com/vexlang/vexc/internal/resolver"
)

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	src := "var a = 1;\na = b;\n"
	mod, err := parser.Parse("m", src)
	require.NoError(t, err)
	_, err = resolver.Resolve(mod, resolver.DefaultPredefinedFunctions())
	var undef *resolver.UndefinedVariableError
	require.ErrorAs(t, err, &undef)

	d := diag.New(undef, src, "m.vex")
	out := d.Format(false)

	assert.Contains(t, out, "m.vex:2:5")
	assert.Contains(t, out, "a = b;")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, `undefined variable "b"`)
}

func TestFormatColorWrapsCaret(t *testing.T) {
	src := "a = 1;\n"
	mod, err := parser.Parse("m", src)
	require.NoError(t, err)
	_, err = resolver.Resolve(mod, resolver.DefaultPredefinedFunctions())
	var undef *resolver.UndefinedVariableError
	require.ErrorAs(t, err, &undef)

	out := diag.New(undef, src, "").Format(true)
	assert.True(t, strings.Contains(out, "\033[1;31m"))
}

func TestFormatAllNumbersMultipleDiagnostics(t *testing.T) {
	src := "a = 1;\n"
	mod, err := parser.Parse("m", src)
	require.NoError(t, err)
	_, err = resolver.Resolve(mod, resolver.DefaultPredefinedFunctions())
	var undef *resolver.UndefinedVariableError
	require.ErrorAs(t, err, &undef)

	d1 := diag.New(undef, src, "f.vex")
	d2 := diag.New(undef, src, "f.vex")
	out := diag.FormatAll([]*diag.Diagnostic{d1, d2}, false)
	assert.Contains(t, out, "2 errors:")
}

func TestFormatAllSingleDiagnosticSkipsCount(t *testing.T) {
	src := "a = 1;\n"
	mod, err := parser.Parse("m", src)
	require.NoError(t, err)
	_, err = resolver.Resolve(mod, resolver.DefaultPredefinedFunctions())
	var undef *resolver.UndefinedVariableError
	require.ErrorAs(t, err, &undef)

	out := diag.FormatAll([]*diag.Diagnostic{diag.New(undef, src, "f.vex")}, false)
	assert.NotContains(t, out, "errors:")
}
