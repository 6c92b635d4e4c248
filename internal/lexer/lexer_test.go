package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vexlang/vexc/internal/lexer"
	"github.com/vexlang/vexc/internal/token"
)

func collect(t *testing.T, src string) []token.Token {
	t.Helper()
	r := lexer.NewTokenReader(src)
	var toks []token.Token
	for {
		tok, err := r.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestCharReaderPosition(t *testing.T) {
	r := lexer.NewCharReader("ab\ncd")
	ch, pos, ok := r.GetChar()
	require.True(t, ok)
	assert.Equal(t, 'a', ch)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Column)

	ch, pos, ok = r.GetChar()
	require.True(t, ok)
	assert.Equal(t, 'b', ch)
	assert.Equal(t, 2, pos.Column)
	_ = ch

	ch, pos, ok = r.GetChar()
	require.True(t, ok)
	assert.Equal(t, '\n', ch)

	ch, pos, ok = r.GetChar()
	require.True(t, ok)
	assert.Equal(t, 'c', ch)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)
}

func TestCharReaderSave(t *testing.T) {
	r := lexer.NewCharReader("xy")
	ch, _, _ := r.GetChar()
	assert.Equal(t, 'x', ch)
	r.Save(ch)
	ch, _, _ = r.GetChar()
	assert.Equal(t, 'x', ch)
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collect(t, "var let function return if else while do foo")
	assert.Equal(t, []token.Kind{
		token.VAR, token.LET, token.FUNCTION, token.RETURN,
		token.IF, token.ELSE, token.WHILE, token.DO, token.IDENT, token.EOF,
	}, kinds(toks))
}

func TestLiterals(t *testing.T) {
	toks := collect(t, `42 3.5 "hello" true false undefined null NaN Infinity`)
	assert.Equal(t, []token.Kind{
		token.NUMBER, token.NUMBER, token.STRING, token.BOOLEAN, token.BOOLEAN,
		token.UNDEFINED, token.NULL, token.NAN, token.INFINITY, token.EOF,
	}, kinds(toks))
	assert.Equal(t, float64(42), toks[0].NumberValue)
	assert.Equal(t, 3.5, toks[1].NumberValue)
	assert.Equal(t, "hello", toks[2].Text)
	assert.True(t, toks[3].BoolValue)
	assert.False(t, toks[4].BoolValue)
}

func TestLogicalOperators(t *testing.T) {
	toks := collect(t, "== != === !== && || ! > >= < <= =")
	assert.Equal(t, []token.Kind{
		token.EQ, token.NE, token.SEQ, token.SNE, token.AND, token.OR,
		token.NOT, token.GT, token.GE, token.LT, token.LE, token.ASSIGN, token.EOF,
	}, kinds(toks))
}

func TestArithmeticAndSeparators(t *testing.T) {
	toks := collect(t, "+ - * / ( ) { } [ ] , . :")
	assert.Equal(t, []token.Kind{
		token.ADD, token.SUB, token.MUL, token.DIV,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.DOT, token.COLON, token.EOF,
	}, kinds(toks))
}

func TestSemicolonIsSkipped(t *testing.T) {
	toks := collect(t, "a; b;")
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.EOF}, kinds(toks))
}

func TestLineComment(t *testing.T) {
	toks := collect(t, "a // trailing comment\nb")
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.EOF}, kinds(toks))
}

func TestBlockComment(t *testing.T) {
	toks := collect(t, "a /* inside * still inside */ b")
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.EOF}, kinds(toks))
}

func TestUnterminatedBlockCommentErrors(t *testing.T) {
	r := lexer.NewTokenReader("a /* never closed")
	_, err := r.NextToken()
	require.NoError(t, err)
	_, err = r.NextToken()
	require.Error(t, err)
	var uce *lexer.UnterminatedCommentError
	assert.ErrorAs(t, err, &uce)
}

func TestLoneAmpersandErrors(t *testing.T) {
	r := lexer.NewTokenReader("&")
	_, err := r.NextToken()
	var use *lexer.UnexpectedSymbolError
	assert.ErrorAs(t, err, &use)
}

func TestStringRequiresStopChar(t *testing.T) {
	r := lexer.NewTokenReader(`"abc"def`)
	_, err := r.NextToken()
	var use *lexer.UnexpectedSymbolError
	assert.ErrorAs(t, err, &use)
}

func TestSaveAndReplaySingleFrame(t *testing.T) {
	r := lexer.NewTokenReader("a b c")
	r.StartSaving()
	tok1, _ := r.NextToken()
	tok2, _ := r.NextToken()
	r.StopSaving()

	replay1, _ := r.NextToken()
	replay2, _ := r.NextToken()
	assert.Equal(t, tok1, replay1)
	assert.Equal(t, tok2, replay2)

	tok3, _ := r.NextToken()
	assert.Equal(t, "c", tok3.Text)
}

func TestResetSavingMergesIntoOuterFrame(t *testing.T) {
	r := lexer.NewTokenReader("a b c")
	r.StartSaving()
	_, _ = r.NextToken() // a, recorded in outer frame

	r.StartSaving()
	_, _ = r.NextToken() // b, recorded in inner frame
	r.ResetSaving()      // accept: merge "b" into outer frame

	r.StopSaving() // outer frame rejected: replay "a", "b"

	first, _ := r.NextToken()
	second, _ := r.NextToken()
	assert.Equal(t, "a", first.Text)
	assert.Equal(t, "b", second.Text)

	third, _ := r.NextToken()
	assert.Equal(t, "c", third.Text)
}

func TestNestedStopSavingReplaysIndependently(t *testing.T) {
	r := lexer.NewTokenReader("a b c")
	r.StartSaving()
	_, _ = r.NextToken() // a

	r.StartSaving()
	_, _ = r.NextToken() // b
	r.StopSaving()       // reject inner: queue "b" for replay

	replayed, _ := r.NextToken()
	assert.Equal(t, "b", replayed.Text)

	r.StopSaving() // reject outer: queue "a", "b" (as observed) for replay

	first, _ := r.NextToken()
	second, _ := r.NextToken()
	assert.Equal(t, "a", first.Text)
	assert.Equal(t, "b", second.Text)
}
