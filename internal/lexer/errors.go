package lexer

import (
	"fmt"

	"github.com/vexlang/vexc/internal/srcpos"
	"github.com/vexlang/vexc/internal/token"
)

// UnexpectedSymbolError is raised when a raw character does not begin any
// recognized token (a lone '&' or '|'), or directly follows an identifier,
// number or string literal without being able to end it. An unclosed block
// comment is reported as UnterminatedCommentError, not as this error.
type UnexpectedSymbolError struct {
	Symbol rune
	Pos    srcpos.Position
}

func (e *UnexpectedSymbolError) Error() string {
	return fmt.Sprintf("%s: unexpected symbol %q", e.Pos, e.Symbol)
}

func (e *UnexpectedSymbolError) Position() srcpos.Position { return e.Pos }

// UnexpectedTokenError is raised by a parser (not the lexer itself) when a
// fully formed token does not fit the current grammar position. It lives
// here because both the lexer and parser error families share the same
// Position-carrying shape the diag package renders.
type UnexpectedTokenError struct {
	Token token.Token
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s: unexpected token %s", e.Token.Pos, e.Token)
}

func (e *UnexpectedTokenError) Position() srcpos.Position { return e.Token.Pos }

// UnterminatedCommentError is raised when a block comment is not closed
// before end of input.
type UnterminatedCommentError struct {
	Pos srcpos.Position
}

func (e *UnterminatedCommentError) Error() string {
	return fmt.Sprintf("%s: unterminated block comment", e.Pos)
}

func (e *UnterminatedCommentError) Position() srcpos.Position { return e.Pos }

// UnterminatedStringError is raised when a string literal's closing quote
// is missing before end of input.
type UnterminatedStringError struct {
	Pos srcpos.Position
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("%s: unterminated string literal", e.Pos)
}

func (e *UnterminatedStringError) Position() srcpos.Position { return e.Pos }

// InvalidNumberError is raised when a run of digit/dot characters does not
// parse as a float (e.g. "1.2.3").
type InvalidNumberError struct {
	Text string
	Pos  srcpos.Position
}

func (e *InvalidNumberError) Error() string {
	return fmt.Sprintf("%s: invalid number literal %q", e.Pos, e.Text)
}

func (e *InvalidNumberError) Position() srcpos.Position { return e.Pos }
