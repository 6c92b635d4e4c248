package lexer

import "github.com/vexlang/vexc/internal/srcpos"

// CharReader walks a source string one rune at a time, tracking the
// line/column of each rune as it is consumed. It supports pushing a single
// rune back onto the stream, which is all the lexer's dispatch logic ever
// needs (multi-character operators are recognized by reading one rune at a
// time and backing off the last one read when it doesn't fit).
type CharReader struct {
	runes     []rune
	positions []srcpos.Position
	pos       int
}

// NewCharReader builds a reader over src, pre-computing the position of
// every rune up front so pushback never has to reconstruct a line/column.
func NewCharReader(src string) *CharReader {
	runes := []rune(src)
	positions := make([]srcpos.Position, len(runes))
	p := srcpos.Start()
	for i, r := range runes {
		positions[i] = p
		p = p.Advance(r)
	}
	return &CharReader{runes: runes, positions: positions}
}

// GetChar returns the next rune and the position it occupies, or ok=false
// at end of input.
func (r *CharReader) GetChar() (ch rune, pos srcpos.Position, ok bool) {
	if r.pos >= len(r.runes) {
		return 0, r.Position(), false
	}
	ch = r.runes[r.pos]
	pos = r.positions[r.pos]
	r.pos++
	return ch, pos, true
}

// Save pushes ch back onto the stream so the next GetChar call returns it
// again. Only the most recently read rune may be pushed back.
func (r *CharReader) Save(ch rune) {
	if r.pos == 0 {
		panic("lexer: Save called with nothing read")
	}
	r.pos--
}

// Position reports the position of the rune that the next GetChar call
// will return (or the position one past the end of input at EOF).
func (r *CharReader) Position() srcpos.Position {
	if r.pos < len(r.positions) {
		return r.positions[r.pos]
	}
	if len(r.runes) == 0 {
		return srcpos.Start()
	}
	return r.positions[len(r.positions)-1].Advance(r.runes[len(r.runes)-1])
}
