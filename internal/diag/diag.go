// Package diag renders compiler errors with source context: a line number,
// the offending source line, and a caret pointing at the column. It does
// not define new error types - it wraps whatever the lexer, parser, and
// resolver already return, as long as the error also reports a
// srcpos.Position.
package diag

import (
	"fmt"
	"strings"

	"github.com/vexlang/vexc/internal/srcpos"
)

// Positioned is the shape an error needs to render with source context.
// lexer.UnexpectedSymbolError, lexer.UnexpectedTokenError,
// resolver.UndefinedVariableError and friends all satisfy it already.
type Positioned interface {
	error
	Position() srcpos.Position
}

// Diagnostic pairs a Positioned error with the source text and file name
// needed to render it.
type Diagnostic struct {
	Err    Positioned
	Source string
	File   string
}

// New wraps err with the source and file it came from.
func New(err Positioned, source, file string) *Diagnostic {
	return &Diagnostic{Err: err, Source: source, File: file}
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the header, offending line, and caret. If color is true,
// the caret and message are wrapped in ANSI escapes for a terminal.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder
	pos := d.Err.Position()

	if d.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: ", d.File, pos.Line, pos.Column)
	} else {
		fmt.Fprintf(&sb, "%d:%d: ", pos.Line, pos.Column)
	}
	if color {
		sb.WriteString("\033[1;31merror\033[0m: ")
	} else {
		sb.WriteString("error: ")
	}
	sb.WriteString(d.Err.Error())
	sb.WriteString("\n")

	line := d.sourceLine(pos.Line)
	if line == "" {
		return sb.String()
	}

	lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
	if color {
		sb.WriteString("\033[1;31m^\033[0m")
	} else {
		sb.WriteString("^")
	}
	sb.WriteString("\n")

	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// FormatAll renders a batch of diagnostics, one after another.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n\n", len(diags))
	for i, d := range diags {
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
