// Package errs implements the error set (C6): a structured ParseError type
// plus the caret-underline source formatter used to render it for a human
// reader, ported from the donor's error.rs Display implementation.
package errs

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

// Code classifies a ParseError with a stable value callers can switch on
// instead of matching message text.
type Code string

const (
	CodeUnexpectedEndOfProgram  Code = "P0001"
	CodeUnexpectedToken         Code = "P0002"
	CodeInvalidAssignmentTarget Code = "P0003"
	CodeUnterminatedLiteral     Code = "P0004"
)

// ParseError is the error type returned by the parser (§4.6/§7): it owns
// the source text it occurred in, so that it can format itself without the
// caller threading context back in.
type ParseError struct {
	Code       Code
	Message    string
	Source     string
	Start, End int
}

// New builds a ParseError spanning [start, end) of source.
func New(code Code, message, source string, start, end int) *ParseError {
	return &ParseError{Code: code, Message: message, Source: source, Start: start, End: end}
}

// Error implements the error interface with a single-line summary; call
// Format for the multi-line caret-underline rendering.
func (e *ParseError) Error() string {
	line, col := lineCol(e.Source, e.Start)
	if e.Message != "" {
		return fmt.Sprintf("%s: %s at %d:%d", e.Code, e.Message, line, col)
	}
	return fmt.Sprintf("%s: unexpected token at %d:%d", e.Code, line, col)
}

func lineCol(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}
	prefix := source[:offset]
	line = strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = len(prefix) - idx
	} else {
		col = len(prefix) + 1
	}
	return line, col
}

// Format renders the error the way the donor's ParseError Display impl
// does: a one-line summary followed by up to two lines of context on each
// side of the offending line, with a caret-underline beneath the span.
// colorize controls whether the caret line and line-number gutter are
// ANSI-colored (the CLI driver disables this when stdout isn't a TTY).
func (e *ParseError) Format(colorize bool) string {
	lines := strings.Split(e.Source, "\n")
	lineno, col := lineCol(e.Source, e.Start)
	lineIdx := lineno - 1

	tokenLen := e.End - e.Start
	if tokenLen < 1 {
		tokenLen = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Error())

	width := digits(lineno + 3)

	from := lineIdx - 2
	if from < 0 {
		from = 0
	}
	to := lineIdx + 3
	if to > len(lines) {
		to = len(lines)
	}

	caret := fmt.Sprintf("%s%s", strings.Repeat(" ", col-1), strings.Repeat("^", tokenLen))
	if colorize {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}

	for idx := from; idx < to; idx++ {
		lineText := lines[idx]
		gutter := fmt.Sprintf("%*d", width, idx+1)
		if idx == lineIdx {
			marker := "> "
			if colorize {
				marker = color.New(color.FgRed, color.Bold).Sprint("> ")
			}
			fmt.Fprintf(&b, "%s%s | %s\n", marker, gutter, lineText)
			fmt.Fprintf(&b, "%s   | %s\n", strings.Repeat(" ", width), caret)
		} else {
			fmt.Fprintf(&b, "%s | %s\n", gutter, lineText)
		}
	}
	return b.String()
}

func digits(n int) int {
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	if d == 0 {
		return 1
	}
	return d
}

// List aggregates every ParseError collected during a parse into a single
// error satisfying errors.Is/As via Unwrap() []error (§7's "return the
// complete set of errors" contract), rather than stopping at the first one.
type List struct {
	merr *multierror.Error
}

// NewList returns an empty error list.
func NewList() *List {
	return &List{merr: &multierror.Error{ErrorFormat: listFormat}}
}

func listFormat(errs []error) string {
	points := make([]string, len(errs))
	for i, e := range errs {
		points[i] = fmt.Sprintf("* %s", e)
	}
	return fmt.Sprintf("%d parse error(s) occurred:\n%s", len(errs), strings.Join(points, "\n"))
}

// Add appends a parse error to the list.
func (l *List) Add(err *ParseError) {
	l.merr = multierror.Append(l.merr, err)
}

// Len reports how many errors have been collected.
func (l *List) Len() int {
	if l.merr == nil {
		return 0
	}
	return len(l.merr.Errors)
}

// Errors returns the individual ParseErrors in order.
func (l *List) Errors() []*ParseError {
	if l.merr == nil {
		return nil
	}
	out := make([]*ParseError, len(l.merr.Errors))
	for i, e := range l.merr.Errors {
		out[i] = e.(*ParseError)
	}
	return out
}

// Truncate discards every error recorded after the first n, for callers
// that speculatively parse and backtrack (the parser's arrow-function
// lookahead) and must discard diagnostics from an abandoned attempt.
func (l *List) Truncate(n int) {
	if l.merr == nil || n >= len(l.merr.Errors) {
		return
	}
	l.merr.Errors = l.merr.Errors[:n]
}

// ErrorOrNil returns nil if the list is empty, or the underlying
// *multierror.Error otherwise, matching multierror's own idiom for "maybe
// there were errors".
func (l *List) ErrorOrNil() error {
	if l.Len() == 0 {
		return nil
	}
	return l.merr.ErrorOrNil()
}
