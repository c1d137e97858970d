/*
File: basic64/report/report.go
*/

// Package report centralizes how basic64 surfaces diagnostics to the user:
// lex/syntax/semantic errors during load, and fatal/non-fatal runtime
// errors during execution. Every message is prefixed with the offending
// line number and, where a token span is known, the span is underlined.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// Kind classifies a diagnostic for prefixing and, eventually, counting.
type Kind int

const (
	LexError Kind = iota
	SyntaxError
	SemanticError
	RuntimeError  // fatal - terminates the run
	ControlFlow   // non-fatal - reported, execution continues
	Trace         // -t line trace, not an error at all
)

func (k Kind) label() string {
	switch k {
	case LexError:
		return "LEX ERROR"
	case SyntaxError:
		return "SYNTAX ERROR"
	case SemanticError:
		return "SEMANTIC ERROR"
	case RuntimeError:
		return "RUNTIME ERROR"
	case ControlFlow:
		return "CONTROL-FLOW ERROR"
	case Trace:
		return "TRACE"
	default:
		return "ERROR"
	}
}

// Reporter accumulates diagnostics and renders them to an io.Writer
// (normally os.Stderr), colorized when the writer is a terminal.
type Reporter struct {
	out    io.Writer
	errors []string
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// StderrReporter is the default reporter used by the CLI driver.
func StderrReporter() *Reporter { return NewReporter(os.Stderr) }

// Report prints one diagnostic at the given line, with an optional column
// used to underline the offending token when it is known (col <= 0 skips
// the underline).
func (r *Reporter) Report(kind Kind, line, col int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	entry := fmt.Sprintf("[%s] line %d: %s", kind.label(), line, msg)

	switch kind {
	case Trace:
		cyanColor.Fprintln(r.out, entry)
		return
	case ControlFlow:
		r.errors = append(r.errors, entry)
		yellowColor.Fprintln(r.out, entry)
	default:
		r.errors = append(r.errors, entry)
		redColor.Fprintln(r.out, entry)
	}
	if col > 0 {
		cyanColor.Fprintln(r.out, underline(col))
	}
}

// underline draws a caret line positioned under column col (1-based).
func underline(col int) string {
	if col < 1 {
		col = 1
	}
	b := make([]byte, col)
	for i := range b {
		b[i] = ' '
	}
	return string(b[:col-1]) + "^"
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool { return len(r.errors) > 0 }

// Errors returns every recorded diagnostic, in report order.
func (r *Reporter) Errors() []string { return r.errors }
