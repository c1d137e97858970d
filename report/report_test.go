package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportAccumulatesErrors(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(SyntaxError, 10, 0, "unexpected token %q", "+")

	assert.True(t, r.HasErrors())
	assert.Len(t, r.Errors(), 1)
	assert.Contains(t, r.Errors()[0], "SYNTAX ERROR")
	assert.Contains(t, r.Errors()[0], "line 10")
	assert.Contains(t, buf.String(), "unexpected token")
}

func TestTraceDoesNotCountAsError(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(Trace, 20, 0, "line %d", 20)

	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Errors())
	assert.True(t, strings.Contains(buf.String(), "TRACE"))
}

func TestControlFlowIsNonFatalButRecorded(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(ControlFlow, 5, 0, "GOSUB already pending")

	assert.True(t, r.HasErrors())
	assert.Contains(t, r.Errors()[0], "CONTROL-FLOW ERROR")
}

func TestUnderlineMarksColumn(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(LexError, 1, 5, "bad char")

	out := buf.String()
	assert.Contains(t, out, "^")
}
