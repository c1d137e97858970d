package astdump

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdev6/basic64/parser"
	"github.com/svdev6/basic64/report"
)

func TestDumpTextRendersEveryLine(t *testing.T) {
	var rbuf bytes.Buffer
	rep := report.NewReporter(&rbuf)
	p := parser.NewParser("10 LET X = 5\n20 PRINT X\n30 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	var out bytes.Buffer
	Dump(prog, Text, &out)

	text := out.String()
	assert.Contains(t, text, "Program")
	assert.Contains(t, text, "Line 10")
	assert.Contains(t, text, "Line 20")
	assert.Contains(t, text, "Line 30")
	assert.Contains(t, text, "Variable X")
}

func TestDumpDotWrapsInDigraph(t *testing.T) {
	var rbuf bytes.Buffer
	rep := report.NewReporter(&rbuf)
	p := parser.NewParser("10 LET X = 5\n20 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	var out bytes.Buffer
	Dump(prog, Dot, &out)

	dot := out.String()
	assert.Contains(t, dot, "digraph BASIC {")
	assert.Contains(t, dot, "}")
}
