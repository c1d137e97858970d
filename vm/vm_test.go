package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdev6/basic64/ir"
	"github.com/svdev6/basic64/parser"
	"github.com/svdev6/basic64/report"
)

func runVM(t *testing.T, src string) string {
	t.Helper()
	var repBuf bytes.Buffer
	rep := report.NewReporter(&repBuf)
	p := parser.NewParser(src, rep)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %s", repBuf.String())

	mod, err := ir.Lower(prog, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(mod, &out, 15, 1)
	require.NoError(t, m.Run())
	return out.String()
}

func TestVMLetAndPrint(t *testing.T) {
	out := runVM(t, "10 LET X = 5\n20 PRINT X\n30 END\n")
	assert.Contains(t, out, "5")
}

func TestVMArithmetic(t *testing.T) {
	out := runVM(t, "10 LET X = 2 + 3 * 4\n20 PRINT X\n30 END\n")
	assert.Contains(t, out, "14")
}

func TestVMIfBranchSkipsElseLine(t *testing.T) {
	out := runVM(t, "10 IF 1 = 2 THEN 40\n20 PRINT 1\n30 GOTO 50\n40 PRINT 2\n50 END\n")
	assert.Contains(t, out, "1")
	assert.NotContains(t, out, "2")
}

func TestVMIfBranchTakesThen(t *testing.T) {
	out := runVM(t, "10 IF 1 = 1 THEN 40\n20 PRINT 1\n30 GOTO 50\n40 PRINT 2\n50 END\n")
	assert.Contains(t, out, "2")
	assert.NotContains(t, out, "1")
}

func TestVMForLoopAccumulates(t *testing.T) {
	out := runVM(t, "10 LET S = 0\n20 FOR I = 1 TO 5\n30 LET S = S + I\n40 NEXT I\n50 PRINT S\n60 END\n")
	assert.Contains(t, out, "15")
}

func TestVMGosubReturnsAfterCallSite(t *testing.T) {
	out := runVM(t, "10 GOSUB 40\n20 PRINT 1\n30 GOTO 60\n40 PRINT 2\n50 RETURN\n60 END\n")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "1")
}

func TestVMOneDimArrayReadWrite(t *testing.T) {
	out := runVM(t, "10 DIM A(5)\n20 LET A(1) = 9\n30 PRINT A(1)\n40 END\n")
	assert.Contains(t, out, "9")
}

func TestVMDivisionByZeroErrors(t *testing.T) {
	var repBuf bytes.Buffer
	rep := report.NewReporter(&repBuf)
	p := parser.NewParser("10 LET X = 1 / 0\n20 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	mod, err := ir.Lower(prog, 1)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(mod, &out, 15, 1)
	assert.Error(t, m.Run())
}
