package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdev6/basic64/parser"
	"github.com/svdev6/basic64/report"
)

func lowerSource(t *testing.T, src string) *Module {
	t.Helper()
	var buf bytes.Buffer
	rep := report.NewReporter(&buf)
	p := parser.NewParser(src, rep)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "parse errors: %s", buf.String())
	mod, err := Lower(prog, 1)
	require.NoError(t, err)
	return mod
}

func TestLowerScalarLetAndPrint(t *testing.T) {
	mod := lowerSource(t, "10 LET X = 5\n20 PRINT X\n30 END\n")
	assert.Contains(t, mod.LineToPC, 10)
	assert.Contains(t, mod.LineToPC, 20)
	assert.Contains(t, mod.LineToPC, 30)

	var sawSet, sawPrint bool
	for _, instr := range mod.Code {
		if instr.Op == GLOBAL_SET && instr.Name == "X" {
			sawSet = true
		}
		if instr.Op == PRINTB {
			sawPrint = true
		}
	}
	assert.True(t, sawSet)
	assert.True(t, sawPrint)
}

func TestLowerOneDimArrayAllocatesMemory(t *testing.T) {
	mod := lowerSource(t, "10 DIM A(5)\n20 LET A(1) = 9\n30 END\n")
	base, ok := mod.ListBase["A"]
	assert.True(t, ok)
	assert.GreaterOrEqual(t, mod.MemSize, base+5)
}

func TestLowerTwoDimArrayIsUnsupported(t *testing.T) {
	var buf bytes.Buffer
	rep := report.NewReporter(&buf)
	p := parser.NewParser("10 DIM A(3,3)\n20 LET A(1,1) = 9\n30 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	_, err := Lower(prog, 1)
	assert.Error(t, err)
}

func TestLowerDataStatementIsUnsupported(t *testing.T) {
	var buf bytes.Buffer
	rep := report.NewReporter(&buf)
	p := parser.NewParser("10 DATA 1, 2\n20 READ A\n30 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	_, err := Lower(prog, 1)
	assert.Error(t, err)
}

func TestLowerIfEmitsControlTriple(t *testing.T) {
	mod := lowerSource(t, "10 IF 1 = 1 THEN 30\n20 PRINT 0\n30 END\n")
	var ops []Op
	for _, instr := range mod.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, IF)
	assert.Contains(t, ops, ENDIF)
}

func TestLowerForEmitsLoopBracket(t *testing.T) {
	mod := lowerSource(t, "10 FOR I = 1 TO 3\n20 PRINT I\n30 NEXT I\n40 END\n")
	var ops []Op
	for _, instr := range mod.Code {
		ops = append(ops, instr.Op)
	}
	assert.Contains(t, ops, LOOP)
	assert.Contains(t, ops, CBREAK)
	assert.Contains(t, ops, ENDLOOP)
}

func TestBuildControlMapLinksIfEndif(t *testing.T) {
	mod := lowerSource(t, "10 IF 1 = 1 THEN 30\n20 PRINT 0\n30 END\n")
	ifIdx, endifIdx := -1, -1
	for i, instr := range mod.Code {
		switch instr.Op {
		case IF:
			ifIdx = i
		case ENDIF:
			endifIdx = i
		}
	}
	require.NotEqual(t, -1, ifIdx)
	require.NotEqual(t, -1, endifIdx)
	assert.Equal(t, endifIdx, mod.Control[ifIdx])
}

func TestBuildControlMapLinksLoopBreakEnd(t *testing.T) {
	mod := lowerSource(t, "10 FOR I = 1 TO 3\n20 PRINT I\n30 NEXT I\n40 END\n")
	loopIdx, cbreakIdx, endloopIdx := -1, -1, -1
	for i, instr := range mod.Code {
		switch instr.Op {
		case LOOP:
			loopIdx = i
		case CBREAK:
			cbreakIdx = i
		case ENDLOOP:
			endloopIdx = i
		}
	}
	require.NotEqual(t, -1, loopIdx)
	require.NotEqual(t, -1, cbreakIdx)
	require.NotEqual(t, -1, endloopIdx)

	assert.Equal(t, endloopIdx, mod.Control[cbreakIdx])
	assert.Equal(t, loopIdx, mod.Control[endloopIdx])
}
