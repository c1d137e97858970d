package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svdev6/basic64/parser"
	"github.com/svdev6/basic64/report"
)

func runSource(t *testing.T, src string, cfg Config) (string, *report.Reporter) {
	t.Helper()
	var repBuf bytes.Buffer
	rep := report.NewReporter(&repBuf)
	p := parser.NewParser(src, rep)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %s", repBuf.String())

	var out bytes.Buffer
	in := New(prog, cfg, rep, &out, strings.NewReader(""))
	err := in.Run()
	require.NoError(t, err)
	return out.String(), rep
}

func TestLetAndPrint(t *testing.T) {
	out, rep := runSource(t, "10 LET X = 5\n20 PRINT X\n30 END\n", DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "5")
}

func TestForNextAccumulates(t *testing.T) {
	src := "10 LET S = 0\n20 FOR I = 1 TO 5\n30 LET S = S + I\n40 NEXT I\n50 PRINT S\n60 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "15")
}

func TestIfGoto(t *testing.T) {
	src := "10 LET X = 1\n20 IF X = 1 THEN 40\n30 PRINT \"SKIPPED\"\n40 PRINT \"HIT\"\n50 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.NotContains(t, out, "SKIPPED")
	assert.Contains(t, out, "HIT")
}

func TestGosubReturn(t *testing.T) {
	src := "10 GOSUB 40\n20 PRINT \"BACK\"\n30 GOTO 60\n40 PRINT \"SUB\"\n50 RETURN\n60 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "SUB")
	assert.Contains(t, out, "BACK")
}

func TestListAutoAllocationDefaultSize(t *testing.T) {
	src := "10 LET A(3) = 9\n20 PRINT A(3)\n30 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "9")
}

func TestDataReadRestore(t *testing.T) {
	src := "10 DATA 1, 2, 3\n20 READ A\n30 READ B\n40 PRINT A + B\n50 RESTORE\n60 READ C\n70 PRINT C\n80 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "1")
}

func TestDefFnSaveRestore(t *testing.T) {
	src := "10 LET X = 100\n20 DEF FNA(X) = X * 2\n30 PRINT FNA(5)\n40 PRINT X\n50 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.False(t, rep.HasErrors())
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "100")
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	var repBuf bytes.Buffer
	rep := report.NewReporter(&repBuf)
	p := parser.NewParser("10 LET X = 1 / 0\n20 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	var out bytes.Buffer
	in := New(prog, DefaultConfig(), rep, &out, strings.NewReader(""))
	err := in.Run()
	assert.Error(t, err)
	assert.True(t, rep.HasErrors())
}

func TestUndefinedVariableIsFatal(t *testing.T) {
	var repBuf bytes.Buffer
	rep := report.NewReporter(&repBuf)
	p := parser.NewParser("10 PRINT X\n20 END\n", rep)
	prog := p.Parse()
	require.False(t, p.HasErrors())

	var out bytes.Buffer
	in := New(prog, DefaultConfig(), rep, &out, strings.NewReader(""))
	err := in.Run()
	assert.Error(t, err)
}

func TestNestedGosubIsNonFatalControlFlowError(t *testing.T) {
	// The second GOSUB is rejected (one is already pending) as a
	// non-fatal control-flow error; execution resumes at the next line
	// rather than aborting the run.
	src := "10 GOSUB 30\n20 GOTO 60\n30 GOSUB 30\n40 PRINT \"RESUMED\"\n50 RETURN\n60 END\n"
	out, rep := runSource(t, src, DefaultConfig())
	assert.True(t, rep.HasErrors())
	assert.Contains(t, out, "RESUMED")
}

func TestTraceDoesNotBecomeAnError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trace = true
	_, rep := runSource(t, "10 LET X = 1\n20 END\n", cfg)
	assert.False(t, rep.HasErrors())
}
