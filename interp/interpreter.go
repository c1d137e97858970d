/*
File: basic64/interp/interpreter.go
*/

// Package interp is the tree-walking execution backend: it preprocesses a
// parsed Program (sorting lines, harvesting DATA, matching FOR/NEXT,
// checking END) and then runs it statement by statement.
package interp

import (
	"bufio"
	"io"
	"math/rand"
	"time"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/report"
	"github.com/svdev6/basic64/value"
)

// Config collects the CLI-driven knobs that change interpreter behavior.
type Config struct {
	ArrayBase      int  // -ar
	TabWidth       int  // --tabs
	UppercaseInput bool // -u
	GoNext         bool // -g
	Trace          bool // -t
	Seed           int64
	HasSeed        bool // -rn
}

// DefaultConfig returns the documented default knob values.
func DefaultConfig() Config {
	return Config{ArrayBase: 1, TabWidth: 15}
}

type loopFrame struct {
	forPC int
	step  float64
}

// Interpreter is the tree-walking execution engine. It carries a
// Writer/Reader pair so tests and the CLI driver can redirect I/O without
// touching the interpreter's logic.
type Interpreter struct {
	Prog *ast.Program
	Env  *Environment
	Rep  *report.Reporter

	printOut io.Writer
	inputSrc *bufio.Reader

	cfg Config

	order   []int
	lineIdx map[int]int
	pc      int

	dataPool []value.Value
	dc       int

	loopEnd   map[int]int
	loopStack []loopFrame

	gosubReturn    int
	hasGosubReturn bool

	printCol  int
	tabWidth  int
	rng       *rand.Rand
	startTime time.Time

	halted bool
}

// New returns an Interpreter for prog, configured by cfg, writing PRINT
// output to out and reading INPUT lines from in.
func New(prog *ast.Program, cfg Config, rep *report.Reporter, out io.Writer, in io.Reader) *Interpreter {
	seed := time.Now().UnixNano()
	if cfg.HasSeed {
		seed = cfg.Seed
	}
	return &Interpreter{
		Prog:      prog,
		Env:       NewEnvironment(cfg.ArrayBase),
		Rep:       rep,
		printOut:  out,
		inputSrc:  bufio.NewReader(in),
		cfg:       cfg,
		tabWidth:  cfg.TabWidth,
		loopEnd:   make(map[int]int),
		rng:       rand.New(rand.NewSource(seed)),
		startTime: time.Now(),
	}
}

// SetOutput redirects PRINT output after construction. The CLI driver
// passes its -of sink to New instead of calling this.
func (in *Interpreter) SetOutput(w io.Writer) { in.printOut = w }

// SetInput redirects INPUT's source after construction. The CLI driver
// passes its -if source to New instead of calling this.
func (in *Interpreter) SetInput(r io.Reader) { in.inputSrc = bufio.NewReader(r) }

// Run preprocesses the program and executes it to completion or a fatal
// error. Non-fatal errors are reported via Rep and execution continues.
func (in *Interpreter) Run() error {
	if err := in.preprocess(); err != nil {
		line := 0
		if ee, ok := err.(*execError); ok {
			line = ee.Line
		}
		in.Rep.Report(report.SemanticError, line, 0, "%s", err)
		return err
	}
	in.pc = 0
	for in.pc < len(in.order) && !in.halted {
		lineNo := in.order[in.pc]
		stmt := in.Prog.Lines[lineNo]

		if in.cfg.Trace {
			in.Rep.Report(report.Trace, lineNo, 0, "line %d", lineNo)
		}

		jumped, err := in.execStmt(stmt, lineNo)
		if err != nil {
			ee, _ := err.(*execError)
			if ee == nil || ee.Fatal {
				msg := err.Error()
				line := lineNo
				if ee != nil {
					line = ee.Line
				}
				in.Rep.Report(report.RuntimeError, line, 0, "%s", msg)
				return err
			}
			in.Rep.Report(report.ControlFlow, ee.Line, 0, "%s", ee.Msg)
			in.pc++
			continue
		}
		if !jumped {
			in.pc++
		}
	}
	return nil
}

// lineToPC translates a BASIC line number to its program-counter index.
// ok is false when the line doesn't exist; the caller applies the
// go-next policy in that case.
func (in *Interpreter) lineToPC(line int) (int, bool) {
	pc, ok := in.lineIdx[line]
	return pc, ok
}
