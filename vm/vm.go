/*
File: basic64/vm/vm.go
*/

// Package vm executes a lowered ir.Module on a stack machine: an operand
// stack of value.Value, a flat numeric memory buffer for PEEK/POKE, and a
// control map (built by package ir) that drives the structured IF/LOOP
// branches.
package vm

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/svdev6/basic64/ir"
	"github.com/svdev6/basic64/value"
)

const printWidth = 80

// VM holds all mutable state for one run of a lowered Module.
type VM struct {
	mod *ir.Module

	stack   []value.Value
	globals map[string]value.Value
	mem     []value.Value

	callStack []int // GOSUB return sites, by instruction index

	pc int

	out      io.Writer
	printCol int
	tabWidth int

	rng       *rand.Rand
	startTime time.Time
}

// New returns a VM ready to Run mod.
func New(mod *ir.Module, out io.Writer, tabWidth int, seed int64) *VM {
	return &VM{
		mod:       mod,
		globals:   make(map[string]value.Value),
		mem:       make([]value.Value, mod.MemSize),
		out:       out,
		tabWidth:  tabWidth,
		rng:       rand.New(rand.NewSource(seed)),
		startTime: time.Now(),
	}
}

// Run executes mod's instruction stream to completion (a RET opcode, which
// END/STOP lower to and which halts even inside a GOSUB, or the end of the
// code).
func (m *VM) Run() error {
	code := m.mod.Code
	for m.pc < len(code) {
		instr := code[m.pc]
		halt, err := m.step(instr)
		if err != nil {
			return fmt.Errorf("line %d: %w", m.currentLine(), err)
		}
		if halt {
			return nil
		}
		m.pc++
	}
	return nil
}

func (m *VM) currentLine() int {
	best := 0
	for line, pc := range m.mod.LineToPC {
		if pc <= m.pc && line > best {
			best = line
		}
	}
	return best
}

func (m *VM) push(v value.Value) { m.stack = append(m.stack, v) }

func (m *VM) pop() (value.Value, error) {
	if len(m.stack) == 0 {
		return value.Value{}, fmt.Errorf("operand stack underflow")
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *VM) popNum() (float64, error) {
	v, err := m.pop()
	if err != nil {
		return 0, err
	}
	if !v.IsNumber() {
		return 0, fmt.Errorf("expected a number, got a string")
	}
	return v.Num, nil
}

// step executes one instruction. halt=true tells Run to stop immediately
// (any RET, i.e. END/STOP).
func (m *VM) step(instr ir.Instr) (halt bool, err error) {
	switch instr.Op {
	case ir.CONSTI, ir.CONSTF:
		m.push(value.Number(numOperand(instr)))
	case ir.CONSTS:
		m.push(value.String(instr.StrOp))

	case ir.ADDI, ir.ADDF:
		return false, m.binNum(func(a, b float64) float64 { return a + b })
	case ir.SUBI, ir.SUBF:
		return false, m.binNum(func(a, b float64) float64 { return a - b })
	case ir.MULI, ir.MULF:
		return false, m.binNum(func(a, b float64) float64 { return a * b })
	case ir.DIVI, ir.DIVF:
		r, err := m.popNum()
		if err != nil {
			return false, err
		}
		l, err := m.popNum()
		if err != nil {
			return false, err
		}
		if r == 0 {
			return false, fmt.Errorf("division by zero")
		}
		m.push(value.Number(l / r))
		return false, nil
	case ir.MODI:
		r, err := m.popNum()
		if err != nil {
			return false, err
		}
		l, err := m.popNum()
		if err != nil {
			return false, err
		}
		if int(r) == 0 {
			return false, fmt.Errorf("division by zero")
		}
		m.push(value.Number(float64(int(l) % int(r))))
		return false, nil

	case ir.NEG:
		n, err := m.popNum()
		if err != nil {
			return false, err
		}
		m.push(value.Number(-n))

	case ir.LTI:
		return false, m.binRel(func(a, b float64) bool { return a < b })
	case ir.LEI:
		return false, m.binRel(func(a, b float64) bool { return a <= b })
	case ir.GTI:
		return false, m.binRel(func(a, b float64) bool { return a > b })
	case ir.GEI:
		return false, m.binRel(func(a, b float64) bool { return a >= b })
	case ir.EQI:
		return false, m.binRel(func(a, b float64) bool { return a == b })
	case ir.NEI:
		return false, m.binRel(func(a, b float64) bool { return a != b })

	case ir.GLOBAL_GET:
		v, ok := m.globals[instr.Name]
		if !ok {
			return false, fmt.Errorf("undefined variable %s", instr.Name)
		}
		m.push(v)
	case ir.GLOBAL_SET:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.globals[instr.Name] = v

	case ir.PEEKF, ir.PEEKI:
		addr, err := m.popNum()
		if err != nil {
			return false, err
		}
		i := int(addr)
		if i < 0 || i >= len(m.mem) {
			return false, fmt.Errorf("memory address %d out of range", i)
		}
		m.push(m.mem[i])
	case ir.POKEF, ir.POKEI:
		addr, err := m.popNum()
		if err != nil {
			return false, err
		}
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		i := int(addr)
		if i < 0 || i >= len(m.mem) {
			return false, fmt.Errorf("memory address %d out of range", i)
		}
		m.mem[i] = v

	case ir.PRINTB:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		m.writeText(renderForPrint(v))
	case ir.PRINTSEP:
		if instr.IntOp == 0 {
			m.newline()
		} else {
			m.padTo(widthFor(byte(instr.IntOp), m.tabWidth))
		}

	case ir.BUILTIN:
		return false, m.callBuiltin(instr)

	case ir.JUMP:
		pc, ok := m.mod.LineToPC[int(instr.IntOp)]
		if !ok {
			return false, fmt.Errorf("undefined reference: no such line %d", instr.IntOp)
		}
		m.pc = pc - 1
	case ir.GOSUB:
		pc, ok := m.mod.LineToPC[int(instr.IntOp)]
		if !ok {
			return false, fmt.Errorf("undefined reference: no such line %d", instr.IntOp)
		}
		m.callStack = append(m.callStack, m.pc)
		m.pc = pc - 1
	case ir.RETGS:
		if len(m.callStack) == 0 {
			return false, fmt.Errorf("RETURN without a pending GOSUB")
		}
		ret := m.callStack[len(m.callStack)-1]
		m.callStack = m.callStack[:len(m.callStack)-1]
		m.pc = ret

	case ir.IF:
		cond, err := m.pop()
		if err != nil {
			return false, err
		}
		if !cond.Truthy() {
			m.pc = m.mod.Control[m.pc]
		}
	case ir.ELSE, ir.ENDIF:
		if instr.Op == ir.ELSE {
			m.pc = m.mod.Control[m.pc]
		}
		// ENDIF is a no-op landing point.

	case ir.LOOP:
		// no-op landing point for the back-edge.
	case ir.CBREAK:
		cond, err := m.pop()
		if err != nil {
			return false, err
		}
		if cond.Truthy() {
			m.pc = m.mod.Control[m.pc]
		}
	case ir.ENDLOOP:
		m.pc = m.mod.Control[m.pc]

	case ir.LINE:
		// line marker only, used by currentLine() for error reporting.

	case ir.RET:
		return true, nil

	default:
		return false, fmt.Errorf("internal error: unimplemented opcode %v", instr.Op)
	}
	return false, nil
}

func numOperand(instr ir.Instr) float64 {
	if instr.Op == ir.CONSTI {
		return float64(instr.IntOp)
	}
	return instr.FltOp
}

func (m *VM) binNum(f func(a, b float64) float64) error {
	r, err := m.popNum()
	if err != nil {
		return err
	}
	l, err := m.popNum()
	if err != nil {
		return err
	}
	m.push(value.Number(f(l, r)))
	return nil
}

func (m *VM) binRel(f func(a, b float64) bool) error {
	r, err := m.pop()
	if err != nil {
		return err
	}
	l, err := m.pop()
	if err != nil {
		return err
	}
	var ok bool
	if l.IsString() && r.IsString() {
		ok = f(float64(stringsCompare(l.Str, r.Str)), 0)
	} else if l.IsNumber() && r.IsNumber() {
		ok = f(l.Num, r.Num)
	} else {
		return fmt.Errorf("cannot compare a number to a string")
	}
	if ok {
		m.push(value.Number(1))
	} else {
		m.push(value.Number(0))
	}
	return nil
}

func stringsCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func renderForPrint(v value.Value) string {
	if v.IsString() {
		return v.Str
	}
	return value.Format(v.Num)
}

func widthFor(sep byte, tabWidth int) int {
	if sep == ',' {
		return tabWidth
	}
	return 1
}

func (m *VM) padTo(width int) {
	target := ((m.printCol / width) + 1) * width
	m.writeText(spaces(target - m.printCol))
}

func (m *VM) writeText(s string) {
	for len(s) > 0 {
		remain := printWidth - m.printCol
		if remain <= 0 {
			m.newline()
			remain = printWidth
		}
		n := len(s)
		if n > remain {
			n = remain
		}
		fmt.Fprint(m.out, s[:n])
		m.printCol += n
		s = s[n:]
		if m.printCol >= printWidth {
			m.newline()
		}
	}
}

func (m *VM) newline() {
	fmt.Fprintln(m.out)
	m.printCol = 0
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// builtin is the signature every BUILTIN opcode dispatches through,
// matching the bltinFunc table shape the tree interpreter's own
// builtins.go uses.
type builtin func(m *VM, args []value.Value) (value.Value, error)

var builtins = map[string]builtin{
	"SIN":    mathFn(math.Sin),
	"COS":    mathFn(math.Cos),
	"TAN":    mathFn(math.Tan),
	"ATN":    mathFn(math.Atan),
	"EXP":    mathFn(math.Exp),
	"ABS":    mathFn(math.Abs),
	"LOG":    mathFn(math.Log),
	"SQR":    mathFn(math.Sqrt),
	"INT":    mathFn(math.Trunc),
	"DEG":    mathFn(func(x float64) float64 { return x * 180 / math.Pi }),
	"^":      builtinPow,
	"RND":    builtinRND,
	"PI":     builtinPI,
	"TIME":   builtinTIME,
	"TAB":    builtinTAB,
	"LEN":    builtinLEN,
	"LEFT$":  builtinLEFT,
	"MID$":   builtinMID,
	"RIGHT$": builtinRIGHT,
	"CHR$":   builtinCHR,
}

func mathFn(f func(float64) float64) builtin {
	return func(m *VM, args []value.Value) (value.Value, error) {
		if len(args) != 1 || !args[0].IsNumber() {
			return value.Value{}, fmt.Errorf("expected one numeric argument")
		}
		return value.Number(f(args[0].Num)), nil
	}
}

func builtinPow(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsNumber() || !args[1].IsNumber() {
		return value.Value{}, fmt.Errorf("^ expects two numeric operands")
	}
	return value.Number(math.Pow(args[0].Num, args[1].Num)), nil
}

func builtinRND(m *VM, args []value.Value) (value.Value, error) {
	return value.Number(m.rng.Float64()), nil
}

func builtinPI(m *VM, args []value.Value) (value.Value, error) {
	return value.Number(3.141592654), nil
}

func builtinTIME(m *VM, args []value.Value) (value.Value, error) {
	return value.Number(time.Since(m.startTime).Seconds()), nil
}

func builtinTAB(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsNumber() {
		return value.Value{}, fmt.Errorf("TAB expects one numeric argument")
	}
	n := int(args[0].Num)
	if n < 0 {
		n = 0
	}
	return value.String(spaces(n)), nil
}

func builtinLEN(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsString() {
		return value.Value{}, fmt.Errorf("LEN expects one string argument")
	}
	return value.Number(float64(len(args[0].Str))), nil
}

func builtinLEFT(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsString() || !args[1].IsNumber() {
		return value.Value{}, fmt.Errorf("LEFT$ expects (string, number)")
	}
	s, n := args[0].Str, int(args[1].Num)
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.String(s[:n]), nil
}

func builtinRIGHT(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsString() || !args[1].IsNumber() {
		return value.Value{}, fmt.Errorf("RIGHT$ expects (string, number)")
	}
	s, n := args[0].Str, int(args[1].Num)
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return value.String(s[len(s)-n:]), nil
}

func builtinMID(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 3 || !args[0].IsString() || !args[1].IsNumber() || !args[2].IsNumber() {
		return value.Value{}, fmt.Errorf("MID$ expects (string, start, length)")
	}
	s := args[0].Str
	start := int(args[1].Num) - 1
	n := int(args[2].Num)
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	if end < start {
		end = start
	}
	return value.String(s[start:end]), nil
}

func builtinCHR(m *VM, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsNumber() {
		return value.Value{}, fmt.Errorf("CHR$ expects one numeric argument")
	}
	return value.String(string(rune(int(args[0].Num)))), nil
}

func (m *VM) callBuiltin(instr ir.Instr) error {
	fn, ok := builtins[instr.Name]
	if !ok {
		return fmt.Errorf("unknown builtin %s", instr.Name)
	}
	n := int(instr.IntOp)
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := m.pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	v, err := fn(m, args)
	if err != nil {
		return err
	}
	m.push(v)
	return nil
}
