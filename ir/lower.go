/*
File: basic64/ir/lower.go
*/
package ir

import (
	"fmt"

	"github.com/svdev6/basic64/ast"
)

// Module is a lowered program: its instruction stream, a BASIC line
// number to instruction-index map (for JUMP/GOSUB target translation),
// and the control map linking structured-branch siblings by index.
type Module struct {
	Code     []Instr
	LineToPC map[int]int
	Control  map[int]int

	// ListBase maps a one-dimensional numeric array's name to the address
	// of its first cell in the VM's flat memory buffer. Two-dimensional
	// tables and string arrays are not supported by this backend - see
	// DESIGN.md; programs using tables fail to lower with an error, which
	// the driver reports before exiting (it does not fall back to the tree
	// interpreter).
	ListBase map[string]int
	MemSize  int
}

type lowerer struct {
	prog      *ast.Program
	code      []Instr
	listBase  map[string]int
	listLen   map[string]int
	nextAddr  int
	arrayBase int
	pos       int // index into prog.Order currently being lowered
}

// Lower flattens prog into a Module runnable by package vm.
func Lower(prog *ast.Program, arrayBase int) (*Module, error) {
	l := &lowerer{
		prog:      prog,
		listBase:  make(map[string]int),
		listLen:   make(map[string]int),
		arrayBase: arrayBase,
	}
	l.allocateArrays()

	for l.pos = 0; l.pos < len(prog.Order); l.pos++ {
		line := prog.Order[l.pos]
		l.emit(Instr{Op: LINE, IntOp: int64(line)})
		if err := l.lowerStmt(prog.Lines[line]); err != nil {
			return nil, err
		}
	}

	lineToPC := make(map[int]int)
	for idx, instr := range l.code {
		if instr.Op == LINE {
			lineToPC[int(instr.IntOp)] = idx
		}
	}
	control, err := buildControlMap(l.code)
	if err != nil {
		return nil, err
	}
	return &Module{
		Code:     l.code,
		LineToPC: lineToPC,
		Control:  control,
		ListBase: l.listBase,
		MemSize:  l.nextAddr,
	}, nil
}

// allocateArrays walks every DIM statement first, so LET/READ targets
// that reference an array later in the scan already know its address
// and length. A one-dimensional array never explicitly DIM'd still gets
// the legacy default length of 10, matching the tree interpreter.
func (l *lowerer) allocateArrays() {
	for _, line := range l.prog.Order {
		dim, ok := l.prog.Lines[line].(*ast.DimStmt)
		if !ok {
			continue
		}
		for _, v := range dim.Vars {
			if v.Dim2 != nil {
				continue // tables: tree-interpreter-only, see Module doc
			}
			n := literalInt(v.Dim1, 10)
			l.listLen[v.Name] = n
		}
	}
}

func (l *lowerer) addrOf(name string) int {
	if a, ok := l.listBase[name]; ok {
		return a
	}
	n, ok := l.listLen[name]
	if !ok {
		n = 10
	}
	a := l.nextAddr
	l.listBase[name] = a
	l.nextAddr += n
	return a
}

func literalInt(e ast.Expression, def int) int {
	if n, ok := e.(*ast.NumberLit); ok {
		return int(n.Value)
	}
	return def
}

func (l *lowerer) emit(i Instr) { l.code = append(l.code, i) }

func (l *lowerer) lowerStmt(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return l.lowerLet(s)
	case *ast.PrintStmt:
		return l.lowerPrint(s)
	case *ast.GotoStmt:
		l.emit(Instr{Op: JUMP, IntOp: int64(s.Target)})
		return nil
	case *ast.GosubStmt:
		l.emit(Instr{Op: GOSUB, IntOp: int64(s.Target)})
		return nil
	case *ast.ReturnStmt:
		l.emit(Instr{Op: RETGS})
		return nil
	case *ast.IfStmt:
		return l.lowerIf(s)
	case *ast.ForStmt:
		return l.lowerFor(s)
	case *ast.NextStmt:
		return nil // the matching ForStmt already emitted ENDLOOP
	case *ast.RemarkStmt, *ast.DimStmt:
		return nil // DIM bounds were already applied by allocateArrays
	case *ast.DataStmt, *ast.RestoreStmt, *ast.DefStmt, *ast.ReadStmt, *ast.InputStmt:
		// DATA/READ/RESTORE/INPUT/DEF FN exercise interpreter-only paths
		// not in the fixed opcode vocabulary (no READ/INPUT opcode
		// exists); these statements are unsupported by the IR/VM
		// backend, and the driver reports that instead of lowering
		// them. Returning an error here is how that surfaces.
		return fmt.Errorf("line uses a statement the IR backend does not support: %T", stmt)
	case *ast.EndStmt, *ast.StopStmt:
		l.emit(Instr{Op: RET})
		return nil
	default:
		return fmt.Errorf("internal error: unknown statement %T", stmt)
	}
}

func (l *lowerer) lowerLet(s *ast.LetStmt) error {
	if s.Target.Dim1 == nil {
		if err := l.lowerExpr(s.Value); err != nil {
			return err
		}
		l.emit(Instr{Op: GLOBAL_SET, Name: s.Target.Name})
		return nil
	}
	if s.Target.Dim2 != nil {
		return fmt.Errorf("two-dimensional array %s is not supported by the IR backend", s.Target.Name)
	}
	if err := l.lowerExpr(s.Value); err != nil {
		return err
	}
	if err := l.lowerIndexAddr(s.Target); err != nil {
		return err
	}
	l.emit(Instr{Op: POKEF})
	return nil
}

// lowerIndexAddr pushes the absolute memory address of target's cell.
func (l *lowerer) lowerIndexAddr(target *ast.Variable) error {
	base := l.addrOf(target.Name)
	l.emit(Instr{Op: CONSTI, IntOp: int64(base - l.arrayBase)})
	if err := l.lowerExpr(target.Dim1); err != nil {
		return err
	}
	l.emit(Instr{Op: ADDI})
	return nil
}

// lowerPrint emits one PRINTB per value and one PRINTSEP per separator.
// PRINTSEP's operand is the separator byte (',' or ';'); 0 stands for the
// trailing newline emitted when the line doesn't end on a bare separator,
// matching execPrint's own rule in the tree interpreter.
func (l *lowerer) lowerPrint(s *ast.PrintStmt) error {
	for _, elem := range s.Elems {
		if elem.Expr == nil {
			l.emit(Instr{Op: PRINTSEP, IntOp: int64(elem.Sep)})
			continue
		}
		if err := l.lowerExpr(elem.Expr); err != nil {
			return err
		}
		l.emit(Instr{Op: PRINTB})
	}
	if len(s.Elems) == 0 || s.Elems[len(s.Elems)-1].Expr != nil {
		l.emit(Instr{Op: PRINTSEP, IntOp: 0})
	}
	return nil
}

// lowerIf lowers a conditional guarded by IF: the relational test feeds
// IF, which skips the enclosed JUMP when falsy.
func (l *lowerer) lowerIf(s *ast.IfStmt) error {
	if err := l.lowerExpr(s.Cond); err != nil {
		return err
	}
	l.emit(Instr{Op: IF})
	l.emit(Instr{Op: JUMP, IntOp: int64(s.Then)})
	l.emit(Instr{Op: ENDIF})
	return nil
}

// lowerFor emits the LOOP/CBREAK/.../ENDLOOP bracket for FOR/NEXT. The
// break condition is "has the loop variable passed its bound", tested
// before every iteration including the first, so a loop whose start
// value is already past its bound runs zero times here (the tree
// interpreter runs such a body once). STEP must be a numeric literal,
// optionally negated; any other STEP expression fails to lower.
func (l *lowerer) lowerFor(s *ast.ForStmt) error {
	step := 1.0
	switch n := s.Step.(type) {
	case nil:
	case *ast.NumberLit:
		step = n.Value
	case *ast.UnaryExpr:
		lit, ok := n.Right.(*ast.NumberLit)
		if !ok {
			return fmt.Errorf("FOR %s: a non-constant STEP is not supported by the IR backend", s.Var.Name)
		}
		step = -lit.Value
	default:
		return fmt.Errorf("FOR %s: a non-constant STEP is not supported by the IR backend", s.Var.Name)
	}

	if err := l.lowerExpr(s.From); err != nil {
		return err
	}
	l.emit(Instr{Op: GLOBAL_SET, Name: s.Var.Name})

	l.emit(Instr{Op: LOOP})
	l.emit(Instr{Op: GLOBAL_GET, Name: s.Var.Name})
	if err := l.lowerExpr(s.To); err != nil {
		return err
	}
	if step >= 0 {
		l.emit(Instr{Op: GTI}) // break when v > hi
	} else {
		l.emit(Instr{Op: LTI}) // break when v < hi
	}
	l.emit(Instr{Op: CBREAK})

	// Lower every line between this FOR and its matching NEXT as the loop
	// body, advancing l.pos past them (a nested FOR's own recursive call
	// advances l.pos past its own NEXT in turn), then step the variable.
	start := l.pos
	bodyEnd, err := l.matchingNext(start, s.Var.Name)
	if err != nil {
		return err
	}
	i := start + 1
	for i < bodyEnd {
		line := l.prog.Order[i]
		l.emit(Instr{Op: LINE, IntOp: int64(line)})
		l.pos = i
		if err := l.lowerStmt(l.prog.Lines[line]); err != nil {
			return err
		}
		i = l.pos + 1
	}
	l.pos = bodyEnd

	l.emit(Instr{Op: LINE, IntOp: int64(l.prog.Order[bodyEnd])})
	l.emit(Instr{Op: GLOBAL_GET, Name: s.Var.Name})
	l.emit(Instr{Op: CONSTF, FltOp: step})
	l.emit(Instr{Op: ADDF})
	l.emit(Instr{Op: GLOBAL_SET, Name: s.Var.Name})
	l.emit(Instr{Op: ENDLOOP})
	return nil
}

// matchingNext returns the index in prog.Order of the nearest NEXT naming
// loopVar at or after start+1, mirroring the tree interpreter's own
// nearest-same-name matching in preprocess.go's matchForNext.
func (l *lowerer) matchingNext(start int, loopVar string) (int, error) {
	for q := start + 1; q < len(l.prog.Order); q++ {
		next, ok := l.prog.Lines[l.prog.Order[q]].(*ast.NextStmt)
		if !ok {
			continue
		}
		if next.Var.Name == loopVar {
			return q, nil
		}
	}
	return 0, fmt.Errorf("FOR %s has no matching NEXT", loopVar)
}

func (l *lowerer) lowerExpr(e ast.Expression) error {
	switch n := e.(type) {
	case *ast.NumberLit:
		if n.IsInt {
			l.emit(Instr{Op: CONSTI, IntOp: int64(n.Value)})
		} else {
			l.emit(Instr{Op: CONSTF, FltOp: n.Value})
		}
		return nil
	case *ast.StringLit:
		l.emit(Instr{Op: CONSTS, StrOp: n.Value})
		return nil
	case *ast.Variable:
		if n.Dim1 == nil {
			l.emit(Instr{Op: GLOBAL_GET, Name: n.Name})
			return nil
		}
		if n.Dim2 != nil {
			return fmt.Errorf("two-dimensional array %s is not supported by the IR backend", n.Name)
		}
		if err := l.lowerIndexAddr(n); err != nil {
			return err
		}
		l.emit(Instr{Op: PEEKF})
		return nil
	case *ast.UnaryExpr:
		if err := l.lowerExpr(n.Right); err != nil {
			return err
		}
		l.emit(Instr{Op: NEG})
		return nil
	case *ast.BinaryExpr:
		return l.lowerBinary(n)
	case *ast.RelExpr:
		return l.lowerRel(n)
	case *ast.GroupExpr:
		return l.lowerExpr(n.Inner)
	case *ast.BltinCall:
		for _, a := range n.Args {
			if err := l.lowerExpr(a); err != nil {
				return err
			}
		}
		l.emit(Instr{Op: BUILTIN, Name: n.Name, IntOp: int64(len(n.Args))})
		return nil
	default:
		return fmt.Errorf("expression %T is not supported by the IR backend", e)
	}
}

func (l *lowerer) lowerBinary(b *ast.BinaryExpr) error {
	if err := l.lowerExpr(b.Left); err != nil {
		return err
	}
	if err := l.lowerExpr(b.Right); err != nil {
		return err
	}
	switch b.Op {
	case "+":
		l.emit(Instr{Op: ADDF})
	case "-":
		l.emit(Instr{Op: SUBF})
	case "*":
		l.emit(Instr{Op: MULF})
	case "/":
		l.emit(Instr{Op: DIVF})
	case "^":
		l.emit(Instr{Op: BUILTIN, Name: "^", IntOp: 2})
	case "%":
		l.emit(Instr{Op: MODI})
	default:
		return fmt.Errorf("internal error: unknown operator %q", b.Op)
	}
	return nil
}

func (l *lowerer) lowerRel(r *ast.RelExpr) error {
	if err := l.lowerExpr(r.Left); err != nil {
		return err
	}
	if err := l.lowerExpr(r.Right); err != nil {
		return err
	}
	switch r.Op {
	case "=":
		l.emit(Instr{Op: EQI})
	case "<>":
		l.emit(Instr{Op: NEI})
	case "<":
		l.emit(Instr{Op: LTI})
	case "<=":
		l.emit(Instr{Op: LEI})
	case ">":
		l.emit(Instr{Op: GTI})
	case ">=":
		l.emit(Instr{Op: GEI})
	default:
		return fmt.Errorf("internal error: unknown relational operator %q", r.Op)
	}
	return nil
}
