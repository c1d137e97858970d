/*
File: basic64/interp/statements.go
*/
package interp

import (
	"strconv"
	"strings"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

// execStmt runs one statement. It returns jumped=true when pc has already
// been set (a jump, loop re-entry, or go-next fallthrough), so the caller
// must not also advance it.
func (in *Interpreter) execStmt(stmt ast.Statement, line int) (jumped bool, err error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := in.eval(s.Value)
		if err != nil {
			return false, err
		}
		return false, in.assign(s.Target, v)

	case *ast.ReadStmt:
		return in.execRead(s)

	case *ast.DataStmt, *ast.RemarkStmt:
		return false, nil

	case *ast.RestoreStmt:
		in.dc = 0
		return false, nil

	case *ast.PrintStmt:
		return false, in.execPrint(s)

	case *ast.InputStmt:
		return false, in.execInput(s)

	case *ast.GotoStmt:
		pc, ok, err := in.resolveTarget(line, s.Target)
		if err != nil {
			return false, err
		}
		if ok {
			in.pc = pc
			return true, nil
		}
		return false, nil

	case *ast.IfStmt:
		cond, err := in.eval(s.Cond)
		if err != nil {
			return false, err
		}
		if !cond.Truthy() {
			return false, nil
		}
		pc, ok, err := in.resolveTarget(line, s.Then)
		if err != nil {
			return false, err
		}
		if ok {
			in.pc = pc
			return true, nil
		}
		return false, nil

	case *ast.ForStmt:
		return in.execFor(s)

	case *ast.NextStmt:
		return in.execNext(s)

	case *ast.GosubStmt:
		return in.execGosub(s, line)

	case *ast.ReturnStmt:
		return in.execReturn(s)

	case *ast.DefStmt:
		in.registerDef(s)
		return false, nil

	case *ast.DimStmt:
		return false, in.execDim(s)

	case *ast.EndStmt, *ast.StopStmt:
		in.halted = true
		return false, nil

	default:
		return false, fatalf(line, "internal error: unknown statement %T", stmt)
	}
}

// resolveTarget translates a GOTO/GOSUB/THEN line number to a pc index.
// When the target is unknown and the go-next policy is enabled, it
// returns the pc that follows the referencing line instead of erroring.
func (in *Interpreter) resolveTarget(fromLine, target int) (pc int, jumped bool, err error) {
	if p, ok := in.lineToPC(target); ok {
		return p, true, nil
	}
	if in.cfg.GoNext {
		return in.lineIdx[fromLine] + 1, true, nil
	}
	return 0, false, fatalf(fromLine, "undefined reference: no such line %d", target)
}

func (in *Interpreter) execRead(s *ast.ReadStmt) (bool, error) {
	for _, target := range s.Vars {
		if in.dc >= len(in.dataPool) {
			in.halted = true
			return false, nil
		}
		raw := in.dataPool[in.dc]
		in.dc++
		v, err := coerceForTarget(target, raw, s.Line)
		if err != nil {
			return false, err
		}
		if err := in.assign(target, v); err != nil {
			return false, err
		}
	}
	return false, nil
}

func coerceForTarget(target *ast.Variable, raw value.Value, line int) (value.Value, error) {
	wantsString := strings.HasSuffix(target.Name, "$")
	if wantsString {
		if raw.IsString() {
			return raw, nil
		}
		return value.String(value.Format(raw.Num)), nil
	}
	if raw.IsNumber() {
		return raw, nil
	}
	n, perr := strconv.ParseFloat(strings.TrimSpace(raw.Str), 64)
	if perr != nil {
		return value.Value{}, fatalf(line, "non-numeric DATA value %q for %s", raw.Str, target.Name)
	}
	return value.Number(n), nil
}

func (in *Interpreter) execInput(s *ast.InputStmt) error {
	if s.HasLabel {
		in.writeText(s.Label + " ")
	}
	for _, target := range s.Vars {
		line, err := in.inputSrc.ReadString('\n')
		if err != nil && line == "" {
			in.halted = true
			return nil
		}
		line = strings.TrimRight(line, "\r\n")
		v, err := parseInputValue(target, line, in.cfg.UppercaseInput, s.Line)
		if err != nil {
			return err
		}
		if err := in.assign(target, v); err != nil {
			return err
		}
	}
	return nil
}

func parseInputValue(target *ast.Variable, raw string, upper bool, line int) (value.Value, error) {
	if strings.HasSuffix(target.Name, "$") {
		if upper {
			raw = strings.ToUpper(raw)
		}
		return value.String(raw), nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return value.Value{}, fatalf(line, "unparsable numeric INPUT %q", raw)
	}
	return value.Number(n), nil
}

func (in *Interpreter) execFor(f *ast.ForStmt) (bool, error) {
	p := in.pc
	if len(in.loopStack) > 0 && in.loopStack[len(in.loopStack)-1].forPC == p {
		return in.forReentry(f, p)
	}
	return in.forFirstEntry(f, p)
}

func (in *Interpreter) forFirstEntry(f *ast.ForStmt, p int) (bool, error) {
	lo, err := in.eval(f.From)
	if err != nil {
		return false, err
	}
	step := 1.0
	if f.Step != nil {
		s, err := in.eval(f.Step)
		if err != nil {
			return false, err
		}
		step = s.Num
	}
	if err := in.assign(f.Var, lo); err != nil {
		return false, err
	}
	in.loopStack = append(in.loopStack, loopFrame{forPC: p, step: step})
	in.pc = p + 1
	return true, nil
}

func (in *Interpreter) forReentry(f *ast.ForStmt, p int) (bool, error) {
	top := in.loopStack[len(in.loopStack)-1]
	cur, err := in.eval(f.Var)
	if err != nil {
		return false, err
	}
	hi, err := in.eval(f.To)
	if err != nil {
		return false, err
	}
	next := cur.Num + top.step
	continues := next <= hi.Num
	if top.step < 0 {
		continues = next >= hi.Num
	}
	if continues {
		if err := in.assign(f.Var, value.Number(next)); err != nil {
			return false, err
		}
		in.pc = p + 1
		return true, nil
	}
	in.loopStack = in.loopStack[:len(in.loopStack)-1]
	in.pc = in.loopEnd[p] + 1
	return true, nil
}

func (in *Interpreter) execNext(n *ast.NextStmt) (bool, error) {
	if len(in.loopStack) == 0 {
		return false, nonFatalf(n.Line, "NEXT %s without a matching FOR", n.Var.Name)
	}
	top := in.loopStack[len(in.loopStack)-1]
	forStmt := in.Prog.Lines[in.order[top.forPC]].(*ast.ForStmt)
	if forStmt.Var.Name != n.Var.Name {
		return false, nonFatalf(n.Line, "NEXT variable %s does not match FOR variable %s", n.Var.Name, forStmt.Var.Name)
	}
	in.pc = top.forPC
	return true, nil
}

func (in *Interpreter) execGosub(s *ast.GosubStmt, line int) (bool, error) {
	if in.hasGosubReturn {
		return false, nonFatalf(line, "GOSUB %d attempted while a call is already pending", s.Target)
	}
	pc, ok, err := in.resolveTarget(line, s.Target)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	in.gosubReturn = in.pc
	in.hasGosubReturn = true
	in.pc = pc
	return true, nil
}

func (in *Interpreter) execReturn(s *ast.ReturnStmt) (bool, error) {
	if !in.hasGosubReturn {
		return false, nonFatalf(s.Line, "RETURN without a pending GOSUB")
	}
	in.pc = in.gosubReturn + 1
	in.hasGosubReturn = false
	return true, nil
}

func (in *Interpreter) registerDef(d *ast.DefStmt) {
	body := d.Body
	param := d.Param
	in.Env.Funcs[d.FName] = userFunc{
		Param: param,
		Body: func(arg value.Value) (value.Value, error) {
			old, hadOld := in.Env.Scalars[param]
			in.Env.Scalars[param] = arg
			v, err := in.eval(body)
			if hadOld {
				in.Env.Scalars[param] = old
			} else {
				delete(in.Env.Scalars, param)
			}
			return v, err
		},
	}
}

func (in *Interpreter) execDim(d *ast.DimStmt) error {
	for _, v := range d.Vars {
		n1, err := in.evalIndex(v.Dim1)
		if err != nil {
			return err
		}
		if v.Dim2 == nil {
			in.Env.dimList(v.Name, n1)
			continue
		}
		n2, err := in.evalIndex(v.Dim2)
		if err != nil {
			return err
		}
		in.Env.dimTable(v.Name, n1, n2)
	}
	return nil
}
