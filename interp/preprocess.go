/*
File: basic64/interp/preprocess.go
*/
package interp

import (
	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

// preprocess runs the four one-time passes required before any line
// executes: sort lines, harvest DATA, check END, and match every FOR to
// its NEXT.
func (in *Interpreter) preprocess() error {
	in.order = append([]int(nil), in.Prog.Order...)
	in.lineIdx = make(map[int]int, len(in.order))
	for i, line := range in.order {
		in.lineIdx[line] = i
	}

	in.harvestData()

	if err := in.checkEnd(); err != nil {
		return err
	}
	if err := in.matchForNext(); err != nil {
		return err
	}
	return nil
}

func (in *Interpreter) harvestData() {
	in.dataPool = nil
	for _, line := range in.order {
		d, ok := in.Prog.Lines[line].(*ast.DataStmt)
		if !ok {
			continue
		}
		for _, item := range d.Values {
			switch lit := item.(type) {
			case *ast.NumberLit:
				in.dataPool = append(in.dataPool, value.Number(lit.Value))
			case *ast.StringLit:
				in.dataPool = append(in.dataPool, value.String(lit.Value))
			}
		}
	}
	in.dc = 0
}

func (in *Interpreter) checkEnd() error {
	if len(in.order) == 0 {
		return fatalf(0, "program must contain exactly one END")
	}
	endCount := 0
	lastLine := in.order[len(in.order)-1]
	for _, line := range in.order {
		if _, ok := in.Prog.Lines[line].(*ast.EndStmt); ok {
			endCount++
			if line != lastLine {
				return fatalf(line, "END must be the last line of the program")
			}
		}
	}
	if endCount != 1 {
		return fatalf(lastLine, "program must contain exactly one END")
	}
	return nil
}

// matchForNext resolves every FOR's matching NEXT once, by scanning
// forward for the nearest NEXT naming the same loop variable.
func (in *Interpreter) matchForNext() error {
	for p, line := range in.order {
		forStmt, ok := in.Prog.Lines[line].(*ast.ForStmt)
		if !ok {
			continue
		}
		found := false
		for q := p + 1; q < len(in.order); q++ {
			next, ok := in.Prog.Lines[in.order[q]].(*ast.NextStmt)
			if !ok {
				continue
			}
			if next.Var.Name == forStmt.Var.Name {
				in.loopEnd[p] = q
				found = true
				break
			}
		}
		if !found {
			return fatalf(line, "FOR without a matching NEXT %s", forStmt.Var.Name)
		}
	}
	return nil
}
