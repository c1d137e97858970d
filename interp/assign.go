/*
File: basic64/interp/assign.go
*/
package interp

import (
	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

// assign implements the target-variable write rule shared by LET, READ,
// and FOR's loop-variable initialization.
func (in *Interpreter) assign(target *ast.Variable, val value.Value) error {
	if target.Dim1 == nil {
		in.Env.Scalars[target.Name] = val
		return nil
	}

	x, err := in.evalIndex(target.Dim1)
	if err != nil {
		return err
	}

	if target.Dim2 == nil {
		l := in.Env.ensureList(target.Name, 0)
		i := x - in.Env.ArrayBase
		if i < 0 || i >= len(l) {
			return fatalf(target.Line, "dimension is too large for %s", target.Name)
		}
		l[i] = val
		return nil
	}

	y, err := in.evalIndex(target.Dim2)
	if err != nil {
		return err
	}
	t := in.Env.ensureTable(target.Name)
	i, j := x-in.Env.ArrayBase, y-in.Env.ArrayBase
	if i < 0 || i >= len(t) || j < 0 || j >= len(t[0]) {
		return fatalf(target.Line, "dimensions are too large for %s", target.Name)
	}
	t[i][j] = val
	return nil
}
