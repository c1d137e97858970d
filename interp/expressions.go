/*
File: basic64/interp/expressions.go
*/
package interp

import (
	"math"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

// eval dispatches on the concrete expression type via a type switch, not
// the Accept/Visitor interface those nodes also implement for dumping.
func (in *Interpreter) eval(e ast.Expression) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return value.Number(n.Value), nil
	case *ast.StringLit:
		return value.String(n.Value), nil
	case *ast.Variable:
		return in.readVariable(n)
	case *ast.UnaryExpr:
		return in.evalUnary(n)
	case *ast.BinaryExpr:
		return in.evalBinary(n)
	case *ast.RelExpr:
		return in.evalRel(n)
	case *ast.GroupExpr:
		return in.eval(n.Inner)
	case *ast.BltinCall:
		return in.evalBltin(n)
	case *ast.FNCall:
		return in.evalFNCall(n)
	default:
		return value.Value{}, fatalf(0, "internal error: unknown expression node %T", e)
	}
}

func (in *Interpreter) readVariable(v *ast.Variable) (value.Value, error) {
	if v.Dim1 == nil {
		val, ok := in.Env.Scalars[v.Name]
		if !ok {
			return value.Value{}, fatalf(v.Line, "undefined variable %s", v.Name)
		}
		return val, nil
	}
	x, err := in.evalIndex(v.Dim1)
	if err != nil {
		return value.Value{}, err
	}
	if v.Dim2 == nil {
		l, ok := in.Env.Lists[v.Name]
		if !ok {
			return value.Value{}, fatalf(v.Line, "undefined variable %s", v.Name)
		}
		i := x - in.Env.ArrayBase
		if i < 0 || i >= len(l) {
			return value.Value{}, fatalf(v.Line, "index of %s is out of bounds", v.Name)
		}
		return l[i], nil
	}
	y, err := in.evalIndex(v.Dim2)
	if err != nil {
		return value.Value{}, err
	}
	t, ok := in.Env.Tables[v.Name]
	if !ok {
		return value.Value{}, fatalf(v.Line, "undefined variable %s", v.Name)
	}
	i, j := x-in.Env.ArrayBase, y-in.Env.ArrayBase
	if i < 0 || i >= len(t) || j < 0 || j >= len(t[0]) {
		return value.Value{}, fatalf(v.Line, "indexes of %s are out of bounds", v.Name)
	}
	return t[i][j], nil
}

// evalIndex evaluates a subscript expression and truncates it to an int.
func (in *Interpreter) evalIndex(e ast.Expression) (int, error) {
	v, err := in.eval(e)
	if err != nil {
		return 0, err
	}
	if !v.IsNumber() {
		return 0, fatalf(0, "array subscript must be numeric")
	}
	return int(v.Num), nil
}

func (in *Interpreter) evalUnary(u *ast.UnaryExpr) (value.Value, error) {
	v, err := in.eval(u.Right)
	if err != nil {
		return value.Value{}, err
	}
	if !v.IsNumber() {
		return value.Value{}, fatalf(u.Line, "operand of unary '-' must be numeric")
	}
	return value.Number(-v.Num), nil
}

func (in *Interpreter) evalBinary(b *ast.BinaryExpr) (value.Value, error) {
	left, err := in.eval(b.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := in.eval(b.Right)
	if err != nil {
		return value.Value{}, err
	}

	if b.Op == "+" && left.IsString() && right.IsString() {
		return value.String(left.Str + right.Str), nil
	}
	if !left.IsNumber() || !right.IsNumber() {
		return value.Value{}, fatalf(b.Line, "non-numeric operand to '%s'", b.Op)
	}

	l, r := left.Num, right.Num
	switch b.Op {
	case "+":
		return value.Number(l + r), nil
	case "-":
		return value.Number(l - r), nil
	case "*":
		return value.Number(l * r), nil
	case "/":
		if r == 0 {
			return value.Value{}, fatalf(b.Line, "division by zero")
		}
		return value.Number(l / r), nil
	case "^":
		return value.Number(math.Pow(l, r)), nil
	case "%":
		if int(r) == 0 {
			return value.Value{}, fatalf(b.Line, "division by zero")
		}
		return value.Number(float64(int(l) % int(r))), nil
	default:
		return value.Value{}, fatalf(b.Line, "internal error: unknown operator %q", b.Op)
	}
}

func (in *Interpreter) evalRel(r *ast.RelExpr) (value.Value, error) {
	left, err := in.eval(r.Left)
	if err != nil {
		return value.Value{}, err
	}
	right, err := in.eval(r.Right)
	if err != nil {
		return value.Value{}, err
	}
	if left.IsString() != right.IsString() {
		return value.Value{}, fatalf(r.Line, "cannot compare a number with a string")
	}

	var cmp int
	if left.IsString() {
		switch {
		case left.Str < right.Str:
			cmp = -1
		case left.Str > right.Str:
			cmp = 1
		}
	} else {
		switch {
		case left.Num < right.Num:
			cmp = -1
		case left.Num > right.Num:
			cmp = 1
		}
	}

	var truth bool
	switch r.Op {
	case "=":
		truth = cmp == 0
	case "<>":
		truth = cmp != 0
	case "<":
		truth = cmp < 0
	case "<=":
		truth = cmp <= 0
	case ">":
		truth = cmp > 0
	case ">=":
		truth = cmp >= 0
	default:
		return value.Value{}, fatalf(r.Line, "internal error: unknown relational operator %q", r.Op)
	}
	if truth {
		return value.Number(1), nil
	}
	return value.Number(0), nil
}

func (in *Interpreter) evalFNCall(c *ast.FNCall) (value.Value, error) {
	fn, ok := in.Env.Funcs[c.Name]
	if !ok {
		return value.Value{}, fatalf(c.Line, "undefined function %s", c.Name)
	}
	var arg value.Value
	if c.Arg != nil {
		v, err := in.eval(c.Arg)
		if err != nil {
			return value.Value{}, err
		}
		arg = v
	}
	return fn.Body(arg)
}
