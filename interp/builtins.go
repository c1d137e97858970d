/*
File: basic64/interp/builtins.go
*/
package interp

import (
	"math"
	"time"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

// bltinFunc is the signature every builtin dispatches through: a
// name-to-function map rather than a giant switch.
type bltinFunc func(in *Interpreter, line int, args []value.Value) (value.Value, error)

var bltins = map[string]bltinFunc{
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
	"RND":    bltinRND,
	"PI":     bltinPI,
	"TIME":   bltinTIME,
	"TAB":    bltinTAB,
	"LEN":    bltinLEN,
	"LEFT$":  bltinLEFT,
	"MID$":   bltinMID,
	"RIGHT$": bltinRIGHT,
	"CHR$":   bltinCHR,
}

func mathFn(f func(float64) float64) bltinFunc {
	return func(in *Interpreter, line int, args []value.Value) (value.Value, error) {
		if len(args) != 1 || !args[0].IsNumber() {
			return value.Value{}, fatalf(line, "expected one numeric argument")
		}
		return value.Number(f(args[0].Num)), nil
	}
}

func bltinRND(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	return value.Number(in.rng.Float64()), nil
}

func bltinPI(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	return value.Number(3.141592654), nil
}

func bltinTIME(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	return value.Number(time.Since(in.startTime).Seconds()), nil
}

func bltinTAB(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsNumber() {
		return value.Value{}, fatalf(line, "TAB expects one numeric argument")
	}
	n := int(args[0].Num)
	if n < 0 {
		n = 0
	}
	return value.String(spaces(n)), nil
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func bltinLEN(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsString() {
		return value.Value{}, fatalf(line, "LEN expects one string argument")
	}
	return value.Number(float64(len(args[0].Str))), nil
}

func bltinLEFT(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsString() || !args[1].IsNumber() {
		return value.Value{}, fatalf(line, "LEFT$ expects (string, number)")
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

func bltinRIGHT(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].IsString() || !args[1].IsNumber() {
		return value.Value{}, fatalf(line, "RIGHT$ expects (string, number)")
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

func bltinMID(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 3 || !args[0].IsString() || !args[1].IsNumber() || !args[2].IsNumber() {
		return value.Value{}, fatalf(line, "MID$ expects (string, start, length)")
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

func bltinCHR(in *Interpreter, line int, args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsNumber() {
		return value.Value{}, fatalf(line, "CHR$ expects one numeric argument")
	}
	return value.String(string(rune(int(args[0].Num)))), nil
}

func (in *Interpreter) evalBltin(c *ast.BltinCall) (value.Value, error) {
	fn, ok := bltins[c.Name]
	if !ok {
		return value.Value{}, fatalf(c.Line, "unknown builtin %s", c.Name)
	}
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := in.eval(a)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}
	return fn(in, c.Line, args)
}
