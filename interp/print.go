/*
File: basic64/interp/print.go
*/
package interp

import (
	"fmt"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/value"
)

const printWidth = 80

func (in *Interpreter) execPrint(s *ast.PrintStmt) error {
	for _, elem := range s.Elems {
		if elem.Expr == nil {
			in.padTo(widthFor(elem.Sep))
			continue
		}
		v, err := in.eval(elem.Expr)
		if err != nil {
			return err
		}
		in.writeText(renderForPrint(v))
	}
	if len(s.Elems) == 0 || s.Elems[len(s.Elems)-1].Expr != nil {
		in.newline()
	}
	return nil
}

func widthFor(sep byte) int {
	if sep == ',' {
		return 0 // padTo resolves 0 to in.tabWidth
	}
	return 1
}

// padTo advances the print cursor to the next column strictly greater
// than the current one that is a multiple of width (width 0 means "use
// the configured tab width", i.e. a comma separator).
func (in *Interpreter) padTo(width int) {
	if width == 0 {
		width = in.tabWidth
	}
	target := ((in.printCol / width) + 1) * width
	in.writeText(spaces(target - in.printCol))
}

func renderForPrint(v value.Value) string {
	if v.IsString() {
		return v.Str
	}
	return value.Format(v.Num)
}

// writeText emits s to the print sink, tracking the column cursor and
// wrapping at printWidth.
func (in *Interpreter) writeText(s string) {
	for len(s) > 0 {
		remain := printWidth - in.printCol
		if remain <= 0 {
			in.newline()
			remain = printWidth
		}
		n := len(s)
		if n > remain {
			n = remain
		}
		fmt.Fprint(in.printOut, s[:n])
		in.printCol += n
		s = s[n:]
		if in.printCol >= printWidth {
			in.newline()
		}
	}
}

func (in *Interpreter) newline() {
	fmt.Fprintln(in.printOut)
	in.printCol = 0
}
