/*
File: basic64/astdump/dump.go
*/

// Package astdump renders a parsed ast.Program for the -a dot|txt CLI flag.
// Both renderers are plain ast.Visitor implementations: Accept only invokes
// the matching VisitX method, so each VisitX here is responsible for
// recursing into its own children.
package astdump

import (
	"fmt"
	"io"

	"github.com/svdev6/basic64/ast"
)

// Format selects which renderer Dump uses.
type Format int

const (
	Text Format = iota
	Dot
)

// Dump renders prog to out in the requested format.
func Dump(prog *ast.Program, format Format, out io.Writer) {
	switch format {
	case Dot:
		d := &dotDumper{out: out}
		fmt.Fprintln(out, "digraph BASIC {")
		prog.Accept(d)
		fmt.Fprintln(out, "}")
	default:
		t := &textDumper{out: out}
		prog.Accept(t)
	}
}

// --- text renderer --------------------------------------------------------

type textDumper struct {
	out    io.Writer
	indent int
}

func (t *textDumper) line(format string, args ...any) {
	for i := 0; i < t.indent; i++ {
		fmt.Fprint(t.out, "  ")
	}
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *textDumper) child(n ast.Node) {
	if n == nil {
		return
	}
	t.indent++
	n.Accept(t)
	t.indent--
}

func (t *textDumper) VisitProgram(p *ast.Program) {
	t.line("Program")
	t.indent++
	for _, ln := range p.Order {
		t.line("Line %d", ln)
		t.indent++
		p.Lines[ln].Accept(t)
		t.indent--
	}
	t.indent--
}

func (t *textDumper) VisitVariable(n *ast.Variable) {
	t.line("Variable %s", n.Name)
	t.child(n.Dim1)
	t.child(n.Dim2)
}
func (t *textDumper) VisitNumberLit(n *ast.NumberLit) { t.line("Number %v", n.Value) }
func (t *textDumper) VisitStringLit(n *ast.StringLit) { t.line("String %q", n.Value) }
func (t *textDumper) VisitUnaryExpr(n *ast.UnaryExpr) {
	t.line("Unary %s", n.Op)
	t.child(n.Right)
}
func (t *textDumper) VisitBinaryExpr(n *ast.BinaryExpr) {
	t.line("Binary %s", n.Op)
	t.child(n.Left)
	t.child(n.Right)
}
func (t *textDumper) VisitRelExpr(n *ast.RelExpr) {
	t.line("Rel %s", n.Op)
	t.child(n.Left)
	t.child(n.Right)
}
func (t *textDumper) VisitGroupExpr(n *ast.GroupExpr) {
	t.line("Group")
	t.child(n.Inner)
}
func (t *textDumper) VisitBltinCall(n *ast.BltinCall) {
	t.line("Bltin %s", n.Name)
	for _, a := range n.Args {
		t.child(a)
	}
}
func (t *textDumper) VisitFNCall(n *ast.FNCall) {
	t.line("FNCall %s", n.Name)
	t.child(n.Arg)
}

func (t *textDumper) VisitLetStmt(n *ast.LetStmt) {
	t.line("Let")
	t.child(n.Target)
	t.child(n.Value)
}
func (t *textDumper) VisitReadStmt(n *ast.ReadStmt) {
	t.line("Read")
	for _, v := range n.Vars {
		t.child(v)
	}
}
func (t *textDumper) VisitDataStmt(n *ast.DataStmt) {
	t.line("Data")
	for _, v := range n.Values {
		t.child(v)
	}
}
func (t *textDumper) VisitPrintStmt(n *ast.PrintStmt) {
	t.line("Print")
	t.indent++
	for _, e := range n.Elems {
		if e.Expr == nil {
			t.line("Sep %q", string(e.Sep))
			continue
		}
		e.Expr.Accept(t)
	}
	t.indent--
}
func (t *textDumper) VisitInputStmt(n *ast.InputStmt) {
	t.line("Input %q", n.Label)
	for _, v := range n.Vars {
		t.child(v)
	}
}
func (t *textDumper) VisitForStmt(n *ast.ForStmt) {
	t.line("For")
	t.child(n.Var)
	t.child(n.From)
	t.child(n.To)
	t.child(n.Step)
}
func (t *textDumper) VisitNextStmt(n *ast.NextStmt) {
	t.line("Next")
	t.child(n.Var)
}
func (t *textDumper) VisitIfStmt(n *ast.IfStmt) {
	t.line("If -> %d", n.Then)
	t.child(n.Cond)
}
func (t *textDumper) VisitGotoStmt(n *ast.GotoStmt)     { t.line("Goto %d", n.Target) }
func (t *textDumper) VisitGosubStmt(n *ast.GosubStmt)   { t.line("Gosub %d", n.Target) }
func (t *textDumper) VisitReturnStmt(n *ast.ReturnStmt) { t.line("Return") }
func (t *textDumper) VisitDefStmt(n *ast.DefStmt) {
	t.line("Def FN%s(%s)", n.FName, n.Param)
	t.child(n.Body)
}
func (t *textDumper) VisitDimStmt(n *ast.DimStmt) {
	t.line("Dim")
	for _, v := range n.Vars {
		t.child(v)
	}
}
func (t *textDumper) VisitRemarkStmt(n *ast.RemarkStmt)   { t.line("Remark %q", n.Text) }
func (t *textDumper) VisitRestoreStmt(n *ast.RestoreStmt) { t.line("Restore") }
func (t *textDumper) VisitEndStmt(n *ast.EndStmt)         { t.line("End") }
func (t *textDumper) VisitStopStmt(n *ast.StopStmt)       { t.line("Stop") }

// --- Graphviz DOT renderer -------------------------------------------------

type dotDumper struct {
	out    io.Writer
	nextID int
	lastID int // set by each VisitX before returning, read by render/edge
}

// node emits this node's own record and returns its graph ID; edges to
// children are written by the caller via edge().
func (d *dotDumper) node(label string) int {
	id := d.nextID
	d.nextID++
	fmt.Fprintf(d.out, "  n%d [label=%q];\n", id, label)
	return id
}

func (d *dotDumper) edge(parent int, child ast.Node, label string) {
	if child == nil {
		return
	}
	childID := d.render(child)
	if label != "" {
		fmt.Fprintf(d.out, "  n%d -> n%d [label=%q];\n", parent, childID, label)
	} else {
		fmt.Fprintf(d.out, "  n%d -> n%d;\n", parent, childID)
	}
}

// render visits child and returns the graph ID it was assigned. Each
// VisitX method stashes its own ID in d.lastID before recursing further.
func (d *dotDumper) render(n ast.Node) int {
	n.Accept(d)
	return d.lastID
}

func (d *dotDumper) VisitProgram(p *ast.Program) {
	id := d.node("Program")
	d.lastID = id
	for _, ln := range p.Order {
		lineID := d.node(fmt.Sprintf("Line %d", ln))
		fmt.Fprintf(d.out, "  n%d -> n%d;\n", id, lineID)
		childID := d.render(p.Lines[ln])
		fmt.Fprintf(d.out, "  n%d -> n%d;\n", lineID, childID)
	}
	d.lastID = id
}

func (d *dotDumper) VisitVariable(n *ast.Variable) {
	id := d.node("Var " + n.Name)
	d.lastID = id
	d.edge(id, n.Dim1, "dim1")
	d.edge(id, n.Dim2, "dim2")
	d.lastID = id
}
func (d *dotDumper) VisitNumberLit(n *ast.NumberLit) {
	d.lastID = d.node(fmt.Sprintf("%v", n.Value))
}
func (d *dotDumper) VisitStringLit(n *ast.StringLit) {
	d.lastID = d.node(fmt.Sprintf("%q", n.Value))
}
func (d *dotDumper) VisitUnaryExpr(n *ast.UnaryExpr) {
	id := d.node("Unary " + n.Op)
	d.edge(id, n.Right, "")
	d.lastID = id
}
func (d *dotDumper) VisitBinaryExpr(n *ast.BinaryExpr) {
	id := d.node("Binary " + n.Op)
	d.edge(id, n.Left, "l")
	d.edge(id, n.Right, "r")
	d.lastID = id
}
func (d *dotDumper) VisitRelExpr(n *ast.RelExpr) {
	id := d.node("Rel " + n.Op)
	d.edge(id, n.Left, "l")
	d.edge(id, n.Right, "r")
	d.lastID = id
}
func (d *dotDumper) VisitGroupExpr(n *ast.GroupExpr) {
	id := d.node("Group")
	d.edge(id, n.Inner, "")
	d.lastID = id
}
func (d *dotDumper) VisitBltinCall(n *ast.BltinCall) {
	id := d.node("Bltin " + n.Name)
	for _, a := range n.Args {
		d.edge(id, a, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitFNCall(n *ast.FNCall) {
	id := d.node("FN" + n.Name)
	d.edge(id, n.Arg, "")
	d.lastID = id
}

func (d *dotDumper) VisitLetStmt(n *ast.LetStmt) {
	id := d.node("Let")
	d.edge(id, n.Target, "target")
	d.edge(id, n.Value, "value")
	d.lastID = id
}
func (d *dotDumper) VisitReadStmt(n *ast.ReadStmt) {
	id := d.node("Read")
	for _, v := range n.Vars {
		d.edge(id, v, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitDataStmt(n *ast.DataStmt) {
	id := d.node("Data")
	for _, v := range n.Values {
		d.edge(id, v, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitPrintStmt(n *ast.PrintStmt) {
	id := d.node("Print")
	for _, e := range n.Elems {
		if e.Expr == nil {
			sepID := d.node(fmt.Sprintf("Sep %q", string(e.Sep)))
			fmt.Fprintf(d.out, "  n%d -> n%d;\n", id, sepID)
			continue
		}
		d.edge(id, e.Expr, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitInputStmt(n *ast.InputStmt) {
	id := d.node("Input " + n.Label)
	for _, v := range n.Vars {
		d.edge(id, v, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitForStmt(n *ast.ForStmt) {
	id := d.node("For")
	d.edge(id, n.Var, "var")
	d.edge(id, n.From, "from")
	d.edge(id, n.To, "to")
	d.edge(id, n.Step, "step")
	d.lastID = id
}
func (d *dotDumper) VisitNextStmt(n *ast.NextStmt) {
	id := d.node("Next")
	d.edge(id, n.Var, "")
	d.lastID = id
}
func (d *dotDumper) VisitIfStmt(n *ast.IfStmt) {
	id := d.node(fmt.Sprintf("If -> %d", n.Then))
	d.edge(id, n.Cond, "cond")
	d.lastID = id
}
func (d *dotDumper) VisitGotoStmt(n *ast.GotoStmt) {
	d.lastID = d.node(fmt.Sprintf("Goto %d", n.Target))
}
func (d *dotDumper) VisitGosubStmt(n *ast.GosubStmt) {
	d.lastID = d.node(fmt.Sprintf("Gosub %d", n.Target))
}
func (d *dotDumper) VisitReturnStmt(n *ast.ReturnStmt) { d.lastID = d.node("Return") }
func (d *dotDumper) VisitDefStmt(n *ast.DefStmt) {
	id := d.node(fmt.Sprintf("Def FN%s(%s)", n.FName, n.Param))
	d.edge(id, n.Body, "")
	d.lastID = id
}
func (d *dotDumper) VisitDimStmt(n *ast.DimStmt) {
	id := d.node("Dim")
	for _, v := range n.Vars {
		d.edge(id, v, "")
	}
	d.lastID = id
}
func (d *dotDumper) VisitRemarkStmt(n *ast.RemarkStmt) {
	d.lastID = d.node("Remark " + n.Text)
}
func (d *dotDumper) VisitRestoreStmt(n *ast.RestoreStmt) { d.lastID = d.node("Restore") }
func (d *dotDumper) VisitEndStmt(n *ast.EndStmt)         { d.lastID = d.node("End") }
func (d *dotDumper) VisitStopStmt(n *ast.StopStmt)       { d.lastID = d.node("Stop") }
