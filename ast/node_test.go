package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingVisitor notes the last node kind visited, enough to confirm
// Accept routes to the right Visit method without needing a full dump
// renderer in this package's tests (astdump's own tests cover rendering).
type recordingVisitor struct {
	last string
}

func (r *recordingVisitor) VisitProgram(p *Program)       { r.last = "Program" }
func (r *recordingVisitor) VisitVariable(n *Variable)     { r.last = "Variable" }
func (r *recordingVisitor) VisitNumberLit(n *NumberLit)   { r.last = "NumberLit" }
func (r *recordingVisitor) VisitStringLit(n *StringLit)   { r.last = "StringLit" }
func (r *recordingVisitor) VisitUnaryExpr(n *UnaryExpr)   { r.last = "UnaryExpr" }
func (r *recordingVisitor) VisitBinaryExpr(n *BinaryExpr) { r.last = "BinaryExpr" }
func (r *recordingVisitor) VisitRelExpr(n *RelExpr)       { r.last = "RelExpr" }
func (r *recordingVisitor) VisitGroupExpr(n *GroupExpr)   { r.last = "GroupExpr" }
func (r *recordingVisitor) VisitBltinCall(n *BltinCall)   { r.last = "BltinCall" }
func (r *recordingVisitor) VisitFNCall(n *FNCall)         { r.last = "FNCall" }
func (r *recordingVisitor) VisitLetStmt(n *LetStmt)       { r.last = "LetStmt" }
func (r *recordingVisitor) VisitReadStmt(n *ReadStmt)     { r.last = "ReadStmt" }
func (r *recordingVisitor) VisitDataStmt(n *DataStmt)     { r.last = "DataStmt" }
func (r *recordingVisitor) VisitPrintStmt(n *PrintStmt)   { r.last = "PrintStmt" }
func (r *recordingVisitor) VisitInputStmt(n *InputStmt)   { r.last = "InputStmt" }
func (r *recordingVisitor) VisitForStmt(n *ForStmt)       { r.last = "ForStmt" }
func (r *recordingVisitor) VisitNextStmt(n *NextStmt)     { r.last = "NextStmt" }
func (r *recordingVisitor) VisitIfStmt(n *IfStmt)         { r.last = "IfStmt" }
func (r *recordingVisitor) VisitGotoStmt(n *GotoStmt)     { r.last = "GotoStmt" }
func (r *recordingVisitor) VisitGosubStmt(n *GosubStmt)   { r.last = "GosubStmt" }
func (r *recordingVisitor) VisitReturnStmt(n *ReturnStmt) { r.last = "ReturnStmt" }
func (r *recordingVisitor) VisitDefStmt(n *DefStmt)       { r.last = "DefStmt" }
func (r *recordingVisitor) VisitDimStmt(n *DimStmt)       { r.last = "DimStmt" }
func (r *recordingVisitor) VisitRemarkStmt(n *RemarkStmt) { r.last = "RemarkStmt" }
func (r *recordingVisitor) VisitRestoreStmt(n *RestoreStmt) {
	r.last = "RestoreStmt"
}
func (r *recordingVisitor) VisitEndStmt(n *EndStmt)   { r.last = "EndStmt" }
func (r *recordingVisitor) VisitStopStmt(n *StopStmt) { r.last = "StopStmt" }

func TestAcceptDispatchesToMatchingVisit(t *testing.T) {
	rv := &recordingVisitor{}

	(&Variable{Name: "X"}).Accept(rv)
	assert.Equal(t, "Variable", rv.last)

	(&NumberLit{Value: 1}).Accept(rv)
	assert.Equal(t, "NumberLit", rv.last)

	(&LetStmt{Target: &Variable{Name: "A"}, Value: &NumberLit{Value: 1}}).Accept(rv)
	assert.Equal(t, "LetStmt", rv.last)

	(&ForStmt{Var: &Variable{Name: "I"}}).Accept(rv)
	assert.Equal(t, "ForStmt", rv.last)

	(&GosubStmt{Target: 100}).Accept(rv)
	assert.Equal(t, "GosubStmt", rv.last)
}

func TestVariableDimClassification(t *testing.T) {
	scalar := &Variable{Name: "X"}
	list := &Variable{Name: "A", Dim1: &NumberLit{Value: 1}}
	table := &Variable{Name: "B", Dim1: &NumberLit{Value: 1}, Dim2: &NumberLit{Value: 2}}

	assert.Nil(t, scalar.Dim1)
	assert.Nil(t, scalar.Dim2)
	assert.NotNil(t, list.Dim1)
	assert.Nil(t, list.Dim2)
	assert.NotNil(t, table.Dim1)
	assert.NotNil(t, table.Dim2)
}

func TestProgramOrderIndependentOfMapIteration(t *testing.T) {
	p := &Program{
		Lines: map[int]Statement{
			30: &EndStmt{Line: 30},
			10: &LetStmt{Target: &Variable{Name: "A"}, Value: &NumberLit{Value: 1}, Line: 10},
			20: &StopStmt{Line: 20},
		},
		Order: []int{10, 20, 30},
	}

	assert.Equal(t, []int{10, 20, 30}, p.Order)
	assert.IsType(t, &LetStmt{}, p.Lines[10])
	assert.IsType(t, &StopStmt{}, p.Lines[20])
	assert.IsType(t, &EndStmt{}, p.Lines[30])
}
