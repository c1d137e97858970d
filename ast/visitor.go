package ast

// Visitor walks the tree for dump/debug purposes (see astdump). The real
// interpreter and IR lowerer never implement this - they type-switch on the
// concrete node directly, since their dispatch also needs a return value
// (a Value or an emitted opcode) that a void Visitor can't carry cleanly.
type Visitor interface {
	VisitProgram(p *Program)

	VisitVariable(n *Variable)
	VisitNumberLit(n *NumberLit)
	VisitStringLit(n *StringLit)
	VisitUnaryExpr(n *UnaryExpr)
	VisitBinaryExpr(n *BinaryExpr)
	VisitRelExpr(n *RelExpr)
	VisitGroupExpr(n *GroupExpr)
	VisitBltinCall(n *BltinCall)
	VisitFNCall(n *FNCall)

	VisitLetStmt(n *LetStmt)
	VisitReadStmt(n *ReadStmt)
	VisitDataStmt(n *DataStmt)
	VisitPrintStmt(n *PrintStmt)
	VisitInputStmt(n *InputStmt)
	VisitForStmt(n *ForStmt)
	VisitNextStmt(n *NextStmt)
	VisitIfStmt(n *IfStmt)
	VisitGotoStmt(n *GotoStmt)
	VisitGosubStmt(n *GosubStmt)
	VisitReturnStmt(n *ReturnStmt)
	VisitDefStmt(n *DefStmt)
	VisitDimStmt(n *DimStmt)
	VisitRemarkStmt(n *RemarkStmt)
	VisitRestoreStmt(n *RestoreStmt)
	VisitEndStmt(n *EndStmt)
	VisitStopStmt(n *StopStmt)
}
