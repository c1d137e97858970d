/*
File: basic64/parser/parser_statements.go
*/
package parser

import (
	"strconv"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/lexer"
)

// parseStatement dispatches on the leading keyword of a line's command.
func (p *Parser) parseStatement(line int) (ast.Statement, bool) {
	switch p.cur.Type {
	case lexer.LET_KEY:
		return p.parseLet(line)
	case lexer.READ_KEY:
		return p.parseRead(line)
	case lexer.DATA_KEY:
		return p.parseData(line)
	case lexer.RESTORE_KEY:
		p.next()
		return &ast.RestoreStmt{Line: line}, true
	case lexer.PRINT_KEY:
		return p.parsePrint(line)
	case lexer.INPUT_KEY:
		return p.parseInput(line)
	case lexer.GOTO_KEY:
		return p.parseGoto(line)
	case lexer.GOSUB_KEY:
		return p.parseGosub(line)
	case lexer.RETURN_KEY:
		p.next()
		return &ast.ReturnStmt{Line: line}, true
	case lexer.IF_KEY:
		return p.parseIf(line)
	case lexer.FOR_KEY:
		return p.parseFor(line)
	case lexer.NEXT_KEY:
		return p.parseNext(line)
	case lexer.DEF_KEY:
		return p.parseDef(line)
	case lexer.DIM_KEY:
		return p.parseDim(line)
	case lexer.END_KEY:
		p.next()
		return &ast.EndStmt{Line: line}, true
	case lexer.STOP_KEY:
		p.next()
		return &ast.StopStmt{Line: line}, true
	case lexer.REMARK_LIT:
		text := p.cur.Literal
		p.next()
		return &ast.RemarkStmt{Text: text, Line: line}, true
	default:
		p.syntaxError("unrecognized statement, got %q", p.cur.Literal)
		return nil, false
	}
}

func (p *Parser) parseLet(line int) (ast.Statement, bool) {
	p.next() // LET
	if !p.curIs(lexer.IDENT_ID) {
		p.syntaxError("expected a variable after LET, got %q", p.cur.Literal)
		return nil, false
	}
	target := p.parseVariableRef()
	if !p.expect(lexer.EQ_OP, "'='") {
		return nil, false
	}
	value := p.parseExpr()
	return &ast.LetStmt{Target: target, Value: value, Line: line}, true
}

func (p *Parser) parseRead(line int) (ast.Statement, bool) {
	p.next() // READ
	vars := []*ast.Variable{p.parseVariableRef()}
	for p.curIs(lexer.COMMA_DELIM) {
		p.next()
		vars = append(vars, p.parseVariableRef())
	}
	return &ast.ReadStmt{Vars: vars, Line: line}, true
}

func (p *Parser) parseData(line int) (ast.Statement, bool) {
	p.next() // DATA
	values := []ast.Expression{p.parseDataItem()}
	for p.curIs(lexer.COMMA_DELIM) {
		p.next()
		values = append(values, p.parseDataItem())
	}
	return &ast.DataStmt{Values: values, Line: line}, true
}

// parseDataItem parses one DATA literal: a signed number or a string.
func (p *Parser) parseDataItem() ast.Expression {
	line := p.cur.Line
	negate := false
	if p.curIs(lexer.MINUS_OP) {
		negate = true
		p.next()
	}
	switch p.cur.Type {
	case lexer.INT_LIT, lexer.FLOAT_LIT:
		n, _ := strconv.ParseFloat(p.cur.Literal, 64)
		isInt := p.cur.Type == lexer.INT_LIT
		p.next()
		if negate {
			n = -n
		}
		return &ast.NumberLit{IsInt: isInt, Value: n, Line: line}
	case lexer.STRING_LIT:
		s := p.cur.Literal
		p.next()
		return &ast.StringLit{Value: s, Line: line}
	default:
		p.syntaxError("expected a DATA literal, got %q", p.cur.Literal)
		p.next()
		return &ast.NumberLit{Line: line}
	}
}

// isExprStart reports whether tt can begin an expression, used to decide
// whether a STRING pitem is followed directly by a fused expression.
func isExprStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.INT_LIT, lexer.FLOAT_LIT, lexer.STRING_LIT, lexer.LEFT_PAREN,
		lexer.MINUS_OP, lexer.BLTIN_ID, lexer.FNAME_ID, lexer.IDENT_ID:
		return true
	}
	return false
}

func (p *Parser) parsePrint(line int) (ast.Statement, bool) {
	p.next() // PRINT
	stmt := &ast.PrintStmt{Line: line}

	for isExprStart(p.cur.Type) {
		if p.curIs(lexer.STRING_LIT) {
			s := p.cur.Literal
			sline := p.cur.Line
			p.next()
			stmt.Elems = append(stmt.Elems, ast.PrintElem{Expr: &ast.StringLit{Value: s, Line: sline}})
			if isExprStart(p.cur.Type) {
				// "STRING expr" pitem: the two print back to back, no pad.
				stmt.Elems = append(stmt.Elems, ast.PrintElem{Expr: p.parseExpr()})
			}
		} else {
			stmt.Elems = append(stmt.Elems, ast.PrintElem{Expr: p.parseExpr()})
		}

		if p.curIs(lexer.COMMA_DELIM) || p.curIs(lexer.SEMI_DELIM) {
			sep := byte(',')
			if p.curIs(lexer.SEMI_DELIM) {
				sep = ';'
			}
			p.next()
			stmt.Elems = append(stmt.Elems, ast.PrintElem{Sep: sep})
			continue
		}
		break
	}
	return stmt, true
}

func (p *Parser) parseInput(line int) (ast.Statement, bool) {
	p.next() // INPUT
	stmt := &ast.InputStmt{Line: line}
	if p.curIs(lexer.STRING_LIT) {
		stmt.Label = p.cur.Literal
		stmt.HasLabel = true
		p.next()
		if p.curIs(lexer.COMMA_DELIM) || p.curIs(lexer.SEMI_DELIM) {
			p.next()
		} else {
			p.syntaxError("expected ',' or ';' after INPUT label")
		}
	}
	stmt.Vars = append(stmt.Vars, p.parseVariableRef())
	for p.curIs(lexer.COMMA_DELIM) {
		p.next()
		stmt.Vars = append(stmt.Vars, p.parseVariableRef())
	}
	return stmt, true
}

func (p *Parser) parseLineTarget() (int, bool) {
	if !p.curIs(lexer.INT_LIT) {
		p.syntaxError("expected a line number, got %q", p.cur.Literal)
		return 0, false
	}
	n, _ := strconv.Atoi(p.cur.Literal)
	p.next()
	return n, true
}

func (p *Parser) parseGoto(line int) (ast.Statement, bool) {
	p.next() // GOTO
	target, ok := p.parseLineTarget()
	if !ok {
		return nil, false
	}
	return &ast.GotoStmt{Target: target, Line: line}, true
}

func (p *Parser) parseGosub(line int) (ast.Statement, bool) {
	p.next() // GOSUB
	target, ok := p.parseLineTarget()
	if !ok {
		return nil, false
	}
	return &ast.GosubStmt{Target: target, Line: line}, true
}

func (p *Parser) parseIf(line int) (ast.Statement, bool) {
	p.next() // IF
	cond := p.parseRelExpr()
	if !p.expect(lexer.THEN_KEY, "THEN") {
		return nil, false
	}
	target, ok := p.parseLineTarget()
	if !ok {
		return nil, false
	}
	return &ast.IfStmt{Cond: cond, Then: target, Line: line}, true
}

// parseScalarIdent parses a bare (non-subscripted) variable name, as used
// by FOR's loop variable and NEXT.
func (p *Parser) parseScalarIdent() *ast.Variable {
	line := p.cur.Line
	name := p.cur.Literal
	if !p.curIs(lexer.IDENT_ID) {
		p.syntaxError("expected a variable name, got %q", p.cur.Literal)
		return &ast.Variable{Name: "A", Line: line}
	}
	p.next()
	return &ast.Variable{Name: name, Line: line}
}

func (p *Parser) parseFor(line int) (ast.Statement, bool) {
	p.next() // FOR
	v := p.parseScalarIdent()
	if !p.expect(lexer.EQ_OP, "'='") {
		return nil, false
	}
	from := p.parseExpr()
	if !p.expect(lexer.TO_KEY, "TO") {
		return nil, false
	}
	to := p.parseExpr()
	var step ast.Expression
	if p.curIs(lexer.STEP_KEY) {
		p.next()
		step = p.parseExpr()
	}
	return &ast.ForStmt{Var: v, From: from, To: to, Step: step, Line: line}, true
}

func (p *Parser) parseNext(line int) (ast.Statement, bool) {
	p.next() // NEXT
	v := p.parseScalarIdent()
	return &ast.NextStmt{Var: v, Line: line}, true
}

func (p *Parser) parseDef(line int) (ast.Statement, bool) {
	p.next() // DEF
	if !p.curIs(lexer.FNAME_ID) {
		p.syntaxError("expected a function name after DEF, got %q", p.cur.Literal)
		return nil, false
	}
	fname := p.cur.Literal
	p.next()
	if !p.expect(lexer.LEFT_PAREN, "'('") {
		return nil, false
	}
	if !p.curIs(lexer.IDENT_ID) {
		p.syntaxError("expected a parameter name, got %q", p.cur.Literal)
		return nil, false
	}
	param := p.cur.Literal
	p.next()
	if !p.expect(lexer.RIGHT_PAREN, "')'") {
		return nil, false
	}
	if !p.expect(lexer.EQ_OP, "'='") {
		return nil, false
	}
	body := p.parseExpr()
	return &ast.DefStmt{FName: fname, Param: param, Body: body, Line: line}, true
}

func (p *Parser) parseDimItem() *ast.Variable {
	line := p.cur.Line
	name := p.cur.Literal
	if !p.curIs(lexer.IDENT_ID) {
		p.syntaxError("expected a variable name in DIM, got %q", p.cur.Literal)
		return &ast.Variable{Name: "A", Line: line}
	}
	p.next()
	v := &ast.Variable{Name: name, Line: line}
	p.expect(lexer.LEFT_PAREN, "'('")
	d1Line := p.cur.Line
	d1, _ := strconv.Atoi(p.cur.Literal)
	p.expect(lexer.INT_LIT, "an integer bound")
	v.Dim1 = &ast.NumberLit{IsInt: true, Value: float64(d1), Line: d1Line}
	if p.curIs(lexer.COMMA_DELIM) {
		p.next()
		d2Line := p.cur.Line
		d2, _ := strconv.Atoi(p.cur.Literal)
		p.expect(lexer.INT_LIT, "an integer bound")
		v.Dim2 = &ast.NumberLit{IsInt: true, Value: float64(d2), Line: d2Line}
	}
	p.expect(lexer.RIGHT_PAREN, "')'")
	return v
}

func (p *Parser) parseDim(line int) (ast.Statement, bool) {
	p.next() // DIM
	items := []*ast.Variable{p.parseDimItem()}
	for p.curIs(lexer.COMMA_DELIM) {
		p.next()
		items = append(items, p.parseDimItem())
	}
	return &ast.DimStmt{Vars: items, Line: line}, true
}
