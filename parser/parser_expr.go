/*
File: basic64/parser/parser_expr.go
*/
package parser

import (
	"strconv"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/lexer"
)

// parseExpr is the entry point for expression parsing: precedence climbs
// from the loosest-binding operators ("+ -") down through "* /", "^", "%",
// and unary minus, lowest to highest.
func (p *Parser) parseExpr() ast.Expression {
	return p.parseAddSub()
}

func (p *Parser) parseAddSub() ast.Expression {
	left := p.parseMulDiv()
	for p.curIs(lexer.PLUS_OP) || p.curIs(lexer.MINUS_OP) {
		op := string(p.cur.Type)
		line := p.cur.Line
		p.next()
		right := p.parseMulDiv()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left
}

func (p *Parser) parseMulDiv() ast.Expression {
	left := p.parsePow()
	for p.curIs(lexer.MUL_OP) || p.curIs(lexer.DIV_OP) {
		op := string(p.cur.Type)
		line := p.cur.Line
		p.next()
		right := p.parsePow()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Line: line}
	}
	return left
}

// parsePow is right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) parsePow() ast.Expression {
	left := p.parseMod()
	if p.curIs(lexer.POW_OP) {
		line := p.cur.Line
		p.next()
		right := p.parsePow()
		return &ast.BinaryExpr{Op: "^", Left: left, Right: right, Line: line}
	}
	return left
}

func (p *Parser) parseMod() ast.Expression {
	left := p.parseUnary()
	for p.curIs(lexer.MOD_OP) {
		line := p.cur.Line
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: "%", Left: left, Right: right, Line: line}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(lexer.MINUS_OP) {
		line := p.cur.Line
		p.next()
		right := p.parseUnary()
		return &ast.UnaryExpr{Op: "-", Right: right, Line: line}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	line := p.cur.Line
	switch p.cur.Type {
	case lexer.INT_LIT:
		n, _ := strconv.ParseFloat(p.cur.Literal, 64)
		p.next()
		return &ast.NumberLit{IsInt: true, Value: n, Line: line}
	case lexer.FLOAT_LIT:
		n, _ := strconv.ParseFloat(p.cur.Literal, 64)
		p.next()
		return &ast.NumberLit{IsInt: false, Value: n, Line: line}
	case lexer.STRING_LIT:
		s := p.cur.Literal
		p.next()
		return &ast.StringLit{Value: s, Line: line}
	case lexer.LEFT_PAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(lexer.RIGHT_PAREN, "')'")
		return &ast.GroupExpr{Inner: inner, Line: line}
	case lexer.BLTIN_ID:
		return p.parseBltinCall()
	case lexer.FNAME_ID:
		return p.parseFNCall()
	case lexer.IDENT_ID:
		return p.parseVariableRef()
	default:
		p.syntaxError("expected an expression, got %q", p.cur.Literal)
		p.next()
		return &ast.NumberLit{Value: 0, Line: line}
	}
}

// parseVariableRef parses `ident`, `ident(expr)`, or `ident(expr,expr)`.
func (p *Parser) parseVariableRef() *ast.Variable {
	line := p.cur.Line
	name := p.cur.Literal
	p.next()
	v := &ast.Variable{Name: name, Line: line}
	if p.curIs(lexer.LEFT_PAREN) {
		p.next()
		v.Dim1 = p.parseExpr()
		if p.curIs(lexer.COMMA_DELIM) {
			p.next()
			v.Dim2 = p.parseExpr()
		}
		p.expect(lexer.RIGHT_PAREN, "')'")
	}
	return v
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	p.expect(lexer.LEFT_PAREN, "'('")
	if p.curIs(lexer.RIGHT_PAREN) {
		p.next()
		return args
	}
	args = append(args, p.parseExpr())
	for p.curIs(lexer.COMMA_DELIM) {
		p.next()
		args = append(args, p.parseExpr())
	}
	p.expect(lexer.RIGHT_PAREN, "')'")
	return args
}

func (p *Parser) parseBltinCall() ast.Expression {
	line := p.cur.Line
	name := p.cur.Literal
	p.next()
	var args []ast.Expression
	// PI and TIME and RND are zero-arg; tolerate a missing parens.
	if p.curIs(lexer.LEFT_PAREN) {
		args = p.parseArgList()
	}
	return &ast.BltinCall{Name: name, Args: args, Line: line}
}

func (p *Parser) parseFNCall() ast.Expression {
	line := p.cur.Line
	name := p.cur.Literal
	p.next()
	p.expect(lexer.LEFT_PAREN, "'('")
	var arg ast.Expression
	if !p.curIs(lexer.RIGHT_PAREN) {
		arg = p.parseExpr()
	}
	p.expect(lexer.RIGHT_PAREN, "')'")
	return &ast.FNCall{Name: name, Arg: arg, Line: line}
}

// parseRelExpr parses a relational expression, valid only inside an IF's
// condition: = <> < <= > >=.
func (p *Parser) parseRelExpr() ast.Expression {
	left := p.parseExpr()
	switch p.cur.Type {
	case lexer.EQ_OP, lexer.NE_OP, lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		op := string(p.cur.Type)
		line := p.cur.Line
		p.next()
		right := p.parseExpr()
		return &ast.RelExpr{Op: op, Left: left, Right: right, Line: line}
	}
	p.syntaxError("expected a relational operator, got %q", p.cur.Literal)
	return left
}
