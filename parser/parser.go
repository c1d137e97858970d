/*
File: basic64/parser/parser.go
*/

// Package parser consumes the lexer's token stream and builds an
// ast.Program. Like the lexer, it never panics on a malformed line: it
// records a syntax error through the report.Reporter, skips to the next
// NEWLINE, and keeps parsing the remaining lines.
package parser

import (
	"sort"
	"strconv"

	"github.com/svdev6/basic64/ast"
	"github.com/svdev6/basic64/lexer"
	"github.com/svdev6/basic64/report"
)

// Parser holds the lexer's two-token lookahead window plus error state.
type Parser struct {
	lex  lexer.Lexer
	cur  lexer.Token
	peek lexer.Token

	rep    *report.Reporter
	errors []string
}

// NewParser returns a Parser ready to consume src.
func NewParser(src string, rep *report.Reporter) *Parser {
	p := &Parser{lex: lexer.NewLexer(src), rep: rep}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.cur.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peek.Type == tt }

// expect advances past cur if it matches tt, otherwise records a syntax
// error and leaves cur in place for the caller's resync logic.
func (p *Parser) expect(tt lexer.TokenType, what string) bool {
	if p.curIs(tt) {
		p.next()
		return true
	}
	p.syntaxError("expected %s, got %q", what, p.cur.Literal)
	return false
}

func (p *Parser) syntaxError(format string, args ...any) {
	p.rep.Report(report.SyntaxError, p.cur.Line, p.cur.Column, format, args...)
}

// skipToNewline discards tokens through the next NEWLINE (or EOF), used to
// resynchronize after a malformed line.
func (p *Parser) skipToNewline() {
	for !p.curIs(lexer.NEWLINE_TYPE) && !p.curIs(lexer.EOF_TYPE) {
		p.next()
	}
	if p.curIs(lexer.NEWLINE_TYPE) {
		p.next()
	}
}

// HasErrors reports whether any syntax error was recorded.
func (p *Parser) HasErrors() bool { return p.rep.HasErrors() }

// Parse consumes the full token stream and returns the resulting Program.
// Malformed lines are skipped (after reporting) rather than aborting the
// whole parse, so a caller can still inspect every other line's errors.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{Lines: make(map[int]ast.Statement)}

	for !p.curIs(lexer.EOF_TYPE) {
		if p.curIs(lexer.NEWLINE_TYPE) {
			// A bare blank line; the grammar rejects it.
			p.syntaxError("empty line")
			p.next()
			continue
		}
		lineNo, ok := p.parseLineNumber()
		if !ok {
			p.skipToNewline()
			continue
		}
		if p.curIs(lexer.NEWLINE_TYPE) {
			p.syntaxError("line %d has no statement", lineNo)
			p.next()
			continue
		}
		stmt, ok := p.parseStatement(lineNo)
		if !ok {
			p.skipToNewline()
			continue
		}
		if !p.curIs(lexer.EOF_TYPE) {
			p.expect(lexer.NEWLINE_TYPE, "end of line")
		}
		if _, dup := prog.Lines[lineNo]; dup {
			p.syntaxError("duplicate line number %d", lineNo)
		}
		prog.Lines[lineNo] = stmt
		prog.Order = append(prog.Order, lineNo)
	}

	sort.Ints(prog.Order)
	return prog
}

func (p *Parser) parseLineNumber() (int, bool) {
	if !p.curIs(lexer.INT_LIT) {
		p.syntaxError("expected a line number, got %q", p.cur.Literal)
		return 0, false
	}
	n, err := strconv.Atoi(p.cur.Literal)
	if err != nil || n <= 0 {
		p.syntaxError("invalid line number %q", p.cur.Literal)
		p.next()
		return 0, false
	}
	p.next()
	return n, true
}
