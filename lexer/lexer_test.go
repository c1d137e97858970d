package lexer

import "testing"

func tokenTypes(src string) []TokenType {
	lex := NewLexer(src)
	toks := lex.ConsumeTokens()
	types := make([]TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestNextTokenStatement(t *testing.T) {
	src := "10 LET S = S + I\n"
	lex := NewLexer(src)
	want := []Token{
		{Type: INT_LIT, Literal: "10"},
		{Type: LET_KEY, Literal: "LET"},
		{Type: IDENT_ID, Literal: "S"},
		{Type: EQ_OP, Literal: "="},
		{Type: IDENT_ID, Literal: "S"},
		{Type: PLUS_OP, Literal: "+"},
		{Type: IDENT_ID, Literal: "I"},
		{Type: NEWLINE_TYPE, Literal: "\n"},
	}
	for i, w := range want {
		got := lex.NextToken()
		if got.Type != w.Type || got.Literal != w.Literal {
			t.Fatalf("token %d: got %+v, want %+v", i, got, w)
		}
	}
}

func TestCaseInsensitiveKeywords(t *testing.T) {
	got := tokenTypes("10 print \"hi\"\n")
	want := []TokenType{INT_LIT, PRINT_KEY, STRING_LIT, NEWLINE_TYPE}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBuiltinAndFunctionName(t *testing.T) {
	lex := NewLexer("10 LET Y = FNA(SQR(X))\n")
	var seen []TokenType
	for {
		tok := lex.NextToken()
		if tok.Type == EOF_TYPE {
			break
		}
		seen = append(seen, tok.Type)
	}
	foundFname, foundBltin := false, false
	for _, ty := range seen {
		if ty == FNAME_ID {
			foundFname = true
		}
		if ty == BLTIN_ID {
			foundBltin = true
		}
	}
	if !foundFname || !foundBltin {
		t.Fatalf("expected FNAME_ID and BLTIN_ID among %v", seen)
	}
}

func TestVariableNamingConvention(t *testing.T) {
	lex := NewLexer("B2 C$ A\n")
	toks := []Token{lex.NextToken(), lex.NextToken(), lex.NextToken()}
	for _, tok := range toks {
		if tok.Type != IDENT_ID {
			t.Fatalf("expected IDENT_ID, got %+v", tok)
		}
	}
	if toks[0].Literal != "B2" || toks[1].Literal != "C$" || toks[2].Literal != "A" {
		t.Fatalf("unexpected literals: %+v", toks)
	}
}

func TestRemarkConsumesToEndOfLine(t *testing.T) {
	lex := NewLexer("10 REM this is a comment\n20 END\n")
	lex.NextToken() // 10
	rem := lex.NextToken()
	if rem.Type != REMARK_LIT {
		t.Fatalf("expected REMARK_LIT, got %+v", rem)
	}
	if rem.Literal != "this is a comment" {
		t.Fatalf("unexpected remark text %q", rem.Literal)
	}
	nl := lex.NextToken()
	if nl.Type != NEWLINE_TYPE {
		t.Fatalf("expected NEWLINE_TYPE after remark, got %+v", nl)
	}
}

func TestNumericLiteralKinds(t *testing.T) {
	lex := NewLexer("10 1.5 1E9 1.4E9 42\n")
	lex.NextToken() // 10
	cases := []TokenType{FLOAT_LIT, FLOAT_LIT, FLOAT_LIT, INT_LIT}
	for i, want := range cases {
		got := lex.NextToken()
		if got.Type != want {
			t.Fatalf("literal %d: got %s (%q), want %s", i, got.Type, got.Literal, want)
		}
	}
}

func TestIllegalCharacterReportedAndSkipped(t *testing.T) {
	lex := NewLexer("10 LET A = 1 @ 2\n")
	var types []TokenType
	for {
		tok := lex.NextToken()
		if tok.Type == EOF_TYPE {
			break
		}
		types = append(types, tok.Type)
	}
	foundInvalid := false
	for _, ty := range types {
		if ty == INVALID_TYPE {
			foundInvalid = true
		}
	}
	if !foundInvalid {
		t.Fatalf("expected an INVALID_TYPE token, got %v", types)
	}
}
