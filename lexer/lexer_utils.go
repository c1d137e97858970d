/*
File: basic64/lexer/lexer_utils.go
*/
package lexer

import "strings"

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// readStringLiteral reads a double-quoted string. BASIC strings carry no
// escape sequences and cannot contain an embedded quote; an unterminated
// string runs to end-of-line and comes back INVALID_TYPE.
func readStringLiteral(lex *Lexer) Token {
	line, col := lex.Line, lex.Column
	lex.Advance() // consume opening quote

	var b strings.Builder
	for lex.Current != '"' {
		if lex.Current == 0 || lex.Current == '\n' {
			return NewTokenWithMetadata(INVALID_TYPE, b.String(), line, col)
		}
		b.WriteByte(lex.Current)
		lex.Advance()
	}
	lex.Advance() // consume closing quote
	return NewTokenWithMetadata(STRING_LIT, b.String(), line, col)
}

// readNumber reads an integer or float literal. A float is a digit-point-
// digit form with an optional exponent, or an integer mantissa carrying an
// exponent; anything else with only digits is an integer. The two forms
// are returned as distinct token kinds.
func readNumber(lex *Lexer) Token {
	line, col := lex.Line, lex.Column
	src, n := lex.Src, lex.SrcLength
	start := lex.Position

	i := start
	for i < n && isDigit(src[i]) {
		i++
	}

	isFloat := false
	if i < n && src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
		isFloat = true
		i++
		for i < n && isDigit(src[i]) {
			i++
		}
	}
	if i < n && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < n && isDigit(src[j]) {
			isFloat = true
			i = j + 1
			for i < n && isDigit(src[i]) {
				i++
			}
		}
	}

	lex.Column += i - start
	lex.Position = i
	if i >= n {
		lex.Current = 0
		lex.Position = n
	} else {
		lex.Current = src[i]
	}

	typ := INT_LIT
	if isFloat {
		typ = FLOAT_LIT
	}
	return NewTokenWithMetadata(typ, src[start:i], line, col)
}

// readWord reads a maximal run of letters, then any digits, and an
// optional trailing '$', then classifies the run as a keyword, a builtin,
// an FN function name, or a plain variable identifier; a run with digits
// is an identifier only as one letter plus one digit, else INVALID. REM is
// special-cased: it swallows the remainder of the line as remark text
// rather than returning as a bare keyword token.
func readWord(lex *Lexer) Token {
	line, col := lex.Line, lex.Column
	src, n := lex.Src, lex.SrcLength
	start := lex.Position

	i := start
	for i < n && isAlpha(src[i]) {
		i++
	}
	letters := src[start:i]

	digitStart := i
	for i < n && isDigit(src[i]) {
		i++
	}
	digits := src[digitStart:i]

	dollar := ""
	if i < n && src[i] == '$' {
		dollar = "$"
		i++
	}

	lex.Column += i - start
	lex.Position = i
	if i >= n {
		lex.Current = 0
		lex.Position = n
	} else {
		lex.Current = src[i]
	}

	upperLetters := strings.ToUpper(letters)

	if digits == "" {
		if upperLetters == "REM" && dollar == "" {
			return readRemark(lex, line, col)
		}
		if kw, ok := KEYWORDS_MAP[upperLetters]; ok && dollar == "" {
			return NewTokenWithMetadata(kw, upperLetters, line, col)
		}
		if BUILTINS_SET[upperLetters+dollar] {
			return NewTokenWithMetadata(BLTIN_ID, upperLetters+dollar, line, col)
		}
		if len(upperLetters) == 3 && upperLetters[:2] == "FN" && dollar == "" {
			return NewTokenWithMetadata(FNAME_ID, upperLetters, line, col)
		}
		if len(letters) == 1 {
			return NewTokenWithMetadata(IDENT_ID, upperLetters+dollar, line, col)
		}
	} else if len(letters) == 1 && len(digits) == 1 {
		return NewTokenWithMetadata(IDENT_ID, upperLetters+digits+dollar, line, col)
	}

	return NewTokenWithMetadata(INVALID_TYPE, letters+digits+dollar, line, col)
}

// readRemark consumes from just after the REM keyword through the end of
// the line (exclusive of the newline itself) and returns it as one token.
func readRemark(lex *Lexer, line, col int) Token {
	if lex.Current == ' ' || lex.Current == '\t' {
		lex.Advance()
	}
	start := lex.Position
	for lex.Current != '\n' && lex.Current != 0 {
		lex.Advance()
	}
	return NewTokenWithMetadata(REMARK_LIT, lex.Src[start:lex.Position], line, col)
}
