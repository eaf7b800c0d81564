package main

import (
	"strconv"
	"strings"
	"unicode"
)

type lexer struct {
	line   []rune
	pos    int
	tokens []token
}

//
// Break one line of source into tokens.  The whole line is scanned
// before the parser sees any of it, and the result always ends with
// exactly one EOF token
//

func tokenize(text string) []token {

	lexer := &lexer{line: []rune(text)}

	for {
		t := lexer.getLexeme()

		lexer.tokens = append(lexer.tokens, t)

		//
		// Everything after REM is commentary, so stop scanning.  This
		// lets a remark contain characters the lexer would otherwise
		// reject
		//

		if t.kind == REM {
			lexer.tokens = append(lexer.tokens, token{kind: EOF})
			break
		}

		if t.kind == EOF {
			break
		}
	}

	return lexer.tokens
}

func (lx *lexer) peekch() rune {

	if lx.pos+1 < len(lx.line) {
		return lx.line[lx.pos+1]
	}

	return 0
}

func (lx *lexer) atEnd() bool {

	return lx.pos >= len(lx.line)
}

func (lx *lexer) getLexeme() token {

	for !lx.atEnd() && unicode.IsSpace(lx.line[lx.pos]) {
		lx.pos++
	}

	if lx.atEnd() {
		return token{kind: EOF}
	}

	ch := lx.line[lx.pos]

	switch {
	case isDecimalDigit(ch):
		return lx.integer()

	case unicode.IsLetter(ch):
		return lx.identifier()

	case ch == '"':
		return lx.quoted()
	}

	switch ch {
	case '>':
		if lx.peekch() == '=' {
			return lx.operator(GTE, 2)
		}

		return lx.operator(GT, 1)

	case '<':
		switch lx.peekch() {
		case '=':
			return lx.operator(LTE, 2)

		case '>':
			return lx.operator(NE, 2)
		}

		return lx.operator(LT, 1)

	case '+':
		return lx.operator(PLUS, 1)

	case '-':
		return lx.operator(MINUS, 1)

	case '*':
		return lx.operator(MUL, 1)

	case '/':
		return lx.operator(DIV, 1)

	case '(':
		return lx.operator(LPAREN, 1)

	case ')':
		return lx.operator(RPAREN, 1)

	case '[':
		return lx.operator(LBRACK, 1)

	case ']':
		return lx.operator(RBRACK, 1)

	case '=':
		return lx.operator(EQUALS, 1)

	case ';':
		return lx.operator(SEMI, 1)

	case ':':
		return lx.operator(COLON, 1)
	}

	tokenizeError(EINVALIDCHAR)

	panic(nil) // avoid compiler complaint
}

func (lx *lexer) operator(kind tokenKind, width int) token {

	lx.pos += width

	return token{kind: kind, value: getTokenName(kind)}
}

func (lx *lexer) integer() token {

	start := lx.pos

	for !lx.atEnd() && isDecimalDigit(lx.line[lx.pos]) {
		lx.pos++
	}

	n, err := strconv.ParseInt(string(lx.line[start:lx.pos]), 10, 64)
	if err != nil {
		tokenizeError(EILLEGALNUMBER)
	}

	return token{kind: INTEGER, value: n}
}

//
// Identifiers keep the case they were typed in, but keywords are
// matched case-insensitively
//

func (lx *lexer) identifier() token {

	start := lx.pos

	for !lx.atEnd() && isAlnum(lx.line[lx.pos]) {
		lx.pos++
	}

	txt := string(lx.line[start:lx.pos])
	upper := strings.ToUpper(txt)

	if keyword, ok := keywordMap[upper]; ok {
		return token{kind: keyword, value: upper}
	}

	return token{kind: IDENTIFIER, value: txt}
}

//
// No escapes.  A string with no closing quote runs to the end of the
// line rather than being an error
//

func (lx *lexer) quoted() token {

	lx.pos++

	start := lx.pos

	for !lx.atEnd() && lx.line[lx.pos] != '"' {
		lx.pos++
	}

	txt := string(lx.line[start:lx.pos])

	if !lx.atEnd() {
		lx.pos++
	}

	return token{kind: STRING, value: txt}
}

func isDecimalDigit(ch rune) bool {

	return ch >= '0' && ch <= '9'
}

func isAlnum(ch rune) bool {

	return unicode.IsLetter(ch) || isDecimalDigit(ch)
}
