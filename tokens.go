package main

import (
	"fmt"
)

//
// Token kinds.  The keyword kinds are bracketed by firstKeyword and
// lastKeyword so that initKeywords can build the keyword map by walking
// the range.  The name of a keyword kind is its spelling, and the lexer
// hands that same spelling back as the token value
//

type tokenKind int

const (
	ILLEGAL tokenKind = iota
	EOF
	INTEGER
	STRING
	IDENTIFIER
	PLUS
	MINUS
	MUL
	DIV
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	EQUALS
	SEMI
	COLON
	LT
	LTE
	GT
	GTE
	NE

	firstKeyword

	LET
	PRINT
	IF
	THEN
	ELSE
	GOTO
	FOR
	TO
	STEP
	NEXT
	INPUT
	LIST
	NEW
	CLEAR
	RUN
	SAVE
	LOAD
	REM
	RND
	DIM
	DEBUG

	lastKeyword = DEBUG
)

//
// RPN-only operators.  These never come out of the lexer; the parser
// appends them to an expression list
//

const (
	SUBSCR tokenKind = lastKeyword + 1 + iota
	UNEG
)

var tokenNames = map[tokenKind]string{
	ILLEGAL:    "ILLEGAL",
	EOF:        "EOF",
	INTEGER:    "INTEGER",
	STRING:     "STRING",
	IDENTIFIER: "IDENTIFIER",
	PLUS:       "+",
	MINUS:      "-",
	MUL:        "*",
	DIV:        "/",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACK:     "[",
	RBRACK:     "]",
	EQUALS:     "=",
	SEMI:       ";",
	COLON:      ":",
	LT:         "<",
	LTE:        "<=",
	GT:         ">",
	GTE:        ">=",
	NE:         "<>",
	LET:        "LET",
	PRINT:      "PRINT",
	IF:         "IF",
	THEN:       "THEN",
	ELSE:       "ELSE",
	GOTO:       "GOTO",
	FOR:        "FOR",
	TO:         "TO",
	STEP:       "STEP",
	NEXT:       "NEXT",
	INPUT:      "INPUT",
	LIST:       "LIST",
	NEW:        "NEW",
	CLEAR:      "CLEAR",
	RUN:        "RUN",
	SAVE:       "SAVE",
	LOAD:       "LOAD",
	REM:        "REM",
	RND:        "RND",
	DIM:        "DIM",
	DEBUG:      "DEBUG",
	SUBSCR:     "SUBSCR",
	UNEG:       "UNEG",
}

//
// Maps an upper-cased identifier to its keyword kind
//

var keywordMap map[string]tokenKind

func init() {

	initKeywords()
}

func initKeywords() {

	keywordMap = make(map[string]tokenKind)

	for tok := firstKeyword + 1; tok <= lastKeyword; tok++ {
		keywordMap[getTokenName(tok)] = tok
	}
}

func getTokenName(tok tokenKind) string {

	if name, ok := tokenNames[tok]; ok {
		return name
	}

	return fmt.Sprintf("token(%d)", int(tok))
}

func (tok tokenKind) String() string {

	return getTokenName(tok)
}

func isKeyword(tok tokenKind) bool {

	return tok > firstKeyword && tok <= lastKeyword
}

//
// The comparison operators.  Once the expression parser consumes one
// of these, the comparison result is the value of the whole expression
//

func isComparison(tok tokenKind) bool {

	switch tok {
	case EQUALS, LT, LTE, GT, GTE, NE:
		return true
	}

	return false
}
