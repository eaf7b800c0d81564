package main

import (
	"reflect"
	"testing"
)

func tokenKinds(tokens []token) []tokenKind {

	kinds := make([]tokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.kind
	}

	return kinds
}

func TestTokenizeKinds(t *testing.T) {

	tests := []struct {
		text string
		want []tokenKind
	}{
		{"", []tokenKind{EOF}},
		{"   \t ", []tokenKind{EOF}},
		{"LET A = 1", []tokenKind{LET, IDENTIFIER, EQUALS, INTEGER, EOF}},
		{"PRINT A[2]; B", []tokenKind{PRINT, IDENTIFIER, LBRACK, INTEGER, RBRACK, SEMI, IDENTIFIER, EOF}},
		{"1+2-3*4/5", []tokenKind{INTEGER, PLUS, INTEGER, MINUS, INTEGER, MUL, INTEGER, DIV, INTEGER, EOF}},
		{"(<<=>>=<>)", []tokenKind{LPAREN, LT, LTE, GT, GTE, NE, RPAREN, EOF}},
		{"IF X THEN GOTO 10 ELSE NEXT I", []tokenKind{IF, IDENTIFIER, THEN, GOTO, INTEGER, ELSE, NEXT, IDENTIFIER, EOF}},
		{"FOR I = 1 TO 9 STEP 2 : DIM Q[4]", []tokenKind{FOR, IDENTIFIER, EQUALS, INTEGER, TO, INTEGER, STEP, INTEGER, COLON, DIM, IDENTIFIER, LBRACK, INTEGER, RBRACK, EOF}},
		{`INPUT "x"; X`, []tokenKind{INPUT, STRING, SEMI, IDENTIFIER, EOF}},
		{"list run new clear debug", []tokenKind{LIST, RUN, NEW, CLEAR, DEBUG, EOF}},
		{`save "a" load "b"`, []tokenKind{SAVE, STRING, LOAD, STRING, EOF}},
		{"RND(6)", []tokenKind{RND, LPAREN, INTEGER, RPAREN, EOF}},
		{"REM @ ! ~ \"", []tokenKind{REM, EOF}},
		{"A1B2", []tokenKind{IDENTIFIER, EOF}},
		{"12AB", []tokenKind{INTEGER, IDENTIFIER, EOF}},
		{"LETTER", []tokenKind{IDENTIFIER, EOF}},
	}

	for _, tc := range tests {
		var got []tokenKind

		err := call(func() {
			got = tokenKinds(tokenize(tc.text))
		})

		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.text, err)
			continue
		}

		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: got %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTokenizeValues(t *testing.T) {

	tokens := tokenize(`print Abc 42 "Hi  there" <>`)

	want := []token{
		{kind: PRINT, value: "PRINT"},
		{kind: IDENTIFIER, value: "Abc"},
		{kind: INTEGER, value: int64(42)},
		{kind: STRING, value: "Hi  there"},
		{kind: NE, value: "<>"},
		{kind: EOF},
	}

	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("got %v, want %v", tokens, want)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {

	tokens := tokenize(`PRINT "abc`)

	if len(tokens) != 3 || tokens[1].kind != STRING || tokens[1].value != "abc" {
		t.Errorf("got %v", tokens)
	}
}

func TestTokenizeExactlyOneEOF(t *testing.T) {

	for _, text := range []string{"", "PRINT 1", "REM x", "A : B : C", `"`} {
		tokens := tokenize(text)

		n := 0
		for _, tok := range tokens {
			if tok.kind == EOF {
				n++
			}
		}

		if n != 1 || tokens[len(tokens)-1].kind != EOF {
			t.Errorf("%q: tokens %v", text, tokens)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {

	tests := []struct {
		text string
		want string
	}{
		{"PRINT 1 @ 2", EINVALIDCHAR},
		{"LET A = 1.5", EINVALIDCHAR},
		{"PRINT 'x'", EINVALIDCHAR},
		{"A = 1 , 2", EINVALIDCHAR},
		{"PRINT 99999999999999999999", EILLEGALNUMBER},
	}

	for _, tc := range tests {
		err := call(func() {
			tokenize(tc.text)
		})

		if !isTokenizeError(err) {
			t.Errorf("%q: expected tokenize error, got %v", tc.text, err)
			continue
		}

		if err.Error() != tc.want {
			t.Errorf("%q: got %q, want %q", tc.text, err.Error(), tc.want)
		}
	}
}

func TestKeywordNames(t *testing.T) {

	for tok := firstKeyword + 1; tok <= lastKeyword; tok++ {
		name := getTokenName(tok)

		if keywordMap[name] != tok {
			t.Errorf("keyword %s does not map back to itself", name)
		}

		if got := tokenize(name); got[0].kind != tok || got[0].value != name {
			t.Errorf("tokenize(%q) = %v", name, got[0])
		}
	}
}
