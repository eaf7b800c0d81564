package main

import (
	"fmt"
	"reflect"
	"testing"
)

func decodeRpnItem(item any) string {

	switch item := item.(type) {
	case varToken:
		return fmt.Sprintf("VAR %s", string(item))

	case int64:
		return fmt.Sprintf("INTEGER %d", item)

	case float64:
		return fmt.Sprintf("FLOAT %g", item)

	case string:
		return fmt.Sprintf("STRING %q", item)

	case tokenKind:
		return fmt.Sprintf("OP %s", getTokenName(item))
	}

	return fmt.Sprintf("UNKNOWN %T", item)
}

func decodeRpn(tl tokenList) []string {

	items := make([]string, len(tl))
	for i, item := range tl {
		items[i] = decodeRpnItem(item)
	}

	return items
}

func mustParse(t *testing.T, text string) []*stmtNode {

	t.Helper()

	var chain []*stmtNode

	if err := call(func() {
		chain = parseLine(tokenize(text), false)
	}); err != nil {
		t.Fatalf("%q: unexpected error: %v", text, err)
	}

	return chain
}

func TestParseExpressionRpn(t *testing.T) {

	tests := []struct {
		text string
		want []string
	}{
		{"PRINT 1 + 2 * 3", []string{"INTEGER 1", "INTEGER 2", "INTEGER 3", "OP *", "OP +"}},
		{"PRINT (1 + 2) * 3", []string{"INTEGER 1", "INTEGER 2", "OP +", "INTEGER 3", "OP *"}},
		{"PRINT 8 - 2 - 1", []string{"INTEGER 8", "INTEGER 2", "OP -", "INTEGER 1", "OP -"}},
		{"PRINT A", []string{"VAR A", "INTEGER 0", "OP SUBSCR"}},
		{"PRINT A[I + 1]", []string{"VAR A", "VAR I", "INTEGER 0", "OP SUBSCR", "INTEGER 1", "OP +", "OP SUBSCR"}},
		{"PRINT -X", []string{"VAR X", "INTEGER 0", "OP SUBSCR", "OP UNEG"}},
		{"PRINT RND(6)", []string{"INTEGER 6", "OP RND"}},
		{`PRINT "s"`, []string{`STRING "s"`}},
		{"PRINT 1 + 2 < 4", []string{"INTEGER 1", "INTEGER 2", "OP +", "INTEGER 4", "OP <"}},
		{"PRINT 1 < 2 < 3", []string{"INTEGER 1", "INTEGER 2", "OP <"}},
		{"PRINT 1 = 2 * 3", []string{"INTEGER 1", "INTEGER 2", "INTEGER 3", "OP *", "OP ="}},
	}

	for _, tc := range tests {
		chain := mustParse(t, tc.text)

		if len(chain) != 1 || chain[0].token != PRINT || len(chain[0].operands) != 1 {
			t.Errorf("%q: unexpected chain %v", tc.text, chain)
			continue
		}

		if got := decodeRpn(chain[0].operands[0]); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%q: got %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestParseStatements(t *testing.T) {

	chain := mustParse(t, `LET A[1] = 2 : INPUT "Age"; N : FOR I = 1 TO 5 STEP 2 : NEXT I : GOTO 100 : DIM B[10] : SAVE "p"`)

	want := []tokenKind{LET, INPUT, FOR, NEXT, GOTO, DIM, SAVE}

	if len(chain) != len(want) {
		t.Fatalf("got %d statements, want %d", len(chain), len(want))
	}

	for i, stmt := range chain {
		if stmt.token != want[i] {
			t.Errorf("statement %d: got %s, want %s", i, stmt.token, want[i])
		}

		if stmt.err != nil {
			t.Errorf("statement %d: unexpected error %v", i, stmt.err)
		}
	}

	if chain[0].name != "A" || chain[0].subscr == nil {
		t.Errorf("LET: %+v", chain[0])
	}

	if chain[1].prompt != "Age" || chain[1].name != "N" {
		t.Errorf("INPUT: %+v", chain[1])
	}

	if chain[2].name != "I" || len(chain[2].operands) != 3 {
		t.Errorf("FOR: %+v", chain[2])
	}

	if chain[3].name != "I" {
		t.Errorf("NEXT: %+v", chain[3])
	}

	if chain[4].lineNo != 100 {
		t.Errorf("GOTO: %+v", chain[4])
	}

	if chain[5].name != "B" || len(chain[5].operands) != 1 {
		t.Errorf("DIM: %+v", chain[5])
	}

	if chain[6].filename != "p" {
		t.Errorf("SAVE: %+v", chain[6])
	}
}

func TestParseInputDefaultPrompt(t *testing.T) {

	chain := mustParse(t, "INPUT X")

	if chain[0].prompt != inputPrompt || chain[0].name != "X" {
		t.Errorf("got %+v", chain[0])
	}
}

func TestParseEmptyLine(t *testing.T) {

	if chain := mustParse(t, "   "); chain != nil {
		t.Errorf("got %v", chain)
	}
}

func TestParseErrorEndsChain(t *testing.T) {

	chain := mustParse(t, "PRINT 1 : LET = 2 : PRINT 3")

	if len(chain) != 2 {
		t.Fatalf("got %d statements, want 2", len(chain))
	}

	if chain[0].token != PRINT || chain[0].err != nil {
		t.Errorf("first statement %+v", chain[0])
	}

	if chain[1].token != ILLEGAL || !isSyntaxError(chain[1].err) {
		t.Errorf("second statement %+v", chain[1])
	}
}

func TestParseTrailingTokensIgnored(t *testing.T) {

	chain := mustParse(t, "PRINT 1 2 3 : PRINT 4")

	if len(chain) != 2 || chain[1].token != PRINT {
		t.Errorf("got %v", chain)
	}
}

func TestParseIfBranches(t *testing.T) {

	chain := mustParse(t, `IF A = 1 THEN PRINT "a" : PRINT "b" ELSE PRINT "c" : PRINT "d"`)

	if len(chain) != 1 {
		t.Fatalf("IF should swallow the rest of the line, got %d statements", len(chain))
	}

	//
	// The THEN branch skips over 'ELSE PRINT "c"' to the next ':' and
	// carries on, so it holds three statements
	//

	stmt := chain[0]

	if len(stmt.thenList) != 3 || len(stmt.elseList) != 2 {
		t.Errorf("then %d, else %d", len(stmt.thenList), len(stmt.elseList))
	}

	chain = mustParse(t, `IF A = 1 THEN PRINT "a"`)

	if len(chain[0].thenList) != 1 || chain[0].elseList != nil {
		t.Errorf("got %+v", chain[0])
	}

	chain = mustParse(t, `IF A = 1 GOTO 10`)

	if len(chain[0].thenList) != 1 || chain[0].thenList[0].token != ILLEGAL {
		t.Errorf("missing THEN should be a deferred error, got %+v", chain[0].thenList)
	}
}
