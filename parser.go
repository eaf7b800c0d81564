package main

import (

	"github.com/goforj/godump"
)

//
// Recursive descent parser.  It turns the tokens for one line into a
// chain of statement nodes, with every expression flattened to an RPN
// token list for the evaluator.  Nothing is executed here
//

type parser struct {
	tokens []token
	pos    int
	trace  bool
}

func newParser(tokens []token, trace bool) *parser {

	basicAssert(len(tokens) > 0 && tokens[len(tokens)-1].kind == EOF,
		"token list not terminated")

	return &parser{tokens: tokens, trace: trace}
}

//
// An all-whitespace line parses to an empty chain, which executes as a
// no-op
//

func parseLine(tokens []token, trace bool) []*stmtNode {

	p := newParser(tokens, trace)

	if p.cur().kind == EOF {
		return nil
	}

	return p.parseChain()
}

//
// Returns a parser over the same tokens, starting at pos.  IF uses this
// to parse its THEN and ELSE branches independently of each other
//

func (p *parser) fork(pos int) *parser {

	return &parser{tokens: p.tokens, pos: pos, trace: p.trace}
}

func (p *parser) cur() token {

	return p.tokens[p.pos]
}

func (p *parser) advance() {

	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *parser) consume(kind tokenKind) token {

	t := p.cur()
	if t.kind != kind {
		syntaxError(ESYNTAX)
	}

	p.advance()

	return t
}

func (p *parser) skipToSeparator() {

	for p.cur().kind != COLON && p.cur().kind != EOF {
		p.advance()
	}
}

//
// statement ( ':' statement )*
//
// Anything left over after a statement, up to the next ':' or the end
// of the line, is ignored.  If a statement fails to parse, the chain
// ends with a node carrying the error, so that the statements before it
// still run
//

func (p *parser) parseChain() []*stmtNode {

	var chain []*stmtNode

	for {
		stmt := p.parseStatementDeferred()
		chain = append(chain, stmt)

		if stmt.err != nil {
			break
		}

		p.skipToSeparator()

		if p.cur().kind != COLON {
			break
		}

		p.advance()
	}

	return chain
}

func (p *parser) parseStatementDeferred() (stmt *stmtNode) {

	err := call(func() {
		stmt = p.parseStatement()
	})

	if err != nil {
		stmt = &stmtNode{token: ILLEGAL, err: err}
	}

	if p.trace {
		godump.Dump(stmt)
	}

	return stmt
}

func (p *parser) parseStatement() *stmtNode {

	t := p.cur()

	if !isKeyword(t.kind) {
		syntaxError(ESYNTAX)
	}

	p.advance()

	stmt := &stmtNode{token: t.kind}

	switch t.kind {
	default:
		syntaxError(ESYNTAX)

	case LET:
		p.parseLet(stmt)

	case PRINT:
		p.parsePrint(stmt)

	case IF:
		p.parseIf(stmt)

	case FOR:
		p.parseFor(stmt)

	case NEXT:
		stmt.name = p.consume(IDENTIFIER).value.(string)

	case INPUT:
		p.parseInput(stmt)

	case GOTO:
		stmt.lineNo = p.parseLineNumber()

	case DIM:
		stmt.name = p.consume(IDENTIFIER).value.(string)
		p.consume(LBRACK)
		stmt.operands = append(stmt.operands, p.parseExpression())
		p.consume(RBRACK)

	case SAVE, LOAD:
		if p.cur().kind != STRING {
			syntaxError(EILLEGALFILENAME)
		}

		stmt.filename = p.cur().value.(string)
		p.advance()

	case LIST, RUN, NEW, CLEAR, REM, DEBUG:
		// no operands
	}

	return stmt
}

//
// 'LET' identifier ('[' expression ']')? '=' expression
//

func (p *parser) parseLet(stmt *stmtNode) {

	stmt.name = p.consume(IDENTIFIER).value.(string)

	if p.cur().kind == LBRACK {
		p.advance()
		stmt.subscr = p.parseExpression()
		p.consume(RBRACK)
	}

	p.consume(EQUALS)

	stmt.operands = append(stmt.operands, p.parseExpression())
}

//
// 'PRINT' (expression (';' expression)*)?
//

func (p *parser) parsePrint(stmt *stmtNode) {

	if p.atStatementEnd() {
		return
	}

	stmt.operands = append(stmt.operands, p.parseExpression())

	for p.cur().kind == SEMI {
		p.advance()

		if p.atStatementEnd() {
			break
		}

		stmt.operands = append(stmt.operands, p.parseExpression())
	}
}

func (p *parser) atStatementEnd() bool {

	switch p.cur().kind {
	case EOF, COLON, ELSE:
		return true
	}

	return false
}

//
// 'IF' expression 'THEN' chain ('ELSE' chain)?
//
// Both branches run to the end of the line.  The THEN branch starts
// right after the condition and must begin with THEN; the ELSE branch
// starts after the first ELSE following the condition.  Each branch
// is parsed on its own, so an error in one of them only surfaces if
// that branch is taken
//

func (p *parser) parseIf(stmt *stmtNode) {

	stmt.operands = append(stmt.operands, p.parseExpression())

	after := p.pos

	if p.cur().kind == THEN {
		stmt.thenList = p.fork(after + 1).parseChain()
	} else {
		stmt.thenList = []*stmtNode{{token: ILLEGAL,
			err: &basicError{kind: syntaxErrorKind, msg: ESYNTAX}}}
	}

	for i := after; p.tokens[i].kind != EOF; i++ {
		if p.tokens[i].kind == ELSE {
			stmt.elseList = p.fork(i + 1).parseChain()
			break
		}
	}

	for p.cur().kind != EOF {
		p.advance()
	}
}

//
// 'FOR' identifier '=' expression 'TO' expression ('STEP' expression)?
//

func (p *parser) parseFor(stmt *stmtNode) {

	stmt.name = p.consume(IDENTIFIER).value.(string)

	p.consume(EQUALS)
	stmt.operands = append(stmt.operands, p.parseExpression())

	p.consume(TO)
	stmt.operands = append(stmt.operands, p.parseExpression())

	if p.cur().kind == STEP {
		p.advance()
		stmt.operands = append(stmt.operands, p.parseExpression())
	}
}

//
// 'INPUT' (string ';'?)? identifier
//

func (p *parser) parseInput(stmt *stmtNode) {

	stmt.prompt = inputPrompt

	if p.cur().kind == STRING {
		stmt.prompt = p.cur().value.(string)
		p.advance()

		if p.cur().kind == SEMI {
			p.advance()
		}
	}

	stmt.name = p.consume(IDENTIFIER).value.(string)
}

func (p *parser) parseLineNumber() int {

	n := p.consume(INTEGER).value.(int64)

	runtimeCheck(n > 0 && n <= maxLineNumber, EILLEGALLINENUMBER)

	return int(n)
}

//
// expression: term ( ('+'|'-') term )* ( comparison term )?
//
// A comparison ends the expression: the comparison of everything so
// far with the next term is the result, and whatever follows belongs
// to the enclosing statement (which ignores it).  So 'a < b < c' is
// just 'a < b'
//

func (p *parser) parseExpression() tokenList {

	tl := p.parseTerm()

	for {
		op := p.cur().kind

		switch {
		case op == PLUS || op == MINUS:
			p.advance()
			tl = append(tl, p.parseTerm()...)
			tl = append(tl, op)

		case isComparison(op):
			p.advance()
			tl = append(tl, p.parseTerm()...)
			return append(tl, op)

		default:
			return tl
		}
	}
}

//
// term: factor ( ('*'|'/') factor )*
//

func (p *parser) parseTerm() tokenList {

	tl := p.parseFactor()

	for p.cur().kind == MUL || p.cur().kind == DIV {
		op := p.cur().kind
		p.advance()
		tl = append(tl, p.parseFactor()...)
		tl = append(tl, op)
	}

	return tl
}

//
// factor: integer | string | identifier ('[' expression ']')?
//       | '(' expression ')' | 'RND' '(' integer ')' | '-' factor
//
// A plain variable reference is compiled as a reference to element 0
//

func (p *parser) parseFactor() tokenList {

	var tl tokenList

	t := p.cur()

	switch t.kind {
	default:
		syntaxError(ESYNTAX)

	case INTEGER:
		p.advance()
		tl = append(tl, t.value.(int64))

	case STRING:
		p.advance()
		tl = append(tl, t.value.(string))

	case IDENTIFIER:
		p.advance()
		tl = append(tl, varToken(t.value.(string)))

		if p.cur().kind == LBRACK {
			p.advance()
			tl = append(tl, p.parseExpression()...)
			p.consume(RBRACK)
		} else {
			tl = append(tl, int64(0))
		}

		tl = append(tl, SUBSCR)

	case LPAREN:
		p.advance()
		tl = append(tl, p.parseExpression()...)
		p.consume(RPAREN)

	case RND:
		p.advance()
		p.consume(LPAREN)
		tl = append(tl, p.consume(INTEGER).value.(int64), RND)
		p.consume(RPAREN)

	case MINUS:
		p.advance()
		tl = append(tl, p.parseFactor()...)
		tl = append(tl, UNEG)
	}

	return tl
}
