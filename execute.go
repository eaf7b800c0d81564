package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

//
// Thrown (via panic) when an interrupt stops a running program.  It is
// not an error: the innermost run catches it, prints the break notice
// and returns normally
//

type breakException struct{}

func newMachine() *machine {

	m := &machine{}

	m.initProgram()
	m.initSymbolTable()

	return m
}

func newInterp(out io.Writer, in lineReader) *interp {

	return &interp{
		m:   newMachine(),
		out: out,
		in:  in,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		dir: ".",
	}
}

//
// Tokenize and execute one line of source text.  This is the single
// entry point the shell uses for anything that is not a program line.
// Statements that ran before a failing one keep their effects
//

func (ip *interp) execute(text string) error {

	return call(func() {
		ip.catchBreak(func() {
			ip.executeLine(text)
		})
	})
}

//
// Add, replace or (with empty text) delete a stored program line
//

func (ip *interp) storeLine(lineNo int, text string) error {

	return call(func() {
		runtimeCheck(lineNo > 0 && lineNo <= maxLineNumber, EILLEGALLINENUMBER)

		ip.m.storeLine(lineNo, text)
	})
}

func (ip *interp) interrupt() {

	ip.interrupted.Store(true)
}

func (ip *interp) catchBreak(f func()) {

	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(*breakException); !ok {
				panic(e)
			}

			fmt.Fprintln(ip.out, breakNotice)
		}
	}()

	f()
}

func (ip *interp) executeLine(text string) {

	chain := parseLine(tokenize(text), ip.debug)

	ip.executeChain(chain)

	if ip.debug {
		ip.m.dumpTables(ip.out)
	}
}

func (ip *interp) executeChain(chain []*stmtNode) {

	for _, stmt := range chain {
		ip.executeStmt(stmt)
	}
}

func (ip *interp) executeStmt(stmt *stmtNode) {

	ip.numStatements++

	switch stmt.token {
	default:
		unexpectedTokenError(stmt.token)

	case ILLEGAL:
		panic(stmt.err)

	case LET:
		ip.executeLet(stmt)

	case PRINT:
		ip.executePrint(stmt)

	case IF:
		ip.executeIf(stmt)

	case FOR:
		ip.executeFor(stmt)

	case NEXT:
		ip.executeNext(stmt)

	case INPUT:
		ip.executeInput(stmt)

	case GOTO:
		ip.executeGoto(stmt)

	case LIST:
		ip.executeList()

	case RUN:
		if ip.m.cursor.running {
			ip.m.cursor.restart(ip.m.programSteps(), 0)
		} else {
			ip.executeRun(0)
		}

	case NEW:
		ip.executeNew()

	case CLEAR:
		ip.m.initSymbolTable()

	case DIM:
		ip.executeDim(stmt)

	case SAVE:
		ip.saveProgram(stmt.filename)

	case LOAD:
		ip.loadProgram(stmt.filename)

	case REM:
		// nothing to do

	case DEBUG:
		ip.m.dumpTables(ip.out)
	}
}

func (ip *interp) executeLet(stmt *stmtNode) {

	var sub any = int64(0)

	if stmt.subscr != nil {
		sub = ip.evaluateRpnExpr(stmt.subscr)
	}

	ip.m.storeVar(stmt.name, sub, ip.evaluateRpnExpr(stmt.operands[0]))
}

func (ip *interp) executePrint(stmt *stmtNode) {

	var printBuf strings.Builder

	for _, tl := range stmt.operands {
		printBuf.WriteString(formatValue(ip.evaluateRpnExpr(tl)))
	}

	fmt.Fprintln(ip.out, printBuf.String())
}

//
// Only a genuine boolean true takes the THEN branch.  A number, even a
// non-zero one, counts as false
//

func (ip *interp) executeIf(stmt *stmtNode) {

	if b, ok := ip.evaluateRpnExpr(stmt.operands[0]).(bool); ok && b {
		ip.executeChain(stmt.thenList)
	} else {
		ip.executeChain(stmt.elseList)
	}
}

//
// A FOR on a variable that already has an active loop is a no-op.
// NEXT sends the cursor back to the FOR line, and this is what keeps
// that from restarting the loop.  There is one loop per variable name,
// never a stack of them
//

func (ip *interp) executeFor(stmt *stmtNode) {

	var step any = int64(1)

	start := ip.evaluateNumericExpr(stmt.operands[0])
	end := ip.evaluateNumericExpr(stmt.operands[1])

	if len(stmt.operands) == 3 {
		step = ip.evaluateNumericExpr(stmt.operands[2])
	}

	if ip.m.lookupLoop(stmt.name) != nil {
		return
	}

	ip.m.resetVar(stmt.name, start)
	ip.m.addLoop(stmt.name, &loopNode{start: start, end: end, step: step,
		line: ip.m.cursor.pos})
}

//
// Step the loop variable, then either go round again or retire the
// loop.  The variable is left holding the first value past the end,
// so after 'FOR I = 1 TO 3' ... 'NEXT I' I is 4
//

func (ip *interp) executeNext(stmt *stmtNode) {

	loop := ip.m.lookupLoop(stmt.name)
	runtimeCheck(loop != nil, ENEXTWITHOUTFOR)

	val := arithOp(PLUS, ip.m.fetchVar(stmt.name, int64(0)), loop.step)

	ip.m.resetVar(stmt.name, val)

	if checkLoopTermination(loop, val) {
		ip.m.removeLoop(stmt.name)
	} else {
		ip.m.cursor.jump(loop.line)
	}
}

func checkLoopTermination(loop *loopNode, val any) bool {

	if compareOrder(loop.step, int64(0)) < 0 {
		return compareOrder(val, loop.end) < 0
	}

	return compareOrder(val, loop.end) > 0
}

func (ip *interp) executeInput(stmt *stmtNode) {

	line, err := ip.in.readLine(stmt.prompt)
	if err != nil {
		if errors.Is(err, errInterrupted) {
			panic(&breakException{})
		}

		syntaxErrorWrap(EENDOFFILE, err)
	}

	ip.m.storeScalar(stmt.name, parseInputValue(line))
}

//
// During a run, GOTO repositions the cursor within the run's snapshot
// of line numbers.  Typed as an immediate statement it starts a run at
// the target line.  After NEW or LOAD inside a run the snapshot is gone,
// and GOTO continues the same run in a fresh one
//

func (ip *interp) executeGoto(stmt *stmtNode) {

	c := &ip.m.cursor

	if !c.running {
		runtimeCheck(ip.m.programLookup(stmt.lineNo) != nil, ENOSUCHLINE)
		ip.executeRun(stmt.lineNo)
		return
	}

	if c.lines == nil {
		c.lines = ip.m.programSteps()
	}

	idx := sort.SearchInts(c.lines, stmt.lineNo)
	runtimeCheck(idx < len(c.lines) && c.lines[idx] == stmt.lineNo, ENOSUCHLINE)

	c.jump(idx)
}

func (ip *interp) executeList() {

	for line := ip.m.programFirst(); line != nil; line = programNext(line) {
		fmt.Fprintf(ip.out, "%d %s\n", line.lineNo, line.text)
	}
}

func (ip *interp) executeNew() {

	ip.m.initProgram()
	ip.m.initSymbolTable()
	ip.m.cursor.reset()
}

func (ip *interp) executeDim(stmt *stmtNode) {

	size := ip.evaluateNumericExpr(stmt.operands[0])

	n := checkSubscript(size, maxDimSize+1)

	ip.m.createSymbol(stmt.name, n)
}

func (c *cursor) jump(pos int) {

	c.target = pos
	c.jumped = true
}

//
// Continue the current run from position pos of a new snapshot.  RUN
// inside a program comes through here, so it loops in the runner
// instead of nesting another one
//

func (c *cursor) restart(lines []int, pos int) {

	c.lines = lines
	c.jump(pos)
}

//
// Drop the snapshot after NEW or LOAD.  A run in progress stays marked
// as running, and ends after the current line unless a GOTO on that
// line picks up the new program
//

func (c *cursor) reset() {

	*c = cursor{running: c.running}
}

//
// Run the stored program, starting at line startLine (0 means the
// first line).  Lines are executed in ascending order from a snapshot
// taken now; GOTO and NEXT move the cursor by position within that
// snapshot.  An interrupt is noticed between lines only
//

func (ip *interp) executeRun(startLine int) {

	m := ip.m

	m.cursor = cursor{lines: m.programSteps(), running: true}

	if startLine != 0 {
		m.cursor.pos = sort.SearchInts(m.cursor.lines, startLine)
	}

	ip.interrupted.Store(false)

	ip.numStatements = 0

	clock := initClock()

	if ip.debug {
		fmt.Fprintf(ip.out, "Program steps %v\n", m.cursor.lines)
	}

	defer func() {
		m.cursor.running = false
	}()

	ip.catchBreak(func() {
		for m.cursor.pos < len(m.cursor.lines) {
			if ip.interrupted.Swap(false) {
				panic(&breakException{})
			}

			ip.executeRunLine(m.cursor.lines[m.cursor.pos])

			if m.cursor.jumped {
				m.cursor.pos = m.cursor.target
				m.cursor.jumped = false
			} else {
				m.cursor.pos++
			}
		}
	})

	if ip.printStats {
		ip.printStatistics(clock)
	}
}

//
// Execute one stored line, tagging any error with its line number
//

func (ip *interp) executeRunLine(lineNo int) {

	defer func() {
		if e := recover(); e != nil {
			if be, ok := e.(*basicError); ok && be.lineNo == 0 {
				be.lineNo = lineNo
			}

			panic(e)
		}
	}()

	line := ip.m.programLookup(lineNo)
	runtimeCheck(line != nil, ENOSUCHLINE)

	if ip.debug {
		fmt.Fprintf(ip.out, "Current line := %d Code to execute := %s\n",
			ip.m.cursor.pos, line.text)
	}

	ip.executeLine(line.text)
}

func (ip *interp) evaluateNumericExpr(tl tokenList) any {

	val := ip.evaluateRpnExpr(tl)

	runtimeCheck(isNumber(val), ETYPEMISMATCH)

	return val
}

//
// Walk the token list, pushing, popping and operating as required.
// Literals are pushed as is; variable references are only ever
// consumed by the SUBSCR that follows their subscript expression
//

func (ip *interp) evaluateRpnExpr(tl tokenList) any {

	var stack rpnStack

	for _, item := range tl {
		switch item := item.(type) {
		default:
			unexpectedTypeError(item)

		case int64, float64, string, varToken:
			rpnPush(&stack, item)

		case tokenKind:
			switch item {
			default:
				unexpectedTokenError(item)

			case PLUS, MINUS, MUL, DIV:
				right := rpnPopValue(&stack)
				left := rpnPopValue(&stack)
				rpnPush(&stack, arithOp(item, left, right))

			case EQUALS, NE, LT, LTE, GT, GTE:
				right := rpnPopValue(&stack)
				left := rpnPopValue(&stack)
				rpnPush(&stack, compareOp(item, left, right))

			case UNEG:
				rpnPush(&stack, arithOp(MINUS, int64(0), rpnPopValue(&stack)))

			case SUBSCR:
				sub := rpnPopValue(&stack)
				name := rpnPopSymbol(&stack)
				rpnPush(&stack, ip.m.fetchVar(name, sub))

			case RND:
				n := rpnPopValue(&stack).(int64)
				runtimeCheck(n >= 1, ERNDARGUMENT)
				rpnPush(&stack, ip.rnd.Int63n(n)+1)
			}
		}
	}

	ret := rpnPopValue(&stack)

	basicAssert(len(stack.entries) == 0, "RPN stack not empty")

	return ret
}

func rpnPush(stackp *rpnStack, value any) {

	stackp.entries = append(stackp.entries, value)
}

func rpnPop(stackp *rpnStack) any {

	slen := len(stackp.entries)
	basicAssert(slen > 0, "RPN stack underflow")

	value := stackp.entries[slen-1]

	stackp.entries = stackp.entries[:slen-1]

	return value
}

func rpnPopValue(stackp *rpnStack) any {

	item := rpnPop(stackp)

	if _, ok := item.(varToken); ok {
		unexpectedTypeError(item)
	}

	return item
}

func rpnPopSymbol(stackp *rpnStack) string {

	item := rpnPop(stackp)

	name, ok := item.(varToken)
	if !ok {
		unexpectedTypeError(item)
	}

	return string(name)
}

func isNumber(val any) bool {

	switch val.(type) {
	case int64, float64:
		return true
	}

	return false
}

//
// Two integers give an integer, except for '/', which always divides
// as floating point.  Any float makes the result a float.  The only
// thing '+' does with strings is join two of them
//

func arithOp(op tokenKind, left, right any) any {

	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		runtimeCheck(ok && op == PLUS, ETYPEMISMATCH)

		return ls + rs
	}

	runtimeCheck(isNumber(left) && isNumber(right), ETYPEMISMATCH)

	li, lInt := left.(int64)
	ri, rInt := right.(int64)

	if lInt && rInt && op != DIV {
		switch op {
		case PLUS:
			return addInt(li, ri)

		case MINUS:
			return subInt(li, ri)

		case MUL:
			return mulInt(li, ri)
		}
	}

	lf, rf := toFloat(left), toFloat(right)

	switch op {
	default:
		unexpectedTokenError(op)

	case PLUS:
		return lf + rf

	case MINUS:
		return lf - rf

	case MUL:
		return lf * rf

	case DIV:
		runtimeCheck(rf != 0, EDIVISIONBYZERO)
		return lf / rf
	}

	panic(nil) // avoid compiler complaint
}

//
// Integer arithmetic that refuses to wrap around
//

func addInt(a, b int64) int64 {

	r := a + b
	runtimeCheck((b >= 0) == (r >= a), EINTEGEROVERFLOW)

	return r
}

func subInt(a, b int64) int64 {

	r := a - b
	runtimeCheck((b >= 0) == (r <= a), EINTEGEROVERFLOW)

	return r
}

func mulInt(a, b int64) int64 {

	if a == 0 || b == 0 {
		return 0
	}

	r := a * b
	runtimeCheck(r/b == a && !(a == -1 && b == math.MinInt64) &&
		!(b == -1 && a == math.MinInt64), EINTEGEROVERFLOW)

	return r
}

func toFloat(val any) float64 {

	switch val := val.(type) {
	default:
		syntaxError(ETYPEMISMATCH)

	case int64:
		return float64(val)

	case float64:
		return val
	}

	panic(nil) // avoid compiler complaint
}

func compareOp(op tokenKind, left, right any) bool {

	switch op {
	case EQUALS:
		return valuesEqual(left, right)

	case NE:
		return !valuesEqual(left, right)
	}

	c := compareOrder(left, right)

	switch op {
	default:
		unexpectedTokenError(op)

	case LT:
		return c < 0

	case LTE:
		return c <= 0

	case GT:
		return c > 0

	case GTE:
		return c >= 0
	}

	panic(nil) // avoid compiler complaint
}

//
// Values of different types are never equal, except that an integer
// and a float compare numerically
//

func valuesEqual(left, right any) bool {

	if isNumber(left) && isNumber(right) {
		return compareOrder(left, right) == 0
	}

	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		return ok && l == r

	case bool:
		r, ok := right.(bool)
		return ok && l == r
	}

	return false
}

//
// Ordering is only defined between two numbers or two strings
//

func compareOrder(left, right any) int {

	if li, ok := left.(int64); ok {
		if ri, ok := right.(int64); ok {
			return cmpOrdered(li, ri)
		}
	}

	if isNumber(left) && isNumber(right) {
		return cmpOrdered(toFloat(left), toFloat(right))
	}

	ls, lok := left.(string)
	rs, rok := right.(string)
	runtimeCheck(lok && rok, ETYPEMISMATCH)

	return strings.Compare(ls, rs)
}

func cmpOrdered[T int64 | float64](a, b T) int {

	if a < b {
		return -1
	} else if a > b {
		return 1
	} else {
		return 0
	}
}
