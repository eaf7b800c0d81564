package main

import (
	"io"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/danswartzendruber/avl"
)

//
// Constants
//

const VERSION = "0.4.0"

const basFileSuffix = ".bas"

const myPrompt = "> "

const inputPrompt = "?"

const breakNotice = "** BREAK **"

const maxLineLen = 255

const maxLineNumber = math.MaxInt32

const maxDimSize = 1024 * 1024

//
// Type definitions
//

type token struct {
	kind  tokenKind
	value any
}

//
// An expression flattened to postfix order.  Items are int64, float64
// and string literals, varToken references, and tokenKind operators
//

type tokenList []any

type varToken string

type rpnStack struct {
	entries []any
}

//
// One parsed statement.  Which fields are meaningful depends on the
// token:
//
//	LET    name, subscr (may be nil), operands[0] the value
//	PRINT  operands, one per ';' separated item
//	IF     operands[0] the condition, thenList/elseList the branches
//	FOR    name, operands start, end and (optionally) step
//	NEXT   name
//	INPUT  prompt, name
//	GOTO   lineNo
//	DIM    name, operands[0] the size
//	SAVE   filename
//	LOAD   filename
//
// A statement that failed to parse carries the error in err and is
// always the last node of its chain.  The error is raised when (if)
// execution reaches it
//

type stmtNode struct {
	token    tokenKind
	name     string
	prompt   string
	filename string
	lineNo   int
	subscr   tokenList
	operands []tokenList
	thenList []*stmtNode
	elseList []*stmtNode
	err      error
}

type symtabNode struct {
	name   string
	scalar bool
	values []any
}

type loopNode struct {
	start any
	end   any
	step  any
	line  int
}

//
// A stored program line.  The avl field must be embedded in the node
// so the tree can link it
//

type lineNode struct {
	avl    avl.AvlNode
	lineNo int
	text   string
}

//
// Position within a snapshot of the stored program's line numbers.
// jumped is set by GOTO and NEXT; target is then the position of the
// next line to execute
//

type cursor struct {
	lines   []int
	pos     int
	target  int
	jumped  bool
	running bool
}

//
// The execution-state store: everything a program run can mutate
//

type machine struct {
	program *avl.AvlNode
	symtab  map[string]*symtabNode
	loops   map[string]*loopNode
	cursor  cursor
}

//
// Source of lines for INPUT.  The prompt is written by the reader
//

type lineReader interface {
	readLine(prompt string) (string, error)
}

//
// One interpreter instance.  Nothing here is global, so tests can run
// as many of these as they like
//

type interp struct {
	m             *machine
	out           io.Writer
	in            lineReader
	rnd           *rand.Rand
	dir           string
	debug         bool
	printStats    bool
	numStatements int64
	interrupted   atomic.Bool
}
