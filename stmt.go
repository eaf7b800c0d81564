package main

import (
	"fmt"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to hide
// the AVL interface from the rest of the interpreter.  The tree keeps
// the stored program in ascending line number order no matter what
// order the lines were typed in
//

func cmpLineKey(key any, node any) int {

	return cmpLineNumbers(key.(int), node.(*lineNode).lineNo)
}

func cmpLineNode(node1, node2 any) int {

	return cmpLineNumbers(node1.(*lineNode).lineNo, node2.(*lineNode).lineNo)
}

func cmpLineNumbers(item1, item2 int) int {

	if item1 < item2 {
		return -1
	} else if item1 > item2 {
		return 1
	} else {
		return 0
	}
}

func (m *machine) initProgram() {

	// a nil root is an empty tree
	m.program = nil
}

func (m *machine) programFirst() *lineNode {

	p := avl.AvlTreeFirstInOrder(m.program)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func programNext(line *lineNode) *lineNode {

	p := avl.AvlTreeNextInOrder(&line.avl)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func (m *machine) programLookup(lineNo int) *lineNode {

	p := avl.AvlTreeLookup(m.program, lineNo, cmpLineKey)
	if p != nil {
		return p.(*lineNode)
	} else {
		return nil
	}
}

func (m *machine) programEmpty() bool {

	return m.programFirst() == nil
}

//
// Replace (or add) a line.  An empty text deletes the line instead
//

func (m *machine) storeLine(lineNo int, text string) {

	if old := m.programLookup(lineNo); old != nil {
		avl.AvlTreeRemove(&m.program, &old.avl)
	}

	if text == "" {
		return
	}

	line := &lineNode{lineNo: lineNo, text: text}

	p := avl.AvlTreeInsert(&m.program, &line.avl, line, cmpLineNode)
	basicAssert(p == nil, fmt.Sprintf("Line %d already in tree???", lineNo))
}

//
// Ascending line numbers, for a RUN's cursor
//

func (m *machine) programSteps() []int {

	var steps []int

	for line := m.programFirst(); line != nil; line = programNext(line) {
		steps = append(steps, line.lineNo)
	}

	return steps
}

//
// The stored program as a plain map, for SAVE
//

func (m *machine) programMap() map[int]string {

	prog := make(map[int]string)

	for line := m.programFirst(); line != nil; line = programNext(line) {
		prog[line.lineNo] = line.text
	}

	return prog
}

func (m *machine) replaceProgram(prog map[int]string) {

	m.initProgram()

	for lineNo, text := range prog {
		m.storeLine(lineNo, text)
	}
}
