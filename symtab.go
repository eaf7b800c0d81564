package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

//
// A variable is either a scalar (only INPUT makes those) or a fixed
// length sequence.  Subscripting a scalar works as if it were a one
// element sequence.  Sequences are only ever sized by DIM, or created
// with one element by the first assignment to a new name; nothing grows
// them afterwards
//

//
// Initialize the symbol and loop tables to pristine state
//

func (m *machine) initSymbolTable() {

	m.symtab = make(map[string]*symtabNode)
	m.initLoopTable()
}

func (m *machine) initLoopTable() {

	m.loops = make(map[string]*loopNode)
}

func (m *machine) lookupSymbol(name string) *symtabNode {

	return m.symtab[name]
}

//
// DIM always replaces whatever the name held before
//

func (m *machine) createSymbol(name string, size int) *symtabNode {

	sym := &symtabNode{name: name, values: make([]any, size)}

	for i := range sym.values {
		sym.values[i] = int64(0)
	}

	m.symtab[name] = sym

	return sym
}

func (m *machine) fetchVar(name string, sub any) any {

	sym := m.lookupSymbol(name)
	runtimeCheck(sym != nil, ENOTDECLARED)

	return sym.values[checkSubscript(sub, len(sym.values))]
}

//
// Assignment to a name we have never seen creates it with a single
// element, so only subscript 0 can succeed in that case
//

func (m *machine) storeVar(name string, sub any, val any) {

	sym := m.lookupSymbol(name)
	if sym == nil {
		sym = &symtabNode{name: name, values: []any{int64(0)}}
	}

	sym.values[checkSubscript(sub, len(sym.values))] = val

	m.symtab[name] = sym
}

//
// FOR (re)starts the loop variable as a fresh one element sequence
//

func (m *machine) resetVar(name string, val any) {

	m.symtab[name] = &symtabNode{name: name, values: []any{val}}
}

func (m *machine) storeScalar(name string, val any) {

	m.symtab[name] = &symtabNode{name: name, scalar: true, values: []any{val}}
}

//
// Validate a subscript against the length of a sequence, returning it
// as an int.  Integral floats (say, the result of 4/2) are accepted
//

func checkSubscript(sub any, length int) int {

	var idx int64

	switch sub := sub.(type) {
	default:
		syntaxError(ESUBSCRIPTERROR)

	case int64:
		idx = sub

	case float64:
		runtimeCheck(sub == math.Trunc(sub), ESUBSCRIPTERROR)
		runtimeCheck(sub >= 0 && sub < float64(length), ESUBSCRIPTERROR)
		idx = int64(sub)
	}

	runtimeCheck(idx >= 0 && idx < int64(length), ESUBSCRIPTERROR)

	return int(idx)
}

func (m *machine) lookupLoop(name string) *loopNode {

	return m.loops[name]
}

func (m *machine) addLoop(name string, loop *loopNode) {

	m.loops[name] = loop
}

func (m *machine) removeLoop(name string) {

	delete(m.loops, name)
}

//
// Print both tables, one line each, with names in sorted order so the
// output is reproducible
//

func (m *machine) dumpTables(w io.Writer) {

	var items []string

	for _, name := range sortedKeys(m.symtab) {
		items = append(items, fmt.Sprintf("%s: %s", name,
			formatSymbol(m.symtab[name])))
	}

	fmt.Fprintf(w, "Symbol Table {%s}\n", strings.Join(items, ", "))

	items = nil

	for _, name := range sortedKeys(m.loops) {
		loop := m.loops[name]
		items = append(items, fmt.Sprintf(
			"%s: {start: %s, end: %s, step: %s, line: %d}", name,
			formatRepr(loop.start), formatRepr(loop.end),
			formatRepr(loop.step), loop.line))
	}

	fmt.Fprintf(w, "Loop Table {%s}\n", strings.Join(items, ", "))
}

func formatSymbol(sym *symtabNode) string {

	if sym.scalar {
		return formatRepr(sym.values[0])
	}

	items := make([]string, len(sym.values))
	for i, v := range sym.values {
		items[i] = formatRepr(v)
	}

	return "[" + strings.Join(items, ", ") + "]"
}

func sortedKeys[V any](m map[string]V) []string {

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
