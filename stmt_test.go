package main

import (
	"reflect"
	"testing"
)

func TestProgramOrder(t *testing.T) {

	m := newMachine()

	if !m.programEmpty() {
		t.Fatal("new program not empty")
	}

	for _, n := range []int{50, 10, 40, 20, 30} {
		m.storeLine(n, "REM")
	}

	if got := m.programSteps(); !reflect.DeepEqual(got, []int{10, 20, 30, 40, 50}) {
		t.Errorf("steps %v", got)
	}
}

func TestEmptyProgramStore(t *testing.T) {

	m := newMachine()

	if m.program != nil || m.programFirst() != nil || m.programLookup(10) != nil {
		t.Fatal("new program store is not an empty tree")
	}

	if got := m.programSteps(); got != nil {
		t.Errorf("steps %v", got)
	}

	m.storeLine(10, "REM")
	m.storeLine(10, "")

	if !m.programEmpty() {
		t.Error("deleting the only line should leave an empty tree")
	}

	m.storeLine(20, "REM")
	m.initProgram()

	if !m.programEmpty() || len(m.programMap()) != 0 {
		t.Error("initProgram should empty the tree")
	}
}

func TestProgramReplaceAndDelete(t *testing.T) {

	m := newMachine()

	m.storeLine(10, "PRINT 1")
	m.storeLine(10, "PRINT 2")

	if line := m.programLookup(10); line == nil || line.text != "PRINT 2" {
		t.Errorf("line 10 = %+v", line)
	}

	m.storeLine(20, "PRINT 3")
	m.storeLine(10, "")

	if m.programLookup(10) != nil {
		t.Error("line 10 not deleted")
	}

	m.storeLine(99, "")

	if got := m.programMap(); !reflect.DeepEqual(got, map[int]string{20: "PRINT 3"}) {
		t.Errorf("program %v", got)
	}
}

func TestReplaceProgram(t *testing.T) {

	m := newMachine()

	m.storeLine(5, "REM old")

	prog := map[int]string{10: "PRINT 1", 20: " PRINT  2 ", 15: "REM"}

	m.replaceProgram(prog)

	if got := m.programMap(); !reflect.DeepEqual(got, prog) {
		t.Errorf("got %v, want %v", got, prog)
	}

	if got := m.programSteps(); !reflect.DeepEqual(got, []int{10, 15, 20}) {
		t.Errorf("steps %v", got)
	}
}

func TestStoreLineRejectsBadNumbers(t *testing.T) {

	ip, _, _ := newTestInterp(t)

	for _, n := range []int{0, -1} {
		err := ip.storeLine(n, "PRINT 1")
		if err == nil || err.Error() != EILLEGALLINENUMBER {
			t.Errorf("storeLine(%d): %v", n, err)
		}
	}
}
