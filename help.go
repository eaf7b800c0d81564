package main

import (
	"fmt"
	"io"
)

type helpEntry struct {
	name string
	text string
}

//
// For statements the name is the usage line
//

var helpEntries = []helpEntry{
	{"LET name[index] = expr", "Assign a value (index optional)"},
	{"PRINT expr; expr ...", "Print values on one line"},
	{"IF cond THEN stmts", "Run stmts when cond is true, else the ELSE part"},
	{"FOR v = a TO b STEP c", "Start a loop (STEP optional)"},
	{"NEXT v", "End of loop body"},
	{"INPUT \"prompt\"; v", "Read a value from the user"},
	{"GOTO n", "Continue at line n"},
	{"DIM v[n]", "Create an array of n elements"},
	{"LIST", "List the stored program"},
	{"RUN", "Execute the stored program"},
	{"NEW", "Erase program and variables"},
	{"CLEAR", "Erase variables"},
	{"SAVE \"name\"", "Save the program to name" + basFileSuffix},
	{"LOAD \"name\"", "Load the program from name" + basFileSuffix},
	{"REM text", "Remark"},
	{"DEBUG", "Print the symbol and loop tables"},
}

var shellHelpEntries = []helpEntry{
	{"DEBUG ON/OFF", "Toggle tracing of statements and tables"},
	{"STATS", "Toggle printing execution statistics after RUN"},
	{"EXIT", "Exit from BASIC (also BYE)"},
}

func printHelp(out io.Writer) {

	printHelpEntries(out, helpEntries)

	fmt.Fprintln(out)

	printHelpEntries(out, shellHelpEntries)
}

func printHelpEntries(out io.Writer, entries []helpEntry) {

	for _, e := range entries {
		fmt.Fprintf(out, "%-25s %s\n", e.name, e.text)
	}
}
