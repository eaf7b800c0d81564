package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
)

//
// INPUT and the command prompt both read through a lineReader.  On a
// terminal that is a liner instance (line editing, plus history for the
// command prompt only).  Otherwise lines come from a plain scanner, so
// the interpreter can be driven from a script or a pipe
//

type linerReader struct {
	state   *liner.State
	history bool
}

func setupLiner(history bool) *linerReader {

	l := liner.NewLiner()

	l.SetCtrlCAborts(true)

	return &linerReader{state: l, history: history}
}

//
// Restore terminal state.  Close the readers in the reverse order they
// were created, so the terminal ends up back in cooked mode
//

func cleanupLiners(readers ...*linerReader) {

	for i := len(readers) - 1; i >= 0; i-- {
		if readers[i] != nil && readers[i].state != nil {
			readers[i].state.Close()
			readers[i].state = nil
		}
	}
}

func (lr *linerReader) readLine(prompt string) (string, error) {

	s, err := lr.state.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errInterrupted
		}

		return "", err
	}

	if lr.history && strings.TrimSpace(s) != "" {
		lr.state.AppendHistory(s)
	}

	return s, nil
}

type scannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newScannerReader(in io.Reader, out io.Writer) *scannerReader {

	return &scannerReader{scanner: bufio.NewScanner(in), out: out}
}

func (sr *scannerReader) readLine(prompt string) (string, error) {

	fmt.Fprint(sr.out, prompt)

	if !sr.scanner.Scan() {
		if err := sr.scanner.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return sr.scanner.Text(), nil
}

//
// Prettify the input string.  Eliminate leading and trailing
// whitespace, and replace runs of whitespace elsewhere with a single
// space character if not inside a quoted string
//

func trimWhitespace(s string) string {

	var sb strings.Builder
	var lastWasBlank bool
	var quoting bool

	//
	// Copy the source bytes of each rune rather than the decoded rune,
	// so bytes that are not valid UTF-8 pass through untouched
	//

	for i, ch := range s {
		_, size := utf8.DecodeRuneInString(s[i:])
		raw := s[i : i+size]

		if ch == '"' {
			quoting = !quoting
			sb.WriteString(raw)
			lastWasBlank = false
			continue
		}

		if quoting {
			sb.WriteString(raw)
			continue
		}

		if unicode.IsSpace(ch) {
			if !lastWasBlank {
				lastWasBlank = true
				sb.WriteByte(' ')
			}
		} else {
			lastWasBlank = false
			sb.WriteString(raw)
		}
	}

	return strings.TrimSpace(sb.String())
}

//
// The text PRINT produces for a value
//

func formatValue(x any) string {

	switch x := x.(type) {
	default:
		unexpectedTypeError(x)

	case int64:
		return strconv.FormatInt(x, 10)

	case float64:
		return formatFloat(x)

	case string:
		return x

	case bool:
		if x {
			return "True"
		}

		return "False"
	}

	panic(nil) // avoid compiler complaint
}

//
// Floats always show a decimal point, so 6/3 prints as 2.0 and can be
// told apart from the integer 2
//

func formatFloat(f float64) string {

	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

//
// The text the debug dump uses for a value: like formatValue, but with
// strings quoted
//

func formatRepr(x any) string {

	if s, ok := x.(string); ok {
		return "'" + s + "'"
	}

	return formatValue(x)
}

//
// What INPUT stores for a line the user typed.  A reply that starts
// with a digit and is entirely a base 10 integer becomes an integer;
// anything else (including an empty reply or '12abc') is kept as text
//

func parseInputValue(s string) any {

	t := strings.TrimSpace(s)

	if len(t) > 0 && isDecimalDigit(rune(t[0])) {
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}

	return s
}

func pluralize(str string, num int64) string {

	//
	// Oddity: 0 is considered plural
	//

	if num != 1 {
		return str + "s"
	}

	return str
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Run statistics.  CPU times come from /proc, so they are only
// available on Linux; elsewhere only the elapsed time is shown
//

type clock struct {
	elapsed time.Time
	utime   int64
	stime   int64
}

func initClock() clock {

	c := clock{elapsed: time.Now()}

	c.utime, c.stime, _ = getCPUInfo()

	return c
}

func (ip *interp) printStatistics(c clock) {

	fmt.Fprintln(ip.out)

	elapsed := formatCPUTime(int64(time.Since(c.elapsed).Seconds()))

	if utime, stime, err := getCPUInfo(); err == nil {
		fmt.Fprintf(ip.out, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
			elapsed, formatCPUTime(utime-c.utime),
			formatCPUTime(stime-c.stime))
	} else {
		fmt.Fprintf(ip.out, "CPU Usage: elapsed = %s\n", elapsed)
	}

	fmt.Fprintf(ip.out, "%d %s executed\n", ip.numStatements,
		pluralize("statement", ip.numStatements))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// User and system CPU seconds used so far by this process
//

func getCPUInfo() (int64, int64, error) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil {
		return 0, 0, err
	}

	if clktck <= 0 {
		return 0, 0, fmt.Errorf("bad clock tick %d", clktck)
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0, err
	}

	//
	// The command name (field 2) may contain blanks, so start counting
	// fields after its closing parenthesis
	//

	stat := string(contents)
	if idx := strings.LastIndexByte(stat, ')'); idx >= 0 {
		stat = stat[idx+1:]
	}

	fields := strings.Fields(stat)
	if len(fields) < 13 {
		return 0, 0, fmt.Errorf("short /proc/self/stat")
	}

	utime, err := strconv.ParseInt(fields[11], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	stime, err := strconv.ParseInt(fields[12], 10, 64)
	if err != nil {
		return 0, 0, err
	}

	return utime / clktck, stime / clktck, nil
}

//
// Strip the *os.PathError wrapping, leaving just the reason
//

func mapOSError(err error) error {

	var pErr *os.PathError

	if errors.As(err, &pErr) {
		return pErr.Err
	}

	return err
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output, and we
// would not see it then
//

func crash(msg string, readers ...*linerReader) {

	cleanupLiners(readers...)

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}
