package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
)

//
// The interactive shell.  It owns the command prompt and decides, for
// each line typed, whether it is a shell command, a numbered program
// line to store, or something for the interpreter to execute
//

type shell struct {
	ip      *interp
	cmd     lineReader
	out     io.Writer
	exiting bool
}

func main() {

	var cmd, in lineReader
	var liners []*linerReader

	if len(os.Args) > 2 {
		crash("Usage: basic [program]")
	}

	//
	// With a terminal we get line editing: one liner with history for
	// commands, and a second one without for INPUT.  We need to close
	// them in reverse order, to make sure we end up back in normal
	// (cooked) terminal mode
	//

	if term.IsTerminal(int(os.Stdin.Fd())) {
		cmdLiner := setupLiner(true)
		inputLiner := setupLiner(false)

		liners = append(liners, cmdLiner, inputLiner)
		cmd, in = cmdLiner, inputLiner
	} else {
		sr := newScannerReader(os.Stdin, os.Stdout)
		cmd, in = sr, sr
	}

	defer func() {
		cleanupLiners(liners...)
	}()

	sh := &shell{ip: newInterp(os.Stdout, in), cmd: cmd, out: os.Stdout}

	printVersionInfo(sh.out)

	if len(os.Args) == 2 {
		name := strings.TrimSuffix(os.Args[1], basFileSuffix)

		if _, ok := validateProgramFilename(name); !ok {
			fmt.Fprintln(sh.out, "Invalid filename!")
		} else {
			sh.reportError(call(func() {
				sh.ip.loadProgram(name)
			}))
		}
	}

	//
	// Run the signal handling code in a goroutine
	//

	go sigHdlr(sh.ip, liners)

	sh.repl()
}

func printVersionInfo(out io.Writer) {

	fmt.Fprintf(out, "Tiny BASIC version %s\n", VERSION)
	fmt.Fprintln(out, `Type "exit" to quit, "help" for a list of statements.`)
}

func sigHdlr(ip *interp, liners []*linerReader) {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGQUIT)
	signal.Notify(ch, syscall.SIGINT)

	for {
		sig := <-ch

		switch sig {
		default:
			crash(fmt.Sprintf("Unexpected signal %d", sig), liners...)

		case syscall.SIGQUIT:
			writeGoroutineStacks(liners) // does not return

		case syscall.SIGINT:
			ip.interrupt()
		}
	}
}

func writeGoroutineStacks(liners []*linerReader) {

	name := "goroutines-stacks"
	mode := (os.O_CREATE | os.O_WRONLY | os.O_TRUNC)

	dumpFile, err := os.OpenFile(name, mode, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open %s (%v)\n", name,
			mapOSError(err))
		return
	}

	_ = pprof.Lookup("goroutine").WriteTo(dumpFile, 2)

	dumpFile.Close()

	crash(fmt.Sprintf("Dumping goroutine stacks to %v and exiting", name),
		liners...)
}

//
// Loop forever, or until we quit.  End of input on the command reader
// is treated like EXIT
//

func (sh *shell) repl() {

	for !sh.exiting {
		text, err := sh.cmd.readLine(myPrompt)
		if err != nil {
			if err == errInterrupted {
				continue
			}

			if err != io.EOF {
				fmt.Fprintln(sh.out, err)
			}

			return
		}

		sh.processCommand(text)
	}
}

func (sh *shell) processCommand(text string) {

	if len(text) > maxLineLen {
		fmt.Fprintln(sh.out, ELINETOOLONG)
		return
	}

	text = trimWhitespace(text)

	switch strings.ToUpper(text) {
	case "":
		return

	case "EXIT", "BYE":
		sh.exiting = true
		return

	case "DEBUG ON":
		fmt.Fprintln(sh.out, "Debug flag turned on.")
		sh.ip.debug = true
		return

	case "DEBUG OFF":
		fmt.Fprintln(sh.out, "Debug flag turned off.")
		sh.ip.debug = false
		return

	case "STATS":
		sh.ip.printStats = !sh.ip.printStats
		fmt.Fprintf(sh.out, "Statistics %s\n", switchSetting(sh.ip.printStats))
		return

	case "HELP":
		printHelp(sh.out)
		return
	}

	if lineNo, code, ok := splitProgramLine(text); ok {
		sh.reportError(sh.ip.storeLine(lineNo, code))
		return
	}

	sh.reportError(sh.ip.execute(text))
}

func (sh *shell) reportError(err error) {

	if err != nil {
		fmt.Fprintln(sh.out, err)
	}
}

//
// A line beginning with digits is a program line: the digits are the
// line number and the rest (possibly nothing, which deletes the line)
// is the code.  A number too big to represent becomes -1, which
// storeLine rejects
//

func splitProgramLine(text string) (int, string, bool) {

	i := 0
	for i < len(text) && isDecimalDigit(rune(text[i])) {
		i++
	}

	if i == 0 {
		return 0, "", false
	}

	lineNo, err := strconv.Atoi(text[:i])
	if err != nil {
		lineNo = -1
	}

	return lineNo, strings.TrimSpace(text[i:]), true
}
