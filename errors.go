package main

import (
	"errors"
	"fmt"
)

//
// Manifest constants for the error messages the interpreter reports
//

const (
	ESYNTAX            = "Syntax Error"
	EINVALIDCHAR       = "Invalid character"
	EILLEGALNUMBER     = "Illegal number"
	ENOTDECLARED       = "Variable not declared"
	ESUBSCRIPTERROR    = "Subscript out of range"
	ENEXTWITHOUTFOR    = "NEXT without FOR"
	ENOSUCHLINE        = "Line number does not exist"
	EILLEGALFILENAME   = "Illegal file name"
	EFILENOTFOUND      = "Can't find file or account"
	EDIVISIONBYZERO    = "Division by 0"
	ETYPEMISMATCH      = "Type mismatch"
	ERNDARGUMENT       = "RND argument must be positive"
	EENDOFFILE         = "End of file on device"
	EILLEGALLINENUMBER = "Illegal line number(s)"
	ELINETOOLONG       = "Line too long"
	EINTERRUPTED       = "Interrupted"
	EINTEGEROVERFLOW   = "Integer overflow"
)

//
// Returned by a lineReader when the user aborts the prompt (^C)
//

var errInterrupted = errors.New(EINTERRUPTED)

//
// There are only two kinds of error a line can fail with.  Both abort
// the rest of the line and are reported to whoever submitted it
//

type errorKind int

const (
	syntaxErrorKind errorKind = iota
	tokenizeErrorKind
)

//
// lineNo is filled in by the program runner when the error happened
// while executing a stored line
//

type basicError struct {
	kind   errorKind
	msg    string
	err    error
	lineNo int
}

func (e *basicError) Error() string {

	msg := e.msg

	if e.err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.err)
	}

	if e.lineNo != 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.lineNo)
	}

	return msg
}

func (e *basicError) Unwrap() error {

	return e.err
}

func isSyntaxError(err error) bool {

	var be *basicError

	return errors.As(err, &be) && be.kind == syntaxErrorKind
}

func isTokenizeError(err error) bool {

	var be *basicError

	return errors.As(err, &be) && be.kind == tokenizeErrorKind
}

//
// Errors are raised with panic from wherever they are detected, and
// turned back into an error value by call()
//

func syntaxError(msg string) {

	panic(&basicError{kind: syntaxErrorKind, msg: msg})
}

func syntaxErrorWrap(msg string, err error) {

	panic(&basicError{kind: syntaxErrorKind, msg: msg, err: err})
}

func tokenizeError(msg string) {

	panic(&basicError{kind: tokenizeErrorKind, msg: msg})
}

func runtimeCheck(chk bool, msg string) {

	if !chk {
		syntaxError(msg)
	}
}

//
// An internal consistency check.  Failing one of these is a bug in the
// interpreter, not in the user's program, so it is not a basicError
//

func basicAssert(chk bool, msg string) {

	if !chk {
		panic(fmt.Sprintf("internal error: %s", msg))
	}
}

func unexpectedTokenError(tok tokenKind) {

	basicAssert(false, fmt.Sprintf("Unexpected token %s", getTokenName(tok)))
}

func unexpectedTypeError(item any) {

	basicAssert(false, fmt.Sprintf("Unexpected type %T", item))
}

//
// Wrapper routine for a function.  Any basicError raised by f is
// returned; anything else keeps unwinding
//

func call(f func()) (err error) {

	defer func() {
		if e := recover(); e != nil {
			be, ok := e.(*basicError)
			if !ok {
				panic(e)
			}

			err = be
		}
	}()

	f()

	return nil
}
