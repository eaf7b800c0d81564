package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"
)

func TestFormatValue(t *testing.T) {

	tests := []struct {
		val  any
		want string
	}{
		{int64(7), "7"},
		{int64(-12), "-12"},
		{float64(2), "2.0"},
		{3.5, "3.5"},
		{-0.25, "-0.25"},
		{"text", "text"},
		{true, "True"},
		{false, "False"},
	}

	for _, tc := range tests {
		if got := formatValue(tc.val); got != tc.want {
			t.Errorf("formatValue(%#v) = %q, want %q", tc.val, got, tc.want)
		}
	}

	if got := formatRepr("hi"); got != "'hi'" {
		t.Errorf("formatRepr = %q", got)
	}

	if got := formatRepr(int64(1)); got != "1" {
		t.Errorf("formatRepr = %q", got)
	}
}

func TestParseInputValue(t *testing.T) {

	tests := []struct {
		text string
		want any
	}{
		{"42", int64(42)},
		{" 42 ", int64(42)},
		{"0", int64(0)},
		{"12abc", "12abc"},
		{"abc", "abc"},
		{"", ""},
		{"-5", "-5"},
		{"1.5", "1.5"},
		{"99999999999999999999", "99999999999999999999"},
	}

	for _, tc := range tests {
		if got := parseInputValue(tc.text); got != tc.want {
			t.Errorf("parseInputValue(%q) = %#v, want %#v", tc.text, got, tc.want)
		}
	}
}

func TestTrimWhitespace(t *testing.T) {

	tests := []struct {
		text string
		want string
	}{
		{"  10   PRINT   1  ", "10 PRINT 1"},
		{"PRINT  \"a   b\"  ;  X", "PRINT \"a   b\" ; X"},
		{"\tLIST\t", "LIST"},
		{"", ""},
		{"LET à = 5 : PRINT à", "LET à = 5 : PRINT à"},
		{"REM  voilà   ça", "REM voilà ça"},
		{"PRINT  \"ünï  cödé\"", "PRINT \"ünï  cödé\""},
		{"REM\u00a0\u00a0x\u2003", "REM x"},
		{"REM \xff\xfe  x", "REM \xff\xfe x"},
	}

	for _, tc := range tests {
		if got := trimWhitespace(tc.text); got != tc.want {
			t.Errorf("trimWhitespace(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestSmallHelpers(t *testing.T) {

	if pluralize("statement", 1) != "statement" || pluralize("statement", 0) != "statements" {
		t.Error("pluralize")
	}

	if switchSetting(true) != "ON" || switchSetting(false) != "OFF" {
		t.Error("switchSetting")
	}

	if got := formatCPUTime(3725); got != "01:02:05" {
		t.Errorf("formatCPUTime = %q", got)
	}

	_, err := os.Open("/nonexistent/file")
	if mapped := mapOSError(err); !errors.Is(mapped, fs.ErrNotExist) || strings.Contains(mapped.Error(), "/nonexistent") {
		t.Errorf("mapOSError = %v", mapped)
	}
}

func TestScannerReader(t *testing.T) {

	var out bytes.Buffer

	sr := newScannerReader(strings.NewReader("one\ntwo\n"), &out)

	for _, want := range []string{"one", "two"} {
		got, err := sr.readLine("? ")
		if err != nil || got != want {
			t.Errorf("readLine = %q, %v; want %q", got, err, want)
		}
	}

	if _, err := sr.readLine("? "); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}

	if out.String() != "? ? ? " {
		t.Errorf("prompts %q", out.String())
	}
}
