package main

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//
// On-disk form of a saved program.  The mapping is written as is, so
// LOAD gets back exactly what SAVE was given, whitespace and all
//

type programDisk struct {
	Version string         `yaml:"version"`
	Lines   map[int]string `yaml:"lines"`
}

//
// Program names are plain names: the '.bas' suffix is added here and
// the file lives in the interpreter's directory, so no path pieces
// are allowed
//

func validateProgramFilename(name string) (string, bool) {

	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", false
	}

	return name + basFileSuffix, true
}

func (ip *interp) programPath(name string) string {

	fname, ok := validateProgramFilename(name)
	runtimeCheck(ok, EILLEGALFILENAME)

	return filepath.Join(ip.dir, fname)
}

func (ip *interp) saveProgram(name string) {

	path := ip.programPath(name)

	data, err := encodeProgram(ip.m.programMap())
	if err != nil {
		syntaxErrorWrap("Unable to save "+name, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		syntaxErrorWrap("Unable to save "+name, mapOSError(err))
	}
}

//
// The loaded program replaces whatever is in memory, and any run in
// progress loses its place.  Variables are left alone
//

func (ip *interp) loadProgram(name string) {

	path := ip.programPath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			syntaxErrorWrap(EFILENOTFOUND, err)
		}

		syntaxErrorWrap("Unable to load "+name, mapOSError(err))
	}

	prog, err := decodeProgram(data)
	if err != nil {
		syntaxErrorWrap("Unable to load "+name, err)
	}

	ip.m.replaceProgram(prog)
	ip.m.cursor.reset()
}

func encodeProgram(prog map[int]string) ([]byte, error) {

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(programDisk{Version: VERSION, Lines: prog}); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func decodeProgram(data []byte) (map[int]string, error) {

	var raw programDisk

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	for lineNo, text := range raw.Lines {
		if lineNo <= 0 || lineNo > maxLineNumber || text == "" {
			return nil, errors.New(EILLEGALLINENUMBER)
		}
	}

	if raw.Lines == nil {
		raw.Lines = make(map[int]string)
	}

	return raw.Lines, nil
}
