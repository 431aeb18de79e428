package constants

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefineMarker opens every declaration the scanner accepts
const DefineMarker = "#define"

// ParseDefinition recognizes one declaration line of the form
//
//	#define NAME VALUE [trailing tokens...]
//
// Tokens are whitespace separated and the value is the token right after the name.
// Function-like macros and every other line are rejected with ok == false.
func ParseDefinition(line string) (name, value string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != DefineMarker {
		return "", "", false
	}
	if strings.ContainsRune(fields[1], '(') {
		return "", "", false
	}
	return fields[1], fields[2], true
}

// Header holds the wanted definitions scanned from one header file
type Header struct {
	path string
	defs map[string]Definition
}

// ReadHeader scans the file at path for definitions of the given names
func ReadHeader(path string, names ...string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	return ScanHeader(path, f, names...)
}

// ScanHeader scans r line by line. source labels the definitions.
// Redefining a wanted name with a different literal is a ConfigurationError.
func ScanHeader(source string, r io.Reader, names ...string) (*Header, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	h := &Header{path: source, defs: make(map[string]Definition)}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		name, value, ok := ParseDefinition(sc.Text())
		if !ok || !wanted[name] {
			continue
		}

		def := Definition{Name: name, Value: value, Source: source, Line: line}
		if prev, dup := h.defs[name]; dup && prev.Value != value {
			return nil, &ConfigurationError{Problems: []string{
				fmt.Sprintf("%s: %s redefined as %q (first defined as %q at line %d)",
					def.Where(), name, value, prev.Value, prev.Line),
			}}
		} else if dup {
			continue
		}
		h.defs[name] = def
	}
	if err := sc.Err(); err != nil {
		return nil, &SourceUnavailableError{Path: source, Err: err}
	}

	return h, nil
}

func (h *Header) Lookup(name string) (Definition, bool) {
	d, ok := h.defs[name]
	return d, ok
}

func (h *Header) Source() string {
	return h.path
}
