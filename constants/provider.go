package constants

import "fmt"

// Definition is one named literal as found in a source
type Definition struct {
	Name   string
	Value  string
	Source string
	Line   int // 1-based; zero when the source has no lines
}

// Where locates the definition for error messages
func (d Definition) Where() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d", d.Source, d.Line)
	}
	return d.Source
}

// Provider resolves constant names to their literal text. The rest of the pipeline only
// sees providers, so constants can come from headers, structured config or build variables.
type Provider interface {
	Lookup(name string) (Definition, bool)
	Source() string
}

// Static is an in-memory Provider
type Static map[string]string

func (s Static) Lookup(name string) (Definition, bool) {
	v, ok := s[name]
	if !ok {
		return Definition{}, false
	}
	return Definition{Name: name, Value: v, Source: s.Source()}, true
}

func (s Static) Source() string {
	return "static"
}
