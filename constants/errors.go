package constants

import (
	"fmt"
	"strings"
)

// ConfigurationError reports constants that are missing, malformed or out of range
// after every source has been scanned
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "configuration error"
	}
	return "configuration error: " + strings.Join(e.Problems, "; ")
}

// SourceUnavailableError reports a header that could not be opened or read
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source unavailable: %s: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
