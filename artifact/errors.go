package artifact

import (
	"errors"
	"fmt"
	"io/fs"
)

// PermissionError reports a destination that may not be written
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied writing %s: %v", e.Path, e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// UnexpectedIOError reports any other failure while checking or writing the destination
type UnexpectedIOError struct {
	Path string
	Err  error
}

func (e *UnexpectedIOError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *UnexpectedIOError) Unwrap() error {
	return e.Err
}

// classify wraps a filesystem error into PermissionError or UnexpectedIOError
func classify(path string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return &PermissionError{Path: path, Err: err}
	}
	return &UnexpectedIOError{Path: path, Err: err}
}
