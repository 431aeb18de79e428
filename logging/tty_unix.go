//go:build linux || darwin || freebsd || netbsd || openbsd

package logging

import (
	"os"

	"golang.org/x/sys/unix"
)

// IsTerminal reports whether f is attached to a tty
func IsTerminal(f *os.File) bool {
	_, err := unix.IoctlGetTermios(int(f.Fd()), ioctlReadTermios)
	return err == nil
}
