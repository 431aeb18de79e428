//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package logging

import "os"

// IsTerminal falls back to the character-device mode bit
func IsTerminal(f *os.File) bool {
	if fileInfo, _ := f.Stat(); fileInfo != nil {
		return (fileInfo.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
