//go:build darwin || freebsd || netbsd || openbsd

package logging

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TIOCGETA
