//go:build unix

package artifact

import "golang.org/x/sys/unix"

// accessWritable asks the kernel whether the calling user may write path
func accessWritable(path string) error {
	return unix.Access(path, unix.W_OK)
}
