//go:build linux || darwin

package shell

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// pushInput feeds command into the terminal input queue one byte at a time.
func pushInput(fd uintptr, command string) error {
	for i := 0; i < len(command); i++ {
		b := command[i]
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(unix.TIOCSTI), uintptr(unsafe.Pointer(&b)))
		if errno == 0 {
			continue
		}
		// Linux 6.2+ ships with legacy TIOCSTI disabled and answers EIO or EPERM.
		if i == 0 && (errors.Is(errno, unix.EPERM) || errors.Is(errno, unix.EIO)) {
			return fmt.Errorf("%w: %w", ErrUnsupported, errno)
		}
		return fmt.Errorf("ioctl TIOCSTI: %w", errno)
	}
	return nil
}
