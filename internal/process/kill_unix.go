//go:build !windows

// Package process terminates browser process trees.
package process

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrInvalidPID is returned for PIDs that cannot name a browser process.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree sends SIGKILL to the process group led by pid, so Chrome's
// renderer, GPU and zygote helpers go down with the browser. A group that
// has already exited is not an error.
func KillTree(pid int) error {
	if pid <= 0 {
		// -0 would address our own group.
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("killing process group %d: %w", pid, err)
	}
	return nil
}
