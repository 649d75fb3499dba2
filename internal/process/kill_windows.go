//go:build windows

// Package process terminates browser process trees.
package process

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrInvalidPID is returned for PIDs that cannot name a browser process.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and every child Chrome spawned (taskkill /T).
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	// taskkill exits non-zero for a process that is already gone.
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil { // #nosec G204 -- pid is an int
		return fmt.Errorf("taskkill %d: %w", pid, err)
	}
	return nil
}
