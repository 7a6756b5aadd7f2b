//go:build windows
// +build windows

package engine

import (
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

// killProcessGroup kills only the direct child, descendants holding the
// output pipes keep Wait blocked until they exit.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
