//go:build !windows

package compiler

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts cmd in its own process group so that the whole tree
// can be killed on cancellation.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func killProcessGroup(pid int) {
	// Best-effort; cmd.Process.Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
