//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Non-positive pids are ignored: -0 would target the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
