//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the browser process and every child it
// spawned (renderer, GPU and zygote processes) through its process group.
// Non-positive PIDs are ignored: -0 would target our own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best-effort; the launcher's own Kill runs afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
