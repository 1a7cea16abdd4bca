//go:build !windows

package daemon

import "syscall"

// sysProcAttr puts the child in its own session, severing it from the
// controlling terminal.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
