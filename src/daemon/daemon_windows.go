//go:build windows

package daemon

import "syscall"

// Windows has no sessions; the detached process group is the closest analog
// and exec.Cmd's defaults are good enough for a background run.
func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
