// Package daemon detaches the server process from the invoking terminal.
//
// Go processes cannot fork in place, so daemonizing re-executes the current
// binary with the wanted arguments in a new session. The parent only
// observes the detach step; the child's long-running behavior is its own.
package daemon

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Daemonize re-executes the current binary with args, detached from the
// invoking terminal, and records the child's PID in pidFile. It returns the
// child PID.
func Daemonize(pidFile string, args ...string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("locating executable: %v", err)
	}

	devnull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, err
	}
	defer devnull.Close()

	cmd := exec.Command(exe, args...)
	cmd.Stdin = devnull
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("detaching server process: %v", err)
	}

	pid := cmd.Process.Pid

	if err := WritePidFile(pidFile, pid); err != nil {
		return pid, err
	}

	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}

	return pid, nil
}

// WritePidFile records pid at path.
func WritePidFile(path string, pid int) error {
	return ioutil.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0644)
}

// ReadPidFile returns the PID recorded at path.
func ReadPidFile(path string) (int, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %s: %v", path, err)
	}

	return pid, nil
}
