package daemon

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestPidFileRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "mimble")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "mimble.pid")

	if err := WritePidFile(path, 4242); err != nil {
		t.Fatalf("err: %v", err)
	}

	pid, err := ReadPidFile(path)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("read back pid %d, wrote 4242", pid)
	}
}

func TestReadPidFileInvalid(t *testing.T) {
	dir, err := ioutil.TempDir("", "mimble")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	defer os.RemoveAll(dir)

	if _, err := ReadPidFile(filepath.Join(dir, "missing.pid")); err == nil {
		t.Fatalf("a missing pid file should be an error")
	}

	path := filepath.Join(dir, "garbage.pid")
	if err := ioutil.WriteFile(path, []byte("not a pid\n"), 0644); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := ReadPidFile(path); err == nil {
		t.Fatalf("a garbled pid file should be an error")
	}
}
