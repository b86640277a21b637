package daemon

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestPIDFile_WriteReadRemove(t *testing.T) {
	p := NewPIDFile(filepath.Join(t.TempDir(), "wallswap.pid"))

	if _, err := p.Read(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning for absent pid file, got %v", err)
	}

	if err := p.Write(); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	pid, err := p.ReadLive()
	if err != nil {
		t.Fatalf("ReadLive failed: %v", err)
	}
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}

	p.Remove()
	if _, err := p.Read(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after Remove, got %v", err)
	}

	// Removing again is harmless.
	p.Remove()
}

func TestPIDFile_RefusesLiveForeignProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallswap.pid")
	p := NewPIDFile(path)

	// A live process that is not us holds the pid file.
	cmd := exec.Command("sleep", "30")
	if err := cmd.Start(); err != nil {
		t.Fatalf("failed to start sleeper: %v", err)
	}
	defer func() {
		cmd.Process.Kill()
		cmd.Wait()
	}()

	if err := os.WriteFile(path, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		t.Fatalf("failed to seed pid file: %v", err)
	}

	if err := p.Write(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestPIDFile_OverwritesStalePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallswap.pid")
	p := NewPIDFile(path)

	// A pid that cannot be running anymore.
	cmd := exec.Command("true")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to run child: %v", err)
	}
	os.WriteFile(path, []byte(strconv.Itoa(cmd.Process.Pid)), 0644)

	if err := p.Write(); err != nil {
		t.Fatalf("expected stale pid to be overwritten, got %v", err)
	}

	pid, _ := p.Read()
	if pid != os.Getpid() {
		t.Errorf("pid = %d, want %d", pid, os.Getpid())
	}
}

func TestPIDFile_MalformedContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallswap.pid")
	os.WriteFile(path, []byte("not-a-pid"), 0644)

	p := NewPIDFile(path)
	if _, err := p.Read(); err == nil {
		t.Error("expected error for malformed pid file")
	}
}
