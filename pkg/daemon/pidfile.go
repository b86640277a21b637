package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// RuntimePIDPath returns the default PID file location under the user
// runtime directory.
func RuntimePIDPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "wallswap.pid")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("wallswap-%d.pid", os.Getuid()))
}

// PIDFile records the daemon's process ID so the reload and status
// subcommands can find a running instance.
type PIDFile struct {
	path string
}

// NewPIDFile creates a PID file handle for the given path
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Write records the current process ID. Returns ErrAlreadyRunning if
// the file points at a live process.
func (p *PIDFile) Write() error {
	if pid, err := p.Read(); err == nil && processAlive(pid) && pid != os.Getpid() {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}
	return os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// Read returns the recorded process ID. Returns ErrNotRunning if the
// file is absent.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, ErrNotRunning
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed pid file %s: %w", p.path, err)
	}
	return pid, nil
}

// ReadLive returns the recorded process ID only if that process is
// still alive.
func (p *PIDFile) ReadLive() (int, error) {
	pid, err := p.Read()
	if err != nil {
		return 0, err
	}
	if !processAlive(pid) {
		return 0, ErrNotRunning
	}
	return pid, nil
}

// Remove deletes the PID file. Safe to call when absent.
func (p *PIDFile) Remove() {
	os.Remove(p.path)
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
