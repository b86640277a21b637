package renderer

import (
	"bytes"
	"fmt"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/wallswap/wallswap/pkg/logger"
)

// ExitEvent is published when a renderer process exits. It carries the
// process ID so the daemon can tell an exit of the current renderer
// apart from the exit of a superseded one it just killed.
type ExitEvent struct {
	HandleID string
	PID      int
	Code     int
}

// Handle wraps one spawned renderer process. A handle is owned by
// exactly one daemon slot at a time; ownership transfers but is never
// shared, so no locking is needed around the daemon's use of it.
//
// Lifecycle: created (not started) -> started -> alive or exited ->
// terminated. Terminate is idempotent.
type Handle struct {
	id       string
	output   string
	renderer Renderer
	logger   logger.Logger
	onExit   func(ExitEvent)
	detach   bool

	mu     sync.Mutex
	cmd    *exec.Cmd
	stderr bytes.Buffer
	waitCh chan struct{}
}

// NewHandle creates a not-yet-started handle for the given renderer
func NewHandle(output string, r Renderer, log logger.Logger) *Handle {
	return &Handle{
		id:       uuid.NewString()[:8],
		output:   output,
		renderer: r,
		logger:   log.WithOutput(output),
	}
}

// ID returns the handle's log-correlation identifier
func (h *Handle) ID() string { return h.id }

// Renderer returns the renderer this handle was built for
func (h *Handle) Renderer() Renderer { return h.renderer }

// OnExit registers a callback invoked from the wait goroutine when
// the process exits. Must be called before Start.
func (h *Handle) OnExit(fn func(ExitEvent)) { h.onExit = fn }

// Detach lets the renderer keep running after this process exits, for
// set-and-exit usage. Must be called before Start.
func (h *Handle) Detach() { h.detach = true }

// Detached reports whether the renderer outlives this process
func (h *Handle) Detached() bool { return h.detach }

// PID returns the process ID, or 0 if the handle was never started
func (h *Handle) PID() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd == nil || h.cmd.Process == nil {
		return 0
	}
	return h.cmd.Process.Pid
}

// Start spawns the renderer process. Stdout is discarded; stderr is
// captured for diagnostics. On failure the handle stays not-started.
func (h *Handle) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cmd != nil {
		return fmt.Errorf("renderer %s already started", h.id)
	}

	argv := h.renderer.Command()
	h.logger.Info("Starting renderer",
		logger.WithField("id", h.id),
		logger.WithField("cmd", argv[0]),
		logger.WithField("kind", h.renderer.Kind()))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = h.renderer.Environ()
	cmd.Stderr = &h.stderr
	if !h.detach {
		// Renderers must not outlive the daemon.
		cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGTERM}
	}
	// Do not let a leaked grandchild holding the stderr pipe stall Wait.
	cmd.WaitDelay = time.Second

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", argv[0], err)
	}

	h.cmd = cmd
	h.waitCh = make(chan struct{})

	go h.wait(cmd)

	return nil
}

// wait reaps the process and publishes its exit event
func (h *Handle) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
	} else if err != nil {
		code = -1
	}

	close(h.waitCh)

	if h.onExit != nil {
		h.onExit(ExitEvent{
			HandleID: h.id,
			PID:      cmd.Process.Pid,
			Code:     code,
		})
	}
}

// IsAlive reports whether the process is running. Non-blocking;
// returns false if the handle was never started.
func (h *Handle) IsAlive() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cmd == nil {
		return false
	}
	select {
	case <-h.waitCh:
		return false
	default:
		return true
	}
}

// Stderr returns whatever the renderer wrote to stderr so far
func (h *Handle) Stderr() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stderr.String()
}

// Terminate requests a graceful shutdown and waits up to timeout for
// the process to exit; past that it is force-killed and briefly waited
// for. A no-op on handles that never started or already exited, and
// safe to call repeatedly.
func (h *Handle) Terminate(timeout time.Duration) {
	h.mu.Lock()
	cmd := h.cmd
	waitCh := h.waitCh
	h.mu.Unlock()

	if cmd == nil {
		return
	}

	select {
	case <-waitCh:
		return // already exited
	default:
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Likely already gone; the wait goroutine will reap it.
		return
	}

	select {
	case <-waitCh:
		h.logger.Debug("Renderer terminated gracefully",
			logger.WithField("pid", pid))
		return
	case <-time.After(timeout):
	}

	h.logger.Warn("Renderer did not terminate, killing",
		logger.WithField("pid", pid))
	cmd.Process.Kill()

	select {
	case <-waitCh:
	case <-time.After(time.Second):
		h.logger.Error("Renderer could not be reclaimed",
			logger.WithField("pid", pid))
	}
}
