package daemon

import "errors"

// Sentinel errors for daemon operations, checked with errors.Is
var (
	// ErrAlreadyRunning indicates another daemon instance owns the PID file
	ErrAlreadyRunning = errors.New("wallswap daemon is already running")

	// ErrNotRunning indicates no daemon instance could be found
	ErrNotRunning = errors.New("wallswap daemon is not running")

	// ErrInitialStart indicates the very first renderer failed to start.
	// This is the only rendering failure that is fatal to the daemon.
	ErrInitialStart = errors.New("initial wallpaper failed to start")

	// ErrRendererDied indicates a freshly started renderer exited
	// within the settling window
	ErrRendererDied = errors.New("new renderer died during settling window")
)
