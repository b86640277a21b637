// Package daemon implements the wallpaper supervisor: it keeps
// exactly one renderer process alive on the display output and
// replaces it with zero downtime when the configuration changes.
package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/wallswap/wallswap/pkg/config"
	"github.com/wallswap/wallswap/pkg/logger"
	"github.com/wallswap/wallswap/pkg/notifier"
	"github.com/wallswap/wallswap/pkg/renderer"
	"github.com/wallswap/wallswap/pkg/types"
)

// Selector abstracts renderer selection for the daemon
type Selector interface {
	Select(cfg types.WallpaperConfig, output string) (*renderer.Handle, error)
}

// Options configures a Daemon
type Options struct {
	// ConfigPath is the wallpaper configuration file to load on every
	// reload
	ConfigPath string

	// Output is the display output renderers draw to
	Output string

	// PIDPath overrides the PID file location (default: user runtime dir)
	PIDPath string

	// Notify enables desktop notifications on swap failures
	Notify bool
}

// Daemon owns the current renderer handle and configuration and runs
// the event loop. All state transitions happen on the loop goroutine;
// the only outside writers are the notification channels, which are
// send-only from that side and drained only by the loop.
type Daemon struct {
	configPath string
	output     string
	logger     logger.Logger
	configMgr  *config.Manager
	selector   Selector
	tracker    *CrashTracker
	notifier   *notifier.Notifier
	pidFile    *PIDFile

	current    *renderer.Handle
	currentCfg *types.WallpaperConfig
	detach     bool

	// reloadCh is buffered with size 1: reload requests arriving
	// before the loop wakes collapse into a single swap, which is
	// safe because a forced swap is idempotent.
	reloadCh chan struct{}
	exitCh   chan renderer.ExitEvent

	settleDelay     time.Duration
	swapGrace       time.Duration
	shutdownGrace   time.Duration
	minRestartPause time.Duration
	sleep           func(time.Duration)
}

// New creates a daemon
func New(opts Options, log logger.Logger) *Daemon {
	pidPath := opts.PIDPath
	if pidPath == "" {
		pidPath = RuntimePIDPath()
	}

	return &Daemon{
		configPath: opts.ConfigPath,
		output:     opts.Output,
		logger:     log.WithOutput(opts.Output),
		configMgr:  config.NewManager(log),
		selector:   renderer.NewSelector(log),
		tracker:    NewCrashTracker(),
		notifier:   notifier.New(opts.Notify, log),
		pidFile:    NewPIDFile(pidPath),

		reloadCh: make(chan struct{}, 1),
		exitCh:   make(chan renderer.ExitEvent, 16),

		settleDelay:     300 * time.Millisecond,
		swapGrace:       time.Second,
		shutdownGrace:   2 * time.Second,
		minRestartPause: time.Second,
		sleep:           time.Sleep,
	}
}

// CurrentIdentity returns the identity of the active configuration,
// or "" before the first successful start.
func (d *Daemon) CurrentIdentity() string {
	if d.currentCfg == nil {
		return ""
	}
	return d.currentCfg.Identity()
}

// TriggerReload requests a forced hot-swap. Safe to call from any
// goroutine; never blocks.
func (d *Daemon) TriggerReload() {
	select {
	case d.reloadCh <- struct{}{}:
	default:
	}
}

// handleRendererExit publishes a renderer exit to the event loop. It
// runs on the handle's wait goroutine, so it must never block.
func (d *Daemon) handleRendererExit(ev renderer.ExitEvent) {
	select {
	case d.exitCh <- ev:
	default:
		d.logger.Warn("Dropping renderer exit event",
			logger.WithField("pid", ev.PID))
	}
}

// Run starts the initial renderer and, unless once is set, enters the
// event loop until ctx is cancelled. The returned error is non-nil
// only when the very first renderer cannot be started; once running,
// the daemon never exits due to a rendering failure.
func (d *Daemon) Run(ctx context.Context, once bool) error {
	// In once mode the renderer must outlive this process.
	d.detach = once

	cfg := d.configMgr.Load(d.configPath)
	d.logger.Info("Starting wallswap",
		logger.WithField("kind", cfg.ActiveKind),
		logger.WithField("config", d.configPath))

	if err := d.hotSwap(true); err != nil {
		return fmt.Errorf("%w: %v", ErrInitialStart, err)
	}

	if once {
		d.logger.Info("Running in once mode, exiting")
		return nil
	}

	if err := d.pidFile.Write(); err != nil {
		d.teardown()
		return err
	}
	defer d.pidFile.Remove()

	d.logger.Info("Daemon running",
		logger.WithField("renderer_pid", d.current.PID()))

	for {
		// Shutdown wins over any queued reload or exit event; a plain
		// select picks randomly among ready cases.
		select {
		case <-ctx.Done():
			return d.shutdown()
		default:
		}

		select {
		case <-ctx.Done():
			return d.shutdown()

		case <-d.reloadCh:
			d.logger.Info("Processing reload request")
			if err := d.hotSwap(true); err != nil {
				d.logger.Error("Swap failed, keeping previous renderer",
					logger.WithField("error", err))
			}

		case ev := <-d.exitCh:
			d.onRendererExit(ctx, ev)
		}
	}
}

func (d *Daemon) shutdown() error {
	d.logger.Info("Shutting down")
	d.teardown()
	return nil
}

// hotSwap replaces the current renderer with one selected for a
// freshly loaded configuration. The new renderer is started and
// verified alive before the old one is touched, so the display is
// never left bare; on any failure the current renderer keeps running.
func (d *Daemon) hotSwap(forced bool) error {
	cfg := d.configMgr.Load(d.configPath)

	if !forced && d.currentCfg != nil && cfg.Identity() == d.currentCfg.Identity() {
		d.logger.Debug("Config unchanged, skipping swap",
			logger.WithField("identity", cfg.Identity()))
		return nil
	}

	d.logger.Info("Hot-swapping wallpaper",
		logger.WithField("from", d.CurrentIdentity()),
		logger.WithField("to", cfg.Identity()))

	handle, err := d.selector.Select(cfg, d.output)
	if err != nil {
		d.logger.Error("No renderer could be selected",
			logger.WithField("error", err))
		d.notifier.NotifySwapFailure(cfg.Identity(), err)
		return err
	}
	handle.OnExit(d.handleRendererExit)
	if d.detach {
		handle.Detach()
	}

	if err := handle.Start(); err != nil {
		d.logger.Error("Failed to start renderer",
			logger.WithField("error", err))
		d.notifier.NotifySwapFailure(cfg.Identity(), err)
		return err
	}

	// Give the new renderer a moment to initialize and present its
	// first frame before anything is torn down.
	d.sleep(d.settleDelay)

	if !handle.IsAlive() {
		d.logger.Error("New renderer died immediately",
			logger.WithField("stderr", handle.Stderr()))
		d.notifier.NotifySwapFailure(cfg.Identity(), ErrRendererDied)
		return ErrRendererDied
	}

	if d.current != nil {
		d.logger.Info("Stopping previous renderer",
			logger.WithField("pid", d.current.PID()))
		d.current.Terminate(d.swapGrace)
	}

	d.current = handle
	d.currentCfg = &cfg
	d.logger.Info("Wallpaper switched",
		logger.WithField("identity", cfg.Identity()),
		logger.WithField("pid", handle.PID()))
	return nil
}

// onRendererExit handles a child exit notification. Exits are matched
// against the current handle by ID, so exits of superseded renderers
// killed during a swap are ignored instead of being mistaken for
// crashes.
//
// Recovery keeps retrying: a replacement that itself fails to come up
// counts as another crash and escalates the backoff, so the daemon is
// never left with no renderer at all. Only shutdown stops the retry
// loop.
func (d *Daemon) onRendererExit(ctx context.Context, ev renderer.ExitEvent) {
	if d.current == nil || ev.HandleID != d.current.ID() || d.current.IsAlive() {
		d.tracker.ResetIfStable(time.Now())
		return
	}

	d.logger.Warn("Renderer exited unexpectedly",
		logger.WithField("pid", ev.PID),
		logger.WithField("code", ev.Code))

	for {
		backoff := d.tracker.RecordCrash(time.Now())
		if backoff > 0 {
			d.logger.Warn("Renderer is crash-looping, throttling restart",
				logger.WithField("crashes", d.tracker.Count()),
				logger.WithField("backoff", backoff))
			d.notifier.NotifyCrashLoop(d.tracker.Count(), backoff)
			if !d.pause(ctx, backoff) {
				return
			}
		} else if !d.pause(ctx, d.minRestartPause) {
			return
		}

		err := d.hotSwap(true)
		if err == nil {
			return
		}
		d.logger.Error("Restart after crash failed, retrying",
			logger.WithField("error", err))
	}
}

// pause sleeps for the given duration; returns false if ctx is
// cancelled first.
func (d *Daemon) pause(ctx context.Context, dur time.Duration) bool {
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

// teardown stops the current renderer with the shutdown grace period
func (d *Daemon) teardown() {
	if d.current != nil {
		d.current.Terminate(d.shutdownGrace)
		d.current = nil
	}
}
