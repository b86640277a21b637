package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wallswap/wallswap/pkg/config"
	"github.com/wallswap/wallswap/pkg/daemon"
	"github.com/wallswap/wallswap/pkg/display"
	"github.com/wallswap/wallswap/pkg/logger"
)

// runDaemon starts the supervisor, either in once mode or as the
// long-running daemon with signal- and file-driven reloads.
func runDaemon(once bool) error {
	log := logger.CreateLogger(logFile, verbosity)

	output := outputArg
	if output == "" {
		output = display.NewDiscoverer(log).Discover()
	}

	configPath := getConfigPath()

	d := daemon.New(daemon.Options{
		ConfigPath: configPath,
		Output:     output,
		Notify:     !once && !noNotify,
	}, log)

	if once {
		return d.Run(context.Background(), true)
	}

	// SIGTERM/SIGINT shut down; SIGHUP forces a swap.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for range hup {
			d.TriggerReload()
		}
	}()

	// Config file edits trigger reloads too, without an explicit
	// signal. Best-effort: the daemon still works with SIGHUP alone.
	watcher := config.NewWatcher(configPath, log, d.TriggerReload)
	if err := watcher.Start(); err != nil {
		log.Warn("Config file watching unavailable",
			logger.WithField("error", err))
	} else {
		defer watcher.Stop()
	}

	return d.Run(ctx, false)
}
