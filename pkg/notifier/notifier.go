// Package notifier surfaces daemon failures as desktop notifications
package notifier

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/wallswap/wallswap/pkg/logger"
)

// Notifier sends desktop notifications for conditions the user would
// otherwise only find in the logs. Notification failures are logged
// at debug level and never affect the daemon.
type Notifier struct {
	enabled bool
	logger  logger.Logger
}

// New creates a notifier. A disabled notifier swallows every call.
func New(enabled bool, log logger.Logger) *Notifier {
	return &Notifier{enabled: enabled, logger: log}
}

// NotifySwapFailure reports a failed wallpaper swap
func (n *Notifier) NotifySwapFailure(identity string, err error) {
	if !n.enabled {
		return
	}
	n.send("Wallpaper swap failed", fmt.Sprintf("%s: %v", identity, err))
}

// NotifyCrashLoop reports that the renderer is crash-looping and
// restarts are being throttled.
func (n *Notifier) NotifyCrashLoop(crashes int, backoff time.Duration) {
	if !n.enabled {
		return
	}
	n.send("Wallpaper renderer crash loop",
		fmt.Sprintf("%d crashes, backing off %s", crashes, backoff))
}

func (n *Notifier) send(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		n.logger.Debug("Failed to send notification",
			logger.WithField("error", err))
	}
}
