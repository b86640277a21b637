package notifier_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/wallswap/wallswap/pkg/logger"
	"github.com/wallswap/wallswap/pkg/notifier"
)

func TestDisabledNotifierIsSilent(t *testing.T) {
	var buf bytes.Buffer
	n := notifier.New(false, logger.CreateLoggerWithOutput("debug", &buf))

	// Disabled calls must not touch the notification backend at all,
	// so nothing can fail and nothing is logged.
	n.NotifySwapFailure("video:/a.mp4", errors.New("spawn failed"))
	n.NotifyCrashLoop(6, 12*time.Second)

	if buf.Len() != 0 {
		t.Errorf("expected no log output from disabled notifier, got:\n%s", buf.String())
	}
}
