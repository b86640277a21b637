package daemon

import "time"

// Crash tracking defaults
const (
	crashWindow       = 5 * time.Second
	crashThreshold    = 5
	maxCrashBackoff   = 30 * time.Second
	crashStablePeriod = 30 * time.Second
)

// CrashTracker rate-limits renderer restarts. It is a leaky bucket:
// crashes arriving inside the window escalate a linear backoff, and a
// quiet period resets the count entirely.
type CrashTracker struct {
	count     int
	lastCrash time.Time

	window     time.Duration
	threshold  int
	maxBackoff time.Duration
}

// NewCrashTracker creates a tracker with the default window and limits
func NewCrashTracker() *CrashTracker {
	return &CrashTracker{
		window:     crashWindow,
		threshold:  crashThreshold,
		maxBackoff: maxCrashBackoff,
	}
}

// RecordCrash records a crash at the given time and returns the
// backoff to apply before restarting. Zero means no throttling is
// needed yet; callers still apply a small fixed pause to avoid a
// tight crash loop below the threshold.
func (t *CrashTracker) RecordCrash(now time.Time) time.Duration {
	if now.Sub(t.lastCrash) > t.window {
		t.count = 1
	} else {
		t.count++
	}
	t.lastCrash = now

	if t.count > t.threshold {
		backoff := time.Duration(t.count) * 2 * time.Second
		if backoff > t.maxBackoff {
			backoff = t.maxBackoff
		}
		return backoff
	}
	return 0
}

// ResetIfStable zeroes the crash count once the renderer has run
// without crashing for long enough.
func (t *CrashTracker) ResetIfStable(now time.Time) {
	if now.Sub(t.lastCrash) > crashStablePeriod {
		t.count = 0
	}
}

// Count returns the number of crashes in the current window
func (t *CrashTracker) Count() int { return t.count }
