// Package display discovers the active display output
package display

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/wallswap/wallswap/pkg/logger"
)

// FallbackOutput is the last-resort output identifier used when
// discovery fails entirely.
const FallbackOutput = "DP-1"

// Discoverer resolves the primary display output. The monitor
// detection service publishes the output name to a file under the
// user runtime directory; if that never appears, wlr-randr is asked
// directly, and failing that a hardcoded identifier is used.
type Discoverer struct {
	logger       logger.Logger
	runtimeFile  string
	pollInterval time.Duration
	maxPolls     int
	listOutputs  func() (string, error)
}

// NewDiscoverer creates a display output discoverer
func NewDiscoverer(log logger.Logger) *Discoverer {
	return &Discoverer{
		logger:       log,
		runtimeFile:  fmt.Sprintf("/run/user/%d/primary-monitor", os.Getuid()),
		pollInterval: 500 * time.Millisecond,
		maxPolls:     10,
		listOutputs:  runWlrRandr,
	}
}

// Discover returns the primary output identifier. It degrades rather
// than fails: discovery problems are logged and a fallback is
// returned, so the daemon can always start.
func (d *Discoverer) Discover() string {
	for attempt := 0; attempt < d.maxPolls; attempt++ {
		if out := d.readRuntimeFile(); out != "" {
			return out
		}
		if attempt < d.maxPolls-1 {
			time.Sleep(d.pollInterval)
		}
	}

	d.logger.Error("Primary monitor file not found, monitor detection may have failed",
		logger.WithField("path", d.runtimeFile))
	d.logger.Info("Falling back to wlr-randr")

	if listing, err := d.listOutputs(); err == nil {
		if out := parseFirstOutput(listing); out != "" {
			return out
		}
	} else {
		d.logger.Warn("wlr-randr fallback failed", logger.WithField("error", err))
	}

	d.logger.Error("Could not determine primary output, using fallback",
		logger.WithField("output", FallbackOutput))
	return FallbackOutput
}

func (d *Discoverer) readRuntimeFile() string {
	data, err := os.ReadFile(d.runtimeFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// parseFirstOutput extracts the output name from a wlr-randr listing:
// the first field of the first unindented line.
func parseFirstOutput(listing string) string {
	for _, line := range strings.Split(strings.TrimSpace(listing), "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}

func runWlrRandr() (string, error) {
	cmd := exec.Command("wlr-randr")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("wlr-randr: %w", err)
	}
	return string(out), nil
}
