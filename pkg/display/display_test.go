package display

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wallswap/wallswap/pkg/logger"
)

func newTestDiscoverer(t *testing.T) *Discoverer {
	t.Helper()
	d := NewDiscoverer(logger.CreateLoggerWithOutput("error", &bytes.Buffer{}))
	d.runtimeFile = filepath.Join(t.TempDir(), "primary-monitor")
	d.pollInterval = 10 * time.Millisecond
	d.maxPolls = 3
	d.listOutputs = func() (string, error) {
		return "", errors.New("wlr-randr not available")
	}
	return d
}

func TestDiscover_RuntimeFile(t *testing.T) {
	d := newTestDiscoverer(t)
	os.WriteFile(d.runtimeFile, []byte("eDP-1\n"), 0644)

	if got := d.Discover(); got != "eDP-1" {
		t.Errorf("Discover() = %q, want eDP-1", got)
	}
}

func TestDiscover_WaitsForRuntimeFile(t *testing.T) {
	d := newTestDiscoverer(t)
	d.maxPolls = 10

	go func() {
		time.Sleep(30 * time.Millisecond)
		os.WriteFile(d.runtimeFile, []byte("HDMI-A-1"), 0644)
	}()

	if got := d.Discover(); got != "HDMI-A-1" {
		t.Errorf("Discover() = %q, want HDMI-A-1", got)
	}
}

func TestDiscover_ListingFallback(t *testing.T) {
	d := newTestDiscoverer(t)
	d.listOutputs = func() (string, error) {
		return "DP-3 \"Dell U2720Q\"\n  1920x1080 px\n  Position: 0,0\n", nil
	}

	if got := d.Discover(); got != "DP-3" {
		t.Errorf("Discover() = %q, want DP-3", got)
	}
}

func TestDiscover_HardcodedFallback(t *testing.T) {
	d := newTestDiscoverer(t)

	if got := d.Discover(); got != FallbackOutput {
		t.Errorf("Discover() = %q, want %q", got, FallbackOutput)
	}
}

func TestParseFirstOutput(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		want    string
	}{
		{
			name:    "single output",
			listing: "DP-1 \"Some Monitor\"\n  Enabled: yes\n",
			want:    "DP-1",
		},
		{
			name:    "skips indented lines",
			listing: "  stray indent\nWL-1 (Wayland)\n  Mode: 60Hz\n",
			want:    "WL-1",
		},
		{
			name:    "empty listing",
			listing: "",
			want:    "",
		},
		{
			name:    "multiple outputs uses first",
			listing: "DP-1 \"A\"\nDP-2 \"B\"\n",
			want:    "DP-1",
		},
		{
			name:    "skips whitespace-only lines",
			listing: "\f\r\nDP-9 \"C\"\n",
			want:    "DP-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFirstOutput(tt.listing); got != tt.want {
				t.Errorf("parseFirstOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}
