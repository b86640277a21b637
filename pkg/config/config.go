// Package config handles wallpaper configuration loading and hot-reload
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/wallswap/wallswap/pkg/logger"
	"github.com/wallswap/wallswap/pkg/types"
	"github.com/wallswap/wallswap/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default configuration file location,
// honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "wallpaper.json"
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wallswap", "wallpaper.json")
}

// fileSchema mirrors the on-disk document. All fields are optional;
// anything missing or malformed falls back to a default.
type fileSchema struct {
	ActiveType string        `json:"active_type" yaml:"active_type"`
	Video      *assetSection `json:"video" yaml:"video"`
	Image      *assetSection `json:"image" yaml:"image"`
	Solid      *colorSection `json:"solid" yaml:"solid"`
}

type assetSection struct {
	Path string `json:"path" yaml:"path"`
}

type colorSection struct {
	Color string `json:"color" yaml:"color"`
}

// Manager handles configuration operations
type Manager struct {
	logger logger.Logger
}

// NewManager creates a new configuration manager
func NewManager(log logger.Logger) *Manager {
	return &Manager{logger: log}
}

// Load reads the configuration file at path and returns a fresh
// WallpaperConfig. Loading is best-effort: a missing or unparsable
// file yields the defaults, and individual malformed fields are
// defaulted rather than rejected. Load never fails; the daemon must
// always be able to fall back to a solid color.
func (m *Manager) Load(path string) types.WallpaperConfig {
	cfg := types.Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("Failed to read config file", logger.WithField("error", err))
		}
		return cfg
	}

	var raw fileSchema

	// Try JSON first, then YAML.
	if err := json.Unmarshal(data, &raw); err != nil {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			m.logger.Warn("Failed to parse config as JSON or YAML",
				logger.WithField("path", path))
			return cfg
		}
	}

	if raw.ActiveType != "" {
		kind := types.WallpaperKind(raw.ActiveType)
		if kind.Valid() {
			cfg.ActiveKind = kind
		} else {
			m.logger.Warn("Invalid active_type, defaulting to video",
				logger.WithField("active_type", raw.ActiveType))
		}
	}

	if raw.Video != nil && raw.Video.Path != "" {
		cfg.VideoPath = utils.NormalizePath(raw.Video.Path)
	}
	if raw.Image != nil && raw.Image.Path != "" {
		cfg.ImagePath = utils.NormalizePath(raw.Image.Path)
	}
	if raw.Solid != nil && raw.Solid.Color != "" {
		cfg.SolidColor = raw.Solid.Color
	}

	return cfg
}
