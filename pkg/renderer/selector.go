package renderer

import (
	"fmt"

	"github.com/wallswap/wallswap/pkg/logger"
	"github.com/wallswap/wallswap/pkg/types"
	"github.com/wallswap/wallswap/pkg/utils"
)

// Selector turns a configuration into a ready-to-start Handle,
// walking the fallback chain video -> image -> solid when a preferred
// asset is missing. Selection only ever moves forward through the
// chain; solid has no asset dependency and always succeeds.
type Selector struct {
	logger     logger.Logger
	fileExists func(string) bool
}

// NewSelector creates a renderer selector
func NewSelector(log logger.Logger) *Selector {
	return &Selector{
		logger:     log,
		fileExists: utils.FileExists,
	}
}

// Select produces a handle for the first viable renderer kind at or
// after cfg.ActiveKind in the fallback chain. An error indicates a
// broken invariant (solid unreachable) and should never happen.
func (s *Selector) Select(cfg types.WallpaperConfig, output string) (*Handle, error) {
	chain := []types.WallpaperKind{
		types.WallpaperVideo,
		types.WallpaperImage,
		types.WallpaperSolid,
	}

	start := 0
	for i, kind := range chain {
		if kind == cfg.ActiveKind {
			start = i
			break
		}
	}

	for _, kind := range chain[start:] {
		switch kind {
		case types.WallpaperVideo:
			if s.assetOK(kind, cfg.VideoPath) {
				return NewHandle(output, &VideoRenderer{Output: output, VideoPath: cfg.VideoPath}, s.logger), nil
			}
		case types.WallpaperImage:
			if s.assetOK(kind, cfg.ImagePath) {
				return NewHandle(output, &ImageRenderer{Output: output, ImagePath: cfg.ImagePath}, s.logger), nil
			}
		case types.WallpaperSolid:
			return NewHandle(output, &SolidRenderer{Output: output, Color: cfg.SolidColor}, s.logger), nil
		}
	}

	return nil, fmt.Errorf("renderer fallback chain exhausted for %q", cfg.ActiveKind)
}

func (s *Selector) assetOK(kind types.WallpaperKind, path string) bool {
	if path == "" {
		return false
	}
	if !s.fileExists(path) {
		s.logger.Warn("Wallpaper asset not found, falling back",
			logger.WithField("kind", kind),
			logger.WithField("path", path))
		return false
	}
	return true
}
