// Package renderer manages external wallpaper renderer processes
package renderer

import (
	"os"
	"strings"

	"github.com/wallswap/wallswap/pkg/types"
)

// Renderer describes one concrete wallpaper renderer invocation. The
// set of implementations is closed: video, image, and solid are the
// only kinds, fixed by the selection fallback chain.
type Renderer interface {
	// Kind identifies which renderer variant this is
	Kind() types.WallpaperKind

	// Command returns the argv to execute
	Command() []string

	// Environ returns the environment for the spawned process
	Environ() []string
}

// VideoRenderer plays a video wallpaper using mpvpaper
type VideoRenderer struct {
	Output    string
	VideoPath string
}

func (r *VideoRenderer) Kind() types.WallpaperKind { return types.WallpaperVideo }

func (r *VideoRenderer) Command() []string {
	return []string{
		"mpvpaper",
		"-o", "no-audio loop --really-quiet",
		r.Output,
		r.VideoPath,
	}
}

// Environ strips LD_LIBRARY_PATH. Some compositors export a custom
// library path that is incompatible with mpvpaper's own pixman.
func (r *VideoRenderer) Environ() []string {
	env := os.Environ()
	filtered := env[:0]
	for _, kv := range env {
		if strings.HasPrefix(kv, "LD_LIBRARY_PATH=") {
			continue
		}
		filtered = append(filtered, kv)
	}
	return filtered
}

// ImageRenderer displays a static image wallpaper using swaybg
type ImageRenderer struct {
	Output    string
	ImagePath string
}

func (r *ImageRenderer) Kind() types.WallpaperKind { return types.WallpaperImage }

func (r *ImageRenderer) Command() []string {
	return []string{
		"swaybg",
		"-o", r.Output,
		"-i", r.ImagePath,
		"-m", "fill",
	}
}

func (r *ImageRenderer) Environ() []string { return os.Environ() }

// SolidRenderer fills the output with a solid color using swaybg. It
// has no asset dependency and is the guaranteed terminal fallback.
type SolidRenderer struct {
	Output string
	Color  string
}

func (r *SolidRenderer) Kind() types.WallpaperKind { return types.WallpaperSolid }

func (r *SolidRenderer) Command() []string {
	return []string{
		"swaybg",
		"-o", r.Output,
		"-c", r.Color,
	}
}

func (r *SolidRenderer) Environ() []string { return os.Environ() }
