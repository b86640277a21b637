// Package types provides core types for wallswap
package types

// WallpaperKind represents the supported wallpaper renderer kinds
type WallpaperKind string

const (
	WallpaperVideo WallpaperKind = "video"
	WallpaperImage WallpaperKind = "image"
	WallpaperSolid WallpaperKind = "solid"
)

// Valid reports whether k is one of the known kinds
func (k WallpaperKind) Valid() bool {
	switch k {
	case WallpaperVideo, WallpaperImage, WallpaperSolid:
		return true
	}
	return false
}

// DefaultSolidColor is used when no solid color is configured
const DefaultSolidColor = "#1a1a2e"

// WallpaperConfig is an immutable wallpaper configuration. It is
// constructed once per load and never mutated afterwards.
type WallpaperConfig struct {
	ActiveKind WallpaperKind
	VideoPath  string
	ImagePath  string
	SolidColor string
}

// Identity collapses the configuration to the minimal value that
// determines renderer selection. Two configurations with the same
// identity are considered unchanged, which lets the daemon skip
// redundant swaps on spurious reloads.
func (c WallpaperConfig) Identity() string {
	switch c.ActiveKind {
	case WallpaperVideo:
		return "video:" + c.VideoPath
	case WallpaperImage:
		return "image:" + c.ImagePath
	default:
		return "solid:" + c.SolidColor
	}
}

// Default returns the configuration used when no config file exists
func Default() WallpaperConfig {
	return WallpaperConfig{
		ActiveKind: WallpaperVideo,
		SolidColor: DefaultSolidColor,
	}
}
