package types_test

import (
	"testing"

	"github.com/wallswap/wallswap/pkg/types"
)

func TestWallpaperKind_Valid(t *testing.T) {
	tests := []struct {
		kind  types.WallpaperKind
		valid bool
	}{
		{types.WallpaperVideo, true},
		{types.WallpaperImage, true},
		{types.WallpaperSolid, true},
		{types.WallpaperKind("slideshow"), false},
		{types.WallpaperKind(""), false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.valid {
			t.Errorf("Valid(%q) = %v, want %v", tt.kind, got, tt.valid)
		}
	}
}

func TestWallpaperConfig_Identity(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.WallpaperConfig
		want string
	}{
		{
			name: "video identity uses video path",
			cfg: types.WallpaperConfig{
				ActiveKind: types.WallpaperVideo,
				VideoPath:  "/media/loop.mp4",
				SolidColor: "#000000",
			},
			want: "video:/media/loop.mp4",
		},
		{
			name: "image identity uses image path",
			cfg: types.WallpaperConfig{
				ActiveKind: types.WallpaperImage,
				ImagePath:  "/media/bg.png",
			},
			want: "image:/media/bg.png",
		},
		{
			name: "solid identity uses color",
			cfg: types.WallpaperConfig{
				ActiveKind: types.WallpaperSolid,
				VideoPath:  "/media/loop.mp4",
				SolidColor: "#112233",
			},
			want: "solid:#112233",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Identity(); got != tt.want {
				t.Errorf("Identity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdentity_DistinguishesAssets(t *testing.T) {
	a := types.WallpaperConfig{ActiveKind: types.WallpaperVideo, VideoPath: "/a.mp4"}
	b := types.WallpaperConfig{ActiveKind: types.WallpaperVideo, VideoPath: "/b.mp4"}

	if a.Identity() == b.Identity() {
		t.Error("expected different identities for different video paths")
	}

	// Fields outside the active kind do not affect identity.
	c := a
	c.ImagePath = "/unrelated.png"
	if a.Identity() != c.Identity() {
		t.Error("expected identical identities when only inactive fields differ")
	}
}

func TestDefault(t *testing.T) {
	cfg := types.Default()

	if cfg.ActiveKind != types.WallpaperVideo {
		t.Errorf("expected default kind video, got %s", cfg.ActiveKind)
	}
	if cfg.SolidColor != types.DefaultSolidColor {
		t.Errorf("expected default color %s, got %s", types.DefaultSolidColor, cfg.SolidColor)
	}
}
