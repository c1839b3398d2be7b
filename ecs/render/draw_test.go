package render

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/milk9111/ldtkworld/ecs/component"
)

func TestCameraToScreen(t *testing.T) {
	cam := Camera{X: 10, Y: 20, Scale: 2}
	tests := []struct {
		name   string
		p      component.Vec2
		wx, wy float64
	}{
		{"centre", component.Vec2{X: 10, Y: 20}, 50, 40},
		{"right", component.Vec2{X: 15, Y: 20}, 60, 40},
		{"up_is_screen_up", component.Vec2{X: 10, Y: 25}, 50, 30},
		{"down_is_screen_down", component.Vec2{X: 10, Y: 15}, 50, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := cam.ToScreen(tc.p, 100, 80)
			if x != tc.wx || y != tc.wy {
				t.Fatalf("ToScreen(%v) = (%v,%v), want (%v,%v)", tc.p, x, y, tc.wx, tc.wy)
			}
		})
	}
}

func TestWithAlpha(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	if got := withAlpha(c, 1); got != c {
		t.Fatalf("opaque changed colour: %v", got)
	}
	if got := withAlpha(c, 0); got != (color.RGBA{}) {
		t.Fatalf("transparent = %v", got)
	}
	if got := withAlpha(c, 2); got != c {
		t.Fatalf("alpha should clamp to 1, got %v", got)
	}
	if got := withAlpha(c, 0.5); got.A != 127 || got.R != 100 {
		t.Fatalf("half alpha = %v", got)
	}
}

func TestImageKey(t *testing.T) {
	tests := []struct {
		dir, rel, want string
	}{
		{"", "", ""},
		{"proj", "", ""},
		{"", "tiles/a.png", filepath.Join("tiles", "a.png")},
		{"proj", "tiles/a.png", filepath.Join("proj", "tiles", "a.png")},
		{"proj", "../shared/a.png", filepath.Join("shared", "a.png")},
		{"proj", "/abs/a.png", "/abs/a.png"},
	}
	for _, tc := range tests {
		if got := ImageKey(tc.dir, tc.rel); got != tc.want {
			t.Fatalf("ImageKey(%q, %q) = %q, want %q", tc.dir, tc.rel, got, tc.want)
		}
	}
}

func TestLoadImageRemembersFailures(t *testing.T) {
	t.Cleanup(ForgetImages)
	dir := t.TempDir()
	if _, err := LoadImage(dir, "missing.png"); err == nil {
		t.Fatal("expected error for a missing image")
	}
	if _, ok := failed[ImageKey(dir, "missing.png")]; !ok {
		t.Fatal("failure not cached")
	}
	if _, err := LoadImage(dir, ""); err == nil {
		t.Fatal("expected error for an empty path")
	}
}
