package render

import "github.com/hajimehoshi/ebiten/v2"

var (
	images = map[string]*ebiten.Image{}
	failed = map[string]error{}
)

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	delete(failed, key)
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// ForgetImages drops every cached image and load failure. Called after the
// project reloads so edited tilesets are read again.
func ForgetImages() {
	clear(images)
	clear(failed)
}
