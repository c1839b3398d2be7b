package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ldtkworld/assets"
)

var errEmptyPath = errors.New("render: empty image path")

// ImageKey is the cache key of rel as seen from the project directory dir.
func ImageKey(dir, rel string) string {
	if rel == "" {
		return ""
	}
	if dir == "" || filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(dir, rel)
}

// LoadImage loads a project-relative image, from disk or the embedded assets,
// and caches it. A failed load is remembered so it is not retried every frame.
func LoadImage(dir, rel string) (*ebiten.Image, error) {
	key := ImageKey(dir, rel)
	if key == "" {
		return nil, errEmptyPath
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	if err, ok := failed[key]; ok {
		return nil, err
	}
	img, err := loadImageFromFSOrAssets(dir, rel)
	if err != nil {
		failed[key] = err
		return nil, err
	}
	RegisterImage(key, img)
	return img, nil
}

func loadImageFromFSOrAssets(dir, rel string) (*ebiten.Image, error) {
	if dir != "" {
		if b, err := os.ReadFile(ImageKey(dir, rel)); err == nil {
			im, _, err := image.Decode(bytes.NewReader(b))
			if err != nil {
				return nil, fmt.Errorf("decode %s: %w", rel, err)
			}
			return ebiten.NewImageFromImage(im), nil
		}
	}
	img, err := assets.LoadImage(rel)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", rel, err)
	}
	return img, nil
}
