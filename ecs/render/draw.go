package render

import (
	"cmp"
	"image"
	"image/color"
	"path/filepath"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/ldtkworld/common"
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ldtk"
	"golang.org/x/image/colornames"
)

// Camera maps scene space, Y up, onto the screen, Y down. X and Y are the
// scene point drawn at the centre of the screen.
type Camera struct {
	X     float64
	Y     float64
	Scale float64
}

// ToScreen returns the screen position of scene point p.
func (c Camera) ToScreen(p component.Vec2, screenW, screenH int) (float64, float64) {
	return (p.X-c.X)*c.Scale + float64(screenW)/2, float64(screenH)/2 - (p.Y-c.Y)*c.Scale
}

// Renderer draws a world node and everything spawned under it.
type Renderer struct {
	Debug bool
}

type frame struct {
	screen  *ebiten.Image
	sw, sh  int
	w       *ecs.World
	cam     Camera
	dir     string
	project *ldtk.Project
}

// Draw paints world's levels back to front, then its worldly entities.
func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, world ecs.Entity, cam Camera) {
	wc, ok := ecs.Get(w, world, component.WorldComponent.Kind())
	if !ok {
		return
	}
	b := screen.Bounds()
	f := &frame{screen: screen, sw: b.Dx(), sh: b.Dy(), w: w, cam: cam}
	f.project, _ = wc.Project.Project()
	if path := wc.Project.Path(); path != "" {
		f.dir = filepath.Dir(path)
	}

	root := globalOrigin(w, world)
	children := ecs.Children(w, world)
	slices.SortStableFunc(children, func(a, b ecs.Entity) int {
		return cmp.Compare(drawRank(w, a), drawRank(w, b))
	})
	for _, child := range children {
		r.drawNode(f, child, root, nil)
	}
}

// drawRank puts levels first, by depth, and loose nodes on top of them.
func drawRank(w *ecs.World, e ecs.Entity) float64 {
	if !ecs.Has(w, e, component.LevelComponent.Kind()) {
		return 1 << 20
	}
	if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return tf.Z
	}
	return 0
}

func globalOrigin(w *ecs.World, e ecs.Entity) component.Vec2 {
	var pos component.Vec2
	for _, n := range ecs.Ancestors(w, e) {
		if tf, ok := ecs.Get(w, n, component.TransformComponent.Kind()); ok {
			pos = pos.Add(component.Vec2{X: tf.X, Y: tf.Y})
		}
	}
	if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = pos.Add(component.Vec2{X: tf.X, Y: tf.Y})
	}
	return pos
}

func (r *Renderer) drawNode(f *frame, e ecs.Entity, parent component.Vec2, layer *component.LayerMetadata) {
	pos := parent
	if tf, ok := ecs.Get(f.w, e, component.TransformComponent.Kind()); ok {
		pos = pos.Add(component.Vec2{X: tf.X, Y: tf.Y})
	}

	if bg, ok := ecs.Get(f.w, e, component.LevelBackgroundComponent.Kind()); ok {
		r.drawBackground(f, bg, pos)
	}
	if meta, ok := ecs.Get(f.w, e, component.LayerMetadataComponent.Kind()); ok {
		if !meta.Visible {
			return
		}
		layer = meta
	}
	if layer != nil {
		if tile, ok := ecs.Get(f.w, e, component.TileComponent.Kind()); ok {
			r.drawTile(f, tile, pos, layer)
		}
		if tc, ok := ecs.Get(f.w, e, component.TileColorComponent.Kind()); ok {
			size := float64(layer.GridSize)
			f.fillRect(pos, size, size, withAlpha(tc.Color, layer.Opacity))
		}
	}
	if inst, ok := ecs.Get(f.w, e, component.EntityInstanceComponent.Kind()); ok {
		r.drawEntity(f, inst, pos)
	}

	children := ecs.Children(f.w, e)
	slices.SortStableFunc(children, func(a, b ecs.Entity) int {
		return cmp.Compare(renderIndex(f.w, a), renderIndex(f.w, b))
	})
	for _, child := range children {
		r.drawNode(f, child, pos, layer)
	}
}

func renderIndex(w *ecs.World, e ecs.Entity) int {
	if rl, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return rl.Index
	}
	return 0
}

func (r *Renderer) drawBackground(f *frame, bg *component.LevelBackground, origin component.Vec2) {
	width, height := float64(bg.Width), float64(bg.Height)
	centre := origin.Add(component.Vec2{X: width / 2, Y: height / 2})
	f.fillRect(centre, width, height, bg.Color)
	if bg.ImagePath != "" {
		if img, err := LoadImage(f.dir, bg.ImagePath); err == nil {
			x, y := f.cam.ToScreen(component.Vec2{X: origin.X, Y: origin.Y + height}, f.sw, f.sh)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(f.cam.Scale, f.cam.Scale)
			op.GeoM.Translate(x, y)
			f.screen.DrawImage(img, op)
		}
	}
	if r.Debug {
		f.strokeRect(centre, width, height, colornames.White)
	}
}

func (r *Renderer) drawTile(f *frame, tile *component.Tile, centre component.Vec2, layer *component.LayerMetadata) {
	sheet, gridSize, ok := f.tileset(tile.TilesetUid, layer)
	if !ok {
		return
	}
	half := float64(layer.GridSize) / 2
	x, y := f.cam.ToScreen(component.Vec2{X: centre.X - half, Y: centre.Y + half}, f.sw, f.sh)
	scale := float64(layer.GridSize) / float64(gridSize) * f.cam.Scale

	for _, ref := range tile.Stack {
		src := image.Rect(int(ref.Src.X), int(ref.Src.Y), int(ref.Src.X+gridSize), int(ref.Src.Y+gridSize))
		sub, ok := sheet.SubImage(src).(*ebiten.Image)
		if !ok {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		if ref.FlipX {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(gridSize), 0)
		}
		if ref.FlipY {
			op.GeoM.Scale(1, -1)
			op.GeoM.Translate(0, float64(gridSize))
		}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleAlpha(ref.Alpha * layer.Opacity)
		f.screen.DrawImage(sub, op)
	}
}

func (r *Renderer) drawEntity(f *frame, inst *ldtk.EntityInstance, centre component.Vec2) {
	clr := colornames.Magenta
	if c, ok := common.ParseHexColor(inst.SmartColor); ok {
		clr = c
	} else if f.project != nil {
		if def, ok := f.project.EntityDef(inst.Identifier); ok {
			if c, ok := common.ParseHexColor(def.Color); ok {
				clr = c
			}
		}
	}
	width, height := float64(inst.Width), float64(inst.Height)
	f.fillRect(centre, width, height, withAlpha(clr, 0.6))
	f.strokeRect(centre, width, height, clr)
}

// tileset returns the image a layer's tiles are cut from and the size of one
// tile in it.
func (f *frame) tileset(uid int32, layer *component.LayerMetadata) (*ebiten.Image, int32, bool) {
	rel := ""
	gridSize := layer.GridSize
	if f.project != nil {
		if ts, ok := f.project.Tileset(uid); ok {
			if ts.RelPath != nil {
				rel = *ts.RelPath
			}
			if ts.TileGridSize > 0 {
				gridSize = ts.TileGridSize
			}
		}
	}
	if rel == "" && layer.TilesetRelPath != nil {
		rel = *layer.TilesetRelPath
	}
	if rel == "" || gridSize <= 0 {
		return nil, 0, false
	}
	img, err := LoadImage(f.dir, rel)
	if err != nil {
		return nil, 0, false
	}
	return img, gridSize, true
}

func (f *frame) rect(centre component.Vec2, width, height float64) (x, y, w, h float32) {
	sx, sy := f.cam.ToScreen(component.Vec2{X: centre.X - width/2, Y: centre.Y + height/2}, f.sw, f.sh)
	return float32(sx), float32(sy), float32(width * f.cam.Scale), float32(height * f.cam.Scale)
}

func (f *frame) fillRect(centre component.Vec2, width, height float64, clr color.Color) {
	x, y, w, h := f.rect(centre, width, height)
	vector.FillRect(f.screen, x, y, w, h, clr, false)
}

func (f *frame) strokeRect(centre component.Vec2, width, height float64, clr color.Color) {
	x, y, w, h := f.rect(centre, width, height)
	vector.StrokeRect(f.screen, x, y, w, h, 1.0, clr, false)
}

func withAlpha(c color.RGBA, alpha float32) color.RGBA {
	a := common.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}
