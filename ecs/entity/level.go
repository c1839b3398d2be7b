package entity

import (
	"fmt"
	"slices"

	"golang.org/x/image/colornames"

	"github.com/milk9111/ldtkworld/common"
	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/settings"
)

// Claims records the worldly iids spawned during one reconciliation pass and
// the level that spawned each. Share one Claims across every SpawnLevel call
// of a pass so two levels cannot both spawn the same worldly entity before the
// tracker has seen either.
type Claims map[string]string

type SpawnOptions struct {
	Settings settings.Settings
	Registry *Registry
	Claims   Claims
}

type levelSpawner struct {
	w       *ecs.World
	world   ecs.Entity
	project *ldtk.Project
	level   *ldtk.Level
	opts    SpawnOptions
	tracked *component.WorldlyRegistry
	diags   []Diagnostic
}

// SpawnLevel builds the level node for level under world:
//
//	world -> level -> layer (back to front) -> tile cell | entity
//
// The result depends only on its inputs and the world's worldly registry,
// so spawning the same level into two empty worlds yields the same tree.
// Entities whose iid the registry already tracks are not spawned again.
func SpawnLevel(w *ecs.World, world ecs.Entity, project *ldtk.Project, level *ldtk.Level, opts SpawnOptions) (ecs.Entity, []Diagnostic, error) {
	if !ecs.IsAlive(w, world) {
		return 0, nil, fmt.Errorf("spawn level %s: world %s: %w", level.Iid, world, component.ErrEntityNotAlive)
	}
	if opts.Claims == nil {
		opts.Claims = make(Claims)
	}
	tracked, _ := ecs.Get(w, world, component.WorldlyRegistryComponent.Kind())
	s := &levelSpawner{
		w:       w,
		world:   world,
		project: project,
		level:   level,
		opts:    opts,
		tracked: tracked,
	}

	lvl := ecs.CreateEntity(w)
	if err := s.addLevelComponents(lvl); err != nil {
		ecs.DespawnRecursive(w, lvl)
		return 0, s.diags, err
	}

	z := 0
	for i := len(level.LayerInstances) - 1; i >= 0; i-- {
		if err := s.spawnLayer(lvl, &level.LayerInstances[i], z); err != nil {
			ecs.DespawnRecursive(w, lvl)
			return 0, s.diags, err
		}
		z++
	}
	return lvl, s.diags, nil
}

// DespawnLevel destroys a level node and everything still under it. Worldly
// entities already moved to the world are not under it and survive.
func DespawnLevel(w *ecs.World, lvl ecs.Entity) int {
	return ecs.DespawnRecursive(w, lvl)
}

func (s *levelSpawner) addLevelComponents(lvl ecs.Entity) error {
	if err := ecs.Add(s.w, lvl, component.LevelComponent.Kind(), &component.Level{
		Iid:        s.level.Iid,
		Identifier: s.level.Identifier,
		Uid:        s.level.Uid,
	}); err != nil {
		return err
	}

	var at component.Vec2
	if s.opts.Settings.UseWorldTranslation() {
		at = component.Vec2{X: float64(s.level.WorldX), Y: float64(-s.level.WorldY - s.level.PxHei)}
	}
	tf := component.TransformAt(at, float64(s.level.WorldDepth))
	if err := ecs.Add(s.w, lvl, component.TransformComponent.Kind(), &tf); err != nil {
		return err
	}

	if s.opts.Settings.LevelBackground == settings.BackgroundRendered {
		bg := component.LevelBackground{Width: s.level.PxWid, Height: s.level.PxHei}
		if c, ok := common.ParseHexColor(s.level.BgColor); ok {
			bg.Color = c
		} else if c, ok := common.ParseHexColor(s.project.BgColor); ok {
			bg.Color = c
		}
		if s.level.BgRelPath != nil {
			bg.ImagePath = *s.level.BgRelPath
		}
		if err := ecs.Add(s.w, lvl, component.LevelBackgroundComponent.Kind(), &bg); err != nil {
			return err
		}
	}

	return ecs.SetParent(s.w, lvl, s.world)
}

func (s *levelSpawner) spawnLayer(lvl ecs.Entity, li *ldtk.LayerInstance, z int) error {
	layer := ecs.CreateEntity(s.w)
	meta := component.LayerMetadataFrom(li)
	if err := ecs.Add(s.w, layer, component.LayerMetadataComponent.Kind(), &meta); err != nil {
		return err
	}
	if err := ecs.Add(s.w, layer, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: z}); err != nil {
		return err
	}
	tf := component.TransformAt(component.Vec2{X: float64(li.PxTotalOffsetX), Y: float64(-li.PxTotalOffsetY)}, float64(z))
	if err := ecs.Add(s.w, layer, component.TransformComponent.Kind(), &tf); err != nil {
		return err
	}
	if err := ecs.SetParent(s.w, layer, lvl); err != nil {
		return err
	}

	if li.Type == ldtk.LayerEntities {
		return s.spawnEntities(layer, li)
	}
	return s.spawnCells(layer, li)
}

type cell struct {
	value int32
	tiles []ldtk.TileInstance
}

func (s *levelSpawner) spawnCells(layer ecs.Entity, li *ldtk.LayerInstance) error {
	cells := make(map[component.GridCoords]*cell)
	var order []component.GridCoords
	at := func(g component.GridCoords) *cell {
		c, ok := cells[g]
		if !ok {
			c = &cell{}
			cells[g] = c
			order = append(order, g)
		}
		return c
	}

	skipped := 0
	if li.Type == ldtk.LayerIntGrid {
		for i, v := range li.IntGridCsv {
			if v == 0 {
				continue
			}
			if li.CWid <= 0 {
				skipped++
				continue
			}
			g := component.GridCoordsFromLdtk(component.IVec2{X: int32(i) % li.CWid, Y: int32(i) / li.CWid}, li.CHei)
			if !g.InBounds(li.CWid, li.CHei) {
				skipped++
				continue
			}
			at(g).value = v
		}
	}
	for _, t := range li.Tiles() {
		g := component.GridCoordsFromLdtkPixel(component.IVec2{X: t.Px[0], Y: t.Px[1]}, li.CHei, li.GridSize)
		if !g.InBounds(li.CWid, li.CHei) {
			skipped++
			continue
		}
		c := at(g)
		c.tiles = append(c.tiles, t)
	}
	if skipped > 0 {
		s.report(DiagnosticOutOfBounds, li.Iid, fmt.Sprintf("layer %s: skipped %d cells outside %dx%d", li.Identifier, skipped, li.CWid, li.CHei))
	}

	var tileset *ldtk.TilesetDefinition
	meta := component.LayerMetadataFrom(li)
	tilesetUid, hasTileset := meta.TilesetUid()
	if hasTileset {
		tileset, _ = s.project.Tileset(tilesetUid)
	}
	layerDef, _ := s.project.LayerDef(li.LayerDefUid)
	colorful := s.opts.Settings.IntGridRendering == settings.IntGridColorful
	size := component.IVec2{X: li.GridSize, Y: li.GridSize}

	for _, g := range order {
		c := cells[g]
		e := ecs.CreateEntity(s.w)
		coords := g
		if err := ecs.Add(s.w, e, component.GridCoordsComponent.Kind(), &coords); err != nil {
			return err
		}
		tf := component.TransformAt(component.GridCoordsToTranslationCentered(g, size), 0)
		if err := ecs.Add(s.w, e, component.TransformComponent.Kind(), &tf); err != nil {
			return err
		}
		if err := ecs.SetParent(s.w, e, layer); err != nil {
			return err
		}

		if c.value != 0 {
			if err := ecs.Add(s.w, e, component.IntGridCellComponent.Kind(), &component.IntGridCell{Value: c.value}); err != nil {
				return err
			}
			if colorful && len(c.tiles) == 0 {
				tc := component.TileColor{Color: colornames.Magenta}
				if def, ok := layerDef.IntGridValue(c.value); ok {
					if parsed, ok := common.ParseHexColor(def.Color); ok {
						tc.Color = parsed
					}
				}
				if err := ecs.Add(s.w, e, component.TileColorComponent.Kind(), &tc); err != nil {
					return err
				}
			}
		}

		if len(c.tiles) > 0 && hasTileset {
			if err := s.addTile(e, tilesetUid, tileset, c.tiles); err != nil {
				return err
			}
		}

		if c.value != 0 {
			hook := s.opts.Registry.intCellHook(li.Identifier, c.value)
			if hook == nil {
				continue
			}
			info := IntCellInfo{Project: s.project, Level: s.level, Layer: li, Cell: component.IntGridCell{Value: c.value}, Coords: g}
			if err := hook(s.w, e, info); err != nil {
				ecs.DespawnRecursive(s.w, e)
				s.report(DiagnosticHookFailed, li.Iid, fmt.Sprintf("int cell %d at (%d,%d): %v", c.value, g.X, g.Y, err))
			}
		}
	}
	return nil
}

func (s *levelSpawner) addTile(e ecs.Entity, tilesetUid int32, tileset *ldtk.TilesetDefinition, tiles []ldtk.TileInstance) error {
	tile := component.Tile{TilesetUid: tilesetUid, Stack: make([]component.TileRef, 0, len(tiles))}
	var (
		metadata *component.TileMetadata
		tags     []string
	)
	for _, t := range tiles {
		tile.Stack = append(tile.Stack, component.TileRef{
			TileID: t.T,
			Src:    component.IVec2{X: t.Src[0], Y: t.Src[1]},
			FlipX:  t.FlipX(),
			FlipY:  t.FlipY(),
			Alpha:  t.Alpha(),
		})
		if metadata == nil {
			if data, ok := tileset.TileMetadata(t.T); ok {
				metadata = &component.TileMetadata{Data: data}
			}
		}
		for _, tag := range tileset.TileEnumTags(t.T) {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}
	if err := ecs.Add(s.w, e, component.TileComponent.Kind(), &tile); err != nil {
		return err
	}
	if metadata != nil {
		if err := ecs.Add(s.w, e, component.TileMetadataComponent.Kind(), metadata); err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		enumTags := component.TileEnumTags{Tags: tags}
		if tileset != nil && tileset.TagsSourceEnumUid != nil {
			uid := *tileset.TagsSourceEnumUid
			enumTags.SourceEnumUid = &uid
		}
		if err := ecs.Add(s.w, e, component.TileEnumTagsComponent.Kind(), &enumTags); err != nil {
			return err
		}
	}
	return nil
}

func (s *levelSpawner) spawnEntities(layer ecs.Entity, li *ldtk.LayerInstance) error {
	pxHei := li.CHei * li.GridSize
	for i := range li.EntityInstances {
		inst := &li.EntityInstances[i]
		if s.taken(inst.Iid) {
			continue
		}

		e := ecs.CreateEntity(s.w)
		translation := component.TranslationFromLdtkPixelPivoted(
			component.IVec2{X: inst.Px[0], Y: inst.Px[1]},
			pxHei,
			component.IVec2{X: inst.Width, Y: inst.Height},
			component.Vec2{X: float64(inst.Pivot[0]), Y: float64(inst.Pivot[1])},
		)
		tf := component.TransformAt(translation, 0)
		if err := ecs.Add(s.w, e, component.TransformComponent.Kind(), &tf); err != nil {
			return err
		}
		if err := ecs.SetParent(s.w, e, layer); err != nil {
			return err
		}

		hook := s.opts.Registry.entityHook(li.Identifier, inst.Identifier)
		info := EntityInfo{Project: s.project, Level: s.level, Layer: li, Instance: inst}
		if err := hook(s.w, e, info); err != nil {
			ecs.DespawnRecursive(s.w, e)
			s.report(DiagnosticHookFailed, inst.Iid, fmt.Sprintf("entity %s: %v", inst.Identifier, err))
			continue
		}

		if g, ok := ecs.Get(s.w, e, component.GridCoordsComponent.Kind()); ok && !g.InBounds(li.CWid, li.CHei) {
			clamped := g.Clamp(li.CWid, li.CHei)
			s.report(DiagnosticOutOfBounds, inst.Iid, fmt.Sprintf("entity %s at (%d,%d) clamped to (%d,%d)", inst.Identifier, g.X, g.Y, clamped.X, clamped.Y))
			*g = clamped
		}

		if worldly, ok := ecs.Get(s.w, e, component.WorldlyComponent.Kind()); ok {
			if worldly.EntityIid != inst.Iid && s.taken(worldly.EntityIid) {
				ecs.DespawnRecursive(s.w, e)
				continue
			}
			s.opts.Claims[worldly.EntityIid] = s.level.Iid
		}
	}
	return nil
}

// taken reports whether a live or already-claimed worldly entity owns iid.
// Re-entering the level that spawned it is the normal case and stays quiet;
// any other level asking for the same iid is a collision.
func (s *levelSpawner) taken(iid string) bool {
	if entry, ok := s.tracked.Lookup(iid); ok && ecs.IsAlive(s.w, ecs.Entity(entry.Entity)) {
		if entry.LevelIid != s.level.Iid {
			s.report(DiagnosticDuplicateWorldly, iid, "already spawned by level "+entry.LevelIid)
		}
		return true
	}
	if owner, ok := s.opts.Claims[iid]; ok {
		s.report(DiagnosticDuplicateWorldly, iid, "already claimed by level "+owner)
		return true
	}
	return false
}

func (s *levelSpawner) report(kind DiagnosticKind, iid, msg string) {
	s.diags = append(s.diags, Diagnostic{Kind: kind, LevelIid: s.level.Iid, Iid: iid, Message: msg})
}
