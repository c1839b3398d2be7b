package ldtk_test

import (
	"slices"
	"testing"

	"github.com/milk9111/ldtkworld/ldtk"
	"github.com/milk9111/ldtkworld/ldtk/ldtktest"
)

func TestLevelLookups(t *testing.T) {
	p := ldtktest.Project()

	var order []string
	for _, lvl := range p.AllLevels() {
		order = append(order, lvl.Iid)
	}
	if !slices.Equal(order, []string{ldtktest.Level1, ldtktest.Level2, ldtktest.Level3}) {
		t.Fatalf("AllLevels order = %v", order)
	}

	tests := []struct {
		name   string
		lookup func() (*ldtk.Level, bool)
		want   string
	}{
		{"iid", func() (*ldtk.Level, bool) { return p.LevelByIid(ldtktest.Level3) }, ldtktest.Level3},
		{"identifier", func() (*ldtk.Level, bool) { return p.LevelByIdentifier("Level_1") }, ldtktest.Level2},
		{"uid", func() (*ldtk.Level, bool) { return p.LevelByUid(0) }, ldtktest.Level1},
		{"index", func() (*ldtk.Level, bool) { return p.LevelByIndex(1) }, ldtktest.Level2},
		{"missing_iid", func() (*ldtk.Level, bool) { return p.LevelByIid("missing") }, ""},
		{"missing_uid", func() (*ldtk.Level, bool) { return p.LevelByUid(42) }, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl, ok := tc.lookup()
			if tc.want == "" {
				if ok {
					t.Fatalf("expected no level, got %s", lvl.Iid)
				}
				return
			}
			if !ok || lvl.Iid != tc.want {
				t.Fatalf("got %v ok=%v, want %s", lvl, ok, tc.want)
			}
		})
	}

	var nilProject *ldtk.Project
	if _, ok := nilProject.LevelByIid(ldtktest.Level1); ok || nilProject.AllLevels() != nil {
		t.Fatalf("nil project must be empty")
	}
}

func TestDefinitionLookups(t *testing.T) {
	p := ldtktest.Project()

	def, ok := p.LayerDef(ldtktest.CollisionsDefUid)
	if !ok || def.Identifier != "Collisions" {
		t.Fatalf("LayerDef = %v ok=%v", def, ok)
	}
	v, ok := def.IntGridValue(2)
	if !ok || v.Color != "#0000ff" || *v.Identifier != "water" {
		t.Fatalf("IntGridValue(2) = %+v ok=%v", v, ok)
	}
	if _, ok := def.IntGridValue(9); ok {
		t.Fatalf("undefined value reported present")
	}

	ts, ok := p.Tileset(ldtktest.TilesetUid)
	if !ok {
		t.Fatalf("tileset missing")
	}
	if data, ok := ts.TileMetadata(5); !ok || data != "solid" {
		t.Fatalf("TileMetadata(5) = %q ok=%v", data, ok)
	}
	if _, ok := ts.TileMetadata(6); ok {
		t.Fatalf("tile 6 has no metadata")
	}
	if tags := ts.TileEnumTags(5); !slices.Equal(tags, []string{"Grass"}) {
		t.Fatalf("TileEnumTags(5) = %v", tags)
	}
	if tags := ts.TileEnumTags(99); tags != nil {
		t.Fatalf("untagged tile got %v", tags)
	}

	if ent, ok := p.EntityDef("Player"); !ok || ent.PivotY != 1 {
		t.Fatalf("EntityDef(Player) = %+v ok=%v", ent, ok)
	}

	var nilDef *ldtk.LayerDefinition
	if _, ok := nilDef.IntGridValue(1); ok {
		t.Fatalf("nil definition must be empty")
	}
	var nilTileset *ldtk.TilesetDefinition
	if _, ok := nilTileset.TileMetadata(5); ok || nilTileset.TileEnumTags(5) != nil {
		t.Fatalf("nil tileset must be empty")
	}
}

func TestTileInstanceFlags(t *testing.T) {
	alpha := float32(0.25)
	tests := []struct {
		tile         ldtk.TileInstance
		flipX, flipY bool
		alpha        float32
	}{
		{ldtk.TileInstance{F: 0}, false, false, 1},
		{ldtk.TileInstance{F: 1}, true, false, 1},
		{ldtk.TileInstance{F: 2}, false, true, 1},
		{ldtk.TileInstance{F: 3, A: &alpha}, true, true, 0.25},
	}
	for _, tc := range tests {
		if tc.tile.FlipX() != tc.flipX || tc.tile.FlipY() != tc.flipY || tc.tile.Alpha() != tc.alpha {
			t.Fatalf("flags of %+v wrong", tc.tile)
		}
	}

	layer := ldtk.LayerInstance{Type: ldtk.LayerAutoLayer, AutoLayerTiles: []ldtk.TileInstance{{T: 1}}, GridTiles: []ldtk.TileInstance{{T: 2}}}
	if got := layer.Tiles(); len(got) != 1 || got[0].T != 1 {
		t.Fatalf("auto layer should use autoLayerTiles")
	}
	layer.Type = ldtk.LayerTiles
	if got := layer.Tiles(); len(got) != 1 || got[0].T != 2 {
		t.Fatalf("tiles layer should use gridTiles")
	}
}
