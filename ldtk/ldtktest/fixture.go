// Package ldtktest builds small in-memory projects for tests.
package ldtktest

import "github.com/milk9111/ldtkworld/ldtk"

const (
	GridSize = 16

	CollisionsDefUid = 1
	EntitiesDefUid   = 2
	GroundDefUid     = 3
	TilesetUid       = 10
	TagsEnumUid      = 20

	Level1 = "L1"
	Level2 = "L2"
	Level3 = "L3"

	// PlayerIid is the worldly entity of Level1.
	PlayerIid = "e-42"
)

func ptr[T any](v T) *T { return &v }

// Project returns a fresh project: L1 and L2 side by side at the root, and
// L3 inside a world. Each call returns a new value so tests may mutate it.
//
// L1 (4x2 cells of 16px) has, top to bottom: an Entities layer with the
// Player (PlayerIid) and a coin, an IntGrid layer and a Tiles layer with two
// tiles stacked on one cell.
func Project() *ldtk.Project {
	p := &ldtk.Project{
		Iid:             "project",
		JSONVersion:     "1.5.3",
		BgColor:         "#40465b",
		DefaultGridSize: GridSize,
		WorldLayout:     "Free",
		Defs: ldtk.Definitions{
			Layers: []ldtk.LayerDefinition{
				{
					Uid: CollisionsDefUid, Identifier: "Collisions", Type: ldtk.LayerIntGrid, GridSize: GridSize,
					IntGridValues: []ldtk.IntGridValueDefinition{
						{Value: 1, Identifier: ptr("wall"), Color: "#ff0000"},
						{Value: 2, Identifier: ptr("water"), Color: "#0000ff"},
					},
				},
				{Uid: EntitiesDefUid, Identifier: "Entities", Type: ldtk.LayerEntities, GridSize: GridSize},
				{Uid: GroundDefUid, Identifier: "Ground", Type: ldtk.LayerTiles, GridSize: GridSize},
			},
			Entities: []ldtk.EntityDefinition{
				{Uid: 100, Identifier: "Player", Width: 16, Height: 16, Color: "#00ff00", PivotX: 0.5, PivotY: 1},
				{Uid: 101, Identifier: "Coin", Width: 8, Height: 8, Color: "#ffff00", PivotX: 0.5, PivotY: 0.5},
			},
			Tilesets: []ldtk.TilesetDefinition{
				{
					Uid: TilesetUid, Identifier: "Tiles", RelPath: ptr("tiles.png"),
					PxWid: 64, PxHei: 64, TileGridSize: GridSize,
					CustomData: []ldtk.TileCustomMetadata{{TileID: 5, Data: "solid"}},
					EnumTags: []ldtk.EnumTagValue{
						{EnumValueID: "Grass", TileIDs: []int32{5, 6}},
						{EnumValueID: "Dirt", TileIDs: []int32{7}},
					},
					TagsSourceEnumUid: ptr(int32(TagsEnumUid)),
				},
			},
			Enums: []ldtk.EnumDefinition{{Uid: TagsEnumUid, Identifier: "Surface"}},
		},
		Levels: []ldtk.Level{level1(), level2()},
		Worlds: []ldtk.World{
			{Iid: "W", Identifier: "Overworld", WorldLayout: "Free", Levels: []ldtk.Level{level3()}},
		},
	}
	return p
}

func level1() ldtk.Level {
	return ldtk.Level{
		Iid: Level1, Uid: 0, Identifier: "Level_0",
		WorldX: 0, WorldY: 0, PxWid: 64, PxHei: 32,
		BgColor:    "#223344",
		Neighbours: []ldtk.Neighbour{{LevelIid: Level2, Dir: "e"}},
		LayerInstances: []ldtk.LayerInstance{
			{
				Identifier: "Entities", Type: ldtk.LayerEntities, Iid: "L1-entities",
				CWid: 4, CHei: 2, GridSize: GridSize, Opacity: 1, Visible: true,
				LayerDefUid: EntitiesDefUid, LevelID: 0,
				EntityInstances: []ldtk.EntityInstance{
					{
						Identifier: "Player", Iid: PlayerIid, Grid: [2]int32{1, 0},
						Pivot: [2]float32{0.5, 1}, Px: [2]int32{24, 16}, Width: 16, Height: 16, DefUid: 100,
						FieldInstances: []ldtk.FieldInstance{{Identifier: "lives", Type: "Int", Value: []byte("3")}},
					},
					{
						Identifier: "Coin", Iid: "c-1", Grid: [2]int32{3, 1},
						Pivot: [2]float32{0.5, 0.5}, Px: [2]int32{56, 24}, Width: 8, Height: 8, DefUid: 101,
					},
				},
			},
			{
				Identifier: "Collisions", Type: ldtk.LayerIntGrid, Iid: "L1-collisions",
				CWid: 4, CHei: 2, GridSize: GridSize, Opacity: 1, Visible: true,
				LayerDefUid: CollisionsDefUid, LevelID: 0, Seed: 42,
				IntGridCsv: []int32{
					1, 0, 0, 2,
					1, 1, 0, 0,
				},
			},
			{
				Identifier: "Ground", Type: ldtk.LayerTiles, Iid: "L1-ground",
				CWid: 4, CHei: 2, GridSize: GridSize, Opacity: 0.5, Visible: true,
				PxTotalOffsetX: 2, PxTotalOffsetY: 4,
				TilesetDefUid: ptr(int32(TilesetUid)), TilesetRelPath: ptr("tiles.png"),
				LayerDefUid: GroundDefUid, LevelID: 0, OptionalRules: []int32{7},
				GridTiles: []ldtk.TileInstance{
					{Px: [2]int32{0, 16}, Src: [2]int32{16, 16}, T: 5},
					{Px: [2]int32{16, 16}, Src: [2]int32{32, 16}, T: 6, F: 1},
					{Px: [2]int32{16, 16}, Src: [2]int32{48, 16}, T: 7},
				},
			},
		},
	}
}

func level2() ldtk.Level {
	return ldtk.Level{
		Iid: Level2, Uid: 1, Identifier: "Level_1",
		WorldX: 64, WorldY: 0, PxWid: 32, PxHei: 32,
		Neighbours: []ldtk.Neighbour{{LevelIid: Level1, Dir: "w"}},
		LayerInstances: []ldtk.LayerInstance{
			{
				Identifier: "Entities", Type: ldtk.LayerEntities, Iid: "L2-entities",
				CWid: 2, CHei: 2, GridSize: GridSize, Opacity: 1, Visible: true,
				LayerDefUid: EntitiesDefUid, LevelID: 1,
				EntityInstances: []ldtk.EntityInstance{
					{
						Identifier: "Coin", Iid: "c-2", Grid: [2]int32{0, 0},
						Pivot: [2]float32{0.5, 0.5}, Px: [2]int32{8, 8}, Width: 8, Height: 8, DefUid: 101,
					},
				},
			},
			{
				Identifier: "Collisions", Type: ldtk.LayerIntGrid, Iid: "L2-collisions",
				CWid: 2, CHei: 2, GridSize: GridSize, Opacity: 1, Visible: true,
				LayerDefUid: CollisionsDefUid, LevelID: 1,
				IntGridCsv: []int32{0, 0, 1, 1},
			},
		},
	}
}

func level3() ldtk.Level {
	return ldtk.Level{
		Iid: Level3, Uid: 2, Identifier: "Cave",
		WorldX: 0, WorldY: 64, PxWid: 32, PxHei: 16,
		LayerInstances: []ldtk.LayerInstance{
			{
				Identifier: "Collisions", Type: ldtk.LayerIntGrid, Iid: "L3-collisions",
				CWid: 2, CHei: 1, GridSize: GridSize, Opacity: 1, Visible: true,
				LayerDefUid: CollisionsDefUid, LevelID: 2,
				IntGridCsv: []int32{2, 0},
			},
		},
	}
}

// WithWorldlyCopy adds to L2 an entity claiming PlayerIid, as a broken file
// might.
func WithWorldlyCopy(p *ldtk.Project) *ldtk.Project {
	lvl := &p.Levels[1]
	lvl.LayerInstances[0].EntityInstances = append(lvl.LayerInstances[0].EntityInstances, ldtk.EntityInstance{
		Identifier: "Player", Iid: PlayerIid, Grid: [2]int32{1, 1},
		Pivot: [2]float32{0.5, 1}, Px: [2]int32{24, 32}, Width: 16, Height: 16, DefUid: 100,
	})
	return p
}
