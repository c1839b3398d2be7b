// Package ldtk holds the immutable, already-parsed description of an LDtk
// project. Nothing in this package touches the scene graph; spawning reads
// these values and never writes them back.
package ldtk

import "encoding/json"

// LayerType is the `__type` of a layer instance.
type LayerType string

const (
	LayerIntGrid   LayerType = "IntGrid"
	LayerEntities  LayerType = "Entities"
	LayerTiles     LayerType = "Tiles"
	LayerAutoLayer LayerType = "AutoLayer"
)

// Project is the root of an .ldtk file.
type Project struct {
	Iid             string      `json:"iid"`
	JSONVersion     string      `json:"jsonVersion"`
	BgColor         string      `json:"bgColor"`
	DefaultGridSize int32       `json:"defaultGridSize"`
	WorldLayout     string      `json:"worldLayout"`
	ExternalLevels  bool        `json:"externalLevels"`
	Defs            Definitions `json:"defs"`
	Levels          []Level     `json:"levels"`
	Worlds          []World     `json:"worlds"`

	idx *index
}

// World is one entry of the multi-world `worlds` array.
type World struct {
	Iid         string  `json:"iid"`
	Identifier  string  `json:"identifier"`
	WorldLayout string  `json:"worldLayout"`
	Levels      []Level `json:"levels"`
}

type Level struct {
	Iid             string          `json:"iid"`
	Uid             int32           `json:"uid"`
	Identifier      string          `json:"identifier"`
	WorldX          int32           `json:"worldX"`
	WorldY          int32           `json:"worldY"`
	WorldDepth      int32           `json:"worldDepth"`
	PxWid           int32           `json:"pxWid"`
	PxHei           int32           `json:"pxHei"`
	BgColor         string          `json:"__bgColor"`
	BgRelPath       *string         `json:"bgRelPath"`
	ExternalRelPath *string         `json:"externalRelPath"`
	FieldInstances  []FieldInstance `json:"fieldInstances"`
	Neighbours      []Neighbour     `json:"__neighbours"`
	// LayerInstances is ordered top-most first, as LDtk writes it.
	LayerInstances []LayerInstance `json:"layerInstances"`
}

type Neighbour struct {
	LevelIid string `json:"levelIid"`
	Dir      string `json:"dir"`
}

type LayerInstance struct {
	Identifier         string           `json:"__identifier"`
	Type               LayerType        `json:"__type"`
	CWid               int32            `json:"__cWid"`
	CHei               int32            `json:"__cHei"`
	GridSize           int32            `json:"__gridSize"`
	Opacity            float32          `json:"__opacity"`
	PxTotalOffsetX     int32            `json:"__pxTotalOffsetX"`
	PxTotalOffsetY     int32            `json:"__pxTotalOffsetY"`
	TilesetDefUid      *int32           `json:"__tilesetDefUid"`
	TilesetRelPath     *string          `json:"__tilesetRelPath"`
	Iid                string           `json:"iid"`
	LevelID            int32            `json:"levelId"`
	LayerDefUid        int32            `json:"layerDefUid"`
	OptionalRules      []int32          `json:"optionalRules"`
	OverrideTilesetUid *int32           `json:"overrideTilesetUid"`
	PxOffsetX          int32            `json:"pxOffsetX"`
	PxOffsetY          int32            `json:"pxOffsetY"`
	Seed               int64            `json:"seed"`
	Visible            bool             `json:"visible"`
	IntGridCsv         []int32          `json:"intGridCsv"`
	GridTiles          []TileInstance   `json:"gridTiles"`
	AutoLayerTiles     []TileInstance   `json:"autoLayerTiles"`
	EntityInstances    []EntityInstance `json:"entityInstances"`
}

// Tiles returns the tiles drawn by the layer, whichever list LDtk put them in.
func (l *LayerInstance) Tiles() []TileInstance {
	if l.Type == LayerTiles {
		return l.GridTiles
	}
	return l.AutoLayerTiles
}

// TileInstance is one placed tile. Px is the top-left pixel inside the layer.
type TileInstance struct {
	Px  [2]int32 `json:"px"`
	Src [2]int32 `json:"src"`
	F   int32    `json:"f"`
	T   int32    `json:"t"`
	A   *float32 `json:"a"`
}

// FlipX reports the horizontal flip bit.
func (t TileInstance) FlipX() bool { return t.F&1 != 0 }

// FlipY reports the vertical flip bit.
func (t TileInstance) FlipY() bool { return t.F&2 != 0 }

// Alpha defaults to opaque for files written before the field existed.
func (t TileInstance) Alpha() float32 {
	if t.A == nil {
		return 1
	}
	return *t.A
}

type EntityInstance struct {
	Identifier     string          `json:"__identifier"`
	Iid            string          `json:"iid"`
	Grid           [2]int32        `json:"__grid"`
	Pivot          [2]float32      `json:"__pivot"`
	Px             [2]int32        `json:"px"`
	Width          int32           `json:"width"`
	Height         int32           `json:"height"`
	Tags           []string        `json:"__tags"`
	DefUid         int32           `json:"defUid"`
	SmartColor     string          `json:"__smartColor"`
	FieldInstances []FieldInstance `json:"fieldInstances"`
}

// Field returns the named field instance.
func (e *EntityInstance) Field(identifier string) (FieldInstance, bool) {
	for _, f := range e.FieldInstances {
		if f.Identifier == identifier {
			return f, true
		}
	}
	return FieldInstance{}, false
}

// FieldInstance keeps the value raw; decoding it is up to the spawn hook that
// knows the field's meaning.
type FieldInstance struct {
	Identifier string          `json:"__identifier"`
	Type       string          `json:"__type"`
	Value      json.RawMessage `json:"__value"`
}

// Decode unmarshals the raw value into dst.
func (f FieldInstance) Decode(dst any) error {
	if len(f.Value) == 0 {
		return json.Unmarshal([]byte("null"), dst)
	}
	return json.Unmarshal(f.Value, dst)
}

type Definitions struct {
	Layers   []LayerDefinition   `json:"layers"`
	Entities []EntityDefinition  `json:"entities"`
	Tilesets []TilesetDefinition `json:"tilesets"`
	Enums    []EnumDefinition    `json:"enums"`
}

type LayerDefinition struct {
	Uid           int32                    `json:"uid"`
	Identifier    string                   `json:"identifier"`
	Type          LayerType                `json:"__type"`
	GridSize      int32                    `json:"gridSize"`
	IntGridValues []IntGridValueDefinition `json:"intGridValues"`
}

type IntGridValueDefinition struct {
	Value      int32   `json:"value"`
	Identifier *string `json:"identifier"`
	Color      string  `json:"color"`
}

type EntityDefinition struct {
	Uid        int32   `json:"uid"`
	Identifier string  `json:"identifier"`
	Width      int32   `json:"width"`
	Height     int32   `json:"height"`
	Color      string  `json:"color"`
	PivotX     float32 `json:"pivotX"`
	PivotY     float32 `json:"pivotY"`
	TilesetID  *int32  `json:"tilesetId"`
}

type TilesetDefinition struct {
	Uid               int32                `json:"uid"`
	Identifier        string               `json:"identifier"`
	RelPath           *string              `json:"relPath"`
	PxWid             int32                `json:"pxWid"`
	PxHei             int32                `json:"pxHei"`
	TileGridSize      int32                `json:"tileGridSize"`
	Spacing           int32                `json:"spacing"`
	Padding           int32                `json:"padding"`
	CustomData        []TileCustomMetadata `json:"customData"`
	EnumTags          []EnumTagValue       `json:"enumTags"`
	TagsSourceEnumUid *int32               `json:"tagsSourceEnumUid"`
}

type TileCustomMetadata struct {
	TileID int32  `json:"tileId"`
	Data   string `json:"data"`
}

type EnumTagValue struct {
	EnumValueID string  `json:"enumValueId"`
	TileIDs     []int32 `json:"tileIds"`
}

type EnumDefinition struct {
	Uid        int32  `json:"uid"`
	Identifier string `json:"identifier"`
}
