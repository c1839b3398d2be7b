package component

import "image/color"

// TileRef is one tileset tile drawn in a cell.
type TileRef struct {
	TileID int32
	Src    IVec2
	FlipX  bool
	FlipY  bool
	Alpha  float32
}

// Tile is the drawable part of a grid cell. Stack holds the tiles LDtk
// stacks on the same cell, back to front; Stack[0] is the bottom one.
type Tile struct {
	TilesetUid int32
	Stack      []TileRef
}

var TileComponent = NewComponent[Tile]()

// TileMetadata is the custom data string a tileset attaches to a tile. Tiles
// without custom data have no TileMetadata at all.
type TileMetadata struct {
	Data string
}

var TileMetadataComponent = NewComponent[TileMetadata]()

// TileEnumTags lists the enum values a tileset tags a tile with.
type TileEnumTags struct {
	Tags          []string
	SourceEnumUid *int32
}

var TileEnumTagsComponent = NewComponent[TileEnumTags]()

// TileColor is the flat colour of an IntGrid cell drawn without a tileset.
type TileColor struct {
	Color color.RGBA
}

var TileColorComponent = NewComponent[TileColor]()
