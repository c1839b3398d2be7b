package component

import (
	"slices"

	"github.com/milk9111/ldtkworld/ldtk"
)

// LayerMetadata is a snapshot of a layer instance without its tiles and
// entities. It is taken once at spawn; a changed layer means a respawn.
type LayerMetadata struct {
	CHei               int32
	CWid               int32
	GridSize           int32
	Identifier         string
	Opacity            float32
	PxTotalOffsetX     int32
	PxTotalOffsetY     int32
	TilesetDefUid      *int32
	TilesetRelPath     *string
	Type               ldtk.LayerType
	Iid                string
	LayerDefUid        int32
	LevelID            int32
	OptionalRules      []int32
	OverrideTilesetUid *int32
	PxOffsetX          int32
	PxOffsetY          int32
	Seed               int64
	Visible            bool
}

var LayerMetadataComponent = NewComponent[LayerMetadata]()

func LayerMetadataFrom(li *ldtk.LayerInstance) LayerMetadata {
	return LayerMetadata{
		CHei:               li.CHei,
		CWid:               li.CWid,
		GridSize:           li.GridSize,
		Identifier:         li.Identifier,
		Opacity:            li.Opacity,
		PxTotalOffsetX:     li.PxTotalOffsetX,
		PxTotalOffsetY:     li.PxTotalOffsetY,
		TilesetDefUid:      copyPtr(li.TilesetDefUid),
		TilesetRelPath:     copyPtr(li.TilesetRelPath),
		Type:               li.Type,
		Iid:                li.Iid,
		LayerDefUid:        li.LayerDefUid,
		LevelID:            li.LevelID,
		OptionalRules:      slices.Clone(li.OptionalRules),
		OverrideTilesetUid: copyPtr(li.OverrideTilesetUid),
		PxOffsetX:          li.PxOffsetX,
		PxOffsetY:          li.PxOffsetY,
		Seed:               li.Seed,
		Visible:            li.Visible,
	}
}

// TilesetUid is the tileset the layer draws with, honouring the override.
func (m LayerMetadata) TilesetUid() (int32, bool) {
	if m.OverrideTilesetUid != nil {
		return *m.OverrideTilesetUid, true
	}
	if m.TilesetDefUid != nil {
		return *m.TilesetDefUid, true
	}
	return 0, false
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
