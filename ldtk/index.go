package ldtk

type index struct {
	levels     []*Level
	byIid      map[string]*Level
	byIdent    map[string]*Level
	byUid      map[int32]*Level
	layerDefs  map[int32]*LayerDefinition
	tilesets   map[int32]*TilesetDefinition
	entityDefs map[string]*EntityDefinition
}

func (p *Project) buildIndex() {
	idx := &index{
		byIid:      make(map[string]*Level),
		byIdent:    make(map[string]*Level),
		byUid:      make(map[int32]*Level),
		layerDefs:  make(map[int32]*LayerDefinition),
		tilesets:   make(map[int32]*TilesetDefinition),
		entityDefs: make(map[string]*EntityDefinition),
	}
	add := func(levels []Level) {
		for i := range levels {
			lvl := &levels[i]
			idx.levels = append(idx.levels, lvl)
			idx.byIid[lvl.Iid] = lvl
			if _, dup := idx.byIdent[lvl.Identifier]; !dup {
				idx.byIdent[lvl.Identifier] = lvl
			}
			idx.byUid[lvl.Uid] = lvl
		}
	}
	add(p.Levels)
	for i := range p.Worlds {
		add(p.Worlds[i].Levels)
	}
	for i := range p.Defs.Layers {
		idx.layerDefs[p.Defs.Layers[i].Uid] = &p.Defs.Layers[i]
	}
	for i := range p.Defs.Tilesets {
		idx.tilesets[p.Defs.Tilesets[i].Uid] = &p.Defs.Tilesets[i]
	}
	for i := range p.Defs.Entities {
		idx.entityDefs[p.Defs.Entities[i].Identifier] = &p.Defs.Entities[i]
	}
	p.idx = idx
}

func (p *Project) index() *index {
	if p.idx == nil {
		p.buildIndex()
	}
	return p.idx
}

// AllLevels returns every level of the project, root levels first and then
// each world's levels, in file order.
func (p *Project) AllLevels() []*Level {
	if p == nil {
		return nil
	}
	return append([]*Level(nil), p.index().levels...)
}

func (p *Project) LevelByIid(iid string) (*Level, bool) {
	if p == nil {
		return nil, false
	}
	lvl, ok := p.index().byIid[iid]
	return lvl, ok
}

// LevelByIdentifier returns the first level carrying identifier.
func (p *Project) LevelByIdentifier(identifier string) (*Level, bool) {
	if p == nil {
		return nil, false
	}
	lvl, ok := p.index().byIdent[identifier]
	return lvl, ok
}

func (p *Project) LevelByUid(uid int32) (*Level, bool) {
	if p == nil {
		return nil, false
	}
	lvl, ok := p.index().byUid[uid]
	return lvl, ok
}

// LevelByIndex indexes into AllLevels.
func (p *Project) LevelByIndex(i int) (*Level, bool) {
	if p == nil {
		return nil, false
	}
	levels := p.index().levels
	if i < 0 || i >= len(levels) {
		return nil, false
	}
	return levels[i], true
}

func (p *Project) LayerDef(uid int32) (*LayerDefinition, bool) {
	if p == nil {
		return nil, false
	}
	def, ok := p.index().layerDefs[uid]
	return def, ok
}

func (p *Project) Tileset(uid int32) (*TilesetDefinition, bool) {
	if p == nil {
		return nil, false
	}
	def, ok := p.index().tilesets[uid]
	return def, ok
}

func (p *Project) EntityDef(identifier string) (*EntityDefinition, bool) {
	if p == nil {
		return nil, false
	}
	def, ok := p.index().entityDefs[identifier]
	return def, ok
}

// IntGridValue returns the definition of value on the layer definition.
func (d *LayerDefinition) IntGridValue(value int32) (IntGridValueDefinition, bool) {
	if d == nil {
		return IntGridValueDefinition{}, false
	}
	for _, v := range d.IntGridValues {
		if v.Value == value {
			return v, true
		}
	}
	return IntGridValueDefinition{}, false
}

// TileMetadata returns the custom data string of tileID.
func (t *TilesetDefinition) TileMetadata(tileID int32) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, cd := range t.CustomData {
		if cd.TileID == tileID {
			return cd.Data, true
		}
	}
	return "", false
}

// TileEnumTags returns the enum values tagging tileID, in definition order.
func (t *TilesetDefinition) TileEnumTags(tileID int32) []string {
	if t == nil {
		return nil
	}
	var tags []string
	for _, et := range t.EnumTags {
		for _, id := range et.TileIDs {
			if id == tileID {
				tags = append(tags, et.EnumValueID)
				break
			}
		}
	}
	return tags
}
