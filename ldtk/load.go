package ldtk

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

var (
	ErrNoLevels      = errors.New("ldtk: project has no levels")
	ErrExternalLevel = errors.New("ldtk: external level")
	ErrNotReady      = errors.New("ldtk: project not loaded yet")
)

// legacyNamespace seeds the iids generated for files written before LDtk
// stored them, so the same file always yields the same iids.
var legacyNamespace = uuid.MustParse("5d0c2f3a-1c1e-4b53-9f0e-4c6c1d0a9b11")

// Load reads an .ldtk file and any external .ldtkl level files it references.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a project. dir resolves externalRelPath entries; an empty dir
// leaves external levels without layers.
func Parse(data []byte, dir string) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	if len(p.Levels) == 0 && len(p.Worlds) == 0 {
		return nil, ErrNoLevels
	}
	for i := range p.Levels {
		if err := resolveLevel(&p.Levels[i], dir); err != nil {
			return nil, err
		}
	}
	for w := range p.Worlds {
		for i := range p.Worlds[w].Levels {
			if err := resolveLevel(&p.Worlds[w].Levels[i], dir); err != nil {
				return nil, err
			}
		}
	}
	p.backfillIids()
	p.buildIndex()
	return &p, nil
}

func resolveLevel(lvl *Level, dir string) error {
	if lvl.LayerInstances != nil || lvl.ExternalRelPath == nil || dir == "" {
		return nil
	}
	path := filepath.Join(dir, filepath.FromSlash(*lvl.ExternalRelPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrExternalLevel, *lvl.ExternalRelPath, err)
	}
	var ext Level
	if err := json.Unmarshal(data, &ext); err != nil {
		return fmt.Errorf("%w %q: unmarshal: %w", ErrExternalLevel, *lvl.ExternalRelPath, err)
	}
	lvl.LayerInstances = ext.LayerInstances
	if lvl.FieldInstances == nil {
		lvl.FieldInstances = ext.FieldInstances
	}
	return nil
}

func (p *Project) backfillIids() {
	fill := func(levels []Level) {
		for i := range levels {
			lvl := &levels[i]
			if lvl.Iid == "" {
				lvl.Iid = legacyIid("level", lvl.Identifier, lvl.Uid)
			}
			for j := range lvl.LayerInstances {
				layer := &lvl.LayerInstances[j]
				if layer.Iid == "" {
					layer.Iid = legacyIid(lvl.Iid+"/layer", layer.Identifier, int32(j))
				}
				for k := range layer.EntityInstances {
					ent := &layer.EntityInstances[k]
					if ent.Iid == "" {
						ent.Iid = legacyIid(layer.Iid+"/entity", ent.Identifier, int32(k))
					}
				}
			}
		}
	}
	fill(p.Levels)
	for w := range p.Worlds {
		fill(p.Worlds[w].Levels)
	}
}

func legacyIid(scope, identifier string, n int32) string {
	return uuid.NewSHA1(legacyNamespace, fmt.Appendf(nil, "%s:%s:%d", scope, identifier, n)).String()
}
