package system

import (
	"fmt"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/settings"
)

// LevelSelectionSystem turns a world's LevelSelection into its LevelSet. It
// must run before LevelSetSystem in the same frame. With world translation and
// neighbour loading on, the selected level's neighbours are desired too.
//
// The LevelSet is only rewritten when the resolved set differs, so holding
// the same selection never respawns anything.
type LevelSelectionSystem struct {
	settings settings.Settings
	reported map[ecs.Entity]component.LevelSelection
}

func NewLevelSelectionSystem(s settings.Settings) *LevelSelectionSystem {
	return &LevelSelectionSystem{
		settings: s,
		reported: make(map[ecs.Entity]component.LevelSelection),
	}
}

func (s *LevelSelectionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach2(w, component.WorldComponent.Kind(), component.LevelSelectionComponent.Kind(), func(world ecs.Entity, wc *component.World, sel *component.LevelSelection) {
		seen[world] = struct{}{}
		project, ready := wc.Project.Project()
		if !ready {
			return
		}
		level, ok := sel.Resolve(project)
		if !ok {
			if prev, seen := s.reported[world]; !seen || prev != *sel {
				s.reported[world] = *sel
				report(w, entity.Diagnostic{
					Kind:    entity.DiagnosticLevelUnavailable,
					Message: fmt.Sprintf("world %s: no level matches %s", world, sel),
				})
			}
			return
		}
		delete(s.reported, world)

		iids := []string{level.Iid}
		if s.settings.LoadNeighbors() {
			for _, n := range level.Neighbours {
				iids = append(iids, n.LevelIid)
			}
		}
		if err := entity.SetLevels(w, world, iids...); err != nil {
			report(w, entity.Diagnostic{
				Kind:     entity.DiagnosticLevelUnavailable,
				LevelIid: level.Iid,
				Message:  err.Error(),
			})
		}
	})
	for world := range s.reported {
		if _, ok := seen[world]; !ok {
			delete(s.reported, world)
		}
	}
}
