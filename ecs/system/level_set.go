package system

import (
	"fmt"
	"log"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
	"github.com/milk9111/ldtkworld/settings"
)

// LevelSetSystem brings every world's spawned levels in line with its
// LevelSet. Per world and pass it:
//
//  1. tears the world down if it carries Respawn (and the project is ready),
//  2. despawns levels no longer desired and levels marked Respawn, moving
//     their worldly entities to the world first,
//  3. spawns desired levels that are missing.
//
// All despawns of a pass happen before any spawn. A desired iid the project
// does not know (yet) is reported once and retried every pass.
type LevelSetSystem struct {
	settings settings.Settings
	registry *entity.Registry
	missing  map[ecs.Entity]map[string]struct{}
}

func NewLevelSetSystem(s settings.Settings, registry *entity.Registry) *LevelSetSystem {
	return &LevelSetSystem{
		settings: s,
		registry: registry,
		missing:  make(map[ecs.Entity]map[string]struct{}),
	}
}

func (s *LevelSetSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	seen := make(map[ecs.Entity]struct{})
	ecs.ForEach(w, component.WorldComponent.Kind(), func(world ecs.Entity, wc *component.World) {
		seen[world] = struct{}{}
		s.reconcile(w, world, wc)
	})
	for world := range s.missing {
		if _, ok := seen[world]; !ok {
			delete(s.missing, world)
		}
	}
}

func (s *LevelSetSystem) reconcile(w *ecs.World, world ecs.Entity, wc *component.World) {
	project, ready := wc.Project.Project()

	if ecs.Has(w, world, component.RespawnComponent.Kind()) {
		if !ready {
			return
		}
		s.teardownWorld(w, world)
		ecs.Remove(w, world, component.RespawnComponent.Kind())
	}

	nodes, extra := entity.LevelNodes(w, world)
	for _, e := range extra {
		if lvl, ok := ecs.Get(w, e, component.LevelComponent.Kind()); ok {
			log.Printf("ldtk: world %s: dropping second node of level %s", world, lvl.Iid)
		}
		adoptWorldly(w, world, e)
		entity.DespawnLevel(w, e)
	}

	realized := make([]string, 0, len(nodes))
	var respawning []string
	for iid, e := range nodes {
		realized = append(realized, iid)
		if ecs.Has(w, e, component.RespawnComponent.Kind()) {
			respawning = append(respawning, iid)
		}
	}

	desired := component.LevelSet{}
	if set, ok := ecs.Get(w, world, component.LevelSetComponent.Kind()); ok {
		desired = *set
	}
	diff := DiffLevels(desired, realized, respawning)
	s.forgetResolved(world, diff.Spawn)
	if diff.Empty() {
		return
	}

	for _, iids := range [][]string{diff.Despawn, diff.Respawn} {
		for _, iid := range iids {
			lvl := nodes[iid]
			adoptWorldly(w, world, lvl)
			entity.DespawnLevel(w, lvl)
			pushLevelEvent(w, LevelDespawned, world, iid)
		}
	}

	claims := make(entity.Claims)
	opts := entity.SpawnOptions{Settings: s.settings, Registry: s.registry, Claims: claims}
	for _, iid := range diff.Spawn {
		level, ok := project.LevelByIid(iid)
		if !ready || !ok {
			s.reportMissing(w, world, iid, ready)
			continue
		}
		pushLevelEvent(w, LevelSpawnTriggered, world, iid)
		_, diags, err := entity.SpawnLevel(w, world, project, level, opts)
		for _, d := range diags {
			report(w, d)
		}
		if err != nil {
			log.Printf("ldtk: world %s: spawn level %s: %v", world, iid, err)
			continue
		}
		pushLevelEvent(w, LevelSpawned, world, iid)
	}
}

// teardownWorld removes every level and worldly entity of world and resets
// its tracking table.
func (s *LevelSetSystem) teardownWorld(w *ecs.World, world ecs.Entity) {
	nodes, _ := entity.LevelNodes(w, world)
	ecs.DespawnDescendants(w, world)
	resetWorldly(w, world)
	for _, iid := range sortedKeys(nodes) {
		pushLevelEvent(w, LevelDespawned, world, iid)
	}
}

func (s *LevelSetSystem) reportMissing(w *ecs.World, world ecs.Entity, iid string, ready bool) {
	reported := s.missing[world]
	if reported == nil {
		reported = make(map[string]struct{})
		s.missing[world] = reported
	}
	if _, ok := reported[iid]; ok {
		return
	}
	reported[iid] = struct{}{}
	msg := "no level with this iid in the project, retrying"
	if !ready {
		msg = "project not loaded yet, retrying"
	}
	report(w, entity.Diagnostic{
		Kind:     entity.DiagnosticLevelUnavailable,
		LevelIid: iid,
		Message:  fmt.Sprintf("world %s: %s", world, msg),
	})
}

// forgetResolved drops reported iids that are no longer waiting to spawn, so
// they are reported again if they go missing later.
func (s *LevelSetSystem) forgetResolved(world ecs.Entity, waiting []string) {
	reported := s.missing[world]
	if len(reported) == 0 {
		return
	}
	still := make(map[string]struct{}, len(waiting))
	for _, iid := range waiting {
		still[iid] = struct{}{}
	}
	for iid := range reported {
		if _, ok := still[iid]; !ok {
			delete(reported, iid)
		}
	}
}
