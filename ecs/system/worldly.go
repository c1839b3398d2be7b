package system

import (
	"maps"
	"slices"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ecs/entity"
)

// WorldlySystem tracks Worldly entities. A worldly entity is registered on
// the pass it first shows up under a level and moved under the world on the
// next pass, once it has spent a full tick fully built under its level.
//
// This file is the only writer of component.WorldlyRegistry.
type WorldlySystem struct{}

func NewWorldlySystem() *WorldlySystem { return &WorldlySystem{} }

func (s *WorldlySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.WorldComponent.Kind(), func(world ecs.Entity, _ *component.World) {
		track(w, world)
	})
}

func track(w *ecs.World, world ecs.Entity) {
	reg := registryOf(w, world)
	if reg == nil {
		return
	}

	for _, iid := range sortedKeys(reg.Entries) {
		entry := reg.Entries[iid]
		if !ecs.IsAlive(w, ecs.Entity(entry.Entity)) {
			delete(reg.Entries, iid)
			continue
		}
		if entry.Pending {
			transfer(w, world, reg, iid)
		}
	}

	ecs.ForEach(w, component.WorldlyComponent.Kind(), func(e ecs.Entity, worldly *component.Worldly) {
		if owner, ok := worldOf(w, e); !ok || owner != world {
			return
		}
		register(w, world, reg, e, worldly.EntityIid)
	})
}

// register records e under iid. A second live entity claiming a tracked iid
// is destroyed and reported. It reports whether e is the tracked entity.
func register(w *ecs.World, world ecs.Entity, reg *component.WorldlyRegistry, e ecs.Entity, iid string) bool {
	if entry, ok := reg.Entries[iid]; ok && ecs.IsAlive(w, ecs.Entity(entry.Entity)) {
		if ecs.Entity(entry.Entity) == e {
			return true
		}
		levelIid := levelOf(w, e)
		ecs.DespawnRecursive(w, e)
		report(w, entity.Diagnostic{
			Kind:     entity.DiagnosticDuplicateWorldly,
			LevelIid: levelIid,
			Iid:      iid,
			Message:  "already tracked from level " + entry.LevelIid + ", duplicate removed",
		})
		return false
	}
	parent, _ := ecs.Parent(w, e)
	reg.Entries[iid] = component.WorldlyEntry{
		Entity:   uint64(e),
		LevelIid: levelOf(w, e),
		Pending:  parent != world,
	}
	return true
}

// transfer moves a pending entity under the world, keeping its global
// position.
func transfer(w *ecs.World, world ecs.Entity, reg *component.WorldlyRegistry, iid string) {
	entry := reg.Entries[iid]
	e := ecs.Entity(entry.Entity)
	global := entity.GlobalPosition(w, e)
	origin := entity.GlobalPosition(w, world)
	if err := ecs.SetParent(w, e, world); err != nil {
		return
	}
	if tf, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tf.X = global.X - origin.X
		tf.Y = global.Y - origin.Y
	}
	entry.Pending = false
	reg.Entries[iid] = entry
}

// adoptWorldly moves every worldly entity still under lvl to the world right
// away. The reconciler calls it before despawning lvl so a level despawned in
// the pass after it spawned still hands its worldly entities over.
func adoptWorldly(w *ecs.World, world, lvl ecs.Entity) {
	reg := registryOf(w, world)
	if reg == nil {
		return
	}
	var found []ecs.Entity
	var walk func(ecs.Entity)
	walk = func(n ecs.Entity) {
		for _, child := range ecs.Children(w, n) {
			if ecs.Has(w, child, component.WorldlyComponent.Kind()) {
				found = append(found, child)
				continue
			}
			walk(child)
		}
	}
	walk(lvl)
	for _, e := range found {
		worldly, _ := ecs.Get(w, e, component.WorldlyComponent.Kind())
		if register(w, world, reg, e, worldly.EntityIid) {
			transfer(w, world, reg, worldly.EntityIid)
		}
	}
}

// resetWorldly forgets every tracked entity of world.
func resetWorldly(w *ecs.World, world ecs.Entity) {
	if reg := registryOf(w, world); reg != nil {
		clear(reg.Entries)
	}
}

func registryOf(w *ecs.World, world ecs.Entity) *component.WorldlyRegistry {
	reg, ok := ecs.Get(w, world, component.WorldlyRegistryComponent.Kind())
	if !ok {
		reg = &component.WorldlyRegistry{}
		if err := ecs.Add(w, world, component.WorldlyRegistryComponent.Kind(), reg); err != nil {
			return nil
		}
	}
	if reg.Entries == nil {
		reg.Entries = make(map[string]component.WorldlyEntry)
	}
	return reg
}

func worldOf(w *ecs.World, e ecs.Entity) (ecs.Entity, bool) {
	for _, a := range ecs.Ancestors(w, e) {
		if ecs.Has(w, a, component.WorldComponent.Kind()) {
			return a, true
		}
	}
	return 0, false
}

func levelOf(w *ecs.World, e ecs.Entity) string {
	for _, a := range ecs.Ancestors(w, e) {
		if lvl, ok := ecs.Get(w, a, component.LevelComponent.Kind()); ok {
			return lvl.Iid
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
