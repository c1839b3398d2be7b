package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ldtk"
)

var (
	ErrNotWorld       = errors.New("entity: not a world node")
	ErrNotRespawnable = errors.New("entity: respawn needs a world or level node")
)

// NewWorld creates a world root for the project behind handle. Levels named
// in levels become its initial LevelSet; they spawn once the handle is ready.
func NewWorld(w *ecs.World, handle *ldtk.Handle, levels ...string) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.WorldComponent.Kind(), &component.World{Project: handle}); err != nil {
		return 0, err
	}
	set := component.NewLevelSet(levels...)
	if err := ecs.Add(w, e, component.LevelSetComponent.Kind(), &set); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.WorldlyRegistryComponent.Kind(), &component.WorldlyRegistry{
		Entries: make(map[string]component.WorldlyEntry),
	}); err != nil {
		return 0, err
	}
	tf := component.TransformAt(component.Vec2{}, 0)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &tf); err != nil {
		return 0, err
	}
	return e, nil
}

// DespawnWorld destroys the world with every level and worldly entity in it.
func DespawnWorld(w *ecs.World, world ecs.Entity) int {
	return ecs.DespawnRecursive(w, world)
}

func levelSet(w *ecs.World, world ecs.Entity) (*component.LevelSet, error) {
	if !ecs.Has(w, world, component.WorldComponent.Kind()) {
		return nil, fmt.Errorf("%s: %w", world, ErrNotWorld)
	}
	set, ok := ecs.Get(w, world, component.LevelSetComponent.Kind())
	if !ok {
		set = &component.LevelSet{}
		if err := ecs.Add(w, world, component.LevelSetComponent.Kind(), set); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// SetLevels replaces the world's desired level set. Setting the set it already
// has changes nothing.
func SetLevels(w *ecs.World, world ecs.Entity, iids ...string) error {
	set, err := levelSet(w, world)
	if err != nil {
		return err
	}
	next := component.NewLevelSet(iids...)
	if set.Equal(next) {
		return nil
	}
	*set = next
	return nil
}

// InsertLevel adds one iid to the desired level set.
func InsertLevel(w *ecs.World, world ecs.Entity, iid string) error {
	set, err := levelSet(w, world)
	if err != nil {
		return err
	}
	set.Insert(iid)
	return nil
}

// RemoveLevel drops one iid from the desired level set.
func RemoveLevel(w *ecs.World, world ecs.Entity, iid string) error {
	set, err := levelSet(w, world)
	if err != nil {
		return err
	}
	set.Delete(iid)
	return nil
}

// ClearLevels empties the desired level set.
func ClearLevels(w *ecs.World, world ecs.Entity) error {
	return SetLevels(w, world)
}

// DesiredLevels returns the world's desired iids, sorted.
func DesiredLevels(w *ecs.World, world ecs.Entity) []string {
	set, ok := ecs.Get(w, world, component.LevelSetComponent.Kind())
	if !ok {
		return nil
	}
	return set.Sorted()
}

// SelectLevel hands level choice to a LevelSelection policy.
func SelectLevel(w *ecs.World, world ecs.Entity, sel component.LevelSelection) error {
	if !ecs.Has(w, world, component.WorldComponent.Kind()) {
		return fmt.Errorf("%s: %w", world, ErrNotWorld)
	}
	return ecs.Add(w, world, component.LevelSelectionComponent.Kind(), &sel)
}

// Respawn marks a world or level node for teardown and rebuild on the next
// pass.
func Respawn(w *ecs.World, e ecs.Entity) error {
	if !ecs.Has(w, e, component.WorldComponent.Kind()) && !ecs.Has(w, e, component.LevelComponent.Kind()) {
		return fmt.Errorf("%s: %w", e, ErrNotRespawnable)
	}
	return ecs.Add(w, e, component.RespawnComponent.Kind(), &component.Respawn{})
}

// LevelNodes maps each spawned level iid to its node. A second node with an
// iid already seen is returned in extra.
func LevelNodes(w *ecs.World, world ecs.Entity) (nodes map[string]ecs.Entity, extra []ecs.Entity) {
	nodes = make(map[string]ecs.Entity)
	for _, child := range ecs.Children(w, world) {
		lvl, ok := ecs.Get(w, child, component.LevelComponent.Kind())
		if !ok {
			continue
		}
		if _, dup := nodes[lvl.Iid]; dup {
			extra = append(extra, child)
			continue
		}
		nodes[lvl.Iid] = child
	}
	return nodes, extra
}

// LevelNode returns the node of a spawned level.
func LevelNode(w *ecs.World, world ecs.Entity, iid string) (ecs.Entity, bool) {
	nodes, _ := LevelNodes(w, world)
	e, ok := nodes[iid]
	return e, ok
}

// RealizedLevels returns the iids currently spawned under world, sorted.
func RealizedLevels(w *ecs.World, world ecs.Entity) []string {
	nodes, _ := LevelNodes(w, world)
	out := make([]string, 0, len(nodes))
	for iid := range nodes {
		out = append(out, iid)
	}
	slices.Sort(out)
	return out
}

// WorldlyIids returns the iids of live worldly entities tracked by world,
// sorted.
func WorldlyIids(w *ecs.World, world ecs.Entity) []string {
	reg, ok := ecs.Get(w, world, component.WorldlyRegistryComponent.Kind())
	if !ok {
		return nil
	}
	out := make([]string, 0, len(reg.Entries))
	for iid, entry := range reg.Entries {
		if ecs.IsAlive(w, ecs.Entity(entry.Entity)) {
			out = append(out, iid)
		}
	}
	slices.Sort(out)
	return out
}

// GlobalPosition sums e's transform with its ancestors'.
func GlobalPosition(w *ecs.World, e ecs.Entity) component.Vec2 {
	var pos component.Vec2
	for _, n := range append([]ecs.Entity{e}, ecs.Ancestors(w, e)...) {
		if tf, ok := ecs.Get(w, n, component.TransformComponent.Kind()); ok {
			pos = pos.Add(component.Vec2{X: tf.X, Y: tf.Y})
		}
	}
	return pos
}
