package ecs

import (
	"fmt"

	"github.com/milk9111/ldtkworld/ecs/component"
)

// World owns entities, their components and the parent/child edges between
// them. It is not safe for concurrent use; systems run one after another on
// the frame loop.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	parents  map[Entity]Entity
	children map[Entity][]Entity
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:   make(map[component.ComponentID]*SparseSet),
		parents:  make(map[Entity]Entity),
		children: make(map[Entity][]Entity),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes a single entity and its components. Its children are
// detached and left alive; use DespawnRecursive to drop a whole subtree.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	w.detach(e)
	for _, child := range w.children[e] {
		delete(w.parents, child)
	}
	delete(w.children, e)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Count returns the number of live entities.
func Count(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

// AddComponent attaches value under the component id, replacing any previous
// value of the same kind.
func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return fmt.Errorf("add %s to %s: %w", component.NameOf(id), e, component.ErrEntityNotAlive)
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s to %s: %w", component.NameOf(id), e, component.ErrNilComponent)
	}
	w.store(id, true).Set(e.id(), value)
	return nil
}

// RemoveComponent detaches the component id from e.
func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Remove(e.id())
}

// HasComponent reports whether e carries the component id.
func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Has(e.id())
}

// GetComponent returns the raw component value.
func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.store(id, false).Get(e.id())
	return v, v != nil
}
