package entity

import (
	"errors"

	"github.com/milk9111/ldtkworld/ecs"
	"github.com/milk9111/ldtkworld/ecs/component"
	"github.com/milk9111/ldtkworld/ldtk"
)

// EntityInfo is everything a hook may read about the entity being spawned.
type EntityInfo struct {
	Project  *ldtk.Project
	Level    *ldtk.Level
	Layer    *ldtk.LayerInstance
	Instance *ldtk.EntityInstance
}

// IntCellInfo describes one IntGrid cell being spawned.
type IntCellInfo struct {
	Project *ldtk.Project
	Level   *ldtk.Level
	Layer   *ldtk.LayerInstance
	Cell    component.IntGridCell
	Coords  component.GridCoords
}

// EntityHook attaches components to a freshly created entity node.
type EntityHook func(w *ecs.World, e ecs.Entity, info EntityInfo) error

// IntCellHook attaches components to a freshly created IntGrid cell node.
type IntCellHook func(w *ecs.World, e ecs.Entity, info IntCellInfo) error

type entityKey struct {
	layer      string
	identifier string
}

type intCellKey struct {
	layer string
	value int32
	any   bool
}

// Registry maps LDtk entity identifiers and IntGrid values to spawn hooks.
// Lookups fall back from the most specific registration to the least:
// layer+key, key alone, layer alone, then the catch-all.
type Registry struct {
	entities map[entityKey]EntityHook
	intCells map[intCellKey]IntCellHook
}

func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[entityKey]EntityHook),
		intCells: make(map[intCellKey]IntCellHook),
	}
}

// RegisterEntity hooks every entity named identifier. An empty identifier
// matches every entity.
func (r *Registry) RegisterEntity(identifier string, hook EntityHook) {
	r.RegisterEntityForLayer("", identifier, hook)
}

func (r *Registry) RegisterEntityForLayer(layer, identifier string, hook EntityHook) {
	if hook == nil {
		return
	}
	r.entities[entityKey{layer: layer, identifier: identifier}] = hook
}

func (r *Registry) RegisterIntCell(value int32, hook IntCellHook) {
	r.RegisterIntCellForLayer("", value, hook)
}

func (r *Registry) RegisterIntCellForLayer(layer string, value int32, hook IntCellHook) {
	if hook == nil {
		return
	}
	r.intCells[intCellKey{layer: layer, value: value}] = hook
}

// RegisterAnyIntCell hooks every IntGrid value on layer ("" for all layers).
func (r *Registry) RegisterAnyIntCell(layer string, hook IntCellHook) {
	if hook == nil {
		return
	}
	r.intCells[intCellKey{layer: layer, any: true}] = hook
}

func (r *Registry) entityHook(layer, identifier string) EntityHook {
	if r != nil {
		for _, k := range []entityKey{{layer, identifier}, {"", identifier}, {layer, ""}, {"", ""}} {
			if h, ok := r.entities[k]; ok {
				return h
			}
		}
	}
	return DefaultEntityHook
}

func (r *Registry) intCellHook(layer string, value int32) IntCellHook {
	if r != nil {
		keys := []intCellKey{
			{layer: layer, value: value},
			{value: value},
			{layer: layer, any: true},
			{any: true},
		}
		for _, k := range keys {
			if h, ok := r.intCells[k]; ok {
				return h
			}
		}
	}
	return nil
}

// DefaultEntityHook keeps the raw instance, fields included, as the node's
// payload.
func DefaultEntityHook(w *ecs.World, e ecs.Entity, info EntityInfo) error {
	inst := *info.Instance
	return ecs.Add(w, e, component.EntityInstanceComponent.Kind(), &inst)
}

// WorldlyHook marks the entity as outliving its level.
func WorldlyHook(w *ecs.World, e ecs.Entity, info EntityInfo) error {
	worldly := component.WorldlyFromInstance(info.Instance)
	return ecs.Add(w, e, component.WorldlyComponent.Kind(), &worldly)
}

// GridCoordsHook gives the entity the grid cell LDtk placed it in.
func GridCoordsHook(w *ecs.World, e ecs.Entity, info EntityInfo) error {
	g := component.GridCoordsFromLdtk(component.IVec2{X: info.Instance.Grid[0], Y: info.Instance.Grid[1]}, info.Layer.CHei)
	return ecs.Add(w, e, component.GridCoordsComponent.Kind(), &g)
}

// Hooks runs hooks in order and joins their errors.
func Hooks(hooks ...EntityHook) EntityHook {
	return func(w *ecs.World, e ecs.Entity, info EntityInfo) error {
		var errs []error
		for _, h := range hooks {
			if h == nil {
				continue
			}
			if err := h(w, e, info); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
