// Package component holds the data attached to scene nodes: the level tree
// markers, grid and transform data, and the kinds that key them in a world.
package component

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component type in a world. Zero is never issued.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	componentNames  sync.Map // ComponentID -> string
)

// ComponentKind is the typed key for T. Kinds are issued once, at package
// init, through NewComponent.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	componentNames.Store(id, reflect.TypeFor[T]().String())
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is the Go type the kind stores, for error messages.
func (k ComponentKind[T]) Name() string {
	return NameOf(k.id)
}

// NameOf returns the type name registered for id, or "component#<id>" for
// an id no kind was issued for.
func NameOf(id ComponentID) string {
	if name, ok := componentNames.Load(id); ok {
		return name.(string)
	}
	return "component#" + strconv.FormatUint(uint64(id), 10)
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
