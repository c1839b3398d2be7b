package ecs

import (
	"errors"
	"fmt"
)

var ErrHierarchyCycle = errors.New("ecs: parent is a descendant of child")

// SetParent makes parent the owner of child, detaching child from any
// previous parent. Children keep insertion order.
func SetParent(w *World, child, parent Entity) error {
	if w == nil || !w.entities.isAlive(child) || !w.entities.isAlive(parent) {
		return fmt.Errorf("set parent of %s: entity not alive", child)
	}
	for p, ok := parent, true; ok; p, ok = w.parents[p] {
		if p == child {
			return ErrHierarchyCycle
		}
	}
	if cur, ok := w.parents[child]; ok && cur == parent {
		return nil
	}
	w.detach(child)
	w.parents[child] = parent
	w.children[parent] = append(w.children[parent], child)
	return nil
}

// RemoveParent turns child into a root.
func RemoveParent(w *World, child Entity) {
	if w == nil {
		return
	}
	w.detach(child)
}

func (w *World) detach(child Entity) {
	parent, ok := w.parents[child]
	if !ok {
		return
	}
	delete(w.parents, child)
	siblings := w.children[parent]
	for i, s := range siblings {
		if s == child {
			w.children[parent] = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	if len(w.children[parent]) == 0 {
		delete(w.children, parent)
	}
}

// Parent returns e's parent, if any.
func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.parents[e]
	return p, ok
}

// Children returns a copy of e's children in insertion order.
func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.children[e]...)
}

// Ancestors returns e's parent chain, nearest first.
func Ancestors(w *World, e Entity) []Entity {
	var out []Entity
	for p, ok := Parent(w, e); ok; p, ok = Parent(w, p) {
		out = append(out, p)
	}
	return out
}

// DespawnRecursive destroys e and its whole subtree, leaves first. It
// returns the number of entities destroyed.
func DespawnRecursive(w *World, e Entity) int {
	if w == nil || !w.entities.isAlive(e) {
		return 0
	}
	n := DespawnDescendants(w, e)
	if DestroyEntity(w, e) {
		n++
	}
	return n
}

// DespawnDescendants destroys every descendant of e and keeps e itself.
func DespawnDescendants(w *World, e Entity) int {
	if w == nil {
		return 0
	}
	n := 0
	for _, child := range Children(w, e) {
		n += DespawnRecursive(w, child)
	}
	return n
}
