package component

import (
	"maps"
	"slices"
)

// LevelSet is the set of level iids a world should have spawned. Changing it
// is idempotent: re-inserting an iid or removing a missing one never causes a
// respawn.
type LevelSet struct {
	Iids map[string]struct{}
}

var LevelSetComponent = NewComponent[LevelSet]()

func NewLevelSet(iids ...string) LevelSet {
	s := LevelSet{Iids: make(map[string]struct{}, len(iids))}
	for _, iid := range iids {
		s.Iids[iid] = struct{}{}
	}
	return s
}

// Insert adds iid and reports whether the set changed.
func (s *LevelSet) Insert(iid string) bool {
	if s.Iids == nil {
		s.Iids = make(map[string]struct{})
	}
	if _, ok := s.Iids[iid]; ok {
		return false
	}
	s.Iids[iid] = struct{}{}
	return true
}

// Delete removes iid and reports whether the set changed.
func (s *LevelSet) Delete(iid string) bool {
	if _, ok := s.Iids[iid]; !ok {
		return false
	}
	delete(s.Iids, iid)
	return true
}

func (s LevelSet) Contains(iid string) bool {
	_, ok := s.Iids[iid]
	return ok
}

func (s LevelSet) Len() int {
	return len(s.Iids)
}

func (s LevelSet) Equal(o LevelSet) bool {
	if len(s.Iids) != len(o.Iids) {
		return false
	}
	for iid := range s.Iids {
		if _, ok := o.Iids[iid]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the iids in lexical order.
func (s LevelSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s.Iids))
}

func (s LevelSet) Clone() LevelSet {
	return LevelSet{Iids: maps.Clone(s.Iids)}
}
