package component

import (
	"strconv"

	"github.com/milk9111/ldtkworld/ldtk"
)

// LevelSelectionKind says which field of LevelSelection is meaningful.
type LevelSelectionKind int

const (
	SelectByIid LevelSelectionKind = iota
	SelectByIdentifier
	SelectByIndex
	SelectByUid
)

// LevelSelection picks one level of a world. When present on a world node the
// selection system rewrites the world's LevelSet from it; without it the
// LevelSet is driven directly.
type LevelSelection struct {
	Kind       LevelSelectionKind
	Iid        string
	Identifier string
	Index      int
	Uid        int32
}

var LevelSelectionComponent = NewComponent[LevelSelection]()

func SelectIid(iid string) LevelSelection {
	return LevelSelection{Kind: SelectByIid, Iid: iid}
}

func SelectIdentifier(identifier string) LevelSelection {
	return LevelSelection{Kind: SelectByIdentifier, Identifier: identifier}
}

func SelectIndex(i int) LevelSelection {
	return LevelSelection{Kind: SelectByIndex, Index: i}
}

func SelectUid(uid int32) LevelSelection {
	return LevelSelection{Kind: SelectByUid, Uid: uid}
}

// Resolve finds the selected level in p.
func (s LevelSelection) Resolve(p *ldtk.Project) (*ldtk.Level, bool) {
	switch s.Kind {
	case SelectByIid:
		return p.LevelByIid(s.Iid)
	case SelectByIdentifier:
		return p.LevelByIdentifier(s.Identifier)
	case SelectByIndex:
		return p.LevelByIndex(s.Index)
	case SelectByUid:
		return p.LevelByUid(s.Uid)
	}
	return nil, false
}

func (s LevelSelection) String() string {
	switch s.Kind {
	case SelectByIid:
		return "iid " + s.Iid
	case SelectByIdentifier:
		return "identifier " + s.Identifier
	case SelectByIndex:
		return "index " + strconv.Itoa(s.Index)
	case SelectByUid:
		return "uid " + strconv.Itoa(int(s.Uid))
	}
	return "unknown selection"
}
