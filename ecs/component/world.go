package component

import "github.com/milk9111/ldtkworld/ldtk"

// World marks a world root. Project is polled each pass; levels spawn once it
// reports ready.
type World struct {
	Project *ldtk.Handle
}

var WorldComponent = NewComponent[World]()
