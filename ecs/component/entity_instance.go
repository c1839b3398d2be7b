package component

import "github.com/milk9111/ldtkworld/ldtk"

// EntityInstanceComponent carries the raw LDtk entity on every spawned entity
// node unless a spawn hook replaces it.
var EntityInstanceComponent = NewComponent[ldtk.EntityInstance]()
