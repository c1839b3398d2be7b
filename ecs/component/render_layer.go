package component

// RenderLayer is used to sort draw order deterministically. Index 0 is the
// back-most layer of a level.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
