package component

// Transform is relative to the parent node.
type Transform struct {
	X        float64
	Y        float64
	Z        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

func TransformAt(v Vec2, z float64) Transform {
	return Transform{X: v.X, Y: v.Y, Z: z, ScaleX: 1, ScaleY: 1}
}
