package component

import "math"

// IVec2 is the engine's signed integer vector.
type IVec2 struct {
	X int32
	Y int32
}

// Vec2 is the engine's spatial vector. Y points up.
type Vec2 struct {
	X float64
	Y float64
}

// TilePos is a column/row index into a tilemap. It cannot address negative
// cells; see GridCoords.TilePos.
type TilePos struct {
	X uint32
	Y uint32
}

func (v IVec2) Vec2() Vec2 {
	return Vec2{X: float64(v.X), Y: float64(v.Y)}
}

// Floor rounds both components toward negative infinity.
func (v Vec2) Floor() IVec2 {
	return IVec2{X: int32(math.Floor(v.X)), Y: int32(math.Floor(v.Y))}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}
