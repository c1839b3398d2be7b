package component

// GridCoords is a cell position in a layer's grid, origin bottom-left.
//
// Tile, AutoTile and IntGrid cells always carry one. Entities carry one only
// when their spawn hook asks for it (see entity.GridCoordsHook). Nothing
// keeps GridCoords and Transform in sync after spawn.
type GridCoords struct {
	X int32
	Y int32
}

var GridCoordsComponent = NewComponent[GridCoords]()

func NewGridCoords(x, y int32) GridCoords {
	return GridCoords{X: x, Y: y}
}

func GridCoordsFromIVec2(v IVec2) GridCoords {
	return GridCoords{X: v.X, Y: v.Y}
}

func (g GridCoords) IVec2() IVec2 {
	return IVec2{X: g.X, Y: g.Y}
}

// GridCoordsFromVec2 floors v, which is exact for any vector produced by
// GridCoords.Vec2.
func GridCoordsFromVec2(v Vec2) GridCoords {
	return GridCoordsFromIVec2(v.Floor())
}

func (g GridCoords) Vec2() Vec2 {
	return g.IVec2().Vec2()
}

func GridCoordsFromTilePos(t TilePos) GridCoords {
	return GridCoords{X: int32(t.X), Y: int32(t.Y)}
}

// TilePos converts to a tilemap index. It reports false for coordinates left
// of or below the grid origin instead of wrapping them.
func (g GridCoords) TilePos() (TilePos, bool) {
	if g.X < 0 || g.Y < 0 {
		return TilePos{}, false
	}
	return TilePos{X: uint32(g.X), Y: uint32(g.Y)}, true
}

func (g GridCoords) Add(o GridCoords) GridCoords {
	return GridCoords{X: g.X + o.X, Y: g.Y + o.Y}
}

func (g GridCoords) Sub(o GridCoords) GridCoords {
	return GridCoords{X: g.X - o.X, Y: g.Y - o.Y}
}

func (g GridCoords) Mul(o GridCoords) GridCoords {
	return GridCoords{X: g.X * o.X, Y: g.Y * o.Y}
}

func (g *GridCoords) AddAssign(o GridCoords) {
	g.X += o.X
	g.Y += o.Y
}

func (g *GridCoords) SubAssign(o GridCoords) {
	g.X -= o.X
	g.Y -= o.Y
}

func (g *GridCoords) MulAssign(o GridCoords) {
	g.X *= o.X
	g.Y *= o.Y
}

// InBounds reports whether g addresses a cell of a cWid x cHei grid.
func (g GridCoords) InBounds(cWid, cHei int32) bool {
	return g.X >= 0 && g.Y >= 0 && g.X < cWid && g.Y < cHei
}

// Clamp pulls g into a cWid x cHei grid.
func (g GridCoords) Clamp(cWid, cHei int32) GridCoords {
	return GridCoords{X: clamp32(g.X, 0, cWid-1), Y: clamp32(g.Y, 0, cHei-1)}
}

func clamp32(v, lo, hi int32) int32 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
