package component

// LDtk stores positions with a top-left origin and Y growing down. The scene
// graph uses a bottom-left origin with Y growing up, so every conversion out
// of the file flips the vertical axis against the owning layer's height.

// GridCoordsFromLdtk flips an LDtk `__grid` cell into GridCoords.
func GridCoordsFromLdtk(ldtkCoords IVec2, cHei int32) GridCoords {
	return GridCoords{X: ldtkCoords.X, Y: cHei - ldtkCoords.Y - 1}
}

// GridCoordsFromLdtkPixel converts a top-left pixel position inside a layer to
// the cell that contains it.
func GridCoordsFromLdtkPixel(px IVec2, cHei, gridSize int32) GridCoords {
	if gridSize <= 0 {
		gridSize = 1
	}
	return GridCoordsFromLdtk(IVec2{X: floorDiv(px.X, gridSize), Y: floorDiv(px.Y, gridSize)}, cHei)
}

// TranslationFromLdtkPixel flips a pixel position against pxHei.
func TranslationFromLdtkPixel(px IVec2, pxHei int32) Vec2 {
	return Vec2{X: float64(px.X), Y: float64(pxHei - px.Y)}
}

// TranslationFromLdtkPixelPivoted returns the centre of an entity whose pivot
// point sits at px. pivot is LDtk's (0..1, 0..1) with (0,0) the top-left.
func TranslationFromLdtkPixelPivoted(px IVec2, pxHei int32, size IVec2, pivot Vec2) Vec2 {
	p := TranslationFromLdtkPixel(px, pxHei)
	return Vec2{
		X: p.X + float64(size.X)*(0.5-pivot.X),
		Y: p.Y + float64(size.Y)*(pivot.Y-0.5),
	}
}

// GridCoordsToTranslationCentered returns the centre of cell g.
func GridCoordsToTranslationCentered(g GridCoords, tileSize IVec2) Vec2 {
	return Vec2{
		X: float64(g.X)*float64(tileSize.X) + float64(tileSize.X)/2,
		Y: float64(g.Y)*float64(tileSize.Y) + float64(tileSize.Y)/2,
	}
}

// TranslationToGridCoords returns the cell containing translation.
func TranslationToGridCoords(translation Vec2, gridSize IVec2) GridCoords {
	if gridSize.X == 0 || gridSize.Y == 0 {
		return GridCoordsFromVec2(translation)
	}
	return GridCoordsFromVec2(Vec2{
		X: translation.X / float64(gridSize.X),
		Y: translation.Y / float64(gridSize.Y),
	})
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
