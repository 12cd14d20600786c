package isoscene

// Tile footprint of the 2:1 isometric diamond, in screen pixels.
// Every coordinate mapping in the module derives from these two constants.
const (
	TileWidth  = 64.0
	TileHeight = 32.0

	halfTileW = TileWidth / 2
	halfTileH = TileHeight / 2
)

// WorldToScreen maps a world grid coordinate to screen pixels under the
// given camera offset. The world axes run along the diamond diagonals:
// +X toward the lower right, +Y toward the lower left.
//
// The transform is stateless; callers pass the camera explicitly so that
// background layers can reuse it with scaled (parallax) offsets.
func WorldToScreen(wx, wy, camX, camY float64) (sx, sy float64) {
	sx = (wx-wy)*halfTileW - camX
	sy = (wx+wy)*halfTileH - camY
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen. For any (wx, wy) and camera,
// ScreenToWorld(WorldToScreen(wx, wy, cx, cy)) == (wx, wy) up to floating
// point rounding; the frame orchestrator relies on this to derive the visible
// tile rectangle from the canvas corners.
func ScreenToWorld(sx, sy, camX, camY float64) (wx, wy float64) {
	x := sx + camX
	y := sy + camY
	wx = (x/halfTileW + y/halfTileH) / 2
	wy = (y/halfTileH - x/halfTileW) / 2
	return wx, wy
}
