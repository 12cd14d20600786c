package world

// Special tile IDs. Tiles in this set get animated overlays (shimmer,
// glow, sparkle) on top of the base tile each frame.
const (
	TileWater   uint16 = 10
	TileLava    uint16 = 11
	TileIce     uint16 = 12
	TileToxic   uint16 = 13
	TileEnergy  uint16 = 14
	TileCrystal uint16 = 15
)

// IsSpecial reports whether a tile ID has an animated overlay.
func IsSpecial(id uint16) bool {
	return id >= TileWater && id <= TileCrystal
}
