package frame

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/world"
)

// elevationHeight is how far elevated tile tops rise above the ground
// plane, in pixels.
const elevationHeight = 14

// diamond returns the four screen corners of a cell, clockwise from the
// top corner.
func (o *Orchestrator) diamond(tx, ty int) [4]isoscene.Vec2 {
	cx, cy := o.cam.pos.X, o.cam.pos.Y
	x0, y0 := isoscene.WorldToScreen(float64(tx), float64(ty), cx, cy)
	x1, y1 := isoscene.WorldToScreen(float64(tx+1), float64(ty), cx, cy)
	x2, y2 := isoscene.WorldToScreen(float64(tx+1), float64(ty+1), cx, cy)
	x3, y3 := isoscene.WorldToScreen(float64(tx), float64(ty+1), cx, cy)
	return [4]isoscene.Vec2{{X: x0, Y: y0}, {X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}
}

// groundColor is the base palette for walkable tiles.
func groundColor(id uint16) isoscene.RGBA {
	switch id {
	case world.TileWater:
		return isoscene.RGBA{R: 0.15, G: 0.35, B: 0.6, A: 1}
	case world.TileLava:
		return isoscene.RGBA{R: 0.5, G: 0.12, B: 0.05, A: 1}
	case world.TileIce:
		return isoscene.RGBA{R: 0.7, G: 0.85, B: 0.95, A: 1}
	case world.TileToxic:
		return isoscene.RGBA{R: 0.25, G: 0.45, B: 0.15, A: 1}
	case world.TileEnergy:
		return isoscene.RGBA{R: 0.2, G: 0.25, B: 0.5, A: 1}
	case world.TileCrystal:
		return isoscene.RGBA{R: 0.45, G: 0.3, B: 0.55, A: 1}
	default:
		return isoscene.RGBA{R: 0.35, G: 0.42, B: 0.28, A: 1}
	}
}

// positionVariant derives a stable per-cell shade from the coordinates
// alone. Ground tiles must never use the animation tick, or the floor
// flickers.
func positionVariant(tx, ty int) float64 {
	seed := uint64(uint32(tx))*73856093 ^ uint64(uint32(ty))*19349663
	return isoscene.HashRange(seed, 0.88, 1.12)
}

// renderGround draws every walkable tile in the visible rect and collects
// special tiles for the overlay pass, avoiding a second scan.
func (o *Orchestrator) renderGround(rect visRect) error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}

	o.specials.reset()
	for ty := rect.minY; ty <= rect.maxY; ty++ {
		for tx := rect.minX; tx <= rect.maxX; tx++ {
			tile, ok := o.tiles.Tile(tx, ty)
			if !ok || !tile.Walkable {
				continue
			}
			col := groundColor(tile.ID).Scale(positionVariant(tx, ty))
			d := o.diamond(tx, ty)
			if err := r.FillConvexPolygon(d[:], col); err != nil {
				return err
			}
			if world.IsSpecial(tile.ID) {
				o.specials.add(specialTile{tx: tx, ty: ty, id: tile.ID})
			}
		}
	}
	return nil
}

// renderSpecialOverlays animates the tiles collected during the ground
// pass: shimmer, glow, sparkle, all keyed to the tick hash.
func (o *Orchestrator) renderSpecialOverlays() error {
	if o.specials.n == 0 {
		return nil
	}
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}

	for _, s := range o.specials.all() {
		cx, cy := isoscene.WorldToScreen(float64(s.tx)+0.5, float64(s.ty)+0.5, o.cam.pos.X, o.cam.pos.Y)
		seed := cellKey(s.tx, s.ty)
		if err := o.drawTileOverlay(r, s.id, cx, cy, seed); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) drawTileOverlay(r *batch.Renderer, id uint16, cx, cy float64, seed uint64) error {
	switch id {
	case world.TileWater:
		// Shimmer streaks sliding across the surface.
		for i := 0; i < 2; i++ {
			ph := isoscene.TickHashRange(o.tick/8, seed, uint64(i), -14, 14)
			a := 0.1 + 0.15*isoscene.TickHash(o.tick/8, seed, uint64(i)+5)
			if err := r.SoftLine(cx-10+ph, cy-2, cx+10+ph, cy+2, 1.5,
				isoscene.RGBA{R: 0.7, G: 0.9, B: 1, A: a}); err != nil {
				return err
			}
		}
		return nil
	case world.TileLava:
		glow := 0.25 + 0.2*isoscene.TickHash(o.tick/10, seed, 1)
		if err := r.SoftEllipse(cx, cy, 16, 8, isoscene.RGBA{R: 1, G: 0.4, B: 0.05, A: glow}); err != nil {
			return err
		}
		// Crack embers.
		ex := cx + isoscene.TickHashRange(o.tick/25, seed, 2, -10, 10)
		ey := cy + isoscene.TickHashRange(o.tick/25, seed, 3, -5, 5)
		return r.FillEllipse(ex, ey, 1.3, 1.3, isoscene.RGBA{R: 1, G: 0.75, B: 0.2, A: 0.9})
	case world.TileIce:
		// A sparkle that hops between hashed spots.
		sx := cx + isoscene.TickHashRange(o.tick/15, seed, 1, -12, 12)
		sy := cy + isoscene.TickHashRange(o.tick/15, seed, 2, -6, 6)
		a := 0.3 + 0.5*isoscene.TickHash(o.tick/15, seed, 3)
		return r.FillEllipse(sx, sy, 1.2, 1.2, isoscene.White.WithAlpha(a))
	case world.TileToxic:
		// Rising bubbles.
		for i := 0; i < 2; i++ {
			cycle := (float64(o.tick%60) + isoscene.HashRange(seed+uint64(i), 0, 60)) / 60
			if cycle > 1 {
				cycle -= 1
			}
			bx := cx + isoscene.TickHashRange(o.tick/60, seed, uint64(i), -10, 10)
			by := cy + 4 - cycle*10
			if err := r.SoftEllipse(bx, by, 1.8, 1.8,
				isoscene.RGBA{R: 0.5, G: 0.9, B: 0.3, A: 0.5 * (1 - cycle)}); err != nil {
				return err
			}
		}
		return nil
	case world.TileEnergy:
		// Arcs jumping between diamond edges, re-hashed every few ticks.
		x1 := cx + isoscene.TickHashRange(o.tick/4, seed, 1, -12, 12)
		y1 := cy + isoscene.TickHashRange(o.tick/4, seed, 2, -6, 6)
		x2 := cx + isoscene.TickHashRange(o.tick/4, seed, 3, -12, 12)
		y2 := cy + isoscene.TickHashRange(o.tick/4, seed, 4, -6, 6)
		return r.SoftLine(x1, y1, x2, y2, 1.2, isoscene.RGBA{R: 0.5, G: 0.7, B: 1, A: 0.6})
	case world.TileCrystal:
		// Slow hue cycle across magenta..cyan.
		t := 0.5 + 0.5*isoscene.TickHash(o.tick/40, seed, 1)
		col := isoscene.RGBA{R: 0.8, G: 0.3, B: 0.9, A: 0.3}.Lerp(
			isoscene.RGBA{R: 0.3, G: 0.9, B: 0.9, A: 0.3}, t)
		return r.SoftEllipse(cx, cy-3, 8, 5, col)
	}
	return nil
}

// elevatedColor shades elevated tiles; the variant is tick-animated,
// unlike the ground pass.
func (o *Orchestrator) elevatedColor(id uint16, tx, ty int) isoscene.RGBA {
	base := isoscene.RGBA{R: 0.45, G: 0.4, B: 0.38, A: 1}
	if world.IsSpecial(id) {
		base = groundColor(id)
	}
	pulse := 0.92 + 0.16*isoscene.TickHash(o.tick/30, cellKey(tx, ty), 7)
	return base.Scale(pulse)
}

// drawElevated draws a raised tile: the lifted top diamond plus the two
// visible side faces.
func (o *Orchestrator) drawElevated(r *batch.Renderer, tx, ty int, id uint16) error {
	d := o.diamond(tx, ty)
	top := [4]isoscene.Vec2{}
	for i, p := range d {
		top[i] = isoscene.V2(p.X, p.Y-elevationHeight)
	}
	col := o.elevatedColor(id, tx, ty)

	// Left face: left corner, bottom corner and their ground projections.
	left := []isoscene.Vec2{top[3], top[2], d[2], d[3]}
	if err := r.FillConvexPolygon(left, col.Scale(0.6)); err != nil {
		return err
	}
	right := []isoscene.Vec2{top[1], top[2], d[2], d[1]}
	if err := r.FillConvexPolygon(right, col.Scale(0.75)); err != nil {
		return err
	}
	return r.FillConvexPolygon(top[:], col)
}

// renderElevatedAndEntities is the second row-major pass: each cell draws
// its elevated tile (if any), then every depth-bucket entry for that
// exact cell. Stragglers outside the rect follow in arbitrary order.
func (o *Orchestrator) renderElevatedAndEntities(rect visRect) error {
	for ty := rect.minY; ty <= rect.maxY; ty++ {
		for tx := rect.minX; tx <= rect.maxX; tx++ {
			if tile, ok := o.tiles.Tile(tx, ty); ok && !tile.Walkable {
				if err := o.ctrl.EnsureShape(); err != nil {
					return err
				}
				r, err := o.ctrl.Shapes()
				if err != nil {
					return err
				}
				if err := o.drawElevated(r, tx, ty, tile.ID); err != nil {
					return err
				}
			}
			for _, e := range o.buckets.at(tx, ty) {
				if err := o.drawEntry(e); err != nil {
					return err
				}
			}
		}
	}
	for _, e := range o.buckets.stragglers {
		if err := o.drawEntry(e); err != nil {
			return err
		}
	}
	return nil
}
