// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package effect renders projectile visuals by archetype code.
//
// A dense table maps the small integer archetype code to a draw routine;
// codes without a bespoke recipe fall back to Generic. Every routine is a
// pure function of (position, tick, projectile view): randomness comes from
// the tick hash, never from a stateful RNG, so a frame renders identically
// for the same inputs.
package effect

import (
	"math"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/world"
)

// DrawFunc renders one projectile at a screen position for the given
// animation tick.
type DrawFunc func(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error

// MaxArchetypes bounds the archetype code space.
const MaxArchetypes = 64

var registry [MaxArchetypes]DrawFunc

// Register installs a draw routine for an archetype code. Codes outside
// the table are ignored. Intended for startup only; not safe to call
// while frames are rendering.
func Register(code uint8, fn DrawFunc) {
	if int(code) < len(registry) {
		registry[code] = fn
	}
}

// Lookup returns the routine for a code, or nil when none is registered.
func Lookup(code uint8) DrawFunc {
	if int(code) < len(registry) {
		return registry[code]
	}
	return nil
}

// Draw renders a projectile using its archetype's routine, falling back
// to Generic for unregistered codes.
func Draw(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	if fn := Lookup(p.Archetype); fn != nil {
		return fn(c, x, y, tick, p)
	}
	return Generic(c, x, y, tick, p)
}

// palette gives every archetype a stable hue even without a recipe.
var palette = []isoscene.RGBA{
	{R: 1.0, G: 0.55, B: 0.2, A: 1},  // ember
	{R: 0.4, G: 0.75, B: 1.0, A: 1},  // frost
	{R: 1.0, G: 0.95, B: 0.45, A: 1}, // arc
	{R: 0.5, G: 1.0, B: 0.4, A: 1},   // venom
	{R: 0.85, G: 0.45, B: 1.0, A: 1}, // arcane
}

func archetypeColor(code uint8) isoscene.RGBA {
	return palette[int(code)%len(palette)]
}

// Generic renders the fallback projectile: a soft halo, a solid core, a
// bright center and a tapering trail opposite the velocity. It keeps every
// archetype visually representable without a bespoke recipe.
func Generic(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	if err := c.EnsureShape(); err != nil {
		return err
	}
	r, err := c.Shapes()
	if err != nil {
		return err
	}
	col := archetypeColor(p.Archetype)

	if err := r.SetBlendMode(gpu.BlendAdditive); err != nil {
		return err
	}

	// Tapering trail opposite the travel direction.
	dir := isoscene.V2(p.VX, p.VY).Normalize()
	if dir.LengthSq() == 0 {
		dir = isoscene.V2(0, 1)
	}
	id := uint64(p.ID)
	for i := 1; i <= 4; i++ {
		d := float64(i) * 5
		size := 3.5 - float64(i)*0.7
		jx := isoscene.TickHashRange(tick, id, uint64(i), -1.5, 1.5)
		jy := isoscene.TickHashRange(tick, id, uint64(i)+8, -1.5, 1.5)
		fade := col.WithAlpha(col.A * (1 - float64(i)*0.22))
		if err := r.SoftEllipse(x-dir.X*d+jx, y-dir.Y*d+jy, size, size, fade); err != nil {
			return err
		}
	}

	// Halo, core, bright center.
	pulse := 1 + 0.15*math.Sin(float64(tick)*0.3+float64(p.ID))
	if err := r.SoftEllipse(x, y, 9*pulse, 9*pulse, col.WithAlpha(0.45)); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 3.5, 3.5, col); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 1.5, 1.5, isoscene.White); err != nil {
		return err
	}
	return r.SetBlendMode(gpu.BlendNormal)
}
