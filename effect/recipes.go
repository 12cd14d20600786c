package effect

import (
	"math"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/world"
)

// Archetype codes with bespoke recipes.
const (
	ArchFireball  uint8 = 1
	ArchFrostbolt uint8 = 2
	ArchLightning uint8 = 3
	ArchToxicOrb  uint8 = 4
)

func init() {
	Register(ArchFireball, drawFireball)
	Register(ArchFrostbolt, drawFrostbolt)
	Register(ArchLightning, drawLightning)
	Register(ArchToxicOrb, drawToxicOrb)
}

func additiveShapes(c *batch.Controller) (*batch.Renderer, error) {
	if err := c.EnsureShape(); err != nil {
		return nil, err
	}
	r, err := c.Shapes()
	if err != nil {
		return nil, err
	}
	if err := r.SetBlendMode(gpu.BlendAdditive); err != nil {
		return nil, err
	}
	return r, nil
}

func drawFireball(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	r, err := additiveShapes(c)
	if err != nil {
		return err
	}
	id := uint64(p.ID)
	flick := 1 + 0.25*isoscene.TickHash(tick, id, 0)

	// Smoky trail, then flame body.
	dir := isoscene.V2(p.VX, p.VY).Normalize()
	for i := 1; i <= 5; i++ {
		d := float64(i) * 4.5
		s := 4.0 - float64(i)*0.6
		heat := isoscene.RGBA{R: 1, G: 0.6 - float64(i)*0.08, B: 0.1, A: 0.5 - float64(i)*0.08}
		if err := r.SoftEllipse(x-dir.X*d, y-dir.Y*d, s, s, heat); err != nil {
			return err
		}
	}
	if err := r.SoftEllipse(x, y, 11*flick, 11*flick, isoscene.RGBA{R: 1, G: 0.45, B: 0.1, A: 0.5}); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 4.5, 4.5, isoscene.RGBA{R: 1, G: 0.7, B: 0.2, A: 1}); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 2, 2, isoscene.RGBA{R: 1, G: 0.95, B: 0.8, A: 1}); err != nil {
		return err
	}
	return r.SetBlendMode(gpu.BlendNormal)
}

func drawFrostbolt(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	r, err := additiveShapes(c)
	if err != nil {
		return err
	}
	id := uint64(p.ID)
	ice := isoscene.RGBA{R: 0.55, G: 0.8, B: 1, A: 1}

	// Orbiting crystal shards.
	for i := 0; i < 3; i++ {
		a := float64(tick)*0.2 + float64(i)*2*math.Pi/3
		ox := math.Cos(a) * 7
		oy := math.Sin(a) * 3.5 // flattened orbit matches the iso view
		if err := r.FillEllipse(x+ox, y+oy, 1.6, 1.6, ice); err != nil {
			return err
		}
	}
	glint := 0.35 + 0.2*isoscene.TickHash(tick, id, 3)
	if err := r.SoftEllipse(x, y, 8, 8, ice.WithAlpha(glint)); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 3, 3, ice); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 1.3, 1.3, isoscene.White); err != nil {
		return err
	}
	return r.SetBlendMode(gpu.BlendNormal)
}

func drawLightning(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	r, err := additiveShapes(c)
	if err != nil {
		return err
	}
	id := uint64(p.ID)
	arc := isoscene.RGBA{R: 1, G: 0.95, B: 0.5, A: 0.9}

	// Jagged bolt segments re-seeded every few ticks.
	seed := tick / 3
	px, py := x, y
	dir := isoscene.V2(p.VX, p.VY).Normalize()
	for i := 1; i <= 4; i++ {
		nx := x - dir.X*float64(i)*6 + isoscene.TickHashRange(seed, id, uint64(i), -4, 4)
		ny := y - dir.Y*float64(i)*6 + isoscene.TickHashRange(seed, id, uint64(i)+20, -4, 4)
		if err := r.SoftLine(px, py, nx, ny, 1.6, arc); err != nil {
			return err
		}
		px, py = nx, ny
	}
	if err := r.SoftEllipse(x, y, 7, 7, arc.WithAlpha(0.4)); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 2.2, 2.2, isoscene.White); err != nil {
		return err
	}
	return r.SetBlendMode(gpu.BlendNormal)
}

func drawToxicOrb(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
	r, err := additiveShapes(c)
	if err != nil {
		return err
	}
	id := uint64(p.ID)
	venom := isoscene.RGBA{R: 0.45, G: 1, B: 0.35, A: 1}

	// Dripping bubbles hashed from the tick.
	for i := 0; i < 3; i++ {
		bx := x + isoscene.TickHashRange(tick/2, id, uint64(i), -6, 6)
		by := y + isoscene.TickHashRange(tick/2, id, uint64(i)+30, 0, 8)
		if err := r.SoftEllipse(bx, by, 1.8, 1.8, venom.WithAlpha(0.5)); err != nil {
			return err
		}
	}
	wob := 1 + 0.1*math.Sin(float64(tick)*0.25+float64(p.ID))
	if err := r.SoftEllipse(x, y, 8*wob, 8*wob, venom.WithAlpha(0.4)); err != nil {
		return err
	}
	if err := r.FillEllipse(x, y, 3.2, 3.2, venom); err != nil {
		return err
	}
	return r.SetBlendMode(gpu.BlendNormal)
}
