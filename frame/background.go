package frame

import (
	"math"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/world"
)

// Procedural backgrounds. Each theme is a pure function of (tick, camera,
// frame size): layers hash their feature positions from fixed seeds and
// parallax-shift by a fraction of the camera offset, so scrolling feels
// deep without any persistent state.

const backgroundBands = 8

func (o *Orchestrator) renderBackground(frameW, frameH int) error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}

	fw, fh := float64(frameW), float64(frameH)
	switch o.tiles.Background() {
	case world.ThemeCity:
		return o.bgCity(r, fw, fh)
	case world.ThemeSpace:
		return o.bgSpace(r, fw, fh)
	case world.ThemeDesert:
		return o.bgDesert(r, fw, fh)
	case world.ThemeOcean:
		return o.bgOcean(r, fw, fh)
	default:
		return o.bgSky(r, fw, fh)
	}
}

// bands fills the frame with horizontal strips lerped top to bottom.
func bands(r *batch.Renderer, fw, fh float64, top, bottom isoscene.RGBA) error {
	h := fh / backgroundBands
	for i := 0; i < backgroundBands; i++ {
		t := float64(i) / (backgroundBands - 1)
		if err := r.FillRect(0, float64(i)*h, fw, h+1, top.Lerp(bottom, t)); err != nil {
			return err
		}
	}
	return nil
}

// wrap keeps a parallax-shifted coordinate inside [0, span).
func wrap(v, span float64) float64 {
	v = math.Mod(v, span)
	if v < 0 {
		v += span
	}
	return v
}

func (o *Orchestrator) bgSky(r *batch.Renderer, fw, fh float64) error {
	if err := bands(r, fw, fh,
		isoscene.RGBA{R: 0.35, G: 0.55, B: 0.85, A: 1},
		isoscene.RGBA{R: 0.65, G: 0.8, B: 0.95, A: 1}); err != nil {
		return err
	}
	// Two cloud layers at different parallax depths.
	for layer := 0; layer < 2; layer++ {
		par := 0.15 + float64(layer)*0.1
		drift := float64(o.tick) * (0.2 + float64(layer)*0.15)
		for i := 0; i < 6; i++ {
			seed := uint64(layer*100 + i)
			x := wrap(isoscene.HashRange(seed, 0, fw)-o.cam.pos.X*par+drift, fw+160) - 80
			y := isoscene.HashRange(seed+50, 0.05, 0.4) * fh
			w := isoscene.HashRange(seed+90, 40, 110)
			a := 0.25 + 0.1*float64(layer)
			if err := r.SoftEllipse(x, y, w, w*0.35, isoscene.White.WithAlpha(a)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (o *Orchestrator) bgCity(r *batch.Renderer, fw, fh float64) error {
	if err := bands(r, fw, fh,
		isoscene.RGBA{R: 0.08, G: 0.07, B: 0.15, A: 1},
		isoscene.RGBA{R: 0.25, G: 0.15, B: 0.3, A: 1}); err != nil {
		return err
	}
	// Skyline silhouettes, far row then near row.
	for layer := 0; layer < 2; layer++ {
		par := 0.1 + float64(layer)*0.15
		shade := 0.06 + float64(layer)*0.05
		col := isoscene.RGBA{R: shade, G: shade, B: shade + 0.06, A: 1}
		n := 9 - layer*2
		for i := 0; i < n; i++ {
			seed := uint64(200 + layer*100 + i)
			bw := isoscene.HashRange(seed, 40, 90)
			bh := isoscene.HashRange(seed+30, 0.25, 0.55) * fh
			x := wrap(isoscene.HashRange(seed+60, 0, fw)-o.cam.pos.X*par, fw+bw) - bw
			if err := r.FillRect(x, fh-bh, bw, bh, col); err != nil {
				return err
			}
			// Lit windows blink slowly on the tick hash.
			for w := 0; w < 4; w++ {
				if isoscene.TickHash(o.tick/120, seed, uint64(w)) < 0.6 {
					continue
				}
				wx := x + isoscene.HashRange(seed+uint64(w)*7, 4, bw-8)
				wy := fh - bh + isoscene.HashRange(seed+uint64(w)*13, 6, bh*0.8)
				warm := isoscene.RGBA{R: 1, G: 0.85, B: 0.5, A: 0.8}
				if err := r.FillRect(wx, wy, 3, 4, warm); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (o *Orchestrator) bgSpace(r *batch.Renderer, fw, fh float64) error {
	if err := bands(r, fw, fh,
		isoscene.RGBA{R: 0.01, G: 0.01, B: 0.04, A: 1},
		isoscene.RGBA{R: 0.05, G: 0.02, B: 0.1, A: 1}); err != nil {
		return err
	}
	for i := 0; i < 70; i++ {
		seed := uint64(400 + i)
		par := isoscene.HashRange(seed+5, 0.02, 0.12)
		x := wrap(isoscene.HashRange(seed, 0, fw)-o.cam.pos.X*par, fw)
		y := wrap(isoscene.HashRange(seed+17, 0, fh)-o.cam.pos.Y*par, fh)
		tw := 0.4 + 0.6*isoscene.TickHash(o.tick/20, seed, 1)
		s := isoscene.HashRange(seed+31, 0.6, 1.6)
		if err := r.FillEllipse(x, y, s, s, isoscene.White.WithAlpha(tw)); err != nil {
			return err
		}
	}
	// A distant nebula blob.
	nx := wrap(fw*0.7-o.cam.pos.X*0.04, fw)
	return r.SoftEllipse(nx, fh*0.3, 120, 80, isoscene.RGBA{R: 0.4, G: 0.15, B: 0.5, A: 0.25})
}

func (o *Orchestrator) bgDesert(r *batch.Renderer, fw, fh float64) error {
	if err := bands(r, fw, fh,
		isoscene.RGBA{R: 0.95, G: 0.75, B: 0.45, A: 1},
		isoscene.RGBA{R: 0.85, G: 0.6, B: 0.35, A: 1}); err != nil {
		return err
	}
	// Sun with a soft halo.
	sx := wrap(fw*0.8-o.cam.pos.X*0.02, fw)
	if err := r.SoftEllipse(sx, fh*0.18, 55, 55, isoscene.RGBA{R: 1, G: 0.9, B: 0.6, A: 0.5}); err != nil {
		return err
	}
	if err := r.FillEllipse(sx, fh*0.18, 28, 28, isoscene.RGBA{R: 1, G: 0.95, B: 0.75, A: 1}); err != nil {
		return err
	}
	// Dune ridges.
	for i := 0; i < 4; i++ {
		seed := uint64(600 + i)
		par := 0.08 + float64(i)*0.06
		x := wrap(isoscene.HashRange(seed, 0, fw)-o.cam.pos.X*par, fw+300) - 150
		y := fh*0.65 + float64(i)*fh*0.08
		dark := 0.78 - float64(i)*0.07
		col := isoscene.RGBA{R: dark, G: dark * 0.72, B: dark * 0.45, A: 1}
		if err := r.SoftEllipse(x, y, 220, 60, col); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) bgOcean(r *batch.Renderer, fw, fh float64) error {
	if err := bands(r, fw, fh,
		isoscene.RGBA{R: 0.1, G: 0.3, B: 0.55, A: 1},
		isoscene.RGBA{R: 0.05, G: 0.15, B: 0.35, A: 1}); err != nil {
		return err
	}
	// Rolling wave crests, phase-shifted by the tick.
	for i := 0; i < 5; i++ {
		seed := uint64(800 + i)
		par := 0.1 + float64(i)*0.05
		phase := float64(o.tick)*0.02 + isoscene.HashRange(seed, 0, math.Pi*2)
		y := fh*(0.3+float64(i)*0.15) + math.Sin(phase)*6
		x := wrap(isoscene.HashRange(seed+9, 0, fw)-o.cam.pos.X*par+float64(o.tick)*0.4, fw+200) - 100
		foam := isoscene.RGBA{R: 0.7, G: 0.85, B: 0.95, A: 0.3}
		if err := r.SoftLine(x, y, x+isoscene.HashRange(seed+21, 60, 140), y, 3, foam); err != nil {
			return err
		}
	}
	return nil
}
