package post

import (
	"fmt"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

// DefaultBlurRadius is the bloom blur sigma in half-resolution texels.
const DefaultBlurRadius = 4.0

// Pipeline owns the intermediate post-processing targets and issues the
// four passes per frame. Targets are created lazily on the first Run and
// resized only when the frame size actually changes.
type Pipeline struct {
	dev gpu.Device

	w, h int // full-resolution size the targets were built for

	bright gpu.TargetID // half resolution
	blurA  gpu.TargetID
	blurB  gpu.TargetID

	blurRadius float64
	ready      bool
	disposed   bool
}

// NewPipeline creates a pipeline on the device. No GPU resources are
// allocated until the first Run.
func NewPipeline(dev gpu.Device) *Pipeline {
	return &Pipeline{dev: dev, blurRadius: DefaultBlurRadius}
}

// SetBlurRadius changes the bloom blur sigma.
func (p *Pipeline) SetBlurRadius(r float64) {
	if r > 0 {
		p.blurRadius = r
	}
}

// halfExtent rounds up so a 1-pixel frame still gets a target.
func halfExtent(v int) int { return (v + 1) / 2 }

func (p *Pipeline) ensureTargets(w, h int) error {
	if p.ready && w == p.w && h == p.h {
		return nil
	}
	hw, hh := halfExtent(w), halfExtent(h)

	if !p.ready {
		var err error
		if p.bright, err = p.dev.CreateTarget("post-bright", hw, hh, gpu.FormatRGBA8); err != nil {
			return fmt.Errorf("post: create bright target: %w", err)
		}
		if p.blurA, err = p.dev.CreateTarget("post-blur-a", hw, hh, gpu.FormatRGBA8); err != nil {
			return fmt.Errorf("post: create blur target: %w", err)
		}
		if p.blurB, err = p.dev.CreateTarget("post-blur-b", hw, hh, gpu.FormatRGBA8); err != nil {
			return fmt.Errorf("post: create blur target: %w", err)
		}
		p.ready = true
	} else {
		isoscene.Logger().Debug("post: resizing targets", "w", w, "h", h)
		if err := p.dev.ResizeTarget(p.bright, hw, hh); err != nil {
			return fmt.Errorf("post: resize bright target: %w", err)
		}
		if err := p.dev.ResizeTarget(p.blurA, hw, hh); err != nil {
			return fmt.Errorf("post: resize blur target: %w", err)
		}
		if err := p.dev.ResizeTarget(p.blurB, hw, hh); err != nil {
			return fmt.Errorf("post: resize blur target: %w", err)
		}
	}
	p.w, p.h = w, h
	return nil
}

// Run executes bright pass, horizontal blur, vertical blur and composite,
// reading the scene (and optionally the light map) and writing the final
// image to out. w and h are the full-resolution frame size.
func (p *Pipeline) Run(scene, lightMap, out gpu.TargetID, w, h int, params *Params) error {
	if p.disposed {
		return gpu.ErrDisposed
	}
	if err := p.ensureTargets(w, h); err != nil {
		return err
	}

	if err := p.dev.RunPass(&gpu.Pass{
		Kind:     gpu.PassBright,
		Inputs:   []gpu.TargetID{scene},
		Output:   p.bright,
		Uniforms: []float32{float32(params.BloomThreshold)},
	}); err != nil {
		return fmt.Errorf("post: bright pass: %w", err)
	}

	weights := PackKernel(CachedKernel(p.blurRadius))
	if err := p.dev.RunPass(&gpu.Pass{
		Kind:     gpu.PassBlurH,
		Inputs:   []gpu.TargetID{p.bright},
		Output:   p.blurA,
		Uniforms: weights,
	}); err != nil {
		return fmt.Errorf("post: horizontal blur: %w", err)
	}
	if err := p.dev.RunPass(&gpu.Pass{
		Kind:     gpu.PassBlurV,
		Inputs:   []gpu.TargetID{p.blurA},
		Output:   p.blurB,
		Uniforms: weights,
	}); err != nil {
		return fmt.Errorf("post: vertical blur: %w", err)
	}

	lightToggle := float32(0)
	if params.LightMap && lightMap != gpu.TargetScreen {
		lightToggle = 1
	}
	if err := p.dev.RunPass(&gpu.Pass{
		Kind:   gpu.PassComposite,
		Inputs: []gpu.TargetID{scene, p.blurB, lightMap},
		Output: out,
		Uniforms: []float32{
			float32(params.BloomStrength),
			float32(params.VignetteStrength),
			float32(params.Overlay.R), float32(params.Overlay.G),
			float32(params.Overlay.B), float32(params.Overlay.A),
			float32(params.Aberration),
			float32(params.DistortX), float32(params.DistortY),
			float32(params.DistortStrength),
			lightToggle,
		},
	}); err != nil {
		return fmt.Errorf("post: composite pass: %w", err)
	}
	return nil
}

// Dispose destroys the intermediate targets. Calling Dispose twice panics;
// a disposed pipeline is unusable.
func (p *Pipeline) Dispose() {
	if p.disposed {
		panic("post: Pipeline.Dispose called twice")
	}
	p.disposed = true
	if !p.ready {
		return
	}
	p.dev.DestroyTarget(p.bright)
	p.dev.DestroyTarget(p.blurA)
	p.dev.DestroyTarget(p.blurB)
}
