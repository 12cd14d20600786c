// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame drives one rendered frame of the isometric scene: camera,
// visible-rect culling, depth-ordered tile/entity interleaving, deferred
// bars and labels, overlay systems, lighting and the post-process chain.
package frame

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/atlas"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/light"
	"github.com/gogpu/isoscene/particle"
	"github.com/gogpu/isoscene/post"
	"github.com/gogpu/isoscene/text"
	"github.com/gogpu/isoscene/world"
)

// visibleMargin pads the visible tile rectangle to hide pop-in at the
// screen edges.
const visibleMargin = 2

// Shaper lays out label strings. *text.Face satisfies it; tests use a
// stub so no font file is needed.
type Shaper interface {
	Shape(s string) text.Line
}

// Option configures an Orchestrator.
type Option func(*config)

type config struct {
	particleCap int
	batchCap    int
	camSmooth   float64
	blurRadius  float64
	sprites     atlas.Provider
	glyphs      text.GlyphSource
	face        Shaper
}

// WithParticleCapacity sets the particle pool size.
func WithParticleCapacity(n int) Option { return func(c *config) { c.particleCap = n } }

// WithBatchCapacity sets the initial vertex capacity of each batch.
func WithBatchCapacity(n int) Option { return func(c *config) { c.batchCap = n } }

// WithCameraSmoothing sets the camera follow rate per second.
func WithCameraSmoothing(rate float64) Option { return func(c *config) { c.camSmooth = rate } }

// WithBlurRadius sets the bloom blur sigma.
func WithBlurRadius(r float64) Option { return func(c *config) { c.blurRadius = r } }

// WithSprites installs the sprite atlas provider. Without one, entities
// render as procedural markers.
func WithSprites(p atlas.Provider) Option { return func(c *config) { c.sprites = p } }

// WithText installs the label font and glyph source. Without them, name
// labels and damage numbers are skipped.
func WithText(face Shaper, glyphs text.GlyphSource) Option {
	return func(c *config) {
		c.face = face
		c.glyphs = glyphs
	}
}

// floatingNumber is one in-flight damage number.
type floatingNumber struct {
	x, y   float64 // world position at spawn
	amount int
	start  float64 // host clock
}

// Orchestrator renders complete frames. One Render call owns the frame;
// nothing here is safe for concurrent use.
type Orchestrator struct {
	dev   gpu.Device
	tiles world.TileProvider
	state world.GameState

	ctrl      *batch.Controller
	particles *particle.System
	lights    *light.Accumulator
	pipeline  *post.Pipeline
	params    post.Params

	sprites atlas.Provider
	glyphs  text.GlyphSource
	face    Shaper

	cam  camera
	tick uint64

	frameW, frameH int
	scene          gpu.TargetID
	lightTarget    gpu.TargetID
	ready          bool
	disposed       bool

	buckets  *depthBuckets
	bars     barList
	specials specialList

	// overlay-system state carried across frames
	trackedItems map[uint32]world.ItemView
	drawnItems   map[uint32]struct{}
	lastHealth   map[uint32]int
	lastPos      map[uint32]isoscene.Vec2
	numbers      []floatingNumber
	flashStart   float64 // host clock of last local damage; negative when idle
}

// New creates an orchestrator on a device with the given world and game
// state providers. GPU resources are allocated on the first Render.
func New(dev gpu.Device, tiles world.TileProvider, state world.GameState, opts ...Option) *Orchestrator {
	cfg := config{
		camSmooth:  DefaultCameraSmoothing,
		blurRadius: post.DefaultBlurRadius,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := post.NewPipeline(dev)
	p.SetBlurRadius(cfg.blurRadius)

	return &Orchestrator{
		dev:          dev,
		tiles:        tiles,
		state:        state,
		ctrl:         batch.NewController(dev, cfg.batchCap),
		particles:    particle.NewSystem(cfg.particleCap),
		lights:       light.NewAccumulator(),
		pipeline:     p,
		params:       post.DefaultParams(),
		sprites:      cfg.sprites,
		glyphs:       cfg.glyphs,
		face:         cfg.face,
		cam:          camera{smooth: cfg.camSmooth},
		buckets:      newDepthBuckets(),
		trackedItems: make(map[uint32]world.ItemView),
		drawnItems:   make(map[uint32]struct{}),
		lastHealth:   make(map[uint32]int),
		lastPos:      make(map[uint32]isoscene.Vec2),
		flashStart:   -1,
	}
}

// Tick returns the animation tick, which advances once per Render.
func (o *Orchestrator) Tick() uint64 { return o.tick }

// Particles exposes the pool, mainly for host-driven ambient emission.
func (o *Orchestrator) Particles() *particle.System { return o.particles }

func (o *Orchestrator) ensureInit(frameW, frameH int) error {
	if o.ready {
		return nil
	}
	var err error
	if o.scene, err = o.dev.CreateTarget("frame-scene", frameW, frameH, gpu.FormatRGBA8); err != nil {
		return err
	}
	if o.lightTarget, err = o.dev.CreateTarget("frame-lightmap", frameW, frameH, gpu.FormatRGBA8); err != nil {
		return err
	}
	o.frameW, o.frameH = frameW, frameH
	o.ready = true
	isoscene.Logger().Info("frame: renderer initialized", "w", frameW, "h", frameH)
	return nil
}

// resizeTargets reallocates the offscreen targets only when the frame
// size actually changed since the previous frame.
func (o *Orchestrator) resizeTargets(frameW, frameH int) error {
	if frameW == o.frameW && frameH == o.frameH {
		return nil
	}
	if err := o.dev.ResizeTarget(o.scene, frameW, frameH); err != nil {
		return err
	}
	if err := o.dev.ResizeTarget(o.lightTarget, frameW, frameH); err != nil {
		return err
	}
	o.frameW, o.frameH = frameW, frameH
	return nil
}

// visibleRect inverse-projects the four frame corners to world space,
// pads by the margin and clamps to world bounds.
func (o *Orchestrator) visibleRect(frameW, frameH int) visRect {
	fw, fh := float64(frameW), float64(frameH)
	corners := [4][2]float64{{0, 0}, {fw, 0}, {0, fh}, {fw, fh}}

	minX, minY := 1e18, 1e18
	maxX, maxY := -1e18, -1e18
	for _, c := range corners {
		wx, wy := isoscene.ScreenToWorld(c[0], c[1], o.cam.pos.X, o.cam.pos.Y)
		if wx < minX {
			minX = wx
		}
		if wx > maxX {
			maxX = wx
		}
		if wy < minY {
			minY = wy
		}
		if wy > maxY {
			maxY = wy
		}
	}

	r := visRect{
		minX: int(minX) - visibleMargin,
		minY: int(minY) - visibleMargin,
		maxX: int(maxX) + visibleMargin,
		maxY: int(maxY) + visibleMargin,
	}
	if r.minX < 0 {
		r.minX = 0
	}
	if r.minY < 0 {
		r.minY = 0
	}
	if max := o.tiles.Width() - 1; r.maxX > max {
		r.maxX = max
	}
	if max := o.tiles.Height() - 1; r.maxY > max {
		r.maxY = max
	}
	return r
}

// Render draws one complete frame. dt is the elapsed time in seconds;
// frameW/frameH is the offscreen render size, windowW/windowH the final
// window size the composite and HUD are drawn at.
func (o *Orchestrator) Render(dt float64, frameW, frameH, windowW, windowH int) error {
	if o.disposed {
		return gpu.ErrDisposed
	}
	if err := o.ensureInit(frameW, frameH); err != nil {
		return err
	}

	o.tick++
	if local, ok := o.state.Local(); ok {
		sx, sy := isoscene.WorldToScreen(local.X, local.Y, 0, 0)
		target := isoscene.V2(sx-float64(frameW)/2, sy-float64(frameH)/2)
		o.cam.update(target, dt)
	}
	if err := o.resizeTargets(frameW, frameH); err != nil {
		return err
	}

	// A finished death animation replaces the whole frame.
	if o.gameOver() {
		return o.renderGameOver(windowW, windowH)
	}

	if err := o.dev.ClearTarget(o.scene, 0, 0, 0, 1); err != nil {
		return err
	}
	if err := o.ctrl.SetOutput(o.scene, gpu.Ortho2D(float64(frameW), float64(frameH))); err != nil {
		return err
	}

	rect := o.visibleRect(frameW, frameH)

	if err := o.renderBackground(frameW, frameH); err != nil {
		return err
	}

	o.collectBuckets(rect)

	if err := o.renderGround(rect); err != nil {
		return err
	}
	if err := o.renderSpecialOverlays(); err != nil {
		return err
	}
	if err := o.renderElevatedAndEntities(rect); err != nil {
		return err
	}
	if err := o.renderDeferredBars(); err != nil {
		return err
	}

	if err := o.runOverlaySystems(dt); err != nil {
		return err
	}

	o.particles.Update(dt)
	if err := o.particles.Render(o.ctrl, o.cam.pos.X, o.cam.pos.Y); err != nil {
		return err
	}

	o.accumulateLights()
	o.updatePostParams()

	if err := o.ctrl.EndAll(); err != nil {
		return err
	}

	if err := o.renderLightMap(frameW, frameH); err != nil {
		return err
	}

	if err := o.pipeline.Run(o.scene, o.lightTarget, gpu.TargetScreen, frameW, frameH, &o.params); err != nil {
		return err
	}

	// HUD and state screens draw in unscaled window pixels.
	if err := o.ctrl.SetOutput(gpu.TargetScreen, gpu.Ortho2D(float64(windowW), float64(windowH))); err != nil {
		return err
	}
	if err := o.renderHUD(windowW, windowH); err != nil {
		return err
	}
	return o.ctrl.EndAll()
}

// renderLightMap clears the light target and draws the accumulated
// lights into it.
func (o *Orchestrator) renderLightMap(frameW, frameH int) error {
	if err := o.dev.ClearTarget(o.lightTarget, 0, 0, 0, 1); err != nil {
		return err
	}
	if o.lights.Count() == 0 {
		return nil
	}
	if err := o.ctrl.SetOutput(o.lightTarget, gpu.Ortho2D(float64(frameW), float64(frameH))); err != nil {
		return err
	}
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	shapes, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	if err := o.lights.Render(shapes); err != nil {
		return err
	}
	return o.ctrl.EndAll()
}

// Dispose releases every GPU resource. Calling it twice panics; the
// orchestrator is unusable afterwards.
func (o *Orchestrator) Dispose() {
	if o.disposed {
		panic("frame: Dispose called twice")
	}
	o.disposed = true
	o.pipeline.Dispose()
	if o.ready {
		o.dev.DestroyTarget(o.scene)
		o.dev.DestroyTarget(o.lightTarget)
	}
}
