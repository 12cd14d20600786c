// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package batch accumulates draw calls into GPU vertex batches.
//
// Two renderer instances cover the module's needs: a flat-shape batch for
// vertex-colored triangles and a textured-sprite batch for atlas quads. A
// batch flushes only when it must — blend mode change, texture change,
// capacity overflow, or End — so a frame's flush count is a direct function
// of those events, never of draw call order.
//
// Callers normally do not drive Begin/End themselves: the Controller owns
// both renderers and switches between them on demand.
package batch

import (
	"errors"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

// Package errors.
var (
	// ErrBatchNotActive is returned when drawing outside Begin/End.
	// This is a programmer error, never a runtime condition to retry.
	ErrBatchNotActive = errors.New("batch: drawing operation outside Begin/End")

	// ErrBatchActive is returned when Begin is called on an active batch.
	ErrBatchActive = errors.New("batch: Begin called while batch is active")

	// ErrWrongMode is returned when a drawing operation does not match the
	// renderer's draw mode (e.g. a textured quad on the shape batch).
	ErrWrongMode = errors.New("batch: drawing operation does not match renderer mode")
)

// DefaultCapacity is the initial per-batch vertex capacity. Large enough
// that a typical frame never grows the buffer; small enough that two
// renderers cost little when idle.
const DefaultCapacity = 4096

// Renderer accumulates vertices for one draw mode and flushes them to the
// device as single submissions.
//
// The vertex buffer is created once and reused every frame; growth keeps
// the larger buffer for the renderer's remaining lifetime. Renderer is not
// safe for concurrent use.
type Renderer struct {
	device gpu.Device
	mode   gpu.DrawMode

	target gpu.TargetID
	proj   gpu.Projection
	blend  gpu.BlendMode

	// texture is the atlas bound for sprite submissions. Changing it
	// mid-batch forces a flush.
	texture gpu.TextureID

	verts    []float32
	count    int // queued vertices
	capVerts int

	active bool

	// flushes counts submissions since Begin; tests use it to verify the
	// flush-only-on-trigger invariant.
	flushes int
}

// NewShapeRenderer creates a flat-shape batch renderer with the given
// vertex capacity (DefaultCapacity if capacity <= 0).
func NewShapeRenderer(device gpu.Device, capacity int) *Renderer {
	return newRenderer(device, gpu.ModeShape, capacity)
}

// NewSpriteRenderer creates a textured-sprite batch renderer with the given
// vertex capacity (DefaultCapacity if capacity <= 0).
func NewSpriteRenderer(device gpu.Device, capacity int) *Renderer {
	return newRenderer(device, gpu.ModeSprite, capacity)
}

func newRenderer(device gpu.Device, mode gpu.DrawMode, capacity int) *Renderer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Renderer{
		device:   device,
		mode:     mode,
		capVerts: capacity,
		verts:    make([]float32, 0, capacity*mode.Stride()),
	}
}

// Mode returns the renderer's draw mode.
func (r *Renderer) Mode() gpu.DrawMode { return r.mode }

// Active reports whether the renderer is inside a Begin/End pair.
func (r *Renderer) Active() bool { return r.active }

// Flushes returns the number of device submissions since the last Begin.
func (r *Renderer) Flushes() int { return r.flushes }

// Begin resets the buffer and binds the projection and output target for
// the coming draws. Returns ErrBatchActive if already begun.
func (r *Renderer) Begin(target gpu.TargetID, proj gpu.Projection) error {
	if r.active {
		return ErrBatchActive
	}
	r.active = true
	r.target = target
	r.proj = proj
	r.blend = gpu.BlendNormal
	r.texture = 0
	r.count = 0
	r.verts = r.verts[:0]
	r.flushes = 0
	return nil
}

// End flushes any queued vertices and deactivates the renderer.
func (r *Renderer) End() error {
	if !r.active {
		return ErrBatchNotActive
	}
	err := r.flush()
	r.active = false
	return err
}

// SetBlendMode switches the blend equation for subsequent draws. A no-op
// when already in that mode; otherwise queued vertices are flushed first so
// the state change cannot corrupt them.
func (r *Renderer) SetBlendMode(blend gpu.BlendMode) error {
	if !r.active {
		return ErrBatchNotActive
	}
	if blend == r.blend {
		return nil
	}
	if err := r.flush(); err != nil {
		return err
	}
	r.blend = blend
	return nil
}

// BlendMode returns the current blend mode.
func (r *Renderer) BlendMode() gpu.BlendMode { return r.blend }

// flush submits queued vertices, if any, and resets the buffer.
func (r *Renderer) flush() error {
	if r.count == 0 {
		return nil
	}
	err := r.device.Submit(&gpu.Submission{
		Target:     r.target,
		Mode:       r.mode,
		Blend:      r.blend,
		Texture:    r.texture,
		Projection: r.proj,
		Vertices:   r.verts,
		Count:      r.count,
	})
	r.count = 0
	r.verts = r.verts[:0]
	r.flushes++
	return err
}

// reserve makes room for n more vertices. If the operation would overflow
// the buffer, queued vertices are flushed first; if n alone exceeds the
// capacity, the buffer grows (doubling) to fit it.
func (r *Renderer) reserve(n int) error {
	if !r.active {
		return ErrBatchNotActive
	}
	if r.count+n > r.capVerts {
		if err := r.flush(); err != nil {
			return err
		}
	}
	if n > r.capVerts {
		grown := r.capVerts
		for grown < n {
			grown *= 2
		}
		isoscene.Logger().Debug("batch: growing vertex buffer",
			"mode", r.mode.String(), "from", r.capVerts, "to", grown)
		r.capVerts = grown
		buf := make([]float32, 0, grown*r.mode.Stride())
		r.verts = append(buf, r.verts...)
	}
	return nil
}

// vertex appends one shape-mode vertex.
func (r *Renderer) vertex(x, y float64, c isoscene.RGBA) {
	r.verts = append(r.verts,
		float32(x), float32(y),
		float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	r.count++
}

// vertexUV appends one sprite-mode vertex.
func (r *Renderer) vertexUV(x, y float64, u, v float32, c isoscene.RGBA) {
	r.verts = append(r.verts,
		float32(x), float32(y), u, v,
		float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	r.count++
}

// DrawQuad appends one textured quad sampled from the region (u0,v0)-(u1,v1)
// of the given texture, tinted by color. Changing texture mid-batch flushes
// queued quads first.
func (r *Renderer) DrawQuad(tex gpu.TextureID, x, y, w, h float64, u0, v0, u1, v1 float32, tint isoscene.RGBA) error {
	if r.mode != gpu.ModeSprite {
		return ErrWrongMode
	}
	if !r.active {
		return ErrBatchNotActive
	}
	if tex != r.texture {
		if r.count > 0 {
			if err := r.flush(); err != nil {
				return err
			}
		}
		r.texture = tex
	}
	if err := r.reserve(6); err != nil {
		return err
	}

	x1, y1 := x+w, y+h
	r.vertexUV(x, y, u0, v0, tint)
	r.vertexUV(x1, y, u1, v0, tint)
	r.vertexUV(x1, y1, u1, v1, tint)
	r.vertexUV(x, y, u0, v0, tint)
	r.vertexUV(x1, y1, u1, v1, tint)
	r.vertexUV(x, y1, u0, v1, tint)
	return nil
}
