// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package light accumulates dynamic lights for the current frame.
//
// The set is cleared at the start of every frame and rebuilt from scratch;
// nothing persists. Lights live in screen space because they are consumed
// by the screen-space light map pass.
package light

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
)

// Light is one frame-local light contribution.
type Light struct {
	X, Y      float64
	Radius    float64
	Col       isoscene.RGBA
	Intensity float64
}

// Accumulator collects lights during a frame. Not safe for concurrent use.
type Accumulator struct {
	lights []Light
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{lights: make([]Light, 0, 128)}
}

// Clear empties the set. Called at the start of every frame.
func (a *Accumulator) Clear() { a.lights = a.lights[:0] }

// Add records one light. Zero or negative radius or intensity is dropped.
func (a *Accumulator) Add(x, y, radius float64, col isoscene.RGBA, intensity float64) {
	if radius <= 0 || intensity <= 0 {
		return
	}
	a.lights = append(a.lights, Light{X: x, Y: y, Radius: radius, Col: col, Intensity: intensity})
}

// Count returns the number of lights collected this frame.
func (a *Accumulator) Count() int { return len(a.lights) }

// Lights returns the collected set. Valid only until the next Clear.
func (a *Accumulator) Lights() []Light { return a.lights }

// Render draws every light as an additive soft blob into the given shape
// renderer, which the caller has begun on the light map target. Blend mode
// is restored to normal afterwards.
func (a *Accumulator) Render(r *batch.Renderer) error {
	if len(a.lights) == 0 {
		return nil
	}
	if err := r.SetBlendMode(gpu.BlendAdditive); err != nil {
		return err
	}
	for i := range a.lights {
		l := &a.lights[i]
		col := l.Col.Scale(l.Intensity)
		col.A = clamp01(l.Intensity)
		if err := r.SoftEllipse(l.X, l.Y, l.Radius, l.Radius, col); err != nil {
			return err
		}
	}
	return r.SetBlendMode(gpu.BlendNormal)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
