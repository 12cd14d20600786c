// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package post implements the multi-pass post-processing pipeline: bright
// pass extraction at half resolution, separable Gaussian blur, and the
// final composite (bloom, light map, vignette, overlay, chromatic
// aberration, radial distortion).
package post

import "github.com/gogpu/isoscene"

// Params are the per-frame composite knobs. The orchestrator mutates them
// once per frame from game-state signals; the composite pass reads them
// once. Plain numeric fields, no persistence.
type Params struct {
	BloomThreshold float64 // luminance cutoff for the bright pass
	BloomStrength  float64 // bloom contribution in the composite

	VignetteStrength float64

	// Overlay is a flat color mixed over the whole frame; its alpha is
	// the mix amount (damage flash, zone tint).
	Overlay isoscene.RGBA

	// Aberration is the chromatic aberration offset in texels.
	Aberration float64

	// Distortion is a radial push centered on a screen-space point,
	// driven by nearby explosions.
	DistortX, DistortY float64
	DistortStrength    float64

	LightMap bool // composite the light map this frame
}

// DefaultParams returns the neutral baseline the orchestrator starts each
// frame from.
func DefaultParams() Params {
	return Params{
		BloomThreshold:   0.65,
		BloomStrength:    0.85,
		VignetteStrength: 0.35,
		LightMap:         true,
	}
}
