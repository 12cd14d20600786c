// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu defines the device abstraction the rendering core draws
// through.
//
// The batch accumulators, the light map and the post-processing pipeline all
// issue work as plain data (Submission, Pass) against a Device. The real
// device lives in backend/gogpu and runs on gogpu's WebGPU stack; Recorder
// is a command-capturing device used by tests and headless tools.
package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Device errors.
var (
	// ErrNotInitialized is returned when submitting to an uninitialized device.
	ErrNotInitialized = errors.New("gpu: device is not initialized")

	// ErrDisposed is returned when operating on a disposed device.
	ErrDisposed = errors.New("gpu: device has been disposed")

	// ErrInvalidTarget is returned when a pass references an unknown target.
	ErrInvalidTarget = errors.New("gpu: invalid render target")

	// ErrInvalidTexture is returned when a submission references an unknown texture.
	ErrInvalidTexture = errors.New("gpu: invalid texture")

	// ErrEmptySubmission is returned when a submission carries no vertices.
	ErrEmptySubmission = errors.New("gpu: submission carries no vertices")
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (window/event-loop layer) owns the instance, adapter and device;
// the rendering core receives them and never creates its own. DeviceHandle
// is an alias for gpucontext.DeviceProvider so any gogpu-compatible host can
// be plugged in directly.
type DeviceHandle = gpucontext.DeviceProvider

// TextureID identifies a texture owned by a Device. The zero value is
// never a valid texture.
type TextureID uint32

// TargetID identifies an offscreen render target owned by a Device.
//
// TargetScreen addresses the final framebuffer; it always exists and is
// resized by the host, never by this module.
type TargetID uint32

// TargetScreen is the implicit on-screen target.
const TargetScreen TargetID = 0

// DrawMode selects which vertex layout and pipeline a submission uses.
type DrawMode uint8

const (
	// ModeShape draws untextured, vertex-colored triangles.
	ModeShape DrawMode = iota

	// ModeSprite draws textured quads sampled from a bound atlas texture.
	ModeSprite
)

// String returns the string representation of DrawMode.
func (m DrawMode) String() string {
	switch m {
	case ModeShape:
		return "Shape"
	case ModeSprite:
		return "Sprite"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Stride returns the number of float32 components per vertex for the mode:
// position + color for shapes, position + texcoord + color for sprites.
func (m DrawMode) Stride() int {
	if m == ModeSprite {
		return 8
	}
	return 6
}

// BlendMode selects the alpha blending equation for a submission.
type BlendMode uint8

const (
	// BlendNormal is standard non-premultiplied alpha blending.
	BlendNormal BlendMode = iota

	// BlendAdditive accumulates color, used for glows, lights and fire.
	BlendAdditive
)

// String returns the string representation of BlendMode.
func (b BlendMode) String() string {
	switch b {
	case BlendNormal:
		return "Normal"
	case BlendAdditive:
		return "Additive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(b))
	}
}

// TextureFormat represents the pixel format of a device texture.
type TextureFormat uint8

const (
	// FormatRGBA8 is the standard RGBA format with 8 bits per channel.
	FormatRGBA8 TextureFormat = iota

	// FormatBGRA8 is BGRA format, used for surface presentation.
	FormatBGRA8

	// FormatR8 is single-channel 8-bit format, used for glyph masks.
	FormatR8
)

// String returns a human-readable name for the format.
func (f TextureFormat) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatBGRA8:
		return "BGRA8"
	case FormatR8:
		return "R8"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

// BytesPerPixel returns the number of bytes per pixel for the format.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case FormatR8:
		return 1
	default:
		return 4
	}
}

// ToWGPUFormat converts to the wgpu gputypes.TextureFormat used by the real
// backend when creating textures.
func (f TextureFormat) ToWGPUFormat() gputypes.TextureFormat {
	switch f {
	case FormatRGBA8:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatBGRA8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatR8:
		return gputypes.TextureFormatR8Unorm
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

// Projection is a 2D affine transform mapping pixel coordinates to clip
// space, stored column-major as the top two rows of a 3x3 matrix.
type Projection [6]float32

// Ortho2D builds a projection mapping (0,0)..(w,h) with y down onto
// WebGPU clip space.
func Ortho2D(w, h float64) Projection {
	if w <= 0 || h <= 0 {
		return Projection{1, 0, 0, 1, 0, 0}
	}
	return Projection{
		float32(2 / w), 0,
		0, float32(-2 / h),
		-1, 1,
	}
}

// Submission is one batched draw call: a run of vertices sharing draw mode,
// blend mode and (for sprite mode) a bound texture. The vertex slice is only
// valid for the duration of the Submit call; devices that retain it must
// copy.
type Submission struct {
	Target     TargetID
	Mode       DrawMode
	Blend      BlendMode
	Texture    TextureID // sprite mode only; 0 in shape mode
	Projection Projection
	Vertices   []float32 // packed per VertexStride of the mode
	Count      int       // vertex count
}

// PassKind identifies a full-screen post-processing pass.
type PassKind uint8

const (
	// PassBright extracts pixels above the bloom threshold.
	PassBright PassKind = iota

	// PassBlurH is the horizontal half of the separable blur.
	PassBlurH

	// PassBlurV is the vertical half of the separable blur.
	PassBlurV

	// PassComposite combines scene, bloom, light map and screen effects
	// into the output target.
	PassComposite
)

// String returns the string representation of PassKind.
func (k PassKind) String() string {
	switch k {
	case PassBright:
		return "Bright"
	case PassBlurH:
		return "BlurH"
	case PassBlurV:
		return "BlurV"
	case PassComposite:
		return "Composite"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Pass is one full-screen post-processing pass. Inputs are sampled in
// declaration order; Uniforms layout is defined per PassKind by the post
// package.
type Pass struct {
	Kind     PassKind
	Inputs   []TargetID
	Output   TargetID
	Uniforms []float32
}

// Device is the sink for all GPU work issued by the rendering core.
//
// All methods are called from the single render thread; implementations do
// not need to be safe for concurrent use. Submissions and passes execute in
// strict call order.
type Device interface {
	// CreateTarget allocates an offscreen render target.
	CreateTarget(label string, w, h int, format TextureFormat) (TargetID, error)

	// ResizeTarget reallocates the target's backing texture. Contents are
	// undefined afterwards.
	ResizeTarget(id TargetID, w, h int) error

	// DestroyTarget releases a target. Destroying an unknown target is a
	// no-op.
	DestroyTarget(id TargetID)

	// ClearTarget fills a target with a constant color.
	ClearTarget(id TargetID, r, g, b, a float32) error

	// CreateTexture uploads an immutable texture. pixels holds
	// w*h*format.BytesPerPixel() bytes.
	CreateTexture(label string, w, h int, format TextureFormat, pixels []byte) (TextureID, error)

	// UpdateTexture overwrites a rectangular region of an existing texture.
	// Used by the atlas for lazy sprite and glyph uploads.
	UpdateTexture(id TextureID, x, y, w, h int, pixels []byte) error

	// DestroyTexture releases a texture. Destroying an unknown texture is a
	// no-op.
	DestroyTexture(id TextureID)

	// Submit draws one vertex batch.
	Submit(s *Submission) error

	// RunPass executes one full-screen post-processing pass.
	RunPass(p *Pass) error

	// Release frees every resource the device owns. The device is unusable
	// afterwards.
	Release()
}
