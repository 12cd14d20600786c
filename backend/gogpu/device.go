package gogpu

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

// StubBufferID is a placeholder for the wgpu vertex buffer handle.
// It will be replaced with core.BufferID once the device path grows
// buffer uploads.
type StubBufferID uint64

// StubTextureID is a placeholder for the wgpu texture handle.
type StubTextureID uint64

// StubPipelineID is a placeholder for the wgpu render pipeline handle.
type StubPipelineID uint64

// deviceImpl implements gpu.Device on top of the backend's WebGPU handles.
//
// Resource bookkeeping (IDs, sizes, pipeline selection) is complete; the
// actual wgpu buffer/texture/pass calls go through stub handles until the
// render pass encoding lands on top of core.
type deviceImpl struct {
	backend *Backend

	nextTarget  gpu.TargetID
	nextTexture gpu.TextureID

	targets  map[gpu.TargetID]targetEntry
	textures map[gpu.TextureID]textureEntry

	// One pipeline per (mode, blend) pair plus one per post pass.
	shapePipelines  [2]StubPipelineID // indexed by gpu.BlendMode
	spritePipelines [2]StubPipelineID
	passPipelines   [4]StubPipelineID // indexed by gpu.PassKind

	released bool
}

type targetEntry struct {
	w, h    int
	format  gpu.TextureFormat
	texture StubTextureID
}

type textureEntry struct {
	w, h   int
	format gpu.TextureFormat
	handle StubTextureID
}

func newDeviceImpl(b *Backend) *deviceImpl {
	d := &deviceImpl{
		backend:     b,
		nextTarget:  1, // 0 is gpu.TargetScreen
		nextTexture: 1,
		targets:     make(map[gpu.TargetID]targetEntry),
		textures:    make(map[gpu.TextureID]textureEntry),
	}

	// TODO: replace with real render pipelines built on core; the SPIR-V
	// is already compiled in b.shaders ("shape", "sprite", "bright",
	// "blur", "composite").
	d.shapePipelines = [2]StubPipelineID{1, 2}
	d.spritePipelines = [2]StubPipelineID{3, 4}
	d.passPipelines = [4]StubPipelineID{5, 6, 7, 8}

	return d
}

// CreateTarget implements gpu.Device.
func (d *deviceImpl) CreateTarget(label string, w, h int, format gpu.TextureFormat) (gpu.TargetID, error) {
	if d.released {
		return 0, gpu.ErrDisposed
	}
	if w <= 0 || h <= 0 {
		return 0, ErrInvalidDimensions
	}

	id := d.nextTarget
	d.nextTarget++

	// TODO: allocate the backing texture with
	// gputypes.TextureUsageRenderAttachment|TextureUsageTextureBinding and
	// format.ToWGPUFormat() when the core texture path lands.
	d.targets[id] = targetEntry{w: w, h: h, format: format, texture: StubTextureID(id)}

	isoscene.Logger().Debug("gogpu: target created", "label", label, "w", w, "h", h)
	return id, nil
}

// ResizeTarget implements gpu.Device.
func (d *deviceImpl) ResizeTarget(id gpu.TargetID, w, h int) error {
	if d.released {
		return gpu.ErrDisposed
	}
	entry, ok := d.targets[id]
	if !ok {
		return gpu.ErrInvalidTarget
	}
	if w <= 0 || h <= 0 {
		return ErrInvalidDimensions
	}

	entry.w, entry.h = w, h
	d.targets[id] = entry
	isoscene.Logger().Debug("gogpu: target resized", "id", id, "w", w, "h", h)
	return nil
}

// DestroyTarget implements gpu.Device.
func (d *deviceImpl) DestroyTarget(id gpu.TargetID) {
	delete(d.targets, id)
}

// ClearTarget implements gpu.Device.
func (d *deviceImpl) ClearTarget(id gpu.TargetID, r, g, b, a float32) error {
	if d.released {
		return gpu.ErrDisposed
	}
	if id != gpu.TargetScreen {
		if _, ok := d.targets[id]; !ok {
			return gpu.ErrInvalidTarget
		}
	}
	// Cleared as the load op of the next pass touching the target.
	return nil
}

// CreateTexture implements gpu.Device.
func (d *deviceImpl) CreateTexture(label string, w, h int, format gpu.TextureFormat, pixels []byte) (gpu.TextureID, error) {
	if d.released {
		return 0, gpu.ErrDisposed
	}
	if w <= 0 || h <= 0 {
		return 0, ErrInvalidDimensions
	}

	id := d.nextTexture
	d.nextTexture++
	d.textures[id] = textureEntry{w: w, h: h, format: format, handle: StubTextureID(id)}

	isoscene.Logger().Debug("gogpu: texture created",
		"label", label, "w", w, "h", h, "format", format.String())
	return id, nil
}

// UpdateTexture implements gpu.Device.
func (d *deviceImpl) UpdateTexture(id gpu.TextureID, x, y, w, h int, pixels []byte) error {
	if d.released {
		return gpu.ErrDisposed
	}
	entry, ok := d.textures[id]
	if !ok {
		return gpu.ErrInvalidTexture
	}
	if x < 0 || y < 0 || x+w > entry.w || y+h > entry.h {
		return ErrInvalidDimensions
	}
	// TODO: core.QueueWriteTexture with the region when the core texture
	// path lands.
	return nil
}

// DestroyTexture implements gpu.Device.
func (d *deviceImpl) DestroyTexture(id gpu.TextureID) {
	delete(d.textures, id)
}

// Submit implements gpu.Device.
func (d *deviceImpl) Submit(s *gpu.Submission) error {
	if d.released {
		return gpu.ErrDisposed
	}
	if s.Count == 0 {
		return gpu.ErrEmptySubmission
	}
	if s.Target != gpu.TargetScreen {
		if _, ok := d.targets[s.Target]; !ok {
			return gpu.ErrInvalidTarget
		}
	}

	var pipeline StubPipelineID
	if s.Mode == gpu.ModeSprite {
		if _, ok := d.textures[s.Texture]; !ok {
			return gpu.ErrInvalidTexture
		}
		pipeline = d.spritePipelines[s.Blend]
	} else {
		pipeline = d.shapePipelines[s.Blend]
	}
	_ = pipeline

	// TODO: upload s.Vertices via queue.WriteBuffer and encode a draw of
	// s.Count vertices with the selected pipeline.
	return nil
}

// RunPass implements gpu.Device.
func (d *deviceImpl) RunPass(p *gpu.Pass) error {
	if d.released {
		return gpu.ErrDisposed
	}
	for _, in := range p.Inputs {
		if in == gpu.TargetScreen {
			continue
		}
		if _, ok := d.targets[in]; !ok {
			return gpu.ErrInvalidTarget
		}
	}
	if p.Output != gpu.TargetScreen {
		if _, ok := d.targets[p.Output]; !ok {
			return gpu.ErrInvalidTarget
		}
	}
	_ = d.passPipelines[p.Kind]

	// TODO: encode the full-screen triangle with the pass pipeline, the
	// input texture bindings and p.Uniforms as the uniform buffer.
	return nil
}

// Release implements gpu.Device.
func (d *deviceImpl) Release() {
	if d.released {
		return
	}
	d.released = true
	d.targets = nil
	d.textures = nil
}
