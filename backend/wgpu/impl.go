package wgpu

import (
	"github.com/gogpu/isoscene/gpu"
)

// deviceImpl implements gpu.Device on the wgpu core handles.
//
// Resource bookkeeping is complete; buffer upload and pass encoding go
// through stub handles until the corresponding core APIs stabilize, the
// same staging the gogpu backend uses.
type deviceImpl struct {
	backend *Backend

	nextTarget  gpu.TargetID
	nextTexture gpu.TextureID

	targets  map[gpu.TargetID][2]int
	textures map[gpu.TextureID][2]int

	released bool
}

func newDeviceImpl(b *Backend) *deviceImpl {
	return &deviceImpl{
		backend:     b,
		nextTarget:  1,
		nextTexture: 1,
		targets:     make(map[gpu.TargetID][2]int),
		textures:    make(map[gpu.TextureID][2]int),
	}
}

// CreateTarget implements gpu.Device.
func (d *deviceImpl) CreateTarget(label string, w, h int, format gpu.TextureFormat) (gpu.TargetID, error) {
	if d.released {
		return 0, gpu.ErrDisposed
	}
	id := d.nextTarget
	d.nextTarget++
	d.targets[id] = [2]int{w, h}
	return id, nil
}

// ResizeTarget implements gpu.Device.
func (d *deviceImpl) ResizeTarget(id gpu.TargetID, w, h int) error {
	if d.released {
		return gpu.ErrDisposed
	}
	if _, ok := d.targets[id]; !ok {
		return gpu.ErrInvalidTarget
	}
	d.targets[id] = [2]int{w, h}
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
	return nil
}

// CreateTexture implements gpu.Device.
func (d *deviceImpl) CreateTexture(label string, w, h int, format gpu.TextureFormat, pixels []byte) (gpu.TextureID, error) {
	if d.released {
		return 0, gpu.ErrDisposed
	}
	id := d.nextTexture
	d.nextTexture++
	d.textures[id] = [2]int{w, h}
	return id, nil
}

// UpdateTexture implements gpu.Device.
func (d *deviceImpl) UpdateTexture(id gpu.TextureID, x, y, w, h int, pixels []byte) error {
	if d.released {
		return gpu.ErrDisposed
	}
	if _, ok := d.textures[id]; !ok {
		return gpu.ErrInvalidTexture
	}
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
	if s.Mode == gpu.ModeSprite {
		if _, ok := d.textures[s.Texture]; !ok {
			return gpu.ErrInvalidTexture
		}
	}
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
