package atlas

import (
	"fmt"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/world"
)

// DefaultSize is the atlas texture dimension.
const DefaultSize = 2048

// SpriteKey identifies one sprite frame: a character or archetype code,
// an animation frame, and a facing direction.
type SpriteKey struct {
	Kind  uint16
	Frame uint8
	Dir   world.Direction
}

// Provider resolves sprite keys to atlas regions. A false result means
// the sprite is not available this frame; callers draw nothing for it.
type Provider interface {
	Resolve(key SpriteKey) (Region, bool)
	Texture() gpu.TextureID
	Size() (w, h int)
}

// Loader supplies RGBA pixel data for a sprite key on first request.
// ok=false means the asset does not exist (or is not loaded yet).
type Loader func(key SpriteKey) (pixels []byte, w, h int, ok bool)

// Atlas is the standard Provider: one shelf-packed GPU texture filled
// lazily from a Loader. Not safe for concurrent use.
type Atlas struct {
	dev    gpu.Device
	load   Loader
	alloc  *allocator
	size   int
	tex    gpu.TextureID
	ready  bool
	cache  map[SpriteKey]Region
	failed map[SpriteKey]struct{} // warn once per missing key
}

// New creates an atlas of the given dimension (DefaultSize if size <= 0).
// The GPU texture is created on the first successful Resolve.
func New(dev gpu.Device, size int, load Loader) *Atlas {
	if size <= 0 {
		size = DefaultSize
	}
	return &Atlas{
		dev:    dev,
		load:   load,
		alloc:  newAllocator(size, size, 1),
		size:   size,
		cache:  make(map[SpriteKey]Region),
		failed: make(map[SpriteKey]struct{}),
	}
}

// Texture implements Provider. Zero until the first sprite is loaded.
func (a *Atlas) Texture() gpu.TextureID { return a.tex }

// Size implements Provider.
func (a *Atlas) Size() (int, int) { return a.size, a.size }

// Resolve implements Provider. The first request for a key loads its
// pixels, packs a region and uploads it; later requests hit the cache.
func (a *Atlas) Resolve(key SpriteKey) (Region, bool) {
	if r, ok := a.cache[key]; ok {
		return r, true
	}
	if _, bad := a.failed[key]; bad {
		return Region{}, false
	}

	pixels, w, h, ok := a.load(key)
	if !ok {
		a.fail(key, "no asset")
		return Region{}, false
	}
	if len(pixels) < w*h*4 {
		a.fail(key, "short pixel data")
		return Region{}, false
	}

	if err := a.ensureTexture(); err != nil {
		a.fail(key, err.Error())
		return Region{}, false
	}

	r := a.alloc.allocate(w, h)
	if !r.IsValid() {
		a.fail(key, "atlas full")
		return Region{}, false
	}
	if err := a.dev.UpdateTexture(a.tex, r.X, r.Y, w, h, pixels); err != nil {
		a.fail(key, err.Error())
		return Region{}, false
	}
	a.cache[key] = r
	return r, true
}

func (a *Atlas) ensureTexture() error {
	if a.ready {
		return nil
	}
	tex, err := a.dev.CreateTexture("sprite-atlas", a.size, a.size, gpu.FormatRGBA8, nil)
	if err != nil {
		return fmt.Errorf("atlas: create texture: %w", err)
	}
	a.tex = tex
	a.ready = true
	return nil
}

func (a *Atlas) fail(key SpriteKey, reason string) {
	a.failed[key] = struct{}{}
	isoscene.Logger().Warn("atlas: sprite unavailable",
		"kind", key.Kind, "frame", key.Frame, "dir", int(key.Dir), "reason", reason)
}

// Release destroys the atlas texture and forgets all regions.
func (a *Atlas) Release() {
	if a.ready {
		a.dev.DestroyTexture(a.tex)
		a.ready = false
		a.tex = 0
	}
	a.alloc.reset()
	a.cache = make(map[SpriteKey]Region)
	a.failed = make(map[SpriteKey]struct{})
}
