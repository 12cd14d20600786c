package post

import (
	"math"
	"sync"
)

// MaxKernelSize is the widest 1D kernel the blur shader accepts. The
// shader's weight uniform holds 16 vec4s.
const MaxKernelSize = 64

// GaussianKernel generates a normalized 1D Gaussian kernel using the
// radius as sigma. Size is 2*ceil(3*sigma)+1, clamped to MaxKernelSize.
// Radius <= 0 yields the identity kernel [1].
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(radius * 3))
	size := half*2 + 1
	if size > MaxKernelSize {
		size = MaxKernelSize
		if size%2 == 0 {
			size--
		}
		half = size / 2
	}

	kernel := make([]float32, size)
	twoSigmaSq := 2 * radius * radius
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	inv := float32(1 / sum)
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

// kernels caches generated kernels by radius quantized to 0.01.
var kernels struct {
	mu    sync.RWMutex
	cache map[int][]float32
}

// CachedKernel returns a shared Gaussian kernel for the radius. The blur
// radius rarely changes between frames, so the cache stays tiny.
func CachedKernel(radius float64) []float32 {
	key := int(radius * 100)

	kernels.mu.RLock()
	k, ok := kernels.cache[key]
	kernels.mu.RUnlock()
	if ok {
		return k
	}

	k = GaussianKernel(radius)
	kernels.mu.Lock()
	if kernels.cache == nil {
		kernels.cache = make(map[int][]float32)
	}
	kernels.cache[key] = k
	kernels.mu.Unlock()
	return k
}

// PackKernel lays a kernel out as the blur shader's uniform block:
// [size, pad, pad, pad, w0..w63] padded with zeros to MaxKernelSize.
func PackKernel(kernel []float32) []float32 {
	out := make([]float32, 4+MaxKernelSize)
	out[0] = float32(len(kernel))
	copy(out[4:], kernel)
	return out
}
