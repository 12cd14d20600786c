// Package gogpu provides the WebGPU rendering device for isoscene using the
// gogpu/gogpu framework.
//
// gogpu selects a HAL implementation per platform: the pure Go path
// (gpu/backend/native, always linked) registers gogpu/wgpu's Vulkan,
// Metal, GLES and software HALs, and the Rust path (wgpu-native) is
// opt-in with -tags rust. The instance, adapter, device and queue are
// acquired through gogpu/wgpu's core package over whichever HALs are
// registered.
package gogpu

import "errors"

// Package errors for the gogpu backend.
var (
	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("gogpu: backend not initialized")

	// ErrNoGPUBackend is returned when no GPU backend is available.
	ErrNoGPUBackend = errors.New("gogpu: no GPU backend available")

	// ErrDeviceCreationFailed is returned when GPU device creation fails.
	ErrDeviceCreationFailed = errors.New("gogpu: device creation failed")

	// ErrShaderCompileFailed is returned when WGSL compilation fails.
	ErrShaderCompileFailed = errors.New("gogpu: shader compilation failed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gogpu: invalid dimensions")
)
