package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/backend"
	"github.com/gogpu/isoscene/gpu"
)

// Backend is a rendering device backend using gogpu/wgpu directly.
//
// The backend manages GPU resources including instance, adapter, device,
// and queue, and compiles the module's shaders at Init.
type Backend struct {
	mu sync.RWMutex

	// GPU resources
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	// GPU information
	gpuInfo *GPUInfo

	shaders map[string][]uint32

	dev *deviceImpl

	initialized bool
}

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.DeviceBackend {
		return &Backend{}
	})
}

// NewBackend creates a new Pure Go wgpu backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init initializes the backend by creating GPU resources.
// This includes creating an instance, requesting an adapter,
// creating a device, and getting the command queue.
//
// Returns an error if GPU initialization fails.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	b.instance = core.NewInstance(desc)

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPU, err)
	}
	b.adapter = adapterID

	logGPUInfo(adapterID)
	b.gpuInfo, _ = getGPUInfo(adapterID)

	deviceID, err := createDevice(adapterID, "isoscene-wgpu-device")
	if err != nil {
		return fmt.Errorf("device creation failed: %w", err)
	}
	b.device = deviceID

	queueID, err := getDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		return fmt.Errorf("queue retrieval failed: %w", err)
	}
	b.queue = queueID

	if err := CheckDeviceLimits(deviceID); err != nil {
		isoscene.Logger().Warn("wgpu: limit check failed", "err", err)
	}

	if err := b.compileShaders(); err != nil {
		_ = releaseDevice(deviceID)
		return err
	}

	b.dev = newDeviceImpl(b)
	b.initialized = true
	isoscene.Logger().Info("wgpu: backend initialized")

	return nil
}

func (b *Backend) compileShaders() error {
	sources := map[string]string{
		"shape":     gpu.ShaderShape,
		"sprite":    gpu.ShaderSprite,
		"bright":    gpu.ShaderBright,
		"blur":      gpu.ShaderBlur,
		"composite": gpu.ShaderComposite,
	}

	b.shaders = make(map[string][]uint32, len(sources))
	for label, src := range sources {
		code, err := gpu.CompileShader(label, src)
		if err != nil {
			return err
		}
		b.shaders[label] = code
	}
	return nil
}

// Close releases all backend resources.
// The backend should not be used after Close is called.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	if b.dev != nil {
		b.dev.Release()
		b.dev = nil
	}

	// Release resources in reverse order of creation.
	// The queue is released when the device is dropped.
	if !b.device.IsZero() {
		if err := releaseDevice(b.device); err != nil {
			isoscene.Logger().Warn("wgpu: error releasing device", "err", err)
		}
		b.device = core.DeviceID{}
	}

	if !b.adapter.IsZero() {
		if err := releaseAdapter(b.adapter); err != nil {
			isoscene.Logger().Warn("wgpu: error releasing adapter", "err", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.gpuInfo = nil
	b.shaders = nil
	b.initialized = false
}

// Device returns the gpu.Device for issuing draw work.
// Returns nil before Init.
func (b *Backend) Device() gpu.Device {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.initialized {
		return nil
	}
	return b.dev
}

// GPUInfo returns information about the selected adapter.
// Returns nil before Init.
func (b *Backend) GPUInfo() *GPUInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.gpuInfo
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}
