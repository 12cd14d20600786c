package gogpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gogpu/gpu/backend/native"
	gputype "github.com/gogpu/gogpu/gpu/types"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

// Backend is the WebGPU rendering device backend selected through gogpu.
// It implements backend.DeviceBackend.
//
// gogpu treats backend selection and the device path as separate layers:
// importing gpu/backend/native registers the pure Go HAL implementations
// (Vulkan, Metal, GLES, software) with gogpu/wgpu, BackendInfo maps a
// GraphicsAPI to the HAL variant for this platform, and the instance,
// adapter, device and queue are then acquired through wgpu/core, which
// discovers the registered HALs. The device handed to the renderer issues
// all work in strict call order; the single-threaded frame contract means
// no locking happens on the submission path, only around Init/Close.
type Backend struct {
	mu sync.RWMutex

	// api selects the graphics API; GraphicsAPIAuto picks the platform
	// default (Vulkan on Windows/Linux, Metal on macOS).
	api gputype.GraphicsAPI

	halName string
	variant gputypes.Backend

	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	// Compiled SPIR-V for each pipeline, keyed by shader label.
	shaders map[string][]uint32

	dev *deviceImpl

	initialized bool
}

// NewBackend creates a new gogpu rendering backend.
// The backend must be initialized with Init() before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return "gogpu"
}

// SetGraphicsAPI overrides the graphics API used at Init. The zero value
// GraphicsAPIAuto selects the platform default. Calling this after Init
// has no effect until the backend is closed and reinitialized.
func (b *Backend) SetGraphicsAPI(api gputype.GraphicsAPI) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.api = api
}

// Init initializes the backend by creating GPU resources.
// This includes:
//   - Resolving the HAL variant for the selected graphics API
//   - Creating a WebGPU instance over the registered HALs
//   - Requesting a GPU adapter
//   - Creating a logical device and its queue
//   - Compiling the batch and post-processing shaders
//
// Returns an error if GPU initialization fails.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	b.halName, b.variant = native.BackendInfo(b.api)

	// BackendInfo reports the software rasterizer and unsupported
	// platforms both as the empty variant; the instance then tries every
	// registered HAL instead of a single one.
	mask := gputypes.BackendsAll
	if b.variant != gputypes.BackendEmpty {
		mask = 1 << b.variant
	}

	isoscene.Logger().Info("gogpu: using GPU backend",
		"name", b.halName, "api", b.api.String())

	b.instance = core.NewInstance(&gputypes.InstanceDescriptor{
		Backends: mask,
	})

	adapterID, err := b.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoGPUBackend, err)
	}
	b.adapter = adapterID

	deviceID, err := core.RequestDevice(adapterID, &gputypes.DeviceDescriptor{
		Label:          "isoscene-device",
		RequiredLimits: gputypes.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}
	b.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = core.DeviceDrop(deviceID)
		return fmt.Errorf("%w: %w", ErrDeviceCreationFailed, err)
	}
	b.queue = queueID

	if err := b.compileShaders(); err != nil {
		_ = core.DeviceDrop(deviceID)
		return err
	}

	b.dev = newDeviceImpl(b)
	b.initialized = true
	isoscene.Logger().Info("gogpu: backend initialized")

	return nil
}

// compileShaders compiles every WGSL source the renderer uses.
// Compilation happens once at Init; a failing shader fails the whole
// backend rather than degrading mid-frame.
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
			return fmt.Errorf("%w: %w", ErrShaderCompileFailed, err)
		}
		b.shaders[label] = code
		isoscene.Logger().Debug("gogpu: shader compiled", "label", label, "words", len(code))
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

	// The queue is released when the device is dropped.
	if !b.device.IsZero() {
		if err := core.DeviceDrop(b.device); err != nil {
			isoscene.Logger().Warn("gogpu: error releasing device", "err", err)
		}
		b.device = core.DeviceID{}
	}

	if !b.adapter.IsZero() {
		if err := core.AdapterDrop(b.adapter); err != nil {
			isoscene.Logger().Warn("gogpu: error releasing adapter", "err", err)
		}
		b.adapter = core.AdapterID{}
	}

	b.instance = nil
	b.queue = core.QueueID{}
	b.halName = ""
	b.variant = gputypes.BackendEmpty
	b.shaders = nil
	b.initialized = false

	isoscene.Logger().Info("gogpu: backend closed")
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

// HALName returns the display name of the selected HAL backend.
// Returns the empty string before Init.
func (b *Backend) HALName() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.halName
}

// DeviceHandle returns the GPU device handle.
// Returns the zero handle if the backend is not initialized.
func (b *Backend) DeviceHandle() core.DeviceID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.device
}

// Queue returns the GPU queue handle.
// Returns the zero handle if the backend is not initialized.
func (b *Backend) Queue() core.QueueID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.queue
}

// IsInitialized returns true if the backend has been initialized.
func (b *Backend) IsInitialized() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.initialized
}
