// Package backend selects among GPU device implementations.
//
// Device backends register themselves on import; the frame renderer asks for
// Default() unless the host injects a device explicitly. The recording
// backend is always available and serves as the headless fallback.
package backend

import (
	"errors"
	"sync"

	"github.com/gogpu/isoscene/gpu"
)

// Backend name constants.
const (
	// BackendGoGPU is the WebGPU device via the gogpu framework.
	BackendGoGPU = "gogpu"
	// BackendWGPU is the WebGPU device talking to gogpu/wgpu core directly.
	BackendWGPU = "wgpu"
	// BackendRecording is the command-capturing headless device.
	BackendRecording = "recording"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// DeviceBackend owns the lifecycle of one gpu.Device implementation.
type DeviceBackend interface {
	// Name returns the backend identifier (e.g., "gogpu", "recording").
	Name() string

	// Init acquires the underlying GPU resources.
	// This must be called before Device.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Device returns the device for issuing draw work.
	// Returns nil before Init.
	Device() gpu.Device
}

// BackendFactory creates a new backend instance.
type BackendFactory func() DeviceBackend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendGoGPU, BackendWGPU, BackendRecording}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) DeviceBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() DeviceBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	for _, factory := range backends {
		if b := factory(); b != nil {
			return b
		}
	}

	return nil
}

// InitDefault initializes the default backend based on availability.
func InitDefault() (DeviceBackend, error) {
	b := Default()
	if b == nil {
		return nil, ErrBackendNotAvailable
	}

	if err := b.Init(); err != nil {
		return nil, err
	}

	return b, nil
}
