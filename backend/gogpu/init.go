package gogpu

import (
	"github.com/gogpu/isoscene/backend"
)

// init registers the gogpu backend on package import.
// This enables automatic backend selection when using backend.Default().
//
// To use the gogpu backend, import this package:
//
//	import _ "github.com/gogpu/isoscene/backend/gogpu"
//
// The pure Go HAL backends are always available; build with -tags rust
// to enable the wgpu-native (Rust) HAL instead.
func init() {
	backend.Register(backend.BackendGoGPU, func() backend.DeviceBackend {
		return &Backend{}
	})
}
