package wgpu

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestGPUInfoString(t *testing.T) {
	info := &GPUInfo{
		Name:       "Test Adapter",
		Vendor:     "acme",
		DeviceType: gputypes.DeviceTypeDiscreteGPU,
		Backend:    gputypes.BackendVulkan,
	}
	got := info.String()
	for _, want := range []string{"Test Adapter", "DiscreteGPU", "Vulkan"} {
		if !strings.Contains(got, want) {
			t.Errorf("GPUInfo.String() = %q, missing %q", got, want)
		}
	}
}

func TestBackendUninitialized(t *testing.T) {
	b := NewBackend()
	if b.IsInitialized() {
		t.Error("IsInitialized = true before Init")
	}
	if b.Device() != nil {
		t.Error("Device != nil before Init")
	}
	if b.GPUInfo() != nil {
		t.Error("GPUInfo != nil before Init")
	}
	// Close before Init is a no-op.
	b.Close()
}
