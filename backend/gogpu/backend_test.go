package gogpu

import (
	"testing"

	"github.com/gogpu/gogpu/gpu/backend/native"
	gputype "github.com/gogpu/gogpu/gpu/types"
)

func TestBackendName(t *testing.T) {
	b := NewBackend()
	if got := b.Name(); got != "gogpu" {
		t.Errorf("Name = %q, want %q", got, "gogpu")
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
	if got := b.HALName(); got != "" {
		t.Errorf("HALName = %q before Init, want empty", got)
	}
	if !b.DeviceHandle().IsZero() {
		t.Error("DeviceHandle not zero before Init")
	}
	// Close before Init is a no-op.
	b.Close()
}

func TestBackendInfoResolves(t *testing.T) {
	// Every graphics API maps to a non-empty display name on this
	// platform, including the automatic default.
	apis := []gputype.GraphicsAPI{
		gputype.GraphicsAPIAuto,
		gputype.GraphicsAPISoftware,
	}
	for _, api := range apis {
		name, _ := native.BackendInfo(api)
		if name == "" {
			t.Errorf("BackendInfo(%v) returned empty name", api)
		}
	}
}
