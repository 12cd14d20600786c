package backend

import "testing"

func TestRecordingBackendAlwaysAvailable(t *testing.T) {
	if !IsRegistered(BackendRecording) {
		t.Fatal("recording backend not registered")
	}

	b := Get(BackendRecording)
	if b == nil {
		t.Fatal("Get(recording) returned nil")
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer b.Close()

	if b.Device() == nil {
		t.Error("Device() returned nil after Init")
	}
	if b.Name() != BackendRecording {
		t.Errorf("Name = %q, want %q", b.Name(), BackendRecording)
	}
}

func TestGetUnknownBackend(t *testing.T) {
	if Get("no-such-backend") != nil {
		t.Error("Get of unregistered backend should return nil")
	}
}

func TestRegisterUnregister(t *testing.T) {
	Register("test-backend", func() DeviceBackend {
		return &RecordingBackend{}
	})
	if !IsRegistered("test-backend") {
		t.Error("registered backend not found")
	}

	Unregister("test-backend")
	if IsRegistered("test-backend") {
		t.Error("unregistered backend still found")
	}
}

func TestDefaultFallsBackToRecording(t *testing.T) {
	// Only the recording backend is linked into this test binary, so
	// Default must fall through the priority list to it.
	b := Default()
	if b == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestDeviceNilBeforeInit(t *testing.T) {
	b := NewRecordingBackend()
	if b.Device() != nil {
		t.Error("Device() should be nil before Init")
	}
}
