package backend

import "github.com/gogpu/isoscene/gpu"

// RecordingBackend wraps gpu.Recorder behind the DeviceBackend interface.
// It always initializes successfully, which makes it the fallback when no
// GPU is present (CI, headless tools, tests).
type RecordingBackend struct {
	recorder *gpu.Recorder
}

// init registers the recording backend on package import.
func init() {
	Register(BackendRecording, func() DeviceBackend {
		return &RecordingBackend{}
	})
}

// NewRecordingBackend creates a new recording backend.
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{}
}

// Name returns the backend identifier.
func (b *RecordingBackend) Name() string {
	return BackendRecording
}

// Init initializes the backend.
func (b *RecordingBackend) Init() error {
	if b.recorder == nil {
		b.recorder = gpu.NewRecorder()
	}
	return nil
}

// Close releases the recorder.
func (b *RecordingBackend) Close() {
	if b.recorder != nil {
		b.recorder.Release()
		b.recorder = nil
	}
}

// Device returns the recording device, or nil before Init.
func (b *RecordingBackend) Device() gpu.Device {
	if b.recorder == nil {
		return nil
	}
	return b.recorder
}

// Recorder returns the typed recorder for command inspection.
// Returns nil before Init.
func (b *RecordingBackend) Recorder() *gpu.Recorder {
	return b.recorder
}
