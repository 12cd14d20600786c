package isoscene

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic and must report disabled.
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled at all levels")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	Logger().Info("adapter selected", "name", "test")
	if buf.Len() == 0 {
		t.Error("expected log output after SetLogger")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	Logger().Info("should be dropped")
	if buf.Len() != 0 {
		t.Error("nil logger should silence output")
	}
}
