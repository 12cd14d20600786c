package batch

import (
	"testing"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

func TestControllerAlternatingDraws(t *testing.T) {
	rec := gpu.NewRecorder()
	tex, _ := rec.CreateTexture("sheet", 64, 64, gpu.FormatRGBA8, make([]byte, 64*64*4))

	c := NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	// 3 shape draws, 2 sprite draws, 3 shape draws.
	for i := 0; i < 3; i++ {
		if err := c.EnsureShape(); err != nil {
			t.Fatalf("EnsureShape: %v", err)
		}
		_ = c.shapes.FillRect(float64(i), 0, 4, 4, isoscene.White)
	}
	for i := 0; i < 2; i++ {
		if err := c.EnsureSprite(); err != nil {
			t.Fatalf("EnsureSprite: %v", err)
		}
		_ = c.sprites.DrawQuad(tex, float64(i), 0, 8, 8, 0, 0, 1, 1, isoscene.White)
	}
	for i := 0; i < 3; i++ {
		if err := c.EnsureShape(); err != nil {
			t.Fatalf("EnsureShape: %v", err)
		}
		_ = c.shapes.FillRect(float64(i), 10, 4, 4, isoscene.White)
	}
	if err := c.EndAll(); err != nil {
		t.Fatalf("EndAll: %v", err)
	}

	if got := c.Switches(); got != 3 {
		t.Errorf("Switches = %d, want 3 (shape, sprite, shape)", got)
	}

	// Each run becomes one submission: 3 shapes, 2 sprites, 3 shapes.
	subs := rec.Submissions()
	if len(subs) != 3 {
		t.Fatalf("submissions = %d, want 3", len(subs))
	}
	wantModes := []gpu.DrawMode{gpu.ModeShape, gpu.ModeSprite, gpu.ModeShape}
	wantCounts := []int{18, 12, 18}
	for i, s := range subs {
		if s.Mode != wantModes[i] {
			t.Errorf("submission %d mode = %v, want %v", i, s.Mode, wantModes[i])
		}
		if s.Count != wantCounts[i] {
			t.Errorf("submission %d count = %d, want %d", i, s.Count, wantCounts[i])
		}
	}
}

func TestControllerSameModeNoSwitch(t *testing.T) {
	rec := gpu.NewRecorder()
	c := NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(100, 100))

	for i := 0; i < 10; i++ {
		if err := c.EnsureShape(); err != nil {
			t.Fatalf("EnsureShape: %v", err)
		}
	}
	if got := c.Switches(); got != 1 {
		t.Errorf("Switches = %d, want 1", got)
	}
	if c.Mode() != ShapeActive {
		t.Errorf("Mode = %v, want ShapeActive", c.Mode())
	}
}

func TestControllerEndAllIdle(t *testing.T) {
	rec := gpu.NewRecorder()
	c := NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(100, 100))

	_ = c.EnsureShape()
	_ = c.shapes.FillRect(0, 0, 1, 1, isoscene.White)
	if err := c.EndAll(); err != nil {
		t.Fatalf("EndAll: %v", err)
	}
	if c.Mode() != Idle {
		t.Errorf("Mode = %v, want Idle", c.Mode())
	}
	// EndAll when already idle is a no-op.
	if err := c.EndAll(); err != nil {
		t.Errorf("second EndAll: %v", err)
	}
}

func TestControllerSetOutputResetsSwitches(t *testing.T) {
	rec := gpu.NewRecorder()
	c := NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(100, 100))

	_ = c.EnsureShape()
	_ = c.EnsureSprite()
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(200, 200))

	if got := c.Switches(); got != 0 {
		t.Errorf("Switches after SetOutput = %d, want 0", got)
	}
	if c.Mode() != Idle {
		t.Errorf("Mode after SetOutput = %v, want Idle", c.Mode())
	}
}

func TestControllerModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Idle, "Idle"},
		{ShapeActive, "ShapeActive"},
		{SpriteActive, "SpriteActive"},
		{Mode(9), "Unknown(9)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
