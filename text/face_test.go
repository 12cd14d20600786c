package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func newTestFace(t *testing.T) *Face {
	t.Helper()
	f, err := NewFace(goregular.TTF, 16)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return f
}

func TestNewFaceRejectsBadInput(t *testing.T) {
	if _, err := NewFace(goregular.TTF, 0); err == nil {
		t.Error("size 0 accepted")
	}
	if _, err := NewFace([]byte("not a font"), 16); err == nil {
		t.Error("garbage font data accepted")
	}
}

func TestFaceMetrics(t *testing.T) {
	f := newTestFace(t)
	if f.Ascent() <= 0 {
		t.Errorf("Ascent() = %g, want > 0", f.Ascent())
	}
	if f.Descent() <= 0 {
		t.Errorf("Descent() = %g, want > 0", f.Descent())
	}
	if got := f.Size(); got != 16 {
		t.Errorf("Size() = %g, want 16", got)
	}
}

func TestShapeProducesGlyphs(t *testing.T) {
	f := newTestFace(t)
	line := f.Shape("Hello")
	if len(line.Glyphs) != 5 {
		t.Fatalf("glyph count = %d, want 5", len(line.Glyphs))
	}
	if line.Width <= 0 {
		t.Errorf("Width = %g, want > 0", line.Width)
	}
	// Pen positions advance monotonically for LTR text.
	for i := 1; i < len(line.Glyphs); i++ {
		if line.Glyphs[i].X <= line.Glyphs[i-1].X {
			t.Errorf("glyph %d at x=%g, not right of glyph %d at x=%g",
				i, line.Glyphs[i].X, i-1, line.Glyphs[i-1].X)
		}
	}
	if line.Ascent != f.Ascent() || line.Descent != f.Descent() {
		t.Error("line metrics do not match the face")
	}
}

func TestShapeEmptyString(t *testing.T) {
	f := newTestFace(t)
	line := f.Shape("")
	if len(line.Glyphs) != 0 || line.Width != 0 {
		t.Errorf("empty string shaped to %d glyphs, width %g", len(line.Glyphs), line.Width)
	}
}

func TestShapeWiderStringIsWider(t *testing.T) {
	f := newTestFace(t)
	short := f.Shape("hi")
	long := f.Shape("hello there")
	if long.Width <= short.Width {
		t.Errorf("widths: %g (long) <= %g (short)", long.Width, short.Width)
	}
}

func TestShapeDeterministic(t *testing.T) {
	f := newTestFace(t)
	a, b := f.Shape("deterministic"), f.Shape("deterministic")
	if len(a.Glyphs) != len(b.Glyphs) || a.Width != b.Width {
		t.Fatal("repeated shaping differs")
	}
	for i := range a.Glyphs {
		if a.Glyphs[i] != b.Glyphs[i] {
			t.Fatalf("glyph %d differs between runs", i)
		}
	}
}
