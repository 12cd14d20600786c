package text

import (
	"testing"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/atlas"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
)

// fakeSource maps glyph IDs to fixed 8x8 regions; gid 0 is missing.
type fakeSource struct {
	tex gpu.TextureID
}

func (f *fakeSource) Glyph(gid uint32) (atlas.Region, float64, float64, bool) {
	if gid == 0 {
		return atlas.Region{}, 0, 0, false
	}
	return atlas.Region{X: int(gid) * 8, Y: 0, W: 8, H: 8}, 0, -8, true
}

func (f *fakeSource) Texture() gpu.TextureID { return f.tex }
func (f *fakeSource) Size() (int, int)       { return 256, 256 }

func newTestLine() Line {
	return Line{
		Glyphs: []Glyph{
			{GID: 1, X: 0, Advance: 8},
			{GID: 0, X: 8, Advance: 4}, // no bitmap, skipped
			{GID: 2, X: 12, Advance: 8},
		},
		Width:   20,
		Ascent:  10,
		Descent: 3,
	}
}

func newSpriteController(t *testing.T) (*batch.Controller, *gpu.Recorder, gpu.TextureID) {
	t.Helper()
	rec := gpu.NewRecorder()
	tex, err := rec.CreateTexture("glyphs", 256, 256, gpu.FormatR8, make([]byte, 256*256))
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	return c, rec, tex
}

func TestDrawEmitsQuadPerGlyph(t *testing.T) {
	c, rec, tex := newSpriteController(t)
	src := &fakeSource{tex: tex}

	if err := Draw(c, src, newTestLine(), 100, 200, isoscene.White); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := c.EndAll(); err != nil {
		t.Fatalf("EndAll: %v", err)
	}

	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1 (one sprite batch)", len(subs))
	}
	// Two drawable glyphs, 6 vertices each.
	if subs[0].Count != 12 {
		t.Errorf("vertex count = %d, want 12", subs[0].Count)
	}
	if subs[0].Texture != tex {
		t.Errorf("texture = %d, want %d", subs[0].Texture, tex)
	}
	// First quad top-left: baseline origin + glyph offset (0, -8).
	if subs[0].Vertices[0] != 100 || subs[0].Vertices[1] != 192 {
		t.Errorf("first vertex = (%v, %v), want (100, 192)",
			subs[0].Vertices[0], subs[0].Vertices[1])
	}
}

func TestDrawEmptyLineNoBatch(t *testing.T) {
	c, rec, tex := newSpriteController(t)
	src := &fakeSource{tex: tex}

	if err := Draw(c, src, Line{}, 0, 0, isoscene.White); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	_ = c.EndAll()
	if len(rec.Submissions()) != 0 {
		t.Error("empty line produced a submission")
	}
}

func TestDrawCenteredOffsets(t *testing.T) {
	c, rec, tex := newSpriteController(t)
	src := &fakeSource{tex: tex}

	if err := DrawCentered(c, src, newTestLine(), 100, 50, isoscene.White); err != nil {
		t.Fatalf("DrawCentered: %v", err)
	}
	_ = c.EndAll()

	subs := rec.Submissions()
	// Line width 20 centered on 100: left edge at 90.
	if subs[0].Vertices[0] != 90 {
		t.Errorf("left edge = %v, want 90", subs[0].Vertices[0])
	}
}

func TestLineHeight(t *testing.T) {
	l := Line{Ascent: 10, Descent: 3}
	if l.Height() != 13 {
		t.Errorf("Height = %v, want 13", l.Height())
	}
}
