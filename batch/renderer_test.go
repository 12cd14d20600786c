package batch

import (
	"errors"
	"testing"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
)

func newShapeTestRenderer(t *testing.T, capacity int) (*Renderer, *gpu.Recorder) {
	t.Helper()
	rec := gpu.NewRecorder()
	return NewShapeRenderer(rec, capacity), rec
}

func TestDrawOutsideBeginFails(t *testing.T) {
	r, _ := newShapeTestRenderer(t, 0)

	if err := r.FillRect(0, 0, 10, 10, isoscene.White); !errors.Is(err, ErrBatchNotActive) {
		t.Errorf("FillRect outside Begin: err = %v, want ErrBatchNotActive", err)
	}
	if err := r.SetBlendMode(gpu.BlendAdditive); !errors.Is(err, ErrBatchNotActive) {
		t.Errorf("SetBlendMode outside Begin: err = %v, want ErrBatchNotActive", err)
	}
	if err := r.End(); !errors.Is(err, ErrBatchNotActive) {
		t.Errorf("End outside Begin: err = %v, want ErrBatchNotActive", err)
	}
}

func TestDoubleBeginFails(t *testing.T) {
	r, _ := newShapeTestRenderer(t, 0)
	if err := r.Begin(gpu.TargetScreen, gpu.Ortho2D(100, 100)); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := r.Begin(gpu.TargetScreen, gpu.Ortho2D(100, 100)); !errors.Is(err, ErrBatchActive) {
		t.Errorf("second Begin: err = %v, want ErrBatchActive", err)
	}
}

func TestSingleFlushPerPlainBatch(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	for i := 0; i < 50; i++ {
		if err := r.FillRect(float64(i), 0, 5, 5, isoscene.White); err != nil {
			t.Fatalf("FillRect %d: %v", i, err)
		}
	}
	if err := r.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	if got := len(rec.Submissions()); got != 1 {
		t.Errorf("submissions = %d, want 1 (no early flush allowed)", got)
	}
	if r.Flushes() != 1 {
		t.Errorf("Flushes = %d, want 1", r.Flushes())
	}
}

func TestBlendModeChangeFlushes(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	_ = r.FillRect(0, 0, 5, 5, isoscene.White)

	// Same mode: no flush.
	if err := r.SetBlendMode(gpu.BlendNormal); err != nil {
		t.Fatalf("SetBlendMode same: %v", err)
	}
	if len(rec.Submissions()) != 0 {
		t.Fatal("SetBlendMode to same mode must not flush")
	}

	// Mode change: flush the queued rect in normal blend.
	if err := r.SetBlendMode(gpu.BlendAdditive); err != nil {
		t.Fatalf("SetBlendMode: %v", err)
	}
	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions after blend change = %d, want 1", len(subs))
	}
	if subs[0].Blend != gpu.BlendNormal {
		t.Errorf("flushed blend = %v, want Normal", subs[0].Blend)
	}

	_ = r.FillRect(0, 0, 5, 5, isoscene.White)
	_ = r.End()

	subs = rec.Submissions()
	if len(subs) != 2 {
		t.Fatalf("total submissions = %d, want 2", len(subs))
	}
	if subs[1].Blend != gpu.BlendAdditive {
		t.Errorf("second blend = %v, want Additive", subs[1].Blend)
	}
}

func TestCapacityOverflowFlushes(t *testing.T) {
	// Capacity 12 vertices: two rects fit exactly, the third overflows.
	r, rec := newShapeTestRenderer(t, 12)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	for i := 0; i < 3; i++ {
		if err := r.FillRect(float64(i*10), 0, 5, 5, isoscene.White); err != nil {
			t.Fatalf("FillRect %d: %v", i, err)
		}
	}
	_ = r.End()

	subs := rec.Submissions()
	if len(subs) != 2 {
		t.Fatalf("submissions = %d, want 2 (one overflow + End)", len(subs))
	}
	if subs[0].Count != 12 || subs[1].Count != 6 {
		t.Errorf("counts = %d, %d, want 12, 6", subs[0].Count, subs[1].Count)
	}
}

func TestOversizeOperationGrowsBuffer(t *testing.T) {
	// An ellipse fan needs far more than 12 vertices; the buffer must grow
	// and the operation stay atomic in one submission.
	r, rec := newShapeTestRenderer(t, 12)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	if err := r.FillEllipse(100, 100, 40, 40, isoscene.Red); err != nil {
		t.Fatalf("FillEllipse: %v", err)
	}
	_ = r.End()

	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if subs[0].Count < 36 {
		t.Errorf("vertex count = %d, want a full fan", subs[0].Count)
	}
}

func TestFillRectVertices(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	_ = r.FillRect(10, 20, 30, 40, isoscene.RGBA{R: 1, G: 0.5, B: 0.25, A: 0.75})
	_ = r.End()

	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	s := subs[0]
	if s.Count != 6 {
		t.Fatalf("count = %d, want 6", s.Count)
	}
	if len(s.Vertices) != 6*6 {
		t.Fatalf("vertex floats = %d, want 36", len(s.Vertices))
	}
	// First vertex: position then color.
	if s.Vertices[0] != 10 || s.Vertices[1] != 20 {
		t.Errorf("v0 pos = (%v, %v), want (10, 20)", s.Vertices[0], s.Vertices[1])
	}
	if s.Vertices[2] != 1 || s.Vertices[3] != 0.5 || s.Vertices[4] != 0.25 || s.Vertices[5] != 0.75 {
		t.Errorf("v0 color = %v", s.Vertices[2:6])
	}
}

func TestSoftEllipseEdgeAlphaZero(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	_ = r.SoftEllipse(0, 0, 20, 20, isoscene.White)
	_ = r.End()

	s := rec.Submissions()[0]
	stride := 6
	// Triangle layout is center, edge, edge; alpha is the last component.
	if a := s.Vertices[5]; a != 1 {
		t.Errorf("center alpha = %v, want 1", a)
	}
	if a := s.Vertices[stride+5]; a != 0 {
		t.Errorf("edge alpha = %v, want 0", a)
	}
	if a := s.Vertices[2*stride+5]; a != 0 {
		t.Errorf("edge alpha = %v, want 0", a)
	}
}

func TestConvexPolygonTriangleCount(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	pts := []isoscene.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: -5, Y: 5}}
	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	_ = r.FillConvexPolygon(pts, isoscene.Green)
	_ = r.End()

	s := rec.Submissions()[0]
	// N points fan into N-2 triangles.
	if want := (len(pts) - 2) * 3; s.Count != want {
		t.Errorf("count = %d, want %d", s.Count, want)
	}
}

func TestSoftLineThreeStrips(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	_ = r.SoftLine(0, 0, 100, 0, 4, isoscene.White)
	_ = r.End()

	s := rec.Submissions()[0]
	if s.Count != 18 {
		t.Errorf("count = %d, want 18 (three quads)", s.Count)
	}
}

func TestDegenerateLineDrawsNothing(t *testing.T) {
	r, rec := newShapeTestRenderer(t, 0)

	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	if err := r.Line(5, 5, 5, 5, 2, isoscene.White); err != nil {
		t.Fatalf("Line: %v", err)
	}
	_ = r.End()

	if len(rec.Submissions()) != 0 {
		t.Error("zero-length line should emit no vertices")
	}
}

func TestShapeOpsOnSpriteRendererFail(t *testing.T) {
	rec := gpu.NewRecorder()
	r := NewSpriteRenderer(rec, 0)
	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	if err := r.FillRect(0, 0, 1, 1, isoscene.White); !errors.Is(err, ErrWrongMode) {
		t.Errorf("FillRect on sprite renderer: err = %v, want ErrWrongMode", err)
	}
}

func TestSpriteTextureChangeFlushes(t *testing.T) {
	rec := gpu.NewRecorder()
	texA, _ := rec.CreateTexture("a", 64, 64, gpu.FormatRGBA8, make([]byte, 64*64*4))
	texB, _ := rec.CreateTexture("b", 64, 64, gpu.FormatRGBA8, make([]byte, 64*64*4))

	r := NewSpriteRenderer(rec, 0)
	_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	_ = r.DrawQuad(texA, 0, 0, 16, 16, 0, 0, 1, 1, isoscene.White)
	_ = r.DrawQuad(texA, 16, 0, 16, 16, 0, 0, 1, 1, isoscene.White)
	_ = r.DrawQuad(texB, 32, 0, 16, 16, 0, 0, 1, 1, isoscene.White)
	_ = r.End()

	subs := rec.Submissions()
	if len(subs) != 2 {
		t.Fatalf("submissions = %d, want 2 (texture switch + End)", len(subs))
	}
	if subs[0].Texture != texA || subs[0].Count != 12 {
		t.Errorf("first submission tex=%d count=%d, want tex=%d count=12", subs[0].Texture, subs[0].Count, texA)
	}
	if subs[1].Texture != texB || subs[1].Count != 6 {
		t.Errorf("second submission tex=%d count=%d, want tex=%d count=6", subs[1].Texture, subs[1].Count, texB)
	}
}

func TestDeterministicVertexStream(t *testing.T) {
	render := func() []gpu.Command {
		r, rec := newShapeTestRenderer(t, 0)
		_ = r.Begin(gpu.TargetScreen, gpu.Ortho2D(800, 600))
		_ = r.FillEllipse(42, 17, 12, 9, isoscene.Red)
		_ = r.SoftLine(0, 0, 50, 25, 3, isoscene.Green)
		_ = r.End()
		return rec.Submissions()
	}

	a := render()
	b := render()
	if len(a) != len(b) {
		t.Fatalf("submission counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i].Vertices) != len(b[i].Vertices) {
			t.Fatalf("vertex lengths differ in submission %d", i)
		}
		for j := range a[i].Vertices {
			if a[i].Vertices[j] != b[i].Vertices[j] {
				t.Fatalf("vertex %d of submission %d differs: %v vs %v",
					j, i, a[i].Vertices[j], b[i].Vertices[j])
			}
		}
	}
}
