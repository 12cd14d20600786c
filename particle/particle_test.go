package particle

import (
	"testing"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
)

func basic(life float64, flag Flags) Particle {
	return Particle{
		Pos:  isoscene.V2(100, 100),
		Life: life,
		Col:  isoscene.White,
		Size: 3,
		Flag: flag,
	}
}

func TestEmitFullPoolRejected(t *testing.T) {
	s := NewSystem(4)
	for i := 0; i < 4; i++ {
		if !s.Emit(basic(1, 0)) {
			t.Fatalf("emit %d rejected with room left", i)
		}
	}
	if s.Emit(basic(1, 0)) {
		t.Error("emit on full pool must report false")
	}
	if s.Active() != 4 {
		t.Errorf("active = %d, want 4 (rejected emit must not change count)", s.Active())
	}
}

func TestUpdateExpiresBySwapRemove(t *testing.T) {
	s := NewSystem(8)
	// Distinct sizes let us track which particles survive.
	for i := 0; i < 5; i++ {
		p := basic(1, 0)
		if i == 1 || i == 3 {
			p.Life = 0.05 // expires on the first update
		}
		p.Size = float64(i + 1)
		s.Emit(p)
	}

	s.Update(0.1)

	if s.Active() != 3 {
		t.Fatalf("active = %d, want 3", s.Active())
	}
	seen := map[float64]bool{}
	for i := 0; i < s.active; i++ {
		seen[s.pool[i].Size] = true
	}
	for _, want := range []float64{1, 3, 5} {
		if !seen[want] {
			t.Errorf("survivor with size %v missing after swap-remove", want)
		}
	}
	if seen[2] || seen[4] {
		t.Error("expired particle still present")
	}
}

func TestUpdateDtAtLeastLifeRemoves(t *testing.T) {
	s := NewSystem(4)
	s.Emit(basic(0.5, 0))
	s.Update(0.5)
	if s.Active() != 0 {
		t.Errorf("active = %d, want 0 when dt >= life", s.Active())
	}
}

func TestUpdateIntegrationOrder(t *testing.T) {
	s := NewSystem(1)
	s.Emit(Particle{
		Pos:  isoscene.V2(0, 0),
		Vel:  isoscene.V2(10, 0),
		Life: 1,
		Col:  isoscene.White,
		Size: 1,
		Grav: 100,
		Drag: 1,
	})

	s.Update(0.1)

	p := s.pool[0]
	// Drag first: vel.x = 10 * (1 - 0.1) = 9. Then gravity: vel.y = 10.
	// Then position: pos = vel * dt.
	if got, want := p.Vel.X, 9.0; !approx(got, want) {
		t.Errorf("vel.x = %v, want %v", got, want)
	}
	if got, want := p.Vel.Y, 10.0; !approx(got, want) {
		t.Errorf("vel.y = %v, want %v", got, want)
	}
	if got, want := p.Pos.X, 0.9; !approx(got, want) {
		t.Errorf("pos.x = %v, want %v", got, want)
	}
	if got, want := p.Pos.Y, 1.0; !approx(got, want) {
		t.Errorf("pos.y = %v, want %v", got, want)
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

// blendChanges counts blend transitions across the recorded submissions.
func blendChanges(subs []gpu.Command) int {
	n := 0
	for i := 1; i < len(subs); i++ {
		if subs[i].Blend != subs[i-1].Blend {
			n++
		}
	}
	return n
}

func TestRenderBoundsBlendSwitches(t *testing.T) {
	rec := gpu.NewRecorder()
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	s := NewSystem(16)
	// Worst-case interleaving: N A N A N A.
	flags := []Flags{0, FlagAdditive, 0, FlagAdditive, 0, FlagAdditive}
	for _, f := range flags {
		s.Emit(basic(1, f))
	}

	if err := s.Render(c, 0, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := c.EndAll(); err != nil {
		t.Fatalf("EndAll: %v", err)
	}

	subs := rec.Submissions()
	// normal run, additive run, deferred normal run.
	if len(subs) != 3 {
		t.Fatalf("submissions = %d, want 3", len(subs))
	}
	wantBlend := []gpu.BlendMode{gpu.BlendNormal, gpu.BlendAdditive, gpu.BlendNormal}
	for i, sub := range subs {
		if sub.Blend != wantBlend[i] {
			t.Errorf("submission %d blend = %v, want %v", i, sub.Blend, wantBlend[i])
		}
	}
	if got := blendChanges(subs); got != 2 {
		t.Errorf("blend transitions = %d, want 2 (one to additive, one back)", got)
	}
}

func TestRenderAllNormalNoSwitch(t *testing.T) {
	rec := gpu.NewRecorder()
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	s := NewSystem(16)
	for i := 0; i < 5; i++ {
		s.Emit(basic(1, FlagSoft))
	}
	if err := s.Render(c, 0, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	_ = c.EndAll()

	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	if subs[0].Blend != gpu.BlendNormal {
		t.Errorf("blend = %v, want Normal", subs[0].Blend)
	}
}

func TestRenderAppliesCameraOffset(t *testing.T) {
	rec := gpu.NewRecorder()
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	s := NewSystem(1)
	s.Emit(basic(1, 0)) // at world pixel (100, 100)
	if err := s.Render(c, 40, 25); err != nil {
		t.Fatalf("Render: %v", err)
	}
	_ = c.EndAll()

	subs := rec.Submissions()
	if len(subs) != 1 {
		t.Fatalf("submissions = %d, want 1", len(subs))
	}
	// Ellipse fan vertices orbit the offset center; check the first vertex
	// (the fan center) directly.
	cx, cy := subs[0].Vertices[0], subs[0].Vertices[1]
	if cx != 60 || cy != 75 {
		t.Errorf("fan center = (%v, %v), want (60, 75)", cx, cy)
	}
}

func TestEmitHelpersDeterministic(t *testing.T) {
	run := func() []Particle {
		s := NewSystem(64)
		s.EmitSparks(50, 50, isoscene.Red, 6, 42, 7)
		s.EmitBurst(80, 80, isoscene.Green, 8, 42, 7)
		s.EmitDust(10, 10, 42, 7)
		out := make([]Particle, s.Active())
		copy(out, s.pool[:s.Active()])
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs:\n  %+v\n  %+v", i, a[i], b[i])
		}
	}
}

func TestShrinkAndFade(t *testing.T) {
	rec := gpu.NewRecorder()
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))

	s := NewSystem(1)
	p := basic(1, FlagShrink)
	p.Init = 2 // half of life already spent
	s.Emit(p)
	if err := s.Render(c, 0, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	_ = c.EndAll()

	sub := rec.Submissions()[0]
	// Alpha fades with the life ratio; check any vertex alpha is 0.5.
	if a := sub.Vertices[5]; !approx(float64(a), 0.5) {
		t.Errorf("alpha = %v, want 0.5", a)
	}
}
