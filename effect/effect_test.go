package effect

import (
	"testing"

	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/world"
)

func newTestController() (*batch.Controller, *gpu.Recorder) {
	rec := gpu.NewRecorder()
	c := batch.NewController(rec, 0)
	c.SetOutput(gpu.TargetScreen, gpu.Ortho2D(800, 600))
	return c, rec
}

func TestLookupUnregisteredIsNil(t *testing.T) {
	if fn := Lookup(60); fn != nil {
		t.Error("Lookup of unregistered code must return nil")
	}
	if fn := Lookup(ArchFireball); fn == nil {
		t.Error("Lookup(ArchFireball) returned nil")
	}
}

func TestRegisterOutOfRangeIgnored(t *testing.T) {
	// Code 64 is outside the table; Register must not panic.
	Register(MaxArchetypes, Generic)
	if fn := Lookup(MaxArchetypes); fn != nil {
		t.Error("out-of-range code should stay unregistered")
	}
}

func TestDrawFallsBackToGeneric(t *testing.T) {
	c, rec := newTestController()
	p := world.ProjectileView{ID: 5, Archetype: 61, VX: 1, VY: 0}

	if err := Draw(c, 100, 100, 10, p); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if err := c.EndAll(); err != nil {
		t.Fatalf("EndAll: %v", err)
	}

	if len(rec.Submissions()) == 0 {
		t.Error("generic fallback drew nothing")
	}
}

func TestDrawUsesRegisteredRecipe(t *testing.T) {
	called := false
	Register(62, func(c *batch.Controller, x, y float64, tick uint64, p world.ProjectileView) error {
		called = true
		return nil
	})
	defer Register(62, nil)

	c, _ := newTestController()
	if err := Draw(c, 0, 0, 0, world.ProjectileView{Archetype: 62}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if !called {
		t.Error("registered recipe was not invoked")
	}
}

func TestRecipesDeterministic(t *testing.T) {
	archetypes := []uint8{ArchFireball, ArchFrostbolt, ArchLightning, ArchToxicOrb, 63}
	for _, a := range archetypes {
		a := a
		t.Run(archetypeName(a), func(t *testing.T) {
			render := func() []gpu.Command {
				c, rec := newTestController()
				p := world.ProjectileView{ID: 11, Archetype: a, VX: 3, VY: -1}
				if err := Draw(c, 200, 150, 77, p); err != nil {
					t.Fatalf("Draw: %v", err)
				}
				if err := c.EndAll(); err != nil {
					t.Fatalf("EndAll: %v", err)
				}
				return rec.Submissions()
			}
			x, y := render(), render()
			if len(x) != len(y) {
				t.Fatalf("submission counts differ: %d vs %d", len(x), len(y))
			}
			for i := range x {
				if len(x[i].Vertices) != len(y[i].Vertices) {
					t.Fatalf("vertex counts differ in submission %d", i)
				}
				for j := range x[i].Vertices {
					if x[i].Vertices[j] != y[i].Vertices[j] {
						t.Fatalf("vertex %d differs in submission %d", j, i)
					}
				}
			}
		})
	}
}

func archetypeName(a uint8) string {
	switch a {
	case ArchFireball:
		return "fireball"
	case ArchFrostbolt:
		return "frostbolt"
	case ArchLightning:
		return "lightning"
	case ArchToxicOrb:
		return "toxicorb"
	default:
		return "generic"
	}
}

func TestGenericRestoresNormalBlend(t *testing.T) {
	c, _ := newTestController()
	if err := Draw(c, 50, 50, 1, world.ProjectileView{ID: 1, Archetype: 63}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	r, err := c.Shapes()
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if r.BlendMode() != gpu.BlendNormal {
		t.Errorf("blend after draw = %v, want Normal", r.BlendMode())
	}
}

func TestZeroVelocityProjectileStillDraws(t *testing.T) {
	c, rec := newTestController()
	if err := Generic(c, 10, 10, 3, world.ProjectileView{ID: 2}); err != nil {
		t.Fatalf("Generic: %v", err)
	}
	_ = c.EndAll()
	if len(rec.Submissions()) == 0 {
		t.Error("stationary projectile drew nothing")
	}
}
