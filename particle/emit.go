package particle

import "github.com/gogpu/isoscene"

// Emit helpers cover the two in-game families: ambient/weather effects
// (dust, drifting motes, rain) and combat/impact effects (sparks, bursts,
// trails). Jitter comes from the tick hash so a given (tick, id) pair
// always produces the same spread.

// EmitDust spawns a footstep dust puff at a world pixel position.
func (s *System) EmitDust(x, y float64, tick, id uint64) {
	for i := 0; i < 3; i++ {
		salt := uint64(i)
		s.Emit(Particle{
			Pos: isoscene.V2(
				x+isoscene.TickHashRange(tick, id, salt, -6, 6),
				y+isoscene.TickHashRange(tick, id, salt+10, -3, 3),
			),
			Vel: isoscene.V2(
				isoscene.TickHashRange(tick, id, salt+20, -12, 12),
				isoscene.TickHashRange(tick, id, salt+30, -22, -8),
			),
			Life: 0.4 + isoscene.TickHashRange(tick, id, salt+40, 0, 0.2),
			Col:  isoscene.RGBA{R: 0.55, G: 0.5, B: 0.42, A: 0.5},
			Size: 2.5,
			Drag: 2.0,
			Flag: FlagSoft | FlagShrink,
		})
	}
}

// EmitMote spawns a slow ambient drift mote, used by themed backgrounds.
func (s *System) EmitMote(x, y float64, col isoscene.RGBA, tick, id uint64) {
	s.Emit(Particle{
		Pos: isoscene.V2(x, y),
		Vel: isoscene.V2(
			isoscene.TickHashRange(tick, id, 1, -5, 5),
			isoscene.TickHashRange(tick, id, 2, -14, -6),
		),
		Life: 1.5 + isoscene.TickHashRange(tick, id, 3, 0, 1),
		Col:  col,
		Size: 1.8,
		Flag: FlagSoft | FlagAdditive,
	})
}

// EmitRain spawns one falling rain streak above the visible area.
func (s *System) EmitRain(x, y float64, tick, id uint64) {
	s.Emit(Particle{
		Pos:  isoscene.V2(x, y),
		Vel:  isoscene.V2(-30, 260+isoscene.TickHashRange(tick, id, 7, 0, 60)),
		Life: 1.2,
		Col:  isoscene.RGBA{R: 0.5, G: 0.6, B: 0.8, A: 0.35},
		Size: 1.2,
		Flag: FlagSoft,
	})
}

// EmitSparks spawns n impact sparks radiating from a hit point.
func (s *System) EmitSparks(x, y float64, col isoscene.RGBA, n int, tick, id uint64) {
	for i := 0; i < n; i++ {
		salt := uint64(i)
		s.Emit(Particle{
			Pos: isoscene.V2(x, y),
			Vel: isoscene.V2(
				isoscene.TickHashRange(tick, id, salt, -90, 90),
				isoscene.TickHashRange(tick, id, salt+100, -110, -30),
			),
			Life: 0.3 + isoscene.TickHashRange(tick, id, salt+200, 0, 0.25),
			Col:  col,
			Size: 2.0,
			Grav: 220,
			Flag: FlagAdditive | FlagShrink,
		})
	}
}

// EmitBurst spawns a ring burst, used for item pickups and teleports.
func (s *System) EmitBurst(x, y float64, col isoscene.RGBA, n int, tick, id uint64) {
	for i := 0; i < n; i++ {
		salt := uint64(i)
		speed := 40 + isoscene.TickHashRange(tick, id, salt, 0, 40)
		dir := isoscene.V2(
			isoscene.TickHashRange(tick, id, salt+50, -1, 1),
			isoscene.TickHashRange(tick, id, salt+150, -1, 1),
		).Normalize()
		s.Emit(Particle{
			Pos:  isoscene.V2(x, y),
			Vel:  dir.Mul(speed),
			Life: 0.5 + isoscene.TickHashRange(tick, id, salt+250, 0, 0.3),
			Col:  col,
			Size: 2.4,
			Drag: 1.5,
			Flag: FlagAdditive | FlagShrink | FlagSoft,
		})
	}
}

// EmitTrail spawns one fading trail fragment behind a projectile.
func (s *System) EmitTrail(x, y float64, col isoscene.RGBA, tick, id uint64) {
	s.Emit(Particle{
		Pos: isoscene.V2(
			x+isoscene.TickHashRange(tick, id, 1, -2, 2),
			y+isoscene.TickHashRange(tick, id, 2, -2, 2),
		),
		Life: 0.25,
		Col:  col,
		Size: 2.2,
		Flag: FlagAdditive | FlagShrink | FlagSoft,
	})
}
