// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package particle provides a fixed-capacity particle pool.
//
// Particles are identified by pool index only; expiry swap-removes a slot
// with the last active one, so no external references survive an Update.
// The pool never allocates after construction.
package particle

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
)

// Flags are per-particle behavior bits.
type Flags uint8

const (
	// FlagAdditive renders the particle in additive blend mode.
	FlagAdditive Flags = 1 << iota
	// FlagShrink scales size down linearly over the particle's life.
	FlagShrink
	// FlagSoft renders with a transparent edge instead of a hard fill.
	FlagSoft
)

// Particle is one pool slot. Position and velocity are in world pixel
// space; the camera offset is applied at render time.
type Particle struct {
	Pos  isoscene.Vec2
	Vel  isoscene.Vec2
	Life float64 // seconds remaining
	Init float64 // initial life, for fade and shrink ratios
	Col  isoscene.RGBA
	Size float64
	Grav float64 // pixels per second squared, applied to Vel.Y
	Drag float64 // per-second velocity damping factor
	Flag Flags
}

// DefaultCapacity is the pool size used when NewSystem is given zero.
const DefaultCapacity = 2048

// System is a fixed-capacity particle pool. Not safe for concurrent use.
type System struct {
	pool   []Particle
	active int

	// aux holds indices of normal-blend particles discovered after the
	// render pass has already switched to additive; they are drawn in one
	// trailing normal-blend group.
	aux []int
}

// NewSystem creates a pool of the given capacity (DefaultCapacity if n <= 0).
func NewSystem(n int) *System {
	if n <= 0 {
		n = DefaultCapacity
	}
	return &System{
		pool: make([]Particle, n),
		aux:  make([]int, 0, 64),
	}
}

// Capacity returns the fixed pool size.
func (s *System) Capacity() int { return len(s.pool) }

// Active returns the number of live particles.
func (s *System) Active() int { return s.active }

// Clear removes all live particles.
func (s *System) Clear() { s.active = 0 }

// Emit adds a particle to the pool. It reports false and leaves the pool
// unchanged when the pool is full; callers treat the budget as a soft cap.
func (s *System) Emit(p Particle) bool {
	if s.active == len(s.pool) {
		return false
	}
	if p.Init <= 0 {
		p.Init = p.Life
	}
	s.pool[s.active] = p
	s.active++
	return true
}

// Update advances every live particle by dt seconds: drag, then gravity,
// then position, then life decay. Expired particles are swap-removed.
func (s *System) Update(dt float64) {
	for i := 0; i < s.active; {
		p := &s.pool[i]

		if p.Drag > 0 {
			damp := 1 - p.Drag*dt
			if damp < 0 {
				damp = 0
			}
			p.Vel = p.Vel.Mul(damp)
		}
		p.Vel.Y += p.Grav * dt
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))

		p.Life -= dt
		if p.Life <= 0 {
			s.active--
			s.pool[i] = s.pool[s.active]
			continue
		}
		i++
	}
}

// Render draws every live particle through the controller's shape batch,
// offset by the camera. Normal-blend particles come first; the batch
// switches to additive exactly once, at the first additive particle.
// Normal particles found after that switch are deferred and drawn in one
// trailing normal-blend group, so interleaving in the pool never costs
// more than one switch to additive per frame.
func (s *System) Render(c *batch.Controller, camX, camY float64) error {
	if s.active == 0 {
		return nil
	}
	if err := c.EnsureShape(); err != nil {
		return err
	}
	r, err := c.Shapes()
	if err != nil {
		return err
	}

	s.aux = s.aux[:0]
	additive := false
	for i := 0; i < s.active; i++ {
		p := &s.pool[i]
		if p.Flag&FlagAdditive == 0 {
			if additive {
				s.aux = append(s.aux, i)
				continue
			}
		} else if !additive {
			if err := r.SetBlendMode(gpu.BlendAdditive); err != nil {
				return err
			}
			additive = true
		}
		if err := s.drawOne(r, p, camX, camY); err != nil {
			return err
		}
	}

	if additive {
		if err := r.SetBlendMode(gpu.BlendNormal); err != nil {
			return err
		}
		for _, i := range s.aux {
			if err := s.drawOne(r, &s.pool[i], camX, camY); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *System) drawOne(r *batch.Renderer, p *Particle, camX, camY float64) error {
	t := p.Life / p.Init
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	size := p.Size
	if p.Flag&FlagShrink != 0 {
		size *= t
	}
	if size <= 0 {
		return nil
	}

	col := p.Col
	col.A *= t

	x := p.Pos.X - camX
	y := p.Pos.Y - camY
	if p.Flag&FlagSoft != 0 {
		return r.SoftEllipse(x, y, size, size, col)
	}
	return r.FillEllipse(x, y, size, size, col)
}
