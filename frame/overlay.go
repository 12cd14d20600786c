package frame

import (
	"strconv"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/post"
	"github.com/gogpu/isoscene/text"
	"github.com/gogpu/isoscene/world"
)

// Overlay animation durations in seconds of host-clock time.
const (
	teleportAnimDuration  = 0.6
	explosionAnimDuration = 0.5
	areaAnimDuration      = 0.8
	damageNumberDuration  = 0.9
	damageFlashDuration   = 0.4
)

// runOverlaySystems runs the per-frame gameplay overlays in a fixed
// order: item pickups, timed event animations, movement and trail
// particles, damage numbers.
func (o *Orchestrator) runOverlaySystems(dt float64) error {
	o.detectPickups()
	if err := o.renderEventAnimations(); err != nil {
		return err
	}
	o.spawnMovementParticles()
	o.detectDamage()
	return o.renderDamageNumbers()
}

// detectPickups diffs the tracked item set against the items drawn this
// frame. A tracked item that no longer drew was picked up (or expired);
// either way it bursts once and leaves tracking.
func (o *Orchestrator) detectPickups() {
	for id, it := range o.trackedItems {
		if _, ok := o.drawnItems[id]; ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(it.X, it.Y, 0, 0)
		o.particles.EmitBurst(sx, sy-8, itemColor(it.Kind), 10, o.tick, uint64(id))
		delete(o.trackedItems, id)
	}
}

// eventAge returns the normalized [0,1) age of an event, or ok=false
// once it has outlived the duration.
func eventAge(now float64, ev world.EventView, duration float64) (float64, bool) {
	age := (now - ev.Start) / duration
	if age < 0 || age >= 1 {
		return 0, false
	}
	return age, true
}

func (o *Orchestrator) renderEventAnimations() error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	now := o.state.Now()
	local, hasLocal := o.state.Local()

	for id, ev := range o.state.Deaths() {
		// The local death ring already drew with the depth pass.
		if hasLocal && id == local.ID {
			continue
		}
		age, ok := eventAge(now, ev, deathAnimDuration)
		if !ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(ev.X, ev.Y, o.cam.pos.X, o.cam.pos.Y)
		radius := 4 + age*26
		col := isoscene.RGBA{R: 0.9, G: 0.25, B: 0.2, A: 0.6 * (1 - age)}
		if err := r.SoftEllipse(sx, sy, radius, radius/2, col); err != nil {
			return err
		}
	}

	for id, ev := range o.state.Teleports() {
		age, ok := eventAge(now, ev, teleportAnimDuration)
		if !ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(ev.X, ev.Y, o.cam.pos.X, o.cam.pos.Y)
		// Rising column that narrows as it fades.
		h := 30 * (1 - age)
		col := isoscene.RGBA{R: 0.5, G: 0.4, B: 1, A: 0.7 * (1 - age)}
		if err := r.SoftLine(sx, sy, sx, sy-h-10, 6*(1-age)+1, col); err != nil {
			return err
		}
		if err := r.SoftEllipse(sx, sy, 12*(1-age)+2, 6*(1-age)+1, col); err != nil {
			return err
		}
		if age < 0.3 {
			wx, wy := isoscene.WorldToScreen(ev.X, ev.Y, 0, 0)
			o.particles.EmitMote(wx, wy, col, o.tick, uint64(id))
		}
	}

	for id, ev := range o.state.Explosions() {
		age, ok := eventAge(now, ev, explosionAnimDuration)
		if !ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(ev.X, ev.Y, o.cam.pos.X, o.cam.pos.Y)
		radius := 8 + age*40
		core := isoscene.RGBA{R: 1, G: 0.75, B: 0.25, A: 0.85 * (1 - age)}
		rim := isoscene.RGBA{R: 1, G: 0.35, B: 0.1, A: 0.5 * (1 - age)}
		if err := r.SoftEllipse(sx, sy, radius*1.4, radius*0.7, rim); err != nil {
			return err
		}
		if err := r.SoftEllipse(sx, sy, radius*0.8, radius*0.4, core); err != nil {
			return err
		}
		if age < 0.2 {
			wx, wy := isoscene.WorldToScreen(ev.X, ev.Y, 0, 0)
			o.particles.EmitSparks(wx, wy, core, 6, o.tick, uint64(id))
		}
	}

	for _, ev := range o.state.AreaEffects() {
		age, ok := eventAge(now, ev, areaAnimDuration)
		if !ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(ev.X, ev.Y, o.cam.pos.X, o.cam.pos.Y)
		// Expanding ground ring, flattened to the tile plane.
		radius := 10 + age*38
		col := areaColor(ev.Kind).WithAlpha(0.45 * (1 - age))
		if err := r.SoftEllipse(sx, sy, radius, radius/2, col); err != nil {
			return err
		}
	}
	return nil
}

func areaColor(kind uint8) isoscene.RGBA {
	switch kind {
	case 1:
		return isoscene.RGBA{R: 0.4, G: 1, B: 0.4, A: 1} // heal
	case 2:
		return isoscene.RGBA{R: 0.5, G: 1, B: 0.25, A: 1} // poison
	default:
		return isoscene.RGBA{R: 1, G: 0.6, B: 0.2, A: 1}
	}
}

// spawnMovementParticles emits footstep dust for players that moved
// since the previous frame and trail motes behind live projectiles.
func (o *Orchestrator) spawnMovementParticles() {
	for id, p := range o.state.Players() {
		if p.Dead {
			delete(o.lastPos, id)
			continue
		}
		prev, seen := o.lastPos[id]
		o.lastPos[id] = isoscene.V2(p.X, p.Y)
		if !seen {
			continue
		}
		dx, dy := p.X-prev.X, p.Y-prev.Y
		if dx*dx+dy*dy < 0.0004 {
			continue
		}
		// Throttle on the tick so walking does not flood the pool.
		if (o.tick+uint64(id))%4 != 0 {
			continue
		}
		sx, sy := isoscene.WorldToScreen(p.X, p.Y, 0, 0)
		o.particles.EmitDust(sx, sy, o.tick, uint64(id))
	}

	for id, pr := range o.state.Projectiles() {
		if (o.tick+uint64(id))%2 != 0 {
			continue
		}
		sx, sy := isoscene.WorldToScreen(pr.X, pr.Y, 0, 0)
		o.particles.EmitTrail(sx, sy, trailColor(pr.Archetype), o.tick, uint64(id))
	}
}

func trailColor(arch uint8) isoscene.RGBA {
	switch arch {
	case 1:
		return isoscene.RGBA{R: 1, G: 0.55, B: 0.2, A: 1}
	case 2:
		return isoscene.RGBA{R: 0.45, G: 0.75, B: 1, A: 1}
	case 3:
		return isoscene.RGBA{R: 1, G: 1, B: 0.5, A: 1}
	case 4:
		return isoscene.RGBA{R: 0.45, G: 1, B: 0.35, A: 1}
	default:
		return isoscene.RGBA{R: 0.8, G: 0.7, B: 1, A: 1}
	}
}

// detectDamage compares every player's health against the last frame and
// spawns a floating number plus sparks per observed drop. Local damage
// also arms the screen flash.
func (o *Orchestrator) detectDamage() {
	now := o.state.Now()
	local, hasLocal := o.state.Local()

	seen := make(map[uint32]struct{}, len(o.state.Players())+1)
	check := func(p world.PlayerView) {
		seen[p.ID] = struct{}{}
		prev, ok := o.lastHealth[p.ID]
		o.lastHealth[p.ID] = p.Health
		if !ok || p.Health >= prev {
			return
		}
		o.numbers = append(o.numbers, floatingNumber{
			x: p.X, y: p.Y,
			amount: prev - p.Health,
			start:  now,
		})
		sx, sy := isoscene.WorldToScreen(p.X, p.Y, 0, 0)
		o.particles.EmitSparks(sx, sy-14, isoscene.RGBA{R: 1, G: 0.3, B: 0.25, A: 1}, 4, o.tick, uint64(p.ID))
		if hasLocal && p.ID == local.ID {
			o.flashStart = now
		}
	}

	if hasLocal {
		check(local)
	}
	for _, p := range o.state.Players() {
		if _, done := seen[p.ID]; done {
			continue
		}
		check(p)
	}
	for id := range o.lastHealth {
		if _, ok := seen[id]; !ok {
			delete(o.lastHealth, id)
		}
	}
}

// renderDamageNumbers draws the in-flight numbers rising off their spawn
// point and drops the expired ones in place.
func (o *Orchestrator) renderDamageNumbers() error {
	now := o.state.Now()
	kept := o.numbers[:0]
	for _, n := range o.numbers {
		age := (now - n.start) / damageNumberDuration
		if age >= 1 {
			continue
		}
		kept = append(kept, n)
		if o.face == nil || o.glyphs == nil {
			continue
		}
		if age < 0 {
			age = 0
		}
		sx, sy := isoscene.WorldToScreen(n.x, n.y, o.cam.pos.X, o.cam.pos.Y)
		sy -= 28 + age*22
		col := isoscene.RGBA{R: 1, G: 0.85, B: 0.3, A: 1 - age}
		line := o.face.Shape(strconv.Itoa(n.amount))
		if err := text.DrawCentered(o.ctrl, o.glyphs, line, sx, sy, col); err != nil {
			return err
		}
	}
	o.numbers = kept
	return nil
}

// accumulateLights rebuilds the frame's light list: entity glows,
// projectile glows and decaying explosion flashes, all in frame space.
func (o *Orchestrator) accumulateLights() {
	o.lights.Clear()
	now := o.state.Now()

	for _, p := range o.state.Players() {
		if p.Dead {
			continue
		}
		sx, sy := isoscene.WorldToScreen(p.X, p.Y, o.cam.pos.X, o.cam.pos.Y)
		o.lights.Add(sx, sy-12, 46, teamColor(p.Team), 0.35)
	}
	if local, ok := o.state.Local(); ok && !local.Dead {
		sx, sy := isoscene.WorldToScreen(local.X, local.Y, o.cam.pos.X, o.cam.pos.Y)
		o.lights.Add(sx, sy-12, 70, isoscene.RGBA{R: 1, G: 0.95, B: 0.85, A: 1}, 0.5)
	}
	for _, pr := range o.state.Projectiles() {
		sx, sy := isoscene.WorldToScreen(pr.X, pr.Y, o.cam.pos.X, o.cam.pos.Y)
		o.lights.Add(sx, sy, 34, trailColor(pr.Archetype), 0.6)
	}
	for _, it := range o.state.Items() {
		sx, sy := isoscene.WorldToScreen(it.X, it.Y, o.cam.pos.X, o.cam.pos.Y)
		o.lights.Add(sx, sy-6, 24, itemColor(it.Kind), 0.3)
	}
	for _, ev := range o.state.Explosions() {
		age, ok := eventAge(now, ev, explosionAnimDuration)
		if !ok {
			continue
		}
		sx, sy := isoscene.WorldToScreen(ev.X, ev.Y, o.cam.pos.X, o.cam.pos.Y)
		o.lights.Add(sx, sy, 60+age*80, isoscene.RGBA{R: 1, G: 0.7, B: 0.3, A: 1}, (1-age)*1.2)
	}
}

// updatePostParams rewrites the per-frame post parameters: red damage
// flash from the local hit timer and radial distortion centered on the
// most recent live explosion.
func (o *Orchestrator) updatePostParams() {
	now := o.state.Now()
	o.params = post.DefaultParams()

	if o.flashStart >= 0 {
		age := (now - o.flashStart) / damageFlashDuration
		if age >= 1 {
			o.flashStart = -1
		} else {
			if age < 0 {
				age = 0
			}
			o.params.Overlay = isoscene.RGBA{R: 1, G: 0.1, B: 0.1, A: 0.3 * (1 - age)}
			o.params.Aberration = 2.5 * (1 - age)
		}
	}

	var best world.EventView
	found := false
	for _, ev := range o.state.Explosions() {
		if _, ok := eventAge(now, ev, explosionAnimDuration); !ok {
			continue
		}
		if !found || ev.Start > best.Start {
			best = ev
			found = true
		}
	}
	if found && o.frameW > 0 && o.frameH > 0 {
		age, _ := eventAge(now, best, explosionAnimDuration)
		sx, sy := isoscene.WorldToScreen(best.X, best.Y, o.cam.pos.X, o.cam.pos.Y)
		o.params.DistortX = sx / float64(o.frameW)
		o.params.DistortY = sy / float64(o.frameH)
		o.params.DistortStrength = 0.03 * (1 - age)
	}
}
