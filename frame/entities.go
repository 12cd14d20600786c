package frame

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/atlas"
	"github.com/gogpu/isoscene/effect"
	"github.com/gogpu/isoscene/text"
	"github.com/gogpu/isoscene/world"
)

// deathAnimDuration is how long the death animation runs, in seconds.
const deathAnimDuration = 1.2

// teamColor maps team codes to bar/marker colors.
func teamColor(team uint8) isoscene.RGBA {
	switch team {
	case 1:
		return isoscene.RGBA{R: 0.3, G: 0.55, B: 1, A: 1}
	case 2:
		return isoscene.RGBA{R: 1, G: 0.35, B: 0.3, A: 1}
	default:
		return isoscene.RGBA{R: 0.8, G: 0.8, B: 0.35, A: 1}
	}
}

// collectBuckets files every live entity, item and projectile into its
// depth bucket, plus the local-player marker and, while the death
// animation runs, the death marker.
func (o *Orchestrator) collectBuckets(rect visRect) {
	o.buckets.reset(rect)
	o.bars.reset()
	for id := range o.drawnItems {
		delete(o.drawnItems, id)
	}

	local, hasLocal := o.state.Local()
	if hasLocal && !local.Dead {
		o.buckets.add(depthEntry{kind: entryLocalMarker, x: local.X, y: local.Y})
	}
	if hasLocal && local.Dead {
		if ev, ok := o.state.Deaths()[local.ID]; ok && o.state.Now()-ev.Start < deathAnimDuration {
			o.buckets.add(depthEntry{kind: entryDeathMarker, x: ev.X, y: ev.Y})
		}
	}

	for _, p := range o.state.Players() {
		if p.Dead {
			continue
		}
		o.buckets.add(depthEntry{kind: entryPlayer, x: p.X, y: p.Y, player: p})
	}
	for _, it := range o.state.Items() {
		o.buckets.add(depthEntry{kind: entryItem, x: it.X, y: it.Y, item: it})
	}
	for _, pr := range o.state.Projectiles() {
		o.buckets.add(depthEntry{kind: entryProjectile, x: pr.X, y: pr.Y, proj: pr})
	}
}

func (o *Orchestrator) drawEntry(e depthEntry) error {
	switch e.kind {
	case entryPlayer:
		return o.drawPlayer(e.player)
	case entryItem:
		return o.drawItem(e.item)
	case entryProjectile:
		sx, sy := isoscene.WorldToScreen(e.x, e.y, o.cam.pos.X, o.cam.pos.Y)
		return effect.Draw(o.ctrl, sx, sy, o.tick, e.proj)
	case entryLocalMarker:
		return o.drawLocalMarker(e.x, e.y)
	case entryDeathMarker:
		return o.drawDeathMarker(e.x, e.y)
	}
	return nil
}

func (o *Orchestrator) drawLocalMarker(x, y float64) error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	sx, sy := isoscene.WorldToScreen(x, y, o.cam.pos.X, o.cam.pos.Y)
	return r.SoftEllipse(sx, sy, 16, 8, isoscene.White.WithAlpha(0.25))
}

func (o *Orchestrator) drawDeathMarker(x, y float64) error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	sx, sy := isoscene.WorldToScreen(x, y, o.cam.pos.X, o.cam.pos.Y)
	// Expanding fading ring driven by the host clock.
	var age float64
	if ev, ok := o.state.Deaths()[o.localID()]; ok {
		age = (o.state.Now() - ev.Start) / deathAnimDuration
	}
	if age < 0 {
		age = 0
	} else if age > 1 {
		age = 1
	}
	radius := 6 + age*30
	col := isoscene.RGBA{R: 1, G: 0.2, B: 0.15, A: 0.7 * (1 - age)}
	return r.SoftEllipse(sx, sy, radius, radius/2, col)
}

func (o *Orchestrator) localID() uint32 {
	if local, ok := o.state.Local(); ok {
		return local.ID
	}
	return 0
}

func (o *Orchestrator) drawPlayer(p world.PlayerView) error {
	sx, sy := isoscene.WorldToScreen(p.X, p.Y, o.cam.pos.X, o.cam.pos.Y)

	drawn := false
	if o.sprites != nil {
		key := atlas.SpriteKey{Kind: uint16(p.Character), Frame: uint8(p.Frame), Dir: p.Dir}
		if reg, ok := o.sprites.Resolve(key); ok {
			if err := o.ctrl.EnsureSprite(); err != nil {
				return err
			}
			r, err := o.ctrl.Sprites()
			if err != nil {
				return err
			}
			aw, ah := o.sprites.Size()
			u0, v0, u1, v1 := reg.UV(aw, ah)
			tint := isoscene.White
			if p.Stealthed {
				tint = tint.WithAlpha(0.4)
			}
			w, h := float64(reg.W), float64(reg.H)
			if err := r.DrawQuad(o.sprites.Texture(), sx-w/2, sy-h+8, w, h, u0, v0, u1, v1, tint); err != nil {
				return err
			}
			drawn = true
		}
	}
	if !drawn {
		// Procedural marker when the sprite is missing: never abort the
		// frame for one absent asset.
		if err := o.ctrl.EnsureShape(); err != nil {
			return err
		}
		r, err := o.ctrl.Shapes()
		if err != nil {
			return err
		}
		col := teamColor(p.Team)
		if p.Stealthed {
			col = col.WithAlpha(0.4)
		}
		if err := r.FillEllipse(sx, sy-10, 7, 10, col); err != nil {
			return err
		}
		if err := r.FillEllipse(sx, sy-22, 4, 4, col.Scale(1.2)); err != nil {
			return err
		}
	}

	if p.Shielded {
		if err := o.ctrl.EnsureShape(); err != nil {
			return err
		}
		r, err := o.ctrl.Shapes()
		if err != nil {
			return err
		}
		shimmer := 0.25 + 0.1*isoscene.TickHash(o.tick/6, uint64(p.ID), 2)
		if err := r.SoftEllipse(sx, sy-12, 14, 18, isoscene.RGBA{R: 0.4, G: 0.7, B: 1, A: shimmer}); err != nil {
			return err
		}
	}

	o.bars.add(barEntry{
		x: sx, y: sy - 34,
		health:    p.Health,
		maxHealth: p.MaxHealth,
		team:      p.Team,
		id:        p.ID,
		label:     p.Name,
	})
	return nil
}

func (o *Orchestrator) drawItem(it world.ItemView) error {
	o.drawnItems[it.ID] = struct{}{}
	o.trackedItems[it.ID] = it

	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	sx, sy := isoscene.WorldToScreen(it.X, it.Y, o.cam.pos.X, o.cam.pos.Y)

	// Gentle bob on the tick keeps drops noticeable.
	bob := 2 * isoscene.TickHash(o.tick/20, uint64(it.ID), 1)
	col := itemColor(it.Kind)
	if err := r.SoftEllipse(sx, sy, 9, 4.5, col.WithAlpha(0.3)); err != nil {
		return err
	}
	pts := []isoscene.Vec2{
		{X: sx, Y: sy - 12 - bob},
		{X: sx + 5, Y: sy - 7 - bob},
		{X: sx, Y: sy - 2 - bob},
		{X: sx - 5, Y: sy - 7 - bob},
	}
	return r.FillConvexPolygon(pts, col)
}

func itemColor(kind uint8) isoscene.RGBA {
	switch kind {
	case 1:
		return isoscene.RGBA{R: 0.95, G: 0.3, B: 0.3, A: 1} // health
	case 2:
		return isoscene.RGBA{R: 0.3, G: 0.5, B: 0.95, A: 1} // mana
	case 3:
		return isoscene.RGBA{R: 0.95, G: 0.8, B: 0.3, A: 1} // gold
	default:
		return isoscene.RGBA{R: 0.7, G: 0.7, B: 0.75, A: 1}
	}
}

// renderDeferredBars draws the postponed health bars in one shape batch,
// then every name label in one sprite batch.
func (o *Orchestrator) renderDeferredBars() error {
	if o.bars.n == 0 {
		return nil
	}
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}

	const barW, barH = 26.0, 3.5
	for _, b := range o.bars.all() {
		frac := 0.0
		if b.maxHealth > 0 {
			frac = float64(b.health) / float64(b.maxHealth)
			if frac < 0 {
				frac = 0
			} else if frac > 1 {
				frac = 1
			}
		}
		x := b.x - barW/2
		if err := r.FillRect(x-1, b.y-1, barW+2, barH+2, isoscene.Black.WithAlpha(0.6)); err != nil {
			return err
		}
		fill := isoscene.RGBA{R: 1 - frac, G: frac, B: 0.15, A: 1}
		if frac > 0 {
			if err := r.FillRect(x, b.y, barW*frac, barH, fill); err != nil {
				return err
			}
		}
		// Team notch at the bar's left edge.
		if err := r.FillRect(x-4, b.y, 2.5, barH, teamColor(b.team)); err != nil {
			return err
		}
	}

	if o.face == nil || o.glyphs == nil {
		return nil
	}
	for _, b := range o.bars.all() {
		if b.label == "" {
			continue
		}
		line := o.face.Shape(b.label)
		if err := text.DrawCentered(o.ctrl, o.glyphs, line, b.x, b.y-4, isoscene.White); err != nil {
			return err
		}
	}
	return nil
}
