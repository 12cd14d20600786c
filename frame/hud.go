package frame

import (
	"fmt"

	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/gpu"
	"github.com/gogpu/isoscene/text"
)

// killFeedDuration is how long a kill line stays on screen, in seconds.
const killFeedDuration = 6.0

// killFeedMax caps the visible kill-feed lines.
const killFeedMax = 5

// gameOver reports whether the local player is dead with the death
// animation finished, which replaces the frame with the game-over screen.
func (o *Orchestrator) gameOver() bool {
	local, ok := o.state.Local()
	if !ok || !local.Dead {
		return false
	}
	ev, ok := o.state.Deaths()[local.ID]
	if !ok {
		return true
	}
	return o.state.Now()-ev.Start >= deathAnimDuration
}

// renderGameOver draws the full-screen death state in window pixels.
func (o *Orchestrator) renderGameOver(windowW, windowH int) error {
	if err := o.dev.ClearTarget(gpu.TargetScreen, 0, 0, 0, 1); err != nil {
		return err
	}
	if err := o.ctrl.SetOutput(gpu.TargetScreen, gpu.Ortho2D(float64(windowW), float64(windowH))); err != nil {
		return err
	}
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}
	w, h := float64(windowW), float64(windowH)
	if err := r.FillRect(0, 0, w, h, isoscene.RGBA{R: 0.08, G: 0.01, B: 0.01, A: 1}); err != nil {
		return err
	}
	// Slow red pulse behind the message.
	pulse := 0.15 + 0.05*isoscene.TickHash(o.tick/40, 0, 9)
	if err := r.SoftEllipse(w/2, h/2, w*0.3, h*0.18, isoscene.Red.WithAlpha(pulse)); err != nil {
		return err
	}

	if o.face != nil && o.glyphs != nil {
		line := o.face.Shape("YOU DIED")
		if err := text.DrawCentered(o.ctrl, o.glyphs, line, w/2, h/2, isoscene.RGBA{R: 0.95, G: 0.2, B: 0.15, A: 1}); err != nil {
			return err
		}
		hint := o.face.Shape("waiting to respawn")
		if err := text.DrawCentered(o.ctrl, o.glyphs, hint, w/2, h/2+28, isoscene.White.WithAlpha(0.7)); err != nil {
			return err
		}
	}
	return o.ctrl.EndAll()
}

// renderHUD draws the local health bar, status pips and the kill feed in
// window pixels. Callers have already set the window projection.
func (o *Orchestrator) renderHUD(windowW, windowH int) error {
	if err := o.ctrl.EnsureShape(); err != nil {
		return err
	}
	r, err := o.ctrl.Shapes()
	if err != nil {
		return err
	}

	if local, ok := o.state.Local(); ok {
		const barW, barH = 220.0, 14.0
		x := 24.0
		y := float64(windowH) - 40
		frac := 0.0
		if local.MaxHealth > 0 {
			frac = float64(local.Health) / float64(local.MaxHealth)
			if frac < 0 {
				frac = 0
			} else if frac > 1 {
				frac = 1
			}
		}
		if err := r.FillRect(x-2, y-2, barW+4, barH+4, isoscene.Black.WithAlpha(0.7)); err != nil {
			return err
		}
		if frac > 0 {
			fill := isoscene.RGBA{R: 1 - frac*0.8, G: frac, B: 0.2, A: 1}
			if err := r.FillRect(x, y, barW*frac, barH, fill); err != nil {
				return err
			}
		}
		pipX := x
		if local.Shielded {
			if err := r.FillEllipse(pipX+5, y-12, 5, 5, isoscene.RGBA{R: 0.4, G: 0.7, B: 1, A: 1}); err != nil {
				return err
			}
			pipX += 14
		}
		if local.Stealthed {
			if err := r.FillEllipse(pipX+5, y-12, 5, 5, isoscene.RGBA{R: 0.7, G: 0.7, B: 0.8, A: 0.6}); err != nil {
				return err
			}
		}
		if o.face != nil && o.glyphs != nil {
			hp := o.face.Shape(fmt.Sprintf("%d / %d", local.Health, local.MaxHealth))
			if err := text.DrawCentered(o.ctrl, o.glyphs, hp, x+barW/2, y-6, isoscene.White); err != nil {
				return err
			}
		}
	}

	return o.renderKillFeed(windowW)
}

// renderKillFeed draws the newest kill lines in the top-right corner,
// fading out over their lifetime.
func (o *Orchestrator) renderKillFeed(windowW int) error {
	if o.face == nil || o.glyphs == nil {
		return nil
	}
	now := o.state.Now()
	feed := o.state.KillFeed()

	y := 28.0
	shown := 0
	for i := len(feed) - 1; i >= 0 && shown < killFeedMax; i-- {
		k := feed[i]
		age := (now - k.Start) / killFeedDuration
		if age >= 1 {
			continue
		}
		if age < 0 {
			age = 0
		}
		line := o.face.Shape(k.Killer + "  >  " + k.Victim)
		x := float64(windowW) - 24 - line.Width
		if err := text.Draw(o.ctrl, o.glyphs, line, x, y, isoscene.White.WithAlpha(1-age)); err != nil {
			return err
		}
		y += line.Height() + 6
		shown++
	}
	return nil
}
