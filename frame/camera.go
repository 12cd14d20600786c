package frame

import "github.com/gogpu/isoscene"

// DefaultCameraSmoothing is the exponential follow rate per second.
const DefaultCameraSmoothing = 8.0

// camera smoothly follows a target point in screen-pixel space. The
// first update snaps so a fresh renderer never pans in from the origin.
type camera struct {
	pos     isoscene.Vec2
	smooth  float64
	snapped bool
}

func (c *camera) update(target isoscene.Vec2, dt float64) {
	if !c.snapped {
		c.pos = target
		c.snapped = true
		return
	}
	t := c.smooth * dt
	if t > 1 {
		t = 1
	}
	c.pos = c.pos.Lerp(target, t)
}
