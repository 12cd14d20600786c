package batch

import (
	"fmt"

	"github.com/gogpu/isoscene/gpu"
)

// Mode is the controller's batch state.
type Mode uint8

const (
	// Idle means no batch is active.
	Idle Mode = iota

	// ShapeActive means the flat-shape batch is accumulating.
	ShapeActive

	// SpriteActive means the textured-sprite batch is accumulating.
	SpriteActive
)

// String returns the string representation of Mode.
func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case ShapeActive:
		return "ShapeActive"
	case SpriteActive:
		return "SpriteActive"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Controller guarantees at most one active batch at a time.
//
// Every draw site calls EnsureShape or EnsureSprite instead of raw
// Begin/End, so consecutive draws sharing a mode never pay a redundant
// end/begin pair, and correctness does not depend on call order discipline
// at the call sites. The controller is owned by the frame orchestrator; it
// is a single mutable object, not a global.
type Controller struct {
	shapes  *Renderer
	sprites *Renderer

	mode   Mode
	target gpu.TargetID
	proj   gpu.Projection

	// switches counts flush-and-switch transitions since SetOutput;
	// tests use it to bound mode churn per frame.
	switches int
}

// NewController creates a controller owning a shape renderer and a sprite
// renderer on dev, each with the given vertex capacity (DefaultCapacity
// when capacity <= 0).
func NewController(dev gpu.Device, capacity int) *Controller {
	return &Controller{
		shapes:  NewShapeRenderer(dev, capacity),
		sprites: NewSpriteRenderer(dev, capacity),
	}
}

// Mode returns the currently active batch mode.
func (c *Controller) Mode() Mode { return c.mode }

// Switches returns the number of mode transitions since the last SetOutput.
func (c *Controller) Switches() int { return c.switches }

// SetOutput selects the render target and projection used when a batch is
// next begun. Any active batch is ended first, so a projection change (for
// example scene space to HUD pixel space) is always a clean break.
func (c *Controller) SetOutput(target gpu.TargetID, proj gpu.Projection) error {
	if err := c.EndAll(); err != nil {
		return err
	}
	c.target = target
	c.proj = proj
	c.switches = 0
	return nil
}

// Shapes ensures the flat-shape batch is active and returns it.
func (c *Controller) Shapes() (*Renderer, error) {
	if err := c.EnsureShape(); err != nil {
		return nil, err
	}
	return c.shapes, nil
}

// Sprites ensures the textured-sprite batch is active and returns it.
func (c *Controller) Sprites() (*Renderer, error) {
	if err := c.EnsureSprite(); err != nil {
		return nil, err
	}
	return c.sprites, nil
}

// EnsureShape makes the shape batch the active one. Requesting the already
// active mode is a no-op; otherwise the other batch is ended (flushing it)
// and the shape batch begun.
func (c *Controller) EnsureShape() error {
	switch c.mode {
	case ShapeActive:
		return nil
	case SpriteActive:
		if err := c.sprites.End(); err != nil {
			return err
		}
	}
	if err := c.shapes.Begin(c.target, c.proj); err != nil {
		return err
	}
	c.mode = ShapeActive
	c.switches++
	return nil
}

// EnsureSprite makes the sprite batch the active one, symmetrically to
// EnsureShape.
func (c *Controller) EnsureSprite() error {
	switch c.mode {
	case SpriteActive:
		return nil
	case ShapeActive:
		if err := c.shapes.End(); err != nil {
			return err
		}
	}
	if err := c.sprites.Begin(c.target, c.proj); err != nil {
		return err
	}
	c.mode = SpriteActive
	c.switches++
	return nil
}

// EndAll flushes whichever batch is active and returns to Idle.
func (c *Controller) EndAll() error {
	switch c.mode {
	case ShapeActive:
		if err := c.shapes.End(); err != nil {
			return err
		}
	case SpriteActive:
		if err := c.sprites.End(); err != nil {
			return err
		}
	}
	c.mode = Idle
	return nil
}
