package text

import (
	"github.com/gogpu/isoscene"
	"github.com/gogpu/isoscene/atlas"
	"github.com/gogpu/isoscene/batch"
	"github.com/gogpu/isoscene/gpu"
)

// Glyph is one shaped glyph, positioned relative to the line's baseline
// origin in pixels.
type Glyph struct {
	GID     uint32
	Cluster int // rune index in the source string
	X, Y    float64
	Advance float64
}

// Line is a shaped single-line string.
type Line struct {
	Glyphs  []Glyph
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns the line's vertical extent.
func (l Line) Height() float64 { return l.Ascent + l.Descent }

// GlyphSource resolves a glyph ID to its pre-rasterized rectangle in a
// texture, plus the quad's offset from the pen position. ok=false glyphs
// are skipped (whitespace has no bitmap).
type GlyphSource interface {
	Glyph(gid uint32) (region atlas.Region, offX, offY float64, ok bool)
	Texture() gpu.TextureID
	Size() (w, h int)
}

// Draw emits one textured quad per glyph through the controller's sprite
// batch. (x, y) is the baseline origin in screen pixels.
func Draw(c *batch.Controller, src GlyphSource, line Line, x, y float64, col isoscene.RGBA) error {
	if len(line.Glyphs) == 0 {
		return nil
	}
	if err := c.EnsureSprite(); err != nil {
		return err
	}
	r, err := c.Sprites()
	if err != nil {
		return err
	}

	tex := src.Texture()
	aw, ah := src.Size()
	for _, g := range line.Glyphs {
		reg, offX, offY, ok := src.Glyph(g.GID)
		if !ok {
			continue
		}
		u0, v0, u1, v1 := reg.UV(aw, ah)
		gx := x + g.X + offX
		gy := y + g.Y + offY
		if err := r.DrawQuad(tex, gx, gy, float64(reg.W), float64(reg.H), u0, v0, u1, v1, col); err != nil {
			return err
		}
	}
	return nil
}

// DrawCentered draws a line horizontally centered on cx.
func DrawCentered(c *batch.Controller, src GlyphSource, line Line, cx, y float64, col isoscene.RGBA) error {
	return Draw(c, src, line, cx-line.Width/2, y, col)
}
