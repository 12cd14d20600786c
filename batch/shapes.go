package batch

import (
	"math"

	"github.com/gogpu/isoscene"
)

// Shape primitives are tessellated client-side into triangles. All of them
// are only valid on the flat-shape renderer and return ErrWrongMode on the
// sprite renderer.

// ellipseSegments picks the fan resolution for an ellipse of the given
// radii. Small particles stay cheap, large glows stay round.
func ellipseSegments(rx, ry float64) int {
	r := math.Max(rx, ry)
	n := int(r)
	if n < 12 {
		return 12
	}
	if n > 48 {
		return 48
	}
	return n
}

// FillEllipse draws a filled ellipse as a triangle fan around the center.
func (r *Renderer) FillEllipse(cx, cy, rx, ry float64, c isoscene.RGBA) error {
	return r.ellipse(cx, cy, rx, ry, c, c)
}

// SoftEllipse draws an ellipse whose edge alpha falls to zero, giving a
// cheap anti-aliased falloff. Used by particles, halos and light blobs.
func (r *Renderer) SoftEllipse(cx, cy, rx, ry float64, c isoscene.RGBA) error {
	return r.ellipse(cx, cy, rx, ry, c, c.WithAlpha(0))
}

func (r *Renderer) ellipse(cx, cy, rx, ry float64, center, edge isoscene.RGBA) error {
	if r.mode.Stride() != 6 {
		return ErrWrongMode
	}
	segs := ellipseSegments(rx, ry)
	if err := r.reserve(segs * 3); err != nil {
		return err
	}

	step := 2 * math.Pi / float64(segs)
	px := cx + rx
	py := cy
	for i := 1; i <= segs; i++ {
		a := step * float64(i)
		nx := cx + rx*math.Cos(a)
		ny := cy + ry*math.Sin(a)
		r.vertex(cx, cy, center)
		r.vertex(px, py, edge)
		r.vertex(nx, ny, edge)
		px, py = nx, ny
	}
	return nil
}

// FillRect draws an axis-aligned filled rectangle.
func (r *Renderer) FillRect(x, y, w, h float64, c isoscene.RGBA) error {
	if r.mode.Stride() != 6 {
		return ErrWrongMode
	}
	if err := r.reserve(6); err != nil {
		return err
	}
	x1, y1 := x+w, y+h
	r.vertex(x, y, c)
	r.vertex(x1, y, c)
	r.vertex(x1, y1, c)
	r.vertex(x, y, c)
	r.vertex(x1, y1, c)
	r.vertex(x, y1, c)
	return nil
}

// FillConvexPolygon draws a filled polygon by fan triangulation from the
// first point. Valid only for convex input; concave polygons render with
// overlapping or missing triangles.
func (r *Renderer) FillConvexPolygon(pts []isoscene.Vec2, c isoscene.RGBA) error {
	if r.mode.Stride() != 6 {
		return ErrWrongMode
	}
	if len(pts) < 3 {
		return nil
	}
	if err := r.reserve((len(pts) - 2) * 3); err != nil {
		return err
	}
	p0 := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		r.vertex(p0.X, p0.Y, c)
		r.vertex(pts[i].X, pts[i].Y, c)
		r.vertex(pts[i+1].X, pts[i+1].Y, c)
	}
	return nil
}

// Line draws a line segment as an oriented quad of the given width.
func (r *Renderer) Line(x1, y1, x2, y2, width float64, c isoscene.RGBA) error {
	if r.mode.Stride() != 6 {
		return ErrWrongMode
	}
	d := isoscene.V2(x2-x1, y2-y1)
	if d.LengthSq() == 0 {
		return nil
	}
	n := d.Normalize().Perp().Mul(width / 2)
	if err := r.reserve(6); err != nil {
		return err
	}
	r.quadColors(
		x1+n.X, y1+n.Y, c,
		x2+n.X, y2+n.Y, c,
		x2-n.X, y2-n.Y, c,
		x1-n.X, y1-n.Y, c,
	)
	return nil
}

// SoftLine draws a line as three parallel strips whose outer edges fade to
// transparent, approximating an anti-aliased stroke without MSAA.
func (r *Renderer) SoftLine(x1, y1, x2, y2, width float64, c isoscene.RGBA) error {
	if r.mode.Stride() != 6 {
		return ErrWrongMode
	}
	d := isoscene.V2(x2-x1, y2-y1)
	if d.LengthSq() == 0 {
		return nil
	}
	clear := c.WithAlpha(0)
	half := width / 2
	n := d.Normalize().Perp()
	outer := n.Mul(half)
	inner := n.Mul(half / 2)

	if err := r.reserve(18); err != nil {
		return err
	}
	// Top fade strip: transparent outer edge to opaque inner edge.
	r.quadColors(
		x1+outer.X, y1+outer.Y, clear,
		x2+outer.X, y2+outer.Y, clear,
		x2+inner.X, y2+inner.Y, c,
		x1+inner.X, y1+inner.Y, c,
	)
	// Opaque core strip.
	r.quadColors(
		x1+inner.X, y1+inner.Y, c,
		x2+inner.X, y2+inner.Y, c,
		x2-inner.X, y2-inner.Y, c,
		x1-inner.X, y1-inner.Y, c,
	)
	// Bottom fade strip.
	r.quadColors(
		x1-inner.X, y1-inner.Y, c,
		x2-inner.X, y2-inner.Y, c,
		x2-outer.X, y2-outer.Y, clear,
		x1-outer.X, y1-outer.Y, clear,
	)
	return nil
}

// quadColors appends a quad with per-corner colors (caller reserved).
func (r *Renderer) quadColors(ax, ay float64, ac isoscene.RGBA, bx, by float64, bc isoscene.RGBA, cx, cy float64, cc isoscene.RGBA, dx, dy float64, dc isoscene.RGBA) {
	r.vertex(ax, ay, ac)
	r.vertex(bx, by, bc)
	r.vertex(cx, cy, cc)
	r.vertex(ax, ay, ac)
	r.vertex(cx, cy, cc)
	r.vertex(dx, dy, dc)
}
