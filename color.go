package isoscene

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Batch vertices store colors
// non-premultiplied; premultiplication happens in the shader.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Scale returns the color with R, G and B multiplied by s.
// Alpha is left untouched; used for dimming light contributions.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Lerp interpolates between c and d. t=0 returns c, t=1 returns d.
func (c RGBA) Lerp(d RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
// RGBA() reports alpha-premultiplied components; they are divided back
// out so the result is straight alpha, matching Color().
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA{}
	}
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: float64(a) / 65535,
	}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// Common colors used by the HUD and deferred bars.
var (
	White = RGBA{1, 1, 1, 1}
	Black = RGBA{0, 0, 0, 1}
	Red   = RGBA{1, 0, 0, 1}
	Green = RGBA{0, 1, 0, 1}
)
