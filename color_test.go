package isoscene

import (
	"image/color"
	"testing"
)

func TestRGB(t *testing.T) {
	c := RGB(0.5, 0.25, 1)
	if c.A != 1 {
		t.Errorf("RGB alpha = %v, want 1", c.A)
	}
}

func TestWithAlpha(t *testing.T) {
	c := White.WithAlpha(0.5)
	if c.A != 0.5 || c.R != 1 || c.G != 1 || c.B != 1 {
		t.Errorf("WithAlpha = %+v", c)
	}
}

func TestScale(t *testing.T) {
	c := RGBA{0.8, 0.4, 0.2, 0.9}.Scale(0.5)
	if c.R != 0.4 || c.G != 0.2 || c.B != 0.1 {
		t.Errorf("Scale RGB = %+v", c)
	}
	if c.A != 0.9 {
		t.Errorf("Scale changed alpha: %v", c.A)
	}
}

func TestLerpColor(t *testing.T) {
	c := Black.Lerp(White, 0.5)
	if c.R != 0.5 || c.G != 0.5 || c.B != 0.5 {
		t.Errorf("Lerp = %+v, want mid gray", c)
	}
}

func TestColorConversionRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    RGBA
	}{
		{"white", White},
		{"black", Black},
		{"translucent", RGBA{0.2, 0.4, 0.6, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromColor(tt.c.Color())
			const tol = 1.0 / 255
			if diff(got.R, tt.c.R) > tol || diff(got.G, tt.c.G) > tol ||
				diff(got.B, tt.c.B) > tol || diff(got.A, tt.c.A) > tol {
				t.Errorf("round trip %+v -> %+v", tt.c, got)
			}
		})
	}
}

func TestFromColorPremultiplied(t *testing.T) {
	// color.RGBA carries premultiplied components; FromColor must divide
	// the alpha back out.
	got := FromColor(color.RGBA{R: 32, G: 64, B: 96, A: 128})
	const tol = 1.0 / 255
	if diff(got.R, 0.25) > tol || diff(got.G, 0.5) > tol || diff(got.B, 0.75) > tol {
		t.Errorf("FromColor = %+v, want straight-alpha {0.25 0.5 0.75}", got)
	}
	if diff(got.A, 128.0/255) > tol {
		t.Errorf("FromColor alpha = %v, want %v", got.A, 128.0/255)
	}
}

func TestFromColorZeroAlpha(t *testing.T) {
	got := FromColor(color.RGBA{})
	if got != (RGBA{}) {
		t.Errorf("FromColor(transparent) = %+v, want zero value", got)
	}
}

func TestColorClamping(t *testing.T) {
	c := RGBA{2, -1, 0.5, 1}
	nrgba := c.Color().(color.NRGBA)
	if nrgba.R != 255 {
		t.Errorf("over-range R = %d, want 255", nrgba.R)
	}
	if nrgba.G != 0 {
		t.Errorf("under-range G = %d, want 0", nrgba.G)
	}
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
