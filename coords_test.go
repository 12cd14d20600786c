package isoscene

import (
	"math"
	"testing"
)

func TestWorldToScreenOrigin(t *testing.T) {
	sx, sy := WorldToScreen(0, 0, 0, 0)
	if sx != 0 || sy != 0 {
		t.Errorf("WorldToScreen(0,0) = (%v, %v), want (0, 0)", sx, sy)
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	tests := []struct {
		name   string
		wx, wy float64
		sx, sy float64
	}{
		{"one step +X", 1, 0, halfTileW, halfTileH},
		{"one step +Y", 0, 1, -halfTileW, halfTileH},
		{"diagonal", 1, 1, 0, TileHeight},
		{"negative", -2, 0, -TileWidth, -TileHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := WorldToScreen(tt.wx, tt.wy, 0, 0)
			if sx != tt.sx || sy != tt.sy {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)",
					tt.wx, tt.wy, sx, sy, tt.sx, tt.sy)
			}
		})
	}
}

func TestScreenToWorldRoundTrip(t *testing.T) {
	const tol = 1e-9

	cams := []struct{ x, y float64 }{
		{0, 0},
		{123.5, -77.25},
		{-4000, 9000},
	}

	for _, cam := range cams {
		for wy := -8.0; wy <= 8.0; wy += 0.5 {
			for wx := -8.0; wx <= 8.0; wx += 0.5 {
				sx, sy := WorldToScreen(wx, wy, cam.x, cam.y)
				gx, gy := ScreenToWorld(sx, sy, cam.x, cam.y)
				if math.Abs(gx-wx) > tol || math.Abs(gy-wy) > tol {
					t.Fatalf("round trip (%v, %v) cam (%v, %v): got (%v, %v)",
						wx, wy, cam.x, cam.y, gx, gy)
				}
			}
		}
	}
}

func TestCameraOffsetShiftsScreen(t *testing.T) {
	sx0, sy0 := WorldToScreen(3, 4, 0, 0)
	sx1, sy1 := WorldToScreen(3, 4, 10, 20)
	if sx1 != sx0-10 || sy1 != sy0-20 {
		t.Errorf("camera offset not applied: (%v, %v) vs (%v, %v)", sx0, sy0, sx1, sy1)
	}
}
