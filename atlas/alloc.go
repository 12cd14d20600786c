// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package atlas manages the shared sprite atlas: shelf-packed regions in
// one GPU texture, resolved lazily by sprite key.
package atlas

import "fmt"

// Region is a rectangle inside the atlas texture, in pixels.
type Region struct {
	X, Y int
	W, H int
}

// IsValid reports whether the region has positive dimensions.
func (r Region) IsValid() bool { return r.W > 0 && r.H > 0 }

// UV returns the region's texture coordinates for an atlas of the given
// pixel size.
func (r Region) UV(atlasW, atlasH int) (u0, v0, u1, v1 float32) {
	fw, fh := float32(atlasW), float32(atlasH)
	return float32(r.X) / fw, float32(r.Y) / fh,
		float32(r.X+r.W) / fw, float32(r.Y+r.H) / fh
}

// String returns a compact description.
func (r Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// shelf is one horizontal row of the packing area.
type shelf struct {
	y      int
	height int // includes padding; grows only while the shelf is empty
	nextX  int
}

// allocator shelf-packs rectangles into a fixed area. The render thread
// owns it exclusively, so there is no locking.
type allocator struct {
	width, height int
	padding       int
	shelves       []shelf
}

func newAllocator(w, h, padding int) *allocator {
	if padding < 0 {
		padding = 0
	}
	return &allocator{width: w, height: h, padding: padding}
}

// allocate finds space for a w×h rectangle. The zero Region means the
// area is full; callers treat it as "not found" and draw nothing.
func (a *allocator) allocate(w, h int) Region {
	if w <= 0 || h <= 0 {
		return Region{}
	}
	pw, ph := w+a.padding, h+a.padding
	if pw > a.width || ph > a.height {
		return Region{}
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.nextX+pw > a.width {
			continue
		}
		// A taller item cannot join a shelf that already holds others.
		if ph > s.height && s.nextX > 0 {
			continue
		}
		r := Region{X: s.nextX, Y: s.y, W: w, H: h}
		s.nextX += pw
		if ph > s.height {
			s.height = ph
		}
		return r
	}

	// Open a new shelf below the last one.
	y := 0
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	if y+ph > a.height {
		return Region{}
	}
	a.shelves = append(a.shelves, shelf{y: y, height: ph, nextX: pw})
	return Region{X: 0, Y: y, W: w, H: h}
}

// reset discards every allocation.
func (a *allocator) reset() { a.shelves = a.shelves[:0] }
