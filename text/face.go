// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package text turns strings into positioned glyph quads for name labels
// and the HUD. Shaping goes through go-text/typesetting (kerning,
// ligatures, RTL scripts); glyph bitmaps come from a GlyphSource the host
// supplies, so the renderer only ever emits textured quads.
package text

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// Face is a parsed font at a fixed pixel size. Not safe for concurrent
// use: the shaper has mutable buffers and the render thread is the only
// caller.
type Face struct {
	shaped  *gofont.Face
	metrics *opentype.Font
	size    float64
	shaper  shaping.HarfbuzzShaper
	ascent  float64
	descent float64
}

// NewFace parses TTF/OTF data and fixes the pixel size.
func NewFace(data []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("text: invalid size %v", size)
	}
	shaped, err := gofont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font metrics: %w", err)
	}

	var buf sfnt.Buffer
	m, err := ot.Metrics(&buf, fixed.Int26_6(size*64), font.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("text: font metrics: %w", err)
	}

	return &Face{
		shaped:  shaped,
		metrics: ot,
		size:    size,
		ascent:  fixedToFloat(m.Ascent),
		descent: fixedToFloat(m.Descent),
	}, nil
}

// Size returns the pixel size the face was created with.
func (f *Face) Size() float64 { return f.size }

// Ascent returns the baseline-to-top distance in pixels.
func (f *Face) Ascent() float64 { return f.ascent }

// Descent returns the baseline-to-bottom distance in pixels (positive).
func (f *Face) Descent() float64 { return f.descent }

// floatToFixed converts a pixel value to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts 26.6 fixed point to pixels.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// baseDirection resolves the paragraph direction of a string. Player
// names can be Arabic or Hebrew; everything else defaults to LTR.
func baseDirection(s string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return di.DirectionLTR
	}
	if _, err := p.Order(); err != nil {
		return di.DirectionLTR
	}
	if p.IsLeftToRight() {
		return di.DirectionLTR
	}
	return di.DirectionRTL
}

// detectScript picks the script of the first non-space rune. Labels are
// single-script in practice; mixed-script names shape per the first run.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// Shape lays out a single-line string: glyphs with pixel positions
// relative to the baseline origin, plus the total advance.
func (f *Face) Shape(s string) Line {
	if s == "" {
		return Line{}
	}
	runes := []rune(s)

	out := f.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: baseDirection(s),
		Face:      f.shaped,
		Size:      floatToFixed(f.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	line := Line{
		Ascent:  f.ascent,
		Descent: f.descent,
		Glyphs:  make([]Glyph, 0, len(out.Glyphs)),
	}
	pen := 0.0
	for _, g := range out.Glyphs {
		adv := fixedToFloat(g.Advance)
		line.Glyphs = append(line.Glyphs, Glyph{
			GID:     uint32(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       pen + fixedToFloat(g.XOffset),
			Y:       -fixedToFloat(g.YOffset),
			Advance: adv,
		})
		pen += adv
	}
	line.Width = pen
	return line
}
