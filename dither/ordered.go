// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dither

import (
	"image"
	"math"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// bayer is the classic 4x4 ordered dithering matrix.
var bayer = [4][4]int{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Ordered applies Bayer 4x4 ordered dithering. A per position offset is
// added to all three channels before nearest palette matching, trading
// per pixel accuracy for a stable crosshatch pattern that reads as
// intermediate tones. The pattern repeats every 4 pixels in both axes.
type Ordered struct {
	palette *pixel.Palette
	// offsets holds the precomputed per position channel offsets, scaled
	// to the palette size so sparse palettes dither more aggressively.
	offsets [4][4]int
}

// NewOrdered returns an ordered dithering strategy for the palette of f.
func NewOrdered(f pixel.Format) *Ordered {
	o := &Ordered{palette: f.Palette()}
	scale := 256 / float64(o.palette.Len())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			o.offsets[y][x] = int(math.Round((float64(bayer[y][x])/16 - 0.5) * scale))
		}
	}
	return o
}

// Name implements Strategy.
func (o *Ordered) Name() string {
	return "ordered"
}

// Apply implements Strategy.
func (o *Ordered) Apply(src image.Image, fb *pixel.Framebuffer) {
	min := src.Bounds().Min
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			r, g, b := rgbAt(src, min.X+x, min.Y+y)
			off := o.offsets[y%4][x%4]
			e := o.palette.Nearest(pixel.Color{
				R: clamp8(int(r) + off),
				G: clamp8(int(g) + off),
				B: clamp8(int(b) + off),
			})
			fb.SetIndex(x, y, e.Index)
		}
	}
}

var _ Strategy = &Ordered{}
