// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dither

import (
	"image"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// Threshold maps every source pixel to its nearest palette entry with no
// error diffusion. Fast and predictable, at the cost of banding on
// gradients.
type Threshold struct {
	palette *pixel.Palette
}

// NewThreshold returns a threshold strategy for the palette of f.
func NewThreshold(f pixel.Format) *Threshold {
	return &Threshold{palette: f.Palette()}
}

// Name implements Strategy.
func (t *Threshold) Name() string {
	return "threshold"
}

// Apply implements Strategy.
func (t *Threshold) Apply(src image.Image, fb *pixel.Framebuffer) {
	min := src.Bounds().Min
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			r, g, b := rgbAt(src, min.X+x, min.Y+y)
			e := t.palette.Nearest(pixel.Color{R: r, G: g, B: b})
			fb.SetIndex(x, y, e.Index)
		}
	}
}

var _ Strategy = &Threshold{}
