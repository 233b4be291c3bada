// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dither

import (
	"image"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// FloydSteinberg applies classic error diffusion: the quantization error
// of each pixel is spread over the yet unprocessed neighbors with the
// 7/16, 3/16, 5/16, 1/16 kernel. Scanning is plain left to right, top to
// bottom, so output is deterministic.
type FloydSteinberg struct {
	palette *pixel.Palette
}

// NewFloydSteinberg returns an error diffusion strategy for the palette
// of f.
func NewFloydSteinberg(f pixel.Format) *FloydSteinberg {
	return &FloydSteinberg{palette: f.Palette()}
}

// Name implements Strategy.
func (fs *FloydSteinberg) Name() string {
	return "floyd_steinberg"
}

// Apply implements Strategy.
func (fs *FloydSteinberg) Apply(src image.Image, fb *pixel.Framebuffer) {
	w := fb.Width()
	min := src.Bounds().Min
	// Carried error per channel in 1/16 units.
	cur := make([][3]int, w)
	next := make([][3]int, w)
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < w; x++ {
			r, g, b := rgbAt(src, min.X+x, min.Y+y)
			want := [3]int{
				int(r) + cur[x][0]/16,
				int(g) + cur[x][1]/16,
				int(b) + cur[x][2]/16,
			}
			e := fs.palette.Nearest(pixel.Color{
				R: clamp8(want[0]),
				G: clamp8(want[1]),
				B: clamp8(want[2]),
			})
			fb.SetIndex(x, y, e.Index)
			got := [3]int{int(e.Color.R), int(e.Color.G), int(e.Color.B)}
			for ch := 0; ch < 3; ch++ {
				err := want[ch] - got[ch]
				if x+1 < w {
					cur[x+1][ch] += err * 7
					next[x+1][ch] += err * 1
				}
				if x > 0 {
					next[x-1][ch] += err * 3
				}
				next[x][ch] += err * 5
			}
		}
		cur, next = next, cur
		for i := range next {
			next[i] = [3]int{}
		}
	}
}

var _ Strategy = &FloydSteinberg{}
