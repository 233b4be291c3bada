// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package prep prepares source images for e-paper rendering: scaling to
// the panel size and tonal adjustments countering the contrast loss of
// dithering down to a handful of ink colors.
package prep

import (
	"image"
	"image/draw"

	"github.com/disintegration/gift"
	xdraw "golang.org/x/image/draw"
)

// Options are the adjustments applied before dithering.
type Options struct {
	// Brightness shifts luminance by a percentage in [-100, 100].
	Brightness float32
	// Contrast changes contrast by a percentage in [-100, 100].
	Contrast float32
	// Sharpen applies unsharp masking with the given sigma. Zero
	// disables it.
	Sharpen float32
	// Grayscale drops the color information. Mono and grayscale panels
	// dither better without chroma noise.
	Grayscale bool
}

// Fit scales src to fit into width x height preserving its aspect
// ratio. The remainder is letterboxed in white like unused panel area.
func Fit(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	w, h := width, sb.Dy()*width/sb.Dx()
	if h > height {
		w, h = sb.Dx()*height/sb.Dy(), height
	}

	r := image.Rect(0, 0, w, h).Add(image.Pt((width-w)/2, (height-h)/2))
	xdraw.CatmullRom.Scale(dst, r, src, sb, xdraw.Src, nil)
	return dst
}

// Cover scales src so it covers width x height completely, cropping the
// overflow around the center.
func Cover(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return dst
	}

	w, h := width, sb.Dy()*width/sb.Dx()
	if h < height {
		w, h = sb.Dx()*height/sb.Dy(), height
	}

	r := image.Rect(0, 0, w, h).Add(image.Pt((width-w)/2, (height-h)/2))
	xdraw.CatmullRom.Scale(dst, r, src, sb, xdraw.Src, nil)
	return dst
}

// Adjust applies the tonal adjustments to src. Zero options return an
// unmodified copy.
func Adjust(src image.Image, o *Options) *image.NRGBA {
	g := gift.New()
	if o != nil {
		if o.Brightness != 0 {
			g.Add(gift.Brightness(o.Brightness))
		}
		if o.Contrast != 0 {
			g.Add(gift.Contrast(o.Contrast))
		}
		if o.Sharpen != 0 {
			g.Add(gift.UnsharpMask(o.Sharpen, 1, 0.05))
		}
		if o.Grayscale {
			g.Add(gift.Grayscale())
		}
	}

	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// Prepare runs the whole pre-dithering pipeline: scale to the panel
// size, then adjust at the final resolution.
func Prepare(src image.Image, width, height int, o *Options) *image.NRGBA {
	return Adjust(Fit(src, width, height), o)
}
