// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package render turns true color images into framebuffers and device
// plane pairs.
//
// A Renderer binds a pixel format to a dithering strategy. Render
// quantizes an image, SplitPlanes derives the two per RAM monochrome
// planes that dual buffer panels transmit.
package render

import (
	"image"

	"github.com/GermanBionicSystems/epaper/dither"
	"github.com/GermanBionicSystems/epaper/pixel"
)

// Renderer converts images to framebuffers of a fixed pixel format.
type Renderer struct {
	format   pixel.Format
	strategy dither.Strategy
}

// New returns a renderer using the named dithering strategy. The name is
// resolved through the dither registry, so it can come straight from a
// command line flag.
func New(f pixel.Format, strategy string) (*Renderer, error) {
	s, err := dither.New(strategy, f)
	if err != nil {
		return nil, err
	}
	return NewWithStrategy(f, s), nil
}

// NewWithStrategy returns a renderer using an already constructed
// strategy.
func NewWithStrategy(f pixel.Format, s dither.Strategy) *Renderer {
	return &Renderer{format: f, strategy: s}
}

// Format returns the pixel format this renderer produces.
func (r *Renderer) Format() pixel.Format {
	return r.format
}

// Strategy returns the bound dithering strategy.
func (r *Renderer) Strategy() dither.Strategy {
	return r.strategy
}

// Render quantizes src into a freshly allocated framebuffer of the same
// dimensions.
func (r *Renderer) Render(src image.Image) *pixel.Framebuffer {
	b := src.Bounds()
	fb := pixel.NewFramebuffer(r.format, b.Dx(), b.Dy())
	r.strategy.Apply(src, fb)
	return fb
}

// RenderPlanes quantizes src and splits the result into the two device
// planes in one step, for callers feeding a dual RAM panel directly.
func (r *Renderer) RenderPlanes(src image.Image) (black, red *pixel.Framebuffer) {
	return SplitPlanes(r.Render(src))
}

// SplitPlanes derives the black and red monochrome planes for dual RAM
// panels. In both planes index 0 marks ink and index 1 background.
//
// A monochrome source yields two identical planes, matching controllers
// that expect the same frame in both RAMs. For color sources red, yellow
// and orange map to ink in the red plane, every other non white entry to
// ink in the black plane.
func SplitPlanes(fb *pixel.Framebuffer) (black, red *pixel.Framebuffer) {
	w, h := fb.Width(), fb.Height()
	black = pixel.NewFramebuffer(pixel.Mono, w, h)
	red = pixel.NewFramebuffer(pixel.Mono, w, h)
	if fb.Format() == pixel.Mono {
		copy(black.Bytes(), fb.Bytes())
		copy(red.Bytes(), fb.Bytes())
		return black, red
	}
	black.Fill(1)
	red.Fill(1)
	p := fb.Format().Palette()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch p.Entry(fb.IndexAt(x, y)).Name {
			case "white":
			case "red", "yellow", "orange":
				red.SetIndex(x, y, 0)
			default:
				black.SetIndex(x, y, 0)
			}
		}
	}
	return black, red
}
