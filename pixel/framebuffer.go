// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixel

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Framebuffer is a packed, palette-indexed pixel buffer in the layout
// panels receive it: row-major, each row padded to a whole byte, the
// leftmost pixel of a byte in the most significant bits.
//
// Framebuffer implements image.Image and draw.Image over its palette, so
// stdlib and x/image drawing primitives work on it directly.
type Framebuffer struct {
	format  Format
	palette *Palette
	width   int
	height  int
	stride  int
	pix     []byte
}

// NewFramebuffer returns a framebuffer for the given format with every
// pixel at palette index 0.
func NewFramebuffer(f Format, width, height int) *Framebuffer {
	if width < 0 || height < 0 {
		panic("pixel: negative framebuffer dimensions")
	}
	stride := (width*f.Depth() + 7) / 8
	return &Framebuffer{
		format:  f,
		palette: f.Palette(),
		width:   width,
		height:  height,
		stride:  stride,
		pix:     make([]byte, stride*height),
	}
}

// Format returns the pixel format the framebuffer was created with.
func (fb *Framebuffer) Format() Format {
	return fb.format
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int {
	return fb.width
}

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int {
	return fb.height
}

// Stride returns the number of bytes per row.
func (fb *Framebuffer) Stride() int {
	return fb.stride
}

// Bytes returns the packed pixel data. The slice aliases the framebuffer
// contents.
func (fb *Framebuffer) Bytes() []byte {
	return fb.pix
}

// Row returns the packed bytes of row y. The slice aliases the
// framebuffer contents.
func (fb *Framebuffer) Row(y int) []byte {
	return fb.pix[y*fb.stride : (y+1)*fb.stride]
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return fb.palette.Model()
}

// pixOffset returns the byte offset and downshift for the pixel at (x, y).
func (fb *Framebuffer) pixOffset(x, y int) (offset int, shift uint) {
	bits := x * fb.format.Depth()
	offset = y*fb.stride + bits/8
	shift = uint(8 - fb.format.Depth() - bits%8)
	return
}

// IndexAt returns the palette index of the pixel at (x, y), or 0 outside
// the bounds.
func (fb *Framebuffer) IndexAt(x, y int) int {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return 0
	}
	offset, shift := fb.pixOffset(x, y)
	mask := byte(1<<uint(fb.format.Depth()) - 1)
	return int((fb.pix[offset] >> shift) & mask)
}

// SetIndex sets the pixel at (x, y) to the given palette index. Indexes
// are masked to the storage width; out of bounds coordinates are ignored.
func (fb *Framebuffer) SetIndex(x, y, index int) {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return
	}
	offset, shift := fb.pixOffset(x, y)
	mask := byte(1<<uint(fb.format.Depth()) - 1)
	fb.pix[offset] = fb.pix[offset]&^(mask<<shift) | (byte(index)&mask)<<shift
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.palette.Color(fb.IndexAt(x, y))
}

// Set implements draw.Image. The color is matched to the nearest palette
// entry.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetIndex(x, y, fb.palette.Nearest(makeColor(c)).Index)
}

// SetColorName sets the pixel at (x, y) to the named palette color.
func (fb *Framebuffer) SetColorName(x, y int, name string) error {
	i, ok := fb.palette.Index(name)
	if !ok {
		return fmt.Errorf("%w: %q not in %v palette", ErrUnknownColor, name, fb.format)
	}
	fb.SetIndex(x, y, i)
	return nil
}

// Fill sets every pixel to the given palette index. Row padding bits
// receive the same pattern.
func (fb *Framebuffer) Fill(index int) {
	depth := fb.format.Depth()
	mask := byte(1<<uint(depth) - 1)
	var b byte
	for shift := 0; shift < 8; shift += depth {
		b |= (byte(index) & mask) << uint(shift)
	}
	for i := range fb.pix {
		fb.pix[i] = b
	}
}

var _ image.Image = &Framebuffer{}
var _ draw.Image = &Framebuffer{}
