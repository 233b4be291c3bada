// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer that renders e-paper
// frames to the terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your panel to come by mail, and for
// checking what a dithering strategy does to an image without flashing
// real hardware.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/epaper/pixel"
	"github.com/GermanBionicSystems/epaper/render"
)

// Opts represents the options available for this display.
type Opts struct {
	Format pixel.Format
	Width  int
	Height int
	// Scale samples every n-th pixel so panels larger than the terminal
	// still produce a readable preview. Zero means 1.
	Scale   int
	Palette *ansi256.Palette

	_ struct{}
}

// Dev is an e-paper panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	format  pixel.Format
	bounds  image.Rectangle
	scale   int
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
//
// Permits local testing of frames and dithering output.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	return &Dev{
		w:       colorable.NewColorableStdout(),
		format:  opts.Format,
		bounds:  image.Rect(0, 0, opts.Width, opts.Height),
		scale:   scale,
		palette: *p,
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("termview.Dev{%s, Width: %d, Height: %d}", d.format, d.bounds.Dx(), d.bounds.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return d.format.Palette().Model()
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if sp != (image.Point{}) {
		return fmt.Errorf("source offsets are not supported")
	}
	return d.Show(src)
}

// Show renders src with the default dithering and prints it. A
// *pixel.Framebuffer of the configured format is printed as-is.
func (d *Dev) Show(src image.Image) error {
	fb, ok := src.(*pixel.Framebuffer)
	if !ok || fb.Format() != d.format {
		r, err := render.New(d.format, "floyd_steinberg")
		if err != nil {
			return err
		}
		fb = r.Render(src)
	}
	return d.DisplayBase(fb)
}

// DisplayBase prints a full frame to the terminal.
func (d *Dev) DisplayBase(fb *pixel.Framebuffer) error {
	d.render(fb)
	_, err := d.buf.WriteTo(d.w)
	return err
}

// render fills buf with the ANSI encoding of fb. This code is designed
// to minimize the amount of memory allocated per call.
func (d *Dev) render(fb *pixel.Framebuffer) {
	d.buf.Reset()
	p := d.format.Palette()
	height := fb.Height()
	if height > d.bounds.Max.Y {
		height = d.bounds.Max.Y
	}
	width := fb.Width()
	if width > d.bounds.Max.X {
		width = d.bounds.Max.X
	}
	for y := 0; y < height; y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < width; x += d.scale {
			e := p.Entry(fb.IndexAt(x, y))
			c := color.NRGBA{e.Color.R, e.Color.G, e.Color.B, 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
