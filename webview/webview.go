// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package webview provides a display driver implementing an HTTP request
// handler. Client requests get an initial snapshot of the frame and are
// updated further on every change.
//
// The primary use case is developing e-paper screens on a host machine:
// the handler serves exactly the dithered, palette reduced frame the
// panel would receive. Devices with network connectivity can also use it
// to publish a copy of their physical screen.
//
// The protocol used is "MJPEG" (https://en.wikipedia.org/wiki/Motion_JPEG)
// which is often used by IP cameras. Because of its better suitability for
// computer-drawn graphics the PNG image format is used by default. JPEG as
// a format can be selected via Options.ImageFormat or using the "format"
// URL parameter.
package webview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/epaper/pixel"
	"github.com/GermanBionicSystems/epaper/render"
)

// Options for webview displays.
type Options struct {
	// Width and height of the emulated panel.
	Width, Height int

	// Format is the pixel format frames are reduced to before they are
	// served.
	Format pixel.Format

	// ImageFormat specifies the image format to send to clients.
	ImageFormat ImageFormat
}

// Display emulates an e-paper panel behind an HTTP handler.
type Display struct {
	format        pixel.Format
	defaultFormat ImageFormat

	mu       sync.Mutex
	buffer   *pixel.Framebuffer
	clients  map[*client]struct{}
	snapshot map[imageConfig][]byte
}

var _ display.Drawer = (*Display)(nil)
var _ http.Handler = (*Display)(nil)

// New creates a new webview display instance. The frame starts out
// white like a freshly cleared panel.
func New(opt *Options) *Display {
	buffer := pixel.NewFramebuffer(opt.Format, opt.Width, opt.Height)
	if white, ok := opt.Format.Palette().Index("white"); ok {
		buffer.Fill(white)
	}

	return &Display{
		format:        opt.Format,
		buffer:        buffer,
		clients:       map[*client]struct{}{},
		snapshot:      map[imageConfig][]byte{},
		defaultFormat: opt.ImageFormat,
	}
}

// String returns the name of the device.
func (d *Display) String() string {
	return fmt.Sprintf("webview.Display{%s, Width: %d, Height: %d}",
		d.format, d.buffer.Width(), d.buffer.Height())
}

// Halt implements conn.Resource and terminates all running client
// requests asynchronously.
func (d *Display) Halt() error {
	d.mu.Lock()
	d.terminateClientsLocked()
	d.mu.Unlock()

	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return d.buffer.ColorModel()
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw implements display.Drawer. Colors are reduced to the panel
// palette as they land in the frame.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	d.mu.Lock()
	draw.Draw(d.buffer, dstRect, src, srcPts, draw.Src)
	d.bufferChangedLocked()
	d.mu.Unlock()

	return nil
}

// Show dithers src to the panel format and publishes the result. A
// *pixel.Framebuffer of the right format is published as-is.
func (d *Display) Show(src image.Image) error {
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

// DisplayBase publishes a full frame.
func (d *Display) DisplayBase(fb *pixel.Framebuffer) error {
	if got, want := fb.Format(), d.format; got != want {
		return fmt.Errorf("pixel format mismatch: frame is %s, display wants %s", got, want)
	}
	if fb.Width() != d.buffer.Width() || fb.Height() != d.buffer.Height() {
		return fmt.Errorf("dimension mismatch: frame is %dx%d, display is %dx%d",
			fb.Width(), fb.Height(), d.buffer.Width(), d.buffer.Height())
	}

	d.mu.Lock()
	copy(d.buffer.Bytes(), fb.Bytes())
	d.bufferChangedLocked()
	d.mu.Unlock()

	return nil
}
