// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pixel provides the color palettes, pixel formats and packed
// framebuffers used by e-paper panels.
//
// Panels store pixels as palette indexes at 1, 2 or 4 bits per pixel. The
// types here mirror that representation exactly, so a Framebuffer is the
// byte stream a panel receives, while still implementing image.Image and
// draw.Image for use with stdlib and x/image drawing code.
package pixel

import (
	"errors"
	"fmt"
	"image/color"
)

// Color is an opaque 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. E-paper inks have no alpha channel, the
// returned color is always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

// The displayable colors across all supported panels. Green, blue and
// orange follow the datasheet values of the 7-color panels.
var (
	Black     = Color{0x00, 0x00, 0x00}
	White     = Color{0xFF, 0xFF, 0xFF}
	Green     = Color{0x00, 0xFF, 0x00}
	Blue      = Color{0x00, 0x00, 0xFF}
	Red       = Color{0xFF, 0x00, 0x00}
	Yellow    = Color{0xFF, 0xFF, 0x00}
	Orange    = Color{0xFF, 0x8C, 0x00}
	DarkGray  = Color{0x55, 0x55, 0x55}
	LightGray = Color{0xAA, 0xAA, 0xAA}
)

// ErrUnknownColor is returned when a color name has no registered value.
var ErrUnknownColor = errors.New("unknown color name")

var colorsByName = map[string]Color{
	"black":      Black,
	"white":      White,
	"green":      Green,
	"blue":       Blue,
	"red":        Red,
	"yellow":     Yellow,
	"orange":     Orange,
	"dark_gray":  DarkGray,
	"light_gray": LightGray,
}

// ColorByName returns the color registered under name. Names are
// lowercase with underscores, e.g. "light_gray".
func ColorByName(name string) (Color, error) {
	c, ok := colorsByName[name]
	if !ok {
		return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// makeColor converts any color.Color, dropping alpha the way the panels
// do.
func makeColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}
