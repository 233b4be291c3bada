// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dither converts true color images into palette indexed
// framebuffers.
//
// Strategies are looked up by name through a registry so callers can
// select one from configuration:
//
//	s, err := dither.New("ordered", pixel.Mono)
//
// Additional strategies register themselves with Register, typically from
// an init function.
package dither

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// Strategy converts source pixels into palette indexes.
//
// Apply overwrites every pixel of fb from the matching region of src,
// anchored at the source origin. Implementations must be deterministic:
// the same source always yields the same framebuffer. Matching source and
// framebuffer dimensions is the caller's responsibility; Apply does not
// re-validate them.
type Strategy interface {
	// Name returns the canonical lowercase_with_underscores name used for
	// registry lookups.
	Name() string

	// Apply quantizes src into fb in place.
	Apply(src image.Image, fb *pixel.Framebuffer)
}

// ErrUnknownStrategy is returned when no strategy is registered under the
// requested name.
var ErrUnknownStrategy = errors.New("unknown dithering strategy")

var registry = map[string]func(pixel.Format) Strategy{}

// Register makes a strategy constructor available through New. The name
// must be lowercase_with_underscores. Registering a name twice panics.
func Register(name string, ctor func(pixel.Format) Strategy) {
	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("dither: strategy %q registered twice", name))
	}
	registry[name] = ctor
}

// New returns a strategy instance bound to the palette of the given pixel
// format.
func New(name string, f pixel.Format) (Strategy, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return ctor(f), nil
}

// Strategies returns the sorted names of all registered strategies.
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("threshold", func(f pixel.Format) Strategy { return NewThreshold(f) })
	Register("ordered", func(f pixel.Format) Strategy { return NewOrdered(f) })
	Register("floyd_steinberg", func(f pixel.Format) Strategy { return NewFloydSteinberg(f) })
}

// rgbAt reads the pixel at (x, y) as 8-bit RGB. *image.RGBA and
// *image.NRGBA buffers are read directly, everything else goes through
// the generic color interface.
func rgbAt(src image.Image, x, y int) (uint8, uint8, uint8) {
	switch img := src.(type) {
	case *image.RGBA:
		o := img.PixOffset(x, y)
		return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
	case *image.NRGBA:
		o := img.PixOffset(x, y)
		return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
	default:
		r, g, b, _ := src.At(x, y).RGBA()
		return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
