// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixel

import "fmt"

// Format identifies the pixel encoding of a framebuffer. Every format is
// permanently bound to one palette and one bit depth; the set is closed
// because each value corresponds to a panel memory layout.
type Format int

const (
	// Mono is 1-bit black and white.
	Mono Format = iota
	// Gray4 is 2-bit grayscale with four levels.
	Gray4
	// Color4 is 2-bit black, white, yellow and red, the palette shared by
	// the tri-color panel family.
	Color4
	// Color7 is 4-bit with the seven ink colors of the ACeP panels.
	Color7
)

var (
	paletteMono   = mustPalette("black", "white")
	paletteGray4  = mustPalette("black", "dark_gray", "light_gray", "white")
	paletteColor4 = mustPalette("black", "white", "yellow", "red")
	paletteColor7 = mustPalette("black", "white", "green", "blue", "red", "yellow", "orange")
)

// Depth returns the number of bits storing one pixel.
func (f Format) Depth() int {
	switch f {
	case Mono:
		return 1
	case Gray4, Color4:
		return 2
	case Color7:
		return 4
	}
	return 0
}

// Palette returns the palette the format indexes into. The palette is
// shared process-wide, so its nearest-color cache persists across
// framebuffers.
func (f Format) Palette() *Palette {
	switch f {
	case Mono:
		return paletteMono
	case Gray4:
		return paletteGray4
	case Color4:
		return paletteColor4
	case Color7:
		return paletteColor7
	}
	return nil
}

func (f Format) String() string {
	switch f {
	case Mono:
		return "mono"
	case Gray4:
		return "gray4"
	case Color4:
		return "color4"
	case Color7:
		return "color7"
	}
	return fmt.Sprint(int(f))
}

// Set sets the Format to a value represented by the string s. Set
// implements the flag.Value interface.
func (f *Format) Set(s string) error {
	switch s {
	case "mono":
		*f = Mono
	case "gray4":
		*f = Gray4
	case "color4":
		*f = Color4
	case "color7":
		*f = Color7
	default:
		return fmt.Errorf("unknown pixel format %q: expected mono, gray4, color4 or color7", s)
	}
	return nil
}
