// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"github.com/GermanBionicSystems/epaper/pixel"
)

// Family selects the controller command set a panel speaks.
type Family int

const (
	// FamilySSD covers SSD16xx controllers: dual BW/red RAM and windows
	// set through RAM address start/end registers.
	FamilySSD Family = iota
	// FamilyUC covers UC81xx controllers: data start transmissions and
	// windows bracketed by partial-in/partial-out commands.
	FamilyUC
)

// String implements fmt.Stringer.
func (f Family) String() string {
	switch f {
	case FamilySSD:
		return "SSD16xx"
	case FamilyUC:
		return "UC81xx"
	default:
		return "unknown"
	}
}

// LUT contains the waveform that is used to program the display.
type LUT []byte

// lutSize is the portion of a LUT written to the waveform register; the
// trailing bytes hold companion register values.
const lutSize = 70

// Opts is the model description of a panel.
type Opts struct {
	// Width and height of the panel in pixels.
	Width  int
	Height int

	// Format is the pixel format the panel displays.
	Format pixel.Format
	// Family selects the controller command encoding.
	Family Family

	// FullUpdate and PartialUpdate carry register waveforms for models
	// that are not programmed from OTP. Optional.
	FullUpdate    LUT
	PartialUpdate LUT

	// Refresh capabilities beyond plain full updates.
	SupportsPartial   bool
	SupportsFast      bool
	SupportsGrayscale bool
	// SupportsRegion marks models with true windowed refresh. Without
	// it DisplayRegion falls back to a full frame transmit.
	SupportsRegion bool

	// Border is the border color index (UC 7-color panels).
	Border byte
	// Resolution holds the panel setting resolution select bits (UC
	// 7-color panels).
	Resolution byte
}

// lut returns the register waveform for mode, or nil for OTP modes.
func (o *Opts) lut(mode Mode) LUT {
	switch mode {
	case ModeFull:
		return o.FullUpdate
	case ModePartial:
		return o.PartialUpdate
	default:
		return nil
	}
}

// supports reports whether the panel can refresh in the given mode.
func (o *Opts) supports(mode Mode) bool {
	switch mode {
	case ModeFull:
		return true
	case ModePartial:
		return o.SupportsPartial
	case ModeFast:
		return o.SupportsFast
	case ModeGrayscale:
		return o.SupportsGrayscale
	default:
		return false
	}
}

// dualPlane reports whether the panel exposes two data planes.
func (o *Opts) dualPlane() bool {
	return o.Format != pixel.Color7
}

// EPD2in13 describes the 2.13 inch 122x250 monochrome HAT with register
// programmed waveforms.
var EPD2in13 = Opts{
	Width:           122,
	Height:          250,
	Format:          pixel.Mono,
	Family:          FamilySSD,
	SupportsPartial: true,
	SupportsFast:    true,
	SupportsRegion:  true,
	FullUpdate: LUT{
		0x80, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00,
		0x10, 0x60, 0x20, 0x00, 0x00, 0x00, 0x00,
		0x80, 0x60, 0x40, 0x00, 0x00, 0x00, 0x00,
		0x10, 0x60, 0x20, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x03, 0x03, 0x00, 0x00, 0x02,
		0x09, 0x09, 0x00, 0x00, 0x02,
		0x03, 0x03, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x15, 0x41, 0xA8, 0x32, 0x30, 0x0A,
	},
	PartialUpdate: LUT{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,

		0x0A, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00,

		0x15, 0x41, 0xA8, 0x32, 0x30, 0x0A,
	},
}

// EPD2in13b describes the 2.13 inch 104x212 black/white/red panel.
var EPD2in13b = Opts{
	Width:  104,
	Height: 212,
	Format: pixel.Color4,
	Family: FamilySSD,
}

// EPD4in2 describes the 4.2 inch 400x300 monochrome panel with OTP
// waveforms.
var EPD4in2 = Opts{
	Width:           400,
	Height:          300,
	Format:          pixel.Mono,
	Family:          FamilySSD,
	SupportsPartial: true,
	SupportsFast:    true,
	SupportsRegion:  true,
}

// EPD4in2Gray describes the 4.2 inch 400x300 panel driven with four
// gray levels.
var EPD4in2Gray = Opts{
	Width:             400,
	Height:            300,
	Format:            pixel.Gray4,
	Family:            FamilySSD,
	SupportsGrayscale: true,
}

// EPD4in2b describes the 4.2 inch 400x300 black/white/red panel on a
// UC8176 controller.
var EPD4in2b = Opts{
	Width:          400,
	Height:         300,
	Format:         pixel.Color4,
	Family:         FamilyUC,
	SupportsRegion: true,
}

// EPD7in5b describes the 7.5 inch 880x528 black/white/red panel.
var EPD7in5b = Opts{
	Width:  880,
	Height: 528,
	Format: pixel.Color4,
	Family: FamilySSD,
}

// Impression57 describes the 5.7 inch 600x448 7-color panel on a
// UC8159 controller.
var Impression57 = Opts{
	Width:      600,
	Height:     448,
	Format:     pixel.Color7,
	Family:     FamilyUC,
	Border:     1,
	Resolution: 0b11,
}
