// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/host/v3/rpi"

	"github.com/GermanBionicSystems/epaper/pixel"
	"github.com/GermanBionicSystems/epaper/render"
)

// Mode selects the refresh waveform class a display operation uses.
type Mode int

const (
	// ModeNone means the panel has not been initialized yet.
	ModeNone Mode = iota
	// ModeFull refreshes with the flashing full waveform. Best image
	// quality, slowest.
	ModeFull
	// ModePartial updates changed pixels without flashing the panel.
	ModePartial
	// ModeFast trades some contrast for a quicker full refresh.
	ModeFast
	// ModeGrayscale drives four gray levels on supported panels.
	ModeGrayscale
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "uninitialized"
	case ModeFull:
		return "full"
	case ModePartial:
		return "partial"
	case ModeFast:
		return "fast"
	case ModeGrayscale:
		return "grayscale"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Set sets the Mode to a value represented by the string s. Set
// implements the flag.Value interface.
func (m *Mode) Set(s string) error {
	switch s {
	case "full":
		*m = ModeFull
	case "partial":
		*m = ModePartial
	case "fast":
		*m = ModeFast
	case "grayscale":
		*m = ModeGrayscale
	default:
		return fmt.Errorf("unknown display mode %q: expected full, partial, fast or grayscale", s)
	}
	return nil
}

var (
	// ErrFormatMismatch is returned when a framebuffer's pixel format
	// does not match what the operation needs.
	ErrFormatMismatch = errors.New("pixel format mismatch")
	// ErrDimensionMismatch is returned when a framebuffer's size does
	// not match the panel's.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrModeUnsupported is returned when the panel cannot refresh in
	// the requested mode.
	ErrModeUnsupported = errors.New("display mode not supported")
)

// Dev is a handle to an e-paper panel.
//
// The panel is initialized lazily: the first display call runs the
// mode's init sequence, later calls re-run it only after a mode switch,
// a Reset or a Sleep.
type Dev struct {
	c conn.Conn

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIO

	opts   *Opts
	bounds image.Rectangle

	// mu serializes hardware access. mode and initialized are only
	// touched while it is held, so an observer never sees a state the
	// hardware has not reached.
	mu          sync.Mutex
	mode        Mode
	initialized bool
}

// New opens a handle to the panel described by opts.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIO, opts *Opts) (*Dev, error) {
	c, err := p.Connect(4*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}

	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, err
	}

	d := &Dev{
		c:      c,
		dc:     dc,
		cs:     cs,
		rst:    rst,
		busy:   busy,
		opts:   opts,
		bounds: image.Rect(0, 0, opts.Width, opts.Height),
	}

	return d, nil
}

// NewHat opens a handle using the default Raspberry Pi HAT wiring.
func NewHat(p spi.Port, opts *Opts) (*Dev, error) {
	dc := rpi.P1_22
	cs := rpi.P1_24
	rst := rpi.P1_11
	busy := rpi.P1_18
	return New(p, dc, cs, rst, busy, opts)
}

// Mode returns the refresh mode the panel is currently configured for,
// ModeNone before the first init.
func (d *Dev) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// SupportsRegionalRefresh reports whether DisplayRegion performs true
// windowed updates on this model. When false DisplayRegion still
// succeeds but transmits the full frame.
func (d *Dev) SupportsRegionalRefresh() bool {
	return d.opts.SupportsRegion
}

// Init initializes the panel for full mode refreshes. Display calls run
// this implicitly; explicit use only saves the init cost of the first
// draw.
func (d *Dev) Init() error {
	return d.init(ModeFull)
}

// InitPartial initializes the panel for partial refreshes.
func (d *Dev) InitPartial() error {
	return d.init(ModePartial)
}

// InitFast initializes the panel for fast refreshes.
func (d *Dev) InitFast() error {
	return d.init(ModeFast)
}

// InitGrayscale initializes the panel for grayscale refreshes.
func (d *Dev) InitGrayscale() error {
	return d.init(ModeGrayscale)
}

func (d *Dev) init(mode Mode) error {
	if !d.opts.supports(mode) {
		return fmt.Errorf("%w: %s", ErrModeUnsupported, mode)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	d.ensureMode(eh, mode)
	return eh.err
}

// DisplayBase displays a full frame using the full refresh waveform.
func (d *Dev) DisplayBase(fb *pixel.Framebuffer) error {
	return d.display(fb, ModeFull)
}

// DisplayPartial displays a full frame using the non-flashing partial
// waveform. Re-initialization happens only when the panel is not
// already in partial mode.
func (d *Dev) DisplayPartial(fb *pixel.Framebuffer) error {
	return d.display(fb, ModePartial)
}

// DisplayFast displays a full frame using the fast waveform.
func (d *Dev) DisplayFast(fb *pixel.Framebuffer) error {
	return d.display(fb, ModeFast)
}

// DisplayGrayscale displays a full frame using the grayscale waveform.
func (d *Dev) DisplayGrayscale(fb *pixel.Framebuffer) error {
	return d.display(fb, ModeGrayscale)
}

func (d *Dev) display(fb *pixel.Framebuffer, mode Mode) error {
	if err := d.checkFrame(fb); err != nil {
		return err
	}
	if !d.opts.supports(mode) {
		return fmt.Errorf("%w: %s", ErrModeUnsupported, mode)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	d.ensureMode(eh, mode)
	d.transmit(eh, fb, d.bounds)
	if eh.err == nil {
		refreshDisplay(eh, d.opts, mode)
	}
	return eh.err
}

// Show renders src with the panel's default dithering and displays it.
// A *pixel.Framebuffer of the panel's format is transmitted as-is in
// full mode. Other sources are dithered first; on plane split models the
// rendered planes take the ShowRaw path, which keeps the current refresh
// mode.
func (d *Dev) Show(src image.Image) error {
	if fb, ok := src.(*pixel.Framebuffer); ok && fb.Format() == d.opts.Format {
		return d.DisplayBase(fb)
	}
	r, err := render.New(d.opts.Format, "floyd_steinberg")
	if err != nil {
		return err
	}
	switch d.opts.Format {
	case pixel.Mono, pixel.Color4:
		return d.ShowRaw(r.RenderPlanes(src))
	}
	return d.DisplayBase(r.Render(src))
}

// ShowRaw transmits two raw monochrome planes to a dual plane panel and
// refreshes in the current mode. Both planes are validated up front,
// format before dimensions, and written inside one critical section so
// no observer ever sees one plane without the other.
func (d *Dev) ShowRaw(black, red *pixel.Framebuffer) error {
	if !d.opts.dualPlane() {
		return fmt.Errorf("%w: %s panels have no plane RAMs", ErrFormatMismatch, d.opts.Format)
	}
	for _, plane := range []*pixel.Framebuffer{black, red} {
		if plane.Format() != pixel.Mono {
			return fmt.Errorf("%w: plane is %s, want mono", ErrFormatMismatch, plane.Format())
		}
		if plane.Width() != d.opts.Width || plane.Height() != d.opts.Height {
			return fmt.Errorf("%w: plane is %dx%d, panel is %dx%d", ErrDimensionMismatch,
				plane.Width(), plane.Height(), d.opts.Width, d.opts.Height)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	if !d.initialized {
		d.initMode(eh, ModeFull)
	}
	d.transmitPlanes(eh, black, red, d.bounds)
	if eh.err == nil {
		refreshDisplay(eh, d.opts, d.mode)
	}
	return eh.err
}

// DisplayRegion refreshes a sub-rectangle of the panel from a full
// screen framebuffer. The horizontal extent is widened to the RAM's
// byte addressing; models without windowing support transmit the full
// frame instead.
func (d *Dev) DisplayRegion(fb *pixel.Framebuffer, r image.Rectangle) error {
	if err := d.checkFrame(fb); err != nil {
		return err
	}
	window, err := alignRegion(r, d.bounds)
	if err != nil {
		return err
	}

	mode := ModeFull
	if d.opts.SupportsPartial {
		mode = ModePartial
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	d.ensureMode(eh, mode)

	if !d.opts.SupportsRegion {
		window = d.bounds
	}

	if d.opts.Family == FamilyUC && window != d.bounds {
		enterPartialUC(eh, window)
		d.transmit(eh, fb, window)
		if eh.err == nil {
			refreshUC(eh)
		}
		exitPartialUC(eh)
		return eh.err
	}

	d.transmit(eh, fb, window)
	if eh.err == nil {
		refreshDisplay(eh, d.opts, mode)
	}
	return eh.err
}

// Clear whitens the panel using the full refresh waveform.
func (d *Dev) Clear() error {
	fb := pixel.NewFramebuffer(d.opts.Format, d.opts.Width, d.opts.Height)
	white, _ := d.opts.Format.Palette().Index("white")
	fb.Fill(white)
	return d.DisplayBase(fb)
}

// Reset pulses the hardware reset line. Panel state is lost; the next
// display call re-runs its mode init.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	d.reset(eh)
	return eh.err
}

// Sleep puts the controller into deep sleep. RAM content is retained;
// the next display call resets and re-initializes the panel.
func (d *Dev) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	eh := &errorHandler{d: d}
	sleepDisplay(eh, d.opts)
	if eh.err == nil {
		d.mode = ModeNone
		d.initialized = false
	}
	return eh.err
}

// Halt clears the display.
func (d *Dev) Halt() error {
	return d.Clear()
}

// ColorModel returns the panel palette's color model.
func (d *Dev) ColorModel() color.Model {
	return d.opts.Format.Palette().Model()
}

// Bounds returns the bounds of the panel.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// Draw draws the given image to the display. Only full panel draws from
// an aligned source are supported; use DisplayRegion for windowed
// updates.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if r != d.bounds {
		return fmt.Errorf("partial updates are not supported, use DisplayRegion")
	}
	if sp != (image.Point{}) {
		return fmt.Errorf("source offsets are not supported")
	}
	return d.Show(src)
}

// String returns a string containing configuration information.
func (d *Dev) String() string {
	return fmt.Sprintf("panel.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.bounds.Dx(), d.bounds.Dy())
}

// checkFrame validates fb against the panel, format before dimensions.
func (d *Dev) checkFrame(fb *pixel.Framebuffer) error {
	if got, want := fb.Format(), d.opts.Format; got != want {
		return fmt.Errorf("%w: framebuffer is %s, panel wants %s", ErrFormatMismatch, got, want)
	}
	if fb.Width() != d.opts.Width || fb.Height() != d.opts.Height {
		return fmt.Errorf("%w: framebuffer is %dx%d, panel is %dx%d", ErrDimensionMismatch,
			fb.Width(), fb.Height(), d.opts.Width, d.opts.Height)
	}
	return nil
}

// ensureMode initializes the panel iff it is not already configured for
// mode. Must be called with mu held.
func (d *Dev) ensureMode(eh *errorHandler, mode Mode) {
	if d.initialized && d.mode == mode {
		return
	}
	d.initMode(eh, mode)
}

// initMode resets the hardware and runs the mode's init sequence. The
// state fields advance only once the whole sequence went through.
func (d *Dev) initMode(eh *errorHandler, mode Mode) {
	d.reset(eh)
	initDisplay(eh, d.opts, mode)
	if eh.err == nil {
		d.mode = mode
		d.initialized = true
	}
}

// reset toggles the reset line with the settle delays the panels need.
func (d *Dev) reset(eh *errorHandler) {
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)
	eh.rstOut(gpio.Low)
	time.Sleep(2 * time.Millisecond)
	eh.rstOut(gpio.High)
	time.Sleep(20 * time.Millisecond)

	if eh.err == nil {
		d.mode = ModeNone
		d.initialized = false
	}
}

// transmit streams the window of fb in the form the panel family and
// pixel format need. Dual plane windows are written back to back inside
// the caller's critical section.
func (d *Dev) transmit(eh *errorHandler, fb *pixel.Framebuffer, window image.Rectangle) {
	switch {
	case d.opts.Format == pixel.Color7:
		sendWindowUC(eh, []*pixel.Framebuffer{fb}, window)
	case d.opts.Format == pixel.Gray4:
		sendGrayPlanesSSD(eh, fb, window)
	default:
		black, red := render.SplitPlanes(fb)
		d.transmitPlanes(eh, black, red, window)
	}
}

// transmitPlanes writes the black and red planes to their RAMs.
func (d *Dev) transmitPlanes(eh *errorHandler, black, red *pixel.Framebuffer, window image.Rectangle) {
	if d.opts.Family == FamilyUC {
		sendWindowUC(eh, []*pixel.Framebuffer{black, red}, window)
		return
	}
	sendImageSSD(eh, writeRAMBW, black, window, false)
	sendImageSSD(eh, writeRAMRed, red, window, d.opts.Format == pixel.Color4)
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
