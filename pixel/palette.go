// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixel

import (
	"fmt"
	"image/color"
	"strings"
	"sync"

	clr "github.com/lucasb-eyer/go-colorful"
)

// Entry is one palette color together with its name and hardware index.
// Entries are allocated once per palette; Nearest hands out pointers into
// the palette, so repeated lookups of the same color return the identical
// entry.
type Entry struct {
	Index int
	Name  string
	Color Color
}

// Palette is an ordered list of named colors. The position of a color is
// the index written into framebuffer memory.
//
// A Palette is immutable after construction and safe for concurrent use.
type Palette struct {
	entries []Entry

	mu    sync.Mutex
	cache map[Color]*Entry
}

// NewPalette builds a palette from color names, keeping the first
// occurrence of any duplicate. At least one name is required.
func NewPalette(names ...string) (*Palette, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("palette needs at least one color")
	}
	p := &Palette{cache: map[Color]*Entry{}}
	for _, name := range names {
		if _, ok := p.Index(name); ok {
			continue
		}
		c, err := ColorByName(name)
		if err != nil {
			return nil, err
		}
		p.entries = append(p.entries, Entry{
			Index: len(p.entries),
			Name:  name,
			Color: c,
		})
	}
	return p, nil
}

func mustPalette(names ...string) *Palette {
	p, err := NewPalette(names...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.entries)
}

// Entry returns the entry stored at index i.
func (p *Palette) Entry(i int) *Entry {
	return &p.entries[i]
}

// Color returns the color stored at index i.
func (p *Palette) Color(i int) Color {
	return p.entries[i].Color
}

// Index returns the index of the named color.
func (p *Palette) Index(name string) (int, bool) {
	for i := range p.entries {
		if p.entries[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// String returns the palette colors in order.
func (p *Palette) String() string {
	names := make([]string, len(p.entries))
	for i := range p.entries {
		names[i] = p.entries[i].Name
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Nearest returns the palette entry closest to c.
//
// Distance is the "redmean" weighted RGB metric, which approximates
// perceptual distance without a full color space conversion: darker reds
// shift weight onto the blue channel, so dark but saturated colors keep
// their hue instead of collapsing into black. Ties resolve to the entry
// listed first.
//
// Results are cached per distinct input color and never invalidated, the
// palette is fixed. Two lookups of the same color return the identical
// *Entry.
func (p *Palette) Nearest(c Color) *Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.cache[c]; ok {
		return e
	}

	best := &p.entries[0]
	bestDist := redmean(c, best.Color)
	for i := 1; i < len(p.entries) && bestDist > 0; i++ {
		if d := redmean(c, p.entries[i].Color); d < bestDist {
			best = &p.entries[i]
			bestDist = d
		}
	}

	p.cache[c] = best
	return best
}

// Model returns a color.Model mapping arbitrary colors onto the palette.
func (p *Palette) Model() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return p.Nearest(makeColor(c)).Color
	})
}

// redmean is the squared weighted distance between two colors. The red
// and blue weights depend on the mean red level of the pair.
func redmean(a, b Color) int {
	rmean := (int(a.R) + int(b.R)) / 2
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return ((512+rmean)*dr*dr)>>8 + 4*dg*dg + ((767-rmean)*db*db)>>8
}

// measured7 holds the seven ink colors as measured on an actual panel.
// They are noticeably duller than the datasheet values.
var measured7 = []Color{
	{57, 48, 57},    // black
	{255, 255, 255}, // white
	{58, 91, 70},    // green
	{61, 59, 94},    // blue
	{156, 72, 75},   // red
	{208, 190, 71},  // yellow
	{177, 106, 73},  // orange
}

// SaturatedPalette returns the 7-color palette blended between the colors
// measured on the panel and the datasheet values. At saturation 1 the
// measured colors are used unchanged; at 0 the datasheet values. Matching
// against a partially saturated palette pushes more source colors onto
// the vivid inks, which tends to look better for photographs.
func SaturatedPalette(saturation float64) (*Palette, error) {
	if saturation < 0 || saturation > 1 {
		return nil, fmt.Errorf("saturation %v out of range [0, 1]", saturation)
	}

	p := &Palette{cache: map[Color]*Entry{}}
	for i, e := range paletteColor7.entries {
		m, _ := clr.MakeColor(measured7[i])
		d, _ := clr.MakeColor(e.Color)
		mix := m.BlendRgb(d, 1-saturation).Clamped()
		r, g, b := mix.RGB255()
		p.entries = append(p.entries, Entry{
			Index: i,
			Name:  e.Name,
			Color: Color{r, g, b},
		})
	}
	return p, nil
}
