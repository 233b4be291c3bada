// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFramebufferPacking(t *testing.T) {
	for _, tc := range []struct {
		name   string
		format Format
		width  int
		height int
		set    [][3]int // x, y, index
		want   []byte
	}{
		{
			name:   "mono msb first",
			format: Mono,
			width:  10,
			height: 2,
			set:    [][3]int{{0, 0, 1}, {7, 0, 1}, {9, 1, 1}},
			want:   []byte{0x81, 0x00, 0x00, 0x40},
		},
		{
			name:   "gray4 four pixels per byte",
			format: Gray4,
			width:  5,
			height: 1,
			set:    [][3]int{{0, 0, 3}, {3, 0, 2}, {4, 0, 1}},
			want:   []byte{0xC2, 0x40},
		},
		{
			name:   "color7 high nibble first",
			format: Color7,
			width:  3,
			height: 1,
			set:    [][3]int{{0, 0, 5}, {1, 0, 6}, {2, 0, 1}},
			want:   []byte{0x56, 0x10},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(tc.format, tc.width, tc.height)

			for _, s := range tc.set {
				fb.SetIndex(s[0], s[1], s[2])
			}

			if diff := cmp.Diff(fb.Bytes(), tc.want); diff != "" {
				t.Errorf("Bytes() difference (-got +want):\n%s", diff)
			}

			for _, s := range tc.set {
				if got := fb.IndexAt(s[0], s[1]); got != s[2] {
					t.Errorf("IndexAt(%d, %d) = %d, want %d", s[0], s[1], got, s[2])
				}
			}
		})
	}
}

func TestFramebufferStride(t *testing.T) {
	for _, tc := range []struct {
		format Format
		width  int
		want   int
	}{
		{Mono, 122, 16},
		{Mono, 128, 16},
		{Gray4, 400, 100},
		{Color4, 104, 26},
		{Color7, 600, 300},
	} {
		fb := NewFramebuffer(tc.format, tc.width, 1)
		if fb.Stride() != tc.want {
			t.Errorf("NewFramebuffer(%v, %d, 1).Stride() = %d, want %d", tc.format, tc.width, fb.Stride(), tc.want)
		}
	}
}

func TestFramebufferOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(Mono, 8, 8)

	fb.SetIndex(-1, 0, 1)
	fb.SetIndex(0, -1, 1)
	fb.SetIndex(8, 0, 1)
	fb.SetIndex(0, 8, 1)

	for _, b := range fb.Bytes() {
		if b != 0 {
			t.Fatalf("out of bounds SetIndex modified the buffer: % x", fb.Bytes())
		}
	}

	if got := fb.IndexAt(99, 99); got != 0 {
		t.Errorf("IndexAt(99, 99) = %d, want 0", got)
	}
}

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(Mono, 16, 4)

	draw.Draw(fb, fb.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

	for _, b := range fb.Bytes() {
		if b != 0xFF {
			t.Fatalf("drawing white did not set every bit: % x", fb.Bytes())
		}
	}

	fb.Set(3, 1, color.RGBA{10, 10, 10, 255})
	if got := fb.IndexAt(3, 1); got != 0 {
		t.Errorf("Set() near-black index = %d, want 0", got)
	}
	if got := fb.At(3, 1); got != Black {
		t.Errorf("At(3, 1) = %v, want %v", got, Black)
	}
}

func TestFramebufferSetColorName(t *testing.T) {
	fb := NewFramebuffer(Color4, 4, 4)

	if err := fb.SetColorName(1, 2, "red"); err != nil {
		t.Fatal(err)
	}
	if got := fb.IndexAt(1, 2); got != 3 {
		t.Errorf("IndexAt(1, 2) = %d, want 3", got)
	}

	if err := fb.SetColorName(0, 0, "green"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("SetColorName(green) error = %v, want ErrUnknownColor", err)
	}
}

func TestFramebufferFill(t *testing.T) {
	mono := NewFramebuffer(Mono, 12, 3)
	mono.Fill(1)
	for _, b := range mono.Bytes() {
		if b != 0xFF {
			t.Fatalf("Fill(1) on mono produced % x", mono.Bytes())
		}
	}

	gray := NewFramebuffer(Gray4, 8, 2)
	gray.Fill(2)
	for _, b := range gray.Bytes() {
		if b != 0xAA {
			t.Fatalf("Fill(2) on gray4 produced % x", gray.Bytes())
		}
	}
}
