// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPalette(t *testing.T) {
	for _, tc := range []struct {
		name    string
		colors  []string
		want    []string
		wantErr error
	}{
		{
			name:   "tri-color",
			colors: []string{"black", "white", "yellow", "red"},
			want:   []string{"black", "white", "yellow", "red"},
		},
		{
			name:   "duplicates keep first position",
			colors: []string{"black", "white", "black", "white"},
			want:   []string{"black", "white"},
		},
		{
			name:    "unknown name",
			colors:  []string{"black", "chartreuse"},
			wantErr: ErrUnknownColor,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewPalette(tc.colors...)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewPalette() error %v, want %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}

			got := make([]string, p.Len())
			for i := range got {
				got[i] = p.Entry(i).Name
			}

			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("NewPalette() entry difference (-got +want):\n%s", diff)
			}
		})
	}

	if _, err := NewPalette(); err == nil {
		t.Errorf("NewPalette() accepted an empty color list")
	}
}

func TestPaletteIndex(t *testing.T) {
	p := Color7.Palette()

	for i := 0; i < p.Len(); i++ {
		e := p.Entry(i)
		if e.Index != i {
			t.Errorf("Entry(%d).Index = %d", i, e.Index)
		}
		if idx, ok := p.Index(e.Name); !ok || idx != i {
			t.Errorf("Index(%q) = %d, %v, want %d, true", e.Name, idx, ok, i)
		}
	}

	if _, ok := p.Index("chartreuse"); ok {
		t.Errorf("Index() found a color that is not in the palette")
	}
}

func TestPaletteNearest(t *testing.T) {
	p, err := NewPalette("black", "white", "red", "blue")
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name string
		in   Color
		want string
	}{
		// A dark but saturated blue is much closer to black in plain
		// euclidean RGB distance. The weighted metric keeps the hue.
		{name: "dark blue keeps hue", in: Color{0, 0, 180}, want: "blue"},
		{name: "dark red keeps hue", in: Color{180, 0, 0}, want: "red"},
		{name: "exact black", in: Black, want: "black"},
		{name: "exact white", in: White, want: "white"},
		{name: "near white", in: Color{250, 250, 250}, want: "white"},
		{name: "dark gray", in: Color{40, 40, 40}, want: "black"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Nearest(tc.in); got.Name != tc.want {
				t.Errorf("Nearest(%v) = %q, want %q", tc.in, got.Name, tc.want)
			}
		})
	}
}

func TestPaletteNearestMemoized(t *testing.T) {
	p, err := NewPalette("black", "white", "red")
	if err != nil {
		t.Fatal(err)
	}

	c := Color{10, 200, 30}

	first := p.Nearest(c)
	for i := 0; i < 3; i++ {
		if got := p.Nearest(c); got != first {
			t.Fatalf("Nearest(%v) returned a different entry on lookup %d: %p != %p", c, i+2, got, first)
		}
	}

	// Exact palette colors resolve to their own entry.
	if got := p.Nearest(Red); got != p.Entry(2) {
		t.Errorf("Nearest(Red) = %v, want the red entry", got)
	}
}

func TestSaturatedPalette(t *testing.T) {
	base := Color7.Palette()

	full, err := SaturatedPalette(0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < base.Len(); i++ {
		if got, want := full.Color(i), base.Color(i); got != want {
			t.Errorf("SaturatedPalette(0).Color(%d) = %v, want datasheet %v", i, got, want)
		}
	}

	measured, err := SaturatedPalette(1)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range measured7 {
		if got := measured.Color(i); got != want {
			t.Errorf("SaturatedPalette(1).Color(%d) = %v, want measured %v", i, got, want)
		}
	}

	if _, err := SaturatedPalette(1.5); err == nil {
		t.Errorf("SaturatedPalette(1.5) accepted an out of range level")
	}
}

func TestColorByName(t *testing.T) {
	c, err := ColorByName("light_gray")
	if err != nil {
		t.Fatal(err)
	}
	if c != LightGray {
		t.Errorf("ColorByName(light_gray) = %v", c)
	}

	if _, err := ColorByName("mauve"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("ColorByName(mauve) error = %v, want ErrUnknownColor", err)
	}
}
