// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"image"
	"testing"
)

func TestAlignRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 122, 250)

	for _, tc := range []struct {
		name    string
		region  image.Rectangle
		want    image.Rectangle
		wantErr bool
	}{
		{
			name:   "unaligned left edge",
			region: image.Rect(5, 100, 15, 120),
			want:   image.Rect(0, 100, 16, 120),
		},
		{
			name:   "already aligned",
			region: image.Rect(8, 10, 16, 20),
			want:   image.Rect(8, 10, 16, 20),
		},
		{
			name:   "right edge clamped to panel width",
			region: image.Rect(112, 0, 122, 10),
			want:   image.Rect(112, 0, 122, 10),
		},
		{
			name:   "full panel",
			region: bounds,
			want:   bounds,
		},
		{
			name:   "single pixel",
			region: image.Rect(13, 42, 14, 43),
			want:   image.Rect(8, 42, 16, 43),
		},
		{
			name:    "empty",
			region:  image.Rectangle{Min: image.Pt(10, 10), Max: image.Pt(10, 20)},
			wantErr: true,
		},
		{
			name:    "negative height",
			region:  image.Rectangle{Min: image.Pt(0, 20), Max: image.Pt(8, 10)},
			wantErr: true,
		},
		{
			name:    "negative origin",
			region:  image.Rect(-8, 0, 8, 10),
			wantErr: true,
		},
		{
			name:    "past right edge",
			region:  image.Rect(120, 0, 130, 10),
			wantErr: true,
		},
		{
			name:    "past bottom edge",
			region:  image.Rect(0, 240, 8, 260),
			wantErr: true,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := alignRegion(tc.region, bounds)
			if tc.wantErr {
				if !errors.Is(err, ErrRegionOutOfBounds) {
					t.Fatalf("alignRegion(%v) err = %v, want ErrRegionOutOfBounds", tc.region, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("alignRegion(%v) failed: %v", tc.region, err)
			}
			if got != tc.want {
				t.Errorf("alignRegion(%v) = %v, want %v", tc.region, got, tc.want)
			}
		})
	}
}
