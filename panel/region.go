// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"
	"image"
)

// ErrRegionOutOfBounds is returned when a refresh region is empty or
// extends past the panel bounds.
var ErrRegionOutOfBounds = errors.New("refresh region out of bounds")

// alignRegion widens r to the 8 pixel byte addressing of the RAM's
// X axis: the left edge is floored to a multiple of 8, the right edge
// rounded up and clamped to the panel width. The Y axis is pixel
// addressable and passes through unchanged.
func alignRegion(r, bounds image.Rectangle) (image.Rectangle, error) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: empty region %v", ErrRegionOutOfBounds, r)
	}
	if !r.In(bounds) {
		return image.Rectangle{}, fmt.Errorf("%w: %v extends past %v", ErrRegionOutOfBounds, r, bounds)
	}
	r.Min.X &^= 7
	r.Max.X = (r.Max.X + 7) &^ 7
	if r.Max.X > bounds.Max.X {
		r.Max.X = bounds.Max.X
	}
	return r, nil
}
