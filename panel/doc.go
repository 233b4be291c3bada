// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panel controls SPI connected e-paper panels built on SSD16xx
// and UC81xx controllers.
//
// A Dev tracks which refresh mode the hardware is configured for and
// re-runs init sequences only when the mode changes, so alternating
// partial updates stay cheap. Dual plane models receive their black and
// red planes in one locked transaction.
//
// # Wiring
//
// The panels use a 4-wire SPI bus plus data/command, chip select, reset
// and busy pins. NewHat assumes the common Raspberry Pi HAT pinout.
//
// # Datasheets
//
// https://www.solomon-systech.com/product/ssd1680/
// https://www.buydisplay.com/download/ic/UC8159C.pdf
package panel
