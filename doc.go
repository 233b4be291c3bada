// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epaper is a container for e-paper display drivers and the
// quantization pipeline shared between them.
//
// The panel package drives the displays themselves. The pixel, dither and
// render packages turn images into the packed buffers panels consume, and
// prep readies photographs for that pipeline. termview and webview emulate
// a panel for development on machines without the hardware attached.
package epaper
