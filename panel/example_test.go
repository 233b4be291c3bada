// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel_test

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/epaper/panel"
	"github.com/GermanBionicSystems/epaper/pixel"
)

func Example() {
	path := flag.String("image", "", "Path to image file (122x250) to display")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("SPI0.0")
	if err != nil {
		log.Fatal(err)
	}

	dev, err := panel.NewHat(b, &panel.EPD2in13)
	if err != nil {
		log.Fatal(err)
	}

	if err := dev.Show(img); err != nil {
		log.Fatal(err)
	}

	if err := dev.Sleep(); err != nil {
		log.Fatal(err)
	}
}

func ExampleDetectOpts() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("SPI0.0")
	if err != nil {
		log.Fatal(err)
	}

	eeprom, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer eeprom.Close()

	o, err := panel.DetectOpts(eeprom)
	if err != nil {
		log.Fatal(err)
	}

	dev, err := panel.NewHat(b, o)
	if err != nil {
		log.Fatal(err)
	}

	if err := dev.Clear(); err != nil {
		log.Fatal(err)
	}
}

func ExampleDev_DisplayRegion() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("SPI0.0")
	if err != nil {
		log.Fatal(err)
	}

	dev, err := panel.NewHat(b, &panel.EPD2in13)
	if err != nil {
		log.Fatal(err)
	}

	fb := pixel.NewFramebuffer(pixel.Mono, 122, 250)
	white, _ := pixel.Mono.Palette().Index("white")
	fb.Fill(white)

	// Draw the base frame once, then only refresh the region that
	// changes.
	if err := dev.DisplayBase(fb); err != nil {
		log.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		fb.SetIndex(10+i, 120, 0)
		if err := dev.DisplayRegion(fb, image.Rect(10, 110, 60, 130)); err != nil {
			log.Fatal(err)
		}
	}

	if err := dev.Sleep(); err != nil {
		log.Fatal(err)
	}
}
