// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"encoding/binary"
	"image"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// controller abstracts the command channel to the panel so command
// sequences can be tested against a recording fake.
type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sendByte(byte)
	waitUntilIdle()
}

// initDisplay runs the init sequence bringing the panel into the given
// mode.
func initDisplay(ctrl controller, opts *Opts, mode Mode) {
	if opts.Family == FamilyUC {
		initDisplayUC(ctrl, opts)
		return
	}
	switch mode {
	case ModeFast:
		initDisplayFastSSD(ctrl, opts, tempWaveformFast)
	case ModeGrayscale:
		initDisplayFastSSD(ctrl, opts, tempWaveformGrayscale)
	default:
		initDisplaySSD(ctrl, opts)
		configDisplayModeSSD(ctrl, opts, mode)
	}
}

// initDisplaySSD performs the register setup shared by the full and
// partial modes of SSD16xx controllers.
func initDisplaySSD(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{byte(opts.Height - 1), byte((opts.Height - 1) >> 8), 0x00})

	setMemoryAreaSSD(ctrl, image.Rect(0, 0, (opts.Width+7)/8, opts.Height))

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendByte(0x05)

	ctrl.sendCommand(displayUpdateControl1)
	ctrl.sendData([]byte{0x00, 0x80})

	// Internal temperature sensor.
	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	ctrl.waitUntilIdle()
}

// initDisplayFastSSD initializes an SSD16xx controller with an OTP
// waveform selected by faking the temperature the LUT load happens at.
func initDisplayFastSSD(ctrl controller, opts *Opts, temp byte) {
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(tempSensorSelect)
	ctrl.sendByte(0x80)

	setMemoryAreaSSD(ctrl, image.Rect(0, 0, (opts.Width+7)/8, opts.Height))

	// Load temperature value.
	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(0xB1)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(tempSensorRegWrite)
	ctrl.sendData([]byte{temp, 0x00})

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(0x91)
	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// configDisplayModeSSD programs the mode dependent waveform registers.
// Models without register LUTs rely on the OTP waveforms loaded during
// refresh instead.
func configDisplayModeSSD(ctrl controller, opts *Opts, mode Mode) {
	var vcom byte
	var borderWaveformControlValue byte

	switch mode {
	case ModeFull:
		vcom = 0x55
		borderWaveformControlValue = 0x03
	case ModePartial:
		vcom = 0x24
		borderWaveformControlValue = 0x01
	default:
		return
	}

	lut := opts.lut(mode)
	if lut != nil {
		ctrl.sendCommand(writeVcomRegister)
		ctrl.sendByte(vcom)

		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendByte(borderWaveformControlValue)

		ctrl.sendCommand(writeLutRegister)
		ctrl.sendData(lut[:lutSize])
	}

	if mode == ModePartial {
		if lut != nil {
			ctrl.sendCommand(writeDisplayOptionRegister)
			ctrl.sendData([]byte{0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00})
		}

		// Start up the parts likely used by a draw operation soon.
		ctrl.sendCommand(displayUpdateControl2)
		ctrl.sendData([]byte{displayUpdateEnableClock | displayUpdateEnableAnalog})

		ctrl.sendCommand(masterActivation)
		ctrl.waitUntilIdle()
	}
}

// setMemoryAreaSSD configures the target RAM window (horizontal in
// bytes, vertical in pixels) and moves the address counter to its top
// left corner.
func setMemoryAreaSSD(ctrl controller, area image.Rectangle) {
	startX, endX := uint8(area.Min.X), uint8(area.Max.X-1)
	startY, endY := uint16(area.Min.Y), uint16(area.Max.Y-1)

	startEndY := [4]byte{}
	binary.LittleEndian.PutUint16(startEndY[0:], startY)
	binary.LittleEndian.PutUint16(startEndY[2:], endY)

	ctrl.sendCommand(dataEntryModeSetting)
	ctrl.sendData([]byte{
		// Y increment, X increment; update address counter in X direction
		0b011,
	})

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{startX, endX})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData(startEndY[:4])

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{startX})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData(startEndY[:2])
}

// sendImageSSD streams the window rows of a single plane into the RAM
// selected by cmd. The window is pixel addressed with an 8 aligned left
// edge; rows come straight out of the full screen plane, the caller
// never pre-crops. The red RAM of tri-color panels wants 1 for colored
// pixels, the inverse of the plane's ink convention.
func sendImageSSD(ctrl controller, cmd byte, plane *pixel.Framebuffer, window image.Rectangle, invert bool) {
	memRect := image.Rect(window.Min.X/8, window.Min.Y, (window.Max.X+7)/8, window.Max.Y)

	setMemoryAreaSSD(ctrl, memRect)

	ctrl.sendCommand(cmd)

	rowData := make([]byte, memRect.Dx())
	for y := memRect.Min.Y; y < memRect.Max.Y; y++ {
		copy(rowData, plane.Row(y)[memRect.Min.X:memRect.Max.X])
		if invert {
			for i := range rowData {
				rowData[i] = ^rowData[i]
			}
		}
		ctrl.sendData(rowData)
	}
}

// sendGrayPlanesSSD splits a 2 bit per pixel frame over the two RAMs:
// the BW RAM carries the high bit of each level, the red RAM the low
// bit. The grayscale waveform combines them into four tones.
func sendGrayPlanesSSD(ctrl controller, fb *pixel.Framebuffer, window image.Rectangle) {
	memRect := image.Rect(window.Min.X/8, window.Min.Y, (window.Max.X+7)/8, window.Max.Y)

	for _, pass := range []struct {
		cmd   byte
		shift uint
	}{
		{writeRAMBW, 1},
		{writeRAMRed, 0},
	} {
		setMemoryAreaSSD(ctrl, memRect)

		ctrl.sendCommand(pass.cmd)

		rowData := make([]byte, memRect.Dx())
		for y := memRect.Min.Y; y < memRect.Max.Y; y++ {
			for i := range rowData {
				rowData[i] = 0
			}
			for x := memRect.Min.X * 8; x < window.Max.X; x++ {
				if fb.IndexAt(x, y)>>pass.shift&1 != 0 {
					rowData[x/8-memRect.Min.X] |= 0x80 >> (x % 8)
				}
			}
			ctrl.sendData(rowData)
		}
	}
}

// updateDisplaySSD triggers the refresh for the given mode. Models with
// register LUTs already carry their waveform, everything else loads it
// from OTP as part of the update sequence.
func updateDisplaySSD(ctrl controller, opts *Opts, mode Mode) {
	var displayUpdateFlags byte

	if mode == ModePartial {
		// Make use of red buffer
		displayUpdateFlags = 0x80
	}

	ctrl.sendCommand(displayUpdateControl1)
	ctrl.sendData([]byte{displayUpdateFlags})

	seq := displayUpdateDisableClock |
		displayUpdateDisableAnalog |
		displayUpdateDisplay |
		displayUpdateEnableClock |
		displayUpdateEnableAnalog
	if opts.lut(mode) == nil {
		switch mode {
		case ModeFull:
			seq |= displayUpdateLoadLUTFromOTP | displayUpdateLoadTemperature
		case ModePartial:
			seq |= displayUpdateMode2 | displayUpdateLoadLUTFromOTP | displayUpdateLoadTemperature
		case ModeGrayscale:
			seq |= displayUpdateMode2
		}
	}

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendByte(seq)

	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// initDisplayUC runs the power-on configuration of UC81xx controllers.
func initDisplayUC(ctrl controller, opts *Opts) {
	if opts.Format == pixel.Color7 {
		initDisplayUC7Color(ctrl, opts)
		return
	}

	ctrl.sendCommand(ucBoosterSoftStart)
	ctrl.sendData([]byte{0x17, 0x17, 0x17})

	ctrl.sendCommand(ucPowerOn)
	ctrl.waitUntilIdle()

	// Black/white/red mode, LUT from OTP, scan down, shift right.
	ctrl.sendCommand(ucPanelSetting)
	ctrl.sendByte(0x0F)
}

// initDisplayUC7Color configures the 7-color panels. The resolution
// select bits and the border index come from the model description.
func initDisplayUC7Color(ctrl controller, opts *Opts) {
	tres := make([]byte, 4)
	binary.LittleEndian.PutUint16(tres[0:], uint16(opts.Width))
	binary.LittleEndian.PutUint16(tres[2:], uint16(opts.Height))
	ctrl.sendCommand(ucResolutionSetting)
	ctrl.sendData(tres)

	// Resolution select, LUT from external flash, scan down, shift
	// right, DC-DC on.
	ctrl.sendCommand(ucPanelSetting)
	ctrl.sendData([]byte{opts.Resolution<<6 | 0b101111, 0x08})

	ctrl.sendCommand(ucPowerSetting)
	ctrl.sendData([]byte{
		(0x06 << 3) | // Source LV power selection
			(0x01 << 2) | // Source power selection, internal DC/DC
			(0x01 << 1) | // Gate power selection, internal DC/DC
			0x01,
		0x00, // VGx 20V
		0x23, // VSH 10V
		0x23, // VSL -10V
	})

	// PLL clock frequency 50Hz.
	ctrl.sendCommand(ucPLLControl)
	ctrl.sendByte(0x3C)

	ctrl.sendCommand(ucTempSensorEnable)
	ctrl.sendByte(0x00)

	ctrl.sendCommand(ucVcomDataInterval)
	ctrl.sendData([]byte{opts.Border<<5 | 0x17, 0x00})

	// Gate/source non-overlap period.
	ctrl.sendCommand(ucTconSetting)
	ctrl.sendByte(0x22)

	// Disable external flash.
	ctrl.sendCommand(ucSpiFlashControl)
	ctrl.sendByte(0x00)

	ctrl.sendCommand(ucPowerSaving)
	ctrl.sendByte(0xAA)

	// Power off in one frame.
	ctrl.sendCommand(ucPowerOffSequence)
	ctrl.sendByte(0x00)
}

// sendWindowUC streams the window rows of the planes through the data
// start transmissions. 7-color frames ship whole in the first
// transmission; dual plane panels ship black then red.
func sendWindowUC(ctrl controller, planes []*pixel.Framebuffer, window image.Rectangle) {
	cmds := []byte{ucDataStartTransmission1, ucDataStartTransmission2}
	for i, fb := range planes {
		depth := fb.Format().Depth()
		x0 := window.Min.X * depth / 8
		x1 := (window.Max.X*depth + 7) / 8

		ctrl.sendCommand(cmds[i])
		for y := window.Min.Y; y < window.Max.Y; y++ {
			ctrl.sendData(fb.Row(y)[x0:x1])
		}
	}
}

// enterPartialUC brackets the start of a windowed update. Coordinates
// are sent as 10 bit values with the horizontal edges byte aligned.
func enterPartialUC(ctrl controller, window image.Rectangle) {
	ctrl.sendCommand(ucPartialIn)
	ctrl.sendCommand(ucPartialWindow)
	ctrl.sendData([]byte{
		byte(window.Min.X >> 8), byte(window.Min.X),
		byte((window.Max.X - 1) >> 8), byte(window.Max.X - 1),
		byte(window.Min.Y >> 8), byte(window.Min.Y),
		byte((window.Max.Y - 1) >> 8), byte(window.Max.Y - 1),
		0x28, // gates scan inside and outside the window
	})
}

func exitPartialUC(ctrl controller) {
	ctrl.sendCommand(ucPartialOut)
}

// refreshUC powers the panel on, triggers the refresh and powers it
// off again. The busy waits cover the panel's settle periods.
func refreshUC(ctrl controller) {
	ctrl.sendCommand(ucPowerOn)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(ucDisplayRefresh)
	ctrl.waitUntilIdle()

	ctrl.sendCommand(ucPowerOff)
	ctrl.waitUntilIdle()
}

// refreshDisplay triggers the refresh appropriate for the family.
func refreshDisplay(ctrl controller, opts *Opts, mode Mode) {
	if opts.Family == FamilyUC {
		refreshUC(ctrl)
		return
	}
	updateDisplaySSD(ctrl, opts, mode)
}

// sleepDisplay puts the controller into deep sleep. Waking up requires
// a hardware reset.
func sleepDisplay(ctrl controller, opts *Opts) {
	if opts.Family == FamilyUC {
		ctrl.sendCommand(ucDeepSleep)
		ctrl.sendByte(0xA5)
		return
	}

	// Turn off DC/DC converter, clock, output load and MCU. RAM content
	// is retained.
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendByte(0x01)
}
