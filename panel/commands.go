// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

// Commands understood by the SSD16xx controller family.
const (
	driverOutputControl            byte = 0x01
	deepSleepMode                  byte = 0x10
	dataEntryModeSetting           byte = 0x11
	swReset                        byte = 0x12
	tempSensorSelect               byte = 0x18
	tempSensorRegWrite             byte = 0x1A
	masterActivation               byte = 0x20
	displayUpdateControl1          byte = 0x21
	displayUpdateControl2          byte = 0x22
	writeRAMBW                     byte = 0x24
	writeRAMRed                    byte = 0x26
	writeVcomRegister              byte = 0x2C
	writeLutRegister               byte = 0x32
	writeDisplayOptionRegister     byte = 0x37
	borderWaveformControl          byte = 0x3C
	setRAMXAddressStartEndPosition byte = 0x44
	setRAMYAddressStartEndPosition byte = 0x45
	setRAMXAddressCounter          byte = 0x4E
	setRAMYAddressCounter          byte = 0x4F
)

// Flags for the displayUpdateControl2 command.
const (
	displayUpdateDisableClock byte = 1 << iota
	displayUpdateDisableAnalog
	displayUpdateDisplay
	displayUpdateMode2
	displayUpdateLoadLUTFromOTP
	displayUpdateLoadTemperature
	displayUpdateEnableClock
	displayUpdateEnableAnalog
)

// Fake temperatures written to the sensor register to select OTP
// waveforms.
const (
	tempWaveformFast      byte = 0x64
	tempWaveformGrayscale byte = 0x5A
)

// Commands understood by the UC81xx controller family.
const (
	ucPanelSetting           byte = 0x00
	ucPowerSetting           byte = 0x01
	ucPowerOff               byte = 0x02
	ucPowerOffSequence       byte = 0x03
	ucPowerOn                byte = 0x04
	ucBoosterSoftStart       byte = 0x06
	ucDeepSleep              byte = 0x07
	ucDataStartTransmission1 byte = 0x10
	ucDisplayRefresh         byte = 0x12
	ucDataStartTransmission2 byte = 0x13
	ucPLLControl             byte = 0x30
	ucTempSensorEnable       byte = 0x41
	ucVcomDataInterval       byte = 0x50
	ucTconSetting            byte = 0x60
	ucResolutionSetting      byte = 0x61
	ucSpiFlashControl        byte = 0x65
	ucPartialWindow          byte = 0x90
	ucPartialIn              byte = 0x91
	ucPartialOut             byte = 0x92
	ucPowerSaving            byte = 0xE3
)
