// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"

	"github.com/GermanBionicSystems/epaper/pixel"
)

// eepromAddr is the I2C address of the model description EEPROM found
// on detectable HATs.
const eepromAddr = 0x50

// DetectOpts reads the model description EEPROM some HATs carry and
// builds the matching Opts.
func DetectOpts(bus i2c.Bus) (*Opts, error) {
	data, err := readEep(bus)
	if err != nil {
		return nil, fmt.Errorf("failed to detect panel: %v", err)
	}

	o := &Opts{
		Width:  int(binary.LittleEndian.Uint16(data[0:])),
		Height: int(binary.LittleEndian.Uint16(data[2:])),
	}

	switch data[4] {
	case 1:
		o.Format = pixel.Mono
		o.Family = FamilySSD
		o.SupportsPartial = true
		o.SupportsFast = true
		o.SupportsRegion = true
	case 2, 3:
		// Red and yellow variants share the dual plane encoding.
		o.Format = pixel.Color4
		o.Family = FamilySSD
	case 4:
		o.Format = pixel.Color7
		o.Family = FamilyUC
		o.Border = 1
		switch data[6] {
		case 14:
			o.Resolution = 0b11 // 600x448
		case 15, 16:
			o.Resolution = 0b10 // 640x400
		default:
			return nil, fmt.Errorf("failed to detect panel: display type %d not supported", data[6])
		}
	default:
		return nil, fmt.Errorf("failed to detect panel: color %d not supported", data[4])
	}

	return o, nil
}

func readEep(bus i2c.Bus) ([]byte, error) {
	// The EEPROM speaks SMBus, the register address goes out as two
	// bytes of data.
	write := []byte{0x00, 0x00}

	data := make([]byte, 29)

	if err := bus.Tx(eepromAddr, write, data); err != nil {
		return nil, err
	}

	return data, nil
}
