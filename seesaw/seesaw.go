// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package seesaw implements the subset of the Adafruit seesaw protocol
// needed to drive seesaw-based keypads such as the NeoKey 1x4.
//
// The seesaw is an ATSAMD09 companion chip that exposes GPIO, NeoPixel
// and other peripherals behind an I2C register interface. Registers are
// addressed by a module base byte followed by a function byte; reads
// require a short delay between addressing the register and clocking the
// data out.
//
// # Datasheet
//
// https://learn.adafruit.com/adafruit-seesaw-atsamd09-breakout
package seesaw

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
)

// Module bases.
const (
	_STATUS_BASE   byte = 0x00
	_GPIO_BASE     byte = 0x01
	_NEOPIXEL_BASE byte = 0x0E
)

// Status module functions.
const (
	_STATUS_HW_ID byte = 0x01
	_STATUS_SWRST byte = 0x7F
)

// GPIO module functions.
const (
	_GPIO_DIRSET_BULK byte = 0x02
	_GPIO_DIRCLR_BULK byte = 0x03
	_GPIO_BULK        byte = 0x04
	_GPIO_BULK_SET    byte = 0x05
	_GPIO_BULK_CLR    byte = 0x06
	_GPIO_INTENSET    byte = 0x08
	_GPIO_INTENCLR    byte = 0x09
	_GPIO_PULLENSET   byte = 0x0B
	_GPIO_PULLENCLR   byte = 0x0C
)

const (
	// The firmware needs a gap between the register write and the read
	// that follows.
	readDelay = 1 * time.Millisecond
	// Settling time after a soft reset.
	resetDelay = 10 * time.Millisecond
)

var errUnknownPinMode = errors.New("unknown pin mode")

// PinMode selects the direction and pull wiring of a set of GPIO pins.
type PinMode int

const (
	Output PinMode = iota
	Input
	InputPullup
	InputPulldown
)

// Dev is a handle to a seesaw chip.
type Dev struct {
	d *i2c.Dev
}

// New resets the seesaw at address and returns a handle to it.
func New(bus i2c.Bus, address uint16) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}}
	if err := dev.SoftReset(); err != nil {
		return nil, err
	}
	return dev, nil
}

// SoftReset restores the chip to its power-on state.
func (dev *Dev) SoftReset() error {
	if err := dev.write(_STATUS_BASE, _STATUS_SWRST, 0xFF); err != nil {
		return err
	}
	time.Sleep(resetDelay)
	return nil
}

// PinModeBulk configures every pin set in pins to mode in one go.
func (dev *Dev) PinModeBulk(pins uint32, mode PinMode) error {
	var fns []byte
	switch mode {
	case Output:
		fns = []byte{_GPIO_DIRSET_BULK}
	case Input:
		fns = []byte{_GPIO_DIRCLR_BULK, _GPIO_PULLENCLR}
	case InputPullup:
		fns = []byte{_GPIO_DIRCLR_BULK, _GPIO_PULLENSET, _GPIO_BULK_SET}
	case InputPulldown:
		fns = []byte{_GPIO_DIRCLR_BULK, _GPIO_PULLENSET, _GPIO_BULK_CLR}
	default:
		return wrap(errUnknownPinMode)
	}
	b := bulkBytes(pins)
	for _, fn := range fns {
		if err := dev.write(_GPIO_BASE, fn, b...); err != nil {
			return err
		}
	}
	return nil
}

// SetGPIOInterrupts enables or disables the change interrupt for pins.
// The INT line is shared; the chip cannot report which pin fired.
func (dev *Dev) SetGPIOInterrupts(pins uint32, enable bool) error {
	fn := _GPIO_INTENCLR
	if enable {
		fn = _GPIO_INTENSET
	}
	return dev.write(_GPIO_BASE, fn, bulkBytes(pins)...)
}

// DigitalReadBulk returns the current raw levels of pins, masked to
// pins. Pins configured with InputPullup read 1 until driven low. Two
// bus transactions are performed: one to address the bulk register and
// one to read it back.
func (dev *Dev) DigitalReadBulk(pins uint32) (uint32, error) {
	if err := dev.write(_GPIO_BASE, _GPIO_BULK); err != nil {
		return 0, err
	}
	time.Sleep(readDelay)
	var r [4]byte
	if err := dev.d.Tx(nil, r[:]); err != nil {
		return 0, wrap(err)
	}
	v := uint32(r[0])<<24 | uint32(r[1])<<16 | uint32(r[2])<<8 | uint32(r[3])
	return v & pins, nil
}

// Halt resets the chip. It implements conn.Resource.
func (dev *Dev) Halt() error {
	return dev.SoftReset()
}

func (dev *Dev) String() string {
	return fmt.Sprintf("seesaw_%02x", dev.d.Addr)
}

// write sends one register write transaction.
func (dev *Dev) write(base, function byte, data ...byte) error {
	w := make([]byte, 0, 2+len(data))
	w = append(w, base, function)
	w = append(w, data...)
	return wrap(dev.d.Tx(w, nil))
}

func bulkBytes(pins uint32) []byte {
	return []byte{byte(pins >> 24), byte(pins >> 16), byte(pins >> 8), byte(pins)}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("seesaw: %w", err)
}
