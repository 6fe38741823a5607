// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package neokey1x4

// Key is one key and indicator pairing. Instances are created by New,
// one per physical key, and retrieved with Dev.Key. The identity
// (global key number) is fixed; only the blink flag is mutable.
type Key struct {
	dev   *Dev
	num   int
	blink bool
}

// Num returns the global key number.
func (k *Key) Num() int {
	return k.num
}

// Pressed reads the key's current level from the bus. It bypasses the
// event tracking entirely: no callbacks run and the snapshot used by
// Read is left untouched. Costs one bus read.
func (k *Key) Pressed() (bool, error) {
	raw, err := k.dev.mods[k.num/KeysPerModule].DigitalReadBulk(keyMask)
	if err != nil {
		return false, err
	}
	bits := raw ^ keyMask // invert
	return bits&keyBit(k.num%KeysPerModule) != 0, nil
}

// Color returns the last color written to the key's indicator.
func (k *Key) Color() uint32 {
	return k.dev.pixels[k.num/KeysPerModule].ColorAt(k.num % KeysPerModule)
}

// SetColor writes the 24-bit RGB color to the key's indicator.
func (k *Key) SetColor(color uint32) error {
	return k.dev.setKeyColor(k.num, color)
}

// Blink reports whether the key participates in the blink cycle.
func (k *Key) Blink() bool {
	return k.blink
}

// SetBlink turns blinking on or off for this key. Enabling blink on a
// device configured without a monotonic clock fails with
// ErrClockUnavailable.
func (k *Key) SetBlink(blink bool) error {
	if blink && k.dev.clock == nil {
		return ErrClockUnavailable
	}
	k.blink = blink
	return nil
}
