// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package neokey1x4

import "time"

// Default blink duty cycle, in tenths of a second: lit for 1.4s of
// every 2s. Overridable through Opts since blink responsiveness
// depends on poll rate and module count.
const (
	DefaultBlinkPeriod = 20
	DefaultBlinkOn     = 14
)

const tenth = 100 * time.Millisecond

// blinkPhase reports whether the duty cycle is in its lit phase: the
// first blinkOn tenths of every blinkPeriod tenths.
func (d *Dev) blinkPhase() bool {
	return int64(d.clock()/tenth)%d.blinkPeriod < d.blinkOn
}

// blinkTransition reports whether the phase changed since the last
// check and stores the new phase. Edge-triggered so that indicator
// writes are bounded by duty cycle transitions, not by poll rate. On a
// clockless runtime this is the non-fatal capability probe: it reports
// false rather than failing.
func (d *Dev) blinkTransition() bool {
	if d.clock == nil {
		return false
	}
	phase := d.blinkPhase()
	if phase == d.blinkState {
		return false
	}
	d.blinkState = phase
	return true
}

// blinkColor computes the color for a blinking key. Off is always off.
// The lit phase reuses whatever scheme the caller already defined:
// the released color first, the pressed color next, white as a last
// resort.
func (d *Dev) blinkColor(key int, lit bool) uint32 {
	if !lit {
		return 0
	}
	if d.autoColor != nil {
		for _, pressed := range [2]bool{false, true} {
			if c := d.autoColor(Event{Key: key, Pressed: pressed}) & 0xFFFFFF; c != 0 {
				return c
			}
		}
	}
	return 0xFFFFFF
}

// applyBlink repaints the blinking keys of module mod that are not
// held down. unpressedBits is the raw (pre-inversion) snapshot, where
// a set bit means unpressed, reused so no second bus read is needed.
func (d *Dev) applyBlink(mod int, unpressedBits uint32) error {
	for k := 0; k < KeysPerModule; k++ {
		if unpressedBits&keyBit(k) == 0 {
			continue
		}
		key := d.keys[mod*KeysPerModule+k]
		if !key.blink {
			continue
		}
		if err := d.pixels[mod].SetPixel(k, d.blinkColor(key.num, d.blinkState)); err != nil {
			return err
		}
	}
	return nil
}
