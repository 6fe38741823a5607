// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package neokey1x4 drives one or more Adafruit NeoKey 1x4 I2C keypads:
// four mechanical keys per module, each with an RGB indicator, behind a
// seesaw companion chip.
//
// The driver turns raw key levels into discrete press and release
// events, keeps the indicators in step with those events through an
// optional caller-supplied color function, and can blink selected keys
// on a fixed duty cycle. Events can be consumed in batch with
// Dev.Read, or one at a time with Dev.Events, which rotates attention
// evenly across modules and supports a timeout.
//
// Up to sixteen modules can share a bus by solder-bridging the address
// selectors, giving addresses 0x30 through 0x3F. The order of addresses
// passed at construction fixes key numbering: the first module owns
// keys 0-3, the second 4-7, and so on.
//
// # Datasheet
//
// https://www.adafruit.com/product/4980
//
// https://learn.adafruit.com/neokey-1x4-qt-i2c
package neokey1x4
