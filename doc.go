// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package neokey is a container for the NeoKey 1x4 I2C keypad driver and
// its supporting packages.
//
// The driver itself lives in neokey1x4. The seesaw package implements the
// subset of the Adafruit seesaw protocol the keypad is built on, and
// keypadterm emulates the key indicators on a terminal for development
// without hardware.
package neokey
