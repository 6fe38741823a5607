// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package seesaw

import (
	"errors"
)

// NeoPixel module functions.
const (
	_NEOPIXEL_PIN        byte = 0x01
	_NEOPIXEL_SPEED      byte = 0x02
	_NEOPIXEL_BUF_LENGTH byte = 0x03
	_NEOPIXEL_BUF        byte = 0x04
	_NEOPIXEL_SHOW       byte = 0x05
)

var (
	errPixelCount      = errors.New("pixel count must be positive")
	errPixelRange      = errors.New("pixel index out of range")
	errBrightnessRange = errors.New("brightness must be within [0, 1]")
)

// PixelOrder is the channel layout of the attached strip.
type PixelOrder int

const (
	// GRB is what most WS2812/SK6812 strips use, the NeoKey 1x4 included.
	GRB PixelOrder = iota
	RGB
)

// NeoPixel drives a NeoPixel strip wired to a seesaw output pin.
//
// Colors are 24-bit RGB integers. The last written colors are retained
// so that brightness changes can re-emit the whole strip without the
// caller keeping its own copy. Every write is pushed to the strip
// immediately.
type NeoPixel struct {
	dev        *Dev
	n          int
	order      PixelOrder
	brightness float64
	colors     []uint32
}

// NewNeoPixel configures the strip output on pin with n pixels at the
// given brightness and returns it. The strip is clocked at 800kHz.
func NewNeoPixel(dev *Dev, pin byte, n int, order PixelOrder, brightness float64) (*NeoPixel, error) {
	if n <= 0 {
		return nil, wrap(errPixelCount)
	}
	if brightness < 0 || brightness > 1 {
		return nil, wrap(errBrightnessRange)
	}
	np := &NeoPixel{
		dev:        dev,
		n:          n,
		order:      order,
		brightness: brightness,
		colors:     make([]uint32, n),
	}
	if err := dev.write(_NEOPIXEL_BASE, _NEOPIXEL_PIN, pin); err != nil {
		return nil, err
	}
	if err := dev.write(_NEOPIXEL_BASE, _NEOPIXEL_SPEED, 1); err != nil {
		return nil, err
	}
	bufLen := uint16(3 * n)
	if err := dev.write(_NEOPIXEL_BASE, _NEOPIXEL_BUF_LENGTH, byte(bufLen>>8), byte(bufLen)); err != nil {
		return nil, err
	}
	return np, nil
}

// Len returns the number of pixels on the strip.
func (np *NeoPixel) Len() int {
	return np.n
}

// SetPixel writes the 24-bit RGB color to pixel i and shows it.
func (np *NeoPixel) SetPixel(i int, color uint32) error {
	if i < 0 || i >= np.n {
		return wrap(errPixelRange)
	}
	np.colors[i] = color & 0xFFFFFF
	return np.writePixels(i, 1)
}

// ColorAt returns the last color written to pixel i, before brightness
// scaling. No bus transaction is performed.
func (np *NeoPixel) ColorAt(i int) uint32 {
	if i < 0 || i >= np.n {
		return 0
	}
	return np.colors[i]
}

// Fill sets every pixel to the 24-bit RGB color and shows the strip.
func (np *NeoPixel) Fill(color uint32) error {
	for i := range np.colors {
		np.colors[i] = color & 0xFFFFFF
	}
	return np.writePixels(0, np.n)
}

// Brightness returns the strip brightness.
func (np *NeoPixel) Brightness() float64 {
	return np.brightness
}

// SetBrightness rescales the strip to brightness, re-emitting the
// retained colors.
func (np *NeoPixel) SetBrightness(brightness float64) error {
	if brightness < 0 || brightness > 1 {
		return wrap(errBrightnessRange)
	}
	np.brightness = brightness
	return np.writePixels(0, np.n)
}

// writePixels emits count pixels starting at pixel i, then shows.
func (np *NeoPixel) writePixels(i, count int) error {
	offset := uint16(3 * i)
	data := make([]byte, 0, 2+3*count)
	data = append(data, byte(offset>>8), byte(offset))
	for p := i; p < i+count; p++ {
		c := np.channels(np.colors[p])
		data = append(data, c[:]...)
	}
	if err := np.dev.write(_NEOPIXEL_BASE, _NEOPIXEL_BUF, data...); err != nil {
		return err
	}
	return np.dev.write(_NEOPIXEL_BASE, _NEOPIXEL_SHOW)
}

// channels scales color by the strip brightness and lays the bytes out
// in wire order.
func (np *NeoPixel) channels(color uint32) [3]byte {
	r := byte(float64((color>>16)&0xFF) * np.brightness)
	g := byte(float64((color>>8)&0xFF) * np.brightness)
	b := byte(float64(color&0xFF) * np.brightness)
	if np.order == GRB {
		return [3]byte{g, r, b}
	}
	return [3]byte{r, g, b}
}
