// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package seesaw

import (
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

func getStrip(t *testing.T, brightness float64) (*NeoPixel, *i2ctest.Record) {
	t.Helper()
	bus := initTestBus()
	dev, err := New(bus, testAddr)
	if err != nil {
		t.Fatal(err)
	}
	np, err := NewNeoPixel(dev, 3, 4, GRB, brightness)
	if err != nil {
		t.Fatal(err)
	}
	resetTestBusOps(bus)
	return np, bus
}

func resetTestBusOps(bus *i2ctest.Record) {
	bus.Ops = []i2ctest.IO{}
}

func TestNewNeoPixel(t *testing.T) {
	bus := initTestBus()
	dev, err := New(bus, testAddr)
	if err != nil {
		t.Fatal(err)
	}
	np, err := NewNeoPixel(dev, 3, 4, GRB, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if np.Len() != 4 {
		t.Errorf("Len() = %d, want 4", np.Len())
	}
	if np.Brightness() != 0.2 {
		t.Errorf("Brightness() = %f, want 0.2", np.Brightness())
	}
	checkWrite(t, bus, 1, []byte{0x0E, 0x01, 0x03})       // output pin
	checkWrite(t, bus, 2, []byte{0x0E, 0x02, 0x01})       // 800kHz
	checkWrite(t, bus, 3, []byte{0x0E, 0x03, 0x00, 0x0C}) // 12 byte buffer

	if _, err = NewNeoPixel(dev, 3, 0, GRB, 0.2); err == nil {
		t.Error("expected error for zero pixel count")
	}
	if _, err = NewNeoPixel(dev, 3, 4, GRB, 1.5); err == nil {
		t.Error("expected error for out of range brightness")
	}
}

func TestSetPixel(t *testing.T) {
	np, bus := getStrip(t, 1.0)
	if err := np.SetPixel(2, 0xFF8040); err != nil {
		t.Fatal(err)
	}
	// GRB wire order, pixel 2 at buffer offset 6.
	checkWrite(t, bus, 0, []byte{0x0E, 0x04, 0x00, 0x06, 0x80, 0xFF, 0x40})
	checkWrite(t, bus, 1, []byte{0x0E, 0x05})
	if c := np.ColorAt(2); c != 0xFF8040 {
		t.Errorf("ColorAt(2) = %#x, want 0xff8040", c)
	}
	if c := np.ColorAt(0); c != 0 {
		t.Errorf("ColorAt(0) = %#x, want 0", c)
	}

	if err := np.SetPixel(4, 0); err == nil {
		t.Error("expected error for pixel out of range")
	}
	if err := np.SetPixel(-1, 0); err == nil {
		t.Error("expected error for pixel out of range")
	}
}

func TestBrightnessScaling(t *testing.T) {
	np, bus := getStrip(t, 0.5)
	if err := np.SetPixel(0, 0xFF8040); err != nil {
		t.Fatal(err)
	}
	checkWrite(t, bus, 0, []byte{0x0E, 0x04, 0x00, 0x00, 0x40, 0x7F, 0x20})
	// The retained color stays unscaled.
	if c := np.ColorAt(0); c != 0xFF8040 {
		t.Errorf("ColorAt(0) = %#x, want 0xff8040", c)
	}
}

func TestFill(t *testing.T) {
	np, bus := getStrip(t, 1.0)
	if err := np.Fill(0x010203); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0E, 0x04, 0x00, 0x00}
	for i := 0; i < 4; i++ {
		want = append(want, 0x02, 0x01, 0x03)
	}
	checkWrite(t, bus, 0, want)
	checkWrite(t, bus, 1, []byte{0x0E, 0x05})
}

func TestSetBrightness(t *testing.T) {
	np, bus := getStrip(t, 1.0)
	if err := np.Fill(0x0000FF); err != nil {
		t.Fatal(err)
	}
	resetTestBusOps(bus)
	// Changing the brightness must re-emit the retained colors.
	if err := np.SetBrightness(0.5); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x0E, 0x04, 0x00, 0x00}
	for i := 0; i < 4; i++ {
		want = append(want, 0x00, 0x00, 0x7F)
	}
	checkWrite(t, bus, 0, want)
	checkWrite(t, bus, 1, []byte{0x0E, 0x05})
	if np.Brightness() != 0.5 {
		t.Errorf("Brightness() = %f, want 0.5", np.Brightness())
	}

	if err := np.SetBrightness(-0.1); err == nil {
		t.Error("expected error for out of range brightness")
	}
}
