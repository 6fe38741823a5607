// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package keypadterm emulates the RGB indicators of a keypad on the
// terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your NeoKey 1x4 to come by mail.
package keypadterm

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

var errKeyRange = errors.New("keypadterm: key out of range")

// Opts represents the options available for this emulator.
type Opts struct {
	// Keys is the number of indicators to render.
	Keys int
	// Palette overrides the ANSI palette used to approximate colors.
	Palette *ansi256.Palette
	// Writer overrides the output stream. Defaults to a colorable
	// stdout.
	Writer io.Writer

	_ struct{}
}

// Dev renders a row of key indicators at the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	colors []uint32
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		palette: *p,
		colors:  make([]uint32, opts.Keys),
	}
}

func (d *Dev) String() string {
	return "KeypadTerm"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the display is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// SetIndicator sets one key's 24-bit RGB color and redraws the row.
func (d *Dev) SetIndicator(key int, rgb uint32) error {
	if key < 0 || key >= len(d.colors) {
		return errKeyRange
	}
	d.colors[key] = rgb & 0xFFFFFF
	return d.refresh()
}

// Fill sets every key to the 24-bit RGB color and redraws the row.
func (d *Dev) Fill(rgb uint32) error {
	for i := range d.colors {
		d.colors[i] = rgb & 0xFFFFFF
	}
	return d.refresh()
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for _, c := range d.colors {
		n := color.NRGBA{byte(c >> 16), byte(c >> 8), byte(c), 255}
		_, _ = io.WriteString(&d.buf, d.palette.Block(n))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
