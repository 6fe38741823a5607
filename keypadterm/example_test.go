// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypadterm_test

import (
	"log"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/gmparis/neokey/keypadterm"
	"github.com/gmparis/neokey/neokey1x4"
)

// Mirror the keypad indicators on the terminal while polling.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer bus.Close()

	term := keypadterm.New(&keypadterm.Opts{Keys: neokey1x4.KeysPerModule})
	defer term.Halt()

	colors := func(e neokey1x4.Event) uint32 {
		if e.Pressed {
			return 0x00FF00
		}
		return 0x000033
	}
	dev, err := neokey1x4.New(bus, &neokey1x4.Opts{
		AutoColor: colors,
		AutoAction: func(e neokey1x4.Event) {
			_ = term.SetIndicator(e.Key, colors(e))
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	_ = term.Fill(colors(neokey1x4.Event{}))
	for {
		if _, err := dev.Read(); err != nil {
			log.Fatal(err)
		}
	}
}
