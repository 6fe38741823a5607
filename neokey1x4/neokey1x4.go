// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package neokey1x4

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"

	"github.com/gmparis/neokey/seesaw"
)

const (
	// BaseAddress is the factory I2C address of a NeoKey 1x4 module.
	BaseAddress uint16 = 0x30
	// LastAddress is the highest address reachable with all four
	// address bridges soldered.
	LastAddress uint16 = BaseAddress | 0x0F

	// KeysPerModule is the number of keys on one module.
	KeysPerModule = 4
)

const (
	// The keys sit on seesaw GPIO 4..7; the NeoPixels hang off GPIO 3.
	keyShift           = 4
	keyMask     uint32 = 0xF0
	neoPixelPin byte   = 3
)

var (
	// ErrClockUnavailable is returned when blink or a timeout is
	// requested but the device was configured without a monotonic
	// clock (Opts.NoClock).
	ErrClockUnavailable = errors.New("neokey1x4: monotonic clock unavailable")
	// ErrNegativeTimeout is returned by Dev.Events for a negative
	// timeout value.
	ErrNegativeTimeout = errors.New("neokey1x4: negative timeout")
	// ErrInvalidAddress is returned for an address outside
	// [BaseAddress, LastAddress].
	ErrInvalidAddress = errors.New("neokey1x4: invalid i2c address")
	// ErrDuplicateAddress is returned when the same module address is
	// listed twice.
	ErrDuplicateAddress = errors.New("neokey1x4: duplicate i2c address")
	// ErrKeyRange is returned for a key number this device does not
	// have.
	ErrKeyRange = errors.New("neokey1x4: key number out of range")
)

// Event is one key press or release edge detected by Read or Events.
type Event struct {
	// Key is the global key number: 0-3 on the first module, 4-7 on
	// the second, and so on.
	Key int
	// Pressed is true for a press edge, false for a release edge.
	Pressed bool
}

func (e Event) String() string {
	s := "released"
	if e.Pressed {
		s = "pressed"
	}
	return fmt.Sprintf("key %d %s", e.Key, s)
}

// ColorFunc computes a 24-bit RGB indicator color for an event. It is
// called once per detected edge and must be side-effect free.
type ColorFunc func(Event) uint32

// ActionFunc is called once per detected edge. Its use is up to the
// caller: key clicks, logging, haptics.
type ActionFunc func(Event)

// Opts holds the construction options.
type Opts struct {
	// Addrs lists the module addresses in key numbering order. If
	// empty, a single module at BaseAddress is assumed.
	Addrs []uint16
	// Brightness is the indicator intensity shared by all modules,
	// within (0, 1]. Zero or negative selects DefaultBrightness.
	Brightness float64
	// AutoColor, when set, computes indicator colors for every
	// detected edge. Installing it repaints every key to its released
	// color.
	AutoColor ColorFunc
	// AutoAction, when set, runs for every detected edge.
	AutoAction ActionFunc
	// Blink starts every key blinking while unpressed. Requires a
	// monotonic clock.
	Blink bool
	// BlinkPeriod and BlinkOn set the blink duty cycle in tenths of a
	// second: the indicator is lit for the first BlinkOn tenths of
	// every BlinkPeriod tenths. Zero values select DefaultBlinkPeriod
	// and DefaultBlinkOn.
	BlinkPeriod int
	BlinkOn     int
	// Clock overrides the monotonic time source used for blink and
	// timeout scheduling. Nil selects the runtime clock.
	Clock func() time.Duration
	// NoClock declares that the runtime cannot supply monotonic time.
	// Blink and timeout features then fail fast with
	// ErrClockUnavailable at the call that requests them.
	NoClock bool
}

// DefaultBrightness is used when Opts.Brightness is unset.
const DefaultBrightness = 0.2

// Dev is a handle to one or more NeoKey 1x4 modules sharing a bus.
//
// Dev is not safe for concurrent use: the edge detection compares each
// scan against the previous one, so all polling of a given Dev must
// come from a single goroutine or be serialized by the caller.
type Dev struct {
	mods   []*seesaw.Dev
	pixels []*seesaw.NeoPixel
	keys   []*Key
	// Previous inverted-and-masked snapshot per module, the "last
	// known pressed bits" operand of the next edge computation.
	prev []uint32

	autoColor  ColorFunc
	autoAction ActionFunc

	// clock is nil on a runtime without monotonic time; every blink
	// and timeout entry point checks it.
	clock       func() time.Duration
	blinkState  bool
	blinkPeriod int64
	blinkOn     int64
}

// New initializes the modules listed in opts and returns a Dev.
//
// Each module has its key lines configured as pulled-up inputs with
// change interrupts enabled, and its indicators turned off.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	var o Opts
	if opts != nil {
		o = *opts
	}
	if len(o.Addrs) == 0 {
		o.Addrs = []uint16{BaseAddress}
	}
	seen := make(map[uint16]struct{}, len(o.Addrs))
	for _, addr := range o.Addrs {
		if addr < BaseAddress || addr > LastAddress {
			return nil, fmt.Errorf("%w: %#x", ErrInvalidAddress, addr)
		}
		if _, ok := seen[addr]; ok {
			return nil, fmt.Errorf("%w: %#x", ErrDuplicateAddress, addr)
		}
		seen[addr] = struct{}{}
	}
	if o.Brightness <= 0 {
		o.Brightness = DefaultBrightness
	}
	if o.BlinkPeriod <= 0 {
		o.BlinkPeriod = DefaultBlinkPeriod
	}
	if o.BlinkOn <= 0 {
		o.BlinkOn = DefaultBlinkOn
	}
	var clk func() time.Duration
	if !o.NoClock {
		clk = o.Clock
		if clk == nil {
			clk = runtimeClock()
		}
	}
	if o.Blink && clk == nil {
		return nil, ErrClockUnavailable
	}
	d := &Dev{
		clock:       clk,
		blinkState:  true, // lights on
		blinkPeriod: int64(o.BlinkPeriod),
		blinkOn:     int64(o.BlinkOn),
	}
	for _, addr := range o.Addrs {
		ss, err := seesaw.New(bus, addr)
		if err != nil {
			return nil, err
		}
		if err := ss.PinModeBulk(keyMask, seesaw.InputPullup); err != nil {
			return nil, err
		}
		if err := ss.SetGPIOInterrupts(keyMask, true); err != nil {
			return nil, err
		}
		np, err := seesaw.NewNeoPixel(ss, neoPixelPin, KeysPerModule, seesaw.GRB, o.Brightness)
		if err != nil {
			return nil, err
		}
		if err := np.Fill(0); err != nil {
			return nil, err
		}
		d.mods = append(d.mods, ss)
		d.pixels = append(d.pixels, np)
		d.prev = append(d.prev, 0)
		for k := 0; k < KeysPerModule; k++ {
			d.keys = append(d.keys, &Key{dev: d, num: len(d.keys), blink: o.Blink})
		}
	}
	d.autoAction = o.AutoAction
	if err := d.SetAutoColor(o.AutoColor); err != nil {
		return nil, err
	}
	return d, nil
}

func runtimeClock() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Read scans every module once, in construction order, and returns the
// press and release edges since the previous scan. For each edge, the
// AutoColor function (if set) is evaluated and the indicator written,
// then the AutoAction function (if set) is run, before the next module
// is scanned. Events within a module come out in key order.
//
// The first Read after construction compares against an all-released
// snapshot, so a key held down at startup produces a press event.
//
// If a blink phase transition falls on this scan, every unpressed
// blinking key is repainted as well.
func (d *Dev) Read() ([]Event, error) {
	blinkTick := d.blinkTransition()
	var events []Event
	for mod := range d.mods {
		evs, err := d.readModule(mod, blinkTick)
		events = append(events, evs...)
		if err != nil {
			return events, err
		}
	}
	return events, nil
}

// readModule polls module mod: one bulk read, edge classification
// against the previous snapshot, color and action side effects, and
// blink application when blinkTick is set.
func (d *Dev) readModule(mod int, blinkTick bool) ([]Event, error) {
	raw, err := d.mods[mod].DigitalReadBulk(keyMask)
	if err != nil {
		return nil, err
	}
	// The key lines are pulled up, so a pressed key reads 0.
	cur := (raw ^ keyMask) & keyMask
	prev := d.prev[mod]
	d.prev[mod] = cur
	justPressed := (cur ^ prev) & cur
	justReleased := (cur ^ prev) &^ cur
	var events []Event
	for k := 0; k < KeysPerModule; k++ {
		bit := keyBit(k)
		pressed := justPressed&bit != 0
		if !pressed && justReleased&bit == 0 {
			continue
		}
		ev := Event{Key: mod*KeysPerModule + k, Pressed: pressed}
		events = append(events, ev)
		if d.autoColor != nil {
			if err := d.setKeyColor(ev.Key, d.autoColor(ev)); err != nil {
				return events, err
			}
		}
		if d.autoAction != nil {
			d.autoAction(ev)
		}
	}
	if blinkTick {
		if err := d.applyBlink(mod, raw); err != nil {
			return events, err
		}
	}
	return events, nil
}

// Fill sets every key indicator to the 24-bit RGB color.
func (d *Dev) Fill(color uint32) error {
	for _, np := range d.pixels {
		if err := np.Fill(color); err != nil {
			return err
		}
	}
	return nil
}

// Brightness returns the indicator brightness shared by all modules.
func (d *Dev) Brightness() float64 {
	return d.pixels[0].Brightness()
}

// SetBrightness sets the indicator brightness on every module,
// re-emitting the current colors.
func (d *Dev) SetBrightness(brightness float64) error {
	for _, np := range d.pixels {
		if err := np.SetBrightness(brightness); err != nil {
			return err
		}
	}
	return nil
}

// AutoColor returns the installed color function, or nil.
func (d *Dev) AutoColor() ColorFunc {
	return d.autoColor
}

// SetAutoColor installs (or with nil, removes) the color function.
// When fn is not nil, every key is immediately repainted to its
// released color, so indicator state never lags the new scheme.
func (d *Dev) SetAutoColor(fn ColorFunc) error {
	if fn != nil {
		for _, key := range d.keys {
			if err := d.setKeyColor(key.num, fn(Event{Key: key.num})); err != nil {
				return err
			}
		}
	}
	d.autoColor = fn
	return nil
}

// AutoAction returns the installed action function, or nil.
func (d *Dev) AutoAction() ActionFunc {
	return d.autoAction
}

// SetAutoAction installs (or with nil, removes) the action function.
func (d *Dev) SetAutoAction(fn ActionFunc) {
	d.autoAction = fn
}

// Len returns the number of keys across all modules.
func (d *Dev) Len() int {
	return len(d.keys)
}

// Key returns the handle for global key number num.
func (d *Dev) Key(num int) (*Key, error) {
	if num < 0 || num >= len(d.keys) {
		return nil, fmt.Errorf("%w: %d", ErrKeyRange, num)
	}
	return d.keys[num], nil
}

// Halt turns every indicator off. It implements conn.Resource.
func (d *Dev) Halt() error {
	return d.Fill(0)
}

func (d *Dev) String() string {
	return fmt.Sprintf("NeoKey1x4{%d modules}", len(d.mods))
}

func (d *Dev) setKeyColor(key int, color uint32) error {
	return d.pixels[key/KeysPerModule].SetPixel(key%KeysPerModule, color)
}

// keyBit returns the seesaw GPIO bit of in-module key k.
func keyBit(k int) uint32 {
	return 1 << (keyShift + k)
}

var _ conn.Resource = &Dev{}
