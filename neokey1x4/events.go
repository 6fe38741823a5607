// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package neokey1x4

import "time"

// Events is a resumable single-event source over the device's modules.
//
// Where Read scans all modules and hands back everything at once,
// always giving module 0 the best latency, an Events source reads one
// module per step and picks up exactly where it left off, so latency
// is shared evenly across modules. The sequence is infinite; it only
// ends when the consumer stops calling Next. Abandoning it requires no
// cleanup, and calling Dev.Events again starts a fresh rotation.
//
// An Events source borrows the Dev's polling state; do not interleave
// Next with Read or with another Events source on the same Dev.
type Events struct {
	d       *Dev
	cursor  int
	pending []Event
	// blinkTick is latched at the start of each sweep so blink stays
	// in step across modules.
	blinkTick bool
	timeout   time.Duration // 0 means wait for events forever
	last      time.Duration // clock value of the last produced value
}

// Events starts a fair single-event poll and returns its source.
//
// If timeoutTenths is positive, Next yields a timeout sentinel
// whenever that many tenths of a second elapse without a produced
// value; this requires a monotonic clock and fails with
// ErrClockUnavailable without one. A negative value fails with
// ErrNegativeTimeout. Zero means Next blocks (polling the bus) until
// a key event arrives.
func (d *Dev) Events(timeoutTenths int) (*Events, error) {
	if timeoutTenths < 0 {
		return nil, ErrNegativeTimeout
	}
	ev := &Events{d: d}
	if timeoutTenths > 0 {
		if d.clock == nil {
			return nil, ErrClockUnavailable
		}
		ev.timeout = time.Duration(timeoutTenths) * tenth
		ev.last = d.clock()
	}
	return ev, nil
}

// Next produces the next value: a key event (ok true), a timeout
// sentinel (ok false, nil error), or a bus error. Color and action
// side effects for an event have already been applied when Next
// returns it.
//
// Each call performs at most one module scan before handing out a
// value or moving on, so no module is revisited before every other
// module has had a turn.
func (ev *Events) Next() (Event, bool, error) {
	for {
		if len(ev.pending) > 0 {
			e := ev.pending[0]
			ev.pending = ev.pending[1:]
			return e, true, nil
		}
		if ev.cursor == 0 {
			ev.blinkTick = ev.d.blinkTransition()
		}
		var now time.Duration
		if ev.timeout > 0 {
			now = ev.d.clock()
		}
		mod := ev.cursor
		ev.cursor = (ev.cursor + 1) % len(ev.d.mods)
		events, err := ev.d.readModule(mod, ev.blinkTick)
		if err != nil {
			return Event{}, false, err
		}
		if len(events) > 0 {
			ev.last = now
			ev.pending = events
			continue
		}
		if ev.timeout > 0 && now-ev.last >= ev.timeout {
			ev.last = now
			return Event{}, false, nil
		}
	}
}
