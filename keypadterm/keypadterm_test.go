// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package keypadterm

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetIndicator(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(&Opts{Keys: 4, Writer: buf})
	if err := d.SetIndicator(1, 0xFF0000); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "\r\033[0m") {
		t.Errorf("output %q must rewrite the row from the start", out)
	}
	if !strings.HasSuffix(out, "\033[0m ") {
		t.Errorf("output %q must reset the terminal attributes", out)
	}

	buf.Reset()
	if err := d.SetIndicator(1, 0x00FF00); err != nil {
		t.Fatal(err)
	}
	if buf.String() == out {
		t.Error("different colors must render differently")
	}

	if err := d.SetIndicator(4, 0); err == nil {
		t.Error("expected error for key out of range")
	}
	if err := d.SetIndicator(-1, 0); err == nil {
		t.Error("expected error for key out of range")
	}
}

func TestFill(t *testing.T) {
	one := &bytes.Buffer{}
	d := New(&Opts{Keys: 4, Writer: one})
	for k := 0; k < 4; k++ {
		one.Reset()
		if err := d.SetIndicator(k, 0x808080); err != nil {
			t.Fatal(err)
		}
	}

	all := &bytes.Buffer{}
	d = New(&Opts{Keys: 4, Writer: all})
	if err := d.Fill(0x808080); err != nil {
		t.Fatal(err)
	}
	// Filling must render the same row as setting every key.
	if one.String() != all.String() {
		t.Errorf("Fill rendered %q, want %q", all.String(), one.String())
	}
}

func TestHalt(t *testing.T) {
	buf := &bytes.Buffer{}
	d := New(&Opts{Keys: 4, Writer: buf})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n\033[0m" {
		t.Errorf("Halt() wrote %q", got)
	}
	if d.String() != "KeypadTerm" {
		t.Errorf("String() = %q", d.String())
	}
}
