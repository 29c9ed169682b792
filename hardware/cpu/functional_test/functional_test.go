// This file is part of s100emu.
//
// s100emu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// s100emu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with s100emu.  If not, see <https://www.gnu.org/licenses/>.

package functional_test

import (
	"testing"

	"github.com/s100emu/s100emu/hardware/bus"
	"github.com/s100emu/s100emu/hardware/cards/data"
	"github.com/s100emu/s100emu/hardware/cpu"
	"github.com/s100emu/s100emu/test"
)

// diagnostic is a hand-assembled CP/M .COM-style program, origin 0x0100:
//
//	LXI D,msg1      ; "START$"
//	MVI C,9
//	CALL 5          ; BDOS print-string
//	MVI B,5
//	MVI A,'0'
//	loop:
//	MOV E,A
//	MVI C,2
//	CALL 5          ; BDOS print-char
//	INR A
//	DCR B
//	JNZ loop
//	LXI D,msg2      ; "END$"
//	MVI C,9
//	CALL 5
//	HLT
//
// msg1 follows directly after the code at 0x0120, msg2 at 0x0126. The loop
// runs five times, printing '0'..'4' one BDOS call at a time, so a correct
// run prints exactly "START01234END".
var diagnostic = []uint8{
	0x11, 0x20, 0x01, // LXI D,0x0120
	0x0e, 0x09, // MVI C,9
	0xcd, 0x05, 0x00, // CALL 5
	0x06, 0x05, // MVI B,5
	0x3e, 0x30, // MVI A,'0'
	0x5f,             // MOV E,A
	0x0e, 0x02,       // MVI C,2
	0xcd, 0x05, 0x00, // CALL 5
	0x3c,             // INR A
	0x05,             // DCR B
	0xc2, 0x0c, 0x01, // JNZ 0x010c
	0x11, 0x26, 0x01, // LXI D,0x0126
	0x0e, 0x09, // MVI C,9
	0xcd, 0x05, 0x00, // CALL 5
	0x76, // HLT
	'S', 'T', 'A', 'R', 'T', '$',
	'E', 'N', 'D', '$',
}

func TestDiagnosticPrintsExpectedOutput(t *testing.T) {
	ram, err := data.NewRAM("ram", 0x0000, 0x10000, nil)
	test.ExpectedSuccess(t, err)

	b := bus.NewBus()
	err = b.Insert(ram, 0, false)
	test.ExpectedSuccess(t, err)

	var out test.CompareWriter
	c := cpu.New(b, true, &out)

	err = cpu.Load(c, diagnostic, 0x0100, true)
	test.ExpectedSuccess(t, err)

	const maxSteps = 1000
	i := 0
	for ; i < maxSteps; i++ {
		if c.Halted {
			break
		}
		err := c.Step()
		test.ExpectedSuccess(t, err)
	}
	if !c.Halted {
		t.Fatalf("diagnostic did not halt within %d steps", maxSteps)
	}

	if !out.Compare("START01234END") {
		t.Fatalf("unexpected diagnostic output: %q", out.String())
	}
}

// TestDiagnosticHaltsOnRevisitToZero checks that a diagnostic which jumps
// back to address 0 - the traditional CP/M warm-boot entry point - is
// brought down cleanly by the pseudo-BDOS shim's self-patching HLT, rather
// than looping forever.
func TestDiagnosticHaltsOnRevisitToZero(t *testing.T) {
	ram, err := data.NewRAM("ram", 0x0000, 0x10000, nil)
	test.ExpectedSuccess(t, err)

	b := bus.NewBus()
	err = b.Insert(ram, 0, false)
	test.ExpectedSuccess(t, err)

	c := cpu.New(b, true, nil)

	// a diagnostic that "returns to CP/M" by jumping straight to 0x0000.
	err = cpu.Load(c, []uint8{0xc3, 0x00, 0x00}, 0x0000, false)
	test.ExpectedSuccess(t, err)

	const maxSteps = 10
	for i := 0; i < maxSteps; i++ {
		if c.Halted {
			return
		}
		err := c.Step()
		test.ExpectedSuccess(t, err)
	}
	t.Fatalf("did not halt within %d steps", maxSteps)
}
