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

// Package ptyendpoint implements the serial.Endpoint contract with a real
// operating system pseudo-terminal, so a serial card can be attached to a
// terminal emulator or a program like minicom running against the slave
// side of the pty.
//
//	ep := ptyendpoint.New()
//	if err := ep.Open(); err != nil {
//		...
//	}
//	fmt.Println("connect a terminal to", ep.Name())
//	card := serial.NewCard("acia0", 0x10, ep)
package ptyendpoint
