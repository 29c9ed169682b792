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

// Package functional_test assembles small CP/M-style diagnostic programs by
// hand and runs them to completion through the cpu package's pseudo-BDOS
// shim, the way a real diagnostic .COM file would run under CP/M: the
// program issues BDOS calls to print its results and then halts, and the
// test compares the printed bytes against a known-good string.
//
// This exercises the CPU, the pseudo-BDOS shim and the bus together, rather
// than any one of them in isolation.
package functional_test
