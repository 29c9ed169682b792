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

// Package serial models a Motorola 6850 ACIA bridging the bus to an
// external byte-stream endpoint (normally a pseudo-terminal). The card
// decodes only the low 8 bits of the 16-bit address, so it mirrors itself
// 256 times across the port space - this is deliberate, matching 8080
// IN/OUT semantics where the port number is duplicated into both halves
// of the address bus.
package serial
