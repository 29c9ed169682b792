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

// Package cpu interprets the Intel 8080 instruction set against a
// bus.Bus. Opcodes are decoded by bit-field rather than as a 256-entry
// switch: the top two bits select a major group, and the remaining bits
// select register, register-pair, ALU operation or condition code within
// that group.
package cpu
