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

// Package config parses the TOML backplane description and turns it into a
// running bus.Bus populated with cards.
//
// A configuration file has one [emulator] table and any number of [[card]]
// tables:
//
//	[emulator]
//	pseudo_bdos_enabled = true
//	start_with_pc_at = 0x0100
//
//	[[card]]
//	type = "rom"
//	slot = 0
//	at = 0x0000
//	load = "roms/boot.bin"
//
//	[[card]]
//	type = "ram"
//	slot = 1
//	at = 0x0100
//	range = 0xff00
//
//	[[card]]
//	type = "serial"
//	slot = 2
//	at = 0x10
package config
