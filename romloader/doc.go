// This file is part of s100emu.
//
// s100emu is free software: you can redistribute it and/or modify
// it under the terms of the gnu general public license as published by
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

// Package romloader fetches the byte image a data card is initialised with.
//
// When a card is ready to be loaded, the Load() function should be used. It
// handles loading from a local file or from an HTTP(S) URL, and records a
// sha1 hash of what was loaded so a config or CLI front-end can log or
// verify what was actually installed on a card.
//
// The simplest instance of the Loader type:
//
//	rl := romloader.Loader{Filename: "roms/diag.bin"}
//	err := rl.Load()
package romloader
