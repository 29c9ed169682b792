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

package romloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/s100emu/s100emu/curated"
)

func TestLoadFromLocalFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "diag.bin")
	if err := os.WriteFile(fn, []byte{0x76, 0x00, 0xff}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rl := NewLoader(fn)
	if err := rl.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rl.Data) != 3 {
		t.Fatalf("Data length = %d, want 3", len(rl.Data))
	}
	if rl.Hash == "" {
		t.Fatalf("Hash was not populated")
	}
}

func TestLoadMissingFile(t *testing.T) {
	rl := NewLoader("/no/such/file")
	if err := rl.Load(); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadHashMismatchIsRejected(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "diag.bin")
	if err := os.WriteFile(fn, []byte{0x01, 0x02}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rl := NewLoader(fn)
	rl.Hash = "0000000000000000000000000000000000000000"
	err := rl.Load()
	if err == nil || !curated.Is(err, ErrHashMismatch) {
		t.Fatalf("expected ErrHashMismatch, got %v", err)
	}
}

func TestShortName(t *testing.T) {
	rl := NewLoader("/roms/diagnostic.bin")
	if got := rl.ShortName(); got != "diagnostic" {
		t.Fatalf("ShortName = %q, want %q", got, "diagnostic")
	}
}
