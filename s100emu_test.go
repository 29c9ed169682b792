package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/s100emu/s100emu/test"
)

func TestRunHaltsImmediatelyWithBareHLT(t *testing.T) {
	dir := t.TempDir()
	romFile := filepath.Join(dir, "hlt.bin")
	if err := os.WriteFile(romFile, []byte{0x76}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out test.CompareWriter
	code := run([]string{romFile, "0"}, &out)
	if code != exitOK {
		t.Fatalf("run() = %d, want exitOK", code)
	}
}

func TestRunVersionFlagPrintsAndExits(t *testing.T) {
	var out test.CompareWriter
	code := run([]string{"-version"}, &out)
	if code != exitOK {
		t.Fatalf("run() = %d, want exitOK", code)
	}
	if out.String() == "" {
		t.Fatalf("expected -version to write output")
	}
}

func TestRunRejectsOddArgumentPairs(t *testing.T) {
	dir := t.TempDir()
	romFile := filepath.Join(dir, "hlt.bin")
	if err := os.WriteFile(romFile, []byte{0x76}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out test.CompareWriter
	code := run([]string{romFile}, &out)
	if code != exitArgumentError {
		t.Fatalf("run() = %d, want exitArgumentError", code)
	}
}

func TestRunRejectsMissingRomFile(t *testing.T) {
	var out test.CompareWriter
	code := run([]string{filepath.Join(t.TempDir(), "missing.bin"), "0"}, &out)
	if code != exitArgumentError {
		t.Fatalf("run() = %d, want exitArgumentError", code)
	}
}

func TestRunRejectsBadLoadAddress(t *testing.T) {
	dir := t.TempDir()
	romFile := filepath.Join(dir, "hlt.bin")
	if err := os.WriteFile(romFile, []byte{0x76}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out test.CompareWriter
	code := run([]string{romFile, "not-a-number"}, &out)
	if code != exitArgumentError {
		t.Fatalf("run() = %d, want exitArgumentError", code)
	}
}

func TestRunWritesPrintSinkToFile(t *testing.T) {
	dir := t.TempDir()
	romFile := filepath.Join(dir, "print.bin")

	// LXI D,msg / MVI C,9 / CALL 5 / HLT, with pseudo-BDOS enabled via a
	// config file pointing PC at the program.
	program := []uint8{
		0x11, 0x09, 0x01, // LXI D,0x0109
		0x0e, 0x09, // MVI C,9
		0xcd, 0x05, 0x00, // CALL 5
		0x76,           // HLT
		'h', 'i', '$', // msg at 0x0109
	}
	if err := os.WriteFile(romFile, program, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	sinkFile := filepath.Join(dir, "sink.txt")
	cfgFile := filepath.Join(dir, "backplane.toml")
	cfg := `
[emulator]
pseudo_bdos_enabled = true
start_with_pc_at = 256

[[card]]
type = "ram"
slot = 0
at = 0
range = 65536
`
	if err := os.WriteFile(cfgFile, []byte(cfg), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out test.CompareWriter
	code := run([]string{"-config", cfgFile, "-print-sink", sinkFile, romFile, "256"}, &out)
	if code != exitOK {
		t.Fatalf("run() = %d, want exitOK", code)
	}

	got, err := os.ReadFile(sinkFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hi" {
		t.Fatalf("print sink contents = %q, want %q", got, "hi")
	}
}
