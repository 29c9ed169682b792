package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/s100emu/s100emu/config"
	"github.com/s100emu/s100emu/curated"
	"github.com/s100emu/s100emu/hardware/cards/serial"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	fn := filepath.Join(dir, "backplane.toml")
	if err := os.WriteFile(fn, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return fn
}

func TestLoadAndBuildRAMAndROM(t *testing.T) {
	romFile := filepath.Join(t.TempDir(), "boot.bin")
	if err := os.WriteFile(romFile, []byte{0xc3, 0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	toml := `
[emulator]
pseudo_bdos_enabled = true
start_with_pc_at = 256

[[card]]
type = "rom"
slot = 0
at = 0
load = "` + romFile + `"

[[card]]
type = "ram"
slot = 1
at = 256
range = 1024
`
	fn := writeTemp(t, toml)

	cfg, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Emulator.PseudoBdosEnabled {
		t.Fatal("expected pseudo_bdos_enabled to be true")
	}
	if cfg.Emulator.StartWithPCAt != 256 {
		t.Fatalf("StartWithPCAt = %d, want 256", cfg.Emulator.StartWithPCAt)
	}

	b, err := config.Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := b.Read(0, false); got != 0xc3 {
		t.Fatalf("Read(0) = %#02x, want 0xc3 (from loaded ROM)", got)
	}
	b.Write(256, 0x42, false)
	if got := b.Read(256, false); got != 0x42 {
		t.Fatalf("Read(256) = %#02x, want 0x42 (RAM should accept writes)", got)
	}
}

func TestBuildSerialCardUsesEndpointFactory(t *testing.T) {
	toml := `
[[card]]
type = "serial"
slot = 2
at = 16
`
	fn := writeTemp(t, toml)

	cfg, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lb := serial.NewLoopback("test-endpoint")
	var requestedSlot int
	b, err := config.Build(cfg, func(slot int, cc config.Card) (serial.Endpoint, error) {
		requestedSlot = slot
		return lb, nil
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if requestedSlot != 2 {
		t.Fatalf("newEndpoint called with slot %d, want 2", requestedSlot)
	}

	lb.Feed(0x41)
	// status register at the low byte of "at"
	status := b.Read(16, true)
	if status&0x01 == 0 {
		t.Fatal("expected RDRF set after feeding a byte to the loopback endpoint")
	}
}

func TestBuildRejectsUnknownCardType(t *testing.T) {
	toml := `
[[card]]
type = "bogus"
slot = 0
at = 0
`
	fn := writeTemp(t, toml)
	cfg, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = config.Build(cfg, nil)
	if err == nil || !curated.Is(err, config.ErrUnknownCardType) {
		t.Fatalf("expected ErrUnknownCardType, got %v", err)
	}
}

func TestBuildRejectsRAMWithoutRangeOrLoad(t *testing.T) {
	toml := `
[[card]]
type = "ram"
slot = 0
at = 0
`
	fn := writeTemp(t, toml)
	cfg, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = config.Build(cfg, nil)
	if err == nil || !curated.Is(err, config.ErrMissingRangeLoad) {
		t.Fatalf("expected ErrMissingRangeLoad, got %v", err)
	}
}

func TestBuildRejectsInvalidSlot(t *testing.T) {
	toml := `
[[card]]
type = "ram"
slot = 99
at = 0
range = 16
`
	fn := writeTemp(t, toml)
	cfg, err := config.Load(fn)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, err = config.Build(cfg, nil)
	if err == nil || !curated.Is(err, config.ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil || !curated.Is(err, config.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
}
