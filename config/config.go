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

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/s100emu/s100emu/curated"
	"github.com/s100emu/s100emu/hardware/bus"
	"github.com/s100emu/s100emu/hardware/cards/data"
	"github.com/s100emu/s100emu/hardware/cards/serial"
	"github.com/s100emu/s100emu/romloader"
)

// Error patterns raised while parsing or building a configuration.
const (
	ErrUnreadable       = "config: %s: %v"
	ErrUnknownCardType  = "config: card %d: unknown type %q"
	ErrMissingRangeLoad = "config: card %d: ram/rom card needs range or load"
	ErrInvalidSlot      = "config: card %d: slot %d out of range"
)

// Emulator holds the top level [emulator] table.
type Emulator struct {
	PseudoBdosEnabled bool   `toml:"pseudo_bdos_enabled"`
	StartWithPCAt     uint16 `toml:"start_with_pc_at"`
}

// Card holds one [[card]] table. Range and Load are pointers so a card
// that supplies neither can be distinguished from one that supplies a
// zero value for either.
type Card struct {
	Type       string  `toml:"type"`
	At         uint16  `toml:"at"`
	Slot       int     `toml:"slot"`
	Range      *int    `toml:"range"`
	Load       *string `toml:"load"`
	LetCollide bool    `toml:"let_collide"`
}

// Config is the decoded form of a backplane TOML file.
type Config struct {
	Emulator Emulator `toml:"emulator"`
	Card     []Card   `toml:"card"`
}

// Load reads and decodes filename. It does not validate card semantics;
// that happens in Build, where the errors can be attributed to the card
// that failed.
func Load(filename string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(filename, &cfg); err != nil {
		return nil, curated.Errorf(ErrUnreadable, filename, err)
	}
	return &cfg, nil
}

// NewEndpoint constructs the Endpoint a serial card should bridge to,
// keyed by the card's slot. Build calls this once per "serial" card; a
// nil return leaves the card endpoint-less (status/control still work,
// Poll always reports nothing pending).
type NewEndpoint func(slot int, card Card) (serial.Endpoint, error)

// Build constructs a bus.Bus from cfg, inserting one card per [[card]]
// table. newEndpoint may be nil, in which case every serial card is left
// without an Endpoint.
func Build(cfg *Config, newEndpoint NewEndpoint) (*bus.Bus, error) {
	b := bus.NewBus()

	for i, cc := range cfg.Card {
		if cc.Slot < 0 || cc.Slot >= bus.NSlots {
			return nil, curated.Errorf(ErrInvalidSlot, i, cc.Slot)
		}

		card, err := buildCard(i, cc, newEndpoint)
		if err != nil {
			return nil, err
		}

		if err := b.Insert(card, cc.Slot, cc.LetCollide); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func buildCard(idx int, cc Card, newEndpoint NewEndpoint) (bus.Card, error) {
	switch cc.Type {
	case "ram", "rom":
		return buildDataCard(idx, cc)
	case "serial":
		var ep serial.Endpoint
		if newEndpoint != nil {
			var err error
			ep, err = newEndpoint(cc.Slot, cc)
			if err != nil {
				return nil, err
			}
		}
		return serial.NewCard(cardName(cc.Slot, cc.Type), cc.At, ep), nil
	default:
		return nil, curated.Errorf(ErrUnknownCardType, idx, cc.Type)
	}
}

func buildDataCard(idx int, cc Card) (bus.Card, error) {
	var init []uint8
	capacity := 0

	if cc.Load != nil {
		rl := romloader.NewLoader(*cc.Load)
		if err := rl.Load(); err != nil {
			return nil, err
		}
		init = rl.Data
		capacity = len(init)
	}
	if cc.Range != nil && *cc.Range > capacity {
		capacity = *cc.Range
	}
	if capacity == 0 {
		return nil, curated.Errorf(ErrMissingRangeLoad, idx)
	}

	name := cardName(cc.Slot, cc.Type)
	if cc.Type == "rom" {
		return data.NewROM(name, cc.At, capacity, init)
	}
	return data.NewRAM(name, cc.At, capacity, init)
}

func cardName(slot int, kind string) string {
	return fmt.Sprintf("%s@%d", kind, slot)
}
