package bus

import (
	"fmt"
	"strings"

	"github.com/s100emu/s100emu/curated"
	"github.com/s100emu/s100emu/logger"
)

// NSlots is the number of card slots on the backplane.
const NSlots = 18

// BadU8 is returned by Read when no card answers the address.
const BadU8 = 0xff

// Error patterns raised by Bus operations. Match with curated.Is/curated.Has.
const (
	ErrInvalidSlot  = "bus: invalid slot %d"
	ErrSlotOccupied = "bus: slot %d is already occupied"
	ErrConflict     = "bus: card %q in slot %d conflicts with %q in slot %d"
	ErrNoIRQ        = "bus: get_irq called with no interrupt raised"
)

type slot struct {
	card          Card
	allowConflict bool
	occupied      bool
}

// Bus is the fixed array of card slots making up the backplane. Reads
// return the first matching card in slot order; writes go to every
// matching card in slot order. The bus does not own card lifetimes - it
// only holds a reference.
type Bus struct {
	slots [NSlots]slot
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Insert binds card to slotIdx, subject to the conflict rule in spec
// §4.5: two non-empty slots sharing IsIO() must have disjoint address
// ranges unless either one was inserted with allowConflict set.
func (b *Bus) Insert(card Card, slotIdx int, allowConflict bool) error {
	if slotIdx < 0 || slotIdx >= NSlots {
		return curated.Errorf(ErrInvalidSlot, slotIdx)
	}
	if b.slots[slotIdx].occupied {
		return curated.Errorf(ErrSlotOccupied, slotIdx)
	}

	id := card.Identify()
	io := card.IsIO()

	if !allowConflict {
		for i, s := range b.slots {
			if !s.occupied || s.card.IsIO() != io {
				continue
			}
			if s.allowConflict {
				continue
			}
			if rangesOverlap(id, s.card.Identify()) {
				logger.Logf(logger.Allow, "bus", "slot %d: %q conflicts with %q in slot %d", slotIdx, id.Name, s.card.Identify().Name, i)
				return curated.Errorf(ErrConflict, id.Name, slotIdx, s.card.Identify().Name, i)
			}
		}
	}

	b.slots[slotIdx] = slot{card: card, allowConflict: allowConflict, occupied: true}
	return nil
}

func rangesOverlap(a, c Identity) bool {
	aEnd := uint32(a.StartAdr) + uint32(a.AdrRange)
	cEnd := uint32(c.StartAdr) + uint32(c.AdrRange)
	return uint32(a.StartAdr) < cEnd && uint32(c.StartAdr) < aEnd
}

// Remove clears slotIdx.
func (b *Bus) Remove(slotIdx int) error {
	if slotIdx < 0 || slotIdx >= NSlots {
		return curated.Errorf(ErrInvalidSlot, slotIdx)
	}
	b.slots[slotIdx] = slot{}
	return nil
}

// Read returns the first matching card's byte, or BadU8 if nothing
// answers. ior distinguishes memory space (false) from I/O space (true).
func (b *Bus) Read(adr uint16, ior bool) uint8 {
	for _, s := range b.slots {
		if !s.occupied || s.card.IsIO() != ior {
			continue
		}
		if s.card.InRange(adr) {
			return s.card.Read(adr)
		}
	}
	return BadU8
}

// Write stores data to every matching card, in slot order, honouring each
// card's write lock.
func (b *Bus) Write(adr uint16, data uint8, iow bool) {
	for _, s := range b.slots {
		if !s.occupied || s.card.IsIO() != iow {
			continue
		}
		if s.card.InRange(adr) {
			s.card.Write(adr, data)
		}
	}
}

// WriteForce is as Write but bypasses every matching card's write lock.
// Used by the loader so ROM regions can be initialised.
func (b *Bus) WriteForce(adr uint16, data uint8, iow bool) {
	for _, s := range b.slots {
		if !s.occupied || s.card.IsIO() != iow {
			continue
		}
		if s.card.InRange(adr) {
			s.card.WriteForce(adr, data)
		}
	}
}

// IsIRQ reports whether any installed card currently has an interrupt
// pending.
func (b *Bus) IsIRQ() bool {
	for _, s := range b.slots {
		if s.occupied && s.card.IsIRQ() {
			return true
		}
	}
	return false
}

// GetIRQ returns the three-byte instruction of the first card (in slot
// order) whose IsIRQ() is true.
func (b *Bus) GetIRQ() ([3]uint8, error) {
	for _, s := range b.slots {
		if s.occupied && s.card.IsIRQ() {
			return s.card.GetIRQ(), nil
		}
	}
	return [3]uint8{}, curated.Errorf(ErrNoIRQ)
}

// RefreshIfAny calls Refresh on every installed card. Data cards no-op;
// the serial card also no-ops here (it updates lazily on access), but the
// hook exists for any future card with genuine background activity.
func (b *Bus) RefreshIfAny() {
	for _, s := range b.slots {
		if s.occupied {
			s.card.Refresh()
		}
	}
}

// Clear calls Clear on every installed card.
func (b *Bus) Clear() {
	for _, s := range b.slots {
		if s.occupied {
			s.card.Clear()
		}
	}
}

// BusMapS returns a human-readable description of every occupied slot,
// intended for a front-end or diagnostics endpoint to display.
func (b *Bus) BusMapS() string {
	var sb strings.Builder
	for i, s := range b.slots {
		if !s.occupied {
			continue
		}
		id := s.card.Identify()
		space := "mem"
		if id.IsIO {
			space = "io"
		}
		fmt.Fprintf(&sb, "slot %2d: %-20s %-4s %#06x..%#06x %s\n",
			i, id.Name, space, id.StartAdr, uint32(id.StartAdr)+uint32(id.AdrRange)-1, id.Detail)
	}
	return sb.String()
}
