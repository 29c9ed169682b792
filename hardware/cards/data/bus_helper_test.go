package data

import (
	"testing"

	"github.com/s100emu/s100emu/hardware/bus"
)

func newTestBus(t *testing.T, cards ...bus.Card) *bus.Bus {
	t.Helper()
	b := bus.NewBus()
	for i, c := range cards {
		if err := b.Insert(c, i, true); err != nil {
			t.Fatalf("insert card %d: %v", i, err)
		}
	}
	return b
}
