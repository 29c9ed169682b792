package cpu

import "github.com/s100emu/s100emu/curated"

// Load copies bytes into the bus's memory space at offset via
// WriteForce, so ROM regions load correctly. If autoResetVector is true
// and offset is at least 3, addresses 0..2 are overwritten with
// JMP offset (0xC3, lo(offset), hi(offset)) so a subsequent reset lands
// on the freshly loaded code.
func Load(c *CPU, bytes []uint8, offset uint16, autoResetVector bool) error {
	if int(offset)+len(bytes) > 0x10000 {
		return curated.Errorf(ErrLoadOutOfRange, len(bytes), offset)
	}

	for i, b := range bytes {
		c.Bus.WriteForce(offset+uint16(i), b, false)
	}

	if autoResetVector && offset >= 3 {
		c.Bus.WriteForce(0, 0xc3, false)
		c.Bus.WriteForce(1, uint8(offset), false)
		c.Bus.WriteForce(2, uint8(offset>>8), false)
	}
	return nil
}
