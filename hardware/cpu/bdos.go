package cpu

import "github.com/s100emu/s100emu/hardware/cpu/registers"

// bdosHook implements the pseudo-BDOS shim used to run stock CP/M
// diagnostic binaries without emulating CP/M. It runs before the normal
// fetch/execute path on every step. handled reports whether it fully
// serviced the step itself (PC==0x0005): in that case Step must not go
// on to fetch and execute an opcode. For PC==0x0000, the hook only
// arranges what will happen and lets the step proceed normally.
func (c *CPU) bdosHook() (handled bool, err error) {
	switch c.Regs.Get16(registers.PC) {
	case 0x0000:
		if c.justBooted {
			c.justBooted = false
		} else {
			c.Bus.WriteForce(0x0000, 0x76, false) // HLT
		}
		return false, nil

	case 0x0005:
		switch c.Regs.Get8(registers.C) {
		case 0x02:
			c.emit(c.Regs.Get8(registers.E))
		case 0x09:
			adr := c.Regs.Get16(registers.DE)
			for {
				b := c.Bus.Read(adr, false)
				if b == '$' {
					break
				}
				c.emit(b)
				adr++
			}
		default:
			return true, unsupportedBdosCall(c.Regs.Get8(registers.C))
		}
		c.fetch() // consume one byte, mimicking a RET opcode fetch
		c.doRet()
		return true, nil
	}
	return false, nil
}

func (c *CPU) emit(b uint8) {
	if c.printSink == nil {
		return
	}
	c.printSink.Write([]byte{b})
}
