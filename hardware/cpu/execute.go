package cpu

import "github.com/s100emu/s100emu/hardware/cpu/registers"

// execute runs the instruction whose opcode is op. at is the address the
// opcode was fetched from, used only for error messages.
func (c *CPU) execute(op uint8, at uint16) error {
	switch op >> 6 {
	case 0:
		return c.executeGroup0(op, at)
	case 1:
		return c.executeMov(op)
	case 2:
		c.executeAlu(aluOp((op>>3)&7), c.readR8(registers.R8(op&7)), false)
		return nil
	case 3:
		return c.executeGroup3(op, at)
	}
	return unknownOpcode(op, at)
}

func (c *CPU) executeMov(op uint8) error {
	dst := registers.R8((op >> 3) & 7)
	src := registers.R8(op & 7)
	if dst == registers.M && src == registers.M {
		c.Halted = true
		return nil
	}
	c.writeR8(dst, c.readR8(src))
	return nil
}

func (c *CPU) executeGroup0(op uint8, at uint16) error {
	switch op & 0x07 {
	case 0:
		return nil // NOP, including the undocumented 0x08/0x10/... duplicates
	case 1:
		rp := rpTable[(op>>4)&3]
		if op&0x08 == 0 {
			c.Regs.Set16(rp, c.fetch2())
		} else {
			c.dad(rp)
		}
		return nil
	case 2:
		c.storeOrLoad((op>>4)&3, op&0x08 != 0)
		return nil
	case 3:
		rp := rpTable[(op>>4)&3]
		if op&0x08 == 0 {
			c.Regs.Inc16(rp)
		} else {
			c.dcx(rp)
		}
		return nil
	case 4:
		c.inr(registers.R8((op >> 3) & 7))
		return nil
	case 5:
		c.dcr(registers.R8((op >> 3) & 7))
		return nil
	case 6:
		c.writeR8(registers.R8((op>>3)&7), c.fetch())
		return nil
	case 7:
		c.singleByteOp((op >> 3) & 7)
		return nil
	}
	return unknownOpcode(op, at)
}

func (c *CPU) storeOrLoad(rpIdx uint8, load bool) {
	switch rpIdx {
	case 0, 1:
		rp := registers.BC
		if rpIdx == 1 {
			rp = registers.DE
		}
		adr := c.Regs.Get16(rp)
		if load {
			c.Regs.Set8(registers.A, c.Bus.Read(adr, false))
		} else {
			c.Bus.Write(adr, c.Regs.Get8(registers.A), false)
		}
	case 2:
		adr := c.fetch2()
		if load {
			c.Regs.Set16(registers.HL, uint16(c.Bus.Read(adr+1, false))<<8|uint16(c.Bus.Read(adr, false)))
		} else {
			hl := c.Regs.Get16(registers.HL)
			c.Bus.Write(adr, uint8(hl), false)
			c.Bus.Write(adr+1, uint8(hl>>8), false)
		}
	case 3:
		adr := c.fetch2()
		if load {
			c.Regs.Set8(registers.A, c.Bus.Read(adr, false))
		} else {
			c.Bus.Write(adr, c.Regs.Get8(registers.A), false)
		}
	}
}

func (c *CPU) dad(rp registers.R16) {
	hl := uint32(c.Regs.Get16(registers.HL))
	v := uint32(c.Regs.Get16(rp))
	sum := hl + v
	c.Regs.Set16(registers.HL, uint16(sum))
	c.Regs.SetFlag(registers.FlagC, sum > 0xffff)
}

func (c *CPU) dcx(rp registers.R16) {
	c.Regs.Set16(rp, c.Regs.Get16(rp)-1)
}

func (c *CPU) inr(r registers.R8) {
	v := c.readR8(r) + 1
	c.writeR8(r, v)
	c.Regs.SetZSP(v)
	c.Regs.SetFlag(registers.FlagAC, v&0x0f == 0x00)
}

func (c *CPU) dcr(r registers.R8) {
	v := c.readR8(r) - 1
	c.writeR8(r, v)
	c.Regs.SetZSP(v)
	c.Regs.SetFlag(registers.FlagAC, v&0x0f != 0x0f)
}

func (c *CPU) singleByteOp(sel uint8) {
	a := c.Regs.Get8(registers.A)
	switch sel {
	case 0: // RLC
		bit7 := a >> 7
		c.Regs.Set8(registers.A, a<<1|bit7)
		c.Regs.SetFlag(registers.FlagC, bit7 != 0)
	case 1: // RRC
		bit0 := a & 1
		c.Regs.Set8(registers.A, a>>1|bit0<<7)
		c.Regs.SetFlag(registers.FlagC, bit0 != 0)
	case 2: // RAL
		var cIn uint8
		if c.Regs.GetFlag(registers.FlagC) {
			cIn = 1
		}
		c.Regs.Set8(registers.A, a<<1|cIn)
		c.Regs.SetFlag(registers.FlagC, a>>7 != 0)
	case 3: // RAR
		var cIn uint8
		if c.Regs.GetFlag(registers.FlagC) {
			cIn = 1
		}
		c.Regs.Set8(registers.A, a>>1|cIn<<7)
		c.Regs.SetFlag(registers.FlagC, a&1 != 0)
	case 4:
		c.daa()
	case 5: // CMA
		c.Regs.Set8(registers.A, ^a)
	case 6: // STC
		c.Regs.SetFlag(registers.FlagC, true)
	case 7: // CMC
		c.Regs.SetFlag(registers.FlagC, !c.Regs.GetFlag(registers.FlagC))
	}
}

// daa decimal-adjusts A using the standard pair of conditional additions
// of 0x06 and 0x60 keyed on the low nibble/AC and then the high nibble/C.
func (c *CPU) daa() {
	a := c.Regs.Get8(registers.A)
	cy := c.Regs.GetFlag(registers.FlagC)
	correction := uint8(0)

	lsb := a & 0x0f
	msb := a >> 4

	if lsb > 9 || c.Regs.GetFlag(registers.FlagAC) {
		correction += 0x06
	}
	if cy || msb > 9 || (msb >= 9 && lsb > 9) {
		correction += 0x60
		cy = true
	}

	c.executeAluAdd(correction, 0)
	c.Regs.SetFlag(registers.FlagC, cy)
}

func (c *CPU) executeGroup3(op uint8, at uint16) error {
	switch op & 0x07 {
	case 0:
		if c.testCC(cc((op >> 3) & 7)) {
			c.doRet()
		}
		return nil
	case 1:
		if op&0x08 == 0 {
			c.popRP((op >> 4) & 3)
		} else {
			c.executeGroup3Row1((op >> 4) & 3)
		}
		return nil
	case 2:
		target := c.fetch2()
		if c.testCC(cc((op >> 3) & 7)) {
			c.Regs.Set16(registers.PC, target)
		}
		return nil
	case 3:
		return c.executeGroup3Row3(op)
	case 4:
		target := c.fetch2()
		if c.testCC(cc((op >> 3) & 7)) {
			c.call(target)
		}
		return nil
	case 5:
		if op&0x08 == 0 {
			c.pushRP((op >> 4) & 3)
		} else {
			c.call(c.fetch2())
		}
		return nil
	case 6:
		c.executeAlu(aluOp((op>>3)&7), c.fetch(), true)
		return nil
	case 7:
		n := (op >> 3) & 7
		c.call(uint16(n) * 8)
		return nil
	}
	return unknownOpcode(op, at)
}

func (c *CPU) call(target uint16) {
	c.pushPC()
	c.Regs.Set16(registers.PC, target)
}

func (c *CPU) popRP(rpIdx uint8) {
	c.Regs.Set16(pushPopTable[rpIdx], c.pop16())
}

func (c *CPU) pushRP(rpIdx uint8) {
	c.push16(c.Regs.Get16(pushPopTable[rpIdx]))
}

func (c *CPU) executeGroup3Row1(rpIdx uint8) {
	switch rpIdx {
	case 0, 1:
		c.doRet()
	case 2: // PCHL
		c.Regs.Set16(registers.PC, c.Regs.Get16(registers.HL))
	case 3: // SPHL
		c.Regs.Set16(registers.SP, c.Regs.Get16(registers.HL))
	}
}

func (c *CPU) executeGroup3Row3(op uint8) error {
	rpIdx := (op >> 4) & 3
	if op&0x08 == 0 {
		switch rpIdx {
		case 0: // JMP a16
			c.Regs.Set16(registers.PC, c.fetch2())
		case 1: // OUT d8
			port := c.fetch()
			c.Bus.Write(uint16(port)|uint16(port)<<8, c.Regs.Get8(registers.A), true)
		case 2: // XTHL
			c.xthl()
		case 3: // DI
			c.InterruptsEnabled = false
		}
		return nil
	}
	switch rpIdx {
	case 0: // JMP a16 (undocumented duplicate)
		c.Regs.Set16(registers.PC, c.fetch2())
	case 1: // IN d8
		port := c.fetch()
		c.Regs.Set8(registers.A, c.Bus.Read(uint16(port)|uint16(port)<<8, true))
	case 2: // XCHG
		hl := c.Regs.Get16(registers.HL)
		de := c.Regs.Get16(registers.DE)
		c.Regs.Set16(registers.HL, de)
		c.Regs.Set16(registers.DE, hl)
	case 3: // EI
		c.InterruptsEnabled = true
	}
	return nil
}

func (c *CPU) xthl() {
	sp := c.Regs.Get16(registers.SP)
	lo := c.Bus.Read(sp, false)
	hi := c.Bus.Read(sp+1, false)
	hl := c.Regs.Get16(registers.HL)
	c.Bus.Write(sp, uint8(hl), false)
	c.Bus.Write(sp+1, uint8(hl>>8), false)
	c.Regs.Set16(registers.HL, uint16(hi)<<8|uint16(lo))
}

// executeAlu dispatches one of the eight ALU group operations against
// operand, used by both the register form and the immediate form.
// immediate distinguishes ANI from ANA: they differ in how AC is set.
func (c *CPU) executeAlu(op aluOp, operand uint8, immediate bool) {
	switch op {
	case aluADD:
		c.executeAluAdd(operand, 0)
	case aluADC:
		var cy uint8
		if c.Regs.GetFlag(registers.FlagC) {
			cy = 1
		}
		c.executeAluAdd(operand, cy)
	case aluSUB:
		c.executeAluSub(operand, 0)
	case aluSBB:
		var cy uint8
		if c.Regs.GetFlag(registers.FlagC) {
			cy = 1
		}
		c.executeAluSub(operand, cy)
	case aluANA:
		c.ana(operand, immediate)
	case aluXRA:
		c.xra(operand)
	case aluORA:
		c.ora(operand)
	case aluCMP:
		c.cmp(operand)
	}
}

func (c *CPU) executeAluAdd(operand, cy uint8) {
	a := c.Regs.Get8(registers.A)
	sum := uint16(a) + uint16(operand) + uint16(cy)
	result := uint8(sum)

	c.Regs.Set8(registers.A, result)
	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, sum > 0xff)
	c.Regs.SetFlag(registers.FlagAC, (a&0x0f)+(operand&0x0f)+cy > 0x0f)
}

func (c *CPU) executeAluSub(operand, cy uint8) {
	a := c.Regs.Get8(registers.A)
	diff := int16(a) - int16(operand) - int16(cy)
	result := uint8(diff)

	c.Regs.Set8(registers.A, result)
	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, diff < 0)
	// See the design notes: this follows (A&0xF) >= (op&0xF) rather than
	// the conventional borrow test, matching the diagnostics this core is
	// verified against.
	c.Regs.SetFlag(registers.FlagAC, (a&0x0f) >= (operand&0x0f))
}

func (c *CPU) ana(operand uint8, immediate bool) {
	a := c.Regs.Get8(registers.A)
	result := a & operand
	c.Regs.Set8(registers.A, result)
	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, false)
	if immediate {
		c.Regs.SetFlag(registers.FlagAC, false)
	} else {
		c.Regs.SetFlag(registers.FlagAC, (a|operand)&0x08 != 0)
	}
}

func (c *CPU) xra(operand uint8) {
	result := c.Regs.Get8(registers.A) ^ operand
	c.Regs.Set8(registers.A, result)
	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, false)
	c.Regs.SetFlag(registers.FlagAC, false)
}

func (c *CPU) ora(operand uint8) {
	result := c.Regs.Get8(registers.A) | operand
	c.Regs.Set8(registers.A, result)
	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, false)
	c.Regs.SetFlag(registers.FlagAC, false)
}

func (c *CPU) cmp(operand uint8) {
	a := c.Regs.Get8(registers.A)
	diff := int16(a) - int16(operand)
	result := uint8(diff)

	c.Regs.SetZSP(result)
	c.Regs.SetFlag(registers.FlagC, diff < 0)
	c.Regs.SetFlag(registers.FlagAC, (a&0x0f) >= (operand&0x0f))
}
