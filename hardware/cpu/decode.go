package cpu

import "github.com/s100emu/s100emu/hardware/cpu/registers"

// rpTable is the RP decode table: opcode[5:4] selects a register pair for
// LXI/DAD/INX/DCX.
var rpTable = [4]registers.R16{registers.BC, registers.DE, registers.HL, registers.SP}

// pushPopTable is RP with SP replaced by AF, used by PUSH/POP.
var pushPopTable = [4]registers.R16{registers.BC, registers.DE, registers.HL, registers.AF}

// aluOp identifies one of the eight ALU group operations, selected by
// opcode[5:3] in both the register form (0x80-0xBF) and the immediate form
// (0xC6,0xCE,0xD6,0xDE,0xE6,0xEE,0xF6,0xFE).
type aluOp int

const (
	aluADD aluOp = iota
	aluADC
	aluSUB
	aluSBB
	aluANA
	aluXRA
	aluORA
	aluCMP
)

// cc identifies one of the eight branch condition codes, selected by
// opcode[5:3] in Jcc/Ccc/Rcc.
type cc int

const (
	ccNZ cc = iota
	ccZ
	ccNC
	ccC
	ccPO
	ccPE
	ccP
	ccM
)

func (c *CPU) testCC(code cc) bool {
	switch code {
	case ccNZ:
		return !c.Regs.GetFlag(registers.FlagZ)
	case ccZ:
		return c.Regs.GetFlag(registers.FlagZ)
	case ccNC:
		return !c.Regs.GetFlag(registers.FlagC)
	case ccC:
		return c.Regs.GetFlag(registers.FlagC)
	case ccPO:
		return !c.Regs.GetFlag(registers.FlagP)
	case ccPE:
		return c.Regs.GetFlag(registers.FlagP)
	case ccP:
		return !c.Regs.GetFlag(registers.FlagS)
	case ccM:
		return c.Regs.GetFlag(registers.FlagS)
	}
	panic("cpu: impossible condition code")
}
