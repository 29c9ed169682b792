package cpu

import (
	"io"

	"github.com/s100emu/s100emu/curated"
	"github.com/s100emu/s100emu/hardware/bus"
	"github.com/s100emu/s100emu/hardware/cpu/registers"
	"github.com/s100emu/s100emu/logger"
)

// Error patterns raised by the CPU. Match with curated.Is/curated.Has.
const (
	ErrUnknownOpcode   = "cpu: unknown opcode %#02x at %#04x"
	ErrInvalidBdosCall = "cpu: pseudo-bdos call with unsupported C=%#02x"
	ErrLoadOutOfRange  = "cpu: load of %d bytes at offset %#04x does not fit in 64k"
)

// CPU is an 8080 interpreter bound to a single bus.Bus.
type CPU struct {
	Regs *registers.File
	Bus  *bus.Bus

	Halted            bool
	InterruptsEnabled bool

	justBooted bool

	pseudoBdosEnabled bool
	printSink         io.Writer

	// pendingOperands redirects fetch() during interrupt acceptance: the
	// instruction drawn from bus.GetIRQ() draws its operand bytes from
	// here instead of from memory, for the duration of that one
	// instruction.
	pendingOperands []uint8
	pendingIdx      int
	usePending      bool
}

// New returns a CPU bound to b, in its post-reset state. If
// pseudoBdosEnabled, the CPU intercepts PC==0x0000 and PC==0x0005 per the
// pseudo-BDOS shim; printSink receives bytes emitted by BDOS calls C=2 and
// C=9 and may be nil if pseudoBdosEnabled is false.
func New(b *bus.Bus, pseudoBdosEnabled bool, printSink io.Writer) *CPU {
	c := &CPU{
		Regs:              registers.NewFile(),
		Bus:               b,
		pseudoBdosEnabled: pseudoBdosEnabled,
		printSink:         printSink,
	}
	c.Clear()
	return c
}

// Clear restores the CPU's reset state: register file cleared, not
// halted, interrupts disabled, the pseudo-BDOS one-shot boot guard armed.
func (c *CPU) Clear() {
	c.Regs.Clear()
	c.Halted = false
	c.InterruptsEnabled = false
	c.justBooted = true
}

// fetch reads the next instruction byte, advancing PC, unless interrupt
// acceptance has redirected the fetch source to a small operand buffer.
func (c *CPU) fetch() uint8 {
	if c.usePending {
		b := c.pendingOperands[c.pendingIdx]
		c.pendingIdx++
		return b
	}
	pc := c.Regs.GetThenInc16(registers.PC)
	return c.Bus.Read(pc, false)
}

// fetch2 reads a little-endian 16-bit operand.
func (c *CPU) fetch2() uint16 {
	lo := c.fetch()
	hi := c.fetch()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) readR8(r registers.R8) uint8 {
	if r == registers.M {
		return c.Bus.Read(c.Regs.Get16(registers.HL), false)
	}
	return c.Regs.Get8(r)
}

func (c *CPU) writeR8(r registers.R8, v uint8) {
	if r == registers.M {
		c.Bus.Write(c.Regs.Get16(registers.HL), v, false)
		return
	}
	c.Regs.Set8(r, v)
}

// Step executes one instruction, or does nothing if halted. The front-end
// is expected to call Bus.RefreshIfAny() and AcceptInterrupt() between
// calls to Step.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.pseudoBdosEnabled {
		handled, err := c.bdosHook()
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
	}
	pc := c.Regs.Get16(registers.PC)
	op := c.fetch()
	return c.execute(op, pc)
}

// AcceptInterrupt services a pending bus interrupt if interrupts are
// enabled and one is raised: it disables interrupts and executes the
// three-byte instruction bus.GetIRQ() returns, with its operand bytes (if
// any) drawn from that buffer rather than from memory. PC is left
// unadvanced beforehand, so RST's or CALL's own push of PC saves exactly
// the address the interrupted program would have resumed at.
func (c *CPU) AcceptInterrupt() error {
	if !c.InterruptsEnabled || !c.Bus.IsIRQ() {
		return nil
	}
	inst, err := c.Bus.GetIRQ()
	if err != nil {
		return err
	}

	c.InterruptsEnabled = false

	c.pendingOperands = inst[1:3]
	c.pendingIdx = 0
	c.usePending = true
	defer func() {
		c.usePending = false
		c.pendingIdx = 0
	}()

	return c.execute(inst[0], c.Regs.Get16(registers.PC))
}

func (c *CPU) pushPC() {
	c.push16(c.Regs.Get16(registers.PC))
}

func (c *CPU) push16(v uint16) {
	sp := c.Regs.Get16(registers.SP) - 2
	c.Bus.Write(sp, uint8(v), false)
	c.Bus.Write(sp+1, uint8(v>>8), false)
	c.Regs.Set16(registers.SP, sp)
}

func (c *CPU) pop16() uint16 {
	sp := c.Regs.Get16(registers.SP)
	lo := c.Bus.Read(sp, false)
	hi := c.Bus.Read(sp+1, false)
	c.Regs.Set16(registers.SP, sp+2)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) doRet() {
	c.Regs.Set16(registers.PC, c.pop16())
}

func unknownOpcode(op uint8, at uint16) error {
	logger.Logf(logger.Allow, "cpu", "unknown opcode %#02x at %#04x", op, at)
	return curated.Errorf(ErrUnknownOpcode, op, at)
}

func unsupportedBdosCall(c uint8) error {
	logger.Logf(logger.Allow, "cpu", "pseudo-bdos call with unsupported C=%#02x", c)
	return curated.Errorf(ErrInvalidBdosCall, c)
}
