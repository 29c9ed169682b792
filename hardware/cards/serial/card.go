package serial

import (
	"fmt"

	"github.com/s100emu/s100emu/hardware/bus"
	"github.com/s100emu/s100emu/logger"
)

// Status bits.
const (
	statusRDRF = 0x01
	statusTDRE = 0x02
	statusDCD  = 0x04
	statusCTS  = 0x08
	statusFE   = 0x10
	statusOVRN = 0x20
	statusPE   = 0x40
	statusIRQ  = 0x80
)

// resetControl is the control byte's value after a reset or master reset:
// divide-by-16 (01), 8 bits no parity 1 stop (101), RTS=1 (00), receive
// IRQ mirror enabled (1).
const resetControl = 0b10010101

const resetDivisor = 16

// Card is a Motorola 6850 ACIA bridging two bus addresses (status/control
// and data) to an Endpoint.
type Card struct {
	id bus.Identity

	txData, rxData uint8
	control        uint8
	status         uint8

	divisor  uint32
	rts      bool
	dataBits int
	parity   Parity
	stopBits int

	endpoint Endpoint
}

// NewCard returns a serial card occupying startAdr (status/control) and
// startAdr+1 (data), bridged to endpoint. The card is left in its
// post-reset state.
func NewCard(name string, startAdr uint16, endpoint Endpoint) *Card {
	c := &Card{
		id: bus.Identity{
			StartAdr: startAdr,
			AdrRange: 2,
			Name:     name,
			IsIO:     true,
		},
		endpoint: endpoint,
	}
	c.Clear()
	return c
}

// InRange decodes only the low 8 bits of the address, so the card mirrors
// itself 256 times across the 16-bit port space.
func (c *Card) InRange(adr uint16) bool {
	lo := adr & 0x00ff
	start := c.id.StartAdr & 0x00ff
	return lo == start || lo == start+1
}

func (c *Card) Identify() bus.Identity {
	id := c.id
	id.Detail = fmt.Sprintf("baud=%d/%d control=%#02x endpoint=%s",
		baseBaud, c.divisor, c.control, c.endpointName())
	return id
}

const baseBaud = 115200

func (c *Card) endpointName() string {
	if c.endpoint == nil {
		return "(none)"
	}
	return c.endpoint.Name()
}

func (c *Card) IsIO() bool { return true }

// pollRx checks the endpoint for an available byte and, if RDRF is clear,
// latches it into RX_DATA and sets RDRF. Called before every Read.
func (c *Card) pollRx() {
	if c.status&statusRDRF != 0 {
		return
	}
	if c.endpoint == nil || !c.endpoint.Poll() {
		return
	}
	b, err := c.endpoint.Getch()
	if err != nil {
		c.status |= statusOVRN
		logger.Logf(logger.Allow, "serial", "%s: overrun on receive: %v", c.id.Name, err)
		return
	}
	c.rxData = b
	c.status |= statusRDRF
}

func (c *Card) Read(adr uint16) uint8 {
	c.pollRx()

	lo := adr & 0x00ff
	start := c.id.StartAdr & 0x00ff
	if lo == start {
		return c.status
	}
	// Data port. RDRF is deliberately left set here - see the design notes
	// on this card's known quirks.
	return c.rxData
}

func (c *Card) Write(adr uint16, data uint8) {
	lo := adr & 0x00ff
	start := c.id.StartAdr & 0x00ff
	if lo == start {
		c.writeControl(data)
		return
	}
	c.txData = data
	c.status &^= statusTDRE
	c.flushTx()
}

// WriteForce behaves identically to Write; the serial card has no
// write-lock concept, so there is nothing for WriteForce to bypass.
func (c *Card) WriteForce(adr uint16, data uint8) {
	c.Write(adr, data)
}

func (c *Card) writeControl(data uint8) {
	if data&0x03 == 0x03 {
		c.masterReset()
		return
	}

	switch data & 0x03 {
	case 0x00:
		c.divisor = 1
	case 0x01:
		c.divisor = 16
	case 0x02:
		c.divisor = 64
	}

	switch (data >> 2) & 0x07 {
	case 0:
		c.dataBits, c.parity, c.stopBits = 7, ParityEven, 2
	case 1:
		c.dataBits, c.parity, c.stopBits = 7, ParityOdd, 2
	case 2:
		c.dataBits, c.parity, c.stopBits = 7, ParityEven, 1
	case 3:
		c.dataBits, c.parity, c.stopBits = 7, ParityOdd, 1
	case 4:
		c.dataBits, c.parity, c.stopBits = 8, ParityNone, 2
	case 5:
		c.dataBits, c.parity, c.stopBits = 8, ParityNone, 1
	case 6:
		c.dataBits, c.parity, c.stopBits = 8, ParityEven, 1
	case 7:
		c.dataBits, c.parity, c.stopBits = 8, ParityOdd, 1
	}
	if c.endpoint != nil {
		c.endpoint.Setup(c.dataBits, c.parity, c.stopBits)
		c.endpoint.SetBaudRate(baseBaud / c.divisor)
	}

	switch (data >> 5) & 0x03 {
	case 0x00, 0x01:
		c.rts = true
	case 0x02:
		c.rts = false
	case 0x03:
		c.rts = true
		if c.endpoint != nil {
			c.endpoint.SendBreak()
		}
	}
	c.setRTSStatus()

	// Receive-interrupt-enable mirrors directly into STATUS.IRQ; the
	// original implementation calls this "probably wrong" but diagnostics
	// rely on the behavior as written.
	if data&0x80 != 0 {
		c.status |= statusIRQ
	} else {
		c.status &^= statusIRQ
	}

	c.control = data
	c.flushTx()
}

func (c *Card) setRTSStatus() {
	if c.rts {
		c.status |= statusCTS
	} else {
		c.status &^= statusCTS
	}
}

func (c *Card) flushTx() {
	if c.status&statusTDRE != 0 {
		return
	}
	if c.endpoint != nil {
		c.endpoint.Putch(c.txData)
	}
	c.status |= statusTDRE
}

func (c *Card) masterReset() {
	c.control = resetControl
	c.status = statusTDRE
	c.rts = true
	c.divisor = resetDivisor
	c.dataBits, c.parity, c.stopBits = 8, ParityNone, 1
	c.setRTSStatus()
}

func (c *Card) Refresh() {}

// IsIRQ and GetIRQ exist to satisfy bus.Card; this design never issues a
// vectored interrupt from the serial card.
func (c *Card) IsIRQ() bool      { return false }
func (c *Card) GetIRQ() [3]uint8 { return [3]uint8{} }

func (c *Card) Clear() {
	c.txData, c.rxData = 0, 0
	c.masterReset()
}
