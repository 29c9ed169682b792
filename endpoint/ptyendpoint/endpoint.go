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

package ptyendpoint

import (
	"os"

	"github.com/creack/pty"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/s100emu/s100emu/curated"
	"github.com/s100emu/s100emu/hardware/cards/serial"
	"github.com/s100emu/s100emu/logger"
)

// Error patterns raised by Endpoint.
const (
	ErrNotOpen     = "ptyendpoint: not open"
	ErrIO          = "ptyendpoint: %v"
	ErrAlreadyOpen = "ptyendpoint: already open"
)

// rxBufSize bounds how far the receive goroutine can run ahead of Getch
// before it starts blocking on the channel send, which in turn blocks
// further reads from the master.
const rxBufSize = 4096

// Endpoint bridges a serial card to the master side of a pseudo-terminal.
// A terminal emulator or a program such as minicom attaches to the slave
// side, whose path is reported by Name.
type Endpoint struct {
	master *os.File
	slave  *os.File

	rx     chan uint8
	stopRx chan struct{}

	baud uint32
}

// New returns an unopened Endpoint.
func New() *Endpoint {
	return &Endpoint{}
}

// Open allocates the pty pair and starts the background reader that feeds
// Poll/Getch.
func (e *Endpoint) Open() error {
	if e.master != nil {
		return curated.Errorf(ErrAlreadyOpen)
	}

	master, slave, err := pty.Open()
	if err != nil {
		return curated.Errorf(ErrIO, err)
	}

	// raw mode: bytes pass through one at a time, without line buffering
	// or echo, as on a serial line
	var attr unix.Termios
	if err := termios.Tcgetattr(master.Fd(), &attr); err != nil {
		master.Close()
		slave.Close()
		return curated.Errorf(ErrIO, err)
	}
	termios.Cfmakeraw(&attr)
	if err := termios.Tcsetattr(master.Fd(), termios.TCSANOW, &attr); err != nil {
		master.Close()
		slave.Close()
		return curated.Errorf(ErrIO, err)
	}

	e.master = master
	e.slave = slave

	e.rx = make(chan uint8, rxBufSize)
	e.stopRx = make(chan struct{})
	go e.readLoop()

	return nil
}

// Close releases both sides of the pty.
func (e *Endpoint) Close() error {
	if e.master == nil {
		return curated.Errorf(ErrNotOpen)
	}

	close(e.stopRx)
	err1 := e.master.Close()
	err2 := e.slave.Close()
	e.master = nil
	e.slave = nil

	if err1 != nil {
		return curated.Errorf(ErrIO, err1)
	}
	if err2 != nil {
		return curated.Errorf(ErrIO, err2)
	}
	return nil
}

// Name returns the slave side's device path, e.g. "/dev/pts/4".
func (e *Endpoint) Name() string {
	if e.slave == nil {
		return "(closed)"
	}
	return e.slave.Name()
}

func (e *Endpoint) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := e.master.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		select {
		case e.rx <- buf[0]:
		case <-e.stopRx:
			return
		}
	}
}

// Poll reports whether a byte is waiting to be read with Getch.
func (e *Endpoint) Poll() bool {
	return len(e.rx) > 0
}

// Getch returns the next received byte. Callers should check Poll first;
// Getch blocks if nothing is waiting.
func (e *Endpoint) Getch() (uint8, error) {
	if e.master == nil {
		return 0, curated.Errorf(ErrNotOpen)
	}
	b, ok := <-e.rx
	if !ok {
		return 0, curated.Errorf(ErrNotOpen)
	}
	return b, nil
}

// Putch writes a single byte to the master side, where it becomes
// available for whatever is attached to the slave to read.
func (e *Endpoint) Putch(b uint8) error {
	if e.master == nil {
		return curated.Errorf(ErrNotOpen)
	}
	if _, err := e.master.Write([]byte{b}); err != nil {
		return curated.Errorf(ErrIO, err)
	}
	return nil
}

// SendBreak sends a break condition on the master side.
func (e *Endpoint) SendBreak() error {
	if e.master == nil {
		return curated.Errorf(ErrNotOpen)
	}
	if err := termios.Tcsendbreak(e.master.Fd(), 0); err != nil {
		return curated.Errorf(ErrIO, err)
	}
	return nil
}

// Setup applies data bits, parity and stop bits to the master side's
// termios state.
func (e *Endpoint) Setup(dataBits int, parity serial.Parity, stopBits int) error {
	if e.master == nil {
		return curated.Errorf(ErrNotOpen)
	}

	var attr unix.Termios
	if err := termios.Tcgetattr(e.master.Fd(), &attr); err != nil {
		return curated.Errorf(ErrIO, err)
	}
	termios.Cfmakeraw(&attr)

	attr.Cflag &^= unix.CSIZE
	switch dataBits {
	case 5:
		attr.Cflag |= unix.CS5
	case 6:
		attr.Cflag |= unix.CS6
	case 7:
		attr.Cflag |= unix.CS7
	default:
		attr.Cflag |= unix.CS8
	}

	switch parity {
	case serial.ParityEven:
		attr.Cflag |= unix.PARENB
		attr.Cflag &^= unix.PARODD
	case serial.ParityOdd:
		attr.Cflag |= unix.PARENB | unix.PARODD
	default:
		attr.Cflag &^= unix.PARENB
	}

	if stopBits == 2 {
		attr.Cflag |= unix.CSTOPB
	} else {
		attr.Cflag &^= unix.CSTOPB
	}

	if err := termios.Tcsetattr(e.master.Fd(), termios.TCSANOW, &attr); err != nil {
		return curated.Errorf(ErrIO, err)
	}
	return nil
}

// SetBaudRate records and logs the requested rate. Arbitrary rates need the
// Linux termios2/BOTHER extension to reach the kernel driver, which is not
// wired up here, so the rate is not applied to the pty.
func (e *Endpoint) SetBaudRate(baud uint32) error {
	e.baud = baud
	logger.Logf(logger.Allow, "ptyendpoint", "baud rate requested: %d (not applied to pty)", baud)
	return nil
}
