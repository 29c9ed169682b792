package serial

// Parity selects the parity scheme negotiated with the external endpoint.
type Parity int

const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// Endpoint is the external byte-stream the serial card bridges to - in
// practice a pseudo-terminal, but the card itself only ever sees this
// narrow contract.
type Endpoint interface {
	Open() error
	Close() error
	Name() string

	// Poll reports, without blocking, whether a byte is available to Getch.
	Poll() bool

	Getch() (uint8, error)
	Putch(uint8) error

	SendBreak() error

	Setup(dataBits int, parity Parity, stopBits int) error
	SetBaudRate(baud uint32) error
}
