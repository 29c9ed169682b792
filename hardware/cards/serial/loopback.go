package serial

// Loopback is a trivial in-memory Endpoint used by tests. Bytes queued
// with Feed (simulating the far end) become available to Poll/Getch;
// bytes written with Putch accumulate in Sent for assertions.
type Loopback struct {
	name   string
	rx     []uint8
	Sent   []uint8
	opened bool

	dataBits int
	parity   Parity
	stopBits int
	baud     uint32
	broke    bool
}

// NewLoopback returns an endpoint named name.
func NewLoopback(name string) *Loopback {
	return &Loopback{name: name}
}

func (l *Loopback) Open() error  { l.opened = true; return nil }
func (l *Loopback) Close() error { l.opened = false; return nil }
func (l *Loopback) Name() string { return l.name }

func (l *Loopback) Poll() bool { return len(l.rx) > 0 }

func (l *Loopback) Getch() (uint8, error) {
	b := l.rx[0]
	l.rx = l.rx[1:]
	return b, nil
}

func (l *Loopback) Putch(b uint8) error {
	l.Sent = append(l.Sent, b)
	return nil
}

func (l *Loopback) SendBreak() error { l.broke = true; return nil }

func (l *Loopback) Setup(dataBits int, parity Parity, stopBits int) error {
	l.dataBits, l.parity, l.stopBits = dataBits, parity, stopBits
	return nil
}

func (l *Loopback) SetBaudRate(baud uint32) error {
	l.baud = baud
	return nil
}

// Feed queues bytes as if they had arrived from the far end, for tests
// that exercise the receive path.
func (l *Loopback) Feed(bytes ...uint8) {
	l.rx = append(l.rx, bytes...)
}
