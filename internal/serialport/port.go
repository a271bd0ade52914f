// Package serialport opens serial devices behind small interfaces so that
// callers can be exercised without hardware attached.
package serialport

import (
	"io"
	"time"
)

// Porter is the minimal interface needed for a serial port.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// TimeoutPorter is implemented by ports that support a read timeout.
type TimeoutPorter interface {
	Porter
	SetReadTimeout(timeout time.Duration) error
}

// Mode holds the line settings used when opening a port.
type Mode struct {
	BaudRate int
	DataBits int
	Parity   Parity
	StopBits StopBits
}

// Parity defines serial port parity options.
type Parity int

const (
	NoParity Parity = iota
	OddParity
	EvenParity
)

// StopBits defines serial port stop bit options.
type StopBits int

const (
	OneStopBit StopBits = iota
	TwoStopBits
)

// DefaultBaudRate is used when no baud rate is given.
const DefaultBaudRate = 115200

// DefaultMode returns 115200 baud, 8 data bits, no parity, one stop bit.
func DefaultMode() *Mode {
	return &Mode{
		BaudRate: DefaultBaudRate,
		DataBits: 8,
		Parity:   NoParity,
		StopBits: OneStopBit,
	}
}

// Factory creates serial ports.
type Factory interface {
	Open(path string, mode *Mode) (Porter, error)
}

// Opener adapts a plain function to Factory.
type Opener func(path string, mode *Mode) (Porter, error)

// Open calls o.
func (o Opener) Open(path string, mode *Mode) (Porter, error) {
	return o(path, mode)
}
