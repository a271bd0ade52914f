// Package smoketest writes a fixed frame to a serial device to check that
// the link is alive. Nothing is read back.
package smoketest

import (
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/telemetry/internal/monitoring"
	"github.com/banshee-data/telemetry/internal/serialport"
)

// Frame is the smoke-test frame: sync byte, length, two payload bytes and a
// 0xFFFF checksum placeholder.
var Frame = [6]byte{0x7E, 0x02, 0x00, 0x01, 0xFF, 0xFF}

// ReadTimeout is applied to the port before writing.
const ReadTimeout = time.Second

// Op names the step of Send that failed.
type Op string

const (
	OpOpen      Op = "open"
	OpConfigure Op = "configure"
	OpWrite     Op = "write"
	OpClose     Op = "close"
)

// DeviceIOError reports a failure talking to the serial device.
type DeviceIOError struct {
	Port string
	Op   Op
	Err  error
}

func (e *DeviceIOError) Error() string {
	return fmt.Sprintf("serial %s %s: %v", e.Op, e.Port, e.Err)
}

func (e *DeviceIOError) Unwrap() error { return e.Err }

// Send opens port at baud, writes Frame once and closes the port. The port
// is closed even when the write fails. state is accepted for command-line
// compatibility and does not change the frame.
func Send(f serialport.Factory, port string, baud int, state bool) (err error) {
	mode, err := serialport.Options{BaudRate: baud}.Mode()
	if err != nil {
		return &DeviceIOError{Port: port, Op: OpConfigure, Err: err}
	}

	p, err := f.Open(port, mode)
	if err != nil {
		return &DeviceIOError{Port: port, Op: OpOpen, Err: err}
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			if err == nil {
				err = &DeviceIOError{Port: port, Op: OpClose, Err: cerr}
			} else {
				monitoring.Logf("serial %s: close after failure: %v", port, cerr)
			}
		}
	}()

	if tp, ok := p.(serialport.TimeoutPorter); ok {
		if err := tp.SetReadTimeout(ReadTimeout); err != nil {
			return &DeviceIOError{Port: port, Op: OpConfigure, Err: err}
		}
	}

	monitoring.Debugf("serial %s @ %d: state=%t, writing % X", port, mode.BaudRate, state, Frame[:])

	n, err := p.Write(Frame[:])
	if err != nil {
		return &DeviceIOError{Port: port, Op: OpWrite, Err: err}
	}
	if n != len(Frame) {
		return &DeviceIOError{Port: port, Op: OpWrite, Err: fmt.Errorf("wrote %d of %d bytes: %w", n, len(Frame), io.ErrShortWrite)}
	}
	return nil
}
