package serialport

import (
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// RealFactory opens hardware ports through go.bug.st/serial.
type RealFactory struct{}

// NewRealFactory returns a Factory backed by the operating system.
func NewRealFactory() *RealFactory {
	return &RealFactory{}
}

// Open opens path with mode, or DefaultMode when mode is nil. The returned
// port implements TimeoutPorter.
func (RealFactory) Open(path string, mode *Mode) (Porter, error) {
	port, err := serial.Open(path, mode.SerialMode())
	if err != nil {
		return nil, err
	}
	return port, nil
}

// Info describes a port found on the system.
type Info struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

func (i Info) String() string {
	if !i.IsUSB {
		return i.Name
	}
	s := fmt.Sprintf("%s (USB %s:%s", i.Name, i.VID, i.PID)
	if i.Product != "" {
		s += " " + i.Product
	}
	if i.SerialNumber != "" {
		s += " serial " + i.SerialNumber
	}
	return s + ")"
}

// ListPorts enumerates the serial ports present on the system.
func ListPorts() ([]Info, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate ports: %w", err)
	}
	infos := make([]Info, 0, len(ports))
	for _, p := range ports {
		infos = append(infos, Info{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return infos, nil
}
