package transport

import (
	"fmt"

	serial "github.com/allbin/go-serial"
)

// serialTransport is a Transport over a local serial device.
type serialTransport struct {
	*lineReader
	device string
	baud   int
}

func openSerial(device string, baud int) (Transport, error) {
	port, err := serial.Open(device, serial.WithBaudRate(baud))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return &serialTransport{
		lineReader: newLineReader(port),
		device:     device,
		baud:       baud,
	}, nil
}

func (s *serialTransport) String() string {
	return fmt.Sprintf("Port: %s Speed: %d bit/s", s.device, s.baud)
}

// PortInfo describes a discovered serial port.
type PortInfo struct {
	Path        string
	Description string
	VendorID    string
	ProductID   string
	Serial      string
}

// ListPorts enumerates the serial ports present on the system, with
// USB metadata where available.
func ListPorts() ([]PortInfo, error) {
	paths, err := serial.ListPorts()
	if err != nil {
		return nil, err
	}
	out := make([]PortInfo, 0, len(paths))
	for _, path := range paths {
		pi := PortInfo{Path: path}
		if info, err := serial.GetPortInfo(path); err == nil {
			pi.Description = info.Description
			pi.VendorID = info.VendorID
			pi.ProductID = info.ProductID
			pi.Serial = info.SerialNumber
		}
		out = append(out, pi)
	}
	return out, nil
}
