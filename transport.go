package monome

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport is the byte stream to a device. Reads may return fewer bytes than
// requested (or none) when nothing is pending.
type Transport interface {
	io.ReadWriteCloser
}

// Opener opens the transport for a device path.
type Opener func(path string) (Transport, error)

// SerialConfig configures the serial port of a device.
type SerialConfig struct {
	// BaudRate of the port. The FTDI chip of the 40h runs at 115200.
	BaudRate int

	// ReadTimeout bounds how long a read waits for an event.
	ReadTimeout time.Duration
}

// DefaultSerialConfig is used by the default opener.
var DefaultSerialConfig = SerialConfig{
	BaudRate:    115200,
	ReadTimeout: 10 * time.Millisecond,
}

// SerialOpener returns an Opener that opens serial ports with 8N1 framing.
func SerialOpener(cfg SerialConfig) Opener {
	return func(path string) (Transport, error) {
		port, err := serial.Open(path, &serial.Mode{
			BaudRate: cfg.BaudRate,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, fmt.Errorf("open serial port %s: %w", path, err)
		}

		if cfg.ReadTimeout > 0 {
			if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
				_ = port.Close()
				return nil, fmt.Errorf("set read timeout: %w", err)
			}
		}

		return port, nil
	}
}
