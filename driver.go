// Package monome drives grid controllers speaking the 40h serial protocol:
// 8x8 LEDs and buttons, two bytes per message.
package monome

import (
	"sort"
	"sync"
)

// ClearStatus is the state Clear leaves the lights in.
type ClearStatus uint8

const (
	ClearOff ClearStatus = iota
	ClearOn
)

// Mode is the operating mode of a device.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModeTest
	ModeShutdown
)

// Driver is the uniform interface to one device, implemented once per protocol family.
//
// A Driver is not safe for concurrent use; callers that share one between
// goroutines must synchronize (see Connection).
type Driver interface {
	// Open connects to the device at path. A driver can only be opened once.
	Open(path, serial string, desc DeviceDescriptor) error

	// Close closes the transport. Closing twice is a no-op.
	Close() error

	// Release drops everything the driver holds. The driver must not be used afterwards.
	Release()

	// NextEvent returns the next pending button event. ok is false if none is pending,
	// which is not an error.
	NextEvent() (e Event, ok bool, err error)

	// Clear switches all lights off and returns the number of bytes written.
	Clear(status ClearStatus) (int, error)

	// SetIntensity sets the brightness of all lights. The level is passed through as is.
	SetIntensity(level uint8) error

	// SetMode sets the operating mode of the device.
	SetMode(mode Mode) error

	// SetLED switches the light at x,y on or off.
	SetLED(x, y uint8, on bool) error

	// WriteRow sets a row of lights, one bit per column.
	WriteRow(row, offset uint8, data []byte) error

	// WriteColumn sets a column of lights, one bit per row.
	WriteColumn(col, offset uint8, data []byte) error

	// WriteFrame sets all lights of an 8x8 quadrant, one byte per row.
	WriteFrame(xOff, yOff uint8, frame [8]byte) error

	Rows() uint8
	Cols() uint8
	Serial() string
	String() string
}

// NewDriverFunc creates a closed driver for a protocol family.
type NewDriverFunc func(options ...Option) Driver

var (
	protocolsMx sync.RWMutex
	protocols   = map[string]NewDriverFunc{}
)

// RegisterProtocol makes a protocol family available to NewDriver.
func RegisterProtocol(name string, fn NewDriverFunc) {
	protocolsMx.Lock()
	protocols[name] = fn
	protocolsMx.Unlock()
}

// Protocols returns the names of the registered protocol families.
func Protocols() []string {
	protocolsMx.RLock()
	defer protocolsMx.RUnlock()

	var names []string
	for name := range protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDriver returns a closed driver for the given protocol family.
func NewDriver(protocol string, options ...Option) (Driver, error) {
	protocolsMx.RLock()
	fn, has := protocols[protocol]
	protocolsMx.RUnlock()

	if !has {
		return nil, UnknownProtocolError(protocol)
	}
	return fn(options...), nil
}

// OpenDevice looks up the device class of serial, creates a driver for its protocol
// and opens it at path.
func OpenDevice(path, serial string, options ...Option) (Driver, error) {
	desc, err := LookupDevice(serial)
	if err != nil {
		return nil, err
	}

	drv, err := NewDriver(desc.Protocol, options...)
	if err != nil {
		return nil, err
	}

	if err := drv.Open(path, serial, desc); err != nil {
		drv.Release()
		return nil, err
	}
	return drv, nil
}
