package monome

import (
	"fmt"
	"strings"
)

// Error is returned when setting a light on a device fails.
type Error struct {
	X            uint8
	Y            uint8
	Device       string
	WrappedError error
	Task         string
}

func (e Error) Error() string {
	return fmt.Sprintf("device %q had the following error when trying to set %d/%d in order to %s: %v", e.Device, e.X, e.Y, e.Task, e.WrappedError)
}

func (e Error) Unwrap() error { return e.WrappedError }

// Errors collects the errors of an operation that touches more than one light or device.
type Errors struct {
	Task   string
	Errors []error
}

func (m *Errors) Len() int {
	return len(m.Errors)
}

func (m *Errors) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns m if any error was added and nil otherwise.
func (m *Errors) Err() error {
	if m.Len() == 0 {
		return nil
	}
	return m
}

func (m *Errors) Error() string {
	var msgs []string
	for _, err := range m.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d errors happened while trying to %s: %s", m.Len(), m.Task, strings.Join(msgs, "; "))
}

func (m *Errors) Unwrap() []error { return m.Errors }

// OpenError is returned when the transport of a device could not be opened.
type OpenError struct {
	Path         string
	WrappedError error
}

func (e OpenError) Error() string {
	return fmt.Sprintf("could not open device at %q: %v", e.Path, e.WrappedError)
}

func (e OpenError) Unwrap() error { return e.WrappedError }

// CloseError is returned when the transport of a device could not be closed.
type CloseError struct {
	Device       string
	WrappedError error
}

func (e CloseError) Error() string {
	return fmt.Sprintf("when closing device %q the following error occured: %v", e.Device, e.WrappedError)
}

func (e CloseError) Unwrap() error { return e.WrappedError }

// ReadError is returned when reading from the transport failed.
type ReadError struct {
	Device       string
	WrappedError error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("when reading from device %q the following error occured: %v", e.Device, e.WrappedError)
}

func (e ReadError) Unwrap() error { return e.WrappedError }

// WriteError is returned when a command could not be written completely.
// The driver never retries, that is up to the caller.
type WriteError struct {
	Device       string
	Command      []byte
	Written      int
	WrappedError error
}

func (e WriteError) Error() string {
	if e.WrappedError == nil {
		return fmt.Sprintf("short write to device %q: wrote %d of % X", e.Device, e.Written, e.Command)
	}
	return fmt.Sprintf("when writing % X to device %q the following error occured: %v", e.Command, e.Device, e.WrappedError)
}

func (e WriteError) Unwrap() error { return e.WrappedError }

// StateError is returned when an operation does not fit the lifecycle state of a driver,
// e.g. writing to a driver that is not open.
type StateError struct {
	Device string
	Op     string
	State  string
}

func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s device %q: device is %s", e.Op, e.Device, e.State)
}

// UnsupportedOperationError is returned for operations the protocol cannot express.
// Nothing is sent to the device.
type UnsupportedOperationError struct {
	Op byte
}

func (e UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation 0x%02X", e.Op)
}

// MalformedInputError is returned when the caller passes data the operation cannot use.
type MalformedInputError struct {
	Op     string
	Reason string
}

func (e MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input for %s: %s", e.Op, e.Reason)
}

// UnknownProtocolError is returned when no driver is registered for a protocol name.
type UnknownProtocolError string

func (e UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown protocol %q", string(e))
}

// UnknownDeviceError is returned when a serial number matches no known device.
type UnknownDeviceError string

func (e UnknownDeviceError) Error() string {
	return fmt.Sprintf("unknown device with serial %q", string(e))
}

// ConnectionClosedError is returned when using a connection that has been closed.
type ConnectionClosedError string

func (e ConnectionClosedError) Error() string {
	return fmt.Sprintf("connection to device %q is closed", string(e))
}

// USBContextError is returned when the USB subsystem could not be accessed.
type USBContextError string

func (e USBContextError) Error() string {
	return string(e)
}
