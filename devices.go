package monome

import (
	"fmt"
)

// DeviceDescriptor describes a class of devices: its grid size and the protocol it speaks.
type DeviceDescriptor struct {
	// Name is a printf pattern for serial numbers of the device class, e.g. "m40h%d".
	Name     string
	Protocol string
	Rows     uint8
	Cols     uint8
}

func (d DeviceDescriptor) validate() error {
	if d.Rows == 0 || d.Rows > 8 || d.Cols == 0 || d.Cols > 8 {
		return MalformedInputError{
			Op:     "open",
			Reason: fmt.Sprintf("grid of %dx%d does not fit the 8x8 address space", d.Cols, d.Rows),
		}
	}
	return nil
}

// Devices are the known device classes speaking the 40h protocol.
// The monome 64 ("m64-%d") speaks the series protocol and is not listed.
var Devices = []DeviceDescriptor{
	{Name: "m40h%d", Protocol: Protocol40h, Rows: 8, Cols: 8},
	{Name: "a40h-%d", Protocol: Protocol40h, Rows: 8, Cols: 8},
}

// LookupDevice finds the device class for a serial number.
// A pattern without a number verb never matches.
func LookupDevice(serial string) (DeviceDescriptor, error) {
	for _, d := range Devices {
		var n uint
		if _, err := fmt.Sscanf(serial, d.Name, &n); err == nil {
			return d, nil
		}
	}
	return DeviceDescriptor{}, UnknownDeviceError(serial)
}
