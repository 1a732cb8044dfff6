package monome

import (
	"fmt"
	"strings"

	"github.com/karalabe/gousb/usb"
	"github.com/karalabe/gousb/usbid"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial/enumerator"
)

// USB ids of the FTDI chip the 40h uses for its serial port.
const (
	VENDOR_ID  = "0403"
	PRODUCT_ID = "6001"
)

// Port is a serial port a device might be attached to.
type Port struct {
	Path   string
	Serial string
}

// SerialPorts returns the USB serial ports with the FTDI vendor and product id.
func SerialPorts() ([]Port, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}

	var ports []Port
	for _, d := range details {
		if !d.IsUSB || !strings.EqualFold(d.VID, VENDOR_ID) || !strings.EqualFold(d.PID, PRODUCT_ID) {
			continue
		}
		ports = append(ports, Port{Path: d.Name, Serial: d.SerialNumber})
	}
	return ports, nil
}

// Connections returns all connections that could be made to attached devices.
// Ports whose serial number belongs to no known device are skipped.
func Connections(options ...Option) ([]Connection, error) {
	ports, err := SerialPorts()
	if err != nil {
		return nil, err
	}

	var conns []Connection
	var errs Errors

	for _, p := range ports {
		if _, err := LookupDevice(p.Serial); err != nil {
			log.Debug().Str("path", p.Path).Str("serial", p.Serial).Msg("skipping unknown device")
			continue
		}

		conn, err := Connect(p.Path, p.Serial, options...)
		if err != nil {
			errs.Add(err)
			continue
		}
		conns = append(conns, conn)
	}

	errs.Task = "connect to devices"
	return conns, errs.Err()
}

// USBDevices returns all USB devices for the given vendor and product id.
// If they are empty strings, the defaults are used, which is VENDOR_ID and PRODUCT_ID.
// The caller has to close the devices.
func USBDevices(vendor_id, product_id string) ([]*usb.Device, error) {
	if vendor_id == "" {
		vendor_id = VENDOR_ID
	}
	if product_id == "" {
		product_id = PRODUCT_ID
	}
	ctx, err := usb.NewContext()
	if err != nil {
		return nil, USBContextError(err.Error())
	}

	defer ctx.Close()

	return ctx.ListDevices(func(desc *usb.Descriptor) bool {
		return usb.Class(desc.Class) == 0 && desc.Vendor.String() == vendor_id && desc.Product.String() == product_id
	})
}

// PrintUSBDevice prints the descriptor of a USB device.
func PrintUSBDevice(dev *usb.Device) {
	desc := dev.Descriptor
	fmt.Printf(
		"Bus: %v\nAddress: %v\nVendorID: %v\nProductID: %v\nClass: %s\nDescribe: %s\nSpec: %s\nDevice: %s\n",
		desc.Bus,
		desc.Address,
		desc.Vendor,
		desc.Product,
		usbid.Classify(desc),
		usbid.Describe(desc),
		desc.Spec.String(),
		desc.Device.String(),
	)

	for _, cfg := range desc.Configs {
		fmt.Printf("\t%s\n", cfg.String())

		for _, iff := range cfg.Interfaces {
			fmt.Printf("\t\tinterface: %s (%v)\n", iff.String(), iff.Number)

			for _, ep := range iff.Setups {
				fmt.Printf("\t\t\tsetup: %s (%v) endpoints: %d\n", ep.String(), ep.Number, len(ep.Endpoints))
			}
		}
	}
	fmt.Println()
}
