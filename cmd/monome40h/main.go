package main

import (
	"fmt"
	"os"
	"os/signal"

	monome "github.com/gomonome/monome40h"
	"github.com/metakeule/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	sigchan = make(chan os.Signal, 10)

	cfg = config.MustNew("monome40h", "0.1.0", "drive 40h grid controllers")

	argDevice   = cfg.NewString("device", "serial port of the device, e.g. /dev/ttyUSB0 (default: all found devices)")
	argSerial   = cfg.NewString("serial", "serial number of the device given with --device", config.Default("m40h0"))
	argRotation = cfg.NewString("rotation", "rotation of the devices in degrees (0, 90, 180, 270)", config.Default("0"))
	argLog      = cfg.NewString("log", "log level", config.Default("info"))

	listCommand = cfg.MustCommand("list", "list serial ports that might be 40h devices")
	usbCommand  = cfg.MustCommand("usb", "print the USB descriptors of FTDI devices")

	rowCommand = cfg.MustCommand("row", "creates a row connection, based on all devices that could be found")
	argRowName = rowCommand.NewString("name", "name of the row device", config.Default("ROW"))
)

func options() ([]monome.Option, error) {
	rot, err := monome.ParseRotation(argRotation.Get())
	if err != nil {
		return nil, err
	}
	o, err := monome.NewOrientation(rot)
	if err != nil {
		return nil, err
	}
	return []monome.Option{monome.WithOrientation(o)}, nil
}

func connections() ([]monome.Connection, error) {
	opts, err := options()
	if err != nil {
		return nil, err
	}

	if dev := argDevice.Get(); dev != "" {
		conn, err := monome.Connect(dev, argSerial.Get(), opts...)
		if err != nil {
			return nil, err
		}
		return []monome.Connection{conn}, nil
	}

	conns, err := monome.Connections(opts...)
	if err != nil && len(conns) == 0 {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Msg("some devices could not be connected")
	}
	if len(conns) == 0 {
		return nil, fmt.Errorf("no monome devices found")
	}
	return conns, nil
}

func setup(conn monome.Connection) error {
	if err := monome.Greeter(conn); err != nil {
		return err
	}
	conn.SetHandler(monome.HandlerFunc(Handle))
	conn.StartListening(func(err error) {
		// aborting on io error
		sigchan <- os.Interrupt
	})
	return nil
}

func list() error {
	ports, err := monome.SerialPorts()
	if err != nil {
		return err
	}
	for _, p := range ports {
		name := "unknown"
		if desc, err := monome.LookupDevice(p.Serial); err == nil {
			name = fmt.Sprintf("%s %dx%d", desc.Protocol, desc.Cols, desc.Rows)
		}
		fmt.Printf("%s\t%s\t%s\n", p.Path, p.Serial, name)
	}
	return nil
}

func printUSB() error {
	devs, err := monome.USBDevices("", "")
	if err != nil {
		return err
	}
	for _, dev := range devs {
		monome.PrintUSBDevice(dev)
		dev.Close()
	}
	return nil
}

func run() error {
	err := cfg.Run()

	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(argLog.Get())
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch cfg.ActiveCommand() {
	case listCommand:
		return list()
	case usbCommand:
		return printUSB()
	}

	conns, err := connections()
	if err != nil {
		return err
	}

	if cfg.ActiveCommand() == rowCommand {
		conns = []monome.Connection{monome.RowConnection(argRowName.Get(), conns...)}
	}

	for _, conn := range conns {
		if err := setup(conn); err != nil {
			log.Error().Err(err).Str("device", conn.String()).Msg("setup failed")
		}
	}

	// listen for ctrl+c
	signal.Notify(sigchan, os.Interrupt)

	// interrupt has happend
	<-sigchan

	fmt.Fprint(os.Stdout, "\ninterrupted, cleaning up...")
	for _, conn := range conns {
		conn.Close()
	}
	fmt.Fprint(os.Stdout, "done\n")
	return nil
}

func main() {
	err := run()

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// highlight the pressed buttons
func Handle(c monome.Connection, x, y uint8, down bool) {
	action := "released"
	if down {
		action = "pressed"
	}
	log.Info().Str("device", c.String()).Uint8("x", x).Uint8("y", y).Msg(action)
	err := c.Switch(x, y, down)
	if err != nil {
		log.Error().Err(err).Msg("switch failed")
	}
}
