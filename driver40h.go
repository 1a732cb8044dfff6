package monome

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Protocol40h is the name the 40h protocol family is registered under.
const Protocol40h = "40h"

func init() {
	RegisterProtocol(Protocol40h, New40h)
}

type driverState uint8

const (
	stateNew driverState = iota
	stateOpen
	stateClosed
	stateReleased
)

func (s driverState) String() string {
	switch s {
	case stateNew:
		return "not open"
	case stateOpen:
		return "open"
	case stateClosed:
		return "closed"
	case stateReleased:
		return "released"
	}
	return "invalid"
}

var _ Driver = &driver40h{}

type driver40h struct {
	geometry
	serial string
	path   string
	opener Opener
	tr     Transport
	state  driverState
	log    zerolog.Logger
}

// New40h returns a closed driver for the 40h protocol.
func New40h(options ...Option) Driver {
	s := newSettings(options...)
	return &driver40h{
		geometry: geometry{orientation: s.orientation},
		opener:   s.opener,
		log:      s.logger,
	}
}

func (d *driver40h) Rows() uint8    { return d.rows }
func (d *driver40h) Cols() uint8    { return d.cols }
func (d *driver40h) Serial() string { return d.serial }

func (d *driver40h) String() string {
	if d.serial == "" {
		return "monome40h"
	}
	return d.serial
}

func (d *driver40h) Open(path, serial string, desc DeviceDescriptor) error {
	if d.state != stateNew {
		return StateError{Device: d.String(), Op: "open", State: d.state.String()}
	}

	if err := desc.validate(); err != nil {
		return err
	}

	tr, err := d.opener(path)
	if err != nil {
		return OpenError{Path: path, WrappedError: err}
	}

	d.rows = desc.Rows
	d.cols = desc.Cols
	d.serial = serial
	d.path = path
	d.tr = tr
	d.state = stateOpen
	d.log = d.log.With().Str("serial", serial).Str("path", path).Logger()

	d.log.Debug().
		Uint8("rows", d.rows).
		Uint8("cols", d.cols).
		Stringer("rotation", d.orientation.Rotation()).
		Msg("opened 40h device")
	return nil
}

func (d *driver40h) Close() error {
	if d.state != stateOpen {
		return nil
	}
	d.state = stateClosed

	if err := d.tr.Close(); err != nil {
		return CloseError{Device: d.String(), WrappedError: err}
	}
	d.log.Debug().Msg("closed 40h device")
	return nil
}

// Release drops the transport. An open driver is closed first.
func (d *driver40h) Release() {
	if d.state == stateOpen {
		if err := d.Close(); err != nil {
			d.log.Debug().Err(err).Msg("close on release failed")
		}
	}
	d.tr = nil
	d.opener = nil
	d.state = stateReleased
}

func (d *driver40h) checkOpen(op string) error {
	if d.state != stateOpen {
		return StateError{Device: d.String(), Op: op, State: d.state.String()}
	}
	return nil
}

func (d *driver40h) write(cmd command) error {
	n, err := d.tr.Write(cmd[:])
	if err != nil || n != len(cmd) {
		return WriteError{Device: d.String(), Command: cmd[:], Written: n, WrappedError: err}
	}
	return nil
}

// Clear writes one empty row per row of the grid. The status is not used:
// the 40h has no single command for "all on", so the lights always end up off.
func (d *driver40h) Clear(status ClearStatus) (int, error) {
	if err := d.checkOpen("clear"); err != nil {
		return 0, err
	}

	var written int
	for _, cmd := range d.clearCommands() {
		if err := d.write(cmd); err != nil {
			return written, err
		}
		written += len(cmd)
	}
	return written, nil
}

func (d *driver40h) SetIntensity(level uint8) error {
	if err := d.checkOpen("set intensity of"); err != nil {
		return err
	}
	return d.write(encodeIntensity(level))
}

// SetMode does nothing. The 40h splits test mode (op40hLEDTest) and shutdown
// (op40hShutdown) into two separate commands, so a mode can not be set with one
// command and this driver keeps no state to track it.
func (d *driver40h) SetMode(mode Mode) error {
	if err := d.checkOpen("set mode of"); err != nil {
		return err
	}
	return nil
}

func (d *driver40h) SetLED(x, y uint8, on bool) error {
	if err := d.checkOpen("set led of"); err != nil {
		return err
	}
	return d.write(d.encodeLED(x, y, on))
}

func (d *driver40h) writeLine(op byte, name string, addr uint8, data []byte) error {
	if err := d.checkOpen(name); err != nil {
		return err
	}

	if len(data) == 0 {
		return MalformedInputError{Op: name, Reason: "no data"}
	}

	cmd, err := d.encodeLine(op, addr, data[0])
	if err != nil {
		return err
	}
	return d.write(cmd)
}

// WriteRow sends data[0] as the row. The 40h has a single quadrant, offset is ignored.
func (d *driver40h) WriteRow(row, offset uint8, data []byte) error {
	return d.writeLine(op40hLEDRow, "write row", row, data)
}

// WriteColumn sends data[0] as the column. The 40h has a single quadrant, offset is ignored.
func (d *driver40h) WriteColumn(col, offset uint8, data []byte) error {
	return d.writeLine(op40hLEDCol, "write column", col, data)
}

// WriteFrame applies the frame transform of the orientation and writes the
// resulting frame row by row. All rows are attempted even if one fails.
func (d *driver40h) WriteFrame(xOff, yOff uint8, frame [8]byte) error {
	if err := d.checkOpen("write frame"); err != nil {
		return err
	}

	_, _, buf := d.orientation.transformFrame(xOff, yOff, frame)

	var errs Errors
	for i := range buf {
		errs.Add(d.writeLine(op40hLEDRow, "write frame", uint8(i), buf[i:i+1]))
	}

	errs.Task = fmt.Sprintf("write frame at %d/%d", xOff, yOff)
	return errs.Err()
}

// NextEvent does a single read of one message. A short read yields no event.
func (d *driver40h) NextEvent() (Event, bool, error) {
	if err := d.checkOpen("read from"); err != nil {
		return Event{}, false, err
	}

	var buf command
	n, err := d.tr.Read(buf[:])
	if err != nil && !errors.Is(err, io.EOF) {
		return Event{}, false, ReadError{Device: d.String(), WrappedError: err}
	}

	if n < len(buf) {
		return Event{}, false, nil
	}

	e, ok := d.decodeEvent(buf)
	if !ok {
		d.log.Debug().Hex("message", buf[:]).Msg("ignoring message")
	}
	return e, ok, nil
}
