package monome

import (
	"fmt"
	"sort"
)

type sortByCol [][2]int

func (c sortByCol) Len() int {
	return len(c)
}

func (c sortByCol) Less(a, b int) bool {
	return c[a][0] < c[b][0]
}

func (c sortByCol) Swap(a, b int) {
	c[a], c[b] = c[b], c[a]
}

var _ Connection = &rowConnection{}

type rowConnection struct {
	devices      []Connection
	colToDev     sortByCol
	devToCol     map[int]uint8
	devNameToDev map[string]int
	name         string
	cols         uint8
	rows         uint8
}

// RowConnection creates a unified connection out of a row of connections.
// The order is from left to right.
// The number of columns is the sum of the columns of the devices.
// The number of rows is the smallest number of rows of any device.
func RowConnection(name string, connections ...Connection) Connection {
	m := &rowConnection{
		devices:      connections,
		devToCol:     map[int]uint8{},
		devNameToDev: map[string]int{},
		name:         name,
	}
	if m.name == "" {
		m.name = "monome row"
	}
	m.calcOffsets()
	return m
}

func (m *rowConnection) calcOffsets() {
	// find out the starting column for the device
	var startCol int
	var rows uint8

	for i, dev := range m.devices {
		m.colToDev = append(m.colToDev, [2]int{startCol, i})
		m.devToCol[i] = uint8(startCol)
		m.devNameToDev[dev.String()] = i
		startCol += int(dev.Cols())
		if dev.Rows() < rows || rows == 0 {
			rows = dev.Rows()
		}
	}
	m.cols = uint8(startCol)
	m.rows = rows
	sort.Sort(m.colToDev)
}

// Rows returns the minimum of rows, each device has
func (m *rowConnection) Rows() uint8 {
	return m.rows
}

// Cols is the sum of the cols of the devices
func (m *rowConnection) Cols() uint8 {
	return m.cols
}

// deviceAt returns the index of the device that holds column x and the column on that device.
func (m *rowConnection) deviceAt(x uint8) (dev int, col uint8) {
	var start int
	for _, mp := range m.colToDev {
		if mp[0] > int(x) {
			break
		}
		start = mp[0]
		dev = mp[1]
	}
	return dev, x - uint8(start)
}

func (m *rowConnection) Switch(x, y uint8, on bool) error {
	var brightness uint8
	if on {
		brightness = 15
	}
	err := m.Set(x, y, brightness)
	if err == nil {
		return nil
	}
	e, ok := err.(Error)
	if !ok {
		return err
	}
	if on {
		e.Task = fmt.Sprintf("switch on (%d/%d in row device)", x, y)
	} else {
		e.Task = fmt.Sprintf("switch off (%d/%d in row device)", x, y)
	}
	return e
}

// Set sets the lights to the corresponding device
func (m *rowConnection) Set(x, y, brightness uint8) error {
	dev, col := m.deviceAt(x)
	err := m.devices[dev].Set(col, y, brightness)
	if err == nil {
		return nil
	}

	e, ok := err.(Error)
	if !ok {
		return err
	}
	e.Task = fmt.Sprintf("set brightness to %d (%d/%d in row device)", brightness, x, y)
	return e
}

// Intensity sets the intensity on all devices
func (m *rowConnection) Intensity(level uint8) error {
	var errs Errors
	for _, dev := range m.devices {
		errs.Add(dev.Intensity(level))
	}
	errs.Task = fmt.Sprintf("set intensity to %d (row device)", level)
	return errs.Err()
}

// Frame writes the frame to the device starting at column xOff
func (m *rowConnection) Frame(xOff uint8, frame [8]byte) error {
	dev, col := m.deviceAt(xOff)
	return m.devices[dev].Frame(col, frame)
}

func (m *rowConnection) SetHandler(h Handler) {
	for _, dev := range m.devices {
		dev.SetHandler(HandlerFunc(func(d Connection, x, y uint8, down bool) {
			h.Handle(m, m.devToCol[m.devNameToDev[d.String()]]+x, y, down)
		}))
	}
}

func (m *rowConnection) StartListening(errHandler func(error)) {
	for _, dev := range m.devices {
		dev.StartListening(errHandler)
	}
}

func (m *rowConnection) StopListening() {
	for _, dev := range m.devices {
		dev.StopListening()
	}
}

func (m *rowConnection) String() string {
	return fmt.Sprintf("%s%d", m.name, NumButtons(m))
}

// ReadMessage reads from every device of the row
func (m *rowConnection) ReadMessage() error {
	var errs Errors
	for _, dev := range m.devices {
		errs.Add(dev.ReadMessage())
	}
	errs.Task = "read messages (row device)"
	return errs.Err()
}

// Close closes all devices
func (m *rowConnection) Close() error {
	var errs Errors
	for _, dev := range m.devices {
		errs.Add(dev.Close())
	}
	errs.Task = "close row device"
	return errs.Err()
}

// IsClosed only returns true, if all devices are closed
func (m *rowConnection) IsClosed() bool {
	for _, dev := range m.devices {
		if !dev.IsClosed() {
			return false
		}
	}
	return true
}
