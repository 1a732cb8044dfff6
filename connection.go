package monome

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler responds to a pressing or releasing action on a button
type Handler interface {

	// Handle is the callback that is called if a button is pressed (down=true)
	// or released (down=false)
	Handle(d Connection, x, y uint8, down bool)
}

// HandlerFunc is a function that acts as a Handler
type HandlerFunc func(d Connection, x, y uint8, down bool)

func (h HandlerFunc) Handle(d Connection, x, y uint8, down bool) {
	h(d, x, y, down)
}

// Connection is a connection to a monome device
type Connection interface {
	// Close closes the connection to the monome. It may be called from a Handler.
	Close() error

	// IsClosed returns wether the connection is closed
	IsClosed() bool

	// SetHandler set the active handler for the device
	SetHandler(Handler)

	// StartListering starts listening for button events. For errors the given errHandler is called
	StartListening(errHandler func(error))

	// StopListening stops listening for button events
	StopListening()

	Device
}

var _ Connection = &connection{}

// maxEventsPerPoll bounds how many events one ReadMessage dispatches,
// so writers get the driver in between.
const maxEventsPerPoll = 32

var defaultPollInterval = 4 * time.Millisecond

type connection struct {
	drv Driver

	// drvMx serializes all access to drv, the driver itself is not safe for concurrent use.
	drvMx sync.Mutex

	h                Handler
	closed           bool
	mx               sync.RWMutex
	listeningStopped chan bool
	pollInterval     time.Duration
	doneChan         chan bool
	log              zerolog.Logger
}

// NewConnection wraps an open driver into a Connection.
func NewConnection(drv Driver, options ...Option) Connection {
	return newConnection(drv, newSettings(options...))
}

func newConnection(drv Driver, s *settings) *connection {
	return &connection{
		drv:          drv,
		pollInterval: s.pollInterval,
		log:          s.logger.With().Str("device", drv.String()).Logger(),
	}
}

// Connect opens the device with the given serial number at path, clears it and returns a connection to it.
func Connect(path, serial string, options ...Option) (Connection, error) {
	s := newSettings(options...)

	drv, err := OpenDevice(path, serial, options...)
	if err != nil {
		return nil, err
	}

	if _, err := drv.Clear(ClearOff); err != nil {
		drv.Release()
		return nil, err
	}

	return newConnection(drv, s), nil
}

func (m *connection) Rows() uint8    { return m.drv.Rows() }
func (m *connection) Cols() uint8    { return m.drv.Cols() }
func (m *connection) String() string { return m.drv.String() }

func (m *connection) use(fn func(d Driver) error) error {
	if m.IsClosed() {
		return ConnectionClosedError(m.String())
	}
	m.drvMx.Lock()
	defer m.drvMx.Unlock()
	return fn(m.drv)
}

func (m *connection) Switch(x, y uint8, on bool) error {
	err := m.use(func(d Driver) error { return d.SetLED(x, y, on) })
	if err == nil {
		return nil
	}

	var e Error
	e.Device = m.String()
	e.X = x
	e.Y = y
	e.WrappedError = err
	if on {
		e.Task = "switch on"
	} else {
		e.Task = "switch off"
	}
	return e
}

func (m *connection) Set(x, y, brightness uint8) error {
	err := m.Switch(x, y, brightness > 0)
	if err == nil {
		return nil
	}
	e := err.(Error)
	e.Task = fmt.Sprintf("set brightness to %d", brightness)
	return e
}

func (m *connection) Intensity(level uint8) error {
	return m.use(func(d Driver) error { return d.SetIntensity(level) })
}

func (m *connection) Frame(xOff uint8, frame [8]byte) error {
	return m.use(func(d Driver) error { return d.WriteFrame(xOff, 0, frame) })
}

// ReadMessage dispatches all pending events to the handler.
func (m *connection) ReadMessage() error {
	for i := 0; i < maxEventsPerPoll; i++ {
		var (
			e  Event
			ok bool
		)
		err := m.use(func(d Driver) (err error) {
			e, ok, err = d.NextEvent()
			return
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		m.Handle(m, e.X, e.Y, e.Down())
	}
	return nil
}

func (m *connection) StartListening(errHandler func(error)) {
	m.mx.Lock()
	if m.closed || m.doneChan != nil {
		m.mx.Unlock()
		return
	}
	done, stopped := make(chan bool), make(chan bool)
	m.doneChan, m.listeningStopped = done, stopped
	m.mx.Unlock()

	go m.poll(errHandler, m, done, stopped)
}

func (m *connection) poll(errHandler func(error), d Connection, done, stopped chan bool) {
	err := m.listen(d, done)
	close(stopped)

	if err != nil {
		m.log.Warn().Err(err).Msg("stop listening, because could not read from device")
		if errHandler != nil {
			errHandler(err)
		}
	}
}

func (m *connection) listen(d Connection, done chan bool) error {
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.ReadMessage(); err != nil {
				if stopping(done) {
					return nil
				}
				return err
			}
		case <-done:
			return nil
		}
	}
}

func stopping(done chan bool) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}

// StopListening waits for the poll loop to end. It must not be called from a Handler.
func (m *connection) StopListening() {
	if stopped := m.signalStop(); stopped != nil {
		<-stopped
	}
}

// signalStop tells the poll loop to end and returns the channel that is closed when it did.
func (m *connection) signalStop() (stopped chan bool) {
	m.mx.Lock()
	defer m.mx.Unlock()

	if m.doneChan == nil {
		return nil
	}
	close(m.doneChan)
	stopped = m.listeningStopped
	m.doneChan, m.listeningStopped = nil, nil
	return stopped
}

func (m *connection) IsClosed() bool {
	m.mx.RLock()
	closed := m.closed
	m.mx.RUnlock()
	return closed
}

// Close does not wait for the poll loop. The loop ends on its own with
// the next tick, without reporting the closed connection to the errHandler.
func (m *connection) Close() (err error) {
	if m.IsClosed() {
		return nil
	}

	m.signalStop()
	m.mx.Lock()
	m.closed = true
	m.mx.Unlock()

	m.drvMx.Lock()
	defer m.drvMx.Unlock()

	err = m.drv.Close()
	m.drv.Release()
	return err
}

func (m *connection) SetHandler(h Handler) {
	m.mx.Lock()
	m.h = h
	m.mx.Unlock()
}

func (m *connection) Handle(d Connection, x, y uint8, down bool) {
	m.mx.RLock()
	h := m.h
	m.mx.RUnlock()

	if h != nil {
		h.Handle(d, x, y, down)
		return
	}
	action := "release"
	if down {
		action = "press"
	}
	m.log.Info().Uint8("x", x).Uint8("y", y).Msgf("unhandled key %s", action)
}
