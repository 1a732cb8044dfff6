package monome

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type press struct {
	conn string
	x, y uint8
	down bool
}

func testConnection(t *testing.T, serial string) (Connection, *fakeTransport) {
	t.Helper()
	f := &fakeTransport{}
	opts := []Option{WithOpener(f.opener()), WithLogger(zerolog.Nop()), PollInterval(time.Millisecond)}

	conn, err := Connect("/dev/ttyUSB0", serial, opts...)
	require.NoError(t, err)
	// Connect clears the device
	require.Len(t, f.commands(), 8)
	f.reset()
	return conn, f
}

func TestConnectionSwitch(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	require.NoError(t, conn.Switch(1, 2, true))
	require.NoError(t, conn.Set(1, 2, 0))
	require.NoError(t, conn.Set(5, 6, 9))
	assert.Equal(t, []command{{0x21, 0x12}, {0x20, 0x12}, {0x21, 0x56}}, f.commands())
	assert.Equal(t, 64, NumButtons(conn))
}

func TestConnectionSetError(t *testing.T) {
	conn, f := testConnection(t, "m40h1")
	f.failAt = 1
	f.writeErr = errBroken

	err := conn.Set(1, 2, 7)
	var e Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "set brightness to 7", e.Task)
	assert.Equal(t, "m40h1", e.Device)
	assert.ErrorIs(t, err, errBroken)
}

func TestConnectionIntensityAndFrame(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	require.NoError(t, conn.Intensity(4))
	require.NoError(t, conn.Frame(0, [8]byte{0xFF}))

	cmds := f.commands()
	require.Len(t, cmds, 9)
	assert.Equal(t, command{0x30, 0x04}, cmds[0])
	assert.Equal(t, command{0x70, 0xFF}, cmds[1])
}

func TestConnectionReadMessage(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	var got []press
	conn.SetHandler(HandlerFunc(func(c Connection, x, y uint8, down bool) {
		got = append(got, press{c.String(), x, y, down})
	}))

	f.queue([]byte{0x01, 0x34}, []byte{0x10, 0x00}, []byte{0x00, 0x34})
	require.NoError(t, conn.ReadMessage())
	assert.Equal(t, []press{{"m40h1", 3, 4, true}}, got)

	// the aux message ended the first poll, the release comes with the next one
	require.NoError(t, conn.ReadMessage())
	assert.Equal(t, []press{{"m40h1", 3, 4, true}, {"m40h1", 3, 4, false}}, got)
}

func TestConnectionListening(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	presses := make(chan press, 4)
	conn.SetHandler(HandlerFunc(func(c Connection, x, y uint8, down bool) {
		presses <- press{c.String(), x, y, down}
		assert.NoError(t, c.Switch(x, y, down))
	}))

	conn.StartListening(func(err error) {
		t.Errorf("unexpected error: %v", err)
	})
	f.queue([]byte{0x01, 0x25})

	select {
	case p := <-presses:
		assert.Equal(t, press{"m40h1", 2, 5, true}, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no press dispatched")
	}

	conn.StopListening()
	assert.Equal(t, []command{{0x21, 0x25}}, f.commands())

	require.NoError(t, conn.Close())
	assert.True(t, conn.IsClosed())
	assert.Equal(t, 1, f.closed)
}

func TestConnectionListeningStopsOnReadError(t *testing.T) {
	conn, f := testConnection(t, "m40h1")
	f.readErr = errBroken

	errs := make(chan error, 1)
	conn.StartListening(func(err error) { errs <- err })

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, errBroken)
	case <-time.After(2 * time.Second):
		t.Fatal("read error not reported")
	}

	conn.StopListening()
	require.NoError(t, conn.Close())
}

func TestConnectionCloseFromHandler(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	closed := make(chan error, 1)
	conn.SetHandler(HandlerFunc(func(c Connection, x, y uint8, down bool) {
		closed <- c.Close()
	}))
	conn.StartListening(func(err error) {
		t.Errorf("unexpected error: %v", err)
	})
	f.queue([]byte{0x01, 0x25}, []byte{0x00, 0x25})

	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("close from handler did not return")
	}

	assert.True(t, conn.IsClosed())
	assert.Equal(t, 1, f.closed)

	// the release is not dispatched once the connection is closed
	conn.StopListening()
	assert.Len(t, closed, 0)
}

func TestConnectionClosed(t *testing.T) {
	conn, f := testConnection(t, "m40h1")
	f.closeErr = errBroken

	var ce CloseError
	require.ErrorAs(t, conn.Close(), &ce)
	require.NoError(t, conn.Close())

	err := conn.Switch(0, 0, true)
	assert.ErrorIs(t, err, ConnectionClosedError("m40h1"))
	assert.ErrorIs(t, conn.ReadMessage(), ConnectionClosedError("m40h1"))
	assert.Empty(t, f.written)
}

func TestSwitchAllAndFillAll(t *testing.T) {
	conn, f := testConnection(t, "m40h1")

	require.NoError(t, SwitchAll(conn, true))
	assert.Len(t, f.commands(), 64)

	f.reset()
	require.NoError(t, FillAll(conn, false))
	cmds := f.commands()
	require.Len(t, cmds, 8)
	for _, cmd := range cmds {
		assert.Equal(t, byte(0x00), cmd[1])
	}
}
