package monome

import (
	"errors"
	"sync"
)

// fakeTransport records writes and plays back scripted reads.
// An exhausted read script reads nothing, like a serial port running into its timeout.
type fakeTransport struct {
	mx sync.Mutex

	written  []byte
	writes   int
	failAt   int // fail the write with this 1-based index, 0 never fails
	writeErr error
	short    bool

	reads   [][]byte
	readErr error

	closed   int
	closeErr error
}

func (f *fakeTransport) Write(b []byte) (int, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	f.writes++
	if f.failAt > 0 && f.writes >= f.failAt {
		return 0, f.writeErr
	}
	if f.short {
		f.written = append(f.written, b[:1]...)
		return 1, nil
	}
	f.written = append(f.written, b...)
	return len(b), nil
}

func (f *fakeTransport) Read(b []byte) (int, error) {
	f.mx.Lock()
	defer f.mx.Unlock()

	if len(f.reads) == 0 {
		return 0, f.readErr
	}
	chunk := f.reads[0]
	n := copy(b, chunk)
	if n < len(chunk) {
		f.reads[0] = chunk[n:]
	} else {
		f.reads = f.reads[1:]
	}
	return n, nil
}

func (f *fakeTransport) Close() error {
	f.mx.Lock()
	defer f.mx.Unlock()
	f.closed++
	return f.closeErr
}

func (f *fakeTransport) queue(chunks ...[]byte) {
	f.mx.Lock()
	f.reads = append(f.reads, chunks...)
	f.mx.Unlock()
}

func (f *fakeTransport) commands() []command {
	f.mx.Lock()
	defer f.mx.Unlock()

	var cmds []command
	for i := 0; i+1 < len(f.written); i += 2 {
		cmds = append(cmds, command{f.written[i], f.written[i+1]})
	}
	return cmds
}

func (f *fakeTransport) reset() {
	f.mx.Lock()
	f.written = nil
	f.mx.Unlock()
}

func (f *fakeTransport) opener() Opener {
	return func(path string) (Transport, error) {
		return f, nil
	}
}

var errBroken = errors.New("broken pipe")

func failingOpener(path string) (Transport, error) {
	return nil, errBroken
}

var desc8x8 = DeviceDescriptor{Name: "m40h%d", Protocol: Protocol40h, Rows: 8, Cols: 8}
