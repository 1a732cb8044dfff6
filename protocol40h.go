package monome

// opcodes of the 40h serial protocol. Every message is two bytes long.
// Row and column writes differ by exactly 0x10, an axis swap toggles between them.
const (
	op40hButtonUp   byte = 0x00
	op40hButtonDown byte = 0x01
	op40hAuxInput   byte = 0x10
	op40hLEDOff     byte = 0x20
	op40hLEDOn      byte = 0x21
	op40hIntensity  byte = 0x30
	op40hLEDTest    byte = 0x40
	op40hADCEnable  byte = 0x50
	op40hShutdown   byte = 0x60
	op40hLEDRow     byte = 0x70
	op40hLEDCol     byte = 0x80
)

// command is a single 2-byte wire message.
type command [2]byte

// geometry is what the encoder needs to know about a session.
type geometry struct {
	rows, cols  uint8
	orientation Orientation
}

func (g geometry) encodeLED(x, y uint8, on bool) command {
	x, y = g.orientation.rotate(g.rows, g.cols, x, y)
	x &= 0x7
	y &= 0x7

	op := op40hLEDOff
	if on {
		op = op40hLEDOn
	}
	return command{op, x<<4 | y}
}

// encodeLine builds a row or column write. The address is rotated as the pair
// (addr, addr): rows take the rotated x, columns the rotated y.
func (g geometry) encodeLine(op byte, addr uint8, data byte) (command, error) {
	xaddr, yaddr := g.orientation.rotate(g.rows, g.cols, addr, addr)

	var payload byte
	switch op {
	case op40hLEDRow:
		addr = xaddr
		payload = data
		if g.orientation.RowBitReverse() {
			payload = ReverseByte(data)
		}
	case op40hLEDCol:
		addr = yaddr
		payload = data
		if g.orientation.ColBitReverse() {
			payload = ReverseByte(data)
		}
	default:
		return command{}, UnsupportedOperationError{Op: op}
	}

	if g.orientation.RowColSwap() {
		if op == op40hLEDRow {
			op = op40hLEDCol
		} else {
			op = op40hLEDRow
		}
	}

	return command{op | addr&0x7, payload}, nil
}

func encodeIntensity(level uint8) command {
	return command{op40hIntensity, level}
}

// clearCommands switches every row off. The payload is zero, so no rotation is needed.
func (g geometry) clearCommands() []command {
	cmds := make([]command, 0, g.rows)
	for i := uint8(0); i < g.rows; i++ {
		cmds = append(cmds, command{op40hLEDRow | i&0x7, 0})
	}
	return cmds
}

// decodeEvent parses one message read from the device. Aux input and unknown
// codes are not events.
func (g geometry) decodeEvent(buf command) (Event, bool) {
	var e Event

	switch buf[0] {
	case op40hButtonDown:
		e.Kind = ButtonDown
	case op40hButtonUp:
		e.Kind = ButtonUp
	case op40hAuxInput:
		// aux inputs (ADC) are not reported yet
		return Event{}, false
	default:
		return Event{}, false
	}

	e.X, e.Y = g.orientation.unrotate(g.rows, g.cols, buf[1]>>4, buf[1]&0xF)
	return e, true
}
