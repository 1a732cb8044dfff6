package monome

import (
	"fmt"
	"math/bits"
	"strconv"
)

// Rotation is the angle the device is mounted at, clockwise.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "0"
	case Rotate90:
		return "90"
	case Rotate180:
		return "180"
	case Rotate270:
		return "270"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// ParseRotation parses a rotation given in degrees ("0", "90", "180" or "270").
func ParseRotation(s string) (Rotation, error) {
	deg, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid rotation %q: %w", s, err)
	}
	switch deg {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return 0, fmt.Errorf("invalid rotation %q: must be one of 0, 90, 180, 270", s)
}

// FrameTransform remaps a full 8x8 frame (and its quadrant offset) to the physical
// layout of a device before the frame is split into row writes.
type FrameTransform func(xOff, yOff uint8, frame [8]byte) (uint8, uint8, [8]byte)

// Orientation describes how logical grid coordinates map onto the mounted device.
// It is built once by NewOrientation and never changes afterwards.
type Orientation struct {
	rotation Rotation
	rowRev   bool
	colRev   bool
	swap     bool
	frame    FrameTransform
}

// OrientationOption customizes an Orientation at construction time.
type OrientationOption func(*Orientation)

// WithFrameTransform installs a frame transform that is applied by WriteFrame.
func WithFrameTransform(fn FrameTransform) OrientationOption {
	return func(o *Orientation) {
		o.frame = fn
	}
}

// NewOrientation returns the orientation for the given rotation.
// The bit reversal and axis swap flags follow from the rotation:
//
//	  0: none
//	 90: row/col swap, column bits reversed
//	180: row bits reversed, column bits reversed
//	270: row/col swap, row bits reversed
func NewOrientation(r Rotation, opts ...OrientationOption) (Orientation, error) {
	var o = Orientation{rotation: r}

	switch r {
	case Rotate0:
	case Rotate90:
		o.swap, o.colRev = true, true
	case Rotate180:
		o.rowRev, o.colRev = true, true
	case Rotate270:
		o.swap, o.rowRev = true, true
	default:
		return Orientation{}, fmt.Errorf("unknown rotation %v", r)
	}

	for _, opt := range opts {
		opt(&o)
	}
	return o, nil
}

// MustOrientation is like NewOrientation but panics on an unknown rotation.
func MustOrientation(r Rotation, opts ...OrientationOption) Orientation {
	o, err := NewOrientation(r, opts...)
	if err != nil {
		panic(err.Error())
	}
	return o
}

func (o Orientation) Rotation() Rotation  { return o.rotation }
func (o Orientation) RowBitReverse() bool { return o.rowRev }
func (o Orientation) ColBitReverse() bool { return o.colRev }
func (o Orientation) RowColSwap() bool    { return o.swap }

// HasFrameTransform reports whether WriteFrame remaps frames for this orientation.
func (o Orientation) HasFrameTransform() bool { return o.frame != nil }

// transformFrame applies the frame transform, if any. The frame is passed by value.
func (o Orientation) transformFrame(xOff, yOff uint8, frame [8]byte) (uint8, uint8, [8]byte) {
	if o.frame == nil {
		return xOff, yOff, frame
	}
	return o.frame(xOff, yOff, frame)
}

// rotate maps logical coordinates to device coordinates.
// All arithmetic is modulo 256, so rotate and unrotate are exact inverses for any input.
func (o Orientation) rotate(rows, cols, x, y uint8) (uint8, uint8) {
	switch o.rotation {
	case Rotate90:
		return rows - 1 - y, x
	case Rotate180:
		return cols - 1 - x, rows - 1 - y
	case Rotate270:
		return y, cols - 1 - x
	}
	return x, y
}

// unrotate maps device coordinates back to logical coordinates.
func (o Orientation) unrotate(rows, cols, x, y uint8) (uint8, uint8) {
	switch o.rotation {
	case Rotate90:
		return y, rows - 1 - x
	case Rotate180:
		return cols - 1 - x, rows - 1 - y
	case Rotate270:
		return cols - 1 - y, x
	}
	return x, y
}

// ReverseByte reverses the bit order of b (bit 0 <-> bit 7, bit 1 <-> bit 6, ...).
func ReverseByte(b byte) byte {
	return bits.Reverse8(b)
}
