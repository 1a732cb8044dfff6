package monome

import (
	"fmt"
	"time"
)

// NumButtons returns the available number of buttons
func NumButtons(dev Device) int {
	return int(dev.Rows()) * int(dev.Cols())
}

// SwitchAll switches all lights on or off
func SwitchAll(m Device, on bool) error {
	var errs Errors
	rows := m.Rows()
	cols := m.Cols()
	for y := uint8(0); y < rows; y++ {
		for x := uint8(0); x < cols; x++ {
			errs.Add(m.Switch(x, y, on))
		}
	}

	if on {
		errs.Task = "switch all on"
	} else {
		errs.Task = "switch all off"
	}
	return errs.Err()
}

// FillAll sets all lights on or off with one frame per 8 columns
func FillAll(m Device, on bool) error {
	var frame [8]byte
	if on {
		frame = [8]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	}

	var errs Errors
	for x := 0; x < int(m.Cols()); x += 8 {
		errs.Add(m.Frame(uint8(x), frame))
	}
	errs.Task = fmt.Sprintf("fill all (on: %v)", on)
	return errs.Err()
}

// Greeter runs a worm over the device, followed by a flash
func Greeter(dev Device) error {
	if err := worm(dev, time.Millisecond*4); err != nil {
		return err
	}
	time.Sleep(time.Millisecond * 20)
	if err := FillAll(dev, true); err != nil {
		return err
	}
	time.Sleep(time.Millisecond * 300)
	return FillAll(dev, false)
}

// worm lights the buttons row by row, switching direction on every row
func worm(m Device, step time.Duration) error {
	rows := m.Rows()
	cols := int(m.Cols())
	var flip bool

	for y := uint8(0); y < rows; y++ {
		x := 0
		if flip {
			x = cols - 1
		}
		for x >= 0 && x < cols {
			if err := m.Switch(uint8(x), y, true); err != nil {
				return err
			}
			time.Sleep(step)
			if err := m.Switch(uint8(x), y, false); err != nil {
				return err
			}

			if flip {
				x--
			} else {
				x++
			}
		}
		flip = !flip
	}
	return nil
}
