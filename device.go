package monome

type Device interface {
	// Rows returns the number of rows
	Rows() uint8

	// Cols returns the number of cols
	Cols() uint8

	// Set sets the button at position x,y to the given brightness.
	// The 40h has no per-light brightness, so any brightness > 0 switches the light on.
	// Use Intensity on the connection to dim all lights at once.
	Set(x, y, brightness uint8) error

	// Switches the light at x,y on or off
	// If on is true, it is a shortcut for Set(x,y,15).
	// If on is false it is a shortcut for Set(x,y,0)
	Switch(x, y uint8, on bool) error

	// Intensity sets the brightness of all lights (0-15)
	Intensity(level uint8) error

	// Frame sets the 8x8 lights starting at column xOff, one byte per row
	Frame(xOff uint8, frame [8]byte) error

	// String returns an identifier as a string (name)
	String() string

	// ReadMessage reads pending messages from the device and calls the handler if necessary
	// It should normally not be called and is just there to allow external implementations of Device
	ReadMessage() error
}
