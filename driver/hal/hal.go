// Package hal is the hardware abstraction boundary of the calculator.
// The real implementations drive GPIO lines or a terminal simulator, the
// fake implementations allow testing without hardware.
package hal

// Frame is one electrical state of the display bus: eight data lines
// (LED array or segment bus a-g plus decimal point) and the two
// digit-select lines of the 7-segment wiring. The LED array leaves both
// selects low.
type Frame struct {
	Data        uint8
	SelectTens  bool
	SelectUnits bool
}

// DisplayPort drives the display bus. WriteFrame must be callable at the
// multiplex refresh rate without inducing visible artifacts.
type DisplayPort interface {
	WriteFrame(f Frame) error
}

// KeypadPort exposes the keypad matrix lines. ReadRows is a
// side-effect-free sample of the current electrical state; all debounce
// and timing logic lives on top of it in the scanner.
type KeypadPort interface {
	DriveColumn(col int, active bool) error
	ReadRows() ([4]bool, error)
}
