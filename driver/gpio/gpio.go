// Package gpio drives the keypad matrix and display bus through the
// Linux GPIO character device.
package gpio

import (
	"fmt"

	"github.com/warthog618/gpiod"

	"calculator-project/driver/hal"
)

// Pins maps the calculator wiring onto GPIO line offsets. Rows carry
// external pull-downs, so they are requested as plain inputs. The digit
// select offsets are only meaningful for the 7-segment wiring; set them
// to -1 for the LED array.
type Pins struct {
	Chip        string
	Columns     [4]int
	Rows        [4]int
	Data        [8]int
	SelectTens  int
	SelectUnits int
}

// DefaultPins matches the reference breadboard wiring on a Raspberry Pi
// header.
func DefaultPins() Pins {
	return Pins{
		Chip:        "gpiochip0",
		Columns:     [4]int{2, 3, 4, 17},
		Rows:        [4]int{27, 22, 10, 9},
		Data:        [8]int{5, 6, 13, 19, 26, 16, 20, 21},
		SelectTens:  23,
		SelectUnits: 24,
	}
}

// Port implements hal.KeypadPort and hal.DisplayPort over gpiod lines.
type Port struct {
	cols     [4]*gpiod.Line
	rows     *gpiod.Lines
	data     *gpiod.Lines
	selTens  *gpiod.Line
	selUnits *gpiod.Line
}

// Open requests all lines. On any failure the already-requested lines
// are released.
func Open(pins Pins) (*Port, error) {
	p := &Port{}
	for i, offset := range pins.Columns {
		line, err := gpiod.RequestLine(pins.Chip, offset, gpiod.AsOutput(0))
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("requesting column line %d: %w", offset, err)
		}
		p.cols[i] = line
	}
	rows, err := gpiod.RequestLines(pins.Chip, pins.Rows[:], gpiod.AsInput)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("requesting row lines: %w", err)
	}
	p.rows = rows
	data, err := gpiod.RequestLines(pins.Chip, pins.Data[:], gpiod.AsOutput(0, 0, 0, 0, 0, 0, 0, 0))
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("requesting data lines: %w", err)
	}
	p.data = data
	if pins.SelectTens >= 0 {
		p.selTens, err = gpiod.RequestLine(pins.Chip, pins.SelectTens, gpiod.AsOutput(0))
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("requesting tens select line: %w", err)
		}
	}
	if pins.SelectUnits >= 0 {
		p.selUnits, err = gpiod.RequestLine(pins.Chip, pins.SelectUnits, gpiod.AsOutput(0))
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("requesting units select line: %w", err)
		}
	}
	return p, nil
}

func (p *Port) DriveColumn(col int, active bool) error {
	v := 0
	if active {
		v = 1
	}
	return p.cols[col].SetValue(v)
}

func (p *Port) ReadRows() ([4]bool, error) {
	var rows [4]bool
	values := make([]int, 4)
	if err := p.rows.Values(values); err != nil {
		return rows, fmt.Errorf("reading row lines: %w", err)
	}
	for i, v := range values {
		rows[i] = v != 0
	}
	return rows, nil
}

func (p *Port) WriteFrame(f hal.Frame) error {
	values := make([]int, 8)
	for bit := 0; bit < 8; bit++ {
		if f.Data&(1<<bit) != 0 {
			values[bit] = 1
		}
	}
	if err := p.data.SetValues(values); err != nil {
		return fmt.Errorf("writing data lines: %w", err)
	}
	if p.selTens != nil {
		if err := p.selTens.SetValue(boolValue(f.SelectTens)); err != nil {
			return fmt.Errorf("writing tens select: %w", err)
		}
	}
	if p.selUnits != nil {
		if err := p.selUnits.SetValue(boolValue(f.SelectUnits)); err != nil {
			return fmt.Errorf("writing units select: %w", err)
		}
	}
	return nil
}

func boolValue(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Close releases every requested line, reverting outputs to inputs.
func (p *Port) Close() error {
	for _, line := range p.cols {
		if line != nil {
			line.Reconfigure(gpiod.AsInput)
			line.Close()
		}
	}
	for _, line := range []*gpiod.Line{p.selTens, p.selUnits} {
		if line != nil {
			line.Reconfigure(gpiod.AsInput)
			line.Close()
		}
	}
	if p.rows != nil {
		p.rows.Close()
	}
	if p.data != nil {
		p.data.Reconfigure(gpiod.AsInput)
		p.data.Close()
	}
	return nil
}
