// Package keypad scans a 4x4 matrix keypad into logical key codes.
package keypad

import (
	"time"

	"calculator-project/calculator"
	"calculator-project/clock"
	"calculator-project/driver/hal"
)

// Physical layout: rows 1-4 hold 1 2 3 A / 4 5 6 B / 7 8 9 C / * 0 # D.
var keyMap = [4][4]calculator.Key{
	{calculator.Digit(1), calculator.Digit(2), calculator.Digit(3), calculator.KeyAdd},
	{calculator.Digit(4), calculator.Digit(5), calculator.Digit(6), calculator.KeySub},
	{calculator.Digit(7), calculator.Digit(8), calculator.Digit(9), calculator.KeyMul},
	{calculator.KeyReset, calculator.Digit(0), calculator.KeyConfirm, calculator.KeyDiv},
}

type Config struct {
	SettleDelay   time.Duration // column settle before sampling rows
	DebounceDelay time.Duration // after first detecting a press
	ReleasePoll   time.Duration // between release re-reads
	ReleaseLimit  int           // release re-reads before assuming released
}

func DefaultConfig() Config {
	return Config{
		SettleDelay:   20 * time.Millisecond,
		DebounceDelay: 20 * time.Millisecond,
		ReleasePoll:   5 * time.Millisecond,
		ReleaseLimit:  100,
	}
}

// Scanner produces one logical key per call by driving the column lines
// one at a time and sampling the row lines.
type Scanner struct {
	port hal.KeypadPort
	clk  clock.Clock
	cfg  Config
}

func New(port hal.KeypadPort, clk clock.Clock, cfg Config) *Scanner {
	return &Scanner{port: port, clk: clk, cfg: cfg}
}

// Scan sweeps the matrix once and returns the first asserted key, or
// KeyNone after a full sweep without a hit. Only the first (row, column)
// hit in scan order is reported; simultaneous presses are not
// disambiguated. Blocks for one settle delay per column, plus the
// debounce and release wait when a key is found.
func (s *Scanner) Scan() (calculator.Key, error) {
	for col := 0; col < 4; col++ {
		if err := s.port.DriveColumn(col, true); err != nil {
			return calculator.KeyNone, err
		}
		s.clk.Sleep(s.cfg.SettleDelay)

		rows, err := s.port.ReadRows()
		if err != nil {
			s.port.DriveColumn(col, false)
			return calculator.KeyNone, err
		}
		for row := 0; row < 4; row++ {
			if !rows[row] {
				continue
			}
			key := keyMap[row][col]
			s.clk.Sleep(s.cfg.DebounceDelay)
			if err := s.waitRelease(row); err != nil {
				s.port.DriveColumn(col, false)
				return calculator.KeyNone, err
			}
			s.clk.Sleep(s.cfg.DebounceDelay)
			if err := s.port.DriveColumn(col, false); err != nil {
				return calculator.KeyNone, err
			}
			return key, nil
		}
		if err := s.port.DriveColumn(col, false); err != nil {
			return calculator.KeyNone, err
		}
	}
	return calculator.KeyNone, nil
}

// waitRelease re-reads the pressed line until it drops or the bounded
// limit elapses. A held key degrades to assume-released rather than
// failing.
func (s *Scanner) waitRelease(row int) error {
	for i := 0; i < s.cfg.ReleaseLimit; i++ {
		rows, err := s.port.ReadRows()
		if err != nil {
			return err
		}
		if !rows[row] {
			return nil
		}
		s.clk.Sleep(s.cfg.ReleasePoll)
	}
	return nil
}
