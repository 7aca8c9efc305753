package display

import (
	"time"

	"calculator-project/calculator"
	"calculator-project/clock"
	"calculator-project/driver/hal"
)

// Segment lines on the data bus, matching the board wiring: a on bit 6
// down to g on bit 0, decimal point on bit 7.
const (
	segA  = 1 << 6
	segB  = 1 << 5
	segC  = 1 << 4
	segD  = 1 << 3
	segE  = 1 << 2
	segF  = 1 << 1
	segG  = 1 << 0
	segDP = 1 << 7
)

// digitPatterns holds the glyphs for 0-9, the error glyph and blank.
var digitPatterns = [12]uint8{
	segA | segB | segC | segD | segE | segF,        // 0
	segB | segC,                                    // 1
	segA | segB | segG | segE | segD,               // 2
	segA | segB | segC | segD | segG,               // 3
	segF | segG | segB | segC,                      // 4
	segA | segF | segG | segC | segD,               // 5
	segA | segF | segG | segC | segD | segE,        // 6
	segA | segB | segC,                             // 7
	segA | segB | segC | segD | segE | segF | segG, // 8
	segA | segB | segC | segD | segF | segG,        // 9
	segA | segF | segG | segE | segD,               // E
	0,                                              // blank
}

// operatorPatterns shows A, S, C, d for the four operators.
var operatorPatterns = [4]uint8{
	segF | segE | segA | segB | segC, // A (add)
	segF | segE | segG | segC | segD, // S (sub)
	segA | segF | segE | segD,        // C (mul)
	segB | segC | segD | segE | segG, // d (div)
}

const (
	patternError = segA | segF | segG | segE | segD // 'E'
	patternMinus = segG
	patternBlank = 0
)

const (
	digitHold    = 5 * time.Millisecond // per-digit drive time while multiplexing
	refreshCount = 30                   // refresh passes per display update
	flashPeriod  = 200 * time.Millisecond
)

// Glyph reverse-maps a segment pattern to a printable character. Used by
// the terminal simulator to render frames.
func Glyph(pattern uint8) byte {
	p := pattern &^ uint8(segDP)
	for d, dp := range digitPatterns {
		if p == dp {
			if d == 10 {
				return 'E'
			}
			if d == 11 {
				return ' '
			}
			return byte('0' + d)
		}
	}
	for i, op := range operatorPatterns {
		if p == op {
			return "ASCd"[i]
		}
	}
	if p == patternMinus {
		return '-'
	}
	return '?'
}

// SevenSegPresenter multiplexes two common-cathode 7-segment digits over
// a shared segment bus, alternating the digit-select lines fast enough to
// avoid visible flicker. A negative result asserts the decimal point on
// the units digit instead of a blinking sign bit.
type SevenSegPresenter struct {
	port hal.DisplayPort
	clk  clock.Clock

	current int  // value the multiplexer is holding
	lit     bool // false after blank, Refresh leaves the display dark
}

func NewSevenSeg(port hal.DisplayPort, clk clock.Clock) *SevenSegPresenter {
	return &SevenSegPresenter{port: port, clk: clk}
}

func (p *SevenSegPresenter) writeDigit(pattern uint8, tens bool, dp bool) error {
	if dp {
		pattern |= segDP
	}
	return p.port.WriteFrame(hal.Frame{
		Data:        pattern,
		SelectTens:  tens,
		SelectUnits: !tens,
	})
}

func (p *SevenSegPresenter) blank() error {
	p.lit = false
	return p.port.WriteFrame(hal.Frame{})
}

// refreshOnce drives both digits for one multiplex period. The segment
// pattern goes out before the digit select to prevent glitches.
func (p *SevenSegPresenter) refreshOnce(value int) error {
	p.current, p.lit = value, true
	negative := value < 0
	if negative {
		value = -value
	}
	if value > calculator.MaxDecimalResult {
		value = calculator.MaxDecimalResult
	}
	if err := p.writeDigit(digitPatterns[value/10], true, false); err != nil {
		return err
	}
	p.clk.Sleep(digitHold)
	if err := p.writeDigit(digitPatterns[value%10], false, negative); err != nil {
		return err
	}
	p.clk.Sleep(digitHold)
	return nil
}

func (p *SevenSegPresenter) refresh(value, times int) error {
	for i := 0; i < times; i++ {
		if err := p.refreshOnce(value); err != nil {
			return err
		}
	}
	return nil
}

// Ready blinks all segments of both digits three times, then shows "00".
func (p *SevenSegPresenter) Ready() error {
	for i := 0; i < 3; i++ {
		if err := p.writeDigit(0xFF&^segDP, true, true); err != nil {
			return err
		}
		p.clk.Sleep(10 * time.Millisecond)
		if err := p.writeDigit(0xFF&^segDP, false, true); err != nil {
			return err
		}
		p.clk.Sleep(10 * time.Millisecond)
		if err := p.blank(); err != nil {
			return err
		}
		p.clk.Sleep(20 * time.Millisecond)
	}
	return p.refresh(0, refreshCount)
}

func (p *SevenSegPresenter) ShowStage(stage Stage) error {
	if stage == StageOperator {
		return nil // the operator glyph arrives via ShowOperator
	}
	return p.refresh(0, refreshCount)
}

func (p *SevenSegPresenter) ShowInterim(stage Stage, value int) error {
	return p.refresh(value, refreshCount)
}

// ShowOperator flashes the operator glyph on the tens digit, alternating
// with the operand so it stays visible.
func (p *SevenSegPresenter) ShowOperator(op calculator.Operator, operand int) error {
	if op < calculator.OpAdd || op > calculator.OpDiv {
		return nil
	}
	glyph := operatorPatterns[op-calculator.OpAdd]
	for i := 0; i < 10; i++ {
		if err := p.writeDigit(glyph, true, false); err != nil {
			return err
		}
		p.clk.Sleep(digitHold)
		if err := p.writeDigit(patternBlank, false, false); err != nil {
			return err
		}
		p.clk.Sleep(digitHold)
		if err := p.refreshOnce(operand); err != nil {
			return err
		}
	}
	return nil
}

// AwaitConfirm alternates a dark display with the entered value.
func (p *SevenSegPresenter) AwaitConfirm(value int) error {
	for i := 0; i < 3; i++ {
		if err := p.blank(); err != nil {
			return err
		}
		p.clk.Sleep(flashPeriod)
		if err := p.refresh(value, 20); err != nil {
			return err
		}
	}
	return nil
}

// Refresh runs one multiplex pass over the held value so both digits
// stay driven while input wait loops poll the keypad. A blanked display
// stays dark.
func (p *SevenSegPresenter) Refresh() error {
	if !p.lit {
		return nil
	}
	return p.refreshOnce(p.current)
}

// ShowResult keeps multiplexing the result until reset, re-polling the
// scanner between refresh passes.
func (p *SevenSegPresenter) ShowResult(r calculator.Result, scan ScanFunc) error {
	for {
		if err := p.refreshOnce(r.Value); err != nil {
			return err
		}
		key, err := scan()
		if err != nil {
			return err
		}
		if key == calculator.KeyReset {
			return p.blank()
		}
	}
}

// ShowError flashes "E0" five times, then waits dark for reset.
func (p *SevenSegPresenter) ShowError(scan ScanFunc) error {
	for i := 0; i < 5; i++ {
		if err := p.writeDigit(patternError, true, false); err != nil {
			return err
		}
		p.clk.Sleep(100 * time.Millisecond)
		if err := p.writeDigit(digitPatterns[0], false, false); err != nil {
			return err
		}
		p.clk.Sleep(100 * time.Millisecond)
		if err := p.blank(); err != nil {
			return err
		}
		p.clk.Sleep(100 * time.Millisecond)
	}
	for {
		key, err := scan()
		if err != nil {
			return err
		}
		if key == calculator.KeyReset {
			return p.blank()
		}
	}
}
