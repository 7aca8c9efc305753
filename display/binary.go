package display

import (
	"time"

	"calculator-project/calculator"
	"calculator-project/clock"
	"calculator-project/driver/hal"
)

// Indicator bits on the LED array, one per input step.
const (
	ledOperand1 = 0x01 // D1
	ledOperand2 = 0x02 // D2
	ledOperator = 0x04 // D3
	ledConfirm  = 0x08 // D4
	ledAll      = 0xFF
)

const (
	blinkStep      = 25 * time.Millisecond // result blink loop pacing
	blinkRate      = 5                     // loop iterations per sign-bit toggle
	startupPeriod  = 250 * time.Millisecond
	indicatePeriod = 200 * time.Millisecond
)

// BinaryPresenter renders on an 8-bit LED array. Results appear as a
// binary magnitude pattern; a negative result continuously toggles the
// most significant LED while holding the other seven constant.
type BinaryPresenter struct {
	port hal.DisplayPort
	clk  clock.Clock
	last uint8
}

func NewBinary(port hal.DisplayPort, clk clock.Clock) *BinaryPresenter {
	return &BinaryPresenter{port: port, clk: clk}
}

func (p *BinaryPresenter) write(pattern uint8) error {
	p.last = pattern
	return p.port.WriteFrame(hal.Frame{Data: pattern})
}

func (p *BinaryPresenter) blink(pattern uint8, count int, period time.Duration) error {
	for i := 0; i < count; i++ {
		if err := p.write(pattern); err != nil {
			return err
		}
		p.clk.Sleep(period)
		if err := p.write(0); err != nil {
			return err
		}
		p.clk.Sleep(period)
	}
	return nil
}

// Ready runs the startup sequence: all LEDs three times, then D1 three
// times to indicate ready for input.
func (p *BinaryPresenter) Ready() error {
	if err := p.blink(ledAll, 3, startupPeriod); err != nil {
		return err
	}
	if err := p.blink(ledOperand1, 3, startupPeriod); err != nil {
		return err
	}
	return p.write(0)
}

func (p *BinaryPresenter) ShowStage(stage Stage) error {
	switch stage {
	case StageOperator:
		return p.write(ledOperator)
	case StageOperand2:
		return p.write(ledOperand2)
	default:
		return p.write(0)
	}
}

// ShowInterim lights the step indicator. The LED array has no way to echo
// the partial decimal value itself.
func (p *BinaryPresenter) ShowInterim(stage Stage, value int) error {
	if stage == StageOperand2 {
		return p.write(ledOperand2)
	}
	return p.write(ledOperand1)
}

func (p *BinaryPresenter) ShowOperator(op calculator.Operator, operand int) error {
	return p.write(ledOperator)
}

func (p *BinaryPresenter) AwaitConfirm(value int) error {
	return p.blink(ledConfirm, 3, indicatePeriod)
}

// Refresh rewrites the last pattern. The LED lines latch, so this keeps
// the indication asserted across keypad sweeps.
func (p *BinaryPresenter) Refresh() error {
	return p.write(p.last)
}

// encode clamps the result to the signed 8-bit display range: positive
// results use all eight LEDs, negative magnitudes keep the MSB free for
// the sign indicator.
func encode(r calculator.Result) uint8 {
	mag := r.Magnitude()
	if r.Negative() {
		if mag > calculator.MaxNegativeMagnitude {
			mag = calculator.MaxNegativeMagnitude
		}
	} else if mag > calculator.MaxBinaryMagnitude {
		mag = calculator.MaxBinaryMagnitude
	}
	return uint8(mag)
}

// ShowResult holds the result pattern until reset. Negative results
// toggle the sign LED at a fixed rate, re-polling the scanner every loop
// iteration.
func (p *BinaryPresenter) ShowResult(r calculator.Result, scan ScanFunc) error {
	pattern := encode(r)
	if !r.Negative() {
		if err := p.write(pattern); err != nil {
			return err
		}
		return p.waitReset(scan)
	}

	counter := 0
	signOn := false
	for {
		counter++
		if counter >= blinkRate {
			signOn = !signOn
			counter = 0
		}
		frame := pattern & 0x7F
		if signOn {
			frame = pattern | 0x80
		}
		if err := p.write(frame); err != nil {
			return err
		}
		key, err := scan()
		if err != nil {
			return err
		}
		if key == calculator.KeyReset {
			return p.write(0)
		}
		p.clk.Sleep(blinkStep)
	}
}

// ShowError blinks the whole array, then waits dark for reset.
func (p *BinaryPresenter) ShowError(scan ScanFunc) error {
	if err := p.blink(ledAll, 5, indicatePeriod); err != nil {
		return err
	}
	return p.waitReset(scan)
}

func (p *BinaryPresenter) waitReset(scan ScanFunc) error {
	for {
		key, err := scan()
		if err != nil {
			return err
		}
		if key == calculator.KeyReset {
			return p.write(0)
		}
	}
}
