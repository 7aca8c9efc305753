// Package input assembles keypad keys into operands and operator
// selections. Reset is reported as an explicit outcome instead of a
// sentinel value overlaid on the operand range.
package input

import (
	"time"

	"calculator-project/calculator"
	"calculator-project/clock"
	"calculator-project/display"
)

// Source produces one logical key per call, blocking for at most one
// keypad sweep.
type Source interface {
	Scan() (calculator.Key, error)
}

// Outcome tags the result of an acquisition.
type Outcome int

const (
	Accepted Outcome = iota
	ResetRequested
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "reset"
}

// Operand is one acquired operand plus what terminated its entry: an
// operator key captured on the fast path, or the confirm key consumed
// early.
type Operand struct {
	Value        int
	NextOperator calculator.Operator
	Confirmed    bool
}

// Acquirer drives operand and operator entry over the scanner, echoing
// progress on the presenter.
type Acquirer struct {
	src  Source
	pres display.Presenter
	clk  clock.Clock

	idlePause   time.Duration // between sweeps while waiting for a key
	acceptPause time.Duration // after accepting a digit or operator
}

func NewAcquirer(src Source, pres display.Presenter, clk clock.Clock) *Acquirer {
	return &Acquirer{
		src:         src,
		pres:        pres,
		clk:         clk,
		idlePause:   50 * time.Millisecond,
		acceptPause: 500 * time.Millisecond,
	}
}

// Operand blocks until a full operand is entered: a first digit, then
// either a second digit (value 10*d1+d2, saturated to 99), an operator
// key (single-digit fast path, first operand only; operator keys are
// ignored while the second operand is entered), or confirm (single-digit
// operand). Reset aborts immediately at any point. Never times out on
// its own. Every idle sweep re-drives the display so the multiplexed
// variant keeps showing the value while waiting.
func (a *Acquirer) Operand(stage display.Stage) (Operand, Outcome, error) {
	if err := a.pres.ShowStage(stage); err != nil {
		return Operand{}, Accepted, err
	}
	for {
		key, err := a.src.Scan()
		if err != nil {
			return Operand{}, Accepted, err
		}
		switch {
		case key == calculator.KeyNone:
			if err := a.pres.Refresh(); err != nil {
				return Operand{}, Accepted, err
			}
			continue
		case key == calculator.KeyReset:
			return Operand{}, ResetRequested, nil
		case key.IsDigit():
			return a.secondKey(stage, int(key))
		}
		a.clk.Sleep(a.idlePause)
	}
}

func (a *Acquirer) secondKey(stage display.Stage, first int) (Operand, Outcome, error) {
	if err := a.pres.ShowInterim(stage, first); err != nil {
		return Operand{}, Accepted, err
	}
	a.clk.Sleep(a.acceptPause)
	for {
		key, err := a.src.Scan()
		if err != nil {
			return Operand{}, Accepted, err
		}
		switch {
		case key == calculator.KeyNone:
			if err := a.pres.Refresh(); err != nil {
				return Operand{}, Accepted, err
			}
			continue
		case key.IsDigit():
			value := first*10 + int(key)
			if value > calculator.MaxOperand {
				value = calculator.MaxOperand
			}
			if err := a.pres.ShowInterim(stage, value); err != nil {
				return Operand{}, Accepted, err
			}
			return Operand{Value: value}, Accepted, nil
		case key.IsOperator():
			// The cycle's operator is fixed once the second operand is
			// being entered; stray operator keys do not terminate it.
			if stage == display.StageOperand2 {
				continue
			}
			return Operand{Value: first, NextOperator: key.Operator()}, Accepted, nil
		case key == calculator.KeyConfirm:
			return Operand{Value: first, Confirmed: true}, Accepted, nil
		case key == calculator.KeyReset:
			return Operand{}, ResetRequested, nil
		}
		a.clk.Sleep(a.idlePause)
	}
}

// Operator returns the operator captured during operand entry if there
// was one, otherwise blocks until one of the four operator keys. Reset
// aborts.
func (a *Acquirer) Operator(captured calculator.Operator, operand int) (calculator.Operator, Outcome, error) {
	if captured != calculator.OpNone {
		if err := a.pres.ShowOperator(captured, operand); err != nil {
			return calculator.OpNone, Accepted, err
		}
		return captured, Accepted, nil
	}
	if err := a.pres.ShowStage(display.StageOperator); err != nil {
		return calculator.OpNone, Accepted, err
	}
	for {
		key, err := a.src.Scan()
		if err != nil {
			return calculator.OpNone, Accepted, err
		}
		switch {
		case key == calculator.KeyNone:
			if err := a.pres.Refresh(); err != nil {
				return calculator.OpNone, Accepted, err
			}
			continue
		case key.IsOperator():
			op := key.Operator()
			if err := a.pres.ShowOperator(op, operand); err != nil {
				return calculator.OpNone, Accepted, err
			}
			a.clk.Sleep(a.acceptPause)
			return op, Accepted, nil
		case key == calculator.KeyReset:
			return calculator.OpNone, ResetRequested, nil
		}
		a.clk.Sleep(a.idlePause)
	}
}

// WaitConfirm blocks until confirm or reset, ignoring everything else.
func (a *Acquirer) WaitConfirm() (Outcome, error) {
	for {
		key, err := a.src.Scan()
		if err != nil {
			return Accepted, err
		}
		switch key {
		case calculator.KeyConfirm:
			return Accepted, nil
		case calculator.KeyReset:
			return ResetRequested, nil
		case calculator.KeyNone:
			if err := a.pres.Refresh(); err != nil {
				return Accepted, err
			}
			continue
		}
		a.clk.Sleep(a.idlePause)
	}
}
