// Package fsm drives one calculation cycle through the input, evaluate
// and display components, and loops indefinitely between cycles.
package fsm

import (
	"errors"
	"log"
	"time"

	"calculator-project/calculator"
	"calculator-project/calculator/evaluate"
	"calculator-project/calculator/input"
	"calculator-project/clock"
	"calculator-project/display"
)

type State int

const (
	AwaitingOperand1 State = iota
	AwaitingOperator
	AwaitingOperand2
	AwaitingConfirm
	ShowingResult
)

func (s State) String() string {
	if s == AwaitingOperand1 {
		return "AwaitingOperand1"
	} else if s == AwaitingOperator {
		return "AwaitingOperator"
	} else if s == AwaitingOperand2 {
		return "AwaitingOperand2"
	} else if s == AwaitingConfirm {
		return "AwaitingConfirm"
	} else if s == ShowingResult {
		return "ShowingResult"
	} else {
		return "Undefined"
	}
}

// cyclePause is the settle delay between completed cycles.
const cyclePause = 500 * time.Millisecond

// Session owns all state of one calculation cycle. Nothing survives a
// reset: every field below is cleared at the top of each cycle.
type Session struct {
	variant calculator.Variant
	src     input.Source
	acq     *input.Acquirer
	pres    display.Presenter
	clk     clock.Clock

	state    State
	operand1 int
	operand2 int
	operator calculator.Operator
}

func New(variant calculator.Variant, src input.Source, acq *input.Acquirer, pres display.Presenter, clk clock.Clock) *Session {
	return &Session{
		variant: variant,
		src:     src,
		acq:     acq,
		pres:    pres,
		clk:     clk,
	}
}

func (s *Session) State() State {
	return s.state
}

// Run shows the startup sequence and loops forever, one calculation per
// cycle. It only returns on a driver error.
func (s *Session) Run() error {
	log.Println("Calculator starting, variant:", s.variant)
	if err := s.pres.Ready(); err != nil {
		return err
	}
	for {
		if err := s.RunCycle(); err != nil {
			return err
		}
		s.clk.Sleep(cyclePause)
	}
}

// RunCycle executes one calculation cycle and returns once the cycle is
// over: after the shown result (or error pattern) was reset, or after a
// reset anywhere along the way.
func (s *Session) RunCycle() error {
	s.reset()

	op1, outcome, err := s.acq.Operand(display.StageOperand1)
	if err != nil {
		return err
	}
	if outcome == input.ResetRequested {
		return s.onReset()
	}
	s.operand1 = op1.Value
	// An operator captured during operand entry skips the operator wait
	// entirely, so the state moves straight to the second operand.
	if op1.NextOperator != calculator.OpNone {
		s.state = AwaitingOperand2
	} else {
		s.state = AwaitingOperator
	}
	log.Println("Operand 1:", s.operand1, "state:", s.state)

	operator, outcome, err := s.acq.Operator(op1.NextOperator, s.operand1)
	if err != nil {
		return err
	}
	if outcome == input.ResetRequested {
		return s.onReset()
	}
	s.operator = operator
	s.state = AwaitingOperand2
	log.Println("Operator:", s.operator, "state:", s.state)

	op2, outcome, err := s.acq.Operand(display.StageOperand2)
	if err != nil {
		return err
	}
	if outcome == input.ResetRequested {
		return s.onReset()
	}
	s.operand2 = op2.Value
	s.state = AwaitingConfirm
	log.Println("Operand 2:", s.operand2, "state:", s.state)

	// The confirm key may already have been consumed while entering the
	// second operand; only signal and wait when it was not.
	if !op2.Confirmed {
		if err := s.pres.AwaitConfirm(s.operand2); err != nil {
			return err
		}
		outcome, err := s.acq.WaitConfirm()
		if err != nil {
			return err
		}
		if outcome == input.ResetRequested {
			return s.onReset()
		}
	}

	s.state = ShowingResult
	result, err := evaluate.Evaluate(s.operand1, s.operand2, s.operator, s.variant)
	if errors.Is(err, evaluate.ErrDivideByZero) {
		log.Println("Divide by zero, awaiting reset")
		if err := s.pres.ShowError(s.src.Scan); err != nil {
			return err
		}
		return s.onReset()
	}
	if err != nil {
		return err
	}
	log.Println("Result:", result.Value, "state:", s.state)

	if err := s.pres.ShowResult(result, s.src.Scan); err != nil {
		return err
	}
	return s.onReset()
}

// reset clears all cycle state. Exactly one cancellation mechanism exists
// and this is its landing point.
func (s *Session) reset() {
	s.state = AwaitingOperand1
	s.operand1 = 0
	s.operand2 = 0
	s.operator = calculator.OpNone
}

func (s *Session) onReset() error {
	log.Println("Reset, state:", AwaitingOperand1)
	s.reset()
	return nil
}
