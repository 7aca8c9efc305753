// Package display renders calculator state on the target display
// hardware. The two presenters are behaviorally equivalent at the
// contract level: one encodes results as binary LED patterns, the other
// multiplexes a two-digit 7-segment display.
package display

import "calculator-project/calculator"

// Stage names the input step being indicated.
type Stage int

const (
	StageOperand1 Stage = iota
	StageOperator
	StageOperand2
)

func (s Stage) String() string {
	if s == StageOperand1 {
		return "operand1"
	} else if s == StageOperator {
		return "operator"
	} else {
		return "operand2"
	}
}

// ScanFunc re-polls the keypad so reset stays responsive while a
// presenter holds the display.
type ScanFunc func() (calculator.Key, error)

// Presenter drives one display variant. ShowResult and ShowError hold the
// display in a cooperative loop, re-polling the scanner every cycle, and
// return once reset is observed. Input wait loops call Refresh between
// keypad sweeps so the multiplexed variant keeps both digits driven
// instead of freezing on whichever frame went out last.
type Presenter interface {
	Ready() error
	ShowStage(stage Stage) error
	ShowInterim(stage Stage, value int) error
	ShowOperator(op calculator.Operator, operand int) error
	AwaitConfirm(value int) error
	Refresh() error
	ShowResult(r calculator.Result, scan ScanFunc) error
	ShowError(scan ScanFunc) error
}
