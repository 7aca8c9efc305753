package fsm_test

import (
	"testing"

	"calculator-project/calculator"
	"calculator-project/calculator/fsm"
	"calculator-project/calculator/input"
	"calculator-project/clock"
	"calculator-project/display"
	"calculator-project/driver/hal"
)

// scriptSource replays a fixed key sequence, then reports no key.
type scriptSource struct {
	keys []calculator.Key
}

func (s *scriptSource) Scan() (calculator.Key, error) {
	if len(s.keys) == 0 {
		return calculator.KeyNone, nil
	}
	key := s.keys[0]
	s.keys = s.keys[1:]
	return key, nil
}

func newSession(variant calculator.Variant, keys ...calculator.Key) (*fsm.Session, *hal.FakeDisplayPort) {
	src := &scriptSource{keys: keys}
	port := &hal.FakeDisplayPort{}
	clk := &clock.FakeClock{}
	var pres display.Presenter
	if variant == calculator.VariantBinary {
		pres = display.NewBinary(port, clk)
	} else {
		pres = display.NewSevenSeg(port, clk)
	}
	acq := input.NewAcquirer(src, pres, clk)
	return fsm.New(variant, src, acq, pres, clk), port
}

// stateSource records the session state observed at every keypad sweep.
type stateSource struct {
	inner   *scriptSource
	session *fsm.Session
	seen    map[fsm.State]bool
}

func (s *stateSource) Scan() (calculator.Key, error) {
	s.seen[s.session.State()] = true
	return s.inner.Scan()
}

func hasFrame(port *hal.FakeDisplayPort, want hal.Frame) bool {
	for _, f := range port.Frames {
		if f == want {
			return true
		}
	}
	return false
}

func TestCycleAddFastPath(t *testing.T) {
	// 7, A, 3, # -> 10, displayed static, no blink.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(7), calculator.KeyAdd, calculator.Digit(3), calculator.KeyConfirm,
		calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 10}) {
		t.Error("Failed assert, result pattern 0000 1010 never displayed")
	}
	for _, f := range port.Frames {
		if f.Data&0x80 != 0 {
			t.Error("Failed assert, sign LED lit for a non-negative result")
		}
	}
	if session.State() != fsm.AwaitingOperand1 {
		t.Errorf("state after cycle = %v, want AwaitingOperand1", session.State())
	}
}

func TestFastPathSkipsOperatorWait(t *testing.T) {
	// Digit-then-operator entry moves straight to the second operand;
	// AwaitingOperator is never entered.
	src := &stateSource{
		inner: &scriptSource{keys: []calculator.Key{
			calculator.Digit(7), calculator.KeyAdd, calculator.Digit(3), calculator.KeyConfirm,
			calculator.KeyReset,
		}},
		seen: map[fsm.State]bool{},
	}
	port := &hal.FakeDisplayPort{}
	clk := &clock.FakeClock{}
	pres := display.NewBinary(port, clk)
	acq := input.NewAcquirer(src, pres, clk)
	session := fsm.New(calculator.VariantBinary, src, acq, pres, clk)
	src.session = session
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if src.seen[fsm.AwaitingOperator] {
		t.Error("Failed assert, operator wait state entered on the fast path")
	}
	if !src.seen[fsm.AwaitingOperand2] {
		t.Error("Failed assert, second operand state never observed")
	}

	// A two-digit first operand goes through the operator wait.
	src = &stateSource{
		inner: &scriptSource{keys: []calculator.Key{
			calculator.Digit(0), calculator.Digit(7), calculator.KeyAdd,
			calculator.Digit(3), calculator.KeyConfirm, calculator.KeyReset,
		}},
		seen: map[fsm.State]bool{},
	}
	port = &hal.FakeDisplayPort{}
	pres = display.NewBinary(port, clk)
	acq = input.NewAcquirer(src, pres, clk)
	session = fsm.New(calculator.VariantBinary, src, acq, pres, clk)
	src.session = session
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !src.seen[fsm.AwaitingOperator] {
		t.Error("Failed assert, operator wait state never observed for a two-digit operand")
	}
}

func TestCycleOperand2IgnoresOperatorKey(t *testing.T) {
	// 3, B, 9, A, 5, # computes 3-95: the stray operator key keeps the
	// second operand accumulating instead of terminating it at 9.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(3), calculator.KeySub,
		calculator.Digit(9), calculator.KeyAdd, calculator.Digit(5),
		calculator.KeyConfirm, calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 92}) {
		t.Error("Failed assert, magnitude 92 never displayed, second operand cut short")
	}
}

func TestCycleSubNegativeBlinks(t *testing.T) {
	// 3, B, 9, # -> -6; the sign LED toggles over pattern 0000 0110.
	keys := []calculator.Key{
		calculator.Digit(3), calculator.KeySub, calculator.Digit(9), calculator.KeyConfirm,
	}
	for i := 0; i < 12; i++ {
		keys = append(keys, calculator.KeyNone)
	}
	keys = append(keys, calculator.KeyReset)
	session, port := newSession(calculator.VariantBinary, keys...)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 0x06}) {
		t.Error("Failed assert, magnitude pattern with sign LED off never displayed")
	}
	if !hasFrame(port, hal.Frame{Data: 0x86}) {
		t.Error("Failed assert, magnitude pattern with sign LED on never displayed")
	}
}

func TestCycleDivideByZero(t *testing.T) {
	// 5, D, 0, # -> error pattern, exits only via reset.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(5), calculator.KeyDiv, calculator.Digit(0), calculator.KeyConfirm,
		calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 0xFF}) {
		t.Error("Failed assert, error pattern never displayed")
	}
	if session.State() != fsm.AwaitingOperand1 {
		t.Errorf("state after error = %v, want AwaitingOperand1", session.State())
	}
}

func TestResetMidCycleLeavesNoResidue(t *testing.T) {
	// 5, A, then reset before the second operand; the next cycle must
	// compute from fresh state only.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(5), calculator.KeyAdd, calculator.KeyReset,
		calculator.Digit(7), calculator.KeyAdd, calculator.Digit(3), calculator.KeyConfirm,
		calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle (aborted): %v", err)
	}
	if session.State() != fsm.AwaitingOperand1 {
		t.Fatalf("state after reset = %v, want AwaitingOperand1", session.State())
	}
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle (fresh): %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 10}) {
		t.Error("Failed assert, fresh cycle did not display 7+3")
	}
}

func TestCycleAwaitConfirmSignal(t *testing.T) {
	// A two-digit second operand leaves confirm unconsumed; the D4
	// indicator must flash before the result appears.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(7), calculator.KeyAdd,
		calculator.Digit(0), calculator.Digit(3),
		calculator.KeyConfirm, calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 0x08}) {
		t.Error("Failed assert, awaiting-confirm indicator never displayed")
	}
	if !hasFrame(port, hal.Frame{Data: 10}) {
		t.Error("Failed assert, result never displayed after confirm")
	}
}

func TestCycleDecimalNegative(t *testing.T) {
	// 3, B, 9, # on the 7-segment variant: "06" with the decimal point
	// as the negative indicator.
	session, port := newSession(calculator.VariantDecimal,
		calculator.Digit(3), calculator.KeySub, calculator.Digit(9), calculator.KeyConfirm,
		calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	sawTensZero := false
	sawUnitsSixDP := false
	for _, f := range port.Frames {
		if f.SelectTens && display.Glyph(f.Data) == '0' {
			sawTensZero = true
		}
		if f.SelectUnits && display.Glyph(f.Data) == '6' && f.Data&0x80 != 0 {
			sawUnitsSixDP = true
		}
	}
	if !sawTensZero {
		t.Error("Failed assert, tens digit 0 never displayed")
	}
	if !sawUnitsSixDP {
		t.Error("Failed assert, units digit 6 with negative decimal point never displayed")
	}
}

func TestCycleLeadingZeroEquivalence(t *testing.T) {
	// 0,5 as first operand behaves exactly like the 5-then-operator fast
	// path: both cycles display 5+5 = 10.
	session, port := newSession(calculator.VariantBinary,
		calculator.Digit(0), calculator.Digit(5), calculator.KeyAdd,
		calculator.Digit(5), calculator.KeyConfirm, calculator.KeyReset)
	if err := session.RunCycle(); err != nil {
		t.Fatalf("RunCycle: %v", err)
	}
	if !hasFrame(port, hal.Frame{Data: 10}) {
		t.Error("Failed assert, 05+5 did not display 10")
	}
}
