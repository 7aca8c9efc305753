// Package evaluate applies the selected arithmetic operator to two
// operands with per-variant saturation.
package evaluate

import (
	"errors"

	"calculator-project/calculator"
)

// ErrDivideByZero is returned when division is requested with a zero
// second operand. No result is produced; recovery is exclusively via
// reset.
var ErrDivideByZero = errors.New("divide by zero")

// Evaluate computes a op b. Division truncates toward zero. Saturation
// differs between the display variants and the difference is intentional:
// the decimal variant clamps every result to [-99, 99], while the binary
// variant only clamps multiplication to 99 and otherwise leaves clamping
// to the LED encoder. Evaluation is pure; re-evaluating the same inputs
// yields the same result.
func Evaluate(a, b int, op calculator.Operator, variant calculator.Variant) (calculator.Result, error) {
	var value int
	switch op {
	case calculator.OpAdd:
		value = a + b
	case calculator.OpSub:
		value = a - b
	case calculator.OpMul:
		value = a * b
		if variant == calculator.VariantDecimal {
			value = clampDecimal(value)
		} else if value > calculator.MaxOperand {
			value = calculator.MaxOperand
		}
	case calculator.OpDiv:
		if b == 0 {
			return calculator.Result{}, ErrDivideByZero
		}
		value = a / b
	default:
		value = 0
	}
	if variant == calculator.VariantDecimal {
		value = clampDecimal(value)
	}
	return calculator.Result{Value: value}, nil
}

func clampDecimal(value int) int {
	if value > calculator.MaxDecimalResult {
		return calculator.MaxDecimalResult
	}
	if value < calculator.MinDecimalResult {
		return calculator.MinDecimalResult
	}
	return value
}
