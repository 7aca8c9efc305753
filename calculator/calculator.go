package calculator

// Operand entry is bounded to two decimal digits.
const MaxOperand = 99

// Display bounds. The decimal variant clamps results symmetrically, the
// binary variant fits a sign bit plus 7 magnitude bits on the LED array.
const (
	MaxDecimalResult     = 99
	MinDecimalResult     = -99
	MaxBinaryMagnitude   = 0xFF
	MaxNegativeMagnitude = 0x7F
)

// Key is one logical keypad key. Digits 0-9 carry their own value,
// everything else is a named key.
type Key int

const (
	KeyNone    Key = -1
	KeyAdd     Key = 10
	KeySub     Key = 11
	KeyMul     Key = 12
	KeyDiv     Key = 13
	KeyReset   Key = 14
	KeyConfirm Key = 15
)

// Digit returns the key for decimal digit d.
func Digit(d int) Key {
	return Key(d)
}

func (k Key) IsDigit() bool {
	return k >= 0 && k <= 9
}

func (k Key) IsOperator() bool {
	return k >= KeyAdd && k <= KeyDiv
}

// Operator returns the operator a key selects. Only valid for operator keys.
func (k Key) Operator() Operator {
	switch k {
	case KeyAdd:
		return OpAdd
	case KeySub:
		return OpSub
	case KeyMul:
		return OpMul
	case KeyDiv:
		return OpDiv
	default:
		return OpNone
	}
}

func (k Key) String() string {
	if k.IsDigit() {
		return string(rune('0' + k))
	} else if k == KeyAdd {
		return "A"
	} else if k == KeySub {
		return "B"
	} else if k == KeyMul {
		return "C"
	} else if k == KeyDiv {
		return "D"
	} else if k == KeyReset {
		return "*"
	} else if k == KeyConfirm {
		return "#"
	} else {
		return "none"
	}
}

// Operator is the arithmetic operation of one calculation cycle. It is set
// exactly once per cycle and cleared on reset.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
)

func (op Operator) String() string {
	if op == OpAdd {
		return "add"
	} else if op == OpSub {
		return "sub"
	} else if op == OpMul {
		return "mul"
	} else if op == OpDiv {
		return "div"
	} else {
		return "none"
	}
}

// Variant selects the display hardware the calculator drives. The two
// variants share input and evaluation logic but saturate and render
// results differently.
type Variant int

const (
	// VariantBinary renders results as an 8-bit pattern on an LED array.
	VariantBinary Variant = iota
	// VariantDecimal renders results on a multiplexed two-digit 7-segment
	// display.
	VariantDecimal
)

func (v Variant) String() string {
	if v == VariantBinary {
		return "led"
	}
	return "7seg"
}

// Result is the outcome of one evaluation. It lives from evaluation until
// the next reset.
type Result struct {
	Value int
}

func (r Result) Negative() bool {
	return r.Value < 0
}

// Magnitude returns the absolute value for display encoding.
func (r Result) Magnitude() int {
	if r.Value < 0 {
		return -r.Value
	}
	return r.Value
}
