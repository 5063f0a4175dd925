package scheem

import (
	"errors"
	"math"
)

type NumericOp int

const (
	Add NumericOp = iota
	Sub
	Mult
	Div
	Mod
)

func (op NumericOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mult:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	}
	return "?"
}

// NumericDo applies op to two numbers. Mod is a truncated remainder:
// the result takes the sign of the dividend.
func NumericDo(op NumericOp, a, b SexpNumber) (SexpNumber, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mult:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return SexpNumber(math.Mod(float64(a), float64(b))), nil
	}
	return 0, errors.New("unrecognized numeric operation")
}
