package scheem

import (
	"strings"
)

func signumNumber(f SexpNumber) int {
	if f > 0 {
		return 1
	}
	if f < 0 {
		return -1
	}
	return 0
}

// Compare orders two numbers numerically or two atoms by name.
// Anything else cannot be ordered.
func Compare(op string, a Sexp, b Sexp) (int, error) {
	switch at := a.(type) {
	case SexpNumber:
		bt, ok := b.(SexpNumber)
		if !ok {
			return 0, typeErr(op, "a number to compare with", b)
		}
		return signumNumber(at - bt), nil
	case *SexpSymbol:
		bt, ok := b.(*SexpSymbol)
		if !ok {
			return 0, typeErr(op, "an atom to compare with", b)
		}
		return strings.Compare(at.name, bt.name), nil
	}
	return 0, typeErr(op, "a number or an atom", a)
}

// Equal is the identity used by = and <>. Lists compare element by
// element; procedures are only equal to themselves.
func Equal(a Sexp, b Sexp) bool {
	switch at := a.(type) {
	case SexpNumber:
		bt, ok := b.(SexpNumber)
		return ok && at == bt
	case SexpBool:
		bt, ok := b.(SexpBool)
		return ok && at == bt
	case SexpSentinel:
		bt, ok := b.(SexpSentinel)
		return ok && at == bt
	case *SexpSymbol:
		bt, ok := b.(*SexpSymbol)
		return ok && at.name == bt.name
	case SexpList:
		bt, ok := b.(SexpList)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	case *SexpClosure:
		bt, ok := b.(*SexpClosure)
		return ok && at == bt
	case *SexpNative:
		bt, ok := b.(*SexpNative)
		return ok && at == bt
	}
	return false
}
