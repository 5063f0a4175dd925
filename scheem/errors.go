package scheem

import (
	"errors"
	"fmt"
)

// Every evaluation failure wraps exactly one of these, so callers can
// tell kinds apart with errors.Is.
var (
	ErrArity             = errors.New("wrong number of arguments")
	ErrType              = errors.New("operands have invalid type")
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrUnboundVariable   = errors.New("variable not defined")
	ErrAlreadyDefined    = errors.New("symbol already defined")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrExplicit          = errors.New("error")
	ErrRecursionDepth    = errors.New("maximum recursion depth exceeded")
)

func arityErr(op string, want string, got int) error {
	return fmt.Errorf("%s expected %s arguments, got %d: %w", op, want, got, ErrArity)
}

func typeErr(op string, want string, got Sexp) error {
	return fmt.Errorf("%s expected %s, got %s '%s': %w", op, want, TypeName(got), sexpStr(got), ErrType)
}

func sexpStr(x Sexp) string {
	if x == nil {
		return "<unbound>"
	}
	return x.SexpString()
}

func panicOn(err error) {
	if err != nil {
		panic(err)
	}
}
