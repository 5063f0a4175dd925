package scheem

import (
	"fmt"
)

func IsNumber(expr Sexp) bool {
	_, ok := expr.(SexpNumber)
	return ok
}

func IsBoolean(expr Sexp) bool {
	_, ok := expr.(SexpBool)
	return ok
}

func IsNil(expr Sexp) bool {
	return expr == SexpNil
}

func IsAtom(expr Sexp) bool {
	_, ok := expr.(*SexpSymbol)
	return ok
}

func IsList(expr Sexp) bool {
	_, ok := expr.(SexpList)
	return ok
}

func IsProcedure(expr Sexp) bool {
	switch expr.(type) {
	case *SexpClosure, *SexpNative:
		return true
	}
	return false
}

// TypeName is used in error messages.
func TypeName(expr Sexp) string {
	switch expr.(type) {
	case SexpNumber:
		return "number"
	case SexpBool:
		return "boolean"
	case SexpSentinel:
		return "nil"
	case *SexpSymbol:
		return "atom"
	case SexpList:
		return "list"
	case *SexpClosure, *SexpNative:
		return "procedure"
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%T", expr)
}

func RequireNumber(op string, expr Sexp) (SexpNumber, error) {
	if n, ok := expr.(SexpNumber); ok {
		return n, nil
	}
	return 0, typeErr(op, "a number", expr)
}

func RequireAtom(op string, expr Sexp) (*SexpSymbol, error) {
	if sym, ok := expr.(*SexpSymbol); ok {
		return sym, nil
	}
	return nil, typeErr(op, "an atom", expr)
}

func RequireList(op string, expr Sexp) (SexpList, error) {
	if list, ok := expr.(SexpList); ok {
		return list, nil
	}
	return nil, typeErr(op, "a list", expr)
}

func RequireBoolean(op string, expr Sexp) (SexpBool, error) {
	if b, ok := expr.(SexpBool); ok {
		return b, nil
	}
	return false, typeErr(op, "a boolean", expr)
}

// CheckSymbol accepts expr as a binding name: it must be an atom whose
// text does not read as a number.
func CheckSymbol(op string, expr Sexp) (*SexpSymbol, error) {
	switch e := expr.(type) {
	case *SexpSymbol:
		if e.name == "" || IsNumberLiteral(e.name) {
			return nil, fmt.Errorf("%s: '%s': %w", op, e.name, ErrInvalidSymbol)
		}
		return e, nil
	case SexpNumber:
		// a tree built by hand may carry the number itself
		return nil, fmt.Errorf("%s: '%s': %w", op, e.SexpString(), ErrInvalidSymbol)
	}
	return nil, fmt.Errorf("%s: %s '%s' is not an atom: %w", op, TypeName(expr), sexpStr(expr), ErrInvalidSymbol)
}
