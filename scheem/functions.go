package scheem

import (
	"fmt"
)

func NumericFunction(name string) ScheemUserFunction {
	return func(sch *Scheem, _ string, args []Sexp) (Sexp, error) {
		if len(args) < 1 {
			return SexpNil, arityErr(name, "at least 1", len(args))
		}

		var op NumericOp
		switch name {
		case "+":
			op = Add
		case "*":
			op = Mult
		}

		accum, err := RequireNumber(name, args[0])
		if err != nil {
			return SexpNil, err
		}
		for _, expr := range args[1:] {
			n, err := RequireNumber(name, expr)
			if err != nil {
				return SexpNil, err
			}
			accum, err = NumericDo(op, accum, n)
			if err != nil {
				return SexpNil, err
			}
		}
		return accum, nil
	}
}

// SubFunction negates one argument or subtracts two.
func SubFunction(sch *Scheem, name string, args []Sexp) (Sexp, error) {
	switch len(args) {
	case 1:
		n, err := RequireNumber(name, args[0])
		if err != nil {
			return SexpNil, err
		}
		return -n, nil
	case 2:
		return binaryNumeric(name, Sub, args)
	}
	return SexpNil, arityErr(name, "1 or 2", len(args))
}

func BinaryNumericFunction(name string) ScheemUserFunction {
	return func(sch *Scheem, _ string, args []Sexp) (Sexp, error) {
		if len(args) != 2 {
			return SexpNil, arityErr(name, "exactly 2", len(args))
		}
		var op NumericOp
		switch name {
		case "/":
			op = Div
		case "%":
			op = Mod
		}
		return binaryNumeric(name, op, args)
	}
}

func binaryNumeric(name string, op NumericOp, args []Sexp) (Sexp, error) {
	a, err := RequireNumber(name, args[0])
	if err != nil {
		return SexpNil, err
	}
	b, err := RequireNumber(name, args[1])
	if err != nil {
		return SexpNil, err
	}
	res, err := NumericDo(op, a, b)
	if err != nil {
		return SexpNil, fmt.Errorf("%s %s %s: %w", a.SexpString(), name, b.SexpString(), err)
	}
	return res, nil
}

func CompareFunction(name string) ScheemUserFunction {
	return func(sch *Scheem, _ string, args []Sexp) (Sexp, error) {
		if len(args) != 2 {
			return SexpNil, arityErr(name, "exactly 2", len(args))
		}

		switch name {
		case "=":
			return SexpBool(Equal(args[0], args[1])), nil
		case "<>":
			return SexpBool(!Equal(args[0], args[1])), nil
		}

		res, err := Compare(name, args[0], args[1])
		if err != nil {
			return SexpNil, err
		}

		cond := false
		switch name {
		case "<":
			cond = res < 0
		case ">":
			cond = res > 0
		case "<=":
			cond = res <= 0
		case ">=":
			cond = res >= 0
		}
		return SexpBool(cond), nil
	}
}

func ConsFunction(sch *Scheem, name string, args []Sexp) (Sexp, error) {
	if len(args) != 2 {
		return SexpNil, arityErr(name, "exactly 2", len(args))
	}
	tail, err := RequireList(name, args[1])
	if err != nil {
		return SexpNil, err
	}
	return Cons(args[0], tail), nil
}

func nonEmptyList(name string, args []Sexp) (SexpList, error) {
	if len(args) != 1 {
		return nil, arityErr(name, "exactly 1", len(args))
	}
	list, err := RequireList(name, args[0])
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, typeErr(name, "a non-empty list", list)
	}
	return list, nil
}

func CarFunction(sch *Scheem, name string, args []Sexp) (Sexp, error) {
	list, err := nonEmptyList(name, args)
	if err != nil {
		return SexpNil, err
	}
	return list[0], nil
}

func CdrFunction(sch *Scheem, name string, args []Sexp) (Sexp, error) {
	list, err := nonEmptyList(name, args)
	if err != nil {
		return SexpNil, err
	}
	// the slice is never written to, sharing the tail is safe
	return list[1:], nil
}

func TypeQueryFunction(name string) ScheemUserFunction {
	return func(sch *Scheem, _ string, args []Sexp) (Sexp, error) {
		if len(args) != 1 {
			return SexpNil, arityErr(name, "exactly 1", len(args))
		}
		var result bool
		switch name {
		case "nil?":
			result = IsNil(args[0])
		case "zero?":
			n, ok := args[0].(SexpNumber)
			result = ok && n == 0
		case "empty?":
			list, ok := args[0].(SexpList)
			result = ok && len(list) == 0
		case "list?":
			result = IsList(args[0])
		case "atom?":
			result = IsAtom(args[0])
		case "number?":
			result = IsNumber(args[0])
		case "bool?":
			result = IsBoolean(args[0])
		}
		return SexpBool(result), nil
	}
}

// AlertFunction hands its arguments to the host's alert sink and
// returns the first one.
func AlertFunction(sch *Scheem, name string, args []Sexp) (Sexp, error) {
	if sch.alertSink != nil {
		sch.alertSink(args)
	}
	if len(args) == 0 {
		return SexpNil, nil
	}
	return args[0], nil
}

// AlertName is the fixed name the host capability is registered under.
const AlertName = "alert"

func BuiltinFunctions() map[string]ScheemUserFunction {
	return map[string]ScheemUserFunction{
		"+":       NumericFunction("+"),
		"-":       SubFunction,
		"*":       NumericFunction("*"),
		"/":       BinaryNumericFunction("/"),
		"%":       BinaryNumericFunction("%"),
		"=":       CompareFunction("="),
		"<>":      CompareFunction("<>"),
		"<":       CompareFunction("<"),
		">":       CompareFunction(">"),
		"<=":      CompareFunction("<="),
		">=":      CompareFunction(">="),
		"cons":    ConsFunction,
		"car":     CarFunction,
		"cdr":     CdrFunction,
		"nil?":    TypeQueryFunction("nil?"),
		"zero?":   TypeQueryFunction("zero?"),
		"empty?":  TypeQueryFunction("empty?"),
		"list?":   TypeQueryFunction("list?"),
		"atom?":   TypeQueryFunction("atom?"),
		"number?": TypeQueryFunction("number?"),
		"bool?":   TypeQueryFunction("bool?"),
		AlertName: AlertFunction,
	}
}
