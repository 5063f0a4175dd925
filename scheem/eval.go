package scheem

import (
	"fmt"
)

// Eval evaluates expr in scope. Lists headed by one of the special
// form names are dispatched on that name; special forms cannot be
// shadowed by bindings. Every other list is a procedure application.
func (sch *Scheem) Eval(expr Sexp, scope *Scope) (Sexp, error) {
	sch.depth++
	defer func() { sch.depth-- }()
	if sch.maxDepth > 0 && sch.depth > sch.maxDepth {
		return SexpNil, fmt.Errorf("evaluating '%s' at depth %d: %w", sexpStr(expr), sch.depth, ErrRecursionDepth)
	}
	if sch.debugExec {
		TSPrintf("eval depth %d: %s", sch.depth, sexpStr(expr))
	}

	switch e := expr.(type) {
	case SexpNumber, SexpBool:
		return e, nil
	case SexpSentinel:
		if e == SexpNil {
			return e, nil
		}
	case *SexpSymbol:
		return sch.evalSymbol(e, scope)
	case SexpList:
		return sch.evalList(e, scope)
	case *SexpClosure, *SexpNative:
		// procedure values spliced into a tree by the host
		return e, nil
	}
	return SexpNil, fmt.Errorf("cannot evaluate %s '%s': %w", TypeName(expr), sexpStr(expr), ErrInvalidExpression)
}

func (sch *Scheem) evalSymbol(sym *SexpSymbol, scope *Scope) (Sexp, error) {
	switch sym.name {
	case trueToken:
		return SexpTrue, nil
	case falseToken:
		return SexpFalse, nil
	case nilToken:
		return SexpNil, nil
	case errorToken:
		return SexpNil, ErrExplicit
	}
	return scope.LookupSymbol(sym.name)
}

func (sch *Scheem) evalList(list SexpList, scope *Scope) (Sexp, error) {
	if len(list) == 0 {
		return SexpNil, fmt.Errorf("cannot apply the empty list (): %w", ErrInvalidExpression)
	}

	if head, ok := list[0].(*SexpSymbol); ok {
		if sch.debugExec {
			VPrintf("form '%s' with %d operands", head.name, len(list)-1)
		}
		switch head.name {
		case "quote":
			return sch.evalQuote(list)
		case "define":
			return sch.evalDefine(list, scope)
		case "set!":
			return sch.evalSet(list, scope)
		case "begin":
			return sch.evalBegin(list, scope)
		case "if":
			return sch.evalIf(list, scope)
		case "and":
			return sch.evalAndOr(list, scope, false)
		case "or":
			return sch.evalAndOr(list, scope, true)
		case "not":
			return sch.evalNot(list, scope)
		case "let-one":
			return sch.evalLetOne(list, scope)
		case "let":
			return sch.evalLet(list, scope)
		case "lambda-one":
			return sch.evalLambdaOne(list, scope)
		case "lambda":
			return sch.evalLambda(list, scope)
		}
	}
	return sch.evalApplication(list, scope)
}

// formArity checks the operand count of a special form; list includes
// the head.
func formArity(list SexpList, min, max int) error {
	n := len(list) - 1
	if n >= min && (max < 0 || n <= max) {
		return nil
	}
	var want string
	switch {
	case max < 0:
		want = fmt.Sprintf("at least %d", min)
	case min == max:
		want = fmt.Sprintf("exactly %d", min)
	default:
		want = fmt.Sprintf("%d to %d", min, max)
	}
	return arityErr(list[0].SexpString(), want, n)
}

func (sch *Scheem) evalQuote(list SexpList) (Sexp, error) {
	if err := formArity(list, 1, 1); err != nil {
		return SexpNil, err
	}
	return list[1], nil
}

func (sch *Scheem) evalDefine(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 2, 2); err != nil {
		return SexpNil, err
	}
	sym, err := CheckSymbol("define", list[1])
	if err != nil {
		return SexpNil, err
	}
	return scope.DefineSymbol(sym.name, func() (Sexp, error) {
		return sch.Eval(list[2], scope)
	})
}

func (sch *Scheem) evalSet(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 2, 2); err != nil {
		return SexpNil, err
	}
	sym, err := CheckSymbol("set!", list[1])
	if err != nil {
		return SexpNil, err
	}
	return scope.UpdateSymbol(sym.name, func() (Sexp, error) {
		return sch.Eval(list[2], scope)
	})
}

func (sch *Scheem) evalBegin(list SexpList, scope *Scope) (Sexp, error) {
	var res Sexp = SexpNil
	var err error
	for _, x := range list[1:] {
		res, err = sch.Eval(x, scope)
		if err != nil {
			return SexpNil, err
		}
	}
	return res, nil
}

func (sch *Scheem) evalCondition(op string, x Sexp, scope *Scope) (SexpBool, error) {
	v, err := sch.Eval(x, scope)
	if err != nil {
		return false, err
	}
	return RequireBoolean(op, v)
}

func (sch *Scheem) evalIf(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 1, 3); err != nil {
		return SexpNil, err
	}
	cond, err := sch.evalCondition("if", list[1], scope)
	if err != nil {
		return SexpNil, err
	}
	if cond {
		if len(list) > 2 {
			return sch.Eval(list[2], scope)
		}
		return SexpTrue, nil
	}
	if len(list) > 3 {
		return sch.Eval(list[3], scope)
	}
	return SexpFalse, nil
}

// evalAndOr stops at the first operand equal to stopOn and returns it:
// false for and, true for or.
func (sch *Scheem) evalAndOr(list SexpList, scope *Scope, stopOn SexpBool) (Sexp, error) {
	if err := formArity(list, 1, -1); err != nil {
		return SexpNil, err
	}
	op := list[0].SexpString()
	for _, x := range list[1:] {
		b, err := sch.evalCondition(op, x, scope)
		if err != nil {
			return SexpNil, err
		}
		if b == stopOn {
			return stopOn, nil
		}
	}
	return !stopOn, nil
}

func (sch *Scheem) evalNot(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 1, 1); err != nil {
		return SexpNil, err
	}
	b, err := sch.evalCondition("not", list[1], scope)
	if err != nil {
		return SexpNil, err
	}
	return !b, nil
}

func (sch *Scheem) evalLetOne(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 3, 3); err != nil {
		return SexpNil, err
	}
	sym, err := CheckSymbol("let-one", list[1])
	if err != nil {
		return SexpNil, err
	}
	val, err := sch.Eval(list[2], scope)
	if err != nil {
		return SexpNil, err
	}
	frame := NewScope(scope, "let-one", Binding{Name: sym.name, Value: val})
	return sch.Eval(list[3], frame)
}

// evalLet evaluates every binding expression in the enclosing scope, so
// the bindings cannot see each other.
func (sch *Scheem) evalLet(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 2, 2); err != nil {
		return SexpNil, err
	}
	pairs, err := RequireList("let", list[1])
	if err != nil {
		return SexpNil, err
	}
	frame := NewScope(scope, "let")
	for _, p := range pairs {
		pair, ok := p.(SexpList)
		if !ok || len(pair) != 2 {
			return SexpNil, typeErr("let", "a (name value) binding", p)
		}
		sym, err := CheckSymbol("let", pair[0])
		if err != nil {
			return SexpNil, err
		}
		val, err := sch.Eval(pair[1], scope)
		if err != nil {
			return SexpNil, err
		}
		frame.Map[sym.name] = val
	}
	return sch.Eval(list[2], frame)
}

func (sch *Scheem) evalLambdaOne(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 2, 2); err != nil {
		return SexpNil, err
	}
	sym, err := CheckSymbol("lambda-one", list[1])
	if err != nil {
		return SexpNil, err
	}
	return &SexpClosure{
		kind:   "lambda-one",
		params: []*SexpSymbol{sym},
		body:   list[2],
		scope:  scope,
	}, nil
}

func (sch *Scheem) evalLambda(list SexpList, scope *Scope) (Sexp, error) {
	if err := formArity(list, 2, 2); err != nil {
		return SexpNil, err
	}
	names, err := RequireList("lambda", list[1])
	if err != nil {
		return SexpNil, err
	}
	params := make([]*SexpSymbol, len(names))
	for i, x := range names {
		params[i], err = CheckSymbol("lambda", x)
		if err != nil {
			return SexpNil, err
		}
	}
	return &SexpClosure{
		kind:   "lambda",
		params: params,
		body:   list[2],
		scope:  scope,
	}, nil
}

func (sch *Scheem) evalApplication(list SexpList, scope *Scope) (Sexp, error) {
	proc, err := sch.Eval(list[0], scope)
	if err != nil {
		return SexpNil, err
	}
	if !IsProcedure(proc) {
		return SexpNil, fmt.Errorf("head of '%s' is %s '%s', not a procedure: %w",
			list.SexpString(), TypeName(proc), sexpStr(proc), ErrInvalidExpression)
	}
	args := make([]Sexp, 0, len(list)-1)
	for _, x := range list[1:] {
		v, err := sch.Eval(x, scope)
		if err != nil {
			return SexpNil, err
		}
		args = append(args, v)
	}
	return sch.Apply(proc, args)
}
