package scheem

import (
	"strconv"
	"strings"
)

// Sexp is implemented by every runtime value. The set of implementations
// is closed: SexpNumber, SexpBool, SexpSentinel (nil), *SexpSymbol,
// SexpList, *SexpClosure and *SexpNative.
type Sexp interface {
	SexpString() string
}

type SexpSentinel int

const (
	SexpNil SexpSentinel = iota
	// SexpEnd is only produced by the parser to mark end of input.
	SexpEnd
)

func (sent SexpSentinel) SexpString() string {
	switch sent {
	case SexpNil:
		return "#nil"
	case SexpEnd:
		return "End"
	}
	return ""
}

type SexpNumber float64

func (f SexpNumber) SexpString() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

type SexpBool bool

const (
	SexpTrue  SexpBool = true
	SexpFalse SexpBool = false
)

func (b SexpBool) SexpString() string {
	if b {
		return "#t"
	}
	return "#f"
}

// SexpSymbol is an atom: a variable reference when evaluated,
// opaque data when quoted.
type SexpSymbol struct {
	name string
}

func (sym *SexpSymbol) SexpString() string {
	return sym.name
}

func (sym *SexpSymbol) Name() string {
	return sym.name
}

// MakeSymbol builds an atom without checking it. Use CheckSymbol where
// the name is going to be bound.
func MakeSymbol(name string) *SexpSymbol {
	return &SexpSymbol{name: name}
}

// SexpList is an immutable sequence. Operations that change a list
// build a new one; sub-slices may share storage with their source.
type SexpList []Sexp

func (list SexpList) SexpString() string {
	if len(list) == 0 {
		return "()"
	}
	var sb strings.Builder
	sb.WriteString("(")
	for i, x := range list {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(x.SexpString())
	}
	sb.WriteString(")")
	return sb.String()
}

func MakeList(expressions ...Sexp) SexpList {
	return SexpList(expressions)
}

// Cons returns a fresh list with head prepended; tail is left untouched.
func Cons(head Sexp, tail SexpList) SexpList {
	res := make(SexpList, 0, len(tail)+1)
	res = append(res, head)
	return append(res, tail...)
}

type ScheemUserFunction func(sch *Scheem, name string, args []Sexp) (Sexp, error)

// SexpNative is a procedure implemented in Go.
type SexpNative struct {
	name string
	fun  ScheemUserFunction
}

func MakeUserFunction(name string, fun ScheemUserFunction) *SexpNative {
	return &SexpNative{name: name, fun: fun}
}

func (sf *SexpNative) SexpString() string {
	return "#<builtin " + sf.name + ">"
}

func (sf *SexpNative) Name() string {
	return sf.name
}

// SexpClosure pairs an unevaluated body with the scope it was created in.
type SexpClosure struct {
	kind   string // lambda or lambda-one, for printing
	params []*SexpSymbol
	body   Sexp
	scope  *Scope
}

func (c *SexpClosure) SexpString() string {
	if c.kind == "lambda-one" && len(c.params) == 1 {
		return "(lambda-one " + c.params[0].name + " " + c.body.SexpString() + ")"
	}
	names := make([]string, len(c.params))
	for i, p := range c.params {
		names[i] = p.name
	}
	return "(lambda (" + strings.Join(names, " ") + ") " + c.body.SexpString() + ")"
}

func (c *SexpClosure) Params() []*SexpSymbol {
	return c.params
}

func (c *SexpClosure) Scope() *Scope {
	return c.scope
}
