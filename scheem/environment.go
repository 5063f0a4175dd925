package scheem

import (
	"fmt"
	"io"

	"github.com/shurcooL/go-goon"
)

type PreHook func(*Scheem, string, []Sexp)
type PostHook func(*Scheem, string, Sexp)

// Scheem evaluates expressions against chains of Scopes rooted at its
// builtin scope. A Scheem is not safe for concurrent use; give each
// goroutine its own, and don't share a mutable Scope between them.
type Scheem struct {
	builtins *Scope
	global   *Scope
	cache    *ParseCache

	alertSink func(args []Sexp)

	strictArity bool
	maxDepth    int
	depth       int
	debugExec   bool

	before []PreHook
	after  []PostHook
}

const DefaultMaxDepth = 10000

func NewScheem(cfg *SchemeConfig) *Scheem {
	if cfg == nil {
		cfg = NewSchemeConfig("scheem")
		panicOn(cfg.ValidateConfig())
	}
	sch := &Scheem{
		strictArity: cfg.StrictArity,
		maxDepth:    cfg.MaxDepth,
		debugExec:   cfg.Trace,
		cache:       NewParseCache(DefaultParseCacheSize),
		before:      []PreHook{},
		after:       []PostHook{},
	}
	sch.alertSink = GoonAlertSink(OurStdout)

	sch.builtins = NewScope(nil, "builtins")
	sch.builtins.IsBuiltin = true
	for name, function := range BuiltinFunctions() {
		sch.AddFunction(name, function)
	}
	sch.global = NewScope(sch.builtins, "global")
	return sch
}

// GoonAlertSink is the default alert sink: a goon dump of the
// arguments written to w.
func GoonAlertSink(w io.Writer) func(args []Sexp) {
	return func(args []Sexp) {
		fmt.Fprint(w, goon.Sdump(args))
	}
}

// SetAlertSink replaces what alert does with its arguments. A nil sink
// makes alert a no-op that still returns its first argument.
func (sch *Scheem) SetAlertSink(sink func(args []Sexp)) {
	sch.alertSink = sink
}

// AddFunction registers a native procedure in the builtin scope,
// replacing any builtin of the same name.
func (sch *Scheem) AddFunction(name string, function ScheemUserFunction) {
	sch.builtins.Map[name] = MakeUserFunction(name, function)
}

func (sch *Scheem) Builtins() *Scope {
	return sch.builtins
}

// Global is the long-lived top-level scope used by the repl.
func (sch *Scheem) Global() *Scope {
	return sch.global
}

// NewTopScope returns an empty frame directly over the builtins.
func (sch *Scheem) NewTopScope() *Scope {
	return NewScope(sch.builtins, "top")
}

// attach makes the builtin scope the root ancestor of scope's chain.
// Only the outermost frame is re-linked; the frames in between stay
// where they are.
func (sch *Scheem) attach(scope *Scope) *Scope {
	if scope == nil {
		return sch.NewTopScope()
	}
	root := scope.Root()
	if root == sch.builtins || root.IsBuiltin {
		return scope
	}
	root.Parent = sch.builtins
	return scope
}

// EvalParsed evaluates one already parsed expression. A nil scope means
// a fresh top-level frame.
func (sch *Scheem) EvalParsed(expr Sexp, scope *Scope) (Sexp, error) {
	return sch.Eval(expr, sch.attach(scope))
}

// EvalParsedWith wraps bindings in a new top-level frame and evaluates
// expr there.
func (sch *Scheem) EvalParsedWith(expr Sexp, bindings map[string]Sexp) (Sexp, error) {
	return sch.EvalParsed(expr, ScopeFromMap(sch.builtins, "top", bindings))
}

// EvalExpressions evaluates each expression in order in the same scope
// and returns the last value.
func (sch *Scheem) EvalExpressions(xs []Sexp, scope *Scope) (Sexp, error) {
	scope = sch.attach(scope)
	var res Sexp = SexpNil
	var err error
	for _, x := range xs {
		res, err = sch.EvalParsed(x, scope)
		if err != nil {
			return SexpNil, err
		}
	}
	return res, nil
}

// EvalString parses src and evaluates its expressions in scope.
func (sch *Scheem) EvalString(src string, scope *Scope) (Sexp, error) {
	xs, err := sch.cache.Parse(src)
	if err != nil {
		return SexpNil, err
	}
	return sch.EvalExpressions(xs, scope)
}

func (sch *Scheem) EvalStringWith(src string, bindings map[string]Sexp) (Sexp, error) {
	return sch.EvalString(src, ScopeFromMap(sch.builtins, "top", bindings))
}

func (sch *Scheem) AddPreHook(fun PreHook) {
	sch.before = append(sch.before, fun)
}

func (sch *Scheem) AddPostHook(fun PostHook) {
	sch.after = append(sch.after, fun)
}

// Apply calls a procedure value with already evaluated arguments.
func (sch *Scheem) Apply(proc Sexp, args []Sexp) (res Sexp, err error) {
	var name string
	switch f := proc.(type) {
	case *SexpNative:
		name = f.name
	case *SexpClosure:
		name = f.kind
	default:
		return SexpNil, fmt.Errorf("cannot apply %s '%s': %w", TypeName(proc), sexpStr(proc), ErrInvalidExpression)
	}

	for _, prehook := range sch.before {
		prehook(sch, name, args)
	}

	switch f := proc.(type) {
	case *SexpNative:
		res, err = sch.callNative(f, args)
	case *SexpClosure:
		res, err = sch.callClosure(f, args)
	}
	if err != nil {
		return SexpNil, err
	}

	for _, posthook := range sch.after {
		posthook(sch, name, res)
	}
	return res, nil
}

func (sch *Scheem) callNative(f *SexpNative, args []Sexp) (res Sexp, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = SexpNil
			err = fmt.Errorf("caught panic during call of builtin '%s': %v", f.name, r)
		}
	}()
	return f.fun(sch, f.name, args)
}

// callClosure binds parameters to arguments by position in a fresh
// scope over the closure's own. Unless strictArity is set, surplus
// arguments are dropped. Unmatched parameters are still entered in the
// frame, with a nil value, so they shadow outer names but fail lookup.
func (sch *Scheem) callClosure(c *SexpClosure, args []Sexp) (Sexp, error) {
	if sch.strictArity && len(args) != len(c.params) {
		return SexpNil, arityErr(c.SexpString(), fmt.Sprintf("exactly %d", len(c.params)), len(args))
	}
	frame := NewScope(c.scope, c.kind)
	for i, p := range c.params {
		if i < len(args) {
			frame.Map[p.name] = args[i]
		} else {
			frame.Map[p.name] = nil
		}
	}
	return sch.Eval(c.body, frame)
}
