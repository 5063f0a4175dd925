package scheem

import (
	"fmt"
	"sort"
	"strings"
)

// Scopes map names to values. Each scope points at exactly one outer
// scope; the builtin scope is the root of every chain built by a
// Scheem. Closures hold on to the scope they were created in, so a
// scope is shared by pointer and never copied.
type Scope struct {
	Map       map[string]Sexp
	Name      string
	Parent    *Scope
	IsBuiltin bool
}

// SexpDefined is what define evaluates to.
const SexpDefined = SexpNumber(0)

// Binding is one (name, value) pair for NewScope.
type Binding struct {
	Name  string
	Value Sexp
}

func NewScope(parent *Scope, name string, bindings ...Binding) *Scope {
	s := &Scope{
		Map:    make(map[string]Sexp, len(bindings)),
		Name:   name,
		Parent: parent,
	}
	for _, b := range bindings {
		s.Map[b.Name] = b.Value
	}
	return s
}

// ScopeFromMap wraps a flat mapping as a frame of its own. The map is
// copied, later defines do not leak back to the caller's map.
func ScopeFromMap(parent *Scope, name string, m map[string]Sexp) *Scope {
	s := NewScope(parent, name)
	for k, v := range m {
		s.Map[k] = v
	}
	return s
}

// LookupSymbol searches this scope then its ancestors. A name held
// with a nil value is a parameter that got no argument: it shadows any
// outer binding but is still unbound.
func (scope *Scope) LookupSymbol(name string) (Sexp, error) {
	for s := scope; s != nil; s = s.Parent {
		if val, ok := s.Map[name]; ok {
			if val == nil {
				break
			}
			return val, nil
		}
	}
	return SexpNil, fmt.Errorf("'%s': %w", name, ErrUnboundVariable)
}

// DefineSymbol adds name to this scope only. The value thunk runs after
// the name has been checked, so a failed define evaluates nothing.
func (scope *Scope) DefineSymbol(name string, val func() (Sexp, error)) (Sexp, error) {
	if _, already := scope.Map[name]; already {
		return SexpNil, fmt.Errorf("'%s': %w", name, ErrAlreadyDefined)
	}
	v, err := val()
	if err != nil {
		return SexpNil, err
	}
	if scope.Map == nil {
		scope.Map = make(map[string]Sexp)
	}
	scope.Map[name] = v
	return SexpDefined, nil
}

// UpdateSymbol overwrites name in the nearest scope holding it, an
// unbound parameter included, and returns the new value.
func (scope *Scope) UpdateSymbol(name string, val func() (Sexp, error)) (Sexp, error) {
	for s := scope; s != nil; s = s.Parent {
		if _, ok := s.Map[name]; !ok {
			continue
		}
		v, err := val()
		if err != nil {
			return SexpNil, err
		}
		s.Map[name] = v
		return v, nil
	}
	return SexpNil, fmt.Errorf("'%s': %w", name, ErrUnboundVariable)
}

// Root returns the outermost scope of the chain.
func (scope *Scope) Root() *Scope {
	s := scope
	for s.Parent != nil {
		s = s.Parent
	}
	return s
}

// Depth counts the scopes from here to the root, inclusive.
func (scope *Scope) Depth() int {
	n := 0
	for s := scope; s != nil; s = s.Parent {
		n++
	}
	return n
}

type SymtabE struct {
	Key string
	Val string
}

type SymtabSorter []*SymtabE

func (a SymtabSorter) Len() int           { return len(a) }
func (a SymtabSorter) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a SymtabSorter) Less(i, j int) bool { return a[i].Key < a[j].Key }

// Show lists this scope's own bindings sorted by name.
func (scope *Scope) Show(label string) string {
	s := fmt.Sprintf(" %s  %s (%p)\n", label, scope.Name, scope)
	rep4 := strings.Repeat(" ", 4)
	if scope.IsBuiltin {
		s += fmt.Sprintf("%s (builtin scope - %d procedures)\n", rep4, len(scope.Map))
		return s
	}
	if len(scope.Map) == 0 {
		s += fmt.Sprintf("%s empty-scope: no symbols\n", rep4)
		return s
	}
	sortme := []*SymtabE{}
	for name, val := range scope.Map {
		sortme = append(sortme, &SymtabE{Key: name, Val: sexpStr(val)})
	}
	sort.Sort(SymtabSorter(sortme))
	for i := range sortme {
		s += fmt.Sprintf("%s %s -> %s\n", rep4, sortme[i].Key, sortme[i].Val)
	}
	return s
}
