package scheem

import (
	"errors"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test050ScopeChain(t *testing.T) {

	cv.Convey(`Lookup should walk outward, define should only touch its own frame, and update should write the nearest frame holding the name`, t, func() {
		outer := NewScope(nil, "outer", Binding{Name: "a", Value: SexpNumber(1)})
		inner := NewScope(outer, "inner", Binding{Name: "b", Value: SexpNumber(2)})

		v, err := inner.LookupSymbol("a")
		cv.So(err, cv.ShouldBeNil)
		cv.So(v, cv.ShouldEqual, SexpNumber(1))

		_, err = outer.LookupSymbol("b")
		cv.So(errors.Is(err, ErrUnboundVariable), cv.ShouldBeTrue)

		res, err := inner.DefineSymbol("a", func() (Sexp, error) { return SexpNumber(10), nil })
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldEqual, SexpDefined)
		cv.So(outer.Map["a"], cv.ShouldEqual, SexpNumber(1))

		ran := false
		_, err = inner.DefineSymbol("b", func() (Sexp, error) { ran = true; return SexpNil, nil })
		cv.So(errors.Is(err, ErrAlreadyDefined), cv.ShouldBeTrue)
		cv.So(ran, cv.ShouldBeFalse)

		res, err = inner.UpdateSymbol("b", func() (Sexp, error) { return SexpNumber(20), nil })
		cv.So(err, cv.ShouldBeNil)
		cv.So(res, cv.ShouldEqual, SexpNumber(20))

		delete(inner.Map, "a")
		_, err = inner.UpdateSymbol("a", func() (Sexp, error) { return SexpNumber(5), nil })
		cv.So(err, cv.ShouldBeNil)
		cv.So(outer.Map["a"], cv.ShouldEqual, SexpNumber(5))

		_, err = inner.UpdateSymbol("zz", func() (Sexp, error) { ran = true; return SexpNil, nil })
		cv.So(errors.Is(err, ErrUnboundVariable), cv.ShouldBeTrue)
		cv.So(ran, cv.ShouldBeFalse)

		cv.So(inner.Root(), cv.ShouldEqual, outer)
		cv.So(inner.Depth(), cv.ShouldEqual, 2)
	})
}

func Test051ScopeFromMapCopies(t *testing.T) {

	cv.Convey(`Defines in a frame built from a map should not write back to the map`, t, func() {
		m := map[string]Sexp{"x": SexpNumber(1)}
		s := ScopeFromMap(nil, "top", m)
		_, err := s.DefineSymbol("y", func() (Sexp, error) { return SexpNumber(2), nil })
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(m), cv.ShouldEqual, 1)
		cv.So(len(s.Map), cv.ShouldEqual, 2)
	})
}

func Test052ScopeShowIsSorted(t *testing.T) {

	cv.Convey(`Show should list a frame's own bindings in name order`, t, func() {
		s := NewScope(nil, "top",
			Binding{Name: "zeta", Value: SexpNumber(3)},
			Binding{Name: "alpha", Value: MakeList(SexpNumber(1), SexpTrue)})
		out := s.Show("test")
		cv.So(out, cv.ShouldContainSubstring, "alpha -> (1 #t)")
		cv.So(out, cv.ShouldContainSubstring, "zeta -> 3")
		cv.So(strings.Index(out, "alpha"), cv.ShouldBeLessThan, strings.Index(out, "zeta"))

		cv.So(NewScope(nil, "empty").Show("test"), cv.ShouldContainSubstring, "no symbols")

		sch := NewScheem(nil)
		cv.So(sch.Builtins().Show("b"), cv.ShouldContainSubstring, "builtin scope")
	})
}
