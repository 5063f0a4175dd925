package scheem

import (
	"errors"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test060JsonRoundTrip(t *testing.T) {

	cv.Convey(`A data value should survive SexpToJson then JsonToSexp`, t, func() {
		sch := NewScheem(nil)
		x, err := sch.EvalString(`'(1 (a #t) #nil ())`, nil)
		cv.So(err, cv.ShouldBeNil)

		by, err := SexpToJson(x)
		cv.So(err, cv.ShouldBeNil)

		back, err := JsonToSexp(by)
		cv.So(err, cv.ShouldBeNil)
		cv.So(Equal(x, back), cv.ShouldBeTrue)

		// procedures have no data form
		proc, err := sch.EvalString(`(lambda-one x x)`, nil)
		cv.So(err, cv.ShouldBeNil)
		_, err = SexpToJson(MakeList(proc))
		cv.So(errors.Is(err, ErrType), cv.ShouldBeTrue)
	})
}

func Test061JsonToBindings(t *testing.T) {

	cv.Convey(`A JSON object should become a frame of bindings usable by EvalStringWith`, t, func() {
		m, err := JsonToBindings([]byte(`{"a": 4, "b": 1, "name": "bob", "xs": [1, 2, 3], "ok": true}`))
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(m), cv.ShouldEqual, 5)
		cv.So(m["name"].SexpString(), cv.ShouldEqual, "bob")
		cv.So(m["ok"], cv.ShouldEqual, SexpTrue)

		sch := NewScheem(nil)
		x, err := sch.EvalStringWith(`(+ a b (car (cdr xs)))`, m)
		cv.So(err, cv.ShouldBeNil)
		cv.So(x, cv.ShouldEqual, SexpNumber(7))

		_, err = JsonToBindings([]byte(`{"42": 1}`))
		cv.So(errors.Is(err, ErrInvalidSymbol), cv.ShouldBeTrue)

		_, err = JsonToBindings([]byte(`[1, 2]`))
		cv.So(err, cv.ShouldNotBeNil)

		_, err = JsonToBindings([]byte(`{"o": {"nested": 1}}`))
		cv.So(errors.Is(err, ErrType), cv.ShouldBeTrue)
	})
}

func Test062ResultStringAsJson(t *testing.T) {

	cv.Convey(`With -json the repl should print data results as JSON and fall back to the s-expression for procedures`, t, func() {
		sch := NewScheem(nil)
		js := sch.ResultString(MakeList(MakeSymbol("a"), SexpTrue), true)
		cv.So(js, cv.ShouldStartWith, "[")
		cv.So(js, cv.ShouldContainSubstring, `"a"`)
		cv.So(js, cv.ShouldContainSubstring, "true")
		cv.So(sch.ResultString(SexpNumber(3), false), cv.ShouldEqual, "3")
		car, err := sch.Builtins().LookupSymbol("car")
		cv.So(err, cv.ShouldBeNil)
		cv.So(sch.ResultString(car, true), cv.ShouldEqual, "#<builtin car>")
	})
}

func Test063NumericLookingStringsAreNotAtoms(t *testing.T) {

	cv.Convey(`A decoded string that would read as a number, or is empty, should not become an atom`, t, func() {
		_, err := JsonToBindings([]byte(`{"x": "3"}`))
		cv.So(errors.Is(err, ErrInvalidSymbol), cv.ShouldBeTrue)

		_, err = JsonToBindings([]byte(`{"x": ""}`))
		cv.So(errors.Is(err, ErrInvalidSymbol), cv.ShouldBeTrue)

		_, err = JsonToSexp([]byte(`["a", "-1.5"]`))
		cv.So(errors.Is(err, ErrInvalidSymbol), cv.ShouldBeTrue)

		x, err := JsonToSexp([]byte(`["a", "x1"]`))
		cv.So(err, cv.ShouldBeNil)
		cv.So(x.SexpString(), cv.ShouldEqual, "(a x1)")
	})
}
