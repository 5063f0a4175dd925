package scheem

import (
	"errors"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test010ParserBuildsTrees(t *testing.T) {

	cv.Convey(`Given well formed source, ParseString should return one tree per top-level expression`, t, func() {
		xs, err := ParseString("(define x 5)\n(+ x 1.5) #t #f #nil ()")
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 6)
		cv.So(xs[0].SexpString(), cv.ShouldEqual, "(define x 5)")
		cv.So(xs[1], cv.ShouldResemble, MakeList(MakeSymbol("+"), MakeSymbol("x"), SexpNumber(1.5)))
		cv.So(xs[2], cv.ShouldEqual, SexpTrue)
		cv.So(xs[3], cv.ShouldEqual, SexpFalse)
		cv.So(xs[4], cv.ShouldEqual, SexpNil)
		cv.So(xs[5], cv.ShouldResemble, SexpList{})
	})
}

func Test011ParserDesugarsQuote(t *testing.T) {

	cv.Convey(`'X should read as (quote X), nested quotes included`, t, func() {
		xs, err := ParseString("'(1 2 3) ''a")
		cv.So(err, cv.ShouldBeNil)
		cv.So(xs[0].SexpString(), cv.ShouldEqual, "(quote (1 2 3))")
		cv.So(xs[1].SexpString(), cv.ShouldEqual, "(quote (quote a))")
	})
}

func Test012ParserRejectsUnbalancedInput(t *testing.T) {

	cv.Convey(`Missing or surplus closing parens should be errors naming the line`, t, func() {
		_, err := ParseString("(+ 1\n(* 2 3)")
		cv.So(errors.Is(err, ErrUnexpectedEnd), cv.ShouldBeTrue)
		cv.So(err.Error(), cv.ShouldStartWith, "Error on line 2")

		_, err = ParseString("(+ 1 2))")
		cv.So(errors.Is(err, ErrUnexpectedRParen), cv.ShouldBeTrue)

		_, err = ParseString("'")
		cv.So(errors.Is(err, ErrUnexpectedEnd), cv.ShouldBeTrue)
	})
}

func Test013ParserEmptyInput(t *testing.T) {

	cv.Convey(`Whitespace and comments alone parse to no expressions`, t, func() {
		xs, err := ParseString("  ; nothing here\n\t")
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 0)
	})
}

func Test014ParserBoundsNesting(t *testing.T) {

	cv.Convey(`Nesting past MaxParseDepth should fail with ErrRecursionDepth instead of exhausting the stack`, t, func() {
		_, err := ParseString(strings.Repeat("(", MaxParseDepth+1))
		cv.So(errors.Is(err, ErrRecursionDepth), cv.ShouldBeTrue)

		_, err = ParseString(strings.Repeat("'", MaxParseDepth+1) + "a")
		cv.So(errors.Is(err, ErrRecursionDepth), cv.ShouldBeTrue)

		xs, err := ParseString(strings.Repeat("(", 50) + strings.Repeat(")", 50))
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 1)
	})
}
