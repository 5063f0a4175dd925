package scheem

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test080ParseCacheHitsOnRepeatedSource(t *testing.T) {

	cv.Convey(`Parsing the same text twice should parse it once`, t, func() {
		c := NewParseCache(2)
		xs, err := c.Parse("(+ 1 2)")
		cv.So(err, cv.ShouldBeNil)
		again, err := c.Parse("(+ 1 2)")
		cv.So(err, cv.ShouldBeNil)
		cv.So(c.Hits, cv.ShouldEqual, 1)
		cv.So(c.Misses, cv.ShouldEqual, 1)
		cv.So(again, cv.ShouldResemble, xs)

		_, err = c.Parse("(+ 1")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(c.Len(), cv.ShouldEqual, 1)

		c.Parse("a")
		c.Parse("b")
		cv.So(c.Len(), cv.ShouldBeLessThanOrEqualTo, 2)
	})
}

func Test081CachedTreesAreReusable(t *testing.T) {

	cv.Convey(`Evaluating a cached tree in different frames should not leak state between them`, t, func() {
		sch := NewScheem(nil)
		src := `(begin (define v 1) (set! v (+ v 1)) v)`
		for i := 0; i < 3; i++ {
			x, err := sch.EvalString(src, nil)
			cv.So(err, cv.ShouldBeNil)
			cv.So(x, cv.ShouldEqual, SexpNumber(2))
		}
		cv.So(sch.cache.Hits, cv.ShouldEqual, 2)
	})
}

func Test082Blake2bIsStable(t *testing.T) {

	cv.Convey(`The cache key should depend only on the source bytes`, t, func() {
		cv.So(Blake2bUint64([]byte("(car x)")), cv.ShouldEqual, Blake2bUint64([]byte("(car x)")))
		cv.So(Blake2bUint64([]byte("(car x)")), cv.ShouldNotEqual, Blake2bUint64([]byte("(cdr x)")))
	})
}
