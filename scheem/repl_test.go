package scheem

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test090ReplReadsUntilBalanced(t *testing.T) {

	cv.Convey(`getExpression should keep reading lines until the parentheses close, ignoring parens in comments`, t, func() {
		cv.So(isBalanced("(+ 1 2)"), cv.ShouldBeTrue)
		cv.So(isBalanced("(+ 1 ; )\n"), cv.ShouldBeFalse)
		cv.So(isBalanced("x"), cv.ShouldBeTrue)

		reader := bufio.NewReader(strings.NewReader("(define x\n  ; (((\n  5)\n(+ x 1)\n"))
		first, err := getExpression(nil, "", reader)
		cv.So(err, cv.ShouldBeNil)
		xs, err := ParseString(first)
		cv.So(err, cv.ShouldBeNil)
		cv.So(len(xs), cv.ShouldEqual, 1)
		cv.So(xs[0].SexpString(), cv.ShouldEqual, "(define x 5)")

		second, err := getExpression(nil, "", reader)
		cv.So(err, cv.ShouldBeNil)
		cv.So(second, cv.ShouldEqual, "(+ x 1)")
	})
}

func Test091ConfigValidation(t *testing.T) {

	cv.Convey(`Flags should fill in the config and ValidateConfig should reject bad values`, t, func() {
		cfg := NewSchemeConfig("test")
		cfg.DefineFlags()
		err := cfg.Flags.Parse([]string{"-strictarity", "-maxdepth", "50", "-c", "(+ 1 2)", "script.scm"})
		cv.So(err, cv.ShouldBeNil)
		cv.So(cfg.ValidateConfig(), cv.ShouldBeNil)
		cv.So(cfg.StrictArity, cv.ShouldBeTrue)
		cv.So(cfg.MaxDepth, cv.ShouldEqual, 50)
		cv.So(cfg.Command, cv.ShouldEqual, "(+ 1 2)")
		cv.So(cfg.Prompt, cv.ShouldEqual, "scheem> ")
		cv.So(cfg.Flags.Args(), cv.ShouldResemble, []string{"script.scm"})

		bad := NewSchemeConfig("test")
		bad.MaxDepth = -1
		cv.So(bad.ValidateConfig(), cv.ShouldNotBeNil)

		missing := NewSchemeConfig("test")
		missing.LoadFile = filepath.Join(os.TempDir(), "scheem-no-such-file.msgp")
		cv.So(missing.ValidateConfig(), cv.ShouldNotBeNil)
	})
}

func Test092ReplMainRunsScriptsAndSaves(t *testing.T) {

	cv.Convey(`ReplMain should run a script file, seed bindings from JSON and save the top-level frame on exit`, t, func() {
		dir, err := os.MkdirTemp("", "scheem-repl")
		panicOn(err)
		defer os.RemoveAll(dir)

		script := filepath.Join(dir, "prog.scm")
		panicOn(os.WriteFile(script, []byte("; doubles the seed\n(define twice (* seed 2))\n"), 0644))
		bindings := filepath.Join(dir, "seed.json")
		panicOn(os.WriteFile(bindings, []byte(`{"seed": 21}`), 0644))
		save := filepath.Join(dir, "top.msgp")

		cfg := NewSchemeConfig("test")
		cfg.DefineFlags()
		panicOn(cfg.Flags.Parse([]string{"-quiet", "-exitonfail", "-bindings", bindings, "-save", save, script}))
		panicOn(cfg.ValidateConfig())
		cv.So(ReplMain(cfg), cv.ShouldEqual, 0)

		top := NewScope(nil, "top")
		cv.So(LoadScopeFromFile(save, top), cv.ShouldBeNil)
		cv.So(top.Map["twice"], cv.ShouldEqual, SexpNumber(42))
		cv.So(top.Map["seed"], cv.ShouldEqual, SexpNumber(21))

		bad := filepath.Join(dir, "bad.scm")
		panicOn(os.WriteFile(bad, []byte("(car '())\n"), 0644))
		cfg = NewSchemeConfig("test")
		cfg.DefineFlags()
		panicOn(cfg.Flags.Parse([]string{"-quiet", "-exitonfail", bad}))
		panicOn(cfg.ValidateConfig())
		cv.So(ReplMain(cfg), cv.ShouldEqual, 1)
	})
}
