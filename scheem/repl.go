package scheem

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
)

var precounts map[string]int
var postcounts map[string]int

func CountPreHook(sch *Scheem, name string, args []Sexp) {
	precounts[name] += 1
}

func CountPostHook(sch *Scheem, name string, retval Sexp) {
	postcounts[name] += 1
}

func getLine(reader *bufio.Reader) (string, error) {
	line := make([]byte, 0)
	for {
		linepart, hasMore, err := reader.ReadLine()
		if err != nil {
			return "", err
		}
		line = append(line, linepart...)
		if !hasMore {
			break
		}
	}
	return string(line), nil
}

// isBalanced reports whether every '(' in str has been closed.
// Comments are skipped.
func isBalanced(str string) bool {
	parens := 0
	inComment := false
	for _, c := range str {
		switch {
		case inComment:
			if c == '\n' {
				inComment = false
			}
		case c == ';':
			inComment = true
		case c == '(':
			parens++
		case c == ')':
			parens--
		}
	}
	return parens <= 0
}

var continuationPrompt = "... "

// getExpression reads lines until the parentheses balance. liner reads
// Stdin only; pr is nil when reading from reader instead.
func getExpression(pr *Prompter, prompt string, reader *bufio.Reader) (string, error) {
	next := func(p string) (string, error) {
		if pr == nil {
			fmt.Print(p)
			return getLine(reader)
		}
		return pr.Getline(&p)
	}

	line, err := next(prompt)
	if err != nil {
		return "", err
	}
	for !isBalanced(line) {
		nextline, err := next(continuationPrompt)
		if err != nil {
			return "", err
		}
		line += "\n" + nextline
	}
	return line, nil
}

func (sch *Scheem) ResultString(x Sexp, asJson bool) string {
	if !asJson {
		return x.SexpString()
	}
	by, err := SexpToJson(x)
	if err != nil {
		return x.SexpString()
	}
	return strings.TrimSpace(string(by))
}

func Repl(sch *Scheem, cfg *SchemeConfig) {
	var reader *bufio.Reader
	var pr *Prompter
	if cfg.NoLiner {
		// Useful for not full terminal env, like under test.
		reader = bufio.NewReader(os.Stdin)
	} else {
		pr = NewPrompter(sch, cfg.Prompt)
		defer pr.Close()
	}

	if !cfg.Quiet {
		fmt.Printf("scheem version %s\n", Version())
		fmt.Printf("press tab (repeatedly) to get completion suggestions. Ctrl-d to exit.\n")
	}

	for {
		line, err := getExpression(pr, cfg.Prompt, reader)
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return
			}
			fmt.Println(err)
			continue
		}

		first := strings.TrimSpace(line)
		if first == "" {
			continue
		}
		switch first {
		case ".quit":
			return
		case ".ls":
			fmt.Print(sch.Global().Show("top-level"))
			continue
		case ".verb":
			Verbose = !Verbose
			fmt.Printf("verbose: %v.\n", Verbose)
			continue
		case ".trace":
			sch.debugExec = !sch.debugExec
			fmt.Printf("trace: %v.\n", sch.debugExec)
			continue
		}

		expr, err := sch.EvalString(line, sch.Global())
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(sch.ResultString(expr, cfg.JsonOutput))
	}
}

func runScript(sch *Scheem, fname string) error {
	file, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer file.Close()

	xs, err := ParseStream(bufio.NewReader(file))
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	_, err = sch.EvalExpressions(xs, sch.Global())
	return err
}

func printCounts(label string, counts map[string]int) {
	fmt.Println(label)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("\t%s: %d\n", name, counts[name])
	}
}

// ReplMain is like main() for a standalone repl, in library form. It
// returns the process exit code.
func ReplMain(cfg *SchemeConfig) (exitCode int) {
	sch := NewScheem(cfg)

	if cfg.BindingsFile != "" {
		by, err := os.ReadFile(cfg.BindingsFile)
		if err == nil {
			var m map[string]Sexp
			m, err = JsonToBindings(by)
			for k, v := range m {
				sch.Global().Map[k] = v
			}
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "-bindings: %v\n", err)
			return 1
		}
	}
	if cfg.LoadFile != "" {
		if err := LoadScopeFromFile(cfg.LoadFile, sch.Global()); err != nil {
			fmt.Fprintf(os.Stderr, "-load: %v\n", err)
			return 1
		}
	}

	if cfg.CpuProfile != "" {
		f, err := os.Create(cfg.CpuProfile)
		if err != nil {
			fmt.Println(err)
			return 1
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			fmt.Println(err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	precounts = make(map[string]int)
	postcounts = make(map[string]int)

	if cfg.CountFuncCalls {
		sch.AddPreHook(CountPreHook)
		sch.AddPostHook(CountPostHook)
		defer func() {
			printCounts("Pre:", precounts)
			printCounts("Post:", postcounts)
		}()
	}

	if cfg.SaveFile != "" {
		defer func() {
			skipped, err := SaveScopeToFile(cfg.SaveFile, sch.Global(), true)
			if err != nil {
				fmt.Fprintf(os.Stderr, "-save: %v\n", err)
				exitCode = 1
				return
			}
			if len(skipped) > 0 && !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "-save: procedures not saved: %s\n", strings.Join(skipped, " "))
			}
		}()
	}

	if cfg.MemProfile != "" {
		defer func() {
			f, err := os.Create(cfg.MemProfile)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer f.Close()
			if err := pprof.Lookup("heap").WriteTo(f, 1); err != nil {
				fmt.Println(err)
			}
		}()
	}

	if cfg.Command != "" {
		expr, err := sch.EvalString(cfg.Command, sch.Global())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		fmt.Println(sch.ResultString(expr, cfg.JsonOutput))
		return 0
	}

	args := cfg.Flags.Args()
	if len(args) > 0 {
		err := runScript(sch, args[0])
		if err == nil {
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if cfg.ExitOnFailure || errors.Is(err, os.ErrNotExist) {
			return 1
		}
	}
	Repl(sch, cfg)
	return 0
}
