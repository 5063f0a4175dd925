package scheem

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glycerine/liner"
)

var historyFn = filepath.Join(os.Getenv("HOME"), ".scheemhist")

var specialForms = []string{"quote", "define", "set!", "begin", "if",
	"and", "or", "not", "let-one", "let", "lambda-one", "lambda"}

// completionKeywords offers "(name " for every special form and builtin.
func completionKeywords(sch *Scheem) []string {
	kw := []string{`(`}
	for _, f := range specialForms {
		kw = append(kw, "("+f+" ")
	}
	names := make([]string, 0, len(sch.builtins.Map))
	for name := range sch.builtins.Map {
		names = append(names, "("+name+" ")
	}
	sort.Strings(names)
	return append(kw, names...)
}

type Prompter struct {
	prompt   string
	prompter *liner.State
}

func NewPrompter(sch *Scheem, prompt string) *Prompter {
	p := &Prompter{
		prompt:   prompt,
		prompter: liner.NewLiner(),
	}

	p.prompter.SetCtrlCAborts(false)

	keywords := completionKeywords(sch)
	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range keywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if f, err := os.Open(historyFn); err == nil {
		p.prompter.ReadHistory(f)
		f.Close()
	}

	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if f, err := os.Create(historyFn); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

func (p *Prompter) Getline(prompt *string) (line string, err error) {
	if prompt == nil {
		line, err = p.prompter.Prompt(p.prompt)
	} else {
		line, err = p.prompter.Prompt(*prompt)
	}
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
