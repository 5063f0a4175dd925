package scheem

import (
	"flag"
	"fmt"
)

// configure a scheem interpreter and repl
type SchemeConfig struct {
	CpuProfile     string
	MemProfile     string
	ExitOnFailure  bool
	CountFuncCalls bool
	Flags          *flag.FlagSet
	Command        string
	Quiet          bool
	Trace          bool
	JsonOutput     bool

	// BindingsFile is a JSON object of initial top-level bindings.
	BindingsFile string
	// LoadFile and SaveFile hold the top-level frame between runs.
	LoadFile string
	SaveFile string

	StrictArity bool
	MaxDepth    int

	// liner bombs under emacs, avoid it with this flag.
	NoLiner bool
	Prompt  string // default "scheem> "
}

func NewSchemeConfig(cmdname string) *SchemeConfig {
	return &SchemeConfig{
		Flags:    flag.NewFlagSet(cmdname, flag.ExitOnError),
		MaxDepth: DefaultMaxDepth,
	}
}

// call DefineFlags before myflags.Parse()
func (c *SchemeConfig) DefineFlags() {
	c.Flags.StringVar(&c.CpuProfile, "cpuprofile", "", "write cpu profile to file")
	c.Flags.StringVar(&c.MemProfile, "memprofile", "", "write mem profile to file")
	c.Flags.BoolVar(&c.ExitOnFailure, "exitonfail", false, "exit on failure instead of starting repl")
	c.Flags.BoolVar(&c.CountFuncCalls, "countcalls", false, "count how many times each procedure is applied")
	c.Flags.StringVar(&c.Command, "c", "", "expressions to evaluate")
	c.Flags.BoolVar(&c.Quiet, "quiet", false, "start repl without printing the banner")
	c.Flags.BoolVar(&c.Trace, "trace", false, "trace evaluation (warning: very verbose and slow)")
	c.Flags.BoolVar(&c.JsonOutput, "json", false, "print results as JSON")
	c.Flags.StringVar(&c.BindingsFile, "bindings", "", "JSON object file of initial top-level bindings")
	c.Flags.StringVar(&c.LoadFile, "load", "", "msgpack file of top-level bindings saved by -save")
	c.Flags.StringVar(&c.SaveFile, "save", "", "on exit, save top-level bindings to this msgpack file")
	c.Flags.BoolVar(&c.StrictArity, "strictarity", false, "fail when a lambda gets more or fewer arguments than parameters")
	c.Flags.IntVar(&c.MaxDepth, "maxdepth", DefaultMaxDepth, "maximum evaluation nesting depth; 0 means unlimited")
	c.Flags.BoolVar(&c.NoLiner, "noliner", false, "read stdin without line editing")
}

// call c.ValidateConfig() after myflags.Parse()
func (c *SchemeConfig) ValidateConfig() error {
	if c.Prompt == "" {
		c.Prompt = "scheem> "
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("-maxdepth must be >= 0, got %d", c.MaxDepth)
	}
	if c.LoadFile != "" && !FileExists(c.LoadFile) {
		return fmt.Errorf("-load file '%s' does not exist", c.LoadFile)
	}
	return nil
}
