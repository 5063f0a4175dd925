/*
The scheem command line REPL is known as `scheem`.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glycerine/scheem/scheem"
)

func usage(myflags *flag.FlagSet) {
	fmt.Printf("scheem command line help:\n")
	myflags.PrintDefaults()
	os.Exit(1)
}

func main() {
	cfg := scheem.NewSchemeConfig("scheem")
	cfg.DefineFlags()
	err := cfg.Flags.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		usage(cfg.Flags)
	}

	if err != nil {
		panic(err)
	}
	err = cfg.ValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scheem command line error: '%v'\n", err)
		usage(cfg.Flags)
	}

	// the library does all the heavy lifting.
	os.Exit(scheem.ReplMain(cfg))
}
