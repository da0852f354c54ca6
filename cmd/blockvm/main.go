// blockvm runs a block-structured stack machine program.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sarchlab/blockvm/api"
	"github.com/sarchlab/blockvm/config"
	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/core"
	"github.com/sarchlab/blockvm/program"
	"github.com/tebeka/atexit"
)

type options struct {
	configPath string
	entry      int
	heapLimit  int64
	eofValue   int64
	maxSteps   uint64
	level      string
	trace      bool
	dump       bool
	state      bool
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("blockvm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	fs.IntVar(&opts.entry, "entry", core.DefaultEntryLabel, "Entry label")
	fs.Int64Var(&opts.heapLimit, "heap-limit", core.DefaultHeapLimit, "First heap address that faults")
	fs.Int64Var(&opts.eofValue, "eof", -1, "Value readchar stores at the end of input")
	fs.Uint64Var(&opts.maxSteps, "max-steps", 0, "Stop after this many instructions (0 = no limit)")
	fs.StringVar(&opts.level, "log-level", "warn", "Log level: trace, debug, info, warn, error")
	fs.BoolVar(&opts.trace, "trace", false, "Log every executed instruction")
	fs.BoolVar(&opts.dump, "dump", false, "Print the parsed blocks and exit")
	fs.BoolVar(&opts.state, "state", false, "Print the final stack and heap to stderr")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: blockvm [options] program.asm\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(fs, opts)
	if err != nil {
		fmt.Fprintf(stderr, "blockvm: %v\n", err)
		return 1
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr,
		&slog.HandlerOptions{Level: cfg.SlogLevel()})))

	prog, err := program.LoadProgramFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "blockvm: %v\n", err)
		return 1
	}

	if opts.dump {
		prog.Link()
		if err := prog.Dump(stdout); err != nil {
			fmt.Fprintf(stderr, "blockvm: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, prog.Table())
		return 0
	}

	driver := api.NewDriverBuilder().
		WithMachineBuilder(cfg.Builder()).
		WithConsole(console.NewStream(stdin, stdout)).
		WithTrace(cfg.Log.Trace).
		Build("BlockVM")

	if err := driver.MapProgram(prog); err != nil {
		fmt.Fprintf(stderr, "blockvm: %v\n", err)
		return 1
	}

	r := driver.Run()
	core.LogState(driver.Machine().State())

	if opts.state {
		core.PrintState(stderr, driver.Machine().State())
	}

	if r.Err != nil {
		fmt.Fprintf(stderr, "blockvm: %v\n", r.Err)
	}

	return r.Status
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set explicitly on top of it.
func loadConfig(fs *flag.FlagSet, opts options) (config.Config, error) {
	cfg := config.Default()

	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "entry":
			cfg.Machine.EntryLabel = opts.entry
		case "heap-limit":
			cfg.Machine.HeapLimit = opts.heapLimit
		case "eof":
			cfg.Machine.EOFValue = opts.eofValue
		case "max-steps":
			cfg.Machine.MaxSteps = opts.maxSteps
		case "log-level":
			cfg.Log.Level = opts.level
		case "trace":
			cfg.Log.Trace = opts.trace
		}
	})

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
