package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/api"
	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/program"
	"github.com/tebeka/atexit"
)

//go:embed hello.asm
var source string

func main() {
	prog, err := program.ParseString(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	engine := sim.NewSerialEngine()

	driver := api.NewDriverBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithConsole(console.NewStream(os.Stdin, os.Stdout)).
		Build("Hello")

	if err := driver.MapProgram(prog); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	r := driver.Run()
	if r.Err != nil {
		fmt.Fprintln(os.Stderr, r.Err)
	}

	atexit.Exit(r.Status)
}
