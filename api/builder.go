package api

import (
	"os"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	machine core.Builder
	console console.Console
	trace   bool
}

// NewDriverBuilder returns a builder using the default machine settings.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		freq:    1 * sim.GHz,
		machine: core.NewBuilder(),
	}
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithMachineBuilder sets the builder that carries the machine settings.
func (b DriverBuilder) WithMachineBuilder(mb core.Builder) DriverBuilder {
	b.machine = mb
	return b
}

// WithConsole sets the character device of the machine. Standard input and
// output are used when no console is given.
func (b DriverBuilder) WithConsole(c console.Console) DriverBuilder {
	b.console = c
	return b
}

// WithTrace attaches a TraceHook to the machine.
func (b DriverBuilder) WithTrace(trace bool) DriverBuilder {
	b.trace = trace
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	con := b.console
	if con == nil {
		con = console.NewStream(os.Stdin, os.Stdout)
	}

	m := b.machine.
		WithEngine(engine).
		WithFreq(b.freq).
		WithConsole(con).
		Build(name + ".Machine")

	if b.trace {
		m.AcceptHook(NewTraceHook())
	}

	return &driverImpl{
		engine:  engine,
		machine: m,
	}
}
