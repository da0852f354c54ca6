package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/console"
)

// DefaultHeapLimit bounds the heap when no limit is given.
const DefaultHeapLimit = 1 << 24

// Builder can create new machines.
type Builder struct {
	engine     sim.Engine
	freq       sim.Freq
	console    console.Console
	entryLabel int
	heapLimit  int64
	eofValue   int64
	maxSteps   uint64
}

// NewBuilder returns a builder with the default entry label, heap limit and
// an end-of-input value of -1.
func NewBuilder() Builder {
	return Builder{
		freq:       1 * sim.GHz,
		entryLabel: DefaultEntryLabel,
		heapLimit:  DefaultHeapLimit,
		eofValue:   -1,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConsole sets the character device used by outchar and readchar.
func (b Builder) WithConsole(c console.Console) Builder {
	b.console = c
	return b
}

// WithEntryLabel sets the label execution starts at.
func (b Builder) WithEntryLabel(label int) Builder {
	b.entryLabel = label
	return b
}

// WithHeapLimit sets the first heap address that faults.
func (b Builder) WithHeapLimit(limit int64) Builder {
	if limit <= 0 {
		panic("heap limit must be positive")
	}
	b.heapLimit = limit
	return b
}

// WithEOFValue sets the value readchar stores at the end of input.
func (b Builder) WithEOFValue(v int64) Builder {
	b.eofValue = v
	return b
}

// WithMaxSteps stops the machine with ErrStepLimit after n instructions.
// Zero means no limit.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

// Build creates a machine.
func (b Builder) Build(name string) *Machine {
	if b.console == nil {
		panic("machine needs a console")
	}

	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	m := &Machine{
		console:    b.console,
		entryLabel: b.entryLabel,
		heapLimit:  b.heapLimit,
		eofValue:   b.eofValue,
		maxSteps:   b.maxSteps,
	}
	m.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, m)

	return m
}
