// Package api defines the driver API that loads programs into a machine and
// runs them to completion.
package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/core"
	"github.com/sarchlab/blockvm/program"
)

// Driver provides the interface to control a machine.
type Driver interface {
	// MapProgram maps the provided program to the machine and places the
	// cursor at the entry block.
	MapProgram(prog *program.Program) error

	// Run executes the mapped program until it exits or faults.
	Run() core.Result

	// Machine returns the driven machine.
	Machine() *core.Machine
}

type driverImpl struct {
	engine  sim.Engine
	machine *core.Machine
	mapped  bool
}

// MapProgram dispatches a program to the machine.
func (d *driverImpl) MapProgram(prog *program.Program) error {
	if err := d.machine.Load(prog); err != nil {
		return err
	}

	d.mapped = true

	return nil
}

// Run runs the machine on the driver's engine.
func (d *driverImpl) Run() core.Result {
	if !d.mapped {
		return core.Result{Status: 1, Err: core.ErrNoProgram}
	}

	r := d.machine.Run()

	core.Trace("Run",
		"Machine", d.machine.Name(),
		"Exited", r.Exited,
		"Steps", r.Steps,
		"Time", float64(d.engine.CurrentTime()*1e9),
	)

	return r
}

func (d *driverImpl) Machine() *core.Machine {
	return d.machine
}
