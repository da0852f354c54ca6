// Package core implements the execution engine of the stack machine.
package core

import (
	"errors"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/program"
)

// DefaultEntryLabel is the label execution starts at.
const DefaultEntryLabel = 99999

// Result summarizes a finished run.
type Result struct {
	Exited bool
	Status int
	Steps  uint64
	Err    error
}

// Machine runs one program. Each tick executes a single instruction.
type Machine struct {
	*sim.TickingComponent

	console    console.Console
	entryLabel int
	heapLimit  int64
	eofValue   int64
	maxSteps   uint64

	prog  *program.Program
	state *State
	emu   *instEmulator

	stopped bool
	exited  bool
	err     error
}

// Load resets the machine state and places the cursor at the entry block.
func (m *Machine) Load(prog *program.Program) error {
	m.prog = prog
	m.state = NewState(m.heapLimit)
	m.emu = newInstEmulator(prog, m.console, m.eofValue)
	m.stopped = false
	m.exited = false
	m.err = nil

	if err := m.emu.Enter(m.entryLabel, m.state); err != nil {
		m.stop(err)
		return err
	}

	Trace("Load",
		"Machine", m.Name(),
		"Blocks", prog.Len(),
		"Insts", prog.NumInsts(),
		"Entry", m.entryLabel,
	)

	return nil
}

// State exposes the run-time state. It is nil before Load.
func (m *Machine) State() *State {
	return m.state
}

// Stopped reports whether the machine has exited or faulted.
func (m *Machine) Stopped() bool {
	return m.stopped
}

// Step executes one instruction and reports whether the machine can keep
// running.
func (m *Machine) Step() bool {
	if m.stopped {
		return false
	}

	if m.prog == nil {
		m.stop(ErrNoProgram)
		return false
	}

	if m.maxSteps > 0 && m.state.Steps >= m.maxSteps {
		m.stop(&Fault{Cursor: m.state.Cursor, Err: ErrStepLimit})
		return false
	}

	at, inst, err := m.emu.Fetch(m.state)
	if err != nil {
		m.stop(&Fault{Cursor: at, Err: err})
		return false
	}

	err = m.emu.RunInst(inst, m.state)
	m.state.Steps++

	if m.NumHooks() > 0 {
		m.InvokeHook(sim.HookCtx{
			Domain: m,
			Pos:    HookPosInstExecuted,
			Item:   inst,
			Detail: InstExecuted{
				At:    at,
				Inst:  inst,
				Depth: m.state.Stack.Len(),
				Step:  m.state.Steps,
			},
		})
	}

	switch {
	case err == nil:
		return true
	case errors.Is(err, errExit):
		m.exited = true
		m.stop(nil)
		return false
	default:
		m.stop(&Fault{
			Line:   inst.Line,
			Opcode: inst.Opcode,
			Cursor: at,
			Err:    err,
		})
		return false
	}
}

// Tick runs the program for one cycle.
func (m *Machine) Tick() (madeProgress bool) {
	return m.Step()
}

// Run drives the machine on its engine until it exits or faults.
func (m *Machine) Run() Result {
	if m.prog == nil {
		m.stop(ErrNoProgram)
		return m.Result()
	}

	if !m.stopped {
		m.TickNow()

		if err := m.Engine.Run(); err != nil && m.err == nil {
			m.stop(err)
		}
	}

	return m.Result()
}

// Result reports how the machine stopped. A machine that has not stopped
// reports a zero Result apart from the step count.
func (m *Machine) Result() Result {
	r := Result{Exited: m.exited, Err: m.err}
	if m.state != nil {
		r.Steps = m.state.Steps
	}
	if m.err != nil {
		r.Status = 1
	}
	return r
}

func (m *Machine) stop(err error) {
	m.stopped = true
	m.err = err

	if err != nil {
		Trace("Fault", "Machine", m.Name(), "Error", err.Error())
	} else {
		Trace("Exit", "Machine", m.Name(), "Steps", m.state.Steps)
	}
}
