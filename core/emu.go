package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/blockvm/console"
	"github.com/sarchlab/blockvm/instr"
	"github.com/sarchlab/blockvm/program"
)

// errExit is returned by the exit instruction and never leaves the package.
var errExit = errors.New("exit")

type instFunc func(inst instr.Instruction, state *State) error

type instEmulator struct {
	prog     *program.Program
	console  console.Console
	eofValue int64

	instFuncs [instr.NumOpcodes]instFunc
}

func newInstEmulator(
	prog *program.Program,
	con console.Console,
	eofValue int64,
) *instEmulator {
	i := &instEmulator{
		prog:     prog,
		console:  con,
		eofValue: eofValue,
	}

	i.register(instr.Push, i.runPush)
	i.register(instr.Pop, i.runPop)
	i.register(instr.Dup, i.runDup)
	i.register(instr.Store, i.runStore)
	i.register(instr.Retrieve, i.runRetrieve)
	i.register(instr.Add, i.arith(func(l, r int64) int64 { return l + r }))
	i.register(instr.Sub, i.arith(func(l, r int64) int64 { return l - r }))
	i.register(instr.Mul, i.arith(func(l, r int64) int64 { return l * r }))
	i.register(instr.Div, i.divide(func(l, r int64) int64 { return l / r }))
	i.register(instr.Mod, i.divide(func(l, r int64) int64 { return l % r }))
	i.register(instr.Jump, i.runJump)
	i.register(instr.Jz, i.branchIf(func(v int64) bool { return v == 0 }))
	i.register(instr.Jn, i.branchIf(func(v int64) bool { return v < 0 }))
	i.register(instr.OutChar, i.runOutChar)
	i.register(instr.ReadChar, i.runReadChar)
	i.register(instr.Halt, func(instr.Instruction, *State) error { return nil })
	i.register(instr.Exit, func(instr.Instruction, *State) error { return errExit })
	i.register(instr.Discard, i.runPop)

	return i
}

func (i *instEmulator) register(op instr.Opcode, f instFunc) {
	i.instFuncs[op] = f
}

// Enter places the cursor at the start of the block declared under label.
func (i *instEmulator) Enter(label int, state *State) error {
	idx, ok := i.prog.Lookup(label)
	if !ok {
		return fmt.Errorf("%w: entry label %d", ErrDanglingLabel, label)
	}

	state.Cursor = Cursor{Block: idx}

	return nil
}

// Fetch returns the instruction under the cursor together with its
// position and advances the cursor past it. Exhausted blocks fall through
// to the next block in declaration order.
func (i *instEmulator) Fetch(state *State) (Cursor, instr.Instruction, error) {
	c := &state.Cursor
	for c.Block < i.prog.Len() && c.Inst >= len(i.prog.Block(c.Block).Insts) {
		c.Block++
		c.Inst = 0
	}

	if c.Block >= i.prog.Len() {
		return *c, instr.Instruction{}, ErrEndOfProgram
	}

	at := *c
	inst := i.prog.Block(c.Block).Insts[c.Inst]
	c.Inst++

	return at, inst, nil
}

// RunInst executes one instruction. The cursor must already point past it.
func (i *instEmulator) RunInst(inst instr.Instruction, state *State) error {
	if !inst.Opcode.Valid() {
		return fmt.Errorf("%w: opcode %d", instr.ErrMalformedInstruction, inst.Opcode)
	}

	return i.instFuncs[inst.Opcode](inst, state)
}

func (i *instEmulator) runPush(inst instr.Instruction, state *State) error {
	v, err := inst.IntOperand(0)
	if err != nil {
		return err
	}

	state.Stack.Push(v)

	return nil
}

func (i *instEmulator) runPop(_ instr.Instruction, state *State) error {
	_, err := state.Stack.Pop()
	return err
}

func (i *instEmulator) runDup(_ instr.Instruction, state *State) error {
	v, err := state.Stack.Peek()
	if err != nil {
		return err
	}

	state.Stack.Push(v)

	return nil
}

func (i *instEmulator) runStore(_ instr.Instruction, state *State) error {
	value, addr, err := popPair(state)
	if err != nil {
		return err
	}

	return state.Heap.Store(addr, value)
}

func (i *instEmulator) runRetrieve(_ instr.Instruction, state *State) error {
	addr, err := state.Stack.Pop()
	if err != nil {
		return err
	}

	v, err := state.Heap.Load(addr)
	if err != nil {
		return err
	}

	state.Stack.Push(v)

	return nil
}

// arith pops rhs then lhs and pushes lhs op rhs.
func (i *instEmulator) arith(op func(lhs, rhs int64) int64) instFunc {
	return func(_ instr.Instruction, state *State) error {
		rhs, lhs, err := popPair(state)
		if err != nil {
			return err
		}

		state.Stack.Push(op(lhs, rhs))

		return nil
	}
}

func (i *instEmulator) divide(op func(lhs, rhs int64) int64) instFunc {
	return func(_ instr.Instruction, state *State) error {
		rhs, lhs, err := popPair(state)
		if err != nil {
			return err
		}

		if rhs == 0 {
			return ErrDivisionByZero
		}

		state.Stack.Push(op(lhs, rhs))

		return nil
	}
}

func (i *instEmulator) runJump(inst instr.Instruction, state *State) error {
	return i.transfer(inst, state)
}

// branchIf pops one value and jumps when cond holds for it.
func (i *instEmulator) branchIf(cond func(v int64) bool) instFunc {
	return func(inst instr.Instruction, state *State) error {
		v, err := state.Stack.Pop()
		if err != nil {
			return err
		}

		if !cond(v) {
			return nil
		}

		return i.transfer(inst, state)
	}
}

func (i *instEmulator) transfer(inst instr.Instruction, state *State) error {
	label, err := inst.LabelOperand(0)
	if err != nil {
		return err
	}

	idx, ok := i.prog.Lookup(label)
	if !ok {
		return fmt.Errorf("%w: %d", ErrDanglingLabel, label)
	}

	state.Cursor = Cursor{Block: idx}

	return nil
}

func (i *instEmulator) runOutChar(_ instr.Instruction, state *State) error {
	v, err := state.Stack.Peek()
	if err != nil {
		return err
	}

	return i.console.WriteByte(byte(v))
}

func (i *instEmulator) runReadChar(_ instr.Instruction, state *State) error {
	addr, err := state.Stack.Pop()
	if err != nil {
		return err
	}

	value := i.eofValue

	c, err := i.console.ReadByte()
	switch {
	case err == nil:
		value = int64(c)
	case errors.Is(err, io.EOF):
	default:
		return fmt.Errorf("%w: %v", ErrInput, err)
	}

	return state.Heap.Store(addr, value)
}

// popPair pops the top value and then the one beneath it.
func popPair(state *State) (top, below int64, err error) {
	top, err = state.Stack.Pop()
	if err != nil {
		return 0, 0, err
	}

	below, err = state.Stack.Pop()
	if err != nil {
		return 0, 0, err
	}

	return top, below, nil
}
