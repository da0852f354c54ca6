package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/blockvm/instr"
)

var (
	// ErrDanglingLabel is returned when a jump or the entry point names a
	// label that no block was declared with.
	ErrDanglingLabel = errors.New("dangling label")

	// ErrStackUnderflow is returned when an instruction pops or peeks an
	// empty stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrHeapAddressOutOfRange is returned for negative addresses and for
	// addresses at or above the heap limit.
	ErrHeapAddressOutOfRange = errors.New("heap address out of range")

	// ErrDivisionByZero is returned by div and mod with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrEndOfProgram is returned when execution falls off the last block.
	ErrEndOfProgram = errors.New("fell off the end of the program")

	// ErrStepLimit is returned when the configured step budget runs out.
	ErrStepLimit = errors.New("step limit reached")

	// ErrInput is returned when reading a character fails for a reason other
	// than the end of input.
	ErrInput = errors.New("input error")

	// ErrNoProgram is returned when the machine runs before a program is
	// loaded.
	ErrNoProgram = errors.New("no program loaded")
)

// Fault is a run-time error raised by one instruction.
type Fault struct {
	Line   int
	Opcode instr.Opcode
	Cursor Cursor
	Err    error
}

func (f *Fault) Error() string {
	if f.Line == 0 {
		return fmt.Sprintf("block %d, inst %d: %v",
			f.Cursor.Block, f.Cursor.Inst, f.Err)
	}

	return fmt.Sprintf("line %d: %s: %v", f.Line, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
