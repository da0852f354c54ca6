// Package instr defines the instruction set of the stack machine and turns
// source lines into typed instructions.
package instr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedInstruction is returned when a line does not start with a
	// known keyword or a label declaration cannot be read.
	ErrMalformedInstruction = errors.New("malformed instruction")

	// ErrMalformedOperand is returned when an operand is missing or is not a
	// base-10 integer.
	ErrMalformedOperand = errors.New("malformed operand")
)

// Instruction is a decoded source line. Operands are kept as raw tokens and
// are only turned into integers when the instruction executes.
type Instruction struct {
	Line     int
	Opcode   Opcode
	Operands []string
}

// New creates an instruction. The operand slice is copied.
func New(line int, op Opcode, operands ...string) Instruction {
	return Instruction{
		Line:     line,
		Opcode:   op,
		Operands: append([]string(nil), operands...),
	}
}

// IntOperand decodes operand i as a signed base-10 integer.
func (i Instruction) IntOperand(idx int) (int64, error) {
	if idx >= len(i.Operands) {
		return 0, fmt.Errorf("%w: %s expects operand %d",
			ErrMalformedOperand, i.Opcode, idx)
	}

	v, err := strconv.ParseInt(i.Operands[idx], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer",
			ErrMalformedOperand, i.Operands[idx])
	}

	return v, nil
}

// LabelOperand decodes operand i as a block label.
func (i Instruction) LabelOperand(idx int) (int, error) {
	v, err := i.IntOperand(idx)
	if err != nil {
		return 0, err
	}

	return int(v), nil
}

// Tokens re-serializes the instruction into its source tokens.
func (i Instruction) Tokens() []string {
	tokens := make([]string, 0, len(i.Operands)+1)
	tokens = append(tokens, i.Opcode.String())
	tokens = append(tokens, i.Operands...)

	return tokens
}

func (i Instruction) String() string {
	return strings.Join(i.Tokens(), " ")
}
