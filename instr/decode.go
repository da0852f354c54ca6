package instr

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrEmptyLine is returned by Decode for a line without tokens. Callers skip
// such lines.
var ErrEmptyLine = errors.New("empty line")

// Decoded is the result of decoding one source line. Either IsLabel is set
// and Label holds the declared block label, or Inst holds an instruction.
type Decoded struct {
	IsLabel bool
	Label   int
	Inst    Instruction
}

// Tokenize splits a line on spaces. Runs of spaces collapse and leading or
// trailing spaces produce no tokens.
func Tokenize(line string) []string {
	var tokens []string

	start := -1
	for i := 0; i < len(line); i++ {
		if line[i] == ' ' {
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
			continue
		}

		if start < 0 {
			start = i
		}
	}

	if start >= 0 {
		tokens = append(tokens, line[start:])
	}

	return tokens
}

// Decode turns the tokens of one source line into a label declaration or an
// instruction.
func Decode(tokens []string, line int) (Decoded, error) {
	if len(tokens) == 0 {
		return Decoded{}, ErrEmptyLine
	}

	if tokens[0] == LabelKeyword {
		return decodeLabel(tokens, line)
	}

	op, ok := LookupOpcode(tokens[0])
	if !ok {
		return Decoded{}, fmt.Errorf("line %d: %w: unknown opcode %q",
			line, ErrMalformedInstruction, tokens[0])
	}

	return Decoded{Inst: New(line, op, tokens[1:]...)}, nil
}

func decodeLabel(tokens []string, line int) (Decoded, error) {
	if len(tokens) < 2 {
		return Decoded{}, fmt.Errorf("line %d: %w: label without a number",
			line, ErrMalformedInstruction)
	}

	label, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Decoded{}, fmt.Errorf("line %d: %w: bad label %q",
			line, ErrMalformedInstruction, tokens[1])
	}

	return Decoded{IsLabel: true, Label: label}, nil
}
