package program

import (
	"errors"
	"fmt"

	"github.com/sarchlab/blockvm/instr"
)

// ErrNoOpenBlock is returned when an instruction appears before any label.
var ErrNoOpenBlock = errors.New("instruction outside of any block")

// Builder accumulates instructions into blocks.
type Builder struct {
	blocks  []BasicBlock
	labels  map[int]int
	current int
}

// NewBuilder creates a builder with no open block.
func NewBuilder() *Builder {
	return &Builder{
		labels:  make(map[int]int),
		current: -1,
	}
}

// DeclareLabel opens a new block and makes it the insertion target. A label
// that was declared before is re-pointed at the new block; the earlier block
// stays in the program and is still reachable by fall-through.
func (b *Builder) DeclareLabel(label int) {
	b.blocks = append(b.blocks, BasicBlock{Label: label})
	b.current = len(b.blocks) - 1
	b.labels[label] = b.current
}

// AddInst appends an instruction to the current block.
func (b *Builder) AddInst(inst instr.Instruction) error {
	if b.current < 0 {
		return fmt.Errorf("line %d: %w: %s", inst.Line, ErrNoOpenBlock, inst)
	}

	blk := &b.blocks[b.current]
	blk.Insts = append(blk.Insts, inst)

	return nil
}

// Feed tokenizes, decodes and records one source line.
func (b *Builder) Feed(line int, text string) error {
	d, err := instr.Decode(instr.Tokenize(text), line)
	if errors.Is(err, instr.ErrEmptyLine) {
		return nil
	}
	if err != nil {
		return err
	}

	if d.IsLabel {
		b.DeclareLabel(d.Label)
		return nil
	}

	return b.AddInst(d.Inst)
}

// Build returns the finished program. The builder should not be used
// afterwards.
func (b *Builder) Build() *Program {
	p := &Program{
		Blocks: b.blocks,
		labels: b.labels,
	}

	b.blocks = nil
	b.labels = make(map[int]int)
	b.current = -1

	return p
}
