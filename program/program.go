// Package program groups decoded instructions into labeled basic blocks.
package program

import (
	"github.com/sarchlab/blockvm/instr"
)

// BasicBlock is a labeled run of instructions. Execution enters a block at
// its first instruction and leaves it through a jump or by falling through
// to the next block in declaration order.
type BasicBlock struct {
	Label int
	Insts []instr.Instruction

	// Preds and Succs hold block indices. They are filled by Program.Link
	// and are never consulted during execution.
	Preds []int
	Succs []int
}

// Program is the ordered list of blocks plus the label lookup table. Blocks
// are addressed by their index in declaration order.
type Program struct {
	Blocks []BasicBlock

	labels map[int]int
}

// Len returns the number of blocks.
func (p *Program) Len() int {
	return len(p.Blocks)
}

// Block returns the block at index i.
func (p *Program) Block(i int) *BasicBlock {
	return &p.Blocks[i]
}

// Lookup returns the index of the block registered under label. When a label
// is declared more than once the last declaration wins.
func (p *Program) Lookup(label int) (int, bool) {
	idx, ok := p.labels[label]
	return idx, ok
}

// NumInsts counts the instructions of all blocks.
func (p *Program) NumInsts() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Insts)
	}
	return n
}
