package program

import "github.com/sarchlab/blockvm/instr"

// Link fills the Preds and Succs of every block. A block falls through to
// the next block in declaration order unless it ends in an unconditional
// jump or an exit; every branch whose operand names a declared label adds
// an edge to that label's block. Unresolvable targets are skipped.
func (p *Program) Link() {
	for i := range p.Blocks {
		p.Blocks[i].Preds = nil
		p.Blocks[i].Succs = nil
	}

	for i := range p.Blocks {
		blk := &p.Blocks[i]

		for _, inst := range blk.Insts {
			if !inst.Opcode.IsBranch() {
				continue
			}

			label, err := inst.LabelOperand(0)
			if err != nil {
				continue
			}

			if target, ok := p.Lookup(label); ok {
				p.addEdge(i, target)
			}
		}

		if i+1 < len(p.Blocks) && fallsThrough(blk) {
			p.addEdge(i, i+1)
		}
	}
}

func fallsThrough(blk *BasicBlock) bool {
	if len(blk.Insts) == 0 {
		return true
	}

	switch blk.Insts[len(blk.Insts)-1].Opcode {
	case instr.Jump, instr.Exit:
		return false
	default:
		return true
	}
}

func (p *Program) addEdge(from, to int) {
	for _, s := range p.Blocks[from].Succs {
		if s == to {
			return
		}
	}

	p.Blocks[from].Succs = append(p.Blocks[from].Succs, to)
	p.Blocks[to].Preds = append(p.Blocks[to].Preds, from)
}
