package core

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/instr"
)

// HookPosInstExecuted marks the completion of one instruction.
var HookPosInstExecuted = &sim.HookPos{Name: "Inst Executed"}

// InstExecuted is the hook detail for HookPosInstExecuted.
type InstExecuted struct {
	At    Cursor
	Inst  instr.Instruction
	Depth int
	Step  uint64
}
