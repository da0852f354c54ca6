package api

import (
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/blockvm/core"
)

// TraceHook logs every executed instruction at the trace level.
type TraceHook struct{}

// NewTraceHook creates a TraceHook.
func NewTraceHook() *TraceHook {
	return &TraceHook{}
}

// Func implements sim.Hook.
func (h *TraceHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosInstExecuted {
		return
	}

	e, ok := ctx.Detail.(core.InstExecuted)
	if !ok {
		return
	}

	core.Trace("Inst",
		"Step", e.Step,
		"Line", e.Inst.Line,
		"Opcode", e.Inst.Opcode.String(),
		"Operands", strings.Join(e.Inst.Operands, " "),
		"Block", e.At.Block,
		"Index", e.At.Inst,
		"Depth", e.Depth,
	)
}
