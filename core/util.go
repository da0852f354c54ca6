package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState renders the cursor, the stack and the non-zero heap cells.
func PrintState(w io.Writer, state *State) {
	fmt.Fprintf(w, "==============State@%s step %d==============\n",
		state.Cursor, state.Steps)

	stackTable := table.NewWriter()
	stackTable.SetTitle("Stack (top first)")
	stackTable.AppendHeader(table.Row{"Depth", "Value", "Char"})

	values := state.Stack.Values()
	for i := len(values) - 1; i >= 0; i-- {
		stackTable.AppendRow(table.Row{
			len(values) - 1 - i, values[i], printable(values[i]),
		})
	}

	fmt.Fprintln(w, stackTable.Render())
	fmt.Fprintln(w)

	heapTable := table.NewWriter()
	heapTable.SetTitle(fmt.Sprintf("Heap (%d cells backed, limit %d)",
		state.Heap.Size(), state.Heap.Limit()))
	heapTable.AppendHeader(table.Row{"Addr", "Value"})

	cells := state.Heap.NonZero()
	for _, addr := range sortedAddrs(cells) {
		heapTable.AppendRow(table.Row{addr, cells[addr]})
	}

	fmt.Fprintln(w, heapTable.Render())
	fmt.Fprintln(w, "================================================")
}

func printable(v int64) string {
	if v >= 0x20 && v < 0x7f {
		return string(rune(v))
	}
	return ""
}

func LogState(state *State) {
	slog.Debug("StateCheckpoint",
		"Cursor", state.Cursor.String(),
		"Steps", state.Steps,
		"Stack", state.Stack.Values(),
		"HeapCells", state.Heap.Size(),
	)
}
