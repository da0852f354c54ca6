package program

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Dump writes every block as "label:" followed by one instruction per line
// and a blank separator line.
func (p *Program) Dump(w io.Writer) error {
	for _, blk := range p.Blocks {
		if _, err := fmt.Fprintf(w, "%d:\n", blk.Label); err != nil {
			return err
		}

		for _, inst := range blk.Insts {
			if _, err := fmt.Fprintf(w, "%s\n", inst); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// Table renders a per-block summary.
func (p *Program) Table() string {
	t := table.NewWriter()
	t.SetTitle("Blocks")
	t.AppendHeader(table.Row{"#", "Label", "Insts", "Preds", "Succs"})

	for i, blk := range p.Blocks {
		t.AppendRow(table.Row{
			i, blk.Label, len(blk.Insts),
			joinInts(blk.Preds), joinInts(blk.Succs),
		})
	}

	return t.Render()
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ",")
}
