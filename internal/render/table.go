package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/roboco-io/eventdesk/internal/ir"
	"github.com/roboco-io/eventdesk/internal/table"
)

const (
	ascIndicator  = " ▲"
	descIndicator = " ▼"
)

// TablePage writes one derived page followed by its range summary.
func TablePage(w io.Writer, columns []table.Column, res table.Result) error {
	return TableView(w, columns, res, table.State{})
}

// TableView is TablePage with sort indicators taken from state.
func TableView(w io.Writer, columns []table.Column, res table.Result, state table.State) error {
	headers := make([]string, len(columns))
	aligns := make([]tw.Align, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
		if state.Sorted() && state.SortColumn == col.Accessor {
			if state.SortDirection == table.SortDesc {
				headers[i] += descIndicator
			} else {
				headers[i] += ascIndicator
			}
		}
		aligns[i] = alignOf(col.Align)
	}

	t := newTableWriter(w, aligns)
	t.Header(headers)
	for _, row := range res.PageRows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = row.Get(col.Accessor).String()
		}
		if err := t.Append(cells); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	_, err := fmt.Fprintf(w, "%s (page %d/%d)\n", res.Summary(), displayPage(res), res.TotalPages)
	return err
}

// writeTableBlock writes a parsed pipe table as a boxed table.
func writeTableBlock(w io.Writer, block *ir.TableBlock) error {
	if len(block.Cells) == 0 {
		return nil
	}

	t := newTableWriter(w, nil)
	t.Header(pad(block.Header(), block.Cols))
	for _, row := range block.DataRows() {
		if err := t.Append(pad(row, block.Cols)); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	return t.Render()
}

func newTableWriter(w io.Writer, aligns []tw.Align) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		if len(aligns) > 0 {
			cfg.Row.Alignment.PerColumn = aligns
		}
	})
	return t
}

func alignOf(a table.Align) tw.Align {
	switch a {
	case table.AlignRight:
		return tw.AlignRight
	case table.AlignCenter:
		return tw.AlignCenter
	default:
		return tw.AlignLeft
	}
}

func displayPage(res table.Result) int {
	if res.TotalPages == 0 {
		return 0
	}
	return res.PageIndex + 1
}

func pad(cells []string, n int) []string {
	for len(cells) < n {
		cells = append(cells, "")
	}
	return cells
}
