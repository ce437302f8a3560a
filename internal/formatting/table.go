package formatting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableOptions controls list table rendering.
type TableOptions struct {
	// IncludeIndex adds a leading "#" column with 1-based positions. Commands
	// that accept an index argument show it so users can refer to rows.
	IncludeIndex bool
	NoHeaders    bool
}

// KeyValue is one row of a detail table.
type KeyValue struct {
	Key   string
	Value string
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	return t
}

// WriteList renders rows as a table. Rows are written in the order given; callers
// sort them first so the index column matches the order index arguments resolve to.
func WriteList(out io.Writer, headers []string, rows [][]string, opts TableOptions) {
	t := newTable(out)

	if !opts.NoHeaders {
		header := table.Row{}
		if opts.IncludeIndex {
			header = append(header, "#")
		}
		for _, h := range headers {
			header = append(header, text.FgHiCyan.Sprint(h))
		}
		t.AppendHeader(header)
	}

	for i, row := range rows {
		r := table.Row{}
		if opts.IncludeIndex {
			r = append(r, strconv.Itoa(i+1))
		}
		for _, cell := range row {
			r = append(r, cell)
		}
		t.AppendRow(r)
	}

	t.Render()
}

// WriteDetail renders key/value pairs, one per row.
func WriteDetail(out io.Writer, rows []KeyValue) {
	t := newTable(out)
	for _, kv := range rows {
		t.AppendRow(table.Row{text.FgHiCyan.Sprint(kv.Key), kv.Value})
	}
	t.Render()
}

// WriteEmpty prints the message shown instead of an empty table.
func WriteEmpty(out io.Writer, message string) {
	fmt.Fprintln(out, text.FgYellow.Sprint(message))
}
