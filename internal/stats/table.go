package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one table column. Numeric columns are right aligned.
type Column struct {
	Header string
	Right  bool
}

// Table collects rows and writes them with columns aligned by terminal
// display width, so wide runes in usernames keep the layout intact.
type Table struct {
	cols []Column
	rows [][]string
}

// NewTable returns an empty table. When every header is empty no header
// line is written.
func NewTable(cols ...Column) *Table {
	return &Table{cols: cols}
}

// Row appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) Row(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Lines returns the rendered lines without trailing padding.
func (t *Table) Lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := make([]int, len(t.cols))
	headed := false
	for i, c := range t.cols {
		widths[i] = runewidth.StringWidth(c.Header)
		headed = headed || c.Header != ""
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(t.rows)+1)
	if headed {
		header := make([]string, len(t.cols))
		for i, c := range t.cols {
			header[i] = c.Header
		}
		lines = append(lines, t.line(header, widths))
	}
	for _, row := range t.rows {
		lines = append(lines, t.line(row, widths))
	}
	return lines
}

// Render writes every line to w.
func (t *Table) Render(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) line(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		if t.cols[i].Right {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
