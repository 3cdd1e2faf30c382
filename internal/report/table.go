// Package report renders aligned, colored terminal tables for dashkit
// commands.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc
}

// Table renders aligned text tables to an io.Writer.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Extra values are dropped and missing ones are empty.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the header, a separator, and every row to w. Widths are
// measured in runes on the uncolored values.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	sep := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = bold.Sprint(pad(col.Header, widths[i], col.Align))
		sep[i] = strings.Repeat("-", widths[i])
	}
	lines := [][]string{header, sep}

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			padded := pad(row[i], widths[i], col.Align)
			if col.Color != nil && row[i] != "" {
				padded = strings.Replace(padded, row[i], col.Color(row[i]), 1)
			}
			cells[i] = padded
		}
		lines = append(lines, cells)
	}

	for _, cells := range lines {
		line := strings.TrimRight("  "+strings.Join(cells, "  "), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("render table: %w", err)
		}
	}
	return nil
}

func pad(s string, width int, align Alignment) string {
	fill := strings.Repeat(" ", max(0, width-utf8.RuneCountInString(s)))
	if align == AlignRight {
		return fill + s
	}
	return s + fill
}
