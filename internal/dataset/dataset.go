// Copyright 2026 The Dashkit Authors
// SPDX-License-Identifier: MIT

// Package dataset loads tabular datasets into immutable in-memory tables.
//
// A Table is built once at startup and never written afterwards, so it can be
// shared between request goroutines without locking. Filtering returns a new
// Table that shares the underlying rows.
package dataset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrNoValues is returned when a column holds no parseable value.
var ErrNoValues = errors.New("no parseable values")

// Table is an ordered, read-only sequence of rows keyed by header name.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a Table from a header and data rows. The inputs are copied.
// Every row must have exactly one cell per column.
func New(columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.New("dataset: missing header row")
	}

	index := make(map[string]int, len(columns))
	cols := make([]string, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if name == "" {
			return nil, fmt.Errorf("dataset: column %d has an empty header", i+1)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("dataset: duplicate column %q", name)
		}
		index[name] = i
		cols[i] = name
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("dataset: row %d has %d cells, want %d", i+1, len(r), len(cols))
		}
		data[i] = append([]string(nil), r...)
	}

	return &Table{columns: cols, index: index, rows: data}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the header names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require returns an error naming every column that is missing.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// Row returns the i-th row. It panics if i is out of range.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.rows[i]}
}

// Filter returns a table holding the rows for which keep returns true, in
// their original order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	var rows [][]string
	for _, cells := range t.rows {
		if keep(Row{table: t, cells: cells}) {
			rows = append(rows, cells)
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: rows}
}

// DateBounds returns the earliest and latest parseable date in column.
func (t *Table) DateBounds(column string) (time.Time, time.Time, error) {
	if !t.Has(column) {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown column %q", column)
	}
	var lo, hi time.Time
	found := false
	for i := range t.rows {
		d, ok := t.Row(i).Date(column)
		if !ok {
			continue
		}
		if !found || d.Before(lo) {
			lo = d
		}
		if !found || d.After(hi) {
			hi = d
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, fmt.Errorf("column %q: %w", column, ErrNoValues)
	}
	return lo, hi, nil
}

// DistinctInts returns the distinct integer values of column, ascending.
func (t *Table) DistinctInts(column string) ([]int, error) {
	if !t.Has(column) {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	seen := make(map[int]bool)
	for i := range t.rows {
		if v, ok := t.Row(i).Int(column); ok {
			seen[v] = true
		}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("column %q: %w", column, ErrNoValues)
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}
