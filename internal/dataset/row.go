package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Row is a read-only view of a single table row.
type Row struct {
	table *Table
	cells []string
}

// String returns the raw cell for column, or "" if the column is unknown.
func (r Row) String(column string) string {
	i, ok := r.table.index[column]
	if !ok {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Float parses the cell for column as a finite float64.
func (r Row) Float(column string) (float64, bool) {
	s := r.String(column)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int parses the cell for column as an integer. Whole-valued floats such as
// "2007.0" are accepted.
func (r Row) Int(column string) (int, bool) {
	s := r.String(column)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, ok := r.Float(column)
	if !ok || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, false
	}
	return int(f), true
}

// Date parses the cell for column with ParseDate.
func (r Row) Date(column string) (time.Time, bool) {
	d, err := ParseDate(r.String(column))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses an ISO-style date or timestamp. Values carrying a zone are
// converted to UTC; values without one are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
