// Package table provides the in-memory tabular primitive shared by all
// pipeline stages: an ordered list of rows with a fixed, named column set.
package table

import (
	"fmt"
	"time"
)

// Row maps a column name to a cell value. Cell values are string, int,
// float64, time.Time, or nil for a missing value.
type Row map[string]interface{}

// Table is an ordered collection of uniformly-shaped rows. Column order is
// fixed at construction and preserved through export.
type Table struct {
	columns []string
	rows    []Row
}

// New creates an empty table with the given column set.
func New(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row. The row is stored as-is; callers must not reuse it.
func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns the backing row slice. Stages treat tables as read-only once
// handed over, so sharing the slice is safe.
func (t *Table) Rows() []Row {
	return t.rows
}

// Clone copies a row so a stage can emit a modified version without touching
// its input table.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// AsTime extracts a timestamp cell. A nil cell (failed coercion at load time)
// reports false.
func AsTime(v interface{}) (time.Time, bool) {
	ts, ok := v.(time.Time)
	return ts, ok
}

// AsFloat extracts a numeric cell, accepting the int/float64 shapes the
// loader produces.
func AsFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float32:
		return float64(val), true
	}
	return 0, false
}

// AsString renders a cell as its string form; nil becomes the empty string.
func AsString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
