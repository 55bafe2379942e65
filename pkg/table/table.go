// Package table provides the tabular data model consumed by the chart
// builders: ordered, named, typed columns with a shared row count.
//
// Tables are read-only once constructed. Every transformation (SortByTime,
// Tail, Scale, Head) returns a new Table and leaves the receiver untouched,
// so a Table can safely be shared across concurrent builder calls.
package table

import (
	"fmt"
	"sort"
	"time"
)

// ColumnType identifies the value type stored in a column.
type ColumnType int

const (
	TypeTime ColumnType = iota
	TypeNumber
	TypeString
)

// String returns a human-readable type name.
func (t ColumnType) String() string {
	switch t {
	case TypeTime:
		return "time"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Column is a single named, typed column. Exactly one of the backing slices
// is populated, matching the column type.
type Column struct {
	name  string
	typ   ColumnType
	times []time.Time
	nums  []float64
	strs  []string
}

// TimeColumn builds a time-typed column. The values slice is copied.
func TimeColumn(name string, values []time.Time) Column {
	return Column{name: name, typ: TypeTime, times: append([]time.Time(nil), values...)}
}

// NumberColumn builds a numeric column. The values slice is copied.
func NumberColumn(name string, values []float64) Column {
	return Column{name: name, typ: TypeNumber, nums: append([]float64(nil), values...)}
}

// StringColumn builds a categorical column. The values slice is copied.
func StringColumn(name string, values []string) Column {
	return Column{name: name, typ: TypeString, strs: append([]string(nil), values...)}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the column type.
func (c Column) Type() ColumnType { return c.typ }

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.typ {
	case TypeTime:
		return len(c.times)
	case TypeNumber:
		return len(c.nums)
	default:
		return len(c.strs)
	}
}

// Times returns a copy of the time values. Empty for non-time columns.
func (c Column) Times() []time.Time { return append([]time.Time(nil), c.times...) }

// Numbers returns a copy of the numeric values. Empty for non-numeric columns.
func (c Column) Numbers() []float64 { return append([]float64(nil), c.nums...) }

// Strings returns a copy of the string values. Empty for non-string columns.
func (c Column) Strings() []string { return append([]string(nil), c.strs...) }

// cell renders the value at row i for previews and CSV export.
func (c Column) cell(i int) string {
	switch c.typ {
	case TypeTime:
		return c.times[i].Format("2006-01-02")
	case TypeNumber:
		return trimFloat(c.nums[i])
	default:
		return c.strs[i]
	}
}

// trimFloat renders a float without trailing zeroes ("200" not "200.000000").
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Table is an ordered collection of equally-sized columns.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New assembles a table from columns. At least one column is required, all
// columns must have distinct names and the same length.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("table: need at least one column")
	}
	t := &Table{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c.name == "" {
			return nil, fmt.Errorf("table: column %d has no name", i)
		}
		if _, dup := t.index[c.name]; dup {
			return nil, fmt.Errorf("table: duplicate column %q", c.name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("table: column %q has length %d, want %d", c.name, c.Len(), t.rows)
		}
		t.index[c.name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// Column looks up a column by name. Returns *ColumnNotFoundError when the
// name is absent.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, &ColumnNotFoundError{Column: name}
	}
	return t.cols[i], nil
}

// TimeValues returns the values of a time column.
func (t *Table) TimeValues(name string) ([]time.Time, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.typ != TypeTime {
		return nil, &TypeError{Column: name, Want: TypeTime, Got: c.typ}
	}
	return c.Times(), nil
}

// NumberValues returns the values of a numeric column.
func (t *Table) NumberValues(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.typ != TypeNumber {
		return nil, &TypeError{Column: name, Want: TypeNumber, Got: c.typ}
	}
	return c.Numbers(), nil
}

// take rebuilds the table keeping the rows whose indices appear in idx,
// in idx order.
func (t *Table) take(idx []int) *Table {
	out := &Table{index: make(map[string]int, len(t.cols)), rows: len(idx)}
	for ci, c := range t.cols {
		nc := Column{name: c.name, typ: c.typ}
		switch c.typ {
		case TypeTime:
			nc.times = make([]time.Time, len(idx))
			for i, ri := range idx {
				nc.times[i] = c.times[ri]
			}
		case TypeNumber:
			nc.nums = make([]float64, len(idx))
			for i, ri := range idx {
				nc.nums[i] = c.nums[ri]
			}
		default:
			nc.strs = make([]string, len(idx))
			for i, ri := range idx {
				nc.strs[i] = c.strs[ri]
			}
		}
		out.index[c.name] = ci
		out.cols = append(out.cols, nc)
	}
	return out
}

// SortByTime returns a copy of the table with rows sorted ascending by the
// named time column. The sort is stable, so rows with equal timestamps keep
// their input order.
func (t *Table) SortByTime(name string) (*Table, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.typ != TypeTime {
		return nil, &TypeError{Column: name, Want: TypeTime, Got: c.typ}
	}
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.times[idx[a]].Before(c.times[idx[b]])
	})
	return t.take(idx), nil
}

// Tail returns the trailing n rows. When n is greater than or equal to the
// row count the whole table is returned (as a copy).
func (t *Table) Tail(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = t.rows - n + i
	}
	return t.take(idx)
}

// Head returns the leading n rows, for data previews.
func (t *Table) Head(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.take(idx)
}

// Records renders every row as formatted strings, in column order. Used by
// previews and exports; time cells use the 2006-01-02 layout.
func (t *Table) Records() [][]string {
	out := make([][]string, t.rows)
	for ri := 0; ri < t.rows; ri++ {
		rec := make([]string, len(t.cols))
		for ci, c := range t.cols {
			rec[ci] = c.cell(ri)
		}
		out[ri] = rec
	}
	return out
}

// Scale returns a copy of the table with the named numeric column divided
// by factor. The receiver is not modified.
func (t *Table) Scale(name string, factor float64) (*Table, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.typ != TypeNumber {
		return nil, &TypeError{Column: name, Want: TypeNumber, Got: c.typ}
	}
	if factor == 0 {
		return nil, fmt.Errorf("table: scale factor for column %q must be non-zero", name)
	}
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	out := t.take(idx)
	scaled := out.cols[out.index[name]]
	for i := range scaled.nums {
		scaled.nums[i] /= factor
	}
	out.cols[out.index[name]] = scaled
	return out, nil
}
