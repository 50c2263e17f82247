// Package table provides the column-oriented tabular input consumed by the
// chartful plot functions. A Table holds named columns of loosely typed cells
// (strings, numbers, times); plot functions pull typed views out of it and
// report descriptive errors when a column does not fit the requested type.
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"
)

// Factor is one categorical axis value. Multi-level groupings produce factors
// with one element per grouping column.
type Factor []string

// Join renders the factor as a single axis label.
func (f Factor) Join(sep string) string {
	out := ""
	for i, part := range f {
		if i > 0 {
			out += sep
		}
		out += part
	}
	return out
}

// Equal reports whether two factors have identical levels.
func (f Factor) Equal(other Factor) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// Table is an ordered collection of named columns with equal lengths.
type Table struct {
	names []string
	cols  map[string][]any
	nrows int
}

// New creates an empty table with the given column names.
func New(names ...string) *Table {
	t := &Table{cols: make(map[string][]any)}
	for _, name := range names {
		if _, dup := t.cols[name]; dup {
			continue
		}
		t.names = append(t.names, name)
		t.cols[name] = nil
	}
	return t
}

// AppendRow appends one value per column, in column order.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.names) {
		return fmt.Errorf("table: row has %d values, table has %d columns", len(values), len(t.names))
	}
	for i, name := range t.names {
		t.cols[name] = append(t.cols[name], values[i])
	}
	t.nrows++
	return nil
}

// AddColumn appends a new column. Its length must match the table unless the
// table is empty.
func (t *Table) AddColumn(name string, values []any) error {
	if _, dup := t.cols[name]; dup {
		return fmt.Errorf("table: column %q already exists", name)
	}
	if len(t.names) > 0 && len(values) != t.nrows {
		return fmt.Errorf("table: column %q has %d values, table has %d rows", name, len(values), t.nrows)
	}
	t.names = append(t.names, name)
	t.cols[name] = values
	if len(t.names) == 1 {
		t.nrows = len(values)
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.nrows }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Values returns the raw cells of a column.
func (t *Table) Values(name string) ([]any, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("table: unknown column %q", name)
	}
	return col, nil
}

// CellString renders a single cell the way categorical values are rendered:
// numbers keep their shortest representation, times use a second-precision
// timestamp.
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func cellFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// Strings returns the column coerced to categorical strings.
func (t *Table) Strings(name string) ([]string, error) {
	col, err := t.Values(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(col))
	for i, v := range col {
		out[i] = CellString(v)
	}
	return out, nil
}

// Floats returns the column as float64 values. Nil cells become NaN;
// non-numeric cells are an error.
func (t *Table) Floats(name string) ([]float64, error) {
	col, err := t.Values(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(col))
	for i, v := range col {
		f, ok := cellFloat(v)
		if !ok {
			return nil, fmt.Errorf("table: column %q is not numeric: %v (%T) at row %d", name, v, v, i)
		}
		out[i] = f
	}
	return out, nil
}

// Times returns the column as time.Time values.
func (t *Table) Times(name string) ([]time.Time, error) {
	col, err := t.Values(name)
	if err != nil {
		return nil, err
	}
	out := make([]time.Time, len(col))
	for i, v := range col {
		ts, ok := v.(time.Time)
		if !ok {
			return nil, fmt.Errorf("table: column %q is not datetime: %v (%T) at row %d", name, v, v, i)
		}
		out[i] = ts
	}
	return out, nil
}

// IsDatetime reports whether every cell of the column is a time.Time.
func (t *Table) IsDatetime(name string) bool {
	col, err := t.Values(name)
	if err != nil || len(col) == 0 {
		return false
	}
	for _, v := range col {
		if _, ok := v.(time.Time); !ok {
			return false
		}
	}
	return true
}

// Unique returns the distinct stringified values of a column in order of
// first appearance.
func (t *Table) Unique(name string) ([]string, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(vals))
	var out []string
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

// UniqueSorted returns the distinct stringified values of a column in sorted
// order.
func (t *Table) UniqueSorted(name string) ([]string, error) {
	out, err := t.Unique(name)
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// FilterEq returns the rows whose stringified cell in the named column equals
// value.
func (t *Table) FilterEq(name, value string) (*Table, error) {
	vals, err := t.Strings(name)
	if err != nil {
		return nil, err
	}
	out := New(t.names...)
	for i, v := range vals {
		if v != value {
			continue
		}
		row := make([]any, len(t.names))
		for j, col := range t.names {
			row[j] = t.cols[col][i]
		}
		if err := out.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Select returns a table restricted to the named columns.
func (t *Table) Select(names ...string) (*Table, error) {
	out := New(names...)
	for _, name := range names {
		col, err := t.Values(name)
		if err != nil {
			return nil, err
		}
		vals := make([]any, len(col))
		copy(vals, col)
		out.cols[name] = vals
	}
	out.nrows = t.nrows
	return out, nil
}

// MinMax returns the minimum and maximum of a numeric column, skipping NaNs.
func (t *Table) MinMax(name string) (float64, float64, error) {
	vals, err := t.Floats(name)
	if err != nil {
		return 0, 0, err
	}
	min, max := math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	if math.IsNaN(min) {
		return 0, 0, fmt.Errorf("table: column %q has no numeric values", name)
	}
	return min, max, nil
}
