package dataset

import (
	"fmt"
	"strconv"
)

// Null is the marker the IMDb dumps use for a missing value
const Null = `\N`

// Table is an untyped, row-ordered table of string cells. Numeric parsing is
// left to the consumer through the Row accessors.
type Table struct {
	Name    string
	header  []string
	columns map[string]int
	rows    [][]string
}

// Row is a read-only view of one table row
type Row struct {
	table  *Table
	values []string
}

// NewTable creates an empty table with the given header
func NewTable(name string, header []string) *Table {
	columns := make(map[string]int, len(header))
	for i, col := range header {
		if _, exists := columns[col]; !exists {
			columns[col] = i
		}
	}
	return &Table{
		Name:    name,
		header:  append([]string(nil), header...),
		columns: columns,
	}
}

// Header returns a copy of the column names
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row. The row must have exactly one value per column.
func (t *Table) Append(values []string) error {
	if len(values) != len(t.header) {
		return fmt.Errorf("%w: got %d fields, want %d", ErrColumnCount, len(values), len(t.header))
	}
	t.rows = append(t.rows, values)
	return nil
}

// Row returns the i-th row
func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.rows[i]}
}

// Column returns the position of a named column
func (t *Table) Column(name string) (int, error) {
	i, ok := t.columns[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q in table %s", ErrMissingColumn, name, t.Name)
	}
	return i, nil
}

// Require checks that every named column exists
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if _, err := t.Column(name); err != nil {
			return err
		}
	}
	return nil
}

// Values returns the cells of one column in row order
func (t *Table) Values(name string) ([]string, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[col]
	}
	return values, nil
}

// Filter returns a new table holding the rows for which keep returns true,
// in their original order. Rows are shared, not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.Name, t.header)
	for _, values := range t.rows {
		if keep(Row{table: t, values: values}) {
			out.rows = append(out.rows, values)
		}
	}
	return out
}

// Select projects the table onto the named columns, in the given order
func (t *Table) Select(names ...string) (*Table, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		positions[i] = col
	}

	out := NewTable(t.Name, names)
	out.rows = make([][]string, len(t.rows))
	for i, row := range t.rows {
		projected := make([]string, len(positions))
		for j, col := range positions {
			projected[j] = row[col]
		}
		out.rows[i] = projected
	}
	return out, nil
}

// Drop returns the table without the named columns
func (t *Table) Drop(names ...string) (*Table, error) {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := t.Column(name); err != nil {
			return nil, err
		}
		dropped[name] = true
	}

	var keep []string
	for _, col := range t.header {
		if !dropped[col] {
			keep = append(keep, col)
		}
	}
	return t.Select(keep...)
}

// Index maps each value of a column to the first row holding it
func (t *Table) Index(name string) (map[string]int, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(t.rows))
	for i, row := range t.rows {
		if _, exists := index[row[col]]; !exists {
			index[row[col]] = i
		}
	}
	return index, nil
}

// Get returns the raw cell for a column, or "" when the column is unknown
func (r Row) Get(name string) string {
	col, ok := r.table.columns[name]
	if !ok {
		return ""
	}
	return r.values[col]
}

// IsNull reports whether the cell is the dataset null marker
func (r Row) IsNull(name string) bool {
	return r.Get(name) == Null
}

// Values returns a copy of the raw cells
func (r Row) Values() []string {
	return append([]string(nil), r.values...)
}

// Int parses the cell as an integer. ok is false for a null cell.
func (r Row) Int(name string) (value int, ok bool, err error) {
	raw := r.Get(name)
	if raw == Null || raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("column %s: %w", name, err)
	}
	return value, true, nil
}

// Float parses the cell as a decimal. ok is false for a null cell.
func (r Row) Float(name string) (value float64, ok bool, err error) {
	raw := r.Get(name)
	if raw == Null || raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("column %s: %w", name, err)
	}
	return value, true, nil
}
