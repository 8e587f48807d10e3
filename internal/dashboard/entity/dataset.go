package entity

import "time"

const (
	ColumnDate     = "Date"
	ColumnUser     = "User"
	ColumnFilename = "filename"
)

// Row maps a column name to a cell. Cells are nil, string, float64 or time.Time.
type Row map[string]any

// Dataset is an ordered set of rows sharing one column list.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// HasColumn reports whether name is one of the dataset columns.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Date returns the row's Date cell when it holds a date.
func (r Row) Date() (time.Time, bool) {
	t, ok := r[ColumnDate].(time.Time)
	return t, ok
}
