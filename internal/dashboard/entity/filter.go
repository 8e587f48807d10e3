package entity

import "time"

// FilterSelection is the date range and user subset narrowing the table.
type FilterSelection struct {
	Start time.Time
	End   time.Time
	Users []string
}

// Controls are the filter widgets derived from a freshly combined dataset.
type Controls struct {
	MinDate time.Time
	MaxDate time.Time
	Users   []string
	Files   []FileInfo
}

// DefaultSelection selects the whole date range and every user.
func (c Controls) DefaultSelection() FilterSelection {
	users := make([]string, len(c.Users))
	copy(users, c.Users)

	return FilterSelection{Start: c.MinDate, End: c.MaxDate, Users: users}
}

// Column describes one table column for a generic table widget.
type Column struct {
	Name string
	ID   string
}

// Table is the rendered, display-ready form of a dataset.
type Table struct {
	Columns []Column
	Rows    []map[string]string
	// Total is the number of rows before filtering.
	Total int
}
