package usecase

import (
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// RenderTable deserializes the transport string and renders the rows the
// session currently selects. An empty transport renders an empty table.
func RenderTable(transport string, state entity.SessionState) (entity.Table, error) {
	if transport == "" {
		return entity.Table{}, nil
	}

	ds, err := DecodeDataset(transport)
	if err != nil {
		return entity.Table{}, err
	}

	return BuildTable(ds, SelectRows(ds, state)), nil
}

// SelectRows returns every row until the filter has been submitted once,
// and the rows matching the selection afterwards.
func SelectRows(ds entity.Dataset, state entity.SessionState) []entity.Row {
	if state.SubmitCount == 0 {
		return ds.Rows
	}

	sel := state.Selection
	users := make(map[string]struct{}, len(sel.Users))
	for _, u := range sel.Users {
		users[u] = struct{}{}
	}

	end := sel.End
	if !end.IsZero() && !hasClock(end) {
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	rows := make([]entity.Row, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		t, ok := row.Date()
		if !ok {
			continue
		}
		if !sel.Start.IsZero() && t.Before(sel.Start) {
			continue
		}
		if !end.IsZero() && t.After(end) {
			continue
		}
		if _, ok := users[FormatCell(row[entity.ColumnUser])]; !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// BuildTable formats rows for display using the columns of ds.
func BuildTable(ds entity.Dataset, rows []entity.Row) entity.Table {
	table := entity.Table{
		Columns: make([]entity.Column, len(ds.Columns)),
		Rows:    make([]map[string]string, len(rows)),
		Total:   ds.Len(),
	}

	for i, c := range ds.Columns {
		table.Columns[i] = entity.Column{Name: c, ID: c}
	}

	for i, row := range rows {
		out := make(map[string]string, len(ds.Columns))
		for _, c := range ds.Columns {
			out[c] = FormatCell(row[c])
		}
		table.Rows[i] = out
	}

	return table
}
