package usecase

import (
	"fmt"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// Analyze summarises rows per user. A column is numeric when it holds at
// least one number and nothing but numbers or nulls.
func Analyze(ds entity.Dataset, rows []entity.Row) (entity.Analysis, error) {
	analysis := entity.Analysis{NumericColumns: numericColumns(ds.Columns, rows)}

	groups := make(map[string][]entity.Row)
	for _, row := range rows {
		user := FormatCell(row[entity.ColumnUser])
		groups[user] = append(groups[user], row)
	}

	order := distinctUsers(rows)
	if _, ok := groups[""]; ok {
		order = append(order, "")
	}

	for _, user := range order {
		summary, err := summarise(user, groups[user], analysis.NumericColumns)
		if err != nil {
			return entity.Analysis{}, err
		}
		analysis.Users = append(analysis.Users, summary)
	}

	return analysis, nil
}

func summarise(user string, rows []entity.Row, columns []string) (entity.UserSummary, error) {
	summary := entity.UserSummary{User: user, Rows: len(rows)}

	for _, row := range rows {
		t, ok := row.Date()
		if !ok {
			continue
		}
		if summary.FirstDate.IsZero() || t.Before(summary.FirstDate) {
			summary.FirstDate = t
		}
		if summary.LastDate.IsZero() || t.After(summary.LastDate) {
			summary.LastDate = t
		}
	}

	for _, c := range columns {
		data := make(stats.Float64Data, 0, len(rows))
		for _, row := range rows {
			if f, ok := row[c].(float64); ok {
				data = append(data, f)
			}
		}

		ns := entity.NumericSummary{Column: c, Count: data.Len()}
		if data.Len() > 0 {
			var err error
			if ns.Sum, err = data.Sum(); err != nil {
				return entity.UserSummary{}, fmt.Errorf("sum %s: %w", c, err)
			}
			if ns.Mean, err = data.Mean(); err != nil {
				return entity.UserSummary{}, fmt.Errorf("mean %s: %w", c, err)
			}
			if ns.Median, err = data.Median(); err != nil {
				return entity.UserSummary{}, fmt.Errorf("median %s: %w", c, err)
			}
		}
		summary.Numeric = append(summary.Numeric, ns)
	}

	return summary, nil
}

func numericColumns(columns []string, rows []entity.Row) []string {
	skip := []string{entity.ColumnDate, entity.ColumnUser, entity.ColumnFilename}

	var out []string
	for _, c := range columns {
		if slices.Contains(skip, c) {
			continue
		}

		hasNumber := false
		onlyNumbers := true
		for _, row := range rows {
			switch row[c].(type) {
			case nil:
			case float64:
				hasNumber = true
			default:
				onlyNumbers = false
			}
		}
		if hasNumber && onlyNumbers {
			out = append(out, c)
		}
	}

	return out
}
