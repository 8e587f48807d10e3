package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

// DeriveControls computes the date bounds, user options and file metadata
// from the freshly combined dataset.
func DeriveControls(ds entity.Dataset, files []entity.UploadedFile) (entity.Controls, error) {
	if !ds.HasColumn(entity.ColumnUser) {
		return entity.Controls{}, fmt.Errorf("%w: %w %q", entity.ErrParse, entity.ErrMissingColumn, entity.ColumnUser)
	}

	var controls entity.Controls
	for _, row := range ds.Rows {
		t, ok := row.Date()
		if !ok {
			continue
		}
		if controls.MinDate.IsZero() || t.Before(controls.MinDate) {
			controls.MinDate = t
		}
		if controls.MaxDate.IsZero() || t.After(controls.MaxDate) {
			controls.MaxDate = t
		}
	}

	controls.Users = distinctUsers(ds.Rows)

	controls.Files = make([]entity.FileInfo, len(files))
	for i, f := range files {
		controls.Files[i] = entity.FileInfo{
			Name:       f.Filename,
			UploadedAt: time.Unix(f.LastModified, 0).UTC(),
		}
	}

	return controls, nil
}

// distinctUsers returns the sorted distinct non-null User values. Users sort
// numerically when every value is a number.
func distinctUsers(rows []entity.Row) []string {
	numeric := true
	seen := make(map[string]float64)
	users := make([]string, 0)

	for _, row := range rows {
		v := row[entity.ColumnUser]
		if v == nil {
			continue
		}

		key := FormatCell(v)
		if _, ok := seen[key]; ok {
			continue
		}

		f, isNum := v.(float64)
		numeric = numeric && isNum
		seen[key] = f
		users = append(users, key)
	}

	if numeric {
		sort.SliceStable(users, func(i, j int) bool { return seen[users[i]] < seen[users[j]] })
	} else {
		sort.Strings(users)
	}

	return users
}

// FormatCell renders a cell for display and for user membership checks.
func FormatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case time.Time:
		if hasClock(value) {
			return value.Format("2006-01-02 15:04:05")
		}
		return value.Format(time.DateOnly)
	default:
		return fmt.Sprint(value)
	}
}
