package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/xuri/excelize/v2"
)

// Layouts are tried in order. Fractional seconds are accepted after any
// seconds field even when the layout omits them.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 pm",
	"1/2/2006 3:04 pm",
	"1/2/2006",
	"2006/1/2 15:04:05",
	"2006/1/2",
	"02-Jan-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// maxExcelSerial is 9999-12-31, the last day a workbook can hold.
const maxExcelSerial = 2958465

// ParseDate converts a text cell to a date. ok is false for null cells.
// Numbers are rejected: only workbook cells carry Excel serial dates.
func ParseDate(v any) (t time.Time, ok bool, err error) {
	return parseDate(v, false)
}

func parseDate(v any, serials bool) (time.Time, bool, error) {
	switch value := v.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		return value, true, nil
	case float64:
		if !serials {
			return time.Time{}, false, fmt.Errorf("%w: number %v is not a date", entity.ErrParse, value)
		}
		if value < 0 || value > maxExcelSerial {
			return time.Time{}, false, fmt.Errorf("%w: %v is outside the excel date range", entity.ErrParse, value)
		}
		t, err := excelize.ExcelDateToTime(value, false)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("%w: %v is not a date: %v", entity.ErrParse, value, err)
		}
		// serial fractions carry float noise below a second
		return t.Round(time.Second).UTC(), true, nil
	case string:
		s := strings.TrimSpace(value)
		if s == "" {
			return time.Time{}, false, nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true, nil
			}
		}
		return time.Time{}, false, fmt.Errorf("%w: %q is not a date", entity.ErrParse, s)
	default:
		return time.Time{}, false, fmt.Errorf("%w: %v is not a date", entity.ErrParse, v)
	}
}

// coerceDates rewrites the Date column of ds in place. Null stays null.
// serials allows Excel serial numbers, which only workbook formats produce.
func coerceDates(ds entity.Dataset, serials bool) error {
	if !ds.HasColumn(entity.ColumnDate) {
		return nil
	}

	for i, row := range ds.Rows {
		t, ok, err := parseDate(row[entity.ColumnDate], serials)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			row[entity.ColumnDate] = t
		} else {
			row[entity.ColumnDate] = nil
		}
	}

	return nil
}

func hasClock(t time.Time) bool {
	return t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 || t.Nanosecond() != 0
}
