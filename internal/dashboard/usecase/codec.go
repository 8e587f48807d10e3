package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

type transport struct {
	Columns []string         `json:"columns"`
	Records []map[string]any `json:"records"`
}

// EncodeDataset serializes ds to the session transport string.
func EncodeDataset(ds entity.Dataset) (string, error) {
	records := make([]map[string]any, len(ds.Rows))
	for i, row := range ds.Rows {
		rec := make(map[string]any, len(ds.Columns))
		for _, c := range ds.Columns {
			v := row[c]
			if t, ok := v.(time.Time); ok {
				v = t.Format(time.RFC3339Nano)
			}
			rec[c] = v
		}
		records[i] = rec
	}

	data, err := json.Marshal(transport{Columns: ds.Columns, Records: records})
	if err != nil {
		return "", fmt.Errorf("encode dataset: %w", err)
	}

	return string(data), nil
}

// DecodeDataset parses a transport string. The Date column comes back as time.Time.
func DecodeDataset(s string) (entity.Dataset, error) {
	if s == "" {
		return entity.Dataset{}, entity.ErrEmptyInput
	}

	var tr transport
	if err := json.Unmarshal([]byte(s), &tr); err != nil {
		return entity.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	rows := make([]entity.Row, len(tr.Records))
	for i, rec := range tr.Records {
		row := make(entity.Row, len(tr.Columns))
		for _, c := range tr.Columns {
			row[c] = rec[c]
		}
		rows[i] = row
	}

	ds := entity.Dataset{Columns: tr.Columns, Rows: rows}
	if err := coerceDates(ds, false); err != nil {
		return entity.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	return ds, nil
}
