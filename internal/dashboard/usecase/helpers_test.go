package usecase

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/xuri/excelize/v2"
)

func csvFile(name string, lines ...string) entity.UploadedFile {
	body := strings.Join(lines, "\n") + "\n"
	return entity.UploadedFile{
		Contents:     "data:text/csv;base64," + base64.StdEncoding.EncodeToString([]byte(body)),
		Filename:     name,
		LastModified: 1609459200,
	}
}

func xlsxFile(t *testing.T, name string, rows ...[]any) entity.UploadedFile {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() err = %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow(%s) err = %v", cell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() err = %v", err)
	}

	return entity.UploadedFile{
		Contents:     EncodeContents("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes()),
		Filename:     name,
		LastModified: 1609459200,
	}
}

// fixtureFile wraps a file under testdata as an upload named after it.
func fixtureFile(t *testing.T, name, mime string) entity.UploadedFile {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}

	return entity.UploadedFile{
		Contents:     EncodeContents(mime, data),
		Filename:     name,
		LastModified: 1609459200,
	}
}

// scenarioFile is the two-row dataset used across the tests.
func scenarioFile() entity.UploadedFile {
	return csvFile("data.csv",
		"Date,User,V",
		"2021-01-01,a,1",
		"2021-01-02,b,2",
	)
}

func mustCombine(t *testing.T, files ...entity.UploadedFile) entity.Dataset {
	t.Helper()

	ds, _, err := Combine(DecodeAll(files, 2))
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	return ds
}

func mustDate(t *testing.T, row entity.Row) time.Time {
	t.Helper()

	got, ok := row.Date()
	if !ok {
		t.Fatalf("row %v has no date", row)
	}
	return got
}
