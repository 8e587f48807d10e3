package usecase

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		want entity.Format
	}{
		{name: "sales.csv", want: entity.FormatCSV},
		{name: "REPORT.CSV", want: entity.FormatCSV},
		{name: "book.xlsx", want: entity.FormatXLSX},
		{name: "macro.xlsm", want: entity.FormatXLSX},
		{name: "legacy.xls", want: entity.FormatXLS},
		{name: "csv-export.xlsx", want: entity.FormatCSV},
		{name: "notes.txt", want: entity.FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.name); got != tt.want {
				t.Fatalf("DetectFormat(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDecodeFile_CSV(t *testing.T) {
	frag := DecodeFile(csvFile("data.csv",
		"Date,User,V,Note",
		"2021-01-01,a,1,",
		"2021-01-02,b,2.5,hello",
	))

	if frag.Failed() {
		t.Fatalf("decode failed: %v", frag.Err)
	}
	if frag.Format != entity.FormatCSV {
		t.Fatalf("Format = %v, want csv", frag.Format)
	}
	if want := []string{"Date", "User", "V", "Note", "filename"}; !reflect.DeepEqual(frag.Dataset.Columns, want) {
		t.Fatalf("Columns = %v, want %v", frag.Dataset.Columns, want)
	}
	if len(frag.Dataset.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(frag.Dataset.Rows))
	}

	want := entity.Row{"Date": "2021-01-01", "User": "a", "V": 1.0, "Note": nil, "filename": "data.csv"}
	if first := frag.Dataset.Rows[0]; !reflect.DeepEqual(first, want) {
		t.Fatalf("first row = %v, want %v", first, want)
	}
	if second := frag.Dataset.Rows[1]; second["Note"] != "hello" || second["V"] != 2.5 {
		t.Fatalf("second row = %v", second)
	}
}

func TestDecodeFile_HeaderNames(t *testing.T) {
	frag := DecodeFile(csvFile("dup.csv",
		"Date,User,V,V,",
		"2021-01-01,a,1,2,3",
	))

	if frag.Failed() {
		t.Fatalf("decode failed: %v", frag.Err)
	}
	if want := []string{"Date", "User", "V", "V.1", "Unnamed: 4", "filename"}; !reflect.DeepEqual(frag.Dataset.Columns, want) {
		t.Fatalf("Columns = %v, want %v", frag.Dataset.Columns, want)
	}
}

func TestDecodeFile_ShortRowsArePadded(t *testing.T) {
	frag := DecodeFile(csvFile("short.csv",
		"Date,User,V",
		"2021-01-01,a",
	))

	if frag.Failed() {
		t.Fatalf("decode failed: %v", frag.Err)
	}
	if v, ok := frag.Dataset.Rows[0]["V"]; !ok || v != nil {
		t.Fatalf("V = %v (present %v), want a null cell", v, ok)
	}
}

func TestDecodeFile_Failures(t *testing.T) {
	tests := []struct {
		name string
		file entity.UploadedFile
		kind entity.ErrorKind
		is   error
	}{
		{
			name: "unsupported format",
			file: csvFile("notes.txt", "Date,User", "2021-01-01,a"),
			kind: entity.ErrorKindUnsupportedFormat,
			is:   entity.ErrUnsupportedFormat,
		},
		{
			name: "no comma",
			file: entity.UploadedFile{Contents: "bm90aGluZw==", Filename: "a.csv"},
			kind: entity.ErrorKindDecode,
			is:   entity.ErrDecode,
		},
		{
			name: "bad base64",
			file: entity.UploadedFile{Contents: "data:text/csv;base64,%%%", Filename: "a.csv"},
			kind: entity.ErrorKindDecode,
			is:   entity.ErrDecode,
		},
		{
			name: "invalid utf-8",
			file: entity.UploadedFile{Contents: EncodeContents("text/csv", []byte{0xff, 0xfe, 'a'}), Filename: "a.csv"},
			kind: entity.ErrorKindParse,
			is:   entity.ErrParse,
		},
		{
			name: "ragged rows",
			file: csvFile("r.csv", "Date,User", "2021-01-01,a,extra"),
			kind: entity.ErrorKindParse,
			is:   entity.ErrParse,
		},
		{
			name: "empty csv",
			file: entity.UploadedFile{Contents: EncodeContents("text/csv", nil), Filename: "empty.csv"},
			kind: entity.ErrorKindParse,
			is:   entity.ErrParse,
		},
		{
			name: "corrupt workbook",
			file: entity.UploadedFile{Contents: EncodeContents("", []byte("not a workbook")), Filename: "book.xlsx"},
			kind: entity.ErrorKindParse,
			is:   entity.ErrParse,
		},
		{
			name: "corrupt legacy workbook",
			file: entity.UploadedFile{Contents: EncodeContents("", []byte("not a workbook")), Filename: "book.xls"},
			kind: entity.ErrorKindParse,
			is:   entity.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := DecodeFile(tt.file)

			if !frag.Failed() {
				t.Fatalf("DecodeFile(%s) succeeded, want failure", tt.file.Filename)
			}
			if frag.Err.Filename != tt.file.Filename || frag.Err.Kind != tt.kind {
				t.Fatalf("Err = %+v, want %s with kind %v", frag.Err, tt.file.Filename, tt.kind)
			}
			if !errors.Is(frag.Err, tt.is) {
				t.Fatalf("Err = %v, want %v in chain", frag.Err, tt.is)
			}
		})
	}
}

func TestDecodeFile_XLSX(t *testing.T) {
	file := xlsxFile(t, "book.xlsx",
		[]any{"Date", "User", "V"},
		[]any{time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "a", 1},
		[]any{time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), "b", 2},
	)

	frag := DecodeFile(file)
	if frag.Failed() {
		t.Fatalf("decode failed: %v", frag.Err)
	}
	if frag.Format != entity.FormatXLSX {
		t.Fatalf("Format = %v, want xlsx", frag.Format)
	}
	if want := []string{"Date", "User", "V", "filename"}; !reflect.DeepEqual(frag.Dataset.Columns, want) {
		t.Fatalf("Columns = %v, want %v", frag.Dataset.Columns, want)
	}
	if len(frag.Dataset.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(frag.Dataset.Rows))
	}

	ds, _, err := Combine([]entity.Fragment{frag})
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	if got := mustDate(t, ds.Rows[1]); !got.Equal(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Date = %v, want 2021-01-02", got)
	}
	if ds.Rows[1]["User"] != "b" || ds.Rows[1]["V"] != 2.0 {
		t.Fatalf("second row = %v", ds.Rows[1])
	}
}

// testdata/users.xls is a BIFF8 workbook whose Date column holds serial
// numbers under the General format, the way old exports store them.
func TestDecodeFile_XLS(t *testing.T) {
	frag := DecodeFile(fixtureFile(t, "users.xls", "application/vnd.ms-excel"))
	if frag.Failed() {
		t.Fatalf("decode failed: %v", frag.Err)
	}
	if frag.Format != entity.FormatXLS {
		t.Fatalf("Format = %v, want xls", frag.Format)
	}
	if want := []string{"Date", "User", "V", "filename"}; !reflect.DeepEqual(frag.Dataset.Columns, want) {
		t.Fatalf("Columns = %v, want %v", frag.Dataset.Columns, want)
	}

	wantRows := []entity.Row{
		{"Date": 44197.0, "User": "a", "V": 1.0, "filename": "users.xls"},
		{"Date": 44198.0, "User": "b", "V": 2.5, "filename": "users.xls"},
	}
	if !reflect.DeepEqual(frag.Dataset.Rows, wantRows) {
		t.Fatalf("Rows = %v, want %v", frag.Dataset.Rows, wantRows)
	}

	ds, report, err := Combine([]entity.Fragment{frag})
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	if len(report.Failed) != 0 {
		t.Fatalf("failed = %+v", report.Failed)
	}
	for i, want := range []time.Time{
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
	} {
		if got := mustDate(t, ds.Rows[i]); !got.Equal(want) {
			t.Fatalf("row %d Date = %v, want %v", i, got, want)
		}
	}
}
