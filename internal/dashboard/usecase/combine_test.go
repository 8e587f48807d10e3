package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
)

func TestCombine_RowCountIsSumOfFiles(t *testing.T) {
	var files []entity.UploadedFile
	want := 0
	for i := 1; i <= 5; i++ {
		lines := []string{"Date,User,V"}
		for j := 0; j < i*3; j++ {
			lines = append(lines, fmt.Sprintf("2021-01-%02d,u%d,%d", j%28+1, j%4, j))
		}
		files = append(files, csvFile(fmt.Sprintf("part-%d.csv", i), lines...))
		want += i * 3
	}

	ds, report, err := Combine(DecodeAll(files, 3))
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	if ds.Len() != want {
		t.Fatalf("Len() = %d, want %d", ds.Len(), want)
	}
	if len(report.Succeeded) != 5 {
		t.Fatalf("succeeded = %d, want 5", len(report.Succeeded))
	}
	for i, s := range report.Succeeded {
		if name := fmt.Sprintf("part-%d.csv", i+1); s.Filename != name || s.Rows != (i+1)*3 {
			t.Fatalf("succeeded[%d] = %+v, want %s with %d rows", i, s, name, (i+1)*3)
		}
	}
}

func TestCombine_PreservesOrderAndUnionsColumns(t *testing.T) {
	ds := mustCombine(t,
		csvFile("first.csv", "Date,User,A", "2021-01-01,a,1"),
		csvFile("second.csv", "User,Date,B", "b,2021-01-02,x"),
	)

	if want := []string{"Date", "User", "A", "filename", "B"}; !reflect.DeepEqual(ds.Columns, want) {
		t.Fatalf("Columns = %v, want %v", ds.Columns, want)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}
	if ds.Rows[0]["filename"] != "first.csv" || ds.Rows[0]["B"] != nil {
		t.Fatalf("first row = %v", ds.Rows[0])
	}
	if ds.Rows[1]["filename"] != "second.csv" || ds.Rows[1]["A"] != nil {
		t.Fatalf("second row = %v", ds.Rows[1])
	}
	if got := mustDate(t, ds.Rows[1]); !got.Equal(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Date = %v, want 2021-01-02", got)
	}
}

func TestCombine_SkipsAndReportsFailedFiles(t *testing.T) {
	ds, report, err := Combine(DecodeAll([]entity.UploadedFile{
		scenarioFile(),
		csvFile("notes.txt", "Date,User", "2021-01-01,z"),
		csvFile("bad-dates.csv", "Date,User", "yesterday,z"),
	}, 2))
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if len(report.Succeeded) != 1 || len(report.Failed) != 2 {
		t.Fatalf("report = %+v, want 1 succeeded and 2 failed", report)
	}

	if f := report.Failed[0]; f.Filename != "notes.txt" || f.Kind != entity.ErrorKindUnsupportedFormat {
		t.Fatalf("failed[0] = %+v", f)
	}
	if f := report.Failed[1]; f.Filename != "bad-dates.csv" || f.Kind != entity.ErrorKindParse {
		t.Fatalf("failed[1] = %+v", f)
	}
}

func TestCombine_RejectsNumericDatesInCSV(t *testing.T) {
	ds, report, err := Combine(DecodeAll([]entity.UploadedFile{
		scenarioFile(),
		csvFile("compact.csv", "Date,User,V", "20210105,c,3"),
	}, 2))
	if err != nil {
		t.Fatalf("Combine() err = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want only the scenario rows", ds.Len())
	}
	if len(report.Failed) != 1 {
		t.Fatalf("failed = %+v, want compact.csv", report.Failed)
	}

	f := report.Failed[0]
	if f.Filename != "compact.csv" || f.Kind != entity.ErrorKindParse || !errors.Is(&f, entity.ErrParse) {
		t.Fatalf("failed[0] = %+v, want a parse error for compact.csv", f)
	}
}

func TestCombine_KeepsNullDates(t *testing.T) {
	ds := mustCombine(t, csvFile("gaps.csv", "Date,User", "2021-01-01,a", ",b"))

	if _, ok := ds.Rows[1].Date(); ok {
		t.Fatalf("blank date parsed: %v", ds.Rows[1])
	}
	if ds.Rows[1]["Date"] != nil {
		t.Fatalf("Date = %v, want nil", ds.Rows[1]["Date"])
	}
}

func TestCombine_Errors(t *testing.T) {
	t.Run("no fragments", func(t *testing.T) {
		if _, _, err := Combine(nil); !errors.Is(err, entity.ErrEmptyInput) {
			t.Fatalf("Combine(nil) err = %v, want ErrEmptyInput", err)
		}
	})

	t.Run("every file failed", func(t *testing.T) {
		_, report, err := Combine(DecodeAll([]entity.UploadedFile{
			csvFile("a.txt", "Date"),
			csvFile("b.txt", "Date"),
		}, 1))

		if !errors.Is(err, entity.ErrParse) {
			t.Fatalf("Combine() err = %v, want ErrParse", err)
		}
		if !strings.Contains(err.Error(), "a.txt") || !strings.Contains(err.Error(), "b.txt") {
			t.Fatalf("error %q should name both files", err)
		}
		if len(report.Failed) != 2 {
			t.Fatalf("failed = %d, want 2", len(report.Failed))
		}
	})

	t.Run("no date column", func(t *testing.T) {
		_, _, err := Combine(DecodeAll([]entity.UploadedFile{csvFile("a.csv", "User,V", "a,1")}, 1))
		if !errors.Is(err, entity.ErrParse) || !errors.Is(err, entity.ErrMissingColumn) {
			t.Fatalf("Combine() err = %v, want ErrParse and ErrMissingColumn", err)
		}
	})
}

func TestParseDate(t *testing.T) {
	day := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	fifth := time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
		ok   bool
		err  bool
	}{
		{name: "iso date", in: "2021-01-02", want: day, ok: true},
		{name: "unpadded iso date", in: "2021-1-5", want: fifth, ok: true},
		{name: "rfc3339", in: "2021-01-02T10:30:00Z", want: day.Add(10*time.Hour + 30*time.Minute), ok: true},
		{name: "space separated offset", in: "2021-01-05 10:00:00+00:00", want: fifth.Add(10 * time.Hour), ok: true},
		{name: "iso without seconds", in: "2021-01-05 10:00", want: fifth.Add(10 * time.Hour), ok: true},
		{name: "us date", in: "1/2/2021", want: day, ok: true},
		{name: "padded us date", in: "01/02/2021", want: day, ok: true},
		{name: "us date with meridiem", in: "1/5/2021 10:00 PM", want: fifth.Add(22 * time.Hour), ok: true},
		{name: "slashed iso date", in: "2021/1/5", want: fifth, ok: true},
		{name: "day month abbreviation", in: "05-Jan-2021", want: fifth, ok: true},
		{name: "month name", in: "Jan 2, 2021", want: day, ok: true},
		{name: "month name without comma", in: "Jan 5 2021", want: fifth, ok: true},
		{name: "full month name", in: "January 5, 2021", want: fifth, ok: true},
		{name: "day first month name", in: "5 Jan 2021", want: fifth, ok: true},
		{name: "null", in: nil},
		{name: "blank", in: "  "},
		{name: "garbage", in: "not a date", err: true},
		{name: "compact digits", in: "20210105", err: true},
		{name: "number", in: 20210105.0, err: true},
		{name: "serial number", in: 44198.0, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseDate(tt.in)
			if tt.err {
				if !errors.Is(err, entity.ErrParse) {
					t.Fatalf("ParseDate(%v) err = %v, want ErrParse", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%v) err = %v", tt.in, err)
			}
			if ok != tt.ok || !tt.want.Equal(got) {
				t.Fatalf("ParseDate(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseDate_WorkbookSerials(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want time.Time
		err  bool
	}{
		{name: "serial day", in: 44198, want: time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)},
		{name: "serial with time", in: 44198.5, want: time.Date(2021, 1, 2, 12, 0, 0, 0, time.UTC)},
		{name: "compact digits", in: 20210105, err: true},
		{name: "negative", in: -1, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := parseDate(tt.in, true)
			if tt.err {
				if !errors.Is(err, entity.ErrParse) {
					t.Fatalf("parseDate(%v) err = %v, want ErrParse", tt.in, err)
				}
				return
			}
			if err != nil || !ok {
				t.Fatalf("parseDate(%v) = %v, %v, %v", tt.in, got, ok, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("parseDate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTransportRestoresDates(t *testing.T) {
	ds := mustCombine(t, scenarioFile(), csvFile("gaps.csv", "Date,User,V", ",c,"))

	s, err := EncodeDataset(ds)
	if err != nil {
		t.Fatalf("EncodeDataset() err = %v", err)
	}

	back, err := DecodeDataset(s)
	if err != nil {
		t.Fatalf("DecodeDataset() err = %v", err)
	}
	if !reflect.DeepEqual(back.Columns, ds.Columns) {
		t.Fatalf("Columns = %v, want %v", back.Columns, ds.Columns)
	}
	if !reflect.DeepEqual(back.Rows, ds.Rows) {
		t.Fatalf("Rows = %v, want %v", back.Rows, ds.Rows)
	}

	if _, err := DecodeDataset(""); !errors.Is(err, entity.ErrEmptyInput) {
		t.Fatalf("DecodeDataset(\"\") err = %v, want ErrEmptyInput", err)
	}
}
