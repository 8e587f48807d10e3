package usecase

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/xuri/excelize/v2"
)

// DetectFormat sniffs the format from the filename. "csv" wins over "xls".
func DetectFormat(filename string) entity.Format {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "csv"):
		return entity.FormatCSV
	case strings.Contains(name, "xlsx"), strings.Contains(name, "xlsm"):
		return entity.FormatXLSX
	case strings.Contains(name, "xls"):
		return entity.FormatXLS
	default:
		return entity.FormatUnknown
	}
}

// DecodeFile turns one uploaded file into a fragment. It never fails: any
// problem is captured in the fragment's Err.
func DecodeFile(file entity.UploadedFile) entity.Fragment {
	format := DetectFormat(file.Filename)
	frag := entity.Fragment{Filename: file.Filename, Format: format}

	ds, err := decode(file, format)
	if err != nil {
		frag.Err = entity.NewFileError(file.Filename, err)
		return frag
	}

	frag.Dataset = ds
	return frag
}

func decode(file entity.UploadedFile, format entity.Format) (entity.Dataset, error) {
	if format == entity.FormatUnknown {
		return entity.Dataset{}, fmt.Errorf("%w: %q is neither csv nor xls", entity.ErrUnsupportedFormat, file.Filename)
	}

	data, err := decodeContents(file.Contents)
	if err != nil {
		return entity.Dataset{}, err
	}

	var records [][]string
	switch format {
	case entity.FormatCSV:
		records, err = readCSV(data)
	case entity.FormatXLS:
		records, err = readXLS(data)
	default:
		records, err = readXLSX(data)
	}
	if err != nil {
		return entity.Dataset{}, err
	}

	return buildDataset(records, file.Filename)
}

// decodeContents splits a data URL on its first comma and base64 decodes the payload.
func decodeContents(contents string) ([]byte, error) {
	_, payload, ok := strings.Cut(contents, ",")
	if !ok {
		return nil, fmt.Errorf("%w: contents are not a data url", entity.ErrDecode)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	return data, nil
}

// EncodeContents builds the data URL DecodeFile expects.
func EncodeContents(mediaType string, data []byte) string {
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: csv is not valid utf-8", entity.ErrParse)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", entity.ErrParse)
	}

	// Raw values keep date cells as serial numbers instead of locale strings.
	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
	}

	return rows, nil
}

func readXLS(data []byte) (records [][]string, err error) {
	// The legacy reader panics on some truncated workbooks.
	defer func() {
		if r := recover(); r != nil {
			records, err = nil, fmt.Errorf("%w: corrupt workbook: %v", entity.ErrParse, r)
		}
	}()

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrParse, err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", entity.ErrParse)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: no worksheet found", entity.ErrParse)
	}

	last := int(sheet.MaxRow)
	records = make([][]string, 0, last+1)
	for i := 0; i <= last; i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}

		cells := make([]string, row.LastCol())
		for c := range cells {
			cells[c] = row.Col(c)
		}
		records = append(records, cells)
	}

	return records, nil
}

// buildDataset treats the first record as the header and every following
// record as a row, tagging each row with filename.
func buildDataset(records [][]string, filename string) (entity.Dataset, error) {
	records = trimBlankRecords(records)
	if len(records) == 0 {
		return entity.Dataset{}, fmt.Errorf("%w: no columns to parse", entity.ErrParse)
	}

	columns := headerColumns(records[0])
	hasFilename := false
	for _, c := range columns {
		if c == entity.ColumnFilename {
			hasFilename = true
		}
	}
	if !hasFilename {
		columns = append(columns, entity.ColumnFilename)
	}

	width := len(records[0])
	rows := make([]entity.Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) > width && !isBlankTail(record[width:]) {
			return entity.Dataset{}, fmt.Errorf("%w: row %d has %d fields, header has %d", entity.ErrParse, i+2, len(record), width)
		}

		row := make(entity.Row, len(columns))
		for c := 0; c < width; c++ {
			var raw string
			if c < len(record) {
				raw = record[c]
			}
			row[columns[c]] = inferCell(raw)
		}
		row[entity.ColumnFilename] = filename
		rows = append(rows, row)
	}

	return entity.Dataset{Columns: columns, Rows: rows}, nil
}

// headerColumns names blank headers "Unnamed: i" and suffixes duplicates with ".n".
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}
	return columns
}

func trimBlankRecords(records [][]string) [][]string {
	for len(records) > 0 && isBlankTail(records[0]) {
		records = records[1:]
	}
	for len(records) > 0 && isBlankTail(records[len(records)-1]) {
		records = records[:len(records)-1]
	}
	return records
}

func isBlankTail(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// inferCell maps a raw cell to nil, float64 or string.
func inferCell(raw string) any {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(f) {
			return nil
		}
		if !math.IsInf(f, 0) {
			return f
		}
	}

	return value
}
