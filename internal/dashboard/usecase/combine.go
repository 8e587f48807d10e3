package usecase

import (
	"fmt"
	"strings"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"golang.org/x/sync/errgroup"
)

// DecodeAll decodes files with at most workers goroutines. Fragments keep upload order.
func DecodeAll(files []entity.UploadedFile, workers int) []entity.Fragment {
	frags := make([]entity.Fragment, len(files))
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			frags[i] = DecodeFile(file)
			return nil
		})
	}
	_ = g.Wait()

	return frags
}

// Combine stacks the usable fragments into one dataset. Failed fragments and
// fragments with unparseable dates are skipped and listed in the report.
func Combine(fragments []entity.Fragment) (entity.Dataset, entity.UploadReport, error) {
	var report entity.UploadReport
	if len(fragments) == 0 {
		return entity.Dataset{}, report, entity.ErrEmptyInput
	}

	var combined entity.Dataset
	seen := make(map[string]bool)

	for _, frag := range fragments {
		if frag.Failed() {
			report.Failed = append(report.Failed, *frag.Err)
			continue
		}

		if err := coerceDates(frag.Dataset, frag.Format != entity.FormatCSV); err != nil {
			report.Failed = append(report.Failed, *entity.NewFileError(frag.Filename, err))
			continue
		}

		for _, c := range frag.Dataset.Columns {
			if !seen[c] {
				seen[c] = true
				combined.Columns = append(combined.Columns, c)
			}
		}
		combined.Rows = append(combined.Rows, frag.Dataset.Rows...)

		report.Succeeded = append(report.Succeeded, entity.FileResult{
			Filename: frag.Filename,
			Format:   frag.Format,
			Rows:     frag.Dataset.Len(),
		})
	}

	if len(report.Succeeded) == 0 {
		return entity.Dataset{}, report, fmt.Errorf("%w: every file failed: %s", entity.ErrParse, failedNames(report.Failed))
	}

	if !combined.HasColumn(entity.ColumnDate) {
		return entity.Dataset{}, report, fmt.Errorf("%w: %w %q", entity.ErrParse, entity.ErrMissingColumn, entity.ColumnDate)
	}

	for _, row := range combined.Rows {
		for _, c := range combined.Columns {
			if _, ok := row[c]; !ok {
				row[c] = nil
			}
		}
	}

	return combined, report, nil
}

func failedNames(failed []entity.FileError) string {
	names := make([]string, len(failed))
	for i, f := range failed {
		names[i] = f.Filename
	}
	return strings.Join(names, ", ")
}
