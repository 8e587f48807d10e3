package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat means the filename matched neither "csv" nor "xls".
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDecode means the data URL could not be split or base64 decoded.
	ErrDecode = errors.New("cannot decode file contents")
	// ErrParse means the bytes are not a readable table or a Date is not a date.
	ErrParse = errors.New("cannot parse file")
	// ErrEmptyInput means an upload carried no files.
	ErrEmptyInput = errors.New("no files uploaded")
	// ErrNoDataset means the session has nothing uploaded yet.
	ErrNoDataset = errors.New("no dataset uploaded")
	// ErrMissingColumn means a column the dashboard filters on is absent.
	ErrMissingColumn = errors.New("missing column")
)

// FileError records why one uploaded file was skipped.
type FileError struct {
	Filename string
	Kind     ErrorKind
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// NewFileError wraps err for filename, deriving the kind from the sentinel in its chain.
func NewFileError(filename string, err error) *FileError {
	kind := ErrorKindParse
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		kind = ErrorKindUnsupportedFormat
	case errors.Is(err, ErrDecode):
		kind = ErrorKindDecode
	}

	return &FileError{Filename: filename, Kind: kind, Err: err}
}
