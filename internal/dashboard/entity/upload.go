package entity

import "time"

// UploadedFile is one browser upload: a data URL, its name and the epoch
// second it was last modified. It only lives for one decode call.
type UploadedFile struct {
	Contents     string
	Filename     string
	LastModified int64
}

// Fragment is the per-file table produced by the decoder. Exactly one of
// Dataset or Err is meaningful.
type Fragment struct {
	Filename string
	Format   Format
	Dataset  Dataset
	Err      *FileError
}

// Failed reports whether the file could not be decoded.
func (f Fragment) Failed() bool {
	return f.Err != nil
}

// FileResult summarises one successfully combined file.
type FileResult struct {
	Filename string
	Format   Format
	Rows     int
}

// UploadReport separates the files that made it into the dataset from the skipped ones.
type UploadReport struct {
	BatchID   int64
	Succeeded []FileResult
	Failed    []FileError
}

// FileInfo is the metadata shown for an uploaded file.
type FileInfo struct {
	Name       string
	UploadedAt time.Time
}

// UploadEvent is published after each upload batch is combined.
type UploadEvent struct {
	EventID    string
	SessionID  string
	Report     UploadReport
	Rows       int
	OccurredAt time.Time
}
