package entity

import "time"

// SessionState is everything one browser session holds between interactions.
type SessionState struct {
	// Transport is the serialized dataset; empty when nothing is uploaded.
	Transport   string
	Controls    Controls
	Selection   FilterSelection
	SubmitCount int
	ActiveTab   TabID
	Report      UploadReport
	UpdatedAt   time.Time
}

// HasDataset reports whether an upload produced a dataset.
func (s SessionState) HasDataset() bool {
	return s.Transport != ""
}
