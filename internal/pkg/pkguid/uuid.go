package pkguid

import (
	"log/slog"

	"github.com/google/uuid"
)

// UUID generates time ordered UUIDv7 strings.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUIDv7 string, falling back to a random v4 when the
// v7 clock sequence cannot be produced.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		slog.Warn("uuid v7 unavailable, using v4", "error", err)
		return uuid.NewString()
	}
	return id.String()
}
