// internal/domain/duty/source.go
package duty

import (
	"context"
	"fmt"
	"time"

	"hospital_duty_kiosk/internal/domain/document"
)

// Source errors are returned as values by fetchers and listers; callers decide the fallback.
var ErrNotFound = fmt.Errorf("source document not found")
var ErrUnreachable = fmt.Errorf("source unreachable")

// Source is one downloadable duty document announced by a listing.
type Source struct {
	ID     string
	Label  string // human readable, e.g. "ΤΡΙΤΗ 14 ΟΚΤΩΒΡΙΟΥ 2025 (.pdf)"
	Format document.Format
}

// SourceLister lists the duty documents published since a given day.
type SourceLister interface {
	ListSources(ctx context.Context, since time.Time) ([]Source, error)
}

// DocumentFetcher downloads the raw bytes of a source document.
type DocumentFetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}
