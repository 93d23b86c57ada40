package domain

import (
	"context"
	"errors"
)

// Extractor turns one document into zero or more reservation fragments.
// Implementations own provider transport, retries and schema enforcement;
// terminal failures are wrapped in ErrExtractionFailed.
type Extractor interface {
	Extract(ctx context.Context, doc Document) ([]ExtractedReservation, error)
}

// CatalogProvider supplies the read-only property snapshot at batch start
// and collects raw names that failed to match, feeding alias curation.
type CatalogProvider interface {
	LoadCatalog(ctx context.Context) ([]Property, error)
	RecordUnmatched(ctx context.Context, raw string, bestScore int, suggestion string) error
}

// ReservationWriter is the downstream collaborator that persists accepted
// candidates. The pipeline only calls it for valid or incomplete records.
type ReservationWriter interface {
	CreateReservation(ctx context.Context, r ConsolidatedReservation, v ValidationResult) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

var (
	// ErrExtractionFailed wraps provider errors after retries are exhausted.
	ErrExtractionFailed = errors.New("extraction failed")
	// ErrCatalogUnavailable aborts the whole batch: without properties there
	// is nothing to match against.
	ErrCatalogUnavailable = errors.New("property catalog unavailable")
)
