package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/observability"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// IntakeService drives the whole pipeline over a batch of uploaded
// documents: classify -> extract -> match -> consolidate -> validate, with
// bounded concurrency on the extraction calls. All collaborators are
// injected; the service holds no mutable state between batches.
type IntakeService struct {
	extractor domain.Extractor
	writer    domain.ReservationWriter
	catalog   domain.CatalogProvider
	cache     domain.Cache // optional
	workers   int64
	cacheTTL  int
}

func NewIntakeService(ex domain.Extractor, w domain.ReservationWriter, cat domain.CatalogProvider, cache domain.Cache, workers, cacheTTLSec int) *IntakeService {
	if workers <= 0 {
		workers = 4
	}
	if cacheTTLSec <= 0 {
		cacheTTLSec = 24 * 3600
	}
	return &IntakeService{
		extractor: ex,
		writer:    w,
		catalog:   cat,
		cache:     cache,
		workers:   int64(workers),
		cacheTTL:  cacheTTLSec,
	}
}

type docOutcome struct {
	res     domain.DocumentResult
	records []domain.ExtractedReservation
	err     error
}

// ProcessBatch always returns a BatchResult describing every document. The
// returned error is non-nil only when the batch as a whole could not run:
// no catalog, or the provider failed for every single document.
//
// Canceling ctx skips documents not yet dispatched; extractions already in
// flight run to completion so the provider never sees a half-aborted call.
func (s *IntakeService) ProcessBatch(ctx context.Context, docs []domain.Document) (domain.BatchResult, error) {
	var result domain.BatchResult

	catalog, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return result, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if len(catalog) == 0 {
		return result, fmt.Errorf("%w: empty snapshot", domain.ErrCatalogUnavailable)
	}

	outcomes := make([]docOutcome, len(docs))
	detached := context.WithoutCancel(ctx)
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for i, doc := range docs {
		if ctx.Err() != nil {
			outcomes[i] = skippedOutcome(doc)
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			outcomes[i] = skippedOutcome(doc)
			continue
		}
		wg.Add(1)
		go func(i int, doc domain.Document) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[i] = s.processDocument(detached, doc)
		}(i, doc)
	}

	// consolidation needs the full record set: every extraction must have
	// completed or definitively failed before grouping starts
	wg.Wait()

	var records []domain.ExtractedReservation
	extractionFailures := 0
	for _, o := range outcomes {
		result.PerDocument = append(result.PerDocument, o.res)
		if o.err != nil {
			result.Failures = append(result.Failures, domain.Failure{
				DocumentID: o.res.DocumentID,
				Name:       o.res.Name,
				Reason:     o.res.Error,
			})
			if errors.Is(o.err, domain.ErrExtractionFailed) {
				extractionFailures++
			}
			continue
		}
		records = append(records, o.records...)
	}

	result.Consolidated, result.Summary = s.finishBatch(detached, records, catalog)
	result.Summary.Documents = len(docs)
	result.Summary.Failed = len(result.Failures)

	if len(docs) > 0 && extractionFailures == len(docs) {
		return result, fmt.Errorf("%w: provider unavailable for the whole batch", domain.ErrExtractionFailed)
	}
	return result, nil
}

func skippedOutcome(doc domain.Document) docOutcome {
	return docOutcome{
		res: domain.DocumentResult{
			DocumentID: doc.ID,
			Name:       doc.Name,
			Type:       domain.DocUnknown,
			Error:      "skipped: batch canceled",
		},
		err: context.Canceled,
	}
}

func (s *IntakeService) processDocument(ctx context.Context, doc domain.Document) docOutcome {
	res := domain.DocumentResult{DocumentID: doc.ID, Name: doc.Name, Type: domain.DocUnknown}

	var records []domain.ExtractedReservation
	key := "extract:" + contentKey(doc.Bytes)
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &records); ok {
			// same bytes may have been uploaded under another document id
			for i := range records {
				records[i].SourceDocID = doc.ID
			}
			res.FromCache = true
		}
	}

	if !res.FromCache {
		var err error
		records, err = s.extractor.Extract(ctx, doc)
		if err != nil {
			log.Warn().Str("doc", doc.ID).Str("name", doc.Name).Err(err).Msg("extraction failed")
			res.Error = err.Error()
			return docOutcome{res: res, err: err}
		}
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, records, s.cacheTTL)
		}
	}

	res.Type = Classify(records)
	res.Records = len(records)
	log.Debug().
		Str("doc", doc.ID).
		Str("type", string(res.Type)).
		Int("records", res.Records).
		Bool("cached", res.FromCache).
		Msg("document processed")
	return docOutcome{res: res, records: records}
}

// finishBatch runs the synchronous tail of the pipeline: consolidate the
// full record set, validate each candidate, hand forwardable ones to the
// writer, and collect the raw names that failed to match for alias
// curation.
func (s *IntakeService) finishBatch(ctx context.Context, records []domain.ExtractedReservation, catalog []domain.Property) ([]domain.Candidate, domain.BatchSummary) {
	consolidated := Consolidate(records, catalog)

	var summary domain.BatchSummary
	summary.Records = len(consolidated)

	candidates := make([]domain.Candidate, 0, len(consolidated))
	matched := 0
	seenUnmatched := map[string]struct{}{}

	for _, c := range consolidated {
		v := Validate(c)
		candidates = append(candidates, domain.Candidate{Reservation: c, Validation: v})
		observability.ObserveMatch(string(c.Match.Method))
		observability.ObserveRecord(string(v.Status))

		switch v.Status {
		case domain.StatusValid:
			summary.Valid++
		case domain.StatusIncomplete:
			summary.Incomplete++
		case domain.StatusInvalid:
			summary.Invalid++
		}

		if c.Match.Accepted() {
			matched++
		} else {
			summary.Unmatched++
			if raw := deref(c.PropertyNameRaw); raw != "" {
				if _, ok := seenUnmatched[raw]; !ok {
					seenUnmatched[raw] = struct{}{}
					summary.UnmatchedNames = append(summary.UnmatchedNames, raw)
					suggestion := ""
					if c.Match.Score >= SuggestScore {
						suggestion = c.Match.MatchedName
					}
					if err := s.catalog.RecordUnmatched(ctx, raw, c.Match.Score, suggestion); err != nil {
						log.Warn().Str("raw", raw).Err(err).Msg("record unmatched name failed")
					}
				}
			}
		}

		if v.Forwardable() && s.writer != nil {
			if err := s.writer.CreateReservation(ctx, c, v); err != nil {
				log.Warn().
					Str("guest", deref(c.GuestName)).
					Str("property", deref(c.PropertyNameRaw)).
					Err(err).
					Msg("reservation writer rejected candidate")
			}
		}
	}

	if len(consolidated) > 0 {
		summary.MatchRate = float64(matched) / float64(len(consolidated)) * 100
	}
	return candidates, summary
}

func contentKey(b []byte) string {
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
