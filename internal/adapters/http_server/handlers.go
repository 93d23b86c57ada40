// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// ReportStore keeps the most recent batch outcome for the dashboard. The
// intake run publishes, the ops endpoint reads; nothing else touches it.
type ReportStore struct {
	mu   sync.RWMutex
	last *domain.BatchResult
}

func (s *ReportStore) Publish(r domain.BatchResult) {
	s.mu.Lock()
	s.last = &r
	s.mu.Unlock()
}

func (s *ReportStore) Latest() (domain.BatchResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return domain.BatchResult{}, false
	}
	return *s.last, true
}

type Handlers struct{ Reports *ReportStore }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reports/latest", h.latestReport)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) latestReport(w http.ResponseWriter, r *http.Request) {
	report, ok := h.Reports.Latest()
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no batch has completed yet")
		return
	}

	etag, body := calcETagAndBody(report)
	// dashboards poll this; If-None-Match saves re-sending unchanged reports
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write latest report body")
	}
}
