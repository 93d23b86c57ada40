package ai

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/adapters/observability"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/app"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// Extractor sends one document at a time to the vision model and shapes the
// answer into the fixed reservation schema. It owns retries, per-call
// timeouts and client-side rate limiting; callers only ever see
// domain.ErrExtractionFailed for terminal failures.
type Extractor struct {
	cl      *openai.Client
	model   string
	rl      *rate.Limiter
	timeout time.Duration
}

// New builds an Extractor. base may be empty for the public endpoint; it is
// overridable so tests can point at a local server.
func New(apiKey, base, model string, rps int, timeout time.Duration) (*Extractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = openai.GPT4o
	}
	if rps <= 0 {
		rps = 3
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg := openai.DefaultConfig(apiKey)
	if base != "" {
		cfg.BaseURL = base
	}
	return &Extractor{
		cl:      openai.NewClientWithConfig(cfg),
		model:   model,
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		timeout: timeout,
	}, nil
}

const maxAttempts = 3

// Extract implements domain.Extractor.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) ([]domain.ExtractedReservation, error) {
	req := e.buildRequest(doc)

	start := time.Now()
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// every attempt spends rate budget, retries included
		if err := e.rl.Wait(ctx); err != nil {
			return nil, err
		}
		attemptCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := e.cl.CreateChatCompletion(attemptCtx, req)
		cancel()

		if err == nil && len(resp.Choices) > 0 {
			records, perr := parseResponse(doc.ID, resp.Choices[0].Message.Content)
			if perr != nil {
				observability.ObserveExtraction("openai", "failed", time.Since(start))
				return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, perr)
			}
			observability.ObserveExtraction("openai", "ok", time.Since(start))
			return records, nil
		}
		if err == nil {
			err = errors.New("provider returned no choices")
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !retryable(err) {
			break
		}
		observability.ObserveExtraction("openai", "retry", time.Since(start))
		if attempt < maxAttempts-1 && !sleepCtx(ctx, backoff(attempt)) {
			return nil, ctx.Err()
		}
	}

	observability.ObserveExtraction("openai", "failed", time.Since(start))
	return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, lastErr)
}

func (e *Extractor) buildRequest(doc domain.Document) openai.ChatCompletionRequest {
	dataURL := fmt.Sprintf("data:%s;base64,%s", doc.MIME, base64.StdEncoding.EncodeToString(doc.Bytes))
	return openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You extract reservation data from vacation-rental check-in sheets, check-out sheets and multi-reservation control files.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	}
}

// One object per reservation row. Field names here are the canonical wire
// schema; the mappers still tolerate drift.
const extractionPrompt = `Read the attached document and list every reservation it contains.

Return ONLY a JSON object with this structure:
{
  "reservations": [
    {
      "guestName": "...",
      "guestEmail": "...",
      "guestPhone": "...",
      "propertyName": "...",
      "checkInDate": "YYYY-MM-DD",
      "checkOutDate": "YYYY-MM-DD",
      "numGuests": 2,
      "totalAmount": 123.45,
      "platform": "...",
      "reference": "...",
      "confidence": 0.0,
      "page": 1
    }
  ]
}

Rules:
- One entry per reservation; a control file may contain many.
- Use null for any field you cannot read. Never guess a value.
- propertyName must be copied exactly as written, including abbreviations.
- confidence is your certainty for the whole entry, between 0 and 1.
- page is the 1-based page the entry was read from.`

func parseResponse(docID, content string) ([]domain.ExtractedReservation, error) {
	// providers occasionally wrap the JSON in prose or code fences
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in provider response")
	}
	var payload struct {
		Reservations []map[string]any `json:"reservations"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("malformed provider response: %v", err)
	}
	return app.MapReservations(docID, payload.Reservations), nil
}

// retryable: rate limits, server-side errors and transport failures may
// resolve on a later attempt; auth and bad-request errors will not.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == 429 || reqErr.HTTPStatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "connection refused") || strings.Contains(s, "EOF") ||
		strings.Contains(s, "no choices")
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff returns an exponential delay (500ms, 1s, 2s, ...) with up to +50%
// jitter from crypto/rand so concurrent workers do not retry in lockstep.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 500 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
