package domain

// DocumentResult is the per-file outcome of a batch run.
type DocumentResult struct {
	DocumentID string       `json:"documentId"`
	Name       string       `json:"name"`
	Type       DocumentType `json:"type"`
	Records    int          `json:"records"`
	FromCache  bool         `json:"fromCache,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// Failure records a document whose extraction definitively failed. It never
// aborts the batch.
type Failure struct {
	DocumentID string `json:"documentId"`
	Name       string `json:"name"`
	Reason     string `json:"reason"`
}

// Candidate pairs a consolidated reservation with its validation outcome;
// this is what the reservation writer and the dashboard see.
type Candidate struct {
	Reservation ConsolidatedReservation `json:"reservation"`
	Validation  ValidationResult        `json:"validation"`
}

type BatchSummary struct {
	Documents      int      `json:"documents"`
	Failed         int      `json:"failed"`
	Records        int      `json:"records"`
	Valid          int      `json:"valid"`
	Incomplete     int      `json:"incomplete"`
	Invalid        int      `json:"invalid"`
	Unmatched      int      `json:"unmatched"`
	MatchRate      float64  `json:"matchRate"` // percent of records with an accepted property
	UnmatchedNames []string `json:"unmatchedNames,omitempty"`
}

// BatchResult is always returned, even when every document failed.
type BatchResult struct {
	PerDocument  []DocumentResult `json:"perDocument"`
	Consolidated []Candidate      `json:"consolidated"`
	Failures     []Failure        `json:"failures,omitempty"`
	Summary      BatchSummary     `json:"summary"`
}
