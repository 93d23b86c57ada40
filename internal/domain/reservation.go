package domain

type DocumentType string

const (
	DocCheckIn  DocumentType = "check-in"
	DocCheckOut DocumentType = "check-out"
	DocControl  DocumentType = "control-file"
	DocUnknown  DocumentType = "unknown"
)

// Document is one uploaded file: raw bytes plus just enough metadata to
// report on it.
type Document struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	MIME  string `json:"mime"`
	Bytes []byte `json:"-"`
}

// ExtractedReservation is one reservation fragment as read from a document
// (or one row of a multi-reservation control file). Immutable after
// creation. Optional fields stay nil when the extractor could not read
// them; absence is never guessed.
type ExtractedReservation struct {
	GuestName       *string  `json:"guestName"`
	GuestEmail      *string  `json:"guestEmail,omitempty"`
	GuestPhone      *string  `json:"guestPhone,omitempty"`
	PropertyNameRaw *string  `json:"propertyNameRaw"`
	CheckIn         *string  `json:"checkInDate"`  // YYYY-MM-DD as read
	CheckOut        *string  `json:"checkOutDate"` // YYYY-MM-DD as read
	NumGuests       *int     `json:"numGuests,omitempty"`
	TotalAmount     *float64 `json:"totalAmount,omitempty"`
	Platform        *string  `json:"platform,omitempty"`
	Reference       *string  `json:"reference,omitempty"`
	Confidence      float64  `json:"confidence"`
	SourceDocID     string   `json:"sourceDocumentId"`
	SourcePage      int      `json:"sourcePage"`
}

// ConsolidatedReservation is the union of a check-in and a check-out record
// for the same guest and property, or a single record when no counterpart
// exists in the batch. Warnings carry non-fatal field conflicts found while
// merging.
type ConsolidatedReservation struct {
	ExtractedReservation
	Match    MatchResult  `json:"match"`
	Sources  []string     `json:"sources"`
	Warnings []FieldError `json:"warnings,omitempty"`
}
