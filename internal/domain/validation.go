package domain

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type ValidationStatus string

const (
	StatusValid      ValidationStatus = "valid"
	StatusIncomplete ValidationStatus = "incomplete"
	StatusInvalid    ValidationStatus = "invalid"
)

type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationResult is computed fresh per consolidated reservation and never
// persisted on its own.
type ValidationResult struct {
	Status        ValidationStatus `json:"status"`
	MissingFields []string         `json:"missingFields,omitempty"`
	Errors        []FieldError     `json:"errors,omitempty"`
}

// Forwardable reports whether the record may be handed to the reservation
// writer (pending human completion for incomplete ones).
func (v ValidationResult) Forwardable() bool {
	return v.Status == StatusValid || v.Status == StatusIncomplete
}
