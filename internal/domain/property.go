package domain

// Property is a catalog entry supplied by the storage collaborator at the
// start of a batch run. The pipeline never mutates it.
type Property struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

type MatchMethod string

const (
	MatchExact    MatchMethod = "exact"
	MatchAlias    MatchMethod = "alias"
	MatchContains MatchMethod = "fuzzy-contains"
	MatchTokens   MatchMethod = "fuzzy-tokens"
	MatchNone     MatchMethod = "none"
)

// MatchResult describes how (and whether) a raw property name resolved
// against the catalog. PropertyID is nil iff the score is below the
// acceptance threshold; Method == MatchNone implies a nil PropertyID.
type MatchResult struct {
	PropertyID  *int64      `json:"propertyId"`
	MatchedName string      `json:"matchedName,omitempty"`
	Score       int         `json:"score"`
	Method      MatchMethod `json:"method"`
}

// Accepted reports whether the match cleared the acceptance threshold.
func (m MatchResult) Accepted() bool { return m.PropertyID != nil }
