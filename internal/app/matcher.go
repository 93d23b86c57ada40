package app

import (
	"math"
	"strings"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

const (
	// AcceptScore is the minimum score at which a property may be
	// auto-assigned to a reservation.
	AcceptScore = 60
	// SuggestScore is the looser diagnostic floor used only to surface
	// alias-curation suggestions to an operator, never for assignment.
	SuggestScore = 30
)

// MatchProperty scores a free-text property name against every catalog name
// and alias and returns the single best result. Ties keep the earlier
// catalog entry, and within one property the canonical name beats its
// aliases. PropertyID is populated only at or above AcceptScore.
func MatchProperty(raw string, catalog []domain.Property) domain.MatchResult {
	cand := Normalize(raw)
	best := domain.MatchResult{Method: domain.MatchNone}
	if cand == "" {
		return best
	}

	var bestID int64
	for _, p := range catalog {
		if score, method := scoreAgainst(cand, Normalize(p.Name), false); score > best.Score {
			best = domain.MatchResult{MatchedName: p.Name, Score: score, Method: method}
			bestID = p.ID
		}
		for _, alias := range p.Aliases {
			if score, method := scoreAgainst(cand, Normalize(alias), true); score > best.Score {
				best = domain.MatchResult{MatchedName: p.Name, Score: score, Method: method}
				bestID = p.ID
			}
		}
	}

	if best.Score >= AcceptScore {
		id := bestID
		best.PropertyID = &id
	}
	if best.Score == 0 {
		return domain.MatchResult{Method: domain.MatchNone}
	}
	return best
}

// scoreAgainst applies the layered rules to two normalized strings:
// equality, then substring containment, then token overlap.
func scoreAgainst(cand, entry string, isAlias bool) (int, domain.MatchMethod) {
	if entry == "" {
		return 0, domain.MatchNone
	}
	if cand == entry {
		if isAlias {
			return 100, domain.MatchAlias
		}
		return 100, domain.MatchExact
	}

	if strings.Contains(cand, entry) || strings.Contains(entry, cand) {
		score := 80
		shorter, longer := len(cand), len(entry)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		if float64(shorter)/float64(longer) >= 0.7 {
			score = 90
		}
		if isAlias {
			return score, domain.MatchAlias
		}
		return score, domain.MatchContains
	}

	if score := tokenOverlapScore(cand, entry); score > 0 {
		return score, domain.MatchTokens
	}
	return 0, domain.MatchNone
}

// tokenOverlapScore counts candidate tokens (length > 2) that contain, or
// are contained by, some entry token, scaled by the larger token count and
// capped at 85 so it can never outrank a containment match.
func tokenOverlapScore(cand, entry string) int {
	ct := significantTokens(cand)
	et := significantTokens(entry)
	if len(ct) == 0 || len(et) == 0 {
		return 0
	}
	overlap := 0
	for _, c := range ct {
		for _, e := range et {
			if strings.Contains(c, e) || strings.Contains(e, c) {
				overlap++
				break
			}
		}
	}
	if overlap == 0 {
		return 0
	}
	denom := len(ct)
	if len(et) > denom {
		denom = len(et)
	}
	return int(math.Round(math.Min(85, float64(overlap)/float64(denom)*100)))
}

func significantTokens(s string) []string {
	var out []string
	for _, t := range strings.Fields(s) {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}
