package app

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// Consolidate groups reservation fragments by guest and property and merges
// each group into a single candidate: typically the check-in sheet supplies
// one date and the check-out sheet the other. Fragments without a
// counterpart pass through as single-record consolidations.
//
// Merging takes the union of non-nil fields. On conflict the value from the
// higher-confidence fragment wins and the discrepancy is kept as a warning.
// The result is independent of input order.
func Consolidate(records []domain.ExtractedReservation, catalog []domain.Property) []domain.ConsolidatedReservation {
	groups := map[string][]domain.ExtractedReservation{}
	for _, r := range records {
		match := MatchProperty(deref(r.PropertyNameRaw), catalog)
		key := Normalize(deref(r.GuestName)) + "|" + propertyKey(r, match)
		groups[key] = append(groups[key], r)
	}

	out := make([]domain.ConsolidatedReservation, 0, len(groups))
	for _, g := range groups {
		out = append(out, mergeGroup(g, catalog))
	}
	sort.Slice(out, func(i, j int) bool {
		if a, b := Normalize(deref(out[i].GuestName)), Normalize(deref(out[j].GuestName)); a != b {
			return a < b
		}
		return deref(out[i].PropertyNameRaw) < deref(out[j].PropertyNameRaw)
	})
	return out
}

// propertyKey prefers the matched catalog id so that the same property
// written two different ways across documents still groups together.
func propertyKey(r domain.ExtractedReservation, m domain.MatchResult) string {
	if m.Accepted() {
		return "p" + strconv.FormatInt(*m.PropertyID, 10)
	}
	return "n" + Normalize(deref(r.PropertyNameRaw))
}

func mergeGroup(records []domain.ExtractedReservation, catalog []domain.Property) domain.ConsolidatedReservation {
	// highest confidence first; doc id and page make the order total so
	// that [A,B] and [B,A] merge identically
	sort.Slice(records, func(i, j int) bool {
		if records[i].Confidence != records[j].Confidence {
			return records[i].Confidence > records[j].Confidence
		}
		if records[i].SourceDocID != records[j].SourceDocID {
			return records[i].SourceDocID < records[j].SourceDocID
		}
		return records[i].SourcePage < records[j].SourcePage
	})

	// the highest-confidence fragment also decides the reported match, so
	// the same group always carries the same score and method regardless of
	// which document arrived first
	match := MatchProperty(deref(records[0].PropertyNameRaw), catalog)

	merged := domain.ConsolidatedReservation{ExtractedReservation: records[0], Match: match}
	seen := map[string]struct{}{records[0].SourceDocID: {}}
	merged.Sources = []string{records[0].SourceDocID}

	for _, r := range records[1:] {
		if _, ok := seen[r.SourceDocID]; !ok {
			seen[r.SourceDocID] = struct{}{}
			merged.Sources = append(merged.Sources, r.SourceDocID)
		}
		fillStr(&merged.GuestName, r.GuestName, "guestName", &merged)
		fillStr(&merged.GuestEmail, r.GuestEmail, "guestEmail", &merged)
		fillStr(&merged.GuestPhone, r.GuestPhone, "guestPhone", &merged)
		fillStr(&merged.CheckIn, r.CheckIn, "checkInDate", &merged)
		fillStr(&merged.CheckOut, r.CheckOut, "checkOutDate", &merged)
		fillStr(&merged.Platform, r.Platform, "platform", &merged)
		fillStr(&merged.Reference, r.Reference, "reference", &merged)
		if merged.NumGuests == nil {
			merged.NumGuests = r.NumGuests
		} else if r.NumGuests != nil && *r.NumGuests != *merged.NumGuests {
			conflict(&merged, "numGuests", strconv.Itoa(*merged.NumGuests), strconv.Itoa(*r.NumGuests))
		}
		if merged.TotalAmount == nil {
			merged.TotalAmount = r.TotalAmount
		} else if r.TotalAmount != nil && *r.TotalAmount != *merged.TotalAmount {
			conflict(&merged, "totalAmount",
				strconv.FormatFloat(*merged.TotalAmount, 'f', 2, 64),
				strconv.FormatFloat(*r.TotalAmount, 'f', 2, 64))
		}
	}
	sort.Strings(merged.Sources)
	return merged
}

// fillStr keeps the existing (higher-confidence) value and records a
// warning when a lower-confidence fragment disagrees. Guest-name casing or
// accent differences are not conflicts.
func fillStr(dst **string, src *string, field string, merged *domain.ConsolidatedReservation) {
	if src == nil {
		return
	}
	if *dst == nil {
		v := *src
		*dst = &v
		return
	}
	if **dst != *src && Normalize(**dst) != Normalize(*src) {
		conflict(merged, field, **dst, *src)
	}
}

func conflict(merged *domain.ConsolidatedReservation, field, kept, dropped string) {
	merged.Warnings = append(merged.Warnings, domain.FieldError{
		Field:    field,
		Message:  fmt.Sprintf("conflicting values across documents: kept %q, dropped %q", kept, dropped),
		Severity: domain.SeverityWarning,
	})
}
