package app

import "github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"

// Classify decides what kind of document produced the given fragments.
// A control file carries several distinct guest/date rows; a check-in or
// check-out sheet carries exactly one fragment missing the counterpart
// date. The verdict is advisory: every downstream stage must cope with
// DocUnknown.
func Classify(records []domain.ExtractedReservation) domain.DocumentType {
	switch {
	case len(records) == 0:
		return domain.DocUnknown
	case len(records) > 1:
		if distinctStays(records) > 1 {
			return domain.DocControl
		}
		return domain.DocUnknown
	}

	r := records[0]
	switch {
	case r.CheckIn != nil && r.CheckOut == nil:
		return domain.DocCheckIn
	case r.CheckOut != nil && r.CheckIn == nil:
		return domain.DocCheckOut
	default:
		return domain.DocUnknown
	}
}

func distinctStays(records []domain.ExtractedReservation) int {
	seen := map[string]struct{}{}
	for _, r := range records {
		key := Normalize(deref(r.GuestName)) + "|" + deref(r.CheckIn)
		seen[key] = struct{}{}
	}
	return len(seen)
}
