package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

/********** alias registry (single source of truth) **********/

// Providers and prompt revisions disagree on field names; documents mix
// English and Portuguese labels. One registry, dot paths allowed.
var reservationAliases = map[string][]string{
	"guest_name":  {"guestName", "guest_name", "guest", "name", "cliente", "hospede", "client_name"},
	"guest_email": {"guestEmail", "guest_email", "email", "contact.email"},
	"guest_phone": {"guestPhone", "guest_phone", "phone", "telefone", "contact.phone"},
	"property":    {"propertyName", "property_name", "property", "alojamento", "accommodation", "listing", "apartamento"},
	"check_in":    {"checkInDate", "check_in_date", "check_in", "checkin", "arrival", "entrada", "dates.checkIn"},
	"check_out":   {"checkOutDate", "check_out_date", "check_out", "checkout", "departure", "saida", "dates.checkOut"},
	"num_guests":  {"numGuests", "num_guests", "guests", "pax", "adults", "hospedes"},
	"total":       {"totalAmount", "total_amount", "total", "amount", "valor", "price", "valor_total"},
	"platform":    {"platform", "channel", "source", "site", "portal"},
	"reference":   {"reference", "booking_reference", "reservation_id", "confirmation_code", "referencia"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, key string) *string {
	for _, p := range reservationAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// getFloatFlexible: number from several paths (float64/int/string like
// "1.250,00", "1,250.00" or "85,50").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			s = strings.TrimLeft(s, "€$£ ")
			// when both separators appear, whichever comes last is the
			// decimal point; the other marks thousands
			if ci, di := strings.LastIndex(s, ","), strings.LastIndex(s, "."); ci != -1 && di != -1 {
				if ci > di {
					s = strings.ReplaceAll(s, ".", "")
				} else {
					s = strings.ReplaceAll(s, ",", "")
				}
			}
			s = strings.ReplaceAll(s, ",", ".")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func firstIntFlexible(m map[string]any, paths ...string) *int {
	if f := getFloatFlexible(m, paths...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// dateLayouts covers what actually shows up in check-in sheets: ISO,
// Portuguese day-first with / - or ., and ISO with slashes.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2006/01/02",
}

// canonicalDate reparses a raw date string into YYYY-MM-DD, or nil for an
// empty input. Unrecognized layouts pass through untouched so validation
// can flag them; a value is never invented.
func canonicalDate(raw *string) *string {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			iso := t.Format("2006-01-02")
			return &iso
		}
	}
	return raw
}

/********** reservation mapper **********/

// MapReservation shapes one provider-output object into the fixed schema.
// Any field may be absent; absent stays nil.
func MapReservation(docID string, page int, m map[string]any) domain.ExtractedReservation {
	r := domain.ExtractedReservation{
		GuestName:       firstNonEmptyAlias(m, "guest_name"),
		GuestEmail:      firstNonEmptyAlias(m, "guest_email"),
		GuestPhone:      firstNonEmptyAlias(m, "guest_phone"),
		PropertyNameRaw: firstNonEmptyAlias(m, "property"),
		CheckIn:         canonicalDate(firstNonEmptyAlias(m, "check_in")),
		CheckOut:        canonicalDate(firstNonEmptyAlias(m, "check_out")),
		NumGuests:       firstIntFlexible(m, reservationAliases["num_guests"]...),
		TotalAmount:     getFloatFlexible(m, reservationAliases["total"]...),
		Platform:        firstNonEmptyAlias(m, "platform"),
		Reference:       firstNonEmptyAlias(m, "reference"),
		SourceDocID:     docID,
		SourcePage:      page,
	}

	if f := getFloatFlexible(m, "confidence", "score"); f != nil {
		c := *f
		if c > 1 { // some models answer in percent
			c /= 100
		}
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		r.Confidence = c
	}

	if p := firstIntFlexible(m, "page", "sourcePage", "source_page"); p != nil && *p > 0 {
		r.SourcePage = *p
	}
	return r
}

// MapReservations maps every row of a provider response, keeping rows that
// carry at least one reservation-bearing field.
func MapReservations(docID string, rows []map[string]any) []domain.ExtractedReservation {
	out := make([]domain.ExtractedReservation, 0, len(rows))
	for _, m := range rows {
		r := MapReservation(docID, 1, m)
		if r.GuestName == nil && r.PropertyNameRaw == nil && r.CheckIn == nil && r.CheckOut == nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
