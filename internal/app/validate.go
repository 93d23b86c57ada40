package app

import (
	"fmt"
	"time"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

// Validate checks a consolidated reservation for completeness and basic
// sanity. Missing required fields make the record incomplete (an operator
// can still finish it by hand); malformed values such as an unparseable
// date, a check-out not after the check-in, or a negative amount make it
// invalid outright. Consolidation warnings are carried through.
func Validate(r domain.ConsolidatedReservation) domain.ValidationResult {
	var res domain.ValidationResult
	malformed := false

	missing := func(field string) {
		res.MissingFields = append(res.MissingFields, field)
		res.Errors = append(res.Errors, domain.FieldError{
			Field: field, Message: "required field is missing", Severity: domain.SeverityError,
		})
	}
	bad := func(field, msg string) {
		res.Errors = append(res.Errors, domain.FieldError{
			Field: field, Message: msg, Severity: domain.SeverityError,
		})
		malformed = true
	}
	warn := func(field, msg string) {
		res.Errors = append(res.Errors, domain.FieldError{
			Field: field, Message: msg, Severity: domain.SeverityWarning,
		})
	}

	if deref(r.GuestName) == "" {
		missing("guestName")
	}

	var in, out time.Time
	var inOK, outOK bool
	if r.CheckIn == nil {
		missing("checkInDate")
	} else if in, inOK = parseDate(*r.CheckIn); !inOK {
		bad("checkInDate", fmt.Sprintf("unparseable date %q", *r.CheckIn))
	}
	if r.CheckOut == nil {
		missing("checkOutDate")
	} else if out, outOK = parseDate(*r.CheckOut); !outOK {
		bad("checkOutDate", fmt.Sprintf("unparseable date %q", *r.CheckOut))
	}
	if inOK && outOK && !out.After(in) {
		bad("checkOutDate", "check-out must be after check-in")
	}

	if !r.Match.Accepted() {
		missing("propertyId")
	}

	if r.TotalAmount == nil {
		missing("totalAmount")
	} else if *r.TotalAmount < 0 {
		bad("totalAmount", "amount must not be negative")
	}

	if r.NumGuests == nil {
		warn("numGuests", "guest count not extracted")
	}
	if deref(r.Platform) == "" {
		warn("platform", "booking platform not extracted")
	}

	res.Errors = append(res.Errors, r.Warnings...)

	switch {
	case malformed:
		res.Status = domain.StatusInvalid
	case len(res.MissingFields) > 0:
		res.Status = domain.StatusIncomplete
	default:
		res.Status = domain.StatusValid
	}
	return res
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}
