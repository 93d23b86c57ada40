package app_test

import (
	"reflect"
	"testing"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/app"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

func checkInRecord() domain.ExtractedReservation {
	return domain.ExtractedReservation{
		GuestName:       ptr("Pedro Oliveira"),
		PropertyNameRaw: ptr("Sete Rios"),
		CheckIn:         ptr("2025-07-07"),
		NumGuests:       ptr(2),
		Confidence:      0.9,
		SourceDocID:     "doc-1",
		SourcePage:      1,
	}
}

func checkOutRecord() domain.ExtractedReservation {
	return domain.ExtractedReservation{
		GuestName:       ptr("Pedro Oliveira"),
		PropertyNameRaw: ptr("Sete Rios"),
		CheckOut:        ptr("2025-07-12"),
		TotalAmount:     ptr(480.0),
		Confidence:      0.7,
		SourceDocID:     "doc-2",
		SourcePage:      1,
	}
}

func TestConsolidate_MergesCheckInAndCheckOut(t *testing.T) {
	out := app.Consolidate([]domain.ExtractedReservation{checkInRecord(), checkOutRecord()}, catalog)
	if len(out) != 1 {
		t.Fatalf("expected one consolidated record, got %d", len(out))
	}
	c := out[0]
	if c.CheckIn == nil || *c.CheckIn != "2025-07-07" {
		t.Fatalf("check-in lost: %+v", c)
	}
	if c.CheckOut == nil || *c.CheckOut != "2025-07-12" {
		t.Fatalf("check-out lost: %+v", c)
	}
	if c.TotalAmount == nil || *c.TotalAmount != 480.0 {
		t.Fatalf("amount lost: %+v", c)
	}
	if !reflect.DeepEqual(c.Sources, []string{"doc-1", "doc-2"}) {
		t.Fatalf("sources: %+v", c.Sources)
	}
	if c.Match.PropertyID == nil || *c.Match.PropertyID != 3 {
		t.Fatalf("property match lost in merge: %+v", c.Match)
	}
	if len(c.Warnings) != 0 {
		t.Fatalf("clean merge should carry no warnings: %+v", c.Warnings)
	}
}

func TestConsolidate_Commutative(t *testing.T) {
	a, b := checkInRecord(), checkOutRecord()
	ab := app.Consolidate([]domain.ExtractedReservation{a, b}, catalog)
	ba := app.Consolidate([]domain.ExtractedReservation{b, a}, catalog)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("consolidation depends on input order:\n%+v\nvs\n%+v", ab, ba)
	}
}

func TestConsolidate_MatchIndependentOfInputOrder(t *testing.T) {
	a := checkInRecord() // "Sete Rios", an exact match at confidence 0.9
	b := checkOutRecord()
	b.PropertyNameRaw = ptr("Reserva Sete Rios confirmada") // containment match, confidence 0.7

	ab := app.Consolidate([]domain.ExtractedReservation{a, b}, catalog)
	ba := app.Consolidate([]domain.ExtractedReservation{b, a}, catalog)
	if !reflect.DeepEqual(ab, ba) {
		t.Fatalf("match result depends on input order:\n%+v\nvs\n%+v", ab, ba)
	}
	if len(ab) != 1 {
		t.Fatalf("both fragments resolve to property 3 and must merge, got %d", len(ab))
	}
	m := ab[0].Match
	if m.Score != 100 || m.Method != domain.MatchExact {
		t.Fatalf("merged match should come from the highest-confidence fragment: %+v", m)
	}
}

func TestConsolidate_ConflictKeepsHigherConfidence(t *testing.T) {
	a, b := checkInRecord(), checkOutRecord()
	a.TotalAmount = ptr(500.0) // a has confidence 0.9, b has 0.7 with 480
	out := app.Consolidate([]domain.ExtractedReservation{a, b}, catalog)
	if len(out) != 1 {
		t.Fatalf("expected one record, got %d", len(out))
	}
	c := out[0]
	if c.TotalAmount == nil || *c.TotalAmount != 500.0 {
		t.Fatalf("higher-confidence amount should win: %+v", c.TotalAmount)
	}
	if len(c.Warnings) != 1 || c.Warnings[0].Field != "totalAmount" || c.Warnings[0].Severity != domain.SeverityWarning {
		t.Fatalf("conflict must surface as a warning: %+v", c.Warnings)
	}
}

func TestConsolidate_GroupsByMatchedPropertyNotSpelling(t *testing.T) {
	a, b := checkInRecord(), checkOutRecord()
	// same property, differently corrupted by OCR; both resolve to id 3
	a.PropertyNameRaw = ptr("SETE  RIOS")
	b.PropertyNameRaw = ptr("Sete\nRios")
	out := app.Consolidate([]domain.ExtractedReservation{a, b}, catalog)
	if len(out) != 1 {
		t.Fatalf("matched id should unify spellings, got %d records", len(out))
	}
}

func TestConsolidate_UnrelatedRecordsPassThrough(t *testing.T) {
	a := checkInRecord()
	other := checkInRecord()
	other.GuestName = ptr("Maria Santos")
	other.SourceDocID = "doc-9"
	out := app.Consolidate([]domain.ExtractedReservation{a, other}, catalog)
	if len(out) != 2 {
		t.Fatalf("unrelated guests must not merge, got %d", len(out))
	}
}

func TestConsolidate_GuestNameAccentsAreNotConflicts(t *testing.T) {
	a, b := checkInRecord(), checkOutRecord()
	b.GuestName = ptr("PEDRO OLIVEIRA")
	out := app.Consolidate([]domain.ExtractedReservation{a, b}, catalog)
	if len(out) != 1 {
		t.Fatalf("case difference must still group, got %d", len(out))
	}
	if len(out[0].Warnings) != 0 {
		t.Fatalf("casing is not a conflict: %+v", out[0].Warnings)
	}
}
