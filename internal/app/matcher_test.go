package app_test

import (
	"testing"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/app"
	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/domain"
)

var catalog = []domain.Property{
	{ID: 1, Name: "Nazaré T2"},
	{ID: 2, Name: "São João Batista T3", Aliases: []string{"São João Batista T3", "S. João Batista"}},
	{ID: 3, Name: "Sete Rios"},
	{ID: 4, Name: "Costa blue", Aliases: []string{"A203"}},
	{ID: 5, Name: "Aroeira Villa Premium"},
}

func TestMatchProperty_ExactAfterNormalization(t *testing.T) {
	m := app.MatchProperty("Nazare T2", catalog)
	if m.Score != 100 || m.Method != domain.MatchExact {
		t.Fatalf("unexpected: %+v", m)
	}
	if m.PropertyID == nil || *m.PropertyID != 1 {
		t.Fatalf("expected property 1, got %+v", m.PropertyID)
	}
}

func TestMatchProperty_AliasExact(t *testing.T) {
	m := app.MatchProperty("São João Batista T3", catalog)
	if m.Score != 100 {
		t.Fatalf("expected 100, got %+v", m)
	}
	if m.PropertyID == nil || *m.PropertyID != 2 {
		t.Fatalf("expected property 2, got %+v", m)
	}

	// short unit-code alias
	m = app.MatchProperty("A203", catalog)
	if m.Score != 100 || m.Method != domain.MatchAlias {
		t.Fatalf("unexpected alias match: %+v", m)
	}
	if m.PropertyID == nil || *m.PropertyID != 4 || m.MatchedName != "Costa blue" {
		t.Fatalf("expected Costa blue, got %+v", m)
	}
}

func TestMatchProperty_Containment(t *testing.T) {
	m := app.MatchProperty("Reserva: Aroeira Villa Premium (confirmada)", catalog)
	if m.PropertyID == nil || *m.PropertyID != 5 {
		t.Fatalf("expected property 5, got %+v", m)
	}
	if m.Score < app.AcceptScore {
		t.Fatalf("containment should clear the acceptance threshold: %+v", m)
	}
}

func TestMatchProperty_TokenOverlap(t *testing.T) {
	m := app.MatchProperty("Batista Joao apartamento", catalog)
	if m.Method != domain.MatchTokens {
		t.Fatalf("expected token method, got %+v", m)
	}
	if m.Score >= 100 || m.Score <= 0 {
		t.Fatalf("token score out of range: %+v", m)
	}
}

func TestMatchProperty_NoResemblance(t *testing.T) {
	m := app.MatchProperty("Hóspede desconhecido", catalog)
	if m.PropertyID != nil || m.Score != 0 || m.Method != domain.MatchNone {
		t.Fatalf("expected no match, got %+v", m)
	}
}

func TestMatchProperty_BelowThresholdKeepsSuggestion(t *testing.T) {
	// one overlapping token out of three: diagnostic only
	m := app.MatchProperty("premium mystery booking", catalog)
	if m.PropertyID != nil {
		t.Fatalf("score %d must not auto-assign: %+v", m.Score, m)
	}
	if m.Score >= app.AcceptScore {
		t.Fatalf("expected sub-threshold score: %+v", m)
	}
	if m.Score >= app.SuggestScore && m.MatchedName == "" {
		t.Fatalf("diagnostic matches should carry a suggestion: %+v", m)
	}
}

func TestMatchProperty_ExactOutranksFuzzy(t *testing.T) {
	// "Sete Rios" is exact for property 3 even though it is also a
	// substring-ish candidate elsewhere
	m := app.MatchProperty("Sete Rios", catalog)
	if m.Method != domain.MatchExact || *m.PropertyID != 3 {
		t.Fatalf("exact must win: %+v", m)
	}
}

func TestMatchProperty_DeterministicAfterNormalize(t *testing.T) {
	first := app.MatchProperty("NAZARÉ   t2", catalog)
	second := app.MatchProperty(app.Normalize("NAZARÉ   t2"), catalog)
	if first.PropertyID == nil || second.PropertyID == nil || *first.PropertyID != *second.PropertyID {
		t.Fatalf("matching must be stable under normalization: %+v vs %+v", first, second)
	}
}

func TestMatchProperty_TieKeepsCatalogOrder(t *testing.T) {
	dup := []domain.Property{
		{ID: 10, Name: "Vista Mar"},
		{ID: 11, Name: "Apartamento Vista Mar Deluxe", Aliases: []string{"Vista Mar"}},
	}
	m := app.MatchProperty("Vista Mar", dup)
	if m.PropertyID == nil || *m.PropertyID != 10 {
		t.Fatalf("first catalog entry should win ties: %+v", m)
	}
}

func TestMatchProperty_EmptyInputs(t *testing.T) {
	if m := app.MatchProperty("", catalog); m.Method != domain.MatchNone || m.PropertyID != nil {
		t.Fatalf("empty candidate: %+v", m)
	}
	if m := app.MatchProperty("Nazaré T2", nil); m.Method != domain.MatchNone {
		t.Fatalf("empty catalog: %+v", m)
	}
}
