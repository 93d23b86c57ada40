package app_test

import (
	"testing"

	"github.com/bilalmachraa82/MariaIntelligence-1-sub011/internal/app"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Nazaré T2", "nazare t2"},
		{"São João Batista T3", "sao joao batista t3"},
		{"  EXCESS   space ", "excess space"},
		{"line\nbreak\r\ncorruption", "line break corruption"},
		{"Cana-Frio, (2.º Esq)", "cana frio 2 esq"},
		{"çãéíõü", "caeiou"},
		{"A203", "a203"},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := app.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Nazaré T2",
		"Sete Rios - 3.º Dto",
		"  muito \n espaço\t",
		"ALREADY normal",
		"",
		"日本語 and latin",
	}
	for _, s := range inputs {
		once := app.Normalize(s)
		if twice := app.Normalize(once); twice != once {
			t.Errorf("not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}
