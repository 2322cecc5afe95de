package saq

import (
	"strings"
	"testing"
)

// Boilerplate fixtures are literal artifacts from extracted questionnaire
// text. The removal rules are brittle by nature; keep these as verbatim
// strings, do not regenerate them from memory.
func TestNormalizeRemovesBoilerplate(t *testing.T) {
	p := newFrenchParser(t)

	tests := []struct {
		name  string
		in    string
		drops []string
	}{
		{
			name:  "copyright block",
			in:    "Texte utile.\n© 2006-2024 PCI Security Standards Council, LLC. Tous Droits Réservés.\nSuite du texte.",
			drops: []string{"©", "Tous Droits Réservés"},
		},
		{
			name:  "page header spanning lines",
			in:    "Texte utile.\nSAQ D de PCI DSS v4.0.1 pour les Commerçants\nPage 27\nEn Place\nSuite du texte.",
			drops: []string{"SAQ D", "Page 27"},
		},
		{
			name:  "date stamp",
			in:    "Texte utile. Octobre 2024 Suite du texte.",
			drops: []string{"Octobre 2024"},
		},
		{
			name:  "cross-reference callout",
			in:    "Texte utile.\n♦ Se reporter à l'annexe B pour les contrôles compensatoires.\nSuite du texte.",
			drops: []string{"♦", "Se reporter"},
		},
		{
			name:  "checkbox instruction",
			in:    "Texte utile. (Cocher une réponse pour chaque exigence) Suite du texte.",
			drops: []string{"Cocher une réponse"},
		},
		{
			name:  "checkbox table row",
			in:    "Texte utile.\nEn Place En Place avec CCW Non Applicable Non Testé Pas en Place\nSuite du texte.",
			drops: []string{"CCW", "Non Testé"},
		},
		{
			name:  "truncated checkbox table row",
			in:    "Texte utile.\navec CCW Non Applicable Non Testé Pas en Place\nSuite du texte.",
			drops: []string{"CCW"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Normalize(tt.in)
			for _, drop := range tt.drops {
				if strings.Contains(got, drop) {
					t.Errorf("Normalize left %q in output:\n%s", drop, got)
				}
			}
			if !strings.Contains(got, "Texte utile.") || !strings.Contains(got, "Suite du texte.") {
				t.Errorf("Normalize removed surrounding content:\n%s", got)
			}
		})
	}
}

func TestNormalizeCollapsesBlankRuns(t *testing.T) {
	p := newFrenchParser(t)

	got := p.Normalize("première ligne\n\n\n\n\nseconde ligne")
	want := "première ligne\n\nseconde ligne"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeTrimsLines(t *testing.T) {
	p := newFrenchParser(t)

	got := p.Normalize("  ligne avec espaces  \n\tautre ligne\t")
	want := "ligne avec espaces\nautre ligne"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

// Running the normalizer on its own output changes nothing.
func TestNormalizeIdempotent(t *testing.T) {
	p := newFrenchParser(t)

	inputs := []string{
		"3.2.1 Les données sensibles ne sont pas conservées.\n\n• Examiner les politiques en vigueur.",
		"Texte utile.\nSAQ D de PCI DSS v4.0.1\nPage 27\nEn Place\n\n\nSuite.",
		"© 2006-2024 PCI Security Standards Council, LLC. Tous Droits Réservés.",
		"",
	}

	for _, in := range inputs {
		once := p.Normalize(in)
		twice := p.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestCleanFragmentIdempotent(t *testing.T) {
	p := newFrenchParser(t)

	inputs := []string{
		"Examiner les politiques de conservation des données.",
		"Vérifier la configuration En Place avec CCW Non Applicable Non Testé Pas en Place des systèmes.",
	}

	for _, in := range inputs {
		once := p.cleanFragment(in)
		twice := p.cleanFragment(once)
		if once != twice {
			t.Errorf("cleanFragment not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}
