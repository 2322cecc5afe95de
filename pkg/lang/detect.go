// Package lang detects the language of a questionnaire document by counting
// occurrences of language-specific vocabulary in a text sample. The parser
// never selects its own vocabulary; callers run detection first and hand the
// matching profile to the parser.
package lang

import (
	"strings"

	"github.com/Thomas9824/saqextract/pkg/saq"
)

// Language identifies a supported document language.
type Language string

const (
	French  Language = "french"
	English Language = "english"
	Unknown Language = "unknown"
)

// Result holds a detection outcome. Confidence is the fraction of the
// winning language's keyword list found in the sample, capped at 1.0; ties
// score 0.5.
type Result struct {
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
}

// frenchKeywords and englishKeywords are questionnaire-specific phrases. The
// lists are deliberately document vocabulary (section headers, checkbox
// labels, verb forms) rather than general language features, so a handful of
// sampled pages is enough to separate the two.
var frenchKeywords = []string{
	"exigences", "conseils", "examiner", "observer", "interroger",
	"vérifier", "inspecter", "applicabilité", "en place", "pas en place",
	"non applicable", "non testé", "cocher une réponse", "tous droits réservés",
	"octobre", "saq d de pci dss", "notes d'applicabilité",
}

var englishKeywords = []string{
	"requirements", "guidance", "examine", "observe", "interview",
	"verify", "inspect", "applicability", "in place", "not in place",
	"not applicable", "not tested", "check one response", "all rights reserved",
	"october", "pci dss saq d", "applicability notes",
}

// Detect classifies the sample text. A sample containing no keywords at all
// yields Unknown with zero confidence.
func Detect(sample string) Result {
	lower := strings.ToLower(sample)

	frenchHits := countHits(lower, frenchKeywords)
	englishHits := countHits(lower, englishKeywords)

	switch {
	case frenchHits == 0 && englishHits == 0:
		return Result{Language: Unknown, Confidence: 0}
	case frenchHits > englishHits:
		return Result{Language: French, Confidence: confidence(frenchHits, len(frenchKeywords))}
	case englishHits > frenchHits:
		return Result{Language: English, Confidence: confidence(englishHits, len(englishKeywords))}
	default:
		return Result{Language: Unknown, Confidence: 0.5}
	}
}

// ProfileFor maps a detected language to its parser profile. Unknown falls
// back to French, the language of the reference document set.
func ProfileFor(language Language) saq.Profile {
	if language == English {
		return saq.English()
	}
	return saq.French()
}

func countHits(lower string, keywords []string) int {
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			hits++
		}
	}
	return hits
}

func confidence(hits, total int) float64 {
	c := float64(hits) / float64(total)
	if c > 1.0 {
		c = 1.0
	}
	return c
}
