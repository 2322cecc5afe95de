package saq

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// minTestLength is the cleaned length a testing procedure must exceed to
	// be kept. Shorter strings are page-break debris.
	minTestLength = 10

	// completeTestLength is the length under which an embedded testing
	// procedure is treated as truncated and completed from following lines.
	completeTestLength = 30

	// minDescriptionLength is the minimum length for a line to be appended
	// to a requirement's description.
	minDescriptionLength = 3

	// maxIgnorableLength: trimmed lines at or under this length are noise.
	maxIgnorableLength = 2
)

// Parser turns normalized questionnaire text into Requirement records. It is
// configured with a language Profile and holds the compiled patterns for the
// whole walk. A Parser is safe for reuse across documents but not for
// concurrent use.
type Parser struct {
	profile *compiledProfile

	// headerPattern matches a dotted-decimal requirement number at the start
	// of a line, e.g. "3.2.1 ". At least two components, trailing whitespace.
	headerPattern *regexp.Regexp

	// bulletPrefix strips the leading bullet glyph from a testing procedure.
	bulletPrefix *regexp.Regexp

	// spaceRuns collapses internal whitespace runs.
	spaceRuns *regexp.Regexp

	// blankRuns collapses runs of blank lines to a single blank line.
	blankRuns *regexp.Regexp

	// embedded holds one pattern per test marker, matching a bullet-verb
	// span inside a line up to the next bullet or end of line.
	embedded []*regexp.Regexp
}

// NewParser creates a Parser for the given language profile. Returns an
// error if any profile pattern fails to compile.
func NewParser(profile Profile) (*Parser, error) {
	cp, err := profile.compile()
	if err != nil {
		return nil, err
	}

	p := &Parser{
		profile:       cp,
		headerPattern: regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)*)\s+`),
		bulletPrefix:  regexp.MustCompile(`^•\s*`),
		spaceRuns:     regexp.MustCompile(`\s+`),
		blankRuns:     regexp.MustCompile(`\n\s*\n`),
	}

	for _, marker := range profile.TestMarkers {
		verb := strings.TrimSpace(strings.TrimPrefix(marker, "•"))
		if verb == "" {
			return nil, fmt.Errorf("profile %q: test marker %q has no verb", profile.Name, marker)
		}
		p.embedded = append(p.embedded, regexp.MustCompile(`(?i)•\s*`+regexp.QuoteMeta(verb)+`[^•]*`))
	}

	return p, nil
}

// Profile returns the profile the parser was built with.
func (p *Parser) Profile() Profile {
	return p.profile.Profile
}

// Parse normalizes the concatenated page text and walks it into requirement
// records, in document order. An input with no recognizable requirement
// headers yields an empty (non-nil-safe) slice, not an error.
func (p *Parser) Parse(text string) []Requirement {
	return p.ParseLines(strings.Split(p.Normalize(text), "\n"))
}

// collapseSpaces reduces every whitespace run to a single space and trims.
func (p *Parser) collapseSpaces(s string) string {
	return strings.TrimSpace(p.spaceRuns.ReplaceAllString(s, " "))
}
