package saq

import "unicode/utf8"

// cleanFragment strips single-string boilerplate fragments from an assembled
// test, section, or description string and normalizes its whitespace.
func (p *Parser) cleanFragment(s string) string {
	for _, rule := range p.profile.fragment {
		s = rule.ReplaceAllString(s, "")
	}
	return p.collapseSpaces(s)
}

// stripArtifacts removes checkbox-table remnants and the other response-box
// artifact families from a field, then normalizes whitespace. Applied to
// every field in the final pass.
func (p *Parser) stripArtifacts(s string) string {
	for _, rule := range p.profile.artifacts {
		s = rule.ReplaceAllString(s, "")
	}
	return p.collapseSpaces(s)
}

// finalize seals a requirement before commit: any test phrases still buried
// in the accumulated description are extracted, leftover artifacts are
// stripped from every field, whitespace is normalized, and the test list is
// deduplicated (exact string match, first occurrence kept) with entries at
// or under minTestLength dropped.
func (p *Parser) finalize(req *Requirement) {
	residual, _ := p.extractEmbedded(req.Description, req, nil, 0)
	req.Description = p.stripArtifacts(residual)

	cleaned := make([]string, 0, len(req.Tests))
	for _, test := range req.Tests {
		test = p.stripArtifacts(test)
		if utf8.RuneCountInString(test) > minTestLength && !hasString(cleaned, test) {
			cleaned = append(cleaned, test)
		}
	}
	req.Tests = cleaned

	req.Guidance = p.stripArtifacts(req.Guidance)
}
