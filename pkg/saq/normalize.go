package saq

import "strings"

// Normalize strips document-scope boilerplate from raw concatenated page
// text and returns it with one trimmed, requirement-relevant line per output
// line. Removal happens before line splitting because some artifacts (the
// running page header block in particular) span line breaks in the extracted
// text. Normalize is idempotent: running it on already-normalized text is a
// no-op.
func (p *Parser) Normalize(text string) string {
	for _, rule := range p.profile.document {
		text = rule.ReplaceAllString(text, "")
	}

	// Collapse any run of blank lines to exactly one blank line, then trim
	// every remaining line.
	text = p.blankRuns.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}
