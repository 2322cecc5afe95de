package saq

import (
	"strings"
	"unicode/utf8"
)

// extractEmbedded scans a plain-text line for test-bullet phrases merged
// mid-sentence by PDF text extraction. Each marker pattern is matched
// non-overlapping and processed right to left so that removing one span does
// not shift the offsets of spans still to be removed.
//
// A matched snippet shorter than completeTestLength, or one that does not end
// in terminal punctuation, is treated as truncated: following source lines
// are pulled in (under the usual continuation boundaries) until a
// terminal-punctuated line is consumed. Lines consumed that way extend the
// returned last index, which the caller must skip past.
//
// Snippets whose cleaned length exceeds minTestLength are appended to the
// requirement's tests (first occurrence only) and their span is replaced by
// a single space in the residual text. The residual, whitespace-collapsed
// line is returned for description consideration.
//
// lines may be nil for a string-scoped scan with no lookahead.
func (p *Parser) extractEmbedded(line string, req *Requirement, lines []string, index int) (residual string, last int) {
	remaining := line
	last = index

	for _, pattern := range p.embedded {
		matches := pattern.FindAllStringIndex(remaining, -1)
		for k := len(matches) - 1; k >= 0; k-- {
			span := matches[k]
			test := strings.TrimSpace(p.bulletPrefix.ReplaceAllString(remaining[span[0]:span[1]], ""))

			if utf8.RuneCountInString(test) < completeTestLength || !hasTerminalPunct(test) {
				j := index + 1
				for j < len(lines) {
					next := strings.TrimSpace(lines[j])
					if next == "" {
						j++
						continue
					}
					if p.isBoundary(next, allBoundaries) {
						break
					}
					test += " " + next
					if j > last {
						last = j
					}
					if hasTerminalPunct(next) {
						break
					}
					j++
				}
			}

			test = p.cleanFragment(test)
			if utf8.RuneCountInString(test) > minTestLength {
				if !hasString(req.Tests, test) {
					req.Tests = append(req.Tests, test)
				}
				remaining = remaining[:span[0]] + " " + remaining[span[1]:]
			}
		}
	}

	return p.collapseSpaces(remaining), last
}

// hasTerminalPunct reports whether s ends a sentence.
func hasTerminalPunct(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?")
}
