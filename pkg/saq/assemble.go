package saq

import (
	"strings"
	"unicode/utf8"
)

// ParseLines walks an already-normalized line sequence and assembles
// requirement records. The walk is a single forward pass with an explicit
// cursor; the only mutable state is the in-progress requirement. Lines seen
// before the first requirement header are dropped. A requirement whose
// number was already committed is parsed but discarded at commit time.
func (p *Parser) ParseLines(lines []string) []Requirement {
	result := make([]Requirement, 0)
	var current *Requirement

	commit := func() {
		if current == nil {
			return
		}
		p.finalize(current)
		if !hasNumber(result, current.Number) {
			result = append(result, *current)
		}
		current = nil
	}

	for i := 0; i < len(lines); {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if number, rest, ok := p.headerLine(line); ok {
			commit()
			current = &Requirement{
				Number:      number,
				Description: rest,
				Tests:       make([]string, 0),
			}
			i++
			continue
		}

		if current == nil {
			i++
			continue
		}

		switch p.classify(line) {
		case classTest:
			seed := strings.TrimSpace(p.bulletPrefix.ReplaceAllString(line, ""))
			text, next := p.gatherContinuation(seed, lines, i+1, allBoundaries)
			text = p.cleanFragment(text)
			if utf8.RuneCountInString(text) > minTestLength && !hasString(current.Tests, text) {
				current.Tests = append(current.Tests, text)
			}
			i = next

		case classApplicability:
			seed := strings.Trim(line[len(p.profile.ApplicabilityMarker):], ": ")
			text, next := p.gatherContinuation(seed, lines, i+1, boundarySet{guidance: true})
			current.Guidance = p.cleanFragment(text)
			i = next

		case classGuidance:
			seed := strings.Trim(line[len(p.profile.GuidanceMarker):], ": ")
			text, next := p.gatherContinuation(seed, lines, i+1, boundarySet{applicability: true})
			current.Guidance = p.cleanFragment(text)
			i = next

		case classIgnore:
			i++

		default:
			residual, last := p.extractEmbedded(line, current, lines, i)
			if last > i {
				// Embedded-test completion consumed lines beyond this one;
				// skip past them without touching the description.
				i = last + 1
				continue
			}
			if p.isDescriptionLine(residual, current.Description) {
				if current.Description != "" {
					current.Description += " " + residual
				} else {
					current.Description = residual
				}
			}
			i++
		}
	}

	commit()
	return result
}

// gatherContinuation consumes lines starting at index start for as long as
// each is plain continuation, appending them to seed with single spaces.
// Blank lines are skipped; the first boundary line is not consumed. Returns
// the assembled text and the index of the first unconsumed line.
func (p *Parser) gatherContinuation(seed string, lines []string, start int, stop boundarySet) (string, int) {
	j := start
	for j < len(lines) {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			j++
			continue
		}
		if p.isBoundary(next, stop) {
			break
		}
		seed += " " + next
		j++
	}
	return seed, j
}

// isDescriptionLine reports whether residual text is worth appending to the
// requirement statement: long enough, and not already present verbatim.
func (p *Parser) isDescriptionLine(line, description string) bool {
	if line == "" || utf8.RuneCountInString(line) < minDescriptionLength {
		return false
	}
	return !strings.Contains(description, line)
}

func hasNumber(requirements []Requirement, number string) bool {
	for _, req := range requirements {
		if req.Number == number {
			return true
		}
	}
	return false
}

func hasString(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
