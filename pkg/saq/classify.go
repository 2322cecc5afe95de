package saq

import (
	"strings"
	"unicode/utf8"
)

// lineClass is the category a single trimmed line falls into during the walk.
type lineClass int

const (
	classText lineClass = iota
	classHeader
	classTest
	classApplicability
	classGuidance
	classIgnore
)

// classify categorizes one trimmed line. For headers the requirement number
// and the remainder of the line are available through headerLine.
func (p *Parser) classify(line string) lineClass {
	if _, _, ok := p.headerLine(line); ok {
		return classHeader
	}
	if p.isTestLine(line) {
		return classTest
	}
	if strings.HasPrefix(line, p.profile.ApplicabilityMarker) {
		return classApplicability
	}
	if strings.HasPrefix(line, p.profile.GuidanceMarker) {
		return classGuidance
	}
	if p.isIgnorable(line) {
		return classIgnore
	}
	return classText
}

// headerLine reports whether the line opens a new requirement. On a match it
// returns the dotted number and the line's remainder with the number
// stripped. A dotted number whose leading component falls outside
// [minMainNumber, maxMainNumber] is not a header; that range check is what
// keeps stray page and version numbers (e.g. "14.2") out of the result.
func (p *Parser) headerLine(line string) (number, rest string, ok bool) {
	m := p.headerPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	components := NumberComponents(m[1])
	if len(components) < 2 {
		return "", "", false
	}
	if components[0] < minMainNumber || components[0] > maxMainNumber {
		return "", "", false
	}
	return m[1], strings.TrimSpace(line[len(m[0]):]), true
}

// isTestLine reports whether the line starts with one of the profile's
// bullet-prefixed verb phrases.
func (p *Parser) isTestLine(line string) bool {
	for _, marker := range p.profile.TestMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// isIgnorable reports whether the line is boilerplate: it matches one of the
// profile's ignore patterns, or is too short to carry content.
func (p *Parser) isIgnorable(line string) bool {
	for _, pattern := range p.profile.ignore {
		if pattern.MatchString(line) {
			return true
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(line)) <= maxIgnorableLength
}

// boundarySet selects which section markers end a continuation gather, in
// addition to the always-stopping headers, test lines, and ignorable lines.
type boundarySet struct {
	applicability bool
	guidance      bool
}

// allBoundaries stops at both section markers; used by test gathering and
// embedded-test completion.
var allBoundaries = boundarySet{applicability: true, guidance: true}

// isBoundary reports whether the line ends a continuation gather.
func (p *Parser) isBoundary(line string, stop boundarySet) bool {
	if _, _, ok := p.headerLine(line); ok {
		return true
	}
	if p.isTestLine(line) {
		return true
	}
	if stop.applicability && strings.HasPrefix(line, p.profile.ApplicabilityMarker) {
		return true
	}
	if stop.guidance && strings.HasPrefix(line, p.profile.GuidanceMarker) {
		return true
	}
	return p.isIgnorable(line)
}
