package saq

import (
	"sort"
	"strconv"
	"strings"
)

// Requirement is one numbered requirement extracted from the questionnaire.
type Requirement struct {
	// Number is the dotted-decimal identifier, e.g. "3.2.1".
	Number string `json:"req_num"`

	// Description is the requirement statement text (not tests, not guidance).
	Description string `json:"text"`

	// Tests are the testing procedures, in document order, with exact
	// duplicates removed.
	Tests []string `json:"tests"`

	// Guidance combines applicability notes and guidance content. When a
	// requirement carries both sections, the last one encountered wins.
	Guidance string `json:"guidance"`
}

const (
	// minMainNumber and maxMainNumber bound the leading component of a valid
	// requirement number. Principal requirements run 1 through 12; anything
	// outside is a stray page or version number that happens to look dotted.
	minMainNumber = 1
	maxMainNumber = 12

	// sortKeyWidth is the component count requirement numbers are
	// zero-padded to when sorting.
	sortKeyWidth = 4
)

// NumberComponents splits a dotted requirement number into its integer
// components ("3.2.1" -> [3 2 1]). Returns nil if any component is not a
// non-negative integer.
func NumberComponents(number string) []int {
	parts := strings.Split(number, ".")
	components := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil
		}
		components = append(components, n)
	}
	return components
}

// sortKey pads the number's components with zeros to sortKeyWidth so that
// "1.2" orders before "1.10" and "3.2" before "3.2.1".
func sortKey(number string) [sortKeyWidth]int {
	var key [sortKeyWidth]int
	for i, c := range NumberComponents(number) {
		if i >= sortKeyWidth {
			break
		}
		key[i] = c
	}
	return key
}

// SortRequirements orders requirements numerically by their dotted number.
// The sort is stable.
func SortRequirements(requirements []Requirement) {
	sort.SliceStable(requirements, func(i, j int) bool {
		a, b := sortKey(requirements[i].Number), sortKey(requirements[j].Number)
		for k := 0; k < sortKeyWidth; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}

// Summary aggregates counts over a parsed requirement list.
type Summary struct {
	Total        int `json:"total"`
	WithTests    int `json:"with_tests"`
	WithGuidance int `json:"with_guidance"`
	TotalTests   int `json:"total_tests"`
}

// Summarize computes summary statistics for a requirement list.
func Summarize(requirements []Requirement) Summary {
	s := Summary{Total: len(requirements)}
	for _, req := range requirements {
		if len(req.Tests) > 0 {
			s.WithTests++
		}
		if req.Guidance != "" {
			s.WithGuidance++
		}
		s.TotalTests += len(req.Tests)
	}
	return s
}
