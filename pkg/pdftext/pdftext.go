// Package pdftext supplies ordered per-page text for a questionnaire PDF.
// It is the parser's upstream collaborator: the parser itself only ever sees
// the concatenated, newline-joined page strings produced here.
//
// Extraction uses github.com/ledongthuc/pdf, a pure Go reader, so uploaded
// documents can be processed from memory without touching disk.
package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Requirement pages in the SAQ D documents: 0-based page index 15 through
// 128 (printed pages 16-129). The range is a property of the document
// layout, not re-derived from content.
const (
	RequirementPageStart = 15
	RequirementPageEnd   = 129
)

// Detection sample ranges: title pages plus the start of the requirement
// section.
const (
	sampleTitleEnd     = 5
	sampleContentStart = 15
	sampleContentEnd   = 20
)

// Extractor reads page text from in-memory PDF bytes.
type Extractor struct{}

// New returns a ready Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Range extracts the text of pages [start, end) by 0-based index, clamped to
// the document's page count, one string per page in document order. A page
// whose text layer cannot be decoded contributes an empty string rather than
// failing the document.
func (e *Extractor) Range(data []byte, start, end int) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	start, end = clampRange(start, end, reader.NumPage())

	pages := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		// ledongthuc/pdf pages are 1-based.
		page := reader.Page(i + 1)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// RequirementText returns the newline-joined text of the requirement pages,
// ready for the parser.
func (e *Extractor) RequirementText(data []byte) (string, error) {
	pages, err := e.Range(data, RequirementPageStart, RequirementPageEnd)
	if err != nil {
		return "", err
	}
	return JoinPages(pages), nil
}

// Sample returns text from the title pages and the start of the requirement
// section, enough for language detection without reading the whole document.
func (e *Extractor) Sample(data []byte) (string, error) {
	title, err := e.Range(data, 0, sampleTitleEnd)
	if err != nil {
		return "", err
	}
	content, err := e.Range(data, sampleContentStart, sampleContentEnd)
	if err != nil {
		return "", err
	}
	return JoinPages(append(title, content...)), nil
}

// JoinPages concatenates per-page strings with newline separators.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// clampRange bounds [start, end) to [0, pageCount) and never returns an
// inverted range.
func clampRange(start, end, pageCount int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > pageCount {
		end = pageCount
	}
	if start > end {
		start = end
	}
	return start, end
}
