// Package api exposes the extraction pipeline over HTTP: a health probe and
// a multipart upload endpoint returning the parsed requirement list as JSON.
package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Thomas9824/saqextract/pkg/lang"
	"github.com/Thomas9824/saqextract/pkg/saq"
)

// TextSource supplies page text from raw PDF bytes. Satisfied by
// pdftext.Extractor; tests substitute a stub.
type TextSource interface {
	// RequirementText returns the newline-joined text of the requirement
	// page range.
	RequirementText(data []byte) (string, error)

	// Sample returns a text sample sufficient for language detection.
	Sample(data []byte) (string, error)
}

// Handler serves the extraction API.
type Handler struct {
	source TextSource
}

// NewHandler registers the API routes on the engine and returns the handler.
func NewHandler(r *gin.Engine, source TextSource) *Handler {
	handler := &Handler{source: source}

	r.GET("/health", handler.Health)
	group := r.Group("/api")
	group.POST("/extract", handler.Extract)

	return handler
}

// NewEngine builds a gin engine with the default logger and recovery
// middleware and the API routes registered.
func NewEngine(source TextSource) *gin.Engine {
	r := gin.Default()
	NewHandler(r, source)
	return r
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "saqextract API is running",
	})
}

// LanguageInfo describes the vocabulary selected for a parse.
type LanguageInfo struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Detected   bool    `json:"detected"`
}

// ExtractResponse is the success payload of POST /api/extract.
type ExtractResponse struct {
	Success      bool              `json:"success"`
	Language     LanguageInfo      `json:"language"`
	Requirements []saq.Requirement `json:"requirements"`
	Summary      saq.Summary       `json:"summary"`
}

// Extract accepts a multipart PDF upload in the "file" field, detects the
// document language (unless overridden with a "lang" form or query value of
// "fr" or "en"), parses the requirement pages, and returns the numerically
// sorted requirement list with summary statistics.
func (h *Handler) Extract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if fileHeader.Filename == "" || strings.ToLower(filepath.Ext(fileHeader.Filename)) != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are allowed"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	profile, info, err := h.selectProfile(c, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parser, err := saq.NewParser(profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := h.source.RequirementText(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requirements := parser.Parse(text)
	if len(requirements) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no requirements found in PDF"})
		return
	}
	saq.SortRequirements(requirements)

	c.JSON(http.StatusOK, ExtractResponse{
		Success:      true,
		Language:     info,
		Requirements: requirements,
		Summary:      saq.Summarize(requirements),
	})
}

// selectProfile resolves the parse vocabulary from an explicit "lang"
// override or by keyword detection on a page sample.
func (h *Handler) selectProfile(c *gin.Context, data []byte) (saq.Profile, LanguageInfo, error) {
	override := c.PostForm("lang")
	if override == "" {
		override = c.Query("lang")
	}

	switch strings.ToLower(override) {
	case "fr", "french":
		return saq.French(), LanguageInfo{Code: "fr", Name: "French", Confidence: 1}, nil
	case "en", "english":
		return saq.English(), LanguageInfo{Code: "en", Name: "English", Confidence: 1}, nil
	case "":
	default:
		return saq.Profile{}, LanguageInfo{}, errUnknownLanguage(override)
	}

	sample, err := h.source.Sample(data)
	if err != nil {
		return saq.Profile{}, LanguageInfo{}, err
	}

	result := lang.Detect(sample)
	info := LanguageInfo{Confidence: result.Confidence, Detected: true}
	switch result.Language {
	case lang.English:
		info.Code, info.Name = "en", "English"
	case lang.French:
		info.Code, info.Name = "fr", "French"
	default:
		// Unknown degrades to the French vocabulary, mirroring ProfileFor.
		info.Code, info.Name = "unknown", "Unknown"
	}
	return lang.ProfileFor(result.Language), info, nil
}

type errUnknownLanguage string

func (e errUnknownLanguage) Error() string {
	return "unknown language override: " + string(e)
}
