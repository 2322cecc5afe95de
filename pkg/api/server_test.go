package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves canned page text so handler tests do not need real PDF
// bytes.
type stubSource struct {
	text      string
	sample    string
	textErr   error
	sampleErr error
}

func (s *stubSource) RequirementText(data []byte) (string, error) {
	return s.text, s.textErr
}

func (s *stubSource) Sample(data []byte) (string, error) {
	return s.sample, s.sampleErr
}

const frenchDocument = `3.2.1 Les données d'authentification sensibles ne sont pas conservées après autorisation.
• Examiner les politiques de conservation des données pour confirmer la suppression.
Conseils : consulter le guide de mise en œuvre.
1.2.1 Les règles de filtrage restreignent le trafic entrant et sortant.
• Vérifier la configuration des règles de filtrage du trafic.`

const frenchSample = "SAQ D de PCI DSS Notes d'Applicabilité Conseils Examiner Interroger Vérifier Octobre"

func newTestServer(t *testing.T, source TextSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(r, source)
	return r
}

func uploadRequest(t *testing.T, filename string, extra map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.7 stub"))
		require.NoError(t, err)
	}
	for key, value := range extra {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	r := newTestServer(t, &stubSource{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestExtractHappyPath(t *testing.T) {
	r := newTestServer(t, &stubSource{text: frenchDocument, sample: frenchSample})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "saq-d.pdf", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "fr", resp.Language.Code)
	assert.True(t, resp.Language.Detected)

	require.Len(t, resp.Requirements, 2)
	// Numerically sorted: 1.2.1 before 3.2.1.
	assert.Equal(t, "1.2.1", resp.Requirements[0].Number)
	assert.Equal(t, "3.2.1", resp.Requirements[1].Number)

	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.WithTests)
	assert.Equal(t, 1, resp.Summary.WithGuidance)
	assert.Equal(t, 2, resp.Summary.TotalTests)
}

func TestExtractLanguageOverride(t *testing.T) {
	// The sample would detect French, but the override forces English and
	// skips detection entirely.
	r := newTestServer(t, &stubSource{
		text:      "3.2.1 Sensitive authentication data is not retained after authorization.\n• Examine data retention policies to confirm secure deletion.",
		sample:    frenchSample,
		sampleErr: errors.New("sample must not be called with an override"),
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "saq-d.pdf", map[string]string{"lang": "en"}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Language.Code)
	assert.False(t, resp.Language.Detected)
	require.Len(t, resp.Requirements, 1)
	assert.Len(t, resp.Requirements[0].Tests, 1)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name       string
		source     *stubSource
		filename   string
		extra      map[string]string
		wantStatus int
		wantError  string
	}{
		{
			name:       "no file",
			source:     &stubSource{},
			filename:   "",
			wantStatus: http.StatusBadRequest,
			wantError:  "no file provided",
		},
		{
			name:       "not a pdf",
			source:     &stubSource{},
			filename:   "document.txt",
			wantStatus: http.StatusBadRequest,
			wantError:  "only PDF files",
		},
		{
			name:       "no requirements",
			source:     &stubSource{text: "Aucune exigence numérotée ici.", sample: frenchSample},
			filename:   "empty.pdf",
			wantStatus: http.StatusBadRequest,
			wantError:  "no requirements found",
		},
		{
			name:       "unreadable document",
			source:     &stubSource{sample: frenchSample, textErr: errors.New("opening pdf: bad xref")},
			filename:   "broken.pdf",
			wantStatus: http.StatusBadRequest,
			wantError:  "bad xref",
		},
		{
			name:       "bad language override",
			source:     &stubSource{},
			filename:   "saq-d.pdf",
			extra:      map[string]string{"lang": "martian"},
			wantStatus: http.StatusBadRequest,
			wantError:  "unknown language override",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestServer(t, tt.source)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, uploadRequest(t, tt.filename, tt.extra))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantError)
		})
	}
}
