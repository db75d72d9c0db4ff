package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	gotTranscription string
	result           *consult.NotesResult
	err              error
}

func (s *stubGenerator) Generate(_ context.Context, transcription string) (*consult.NotesResult, error) {
	s.gotTranscription = transcription
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupRouter(generator Generator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), generator)
	return engine
}

func TestPostGenerateNotes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubGenerator{
			result: &consult.NotesResult{
				DoctorNotes: consult.ClinicalNotes{
					Subjective: "headache for three days",
					Assessment: "tension headache",
				},
				PatientSummary: &consult.PatientSummary{
					Summary: "We talked about your headaches",
				},
			},
		}
		router := setupRouter(stub)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate-notes",
			bytes.NewReader([]byte(`{"transcription":"patient reports headache"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "patient reports headache", stub.gotTranscription)

		var resp sdk.GenerateNotesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "tension headache", resp.DoctorNotes.Assessment)
		require.NotNil(t, resp.PatientSummary)
		assert.Equal(t, "We talked about your headaches", resp.PatientSummary.Summary)
	})

	t.Run("missing transcription", func(t *testing.T) {
		router := setupRouter(&stubGenerator{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate-notes",
			bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "No transcription provided", resp.Error)
	})

	t.Run("generator failure", func(t *testing.T) {
		router := setupRouter(&stubGenerator{err: fmt.Errorf("ollama down")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate-notes",
			bytes.NewReader([]byte(`{"transcription":"x"}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to generate notes", resp.Error)
	})
}

func TestParseGenerated(t *testing.T) {
	t.Run("valid JSON passes through", func(t *testing.T) {
		doctorRaw := `{"subjective":"cough","objective":"clear lungs","assessment":"viral","plan":"rest","medications":["paracetamol"],"followUp":"one week"}`
		patientRaw := `{"summary":"You have a cold","keyPoints":["rest"],"nextSteps":["come back if worse"],"medications":["paracetamol"]}`

		notes, summary := parseGenerated(doctorRaw, patientRaw)
		assert.Equal(t, "viral", notes.Assessment)
		assert.Equal(t, []string{"paracetamol"}, notes.Medications)
		require.NotNil(t, summary)
		assert.Equal(t, "You have a cold", summary.Summary)
	})

	t.Run("prose around JSON is stripped", func(t *testing.T) {
		doctorRaw := "Here is the note:\n{\"subjective\":\"cough\",\"plan\":\"rest\"}\nLet me know if you need anything else!"
		notes, _ := parseGenerated(doctorRaw, `{"summary":"ok"}`)
		assert.Equal(t, "cough", notes.Subjective)
		assert.Equal(t, "rest", notes.Plan)
	})

	t.Run("garbage falls back to placeholders", func(t *testing.T) {
		notes, summary := parseGenerated("I cannot produce JSON today", "neither can I")
		assert.Equal(t, "Clinical assessment pending review", notes.Assessment)
		require.NotNil(t, summary)
		assert.Equal(t, []string{"Consultation completed"}, summary.KeyPoints)
	})
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`prefix {"a":1} suffix`))
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
	assert.Equal(t, "no braces here", extractJSON("no braces here"))
	assert.Equal(t, "} backwards {", extractJSON("} backwards {"))
}

func TestLoadPrompts(t *testing.T) {
	t.Run("partial override keeps other default", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yml")
		require.NoError(t, os.WriteFile(path, []byte("doctor: \"Summarize as SOAP: %s\"\n"), 0644))

		prompts, err := LoadPrompts(path)
		require.NoError(t, err)
		assert.Equal(t, "Summarize as SOAP: %s", prompts.Doctor)
		assert.Equal(t, defaultPatientPrompt, prompts.Patient)
	})

	t.Run("missing file returns defaults and an error", func(t *testing.T) {
		prompts, err := LoadPrompts(filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Equal(t, defaultDoctorPrompt, prompts.Doctor)
	})

	t.Run("bad yaml returns defaults and an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yml")
		require.NoError(t, os.WriteFile(path, []byte(":\t not yaml"), 0644))

		prompts, err := LoadPrompts(path)
		require.Error(t, err)
		assert.Equal(t, defaultDoctorPrompt, prompts.Doctor)
	})
}
