package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
	"github.com/medscribe/medscribe/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTranscriber records what it was fed.
type stubTranscriber struct {
	gotFilename string
	gotAudio    []byte
	result      *consult.TranscriptionResult
	err         error
}

func (s *stubTranscriber) Transcribe(_ context.Context, audio io.Reader, filename string) (*consult.TranscriptionResult, error) {
	s.gotFilename = filename
	s.gotAudio, _ = io.ReadAll(audio)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func setupRouter(transcriber Transcriber) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), transcriber)
	return engine
}

func multipartAudio(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestPostTranscribe(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		stub := &stubTranscriber{
			result: &consult.TranscriptionResult{
				Text: "hello doctor",
				Segments: []consult.Segment{
					{Start: 0, End: 1.5, Text: "hello doctor"},
				},
			},
		}
		router := setupRouter(stub)

		body, contentType := multipartAudio(t, "audio", "recording.wav", []byte("wav-bytes"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "recording.wav", stub.gotFilename)
		assert.Equal(t, []byte("wav-bytes"), stub.gotAudio)

		var resp sdk.TranscribeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "hello doctor", resp.Transcription)
		require.Len(t, resp.Segments, 1)
	})

	t.Run("no audio file", func(t *testing.T) {
		router := setupRouter(&stubTranscriber{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transcribe", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "No audio file provided", resp.Error)
	})

	t.Run("wrong field name", func(t *testing.T) {
		router := setupRouter(&stubTranscriber{})

		body, contentType := multipartAudio(t, "file", "recording.wav", []byte("x"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("transcriber failure", func(t *testing.T) {
		router := setupRouter(&stubTranscriber{err: fmt.Errorf("whisper down")})

		body, contentType := multipartAudio(t, "audio", "recording.wav", []byte("x"))
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/transcribe", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp sdk.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Transcription failed", resp.Error)
	})
}

func TestWhisperService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		fmt.Fprint(w, `{"text":"transcribed text","segments":[{"start":0,"end":2.0,"text":"transcribed text"}]}`)
	}))
	defer server.Close()

	cfg := utils.NewConfig(map[string]string{"WHISPER_BASE_URL": server.URL})
	service := NewWhisperService(cfg)

	result, err := service.Transcribe(context.Background(), bytes.NewReader([]byte("audio")), "a.wav")
	require.NoError(t, err)
	assert.Equal(t, "transcribed text", result.Text)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, 2.0, result.Segments[0].End)
}

func TestWhisperServiceRemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"model not loaded"}`)
	}))
	defer server.Close()

	cfg := utils.NewConfig(map[string]string{"WHISPER_BASE_URL": server.URL})
	service := NewWhisperService(cfg)

	_, err := service.Transcribe(context.Background(), bytes.NewReader([]byte("audio")), "a.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
