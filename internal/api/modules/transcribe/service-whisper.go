package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/utils"
)

// WhisperService calls a Whisper-compatible transcription server over its
// OpenAI-style /v1/audio/transcriptions endpoint.
type WhisperService struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewWhisperService(cfg *utils.Config) *WhisperService {
	timeout := time.Duration(cfg.GetIntWithDefault("WHISPER_TIMEOUT_SECONDS", 300)) * time.Second

	return &WhisperService{
		baseURL:    cfg.GetWithDefault("WHISPER_BASE_URL", "http://localhost:9000"),
		model:      cfg.GetWithDefault("WHISPER_MODEL", "whisper-1"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// whisperResponse matches the verbose_json transcription response.
type whisperResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio and returns the transcription with segments.
func (s *WhisperService) Transcribe(ctx context.Context, audio io.Reader, filename string) (*consult.TranscriptionResult, error) {
	// Build multipart request
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("model", s.model); err != nil {
		return nil, err
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, err
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	// Make request
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/audio/transcriptions", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling whisper service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading whisper response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whisper service error (HTTP %d): %s", resp.StatusCode, string(respBody))
	}

	// Parse response
	var apiResp whisperResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing whisper response: %w", err)
	}

	result := &consult.TranscriptionResult{Text: apiResp.Text}
	for _, seg := range apiResp.Segments {
		result.Segments = append(result.Segments, consult.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	return result, nil
}
