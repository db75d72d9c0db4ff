// Package sdk wraps calls to the medscribe relay backend: the health
// probe, the two-stage processing pipeline, and the remote recordings
// store. Connection-level failures surface as consult.ErrUnreachable;
// rejected or malformed responses surface as *consult.RemoteError.
// Timeouts count as RemoteError, not Unreachable.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	"github.com/medscribe/medscribe/pkg/consult"
)

// DefaultTimeout is the shared per-call timeout. Transcription and note
// generation are slow, so it is on the order of minutes.
const DefaultTimeout = 120 * time.Second

// Client wraps calls to the medscribe relay backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the shared request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health probes the relay. Any successful response means reachable; the
// result is advisory and may go stale.
func (c *Client) Health(ctx context.Context) error {
	var out HealthResponse
	return c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out)
}

// Transcribe sends the captured audio as a multipart upload and returns
// the transcription with its time-aligned segments.
func (c *Client) Transcribe(ctx context.Context, audio []byte, format string) (*consult.TranscriptionResult, error) {
	const op = "transcribe"

	// Build multipart request
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("audio", "recording."+format)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transcribe", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, remoteFailure(op, resp)
	}

	var out TranscribeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &consult.RemoteError{Op: op, Message: fmt.Sprintf("malformed response: %v", err)}
	}

	// Validate the shape before it travels deeper into the session
	if out.Transcription == "" {
		return nil, &consult.RemoteError{Op: op, Message: "response contained no transcription"}
	}

	return &consult.TranscriptionResult{
		Text:     out.Transcription,
		Segments: out.Segments,
	}, nil
}

// GenerateNotes sends the transcription and returns the generated clinical
// notes and patient summary.
func (c *Client) GenerateNotes(ctx context.Context, transcription string) (*consult.NotesResult, error) {
	const op = "generate-notes"

	var out GenerateNotesResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/generate-notes", GenerateNotesRequest{Transcription: transcription}, &out)
	if err != nil {
		return nil, err
	}

	// A response with every SOAP field empty is a shape mismatch
	notes := out.DoctorNotes
	if notes.Subjective == "" && notes.Objective == "" && notes.Assessment == "" && notes.Plan == "" {
		return nil, &consult.RemoteError{Op: op, Message: "response contained no clinical notes"}
	}

	return &consult.NotesResult{
		DoctorNotes:    out.DoctorNotes,
		PatientSummary: out.PatientSummary,
	}, nil
}

// Recordings fetches every stored consultation record.
func (c *Client) Recordings(ctx context.Context) ([]*consult.Session, error) {
	var out ListRecordingsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/recordings", nil, &out); err != nil {
		return nil, err
	}
	return out.Recordings, nil
}

// Recording fetches one consultation record by ID.
func (c *Client) Recording(ctx context.Context, id string) (*consult.Session, error) {
	var out GetRecordingResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/recordings/"+id, nil, &out); err != nil {
		var remoteErr *consult.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return nil, consult.ErrNotFound
		}
		return nil, err
	}
	return out.Recording, nil
}

// SaveRecording stores a completed consultation record via the relay.
func (c *Client) SaveRecording(ctx context.Context, session *consult.Session) error {
	return c.doJSON(ctx, http.MethodPost, "/api/recordings", session, nil)
}

// DeleteRecording removes a consultation record via the relay.
func (c *Client) DeleteRecording(ctx context.Context, id string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/api/recordings/"+id, nil, nil)
	var remoteErr *consult.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
		return consult.ErrNotFound
	}
	return err
}

// doJSON is a helper to perform JSON requests against the relay
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	op := method + " " + path

	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classify(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return remoteFailure(op, resp)
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	// Decode the response body into the output struct
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &consult.RemoteError{Op: op, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

// classify maps a transport failure onto the error taxonomy: timeouts were
// reachable-but-slow (RemoteError), everything else is Unreachable.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &consult.RemoteError{Op: op, Message: "request timed out"}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &consult.RemoteError{Op: op, Message: "request timed out"}
	}
	return fmt.Errorf("%w: %v", consult.ErrUnreachable, err)
}

// remoteFailure turns a non-success response into a RemoteError carrying
// the remote's status and message.
func remoteFailure(op string, resp *http.Response) error {
	message := resp.Status

	b, err := io.ReadAll(resp.Body)
	if err == nil && len(b) > 0 {
		var errBody ErrorResponse
		if json.Unmarshal(b, &errBody) == nil && errBody.Error != "" {
			message = errBody.Error
		} else {
			message = string(b)
		}
	}

	return &consult.RemoteError{Op: op, StatusCode: resp.StatusCode, Message: message}
}
