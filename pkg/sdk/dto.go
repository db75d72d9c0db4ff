package sdk

import "github.com/medscribe/medscribe/pkg/consult"

/** Wire types for the medscribe relay API */

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// TranscribeResponse is the body of POST /api/transcribe
type TranscribeResponse struct {
	Transcription string            `json:"transcription"`
	Segments      []consult.Segment `json:"segments"`
}

// GenerateNotesRequest is the request body for POST /api/generate-notes
type GenerateNotesRequest struct {
	Transcription string `json:"transcription" binding:"required"`
}

// GenerateNotesResponse is the body of POST /api/generate-notes
type GenerateNotesResponse struct {
	DoctorNotes    consult.ClinicalNotes   `json:"doctorNotes"`
	PatientSummary *consult.PatientSummary `json:"patientSummary"`
}

// ListRecordingsResponse is the body of GET /api/recordings
type ListRecordingsResponse struct {
	Status     string             `json:"status"`
	Recordings []*consult.Session `json:"recordings"`
}

// GetRecordingResponse is the body of GET /api/recordings/:id
type GetRecordingResponse struct {
	Status    string           `json:"status"`
	Recording *consult.Session `json:"recording"`
}

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}
