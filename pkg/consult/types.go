// Package consult defines the shared domain types for consultation
// recording sessions: the session record, consent data, and the error
// taxonomy used across the capture, processing, and storage layers.
package consult

import "time"

// Status represents the lifecycle state of a consultation record.
// It only moves forward: recording -> processing -> completed.
type Status string

const (
	StatusRecording  Status = "recording"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

// ConsentFlags captures what the patient agreed to before recording.
// RecordingConsent must be true before a session can start. SummaryConsent
// gates generation and storage of the patient-friendly summary.
type ConsentFlags struct {
	RecordingConsent bool `json:"recordingConsent"`
	SummaryConsent   bool `json:"summaryConsent"`
}

// ConsentRecord is the ephemeral consent entry created before a recording
// session. It is keyed by the session ID and consumed exactly once when the
// session starts.
type ConsentRecord struct {
	SessionID   string       `json:"sessionId"`
	PatientName string       `json:"patientName"`
	DoctorName  string       `json:"doctorName"`
	Flags       ConsentFlags `json:"consentFlags"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// ClinicalNotes is the structured SOAP note generated for the clinician.
type ClinicalNotes struct {
	Subjective  string   `json:"subjective"`
	Objective   string   `json:"objective"`
	Assessment  string   `json:"assessment"`
	Plan        string   `json:"plan"`
	Medications []string `json:"medications"`
	FollowUp    string   `json:"followUp"`
}

// PatientSummary is the plain-language summary generated for the patient.
// It is only present on records where the patient consented to it.
type PatientSummary struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"keyPoints"`
	NextSteps   []string `json:"nextSteps"`
	Medications []string `json:"medications"`
}

// Segment is one time-aligned slice of the transcription.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResult is the output of the transcription stage.
type TranscriptionResult struct {
	Text     string    `json:"transcription"`
	Segments []Segment `json:"segments"`
}

// NotesResult is the output of the note-generation stage. PatientSummary is
// nil when the patient did not consent to one.
type NotesResult struct {
	DoctorNotes    ClinicalNotes   `json:"doctorNotes"`
	PatientSummary *PatientSummary `json:"patientSummary,omitempty"`
}

// Session is one consultation's recording-through-summary record. It is
// written to the store once, in full, when processing completes.
//
// Fallback is part of the public contract: when true, Transcription and the
// generated notes are placeholder demo content substituted because the
// processing service was unreachable, not authentic clinical output.
type Session struct {
	ID          string `json:"id"`
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`

	Date     time.Time `json:"date"`
	Duration int       `json:"duration"` // whole seconds of captured audio

	Transcription  string          `json:"transcription"`
	ClinicalNotes  *ClinicalNotes  `json:"doctorNotes,omitempty"`
	PatientSummary *PatientSummary `json:"patientSummary,omitempty"`

	Status   Status `json:"status"`
	Fallback bool   `json:"fallback"`
}
