package recording

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/medscribe/medscribe/pkg/consult"
)

// ConsultationModel represents the database row for a completed
// consultation. The generated notes are stored as JSON text columns, the
// same flat shape the record travels in on the wire.
type ConsultationModel struct {
	ID        string    `gorm:"column:id;primaryKey;size:64"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	PatientName string    `gorm:"column:patient_name;size:255"`
	DoctorName  string    `gorm:"column:doctor_name;size:255"`
	Date        time.Time `gorm:"column:date"`
	Duration    int       `gorm:"column:duration"`

	Transcription  string `gorm:"column:transcription;type:text"`
	DoctorNotes    string `gorm:"column:doctor_notes;type:text"`
	PatientSummary string `gorm:"column:patient_summary;type:text"`

	Status   string `gorm:"column:status;size:32"`
	Fallback bool   `gorm:"column:fallback"`
}

// TableName sets the table name for GORM
func (ConsultationModel) TableName() string {
	return "consultations"
}

// toModel converts a domain session into its database row.
func toModel(session *consult.Session) (*ConsultationModel, error) {
	model := &ConsultationModel{
		ID:            session.ID,
		PatientName:   session.PatientName,
		DoctorName:    session.DoctorName,
		Date:          session.Date,
		Duration:      session.Duration,
		Transcription: session.Transcription,
		Status:        string(session.Status),
		Fallback:      session.Fallback,
	}

	if session.ClinicalNotes != nil {
		b, err := json.Marshal(session.ClinicalNotes)
		if err != nil {
			return nil, fmt.Errorf("encoding doctor notes: %w", err)
		}
		model.DoctorNotes = string(b)
	}

	if session.PatientSummary != nil {
		b, err := json.Marshal(session.PatientSummary)
		if err != nil {
			return nil, fmt.Errorf("encoding patient summary: %w", err)
		}
		model.PatientSummary = string(b)
	}

	return model, nil
}

// toSession converts a database row back into a domain session.
func toSession(model *ConsultationModel) (*consult.Session, error) {
	session := &consult.Session{
		ID:            model.ID,
		PatientName:   model.PatientName,
		DoctorName:    model.DoctorName,
		Date:          model.Date,
		Duration:      model.Duration,
		Transcription: model.Transcription,
		Status:        consult.Status(model.Status),
		Fallback:      model.Fallback,
	}

	if model.DoctorNotes != "" {
		var notes consult.ClinicalNotes
		if err := json.Unmarshal([]byte(model.DoctorNotes), &notes); err != nil {
			return nil, fmt.Errorf("decoding doctor notes for %s: %w", model.ID, err)
		}
		session.ClinicalNotes = &notes
	}

	if model.PatientSummary != "" {
		var summary consult.PatientSummary
		if err := json.Unmarshal([]byte(model.PatientSummary), &summary); err != nil {
			return nil, fmt.Errorf("decoding patient summary for %s: %w", model.ID, err)
		}
		session.PatientSummary = &summary
	}

	return session, nil
}
