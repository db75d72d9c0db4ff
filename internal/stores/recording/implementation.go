package recording

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/medscribe/medscribe/pkg/consult"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DBStore handles storage and retrieval of consultation records using a
// relational database through GORM.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore opens a database connection and migrates the consultations
// table. A DSN containing "@tcp(" is treated as MySQL; anything else is
// treated as a SQLite file path.
func NewDBStore(dsn string) (*DBStore, error) {
	var dialector gorm.Dialector
	if strings.Contains(dsn, "@tcp(") {
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &DBStore{db: db}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

// migrate creates or updates the required database tables
func (s *DBStore) migrate() error {
	return s.db.AutoMigrate(&ConsultationModel{})
}

// Put appends or overwrites a record by its ID
func (s *DBStore) Put(ctx context.Context, session *consult.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	model, err := toModel(session)
	if err != nil {
		return err
	}

	// Check if the record already exists; last writer wins
	var existing ConsultationModel
	result := s.db.WithContext(ctx).Where("id = ?", session.ID).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
				return fmt.Errorf("failed to create record: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to check existing record: %w", result.Error)
	}

	if err := s.db.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"patient_name":    model.PatientName,
		"doctor_name":     model.DoctorName,
		"date":            model.Date,
		"duration":        model.Duration,
		"transcription":   model.Transcription,
		"doctor_notes":    model.DoctorNotes,
		"patient_summary": model.PatientSummary,
		"status":          model.Status,
		"fallback":        model.Fallback,
	}).Error; err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}

	return nil
}

// GetAll returns every stored record
func (s *DBStore) GetAll(ctx context.Context) ([]*consult.Session, error) {
	var models []ConsultationModel
	if err := s.db.WithContext(ctx).Order("created_at").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	sessions := make([]*consult.Session, 0, len(models))
	for i := range models {
		session, err := toSession(&models[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// GetByID returns the record with the given ID
func (s *DBStore) GetByID(ctx context.Context, id string) (*consult.Session, error) {
	var model ConsultationModel
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, consult.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", result.Error)
	}

	return toSession(&model)
}

// Delete removes a record by ID
func (s *DBStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&ConsultationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return consult.ErrNotFound
	}
	return nil
}

// Close closes the database connection
func (s *DBStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
