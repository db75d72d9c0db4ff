// Package consent holds the ephemeral pre-recording consent entries. Each
// entry is keyed by session ID and consumed exactly once when the recording
// session starts; it is never read again afterward.
package consent

import (
	"fmt"
	"sync"
	"time"

	"github.com/medscribe/medscribe/pkg/consult"
)

// Store keeps in-flight consent records in memory until a session consumes
// them.
type Store struct {
	records map[string]*consult.ConsentRecord
	mutex   sync.Mutex

	now func() time.Time
}

// NewStore creates a new consent store
func NewStore() *Store {
	return &Store{
		records: make(map[string]*consult.ConsentRecord),
		now:     time.Now,
	}
}

// Put registers a consent record for a session. Recording consent is
// mandatory; a record without it is rejected before it can gate a session.
func (s *Store) Put(record *consult.ConsentRecord) error {
	if record.SessionID == "" {
		return fmt.Errorf("session id cannot be empty")
	}
	if !record.Flags.RecordingConsent {
		return fmt.Errorf("recording consent is required")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	copied := *record
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = s.now()
	}
	s.records[record.SessionID] = &copied
	return nil
}

// Consume removes and returns the consent record for a session. Missing
// records return consult.ErrConsentRequired so the caller can redirect to
// the consent step.
func (s *Store) Consume(sessionID string) (*consult.ConsentRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record, exists := s.records[sessionID]
	if !exists {
		return nil, consult.ErrConsentRequired
	}

	delete(s.records, sessionID)
	return record, nil
}

// Sweep removes unconsumed entries older than maxAge and returns how many
// were purged. Abandoned consents (user navigated away before recording)
// would otherwise accumulate forever.
func (s *Store) Sweep(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := s.now().Add(-maxAge)
	purged := 0
	for id, record := range s.records {
		if record.CreatedAt.Before(cutoff) {
			delete(s.records, id)
			purged++
		}
	}
	return purged
}
