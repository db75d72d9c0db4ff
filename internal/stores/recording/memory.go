package recording

import (
	"context"
	"fmt"
	"sync"

	"github.com/medscribe/medscribe/pkg/consult"
)

// InMemoryStore provides an in-memory implementation of Store for tests and
// for running the demo without a database.
type InMemoryStore struct {
	sessions map[string]*consult.Session
	order    []string
	mutex    sync.RWMutex
}

// NewInMemoryStore creates a new in-memory recording store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*consult.Session),
	}
}

// Put appends or overwrites a record by its ID
func (s *InMemoryStore) Put(_ context.Context, session *consult.Session) error {
	if session.ID == "" {
		return fmt.Errorf("session id cannot be empty")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[session.ID]; !exists {
		s.order = append(s.order, session.ID)
	}

	// Store a copy to avoid shared references
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

// GetAll returns every stored record in insertion order
func (s *InMemoryStore) GetAll(_ context.Context) ([]*consult.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sessions := make([]*consult.Session, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.sessions[id]
		sessions = append(sessions, &copied)
	}
	return sessions, nil
}

// GetByID returns the record with the given ID
func (s *InMemoryStore) GetByID(_ context.Context, id string) (*consult.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, consult.ErrNotFound
	}

	copied := *session
	return &copied, nil
}

// Delete removes a record by ID
func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return consult.ErrNotFound
	}

	delete(s.sessions, id)
	for i, stored := range s.order {
		if stored == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
