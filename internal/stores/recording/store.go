// Package recording persists completed consultation records, keyed by
// session ID. Last writer wins on collision; at most one session ever
// writes a given ID, so no further arbitration is needed.
package recording

import (
	"context"

	"github.com/medscribe/medscribe/pkg/consult"
)

// Store is the storage contract for completed consultation sessions.
type Store interface {
	// Put appends or overwrites a record by its ID.
	Put(ctx context.Context, session *consult.Session) error

	// GetAll returns every stored record.
	GetAll(ctx context.Context) ([]*consult.Session, error)

	// GetByID returns the record with the given ID, or
	// consult.ErrNotFound.
	GetByID(ctx context.Context, id string) (*consult.Session, error)

	// Delete removes a record by ID, or returns consult.ErrNotFound.
	Delete(ctx context.Context, id string) error
}
