package sdk

import (
	"context"

	"github.com/medscribe/medscribe/pkg/consult"
)

// RemoteStore backs the session store with the relay's /api/recordings
// endpoints, for running the recorder against a remote backend instead of
// a local database.
type RemoteStore struct {
	client *Client
}

func NewRemoteStore(client *Client) *RemoteStore {
	return &RemoteStore{client: client}
}

// Put appends or overwrites a record by its ID
func (s *RemoteStore) Put(ctx context.Context, session *consult.Session) error {
	return s.client.SaveRecording(ctx, session)
}

// GetAll returns every stored record
func (s *RemoteStore) GetAll(ctx context.Context) ([]*consult.Session, error) {
	return s.client.Recordings(ctx)
}

// GetByID returns the record with the given ID
func (s *RemoteStore) GetByID(ctx context.Context, id string) (*consult.Session, error) {
	return s.client.Recording(ctx, id)
}

// Delete removes a record by ID
func (s *RemoteStore) Delete(ctx context.Context, id string) error {
	return s.client.DeleteRecording(ctx, id)
}
