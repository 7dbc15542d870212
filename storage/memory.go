// ABOUTME: In-memory session slot for tests
// ABOUTME: Substitutes the file-backed slot to keep tests hermetic

package storage

import (
	"sync"

	"github.com/userportal/backend/models"
)

// MemStore holds the session slot in memory. LoadErr, when set, is returned
// by Load to simulate a malformed slot.
type MemStore struct {
	mu      sync.Mutex
	session *models.StoredSession

	LoadErr error
}

// NewMemStore creates an empty in-memory session slot.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Load() (*models.StoredSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.session == nil {
		return nil, nil
	}
	copied := *m.session
	return &copied, nil
}

func (m *MemStore) Save(session *models.StoredSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	m.session = &copied
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	m.LoadErr = nil
	return nil
}
