// ABOUTME: Storage port for the persisted session slot
// ABOUTME: One key-value slot per browser profile, behind a small interface

package storage

import "github.com/userportal/backend/models"

// Store is the persisted session slot. Exactly one record is held at a
// time. Load returns (nil, nil) when the slot is empty; a non-nil error
// means the slot exists but cannot be read, and callers are expected to
// self-heal by clearing it.
type Store interface {
	Load() (*models.StoredSession, error)
	Save(session *models.StoredSession) error
	Clear() error
}
