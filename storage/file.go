// ABOUTME: File-backed session slot, the local-storage equivalent
// ABOUTME: Persists one JSON record per browser profile

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/userportal/backend/models"
)

// FileStore persists the session slot as a single JSON file. Concurrent
// writers sharing the same profile file are last-writer-wins, the same
// guarantee browser local storage gives across tabs.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed session slot at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*models.StoredSession, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session slot: %w", err)
	}

	var session models.StoredSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("malformed session slot: %w", err)
	}

	return &session, nil
}

func (f *FileStore) Save(session *models.StoredSession) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session slot: %w", err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session slot: %w", err)
	}
	return nil
}
