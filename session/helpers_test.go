// ABOUTME: Test fakes for the session service
// ABOUTME: Provides an in-memory directory and a counting notifier

package session

import (
	"context"
	"sync"

	"github.com/userportal/backend/models"
)

// fakeDirectory implements Directory over a fixed user list.
type fakeDirectory struct {
	mu      sync.Mutex
	users   []models.User
	loadErr error
	loads   int
}

func (f *fakeDirectory) EnsureLoaded(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.loadErr
}

func (f *fakeDirectory) FindByCredentials(ctx context.Context, email, password string) *models.User {
	if err := f.EnsureLoaded(ctx); err != nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email && f.users[i].Password == password {
			user := f.users[i]
			return &user
		}
	}
	return nil
}

func (f *fakeDirectory) FindByID(id int64) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user
		}
	}
	return nil
}

// countingNotifier records logout notices; safe for the timer goroutine.
type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
}

func (n *countingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func directoryWith(users ...models.User) *fakeDirectory {
	return &fakeDirectory{users: users}
}

func sampleUsers() []models.User {
	return []models.User{
		{ID: 1, Key: "-KeyA", Username: "ada", Email: "ada@example.com", Password: "hyperion", Role: models.RoleAdmin},
		{ID: 7, Key: "-KeyG", Username: "gia", Email: "gia@example.com", Password: "terrace", Role: models.RoleGuest},
	}
}
