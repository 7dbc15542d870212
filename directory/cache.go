// ABOUTME: In-memory mirror of the remote user directory
// ABOUTME: Lazy wholesale-replace cache with write-then-refresh mutations

package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/userportal/backend/models"
)

// ErrNotFound is returned when a mutation targets a user id that is not in
// the cached directory.
var ErrNotFound = errors.New("user not found in directory")

// Cache mirrors the remote user list in memory. The list is populated
// lazily on first lookup and replaced wholesale on every refresh; a failed
// refresh leaves the previous list untouched. Every mutation performs the
// remote write and then refreshes, trading a brief stale window for not
// having to reconcile partial local edits.
type Cache struct {
	client *Client
	group  singleflight.Group

	mu    sync.RWMutex
	users []models.User
}

// NewCache creates a directory cache over the given client.
func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

// Refresh fetches the full user list and replaces the cache. Concurrent
// callers are coalesced into a single in-flight fetch. On failure the
// previous list is kept and the error is logged and returned.
func (c *Cache) Refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		users, err := c.client.FetchAll(ctx)
		if err != nil {
			slog.Error("Directory refresh failed, keeping cached list", "error", err)
			return nil, err
		}

		c.mu.Lock()
		c.users = users
		c.mu.Unlock()

		slog.Debug("Directory refreshed", "count", len(users))
		return nil, nil
	})
	return err
}

// EnsureLoaded refreshes the cache only when it is empty. The directory is
// populated at most once per cold start and otherwise only after writes.
func (c *Cache) EnsureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := len(c.users) > 0
	c.mu.RUnlock()

	if loaded {
		return nil
	}
	return c.Refresh(ctx)
}

// FindByCredentials returns the user matching the email/password pair
// exactly (case-sensitive), loading the directory first if needed. A miss
// is a normal nil result, not a fault.
func (c *Cache) FindByCredentials(ctx context.Context, email, password string) *models.User {
	if err := c.EnsureLoaded(ctx); err != nil {
		// Already logged at the fetch boundary; an empty cache simply
		// yields no match.
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.users {
		if c.users[i].Email == email && c.users[i].Password == password {
			user := c.users[i]
			return &user
		}
	}
	return nil
}

// FindByID returns the cached user with the given id. Pure lookup: no
// implicit fetch.
func (c *Cache) FindByID(id int64) *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.users {
		if c.users[i].ID == id {
			user := c.users[i]
			return &user
		}
	}
	return nil
}

// Users returns a snapshot of the cached list.
func (c *Cache) Users() []models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]models.User, len(c.users))
	copy(snapshot, c.users)
	return snapshot
}

// NextID returns one past the highest cached user id. The id is minted from
// the cache, not reserved remotely, so two writers racing between NextID and
// the write can be handed the same value.
func (c *Cache) NextID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var max int64
	for i := range c.users {
		if c.users[i].ID > max {
			max = c.users[i].ID
		}
	}
	return max + 1
}

// Add creates the user remotely and refreshes the cache.
func (c *Cache) Add(ctx context.Context, user models.User) error {
	if err := c.client.Create(ctx, user); err != nil {
		slog.Error("Directory add failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("failed to add user: %w", err)
	}

	// The write landed; a failed refresh only delays visibility.
	c.Refresh(ctx)
	return nil
}

// Replace PUTs the full record for user.ID and refreshes the cache.
// Returns ErrNotFound when the id is not in the cached directory.
func (c *Cache) Replace(ctx context.Context, user models.User) error {
	key, err := c.resolveKey(user.ID)
	if err != nil {
		return err
	}

	if err := c.client.Replace(ctx, key, user); err != nil {
		slog.Error("Directory replace failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("failed to replace user %d: %w", user.ID, err)
	}

	c.Refresh(ctx)
	return nil
}

// Patch PATCHes the record for user.ID and refreshes the cache.
// Returns ErrNotFound when the id is not in the cached directory.
func (c *Cache) Patch(ctx context.Context, user models.User) error {
	key, err := c.resolveKey(user.ID)
	if err != nil {
		return err
	}

	if err := c.client.Patch(ctx, key, user); err != nil {
		slog.Error("Directory patch failed", "user_id", user.ID, "error", err)
		return fmt.Errorf("failed to patch user %d: %w", user.ID, err)
	}

	c.Refresh(ctx)
	return nil
}

// Delete removes the record for the given id and refreshes the cache.
// Returns ErrNotFound when the id is not in the cached directory.
func (c *Cache) Delete(ctx context.Context, id int64) error {
	key, err := c.resolveKey(id)
	if err != nil {
		return err
	}

	if err := c.client.Delete(ctx, key); err != nil {
		slog.Error("Directory delete failed", "user_id", id, "error", err)
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}

	c.Refresh(ctx)
	return nil
}

// resolveKey maps a user id to its storage key via the cache.
func (c *Cache) resolveKey(id int64) (string, error) {
	user := c.FindByID(id)
	if user == nil || user.Key == "" {
		slog.Error("Directory mutation target not found", "user_id", id)
		return "", ErrNotFound
	}
	return user.Key, nil
}
