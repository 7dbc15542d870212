// ABOUTME: HTTP client for the remote user directory service
// ABOUTME: Handles the keyed-collection wire format and CRUD requests

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/userportal/backend/models"
)

// Client talks JSON-over-HTTP to the remote user directory. The collection
// endpoint returns a mapping from server-generated string keys to user
// records; the key is the record's storage handle, distinct from the
// numeric user id.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a directory client for the given collection base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchAll retrieves every user record. Each record is assigned its storage
// key from the collection mapping; entries the server returns as null are
// skipped. The result is sorted by id so callers see a deterministic order.
func (c *Client) FetchAll(ctx context.Context) ([]models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("directory fetch failed (status %d): %s", resp.StatusCode, string(body))
	}

	var keyed map[string]*models.User
	if err := json.NewDecoder(resp.Body).Decode(&keyed); err != nil {
		return nil, fmt.Errorf("failed to parse directory response: %w", err)
	}

	users := make([]models.User, 0, len(keyed))
	for key, user := range keyed {
		if user == nil {
			continue
		}
		user.Key = key
		users = append(users, *user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Create POSTs a new user to the collection. The server assigns the storage
// key, so any key on the record is dropped before sending.
func (c *Client) Create(ctx context.Context, user models.User) error {
	user.Key = ""
	return c.write(ctx, http.MethodPost, c.baseURL, user)
}

// Replace PUTs a full user record at its storage key.
func (c *Client) Replace(ctx context.Context, key string, user models.User) error {
	return c.write(ctx, http.MethodPut, c.baseURL+"/"+key, user)
}

// Patch PATCHes a user record at its storage key.
func (c *Client) Patch(ctx context.Context, key string, user models.User) error {
	return c.write(ctx, http.MethodPatch, c.baseURL+"/"+key, user)
}

// Delete removes the record at the given storage key.
func (c *Client) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+key, nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory delete failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("directory delete failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) write(ctx context.Context, method, url string, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("directory %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("directory %s failed (status %d): %s", method, resp.StatusCode, string(body))
	}

	return nil
}
