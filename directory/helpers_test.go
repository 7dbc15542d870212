// ABOUTME: Fake remote directory server for directory tests
// ABOUTME: Serves the keyed-collection wire format over httptest

package directory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/userportal/backend/models"
)

// fakeDirectory is an in-memory stand-in for the remote user service.
type fakeDirectory struct {
	mu         sync.Mutex
	records    map[string]*models.User // nil values simulate deleted-but-present entries
	nextKey    int
	fetchCount int
	failFetch  bool
	fetchDelay time.Duration

	server *httptest.Server
}

func newFakeDirectory(t *testing.T, users ...models.User) *fakeDirectory {
	t.Helper()

	f := &fakeDirectory{records: make(map[string]*models.User)}
	for i := range users {
		f.put(users[i])
	}

	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDirectory) put(user models.User) string {
	f.nextKey++
	key := fmt.Sprintf("-Key%03d", f.nextKey)
	stored := user
	stored.Key = ""
	f.records[key] = &stored
	return key
}

func (f *fakeDirectory) url() string {
	return f.server.URL
}

func (f *fakeDirectory) fetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCount
}

func (f *fakeDirectory) handle(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")

	// Set before the server is used; lets coalescing tests keep a fetch in flight.
	if r.Method == http.MethodGet && key == "" && f.fetchDelay > 0 {
		time.Sleep(f.fetchDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && key == "":
		f.fetchCount++
		if f.failFetch {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.records)

	case r.Method == http.MethodPost && key == "":
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		name := f.put(user)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"name": name})

	case (r.Method == http.MethodPut || r.Method == http.MethodPatch) && key != "":
		if _, ok := f.records[key]; !ok {
			http.Error(w, "no such key", http.StatusNotFound)
			return
		}
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		user.Key = ""
		f.records[key] = &user
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodDelete && key != "":
		delete(f.records, key)
		w.WriteHeader(http.StatusOK)

	default:
		http.Error(w, "unexpected request", http.StatusBadRequest)
	}
}

func testUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "ada", Email: "ada@example.com", Password: "hyperion", Role: models.RoleAdmin},
		{ID: 2, Username: "ben", Email: "ben@example.com", Password: "orchard", Role: models.RoleEditor},
		{ID: 7, Username: "gia", Email: "gia@example.com", Password: "terrace", Role: models.RoleGuest},
	}
}
