// ABOUTME: End-to-end fixtures wiring the full server stack over HTTP
// ABOUTME: Fake remote directory plus the real mux, middleware, and services

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/userportal/backend/config"
	"github.com/userportal/backend/directory"
	"github.com/userportal/backend/guard"
	"github.com/userportal/backend/handlers"
	"github.com/userportal/backend/middleware"
	"github.com/userportal/backend/models"
	"github.com/userportal/backend/session"
	"github.com/userportal/backend/storage"
)

// remoteDirectory fakes the keyed-collection user API.
type remoteDirectory struct {
	mu      sync.Mutex
	records map[string]*models.User
	nextKey int

	server *httptest.Server
}

func newRemoteDirectory(t *testing.T, users ...models.User) *remoteDirectory {
	t.Helper()

	f := &remoteDirectory{records: make(map[string]*models.User)}
	for i := range users {
		f.nextKey++
		stored := users[i]
		stored.Key = ""
		f.records[fmt.Sprintf("-Key%03d", f.nextKey)] = &stored
	}

	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *remoteDirectory) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && key == "":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(f.records)

	case r.Method == http.MethodPost && key == "":
		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		f.nextKey++
		name := fmt.Sprintf("-Key%03d", f.nextKey)
		user.Key = ""
		f.records[name] = &user
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

// allowedOrigin is the cross-origin SPA host the fixture's allow-list admits.
const allowedOrigin = "http://portal.example.com"

// stack is the full backend assembled the way main wires it, minus rate
// limiting so tests are not pacing-sensitive.
type stack struct {
	server *httptest.Server
	store  storage.Store
	sess   *session.Service
	remote *remoteDirectory
}

func newStack(t *testing.T, store storage.Store, remote *remoteDirectory, window time.Duration) *stack {
	t.Helper()

	cfg := &config.Config{
		Port:               "0",
		AccessRoute:        "/access",
		SessionTTL:         int(window.Seconds()),
		SessionFile:        "unused",
		CORSAllowedOrigins: []string{allowedOrigin},
	}

	dir := directory.NewCache(directory.NewClient(remote.server.URL))
	sess := session.NewService(dir, store, window)
	g := guard.New(cfg.AccessRoute)
	h := handlers.NewHandler(cfg, dir, sess)

	mux := http.NewServeMux()
	for _, rt := range h.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Path, middleware.Chain(rt.Handler,
			middleware.LogRequest,
			middleware.Guard(g, sess.CurrentUser, rt.Roles),
		))
	}

	// Same shape as main: CORS outside the mux so preflights are answered
	// before method-pattern dispatch.
	server := httptest.NewServer(middleware.CORS(cfg.CORSAllowedOrigins)(mux.ServeHTTP))
	t.Cleanup(server.Close)

	return &stack{server: server, store: store, sess: sess, remote: remote}
}

func (s *stack) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	return s.do(t, http.MethodGet, path, nil)
}

func (s *stack) post(t *testing.T, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	return s.do(t, http.MethodPost, path, payload)
}

func (s *stack) do(t *testing.T, method, path string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = &buf
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

// jsonRequestWithOrigin builds a cross-origin JSON request the caller
// executes itself, so response headers stay inspectable.
func (s *stack) jsonRequestWithOrigin(t *testing.T, method, path string, payload interface{}, origin string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		t.Fatalf("encode payload: %v", err)
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", origin)
	return req
}

func decode(t *testing.T, data []byte, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
}

func portalUsers() []models.User {
	return []models.User{
		{ID: 1, Username: "ada", Email: "ada@example.com", Password: "hyperion", Role: models.RoleAdmin},
		{ID: 2, Username: "ben", Email: "ben@example.com", Password: "orchard", Role: models.RoleEditor},
		{ID: 7, Username: "gia", Email: "gia@example.com", Password: "terrace", Role: models.RoleGuest},
	}
}
