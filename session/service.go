// ABOUTME: Session service owning the logged-in identity for one profile
// ABOUTME: Handles boot restoration, login, logout, and inactivity expiry

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/userportal/backend/models"
	"github.com/userportal/backend/storage"
)

// Directory is the user-directory lookup surface the session core needs.
// FindByCredentials loads the directory lazily itself; FindByID is a pure
// lookup and callers must EnsureLoaded first.
type Directory interface {
	EnsureLoaded(ctx context.Context) error
	FindByCredentials(ctx context.Context, email, password string) *models.User
	FindByID(id int64) *models.User
}

// NotifyFunc delivers a user-facing notice (the toast equivalent).
type NotifyFunc func(message string)

// Service owns the current logged-in identity, the persisted session slot,
// and the inactivity timer. All session-mutating operations serialize on
// one mutex, so a login racing boot restoration resolves deterministically:
// whichever acquires the lock last wins and the other's effect is cleanly
// overwritten.
type Service struct {
	dir    Directory
	store  storage.Store
	window time.Duration
	notify NotifyFunc

	mu          sync.Mutex
	current     *models.User
	initialized bool
	timer       *time.Timer
	timerGen    uint64
}

// NewService creates a session service with the given inactivity window.
func NewService(dir Directory, store storage.Store, window time.Duration) *Service {
	return &Service{
		dir:    dir,
		store:  store,
		window: window,
	}
}

// SetNotifier registers the callback that delivers logout notices to the
// user. Set it before the service is used; notices are dropped while nil.
func (s *Service) SetNotifier(fn NotifyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// Initialize restores a persisted session at boot. It runs once; repeat
// calls are no-ops. A malformed slot is cleared and treated as absent. A
// valid, unexpired record is resolved against the directory and refreshed;
// a stale or unresolvable record runs the logout path. When no prior
// session existed, the service stays anonymous silently; no logout notice
// fires on a clean first visit.
func (s *Service) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	defer func() { s.initialized = true }()

	record, err := s.store.Load()
	if err != nil {
		slog.Warn("Session slot unreadable, clearing", "error", err)
		if err := s.store.Clear(); err != nil {
			slog.Error("Failed to clear session slot", "error", err)
		}
		return
	}
	if record == nil {
		slog.Debug("No persisted session")
		return
	}

	now := time.Now()
	if !now.Before(record.ExpiresAt(s.window)) {
		slog.Info("Persisted session expired", "user_id", record.UserID)
		s.teardownLocked(true)
		return
	}

	// Resolution failure is already logged at the directory boundary; an
	// unresolvable id just tears the session down.
	s.dir.EnsureLoaded(ctx)
	user := s.dir.FindByID(record.UserID)
	if user == nil {
		slog.Warn("Persisted session references unknown user", "user_id", record.UserID)
		s.teardownLocked(true)
		return
	}

	s.authenticateLocked(user, now)
	slog.Info("Session restored", "user_id", user.ID, "username", user.Username)
}

// Login authenticates the email/password pair against the directory. A
// match authenticates the session and returns the user. A mismatch is a
// normal nil result, not an error; any existing session state is
// defensively cleared without a logout notice.
func (s *Service) Login(ctx context.Context, email, password string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.dir.FindByCredentials(ctx, email, password)
	if user == nil {
		slog.Warn("Login failed: no matching credentials", "email", email)
		s.teardownLocked(false)
		return nil
	}

	s.authenticateLocked(user, time.Now())
	slog.Info("Login succeeded", "user_id", user.ID, "username", user.Username)
	return user
}

// Logout tears the session down and emits the user-facing notice. Calling
// it while anonymous is a harmless no-op on the session state.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardownLocked(true)
}

// CurrentUser returns the logged-in identity, or nil while anonymous.
func (s *Service) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Initialized reports whether boot restoration has completed.
func (s *Service) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// authenticateLocked sets the identity, persists a fresh timestamp, and
// (re)starts the inactivity timer. Caller must hold s.mu.
func (s *Service) authenticateLocked(user *models.User, now time.Time) {
	s.current = user

	record := &models.StoredSession{UserID: user.ID, LoginTimestamp: now.UnixMilli()}
	if err := s.store.Save(record); err != nil {
		slog.Error("Failed to persist session", "user_id", user.ID, "error", err)
	}

	s.startTimerLocked()
}

// teardownLocked stops the timer, clears the identity and the persisted
// slot, and optionally emits the logout notice. Caller must hold s.mu.
func (s *Service) teardownLocked(notice bool) {
	s.stopTimerLocked()
	s.current = nil

	if err := s.store.Clear(); err != nil {
		slog.Error("Failed to clear session slot", "error", err)
	}

	if notice {
		slog.Info("Logged out")
		if s.notify != nil {
			s.notify("Logged out.")
		}
	}
}

// startTimerLocked schedules the inactivity expiry, cancelling any pending
// timer first. The generation counter makes a superseded callback a no-op
// even when it already fired and is waiting on the mutex. Caller must hold
// s.mu.
func (s *Service) startTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}

	s.timerGen++
	gen := s.timerGen
	s.timer = time.AfterFunc(s.window, func() {
		s.expire(gen)
	})
}

// stopTimerLocked cancels any pending expiry. Idempotent. Caller must hold
// s.mu.
func (s *Service) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	// Invalidate callbacks already in flight.
	s.timerGen++
}

// expire is the timer callback. It runs the logout path only if no newer
// authentication superseded this timer.
func (s *Service) expire(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.timerGen || s.current == nil {
		return
	}

	slog.Info("Session expired after inactivity", "user_id", s.current.ID, "window", s.window)
	s.teardownLocked(true)
}
