// ABOUTME: Entry point for the user portal session backend
// ABOUTME: One process per browser profile: single identity slot, local HTTP API

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/userportal/backend/config"
	"github.com/userportal/backend/directory"
	"github.com/userportal/backend/guard"
	"github.com/userportal/backend/handlers"
	"github.com/userportal/backend/logger"
	"github.com/userportal/backend/middleware"
	"github.com/userportal/backend/session"
	"github.com/userportal/backend/storage"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting User Portal Backend")
	slog.Info("Directory API configured", "url", cfg.DirectoryAPIURL)
	slog.Info("Session slot", "file", cfg.SessionFile, "ttl_seconds", cfg.SessionTTL)

	// Wire the directory cache over the remote keyed-JSON API
	dir := directory.NewCache(directory.NewClient(cfg.DirectoryAPIURL))

	// Session service over the persisted slot
	store := storage.NewFileStore(cfg.SessionFile)
	window := time.Duration(cfg.SessionTTL) * time.Second
	sess := session.NewService(dir, store, window)
	sess.SetNotifier(func(message string) {
		slog.Info("Session notice", "message", message)
	})

	// Boot restoration: resolve the persisted slot before serving requests.
	// The service logs the outcome.
	sess.Initialize(context.Background())

	g := guard.New(cfg.AccessRoute)
	h := handlers.NewHandler(cfg, dir, sess)

	// Rate limiters: nil disables the middleware
	var authLimiter, writeLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimitAuth, time.Minute)
		writeLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled",
			"auth_per_min", cfg.RateLimitAuth,
			"write_per_min", cfg.RateLimitWrite,
			"default_per_min", cfg.RateLimitDefault,
		)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	pickLimiter := func(rt handlers.Route) *middleware.RateLimiter {
		switch {
		case strings.HasPrefix(rt.Path, "/api/v1/auth/"):
			return authLimiter
		case rt.Method != http.MethodGet:
			return writeLimiter
		default:
			return defaultLimiter
		}
	}

	mux := http.NewServeMux()
	for _, rt := range h.Routes() {
		mux.HandleFunc(rt.Method+" "+rt.Path, middleware.Chain(rt.Handler,
			middleware.LogRequest,
			middleware.RateLimit(pickLimiter(rt), middleware.ClientIP),
			middleware.Guard(g, sess.CurrentUser, rt.Roles),
		))
	}

	// CORS wraps the whole mux: preflight OPTIONS requests match no method
	// pattern, so they must be answered before pattern dispatch.
	root := middleware.CORS(cfg.CORSAllowedOrigins)(mux.ServeHTTP)

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, root); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
