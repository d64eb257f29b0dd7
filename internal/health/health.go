// Package health serves liveness, readiness and health endpoints for the bot.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

const checkTimeout = 5 * time.Second

// Status is the /health response body.
type Status struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Version   string           `json:"version,omitempty"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
}

// Check is the result of one named check.
type Check struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// CheckFunc reports whether a dependency is healthy, with a short message.
type CheckFunc func(ctx context.Context) (bool, string)

// ReadyFunc reports whether the bot has what it needs to answer commands.
type ReadyFunc func() bool

// Server serves /health, /ready and /live.
type Server struct {
	port    int
	version string
	started time.Time

	mu        sync.RWMutex
	checks    map[string]CheckFunc
	readiness map[string]ReadyFunc

	server *http.Server
}

func NewServer(port int, version string) *Server {
	return &Server{
		port:      port,
		version:   version,
		started:   time.Now(),
		checks:    make(map[string]CheckFunc),
		readiness: make(map[string]ReadyFunc),
	}
}

// RegisterCheck adds a check reported by /health.
func (s *Server) RegisterCheck(name string, check CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

// RegisterReadiness adds a gate for /ready. With no gates the server is ready.
func (s *Server) RegisterReadiness(name string, ready ReadyFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readiness[name] = ready
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	return mux
}

// Start listens in the background. Listener errors are reported on errCh when non-nil.
func (s *Server) Start(errCh chan<- error) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && errCh != nil {
			errCh <- err
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// runChecks evaluates every check outside the lock.
func (s *Server) runChecks(ctx context.Context) (map[string]Check, bool) {
	s.mu.RLock()
	checks := make(map[string]CheckFunc, len(s.checks))
	for k, v := range s.checks {
		checks[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]Check, len(checks))
	healthy := true
	for name, check := range checks {
		ok, msg := check(ctx)
		results[name] = Check{Healthy: ok, Message: msg}
		healthy = healthy && ok
	}
	return results, healthy
}

// pending lists readiness gates that are not yet satisfied, sorted.
func (s *Server) pending() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for name, ready := range s.readiness {
		if !ready() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks, healthy := s.runChecks(ctx)
	status := Status{
		Status:    "ok",
		Checks:    checks,
		Version:   s.version,
		Uptime:    time.Since(s.started).Truncate(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	code := http.StatusOK
	if !healthy {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if waiting := s.pending(); len(waiting) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ready": false, "waiting_for": waiting})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
