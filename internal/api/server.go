// Package api exposes the analysis engine over HTTP for the dashboard
// collaborator. The handlers are thin adapters: every computation
// happens in the engine packages, and each request that re-runs
// analysis produces an independent result rather than mutating shared
// state.
package api

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/analysis"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/config"
	"github.com/gooseprime/Indian-Railways-Track-Monitoring-System/internal/videosync"
)

// runState pairs an immutable analysis result with the resolver built
// from the frame index uploaded for it, if any.
type runState struct {
	result   *analysis.Result
	resolver *videosync.Resolver
}

// Server holds the uploaded runs. The engine itself is stateless; this
// in-memory registry exists so the UI can fetch exports and resolve
// queries against a run it uploaded earlier.
type Server struct {
	cfg      *config.Config
	defaults analysis.Options

	mu   sync.RWMutex
	runs map[string]*runState
}

// NewServer creates an API server with the given process config and
// default run options.
func NewServer(cfg *config.Config, defaults analysis.Options) *Server {
	return &Server{
		cfg:      cfg,
		defaults: defaults,
		runs:     make(map[string]*runState),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Post("/api/datasets", s.handleAnalyze)
	r.Get("/api/runs", s.handleListRuns)

	r.Route("/api/runs/{runID}", func(r chi.Router) {
		r.Get("/", s.handleRunSummary)
		r.Get("/derived", s.handleDerived)
		r.Get("/flags", s.handleFlags)
		r.Get("/segments", s.handleSegments)
		r.Get("/stats", s.handleStats)
		r.Get("/report", s.handleReport)
		r.Get("/profile.png", s.handleWearProfile)
		r.Post("/frames", s.handleUploadFrames)
		r.Get("/resolve", s.handleResolve)
		r.Get("/advance", s.handleAdvance)
	})

	return r
}

// getRun returns a snapshot of the run state taken under the lock.
// Callers work on the copy; a concurrent frame upload replacing the
// resolver never races with a reader holding an older snapshot.
func (s *Server) getRun(id string) (runState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs, ok := s.runs[id]
	if !ok {
		return runState{}, false
	}
	return *rs, true
}

func (s *Server) putRun(rs *runState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rs.result.RunID] = rs
}

// setResolver attaches a resolver to an existing run. A newer frame
// upload replaces the previous resolver wholesale; a stale resolver is
// discarded, never mutated in place.
func (s *Server) setResolver(id string, r *videosync.Resolver) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.runs[id]
	if !ok {
		return false
	}
	rs.resolver = r
	return true
}
