// Package server exposes graph generation and shortest-path queries over
// HTTP.
//
// Generated graphs live in memory under a random UUID until deleted or the
// process exits. Generation goes through a [pipeline.Runner], so seeded
// requests reuse cached edge lists when the runner has a cache.
//
// Routes:
//
//	POST   /graphs                   generate a graph
//	GET    /graphs                   list stored graphs
//	GET    /graphs/{id}              graph stats
//	GET    /graphs/{id}/edges        edge list (text/plain)
//	GET    /graphs/{id}/path         shortest path, ?from=A&to=B
//	GET    /graphs/{id}/render       rendered graph, ?format=svg&from=A&to=B
//	DELETE /graphs/{id}              drop a graph
//	GET    /healthz                  liveness
//	GET    /version                  build information
package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown after the serve context ends.
const shutdownTimeout = 5 * time.Second

// DefaultMaxVertices is the per-request vertex cap of a new Server.
const DefaultMaxVertices = 100000

// Server is the HTTP API. It is safe for concurrent use.
type Server struct {
	runner      *pipeline.Runner
	logger      *log.Logger
	router      chi.Router
	maxVertices int

	mu     sync.RWMutex
	graphs map[string]*entry
}

type entry struct {
	id       string
	g        *graph.Graph
	density  float64
	seed     uint64
	cacheHit bool
	created  time.Time
}

// New returns a Server generating graphs with runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:      runner,
		logger:      logger,
		maxVertices: DefaultMaxVertices,
		graphs:      make(map[string]*entry),
	}
	s.router = s.routes()
	return s
}

// SetMaxVertices changes the largest vertex count a create request may ask
// for. Values below 2 are ignored.
func (s *Server) SetMaxVertices(n int) *Server {
	if n >= 2 {
		s.maxVertices = n
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/graphs", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/edges", s.handleEdges)
			r.Get("/path", s.handlePath)
			r.Get("/render", s.handleRender)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Store
// =============================================================================

func (s *Server) put(e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[e.id] = e
}

func (s *Server) get(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.graphs[id]
	return e, ok
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return false
	}
	delete(s.graphs, id)
	return true
}

func (s *Server) list() []*entry {
	s.mu.RLock()
	out := make([]*entry, 0, len(s.graphs))
	for _, e := range s.graphs {
		out = append(out, e)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].created.Equal(out[j].created) {
			return out[i].id < out[j].id
		}
		return out[i].created.Before(out[j].created)
	})
	return out
}

func newID() string { return uuid.NewString() }
