package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/randgraph/pkg/buildinfo"
	"github.com/matzehuels/randgraph/pkg/edgelist"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/pipeline"
	"github.com/matzehuels/randgraph/pkg/render/nodelink"
	"github.com/matzehuels/randgraph/pkg/search"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// CreateRequest is the body of POST /graphs.
type CreateRequest struct {
	Vertices    int     `json:"vertices"`
	Density     float64 `json:"density"`
	Seed        uint64  `json:"seed,omitempty"`
	Strategy    string  `json:"strategy,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
}

// GraphResponse describes a stored graph.
type GraphResponse struct {
	ID               string    `json:"id"`
	Vertices         int       `json:"vertices"`
	Edges            int       `json:"edges"`
	Density          float64   `json:"density"`
	RequestedDensity float64   `json:"requested_density"`
	Seed             uint64    `json:"seed"`
	CacheHit         bool      `json:"cache_hit"`
	CreatedAt        time.Time `json:"created_at"`
}

// PathResponse is the body of GET /graphs/{id}/path.
type PathResponse struct {
	From int   `json:"from"`
	To   int   `json:"to"`
	Path []int `json:"path"`
	Hops int   `json:"hops"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	nodelink.FormatDOT: "text/vnd.graphviz; charset=utf-8",
	nodelink.FormatSVG: "image/svg+xml",
	nodelink.FormatPNG: "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Vertices > s.maxVertices {
		s.respondError(w, errs.New(errs.ErrCodeInvalidVertexCount,
			"vertex count %d exceeds server limit %d", req.Vertices, s.maxVertices))
		return
	}

	res, err := s.runner.Generate(r.Context(), pipeline.Options{
		Vertices:    req.Vertices,
		Density:     req.Density,
		Seed:        req.Seed,
		Strategy:    req.Strategy,
		MaxAttempts: req.MaxAttempts,
		Logger:      s.logger,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}

	density := req.Density
	if density == 0 {
		density = pipeline.DefaultDensity
	}
	e := &entry{
		id:       newID(),
		g:        res.Graph,
		density:  density,
		seed:     res.Seed,
		cacheHit: res.CacheHit,
		created:  time.Now(),
	}
	s.put(e)
	w.Header().Set("Location", "/graphs/"+e.id)
	s.respondJSON(w, http.StatusCreated, toResponse(e))
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	entries := s.list()
	out := make([]GraphResponse, len(entries))
	for i, e := range entries {
		out[i] = toResponse(e)
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, toResponse(e))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.remove(id) {
		s.respondError(w, errs.New(errs.ErrCodeNotFound, "graph %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEdges(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := edgelist.WriteGraph(w, e.g); err != nil {
		s.logger.Warn("write edge list", "id", e.id, "error", err)
	}
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	from, err := intParam(r, "from")
	if err != nil {
		s.respondError(w, err)
		return
	}
	to, err := intParam(r, "to")
	if err != nil {
		s.respondError(w, err)
		return
	}

	p, err := search.NewSearcher(e.g).WithContext(r.Context()).ShortestPath(from, to)
	if errors.Is(err, search.ErrNoPath) {
		err = errs.Wrap(errs.ErrCodeUnreachable, err, "no path from %d to %d", from, to)
	}
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, PathResponse{From: from, To: to, Path: p, Hops: p.Hops()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}

	var from, to int
	var err error
	fromSet, toSet := q.Has("from"), q.Has("to")
	if fromSet {
		if from, err = intParam(r, "from"); err != nil {
			s.respondError(w, err)
			return
		}
	}
	if toSet {
		if to, err = intParam(r, "to"); err != nil {
			s.respondError(w, err)
			return
		}
	}
	fromPtr, toPtr, err := pipeline.ParsePathQuery(from, to, fromSet, toSet)
	if err != nil {
		s.respondError(w, err)
		return
	}

	out, err := s.runner.Render(r.Context(), e.g, pipeline.RenderOptions{
		From:   fromPtr,
		To:     toPtr,
		Format: format,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(out)
}

// lookup resolves the {id} parameter, writing a 404 when it is unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*entry, bool) {
	id := chi.URLParam(r, "id")
	e, ok := s.get(id)
	if !ok {
		s.respondError(w, errs.New(errs.ErrCodeNotFound, "graph %s not found", id))
	}
	return e, ok
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errs.New(errs.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInvalidInput, err, "query parameter %q: not an integer", name)
	}
	return v, nil
}

func toResponse(e *entry) GraphResponse {
	return GraphResponse{
		ID:               e.id,
		Vertices:         e.g.Size(),
		Edges:            e.g.EdgeCount(),
		Density:          e.g.Density(),
		RequestedDensity: e.density,
		Seed:             e.seed,
		CacheHit:         e.cacheHit,
		CreatedAt:        e.created,
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", "error", err)
	}
}

// respondError maps err to a status through its error code. Internal errors
// are logged and reported without detail.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	resp := ErrorResponse{Code: string(errs.GetCode(err)), Message: errs.UserMessage(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		resp = ErrorResponse{Code: string(errs.ErrCodeInternal), Message: "internal error"}
	}
	s.respondJSON(w, status, resp)
}
