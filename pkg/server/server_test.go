package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/randgraph/pkg/buildinfo"
	"github.com/matzehuels/randgraph/pkg/cache"
	"github.com/matzehuels/randgraph/pkg/edgelist"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/pipeline"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.New(&bytes.Buffer{})
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := pipeline.NewRunner(c, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, r)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func create(t *testing.T, s *Server, body string) GraphResponse {
	t.Helper()
	rr := do(t, s, http.MethodPost, "/graphs", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /graphs = %d: %s", rr.Code, rr.Body.String())
	}
	return decode[GraphResponse](t, rr)
}

// putGraph stores g directly, bypassing generation.
func putGraph(s *Server, g *graph.Graph) string {
	id := newID()
	s.put(&entry{id: id, g: g, created: time.Now()})
	return id
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)
	rr := do(t, s, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("GET /healthz = %d %q", rr.Code, rr.Body.String())
	}
}

func TestVersion(t *testing.T) {
	s := setupTestServer(t)
	rr := do(t, s, http.MethodGet, "/version", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /version = %d", rr.Code)
	}
	var info buildinfo.Info
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.Version == "" || info.Commit == "" {
		t.Errorf("version = %+v, want populated fields", info)
	}
}

func TestGraphLifecycle(t *testing.T) {
	s := setupTestServer(t)

	created := create(t, s, `{"vertices":20,"density":0.5,"seed":5}`)
	if created.ID == "" {
		t.Fatal("missing id")
	}
	if created.Vertices != 20 || created.Edges != 95 {
		t.Errorf("created = %+v, want 20 vertices and 95 edges", created)
	}
	if created.RequestedDensity != 0.5 || created.Seed != 5 {
		t.Errorf("created = %+v", created)
	}

	rr := do(t, s, http.MethodGet, "/graphs/"+created.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET = %d", rr.Code)
	}
	if got := decode[GraphResponse](t, rr); got.ID != created.ID || got.Edges != created.Edges {
		t.Errorf("GET = %+v, want %+v", got, created)
	}

	rr = do(t, s, http.MethodGet, "/graphs/"+created.ID+"/edges", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET edges = %d", rr.Code)
	}
	g, err := edgelist.Read(rr.Body, 20)
	if err != nil {
		t.Fatalf("edge list: %v", err)
	}
	if g.EdgeCount() != created.Edges {
		t.Errorf("edge list has %d edges, want %d", g.EdgeCount(), created.Edges)
	}

	rr = do(t, s, http.MethodDelete, "/graphs/"+created.ID, "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d", rr.Code)
	}
	rr = do(t, s, http.MethodGet, "/graphs/"+created.ID, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("GET after DELETE = %d, want 404", rr.Code)
	}
}

func TestCreateErrors(t *testing.T) {
	s := setupTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"vertices":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"vertices":10,"colour":"red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"too few vertices", `{"vertices":1,"density":0.5}`, http.StatusBadRequest, "INVALID_VERTEX_COUNT"},
		{"density above one", `{"vertices":10,"density":1.5}`, http.StatusBadRequest, "INVALID_DENSITY"},
		{"bad strategy", `{"vertices":10,"strategy":"greedy"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodPost, "/graphs", tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.status, rr.Body.String())
			}
			if got := decode[ErrorResponse](t, rr); got.Code != tt.code {
				t.Errorf("code = %q, want %q", got.Code, tt.code)
			}
		})
	}
}

func TestCreateVertexLimit(t *testing.T) {
	s := setupTestServer(t).SetMaxVertices(50)

	rr := do(t, s, http.MethodPost, "/graphs", `{"vertices":16000000,"density":0.01}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rr.Code, rr.Body.String())
	}
	if got := decode[ErrorResponse](t, rr); got.Code != "INVALID_VERTEX_COUNT" {
		t.Errorf("code = %q, want INVALID_VERTEX_COUNT", got.Code)
	}

	rr = do(t, s, http.MethodPost, "/graphs", `{"vertices":51,"density":0.1}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("one over the limit: status = %d, want 400", rr.Code)
	}
	create(t, s, `{"vertices":50,"density":0.1,"seed":3}`)
}

func TestCreateSeededUsesCache(t *testing.T) {
	s := setupTestServer(t)
	a := create(t, s, `{"vertices":30,"density":0.2,"seed":9}`)
	b := create(t, s, `{"vertices":30,"density":0.2,"seed":9}`)
	if a.ID == b.ID {
		t.Error("two creates share an id")
	}
	if a.CacheHit || !b.CacheHit {
		t.Errorf("cache hits = %v, %v; want false, true", a.CacheHit, b.CacheHit)
	}

	ea := do(t, s, http.MethodGet, "/graphs/"+a.ID+"/edges", "").Body.String()
	eb := do(t, s, http.MethodGet, "/graphs/"+b.ID+"/edges", "").Body.String()
	if ea != eb {
		t.Error("same seed produced different edge lists")
	}
}

func TestList(t *testing.T) {
	s := setupTestServer(t)
	a := create(t, s, `{"vertices":5,"density":0.5,"seed":1}`)
	b := create(t, s, `{"vertices":6,"density":0.5,"seed":2}`)

	rr := do(t, s, http.MethodGet, "/graphs", "")
	got := decode[[]GraphResponse](t, rr)
	if len(got) != 2 {
		t.Fatalf("listed %d graphs, want 2", len(got))
	}
	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids[a.ID] || !ids[b.ID] {
		t.Errorf("list = %+v", got)
	}
}

func TestPath(t *testing.T) {
	s := setupTestServer(t)
	line := putGraph(s, graph.FromEdges(5, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}}))
	split := putGraph(s, graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}}))

	tests := []struct {
		name   string
		target string
		status int
		path   []int
		code   string
	}{
		{"forward", "/graphs/" + line + "/path?from=0&to=4", http.StatusOK, []int{0, 1, 2, 3, 4}, ""},
		{"backward", "/graphs/" + line + "/path?from=4&to=0", http.StatusOK, []int{4, 3, 2, 1, 0}, ""},
		{"self", "/graphs/" + line + "/path?from=2&to=2", http.StatusOK, []int{2}, ""},
		{"unreachable", "/graphs/" + split + "/path?from=0&to=2", http.StatusNotFound, nil, "UNREACHABLE"},
		{"out of range", "/graphs/" + line + "/path?from=0&to=5", http.StatusBadRequest, nil, "OUT_OF_RANGE"},
		{"missing to", "/graphs/" + line + "/path?from=0", http.StatusBadRequest, nil, "INVALID_INPUT"},
		{"not a number", "/graphs/" + line + "/path?from=x&to=1", http.StatusBadRequest, nil, "INVALID_INPUT"},
		{"unknown graph", "/graphs/nope/path?from=0&to=1", http.StatusNotFound, nil, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, s, http.MethodGet, tt.target, "")
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.status, rr.Body.String())
			}
			if tt.code != "" {
				if got := decode[ErrorResponse](t, rr); got.Code != tt.code {
					t.Errorf("code = %q, want %q", got.Code, tt.code)
				}
				return
			}
			got := decode[PathResponse](t, rr)
			if len(got.Path) != len(tt.path) {
				t.Fatalf("path = %v, want %v", got.Path, tt.path)
			}
			for i := range got.Path {
				if got.Path[i] != tt.path[i] {
					t.Fatalf("path = %v, want %v", got.Path, tt.path)
				}
			}
			if got.Hops != len(tt.path)-1 {
				t.Errorf("hops = %d, want %d", got.Hops, len(tt.path)-1)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	s := setupTestServer(t)
	id := putGraph(s, graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}))

	rr := do(t, s, http.MethodGet, "/graphs/"+id+"/render?format=dot&from=0&to=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("render = %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rr.Body.String(), "graph G {") {
		t.Errorf("body = %q", rr.Body.String())
	}

	rr = do(t, s, http.MethodGet, "/graphs/"+id+"/render?format=gif", "")
	if rr.Code != http.StatusNotImplemented {
		t.Errorf("gif render = %d, want 501", rr.Code)
	}
	rr = do(t, s, http.MethodGet, "/graphs/"+id+"/render?format=dot&from=0", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("half path query = %d, want 400", rr.Code)
	}
}

func TestDeleteUnknown(t *testing.T) {
	s := setupTestServer(t)
	rr := do(t, s, http.MethodDelete, "/graphs/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("DELETE unknown = %d, want 404", rr.Code)
	}
}
