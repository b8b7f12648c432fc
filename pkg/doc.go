// Package pkg provides the libraries behind randgraph: random connected
// graph generation and BFS shortest paths.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. Core: [graph] (adjacency lists, JSON), [gen] (Prüfer spanning trees,
//     density completion), [search] (BFS shortest path)
//  2. Formats: [edgelist] (text edge lists and benchmark fixtures),
//     [render] (Graphviz drawings)
//  3. Infrastructure: [cache] (file and Redis edge-list caches), [config]
//     (TOML settings), [errors] (coded errors), [observability] (hooks)
//  4. Orchestration: [pipeline] (cached generate and render), [bench]
//     (timing harness), [server] (HTTP API)
//
// # Architecture
//
//	Prüfer sequence
//	       ↓
//	  [gen] spanning tree (V−1 edges, connected)
//	       ↓
//	  [gen] density completion (bit-set over the triangular pair index)
//	       ↓
//	  [graph] adjacency lists
//	       ↓
//	  [search] BFS shortest path
//
// # Quick Start
//
//	g, err := gen.New(gen.WithSeed(42)).Generate(ctx, 1000, 0.02)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p, err := search.ShortestPath(g, 0, 999)
//	if errors.Is(err, search.ErrNoPath) {
//	    // unreachable; never happens for generated graphs
//	}
//	fmt.Println(p.Hops())
//
// [graph]: github.com/matzehuels/randgraph/pkg/graph
// [gen]: github.com/matzehuels/randgraph/pkg/gen
// [search]: github.com/matzehuels/randgraph/pkg/search
// [edgelist]: github.com/matzehuels/randgraph/pkg/edgelist
// [render]: github.com/matzehuels/randgraph/pkg/render
// [cache]: github.com/matzehuels/randgraph/pkg/cache
// [config]: github.com/matzehuels/randgraph/pkg/config
// [errors]: github.com/matzehuels/randgraph/pkg/errors
// [observability]: github.com/matzehuels/randgraph/pkg/observability
// [pipeline]: github.com/matzehuels/randgraph/pkg/pipeline
// [bench]: github.com/matzehuels/randgraph/pkg/bench
// [server]: github.com/matzehuels/randgraph/pkg/server
package pkg
