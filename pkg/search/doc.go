// Package search finds shortest hop-count paths in a [graph.Graph] with
// breadth-first search.
//
// [ShortestPath] answers a single query. [Searcher] keeps its visited set,
// parent table and queue between queries, which matters in benchmark loops
// that ask thousands of questions of one graph. An unreachable destination
// is reported as [ErrNoPath], never as an empty path.
//
// Neighbors are visited in adjacency-list order, so among several shortest
// paths the one found is fixed by the order edges were added.
package search
