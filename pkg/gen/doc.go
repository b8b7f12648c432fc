// Package gen builds random connected undirected graphs of a requested
// vertex count and edge density.
//
// Generation runs in two phases:
//
//  1. [SpanningTree] draws a random Prüfer sequence and decodes it into
//     V−1 tree edges, so the graph is connected before anything else is
//     added.
//  2. [Complete] samples extra edges until the edge count reaches
//     floor(density · V·(V−1)/2). Edge presence is tracked in a packed
//     bit-set addressed by [Indexer], one bit per unordered vertex pair.
//
// [Generator] wraps both phases behind functional options:
//
//	g := gen.New(gen.WithSeed(42))
//	gr, err := g.Generate(ctx, 1000, 0.02)
//
// # Randomness
//
// There is no package-level random state. Every function takes a [Source],
// which *math/rand/v2.Rand satisfies; [NewSource] returns a seeded one so the
// same seed always yields the same graph.
//
// # Completion strategies
//
// [StrategyRejection] draws random pairs and discards duplicates. It is
// capped at a fixed number of draws and fails with CONSTRUCT_FAILED instead
// of spinning forever. [StrategyComplement] enumerates the free pairs and
// picks a random subset, which always terminates. [StrategyAuto] picks
// rejection while at most half of the free pairs are needed.
package gen
