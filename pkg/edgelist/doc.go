// Package edgelist reads and writes graphs in the plain edge-list format.
//
// # Format
//
// One edge per line, written as two whitespace-separated non-negative
// vertex ids:
//
//	0 1
//	1 2
//	0 2
//
// Nothing else is allowed: no comments, no blank lines, no weights. A line
// that does not match fails the whole read with an INVALID_FORMAT error
// naming the line number. Self loops are rejected the same way.
//
// # Import
//
// Use [Import] to read from a file path or [Read] to read from any
// io.Reader. Both take the expected vertex count; ids at or above it are
// OUT_OF_RANGE. Pass n <= 0 to infer the count as the largest id plus one.
//
//	g, err := edgelist.Import("graph_1000", 1000)
//
// # Export
//
// [Write] and [Export] emit edges in the order given, so a generated graph
// reads back with identical adjacency lists. [WriteFixtures] writes one
// graph_<size> file per requested size for BFS benchmarks.
package edgelist
