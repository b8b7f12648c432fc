package gen

import (
	"fmt"
	"math"
)

// Indexer maps unordered vertex pairs of an n-vertex graph onto the dense
// range [0, n·(n−1)/2) and back.
//
// For a < b the index is a·(2n − a − 1)/2 + (b − a − 1): row a of the strict
// upper triangle starts right after the rows above it.
type Indexer struct {
	n int
}

// NewIndexer returns an Indexer for n vertices.
func NewIndexer(n int) Indexer {
	if n < 0 {
		panic(fmt.Sprintf("gen: negative vertex count %d", n))
	}
	return Indexer{n: n}
}

// N returns the vertex count.
func (x Indexer) N() int { return x.n }

// Size returns the number of distinct unordered pairs, n·(n−1)/2.
func (x Indexer) Size() int { return x.n * (x.n - 1) / 2 }

// Index returns the slot of the unordered pair {a, b}.
// It panics on a self loop or an endpoint outside [0, n).
func (x Indexer) Index(a, b int) int {
	if a == b {
		panic(fmt.Sprintf("gen: self loop on vertex %d", a))
	}
	if a < 0 || b < 0 || a >= x.n || b >= x.n {
		panic(fmt.Sprintf("gen: pair (%d, %d) out of range [0, %d)", a, b, x.n))
	}
	if a > b {
		a, b = b, a
	}
	return x.rowStart(a) + (b - a - 1)
}

// Pair returns the pair stored at idx with the smaller vertex first.
// It panics if idx is outside [0, Size()).
func (x Indexer) Pair(idx int) (a, b int) {
	if idx < 0 || idx >= x.Size() {
		panic(fmt.Sprintf("gen: index %d out of range [0, %d)", idx, x.Size()))
	}

	// Invert the row-start quadratic, then correct float rounding.
	m := float64(2*x.n - 1)
	a = int((m - math.Sqrt(m*m-8*float64(idx))) / 2)
	a = max(0, min(a, x.n-2))
	for a > 0 && x.rowStart(a) > idx {
		a--
	}
	for a < x.n-2 && x.rowStart(a+1) <= idx {
		a++
	}
	return a, idx - x.rowStart(a) + a + 1
}

func (x Indexer) rowStart(a int) int {
	return a * (2*x.n - a - 1) / 2
}
