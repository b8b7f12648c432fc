package search_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/search"
)

func ExampleShortestPath() {
	g := graph.FromEdges(6, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 0, V: 3},
	})

	p, err := search.ShortestPath(g, 1, 3)
	fmt.Println(p, p.Hops(), err)

	_, err = search.ShortestPath(g, 0, 5)
	fmt.Println(errors.Is(err, search.ErrNoPath))
	// Output:
	// [1 0 3] 2 <nil>
	// true
}
