package gen_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/randgraph/pkg/gen"
)

func ExampleIndexer() {
	ix := gen.NewIndexer(4)
	fmt.Println(ix.Size())
	fmt.Println(ix.Index(0, 1), ix.Index(3, 2))
	fmt.Println(ix.Pair(3))
	// Output:
	// 6
	// 0 5
	// 1 2
}

func ExampleDecodePrufer() {
	edges, err := gen.DecodePrufer(5, []int{1, 2, 3})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, e := range edges {
		fmt.Println(e)
	}
	// Output:
	// 0 1
	// 1 2
	// 2 3
	// 3 4
}

func ExampleGenerator_Generate() {
	g, err := gen.New(gen.WithSeed(1)).Generate(context.Background(), 4, 1.0)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println(g.Size(), g.EdgeCount())
	// Output:
	// 4 6
}
