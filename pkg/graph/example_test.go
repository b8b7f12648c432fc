package graph_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/randgraph/pkg/graph"
)

func ExampleGraph_Neighbors() {
	g := graph.New(4)
	g.AddEdge(0, 1)
	g.AddEdge(0, 3)
	g.AddEdge(2, 0)

	fmt.Println(g.Neighbors(0))
	fmt.Println(g.Degree(0), g.EdgeCount())
	// Output:
	// [1 3 2]
	// 3 3
}

func ExampleWriteGraph() {
	g := graph.FromEdges(2, []graph.Edge{{U: 0, V: 1}})

	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "degree": 1
	//     },
	//     {
	//       "id": 1,
	//       "degree": 1
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": 0,
	//       "to": 1
	//     }
	//   ]
	// }
}
