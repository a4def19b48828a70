package graph_test

import (
	"fmt"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
)

func ExampleGraph_Canonical() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "n3", Type: graph.KindPassive},
			{ID: "n1", Type: graph.KindActive},
			{ID: "d5left", Type: graph.KindDivider, Data: graph.NodeData{Anchor: graph.AnchorLeft}},
		},
	}

	for _, n := range g.Canonical().Nodes {
		fmt.Println(n.ID, n.Type)
	}
	// Output:
	// d5left dividerNode
	// n1 activeNode
	// n3 passiveNode
}

func ExampleMarshalGraph() {
	g := graph.Graph{
		Edges: []graph.Edge{{ID: "e1-2", Source: "n1", Target: "n2", Type: graph.EdgeTypeStraight}},
	}
	data, _ := graph.MarshalGraph(g)
	fmt.Print(string(data))
	// Output:
	// {
	//   "nodes": [],
	//   "edges": [
	//     {
	//       "id": "e1-2",
	//       "source": "n1",
	//       "target": "n2",
	//       "type": "straight"
	//     }
	//   ]
	// }
}
