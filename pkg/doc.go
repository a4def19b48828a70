// Package pkg provides the libraries behind ttm, the talent tree layout
// engine of the WoW Talent Tree Manager.
//
// # Overview
//
// ttm turns the talent records of a tree (order id, talent type, grid row
// and column, point threshold, child links) into the positioned nodes and
// straight edges the editor's node-graph widget draws. Between groups of
// talents unlocked at different point thresholds it inserts a horizontal
// divider line, built from two invisible anchor nodes and an edge.
//
// # Architecture
//
//	JSON / YAML payload
//	         ↓
//	    [talent] package (decode and validate records)
//	         ↓
//	    [layout] package (positions, edges, tiers, dividers)
//	         ↓
//	    [graph] package (widget JSON)  /  [render/nodelink] (Graphviz DOT)
//
// [pipeline] wires the stages together behind a [cache] and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	nodes, err := talent.ReadFile("mage.json")
//	if err != nil {
//	    return err
//	}
//	l, err := layout.BuildGraph(nodes, layout.DefaultSettings())
//	if err != nil {
//	    return err
//	}
//	for _, d := range l.Diagnostics {
//	    log.Printf("%s: %s", d.Code, d.Message)
//	}
//	return graph.WriteGraphFile(l.Graph, "mage.graph.json")
//
// Move a talent after a drop in the editor:
//
//	moved, err := layout.ApplyDrag(nodes, 3, graph.Position{X: 120, Y: 80}, s)
//
// # Main Packages
//
// [talent] - Talent records, the four talent types and payload decoding.
// Records may arrive as an array, as an object keyed by order id, or nested
// under "nodes" or "tree", in JSON or YAML.
//
// [layout] - The layout engine: settings and coordinate units, the node and
// edge mapper, the tier divider calculator, the graph assembler and the
// inverse drag mapping.
//
// [graph] - The widget's node/edge document and the layout result with tiers,
// dividers and diagnostics.
//
// [render/nodelink] - Graphviz DOT export with pinned positions.
//
// [pipeline] - Decode → layout → export with caching, used by the CLI and
// the server.
//
// [cache] - File, Redis and null cache backends with content-addressed keys.
//
// [observability] - Hooks for decode, layout, drag, cache and HTTP events.
//
// [errors] - Error codes shared by every package.
//
// # Testing
//
//	go test ./...               # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [talent]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent
// [layout]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout
// [graph]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache
// [observability]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability
// [errors]: https://pkg.go.dev/github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors
package pkg
