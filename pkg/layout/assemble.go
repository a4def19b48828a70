package layout

import (
	"fmt"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// Option configures BuildGraph.
type Option func(*options)

type options struct {
	preFilled bool
}

// WithPreFilled selects the build view: edges between two pre-filled
// talents get a gold arrow and nodes are neither draggable nor connectable.
func WithPreFilled() Option {
	return func(o *options) { o.preFilled = true }
}

// BuildGraph runs a complete layout pass over nodes.
//
// Records with an unknown talent type are skipped and reported as
// diagnostics, as are child references to records that are absent or were
// skipped. Duplicate order ids and invalid settings fail with INVALID_INPUT.
// The input is not modified and every call returns fresh collections.
func BuildGraph(nodes []talent.Node, s Settings, opts ...Option) (graph.Layout, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := s.Validate(); err != nil {
		return graph.Layout{}, err
	}
	if err := talent.ValidateTree(nodes); err != nil {
		return graph.Layout{}, err
	}

	var out graph.Layout
	out.Nodes = make([]graph.Node, 0, len(nodes))
	out.Edges = []graph.Edge{}

	mapped := make(map[int]talent.Node, len(nodes))
	for _, n := range nodes {
		gn, err := MapNode(n, s)
		if err != nil {
			out.Diagnostics = append(out.Diagnostics, graph.Diagnostic{
				Code:    string(errors.GetCode(err)),
				OrderID: n.OrderID,
				Message: errors.UserMessage(err),
			})
			continue
		}
		if o.preFilled {
			gn.Draggable = false
			gn.Connectable = false
		}
		out.Nodes = append(out.Nodes, gn)
		mapped[n.OrderID] = n
	}

	for _, n := range nodes {
		if _, ok := mapped[n.OrderID]; !ok {
			continue
		}
		out.Edges = append(out.Edges, MapEdges(n, mapped, o.preFilled)...)
		for _, id := range DanglingChildren(n, mapped) {
			out.Diagnostics = append(out.Diagnostics, graph.Diagnostic{
				Code:    string(errors.ErrCodeDanglingChildReference),
				OrderID: n.OrderID,
				Message: fmt.Sprintf("child %d of talent %d is not in the tree; edge dropped", id, n.OrderID),
			})
		}
	}

	out.Tiers = Tiers(out.Nodes)
	out.Dividers = dividersFor(out.Tiers)
	if b, ok := ColumnBounds(out.Nodes); ok {
		dn, de := DividerGraph(out.Dividers, b, s)
		out.Nodes = append(out.Nodes, dn...)
		out.Edges = append(out.Edges, de...)
	}
	return out, nil
}
