package layout

import (
	"fmt"
	"strconv"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// kinds maps input talent types to node kinds. DIVIDER is produced by
// layout only, so an input record of that type is unknown.
var kinds = map[talent.Type]string{
	talent.TypePassive: graph.KindPassive,
	talent.TypeActive:  graph.KindActive,
	talent.TypeSwitch:  graph.KindSwitch,
}

// Kind returns the rendering kind for a talent type.
func Kind(t talent.Type) (string, bool) {
	k, ok := kinds[t]
	return k, ok
}

// NodeID returns the graph id of the talent with the given order id.
func NodeID(orderID int) string { return "n" + strconv.Itoa(orderID) }

// EdgeID returns the graph id of the edge between two talents.
func EdgeID(src, dst int) string { return fmt.Sprintf("e%d-%d", src, dst) }

// MapNode places one talent on the pixel grid. The returned node is
// draggable and connectable; BuildGraph clears both flags in build views.
func MapNode(n talent.Node, s Settings) (graph.Node, error) {
	kind, ok := Kind(n.Type)
	if !ok {
		if n.Type == talent.TypeDivider {
			return graph.Node{}, errors.New(errors.ErrCodeUnknownTalentType, "talent %d has type %q, which is reserved for divider anchors", n.OrderID, n.Type)
		}
		return graph.Node{}, errors.New(errors.ErrCodeUnknownTalentType, "talent %d has unknown type %q", n.OrderID, n.Type)
	}
	x, y := s.Position(n.Row, n.Column)
	return graph.Node{
		ID:          NodeID(n.OrderID),
		Type:        kind,
		Position:    graph.Position{X: x, Y: y},
		Draggable:   true,
		Connectable: true,
		Data:        nodeData(n, s.NodeSize),
	}, nil
}

func nodeData(n talent.Node, size float64) graph.NodeData {
	return graph.NodeData{
		OrderID:           n.OrderID,
		Size:              size,
		Row:               n.Row,
		Column:            n.Column,
		RequiredPoints:    n.RequiredPoints,
		MaxPoints:         n.MaxPoints,
		PreFilled:         n.PreFilled,
		ChildIDs:          cloneInts(n.ChildIDs),
		ParentIDs:         cloneInts(n.ParentIDs),
		NodeID:            n.NodeID,
		Name:              n.Name,
		Description:       n.Description,
		IconName:          n.IconName,
		NameSwitch:        n.NameSwitch,
		DescriptionSwitch: n.DescriptionSwitch,
		IconNameSwitch:    n.IconNameSwitch,
	}
}

func cloneInts(s []int) []int {
	if len(s) == 0 {
		return nil
	}
	return append([]int(nil), s...)
}

// MapEdges returns one edge per child of n in ChildIDs order. Children
// missing from byID are skipped. When preFilled is set, an edge gets a gold
// arrow if both endpoints are pre-filled.
func MapEdges(n talent.Node, byID map[int]talent.Node, preFilled bool) []graph.Edge {
	var edges []graph.Edge
	for _, childID := range n.ChildIDs {
		child, ok := byID[childID]
		if !ok {
			continue
		}
		e := graph.Edge{
			ID:     EdgeID(n.OrderID, childID),
			Source: NodeID(n.OrderID),
			Target: NodeID(childID),
			Type:   graph.EdgeTypeStraight,
		}
		if preFilled {
			e.GoldArrow = n.PreFilled && child.PreFilled
		}
		edges = append(edges, e)
	}
	return edges
}

// DanglingChildren returns the child ids of n that are missing from byID.
func DanglingChildren(n talent.Node, byID map[int]talent.Node) []int {
	var out []int
	for _, id := range n.ChildIDs {
		if _, ok := byID[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
