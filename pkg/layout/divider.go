package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
)

// Tiers groups positioned talents by required points, ascending, and
// reports the row extent of each group. Divider anchors are ignored.
func Tiers(nodes []graph.Node) []graph.Tier {
	byPoints := make(map[int]*graph.Tier)
	for i := range nodes {
		n := &nodes[i]
		if n.IsDivider() {
			continue
		}
		t, ok := byPoints[n.Data.RequiredPoints]
		if !ok {
			byPoints[n.Data.RequiredPoints] = &graph.Tier{
				RequiredPoints: n.Data.RequiredPoints,
				MinRow:         n.Data.Row,
				MaxRow:         n.Data.Row,
				Count:          1,
			}
			continue
		}
		t.MinRow = min(t.MinRow, n.Data.Row)
		t.MaxRow = max(t.MaxRow, n.Data.Row)
		t.Count++
	}

	tiers := make([]graph.Tier, 0, len(byPoints))
	for _, t := range byPoints {
		tiers = append(tiers, *t)
	}
	slices.SortFunc(tiers, func(a, b graph.Tier) int { return cmp.Compare(a.RequiredPoints, b.RequiredPoints) })
	return tiers
}

// Dividers returns the separator lines between tiers. The line in front of
// tier i exists only when every earlier tier ends strictly above MinRow of
// tier i; it is drawn halfway between the lowest earlier row and MinRow.
func Dividers(nodes []graph.Node) []graph.Divider {
	return dividersFor(Tiers(nodes))
}

func dividersFor(tiers []graph.Tier) []graph.Divider {
	var out []graph.Divider
	for i := 1; i < len(tiers); i++ {
		above := tiers[0].MaxRow
		for _, t := range tiers[1:i] {
			above = max(above, t.MaxRow)
		}
		if above >= tiers[i].MinRow {
			continue
		}
		out = append(out, graph.Divider{
			RequiredPoints: tiers[i].RequiredPoints,
			Row:            0.5 * (above + tiers[i].MinRow),
		})
	}
	return out
}

// Bounds is the column extent of a tree.
type Bounds struct {
	MinColumn float64
	MaxColumn float64
}

// ColumnBounds returns the column extent of the talent nodes.
// The second result is false when there are none.
func ColumnBounds(nodes []graph.Node) (Bounds, bool) {
	var b Bounds
	found := false
	for i := range nodes {
		n := &nodes[i]
		if n.IsDivider() {
			continue
		}
		if !found {
			b = Bounds{MinColumn: n.Data.Column, MaxColumn: n.Data.Column}
			found = true
			continue
		}
		b.MinColumn = min(b.MinColumn, n.Data.Column)
		b.MaxColumn = max(b.MaxColumn, n.Data.Column)
	}
	return b, found
}

// DividerNodeID returns the id of a divider anchor.
func DividerNodeID(points int, anchor string) string {
	return fmt.Sprintf("d%d%s", points, anchor)
}

// DividerEdgeID returns the id of the edge joining two divider anchors.
func DividerEdgeID(points int) string {
	return fmt.Sprintf("de%dl-%dr", points, points)
}

// DividerGraph realizes each divider as a left and a right anchor node
// spanning the given bounds plus s.DividerMargin columns, joined by one edge.
func DividerGraph(dividers []graph.Divider, b Bounds, s Settings) ([]graph.Node, []graph.Edge) {
	nodes := make([]graph.Node, 0, 2*len(dividers))
	edges := make([]graph.Edge, 0, len(dividers))
	for _, d := range dividers {
		row := d.Row + s.DividerOffset
		left := anchor(d, graph.AnchorLeft, row, b.MinColumn-s.DividerMargin, s)
		right := anchor(d, graph.AnchorRight, row, b.MaxColumn+s.DividerMargin, s)
		nodes = append(nodes, left, right)
		edges = append(edges, graph.Edge{
			ID:      DividerEdgeID(d.RequiredPoints),
			Source:  left.ID,
			Target:  right.ID,
			Type:    graph.EdgeTypeStraight,
			Divider: true,
		})
	}
	return nodes, edges
}

func anchor(d graph.Divider, side string, row, column float64, s Settings) graph.Node {
	x, y := s.Position(row, column)
	return graph.Node{
		ID:       DividerNodeID(d.RequiredPoints, side),
		Type:     graph.KindDivider,
		Position: graph.Position{X: x, Y: y},
		Data: graph.NodeData{
			Size:           s.NodeSize,
			Row:            row,
			Column:         column,
			RequiredPoints: d.RequiredPoints,
			Anchor:         side,
		},
	}
}
