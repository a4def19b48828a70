package layout

import (
	"math"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// ApplyDrag returns a copy of nodes in which the talent with orderID has
// been moved to the grid coordinate under pos. The input is not modified.
// An unknown orderID fails with NOT_FOUND.
func ApplyDrag(nodes []talent.Node, orderID int, pos graph.Position, s Settings) ([]talent.Node, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	i, err := talent.Find(nodes, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]talent.Node, len(nodes))
	for j, n := range nodes {
		out[j] = n.Clone()
	}
	out[i].Row, out[i].Column = s.GridCoord(pos.X, pos.Y)
	return out, nil
}

// Snap rounds pos to the nearest half unit, the step the widget snaps to.
func Snap(pos graph.Position, s Settings) graph.Position {
	step := 0.5 * s.UnitSize()
	return graph.Position{
		X: math.Round(pos.X/step) * step,
		Y: math.Round(pos.Y/step) * step,
	}
}
