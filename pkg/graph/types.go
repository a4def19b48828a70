package graph

import (
	"cmp"
	"slices"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Rendering kinds selecting the widget's node template.
const (
	KindDivider = "dividerNode"
	KindPassive = "passiveNode"
	KindActive  = "activeNode"
	KindSwitch  = "switchNode"
)

// EdgeTypeStraight is the only edge template the widget uses.
const EdgeTypeStraight = "straight"

// Divider anchor sides.
const (
	AnchorLeft  = "left"
	AnchorRight = "right"
)

// =============================================================================
// Graph - Positioned Node/Edge Sets
// =============================================================================

// Graph is the node/edge aggregate produced by one layout pass.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is a pixel coordinate in widget space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a positioned graph node.
type Node struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Position    Position `json:"position"`
	Draggable   bool     `json:"draggable"`
	Connectable bool     `json:"connectable"`
	Data        NodeData `json:"data"`
}

// IsDivider reports whether the node is a divider anchor.
func (n *Node) IsDivider() bool { return n.Type == KindDivider && n.Data.Anchor != "" }

// NodeData carries the talent fields needed for interaction and tooltips.
// Divider anchors only set Size, Anchor and RequiredPoints.
type NodeData struct {
	OrderID        int     `json:"id"`
	Size           float64 `json:"size"`
	Row            float64 `json:"row"`
	Column         float64 `json:"column"`
	RequiredPoints int     `json:"requiredPoints"`
	MaxPoints      int     `json:"maxPoints,omitempty"`
	PreFilled      bool    `json:"preFilled,omitempty"`
	ChildIDs       []int   `json:"childIDs,omitempty"`
	ParentIDs      []int   `json:"parentIDs,omitempty"`
	Anchor         string  `json:"anchor,omitempty"`

	NodeID            int    `json:"nodeID,omitempty"`
	Name              string `json:"name,omitempty"`
	Description       string `json:"description,omitempty"`
	IconName          string `json:"iconName,omitempty"`
	NameSwitch        string `json:"nameSwitch,omitempty"`
	DescriptionSwitch string `json:"descriptionSwitch,omitempty"`
	IconNameSwitch    string `json:"iconNameSwitch,omitempty"`
}

// Edge is a directed edge between two node ids.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`

	// GoldArrow is set in build views when both endpoints are pre-filled.
	GoldArrow bool `json:"goldArrow,omitempty"`
	// Divider marks the line joining two divider anchors.
	Divider bool `json:"divider,omitempty"`
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	i := slices.IndexFunc(g.Nodes, func(n Node) bool { return n.ID == id })
	if i < 0 {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// TalentNodes returns the nodes that are not divider anchors.
func (g *Graph) TalentNodes() []Node {
	out := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if !n.IsDivider() {
			out = append(out, n)
		}
	}
	return out
}

// DividerNodes returns the divider anchors.
func (g *Graph) DividerNodes() []Node {
	var out []Node
	for _, n := range g.Nodes {
		if n.IsDivider() {
			out = append(out, n)
		}
	}
	return out
}

// Canonical returns a copy of g with nodes and edges sorted by id.
// Two layout passes over the same tree have equal canonical forms.
func (g Graph) Canonical() Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
	slices.SortFunc(out.Nodes, func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortFunc(out.Edges, func(a, b Edge) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
