package nodelink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
)

// Options configures DOT export.
type Options struct {
	// Detailed adds row, column and required points to node labels.
	Detailed bool
	// Scale converts layout pixels to Graphviz points. Zero means 1.
	Scale float64
}

var shapes = map[string]string{
	graph.KindPassive: "circle",
	graph.KindActive:  "box",
	graph.KindSwitch:  "octagon",
	graph.KindDivider: "point",
}

// ToDOT converts g to DOT. Nodes and edges are written in canonical order.
// The y axis is flipped because Graphviz grows upwards.
func ToDOT(g graph.Graph, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	c := g.Canonical()

	var buf bytes.Buffer
	buf.WriteString("digraph talents {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fixedsize=true, fontsize=10];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range c.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, scale, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range c.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, scale float64, detailed bool) []string {
	shape, ok := shapes[n.Type]
	if !ok {
		shape = "ellipse"
	}
	attrs := []string{
		fmt.Sprintf("shape=%s", shape),
		fmt.Sprintf("pos=\"%s,%s!\"", ftoa(n.Position.X*scale), ftoa(-n.Position.Y*scale)),
	}
	if n.IsDivider() {
		return append(attrs, "label=\"\"", "width=0.05")
	}

	// Graphviz sizes are in inches.
	size := n.Data.Size * scale / 72
	attrs = append(attrs,
		fmt.Sprintf("label=%q", label(n, detailed)),
		fmt.Sprintf("width=%s", ftoa(size)),
		fmt.Sprintf("height=%s", ftoa(size)),
	)
	if n.Data.PreFilled {
		attrs = append(attrs, "fillcolor=gold")
	}
	return attrs
}

func label(n graph.Node, detailed bool) string {
	name := n.Data.Name
	if name == "" {
		name = strconv.Itoa(n.Data.OrderID)
	}
	if n.Type == graph.KindSwitch && n.Data.NameSwitch != "" {
		name += " / " + n.Data.NameSwitch
	}
	if !detailed {
		return name
	}
	return fmt.Sprintf("%s\nrow %s, col %s\n%d pts", name, ftoa(n.Data.Row), ftoa(n.Data.Column), n.Data.RequiredPoints)
}

func edgeAttrs(e graph.Edge) []string {
	switch {
	case e.Divider:
		return []string{"style=dashed", "arrowhead=none", "color=grey"}
	case e.GoldArrow:
		return []string{"color=gold", "penwidth=2"}
	}
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Stats is what Graphviz sees in a DOT document.
type Stats struct {
	Nodes int
	Edges int
}

// Validate parses dot with Graphviz and returns its node and edge counts.
func Validate(dot string) (Stats, error) {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return Stats{}, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	nodes, err := g.NodeNum()
	if err != nil {
		return Stats{}, fmt.Errorf("count nodes: %w", err)
	}
	edges, err := g.EdgeNum()
	if err != nil {
		return Stats{}, fmt.Errorf("count edges: %w", err)
	}
	return Stats{Nodes: nodes, Edges: edges}, nil
}
