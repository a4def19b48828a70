package graph

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "n2", Type: KindActive, Position: Position{X: 20, Y: 40}, Data: NodeData{OrderID: 2, Row: 1}},
			{ID: "n1", Type: KindPassive, Position: Position{X: 20, Y: 20}, Data: NodeData{OrderID: 1, ChildIDs: []int{2}}},
			{ID: "d8left", Type: KindDivider, Data: NodeData{Anchor: AnchorLeft, RequiredPoints: 8}},
		},
		Edges: []Edge{
			{ID: "e1-2", Source: "n1", Target: "n2", Type: EdgeTypeStraight},
			{ID: "de8l-8r", Source: "d8left", Target: "d8right", Type: EdgeTypeStraight, Divider: true},
		},
	}
}

func TestMarshalGraph(t *testing.T) {
	tests := []struct {
		name  string
		g     Graph
		check func(t *testing.T, out string)
	}{
		{
			name: "Empty",
			g:    Graph{},
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, `"nodes": []`) || !strings.Contains(out, `"edges": []`) {
					t.Errorf("empty graph should encode empty arrays, got %s", out)
				}
			},
		},
		{
			name: "WidgetShape",
			g:    sampleGraph(),
			check: func(t *testing.T, out string) {
				for _, want := range []string{`"source": "n1"`, `"target": "n2"`, `"type": "passiveNode"`, `"position"`, `"childIDs"`} {
					if !strings.Contains(out, want) {
						t.Errorf("output missing %s", want)
					}
				}
				if strings.Contains(out, `"goldArrow"`) {
					t.Error("goldArrow should be omitted when false")
				}
			},
		},
		{
			name: "ZeroOrderID",
			g:    Graph{Nodes: []Node{{ID: "n0", Type: KindPassive, Data: NodeData{OrderID: 0}}}},
			check: func(t *testing.T, out string) {
				if !strings.Contains(out, `"id": 0`) {
					t.Errorf("talent 0 should keep data.id, got %s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalGraph(tt.g)
			if err != nil {
				t.Fatalf("MarshalGraph() error = %v", err)
			}
			tt.check(t, string(data))
		})
	}
}

func TestIsDivider(t *testing.T) {
	tests := []struct {
		name string
		n    Node
		want bool
	}{
		{"Anchor", Node{Type: KindDivider, Data: NodeData{Anchor: AnchorRight}}, true},
		{"NoAnchor", Node{Type: KindDivider}, false},
		{"Talent", Node{Type: KindPassive}, false},
	}
	for _, tt := range tests {
		if got := tt.n.IsDivider(); got != tt.want {
			t.Errorf("%s: IsDivider() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, g)
	}
}

func TestReadGraphInvalid(t *testing.T) {
	if _, err := ReadGraph(bytes.NewBufferString("{not json")); err == nil {
		t.Error("ReadGraph() should fail on malformed JSON")
	}
}

func TestGraphLookups(t *testing.T) {
	g := sampleGraph()

	if n, ok := g.Node("n1"); !ok || n.Data.OrderID != 1 {
		t.Errorf("Node(n1) = %+v, %v", n, ok)
	}
	if _, ok := g.Node("n9"); ok {
		t.Error("Node(n9) should not be found")
	}
	if got := len(g.TalentNodes()); got != 2 {
		t.Errorf("TalentNodes() = %d, want 2", got)
	}
	if got := len(g.DividerNodes()); got != 1 {
		t.Errorf("DividerNodes() = %d, want 1", got)
	}
}

func TestCanonical(t *testing.T) {
	g := sampleGraph()
	c := g.Canonical()

	ids := []string{c.Nodes[0].ID, c.Nodes[1].ID, c.Nodes[2].ID}
	if !reflect.DeepEqual(ids, []string{"d8left", "n1", "n2"}) {
		t.Errorf("Canonical() node order = %v", ids)
	}
	if c.Edges[0].ID != "de8l-8r" {
		t.Errorf("Canonical() edge order = %s first", c.Edges[0].ID)
	}
	if g.Nodes[0].ID != "n2" {
		t.Error("Canonical() must not reorder the receiver")
	}
}

func TestLayoutSerialization(t *testing.T) {
	l := Layout{
		Graph:       sampleGraph(),
		Tiers:       []Tier{{RequiredPoints: 0, MinRow: 0, MaxRow: 1, Count: 2}},
		Dividers:    []Divider{{RequiredPoints: 8, Row: 4}},
		Diagnostics: []Diagnostic{{Code: "UNKNOWN_TALENT_TYPE", OrderID: 5, Message: "bad"}},
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error = %v", err)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"nodes", "edges", "tiers", "dividers", "diagnostics"} {
		if _, ok := top[key]; !ok {
			t.Errorf("layout JSON missing top-level %q", key)
		}
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error = %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error = %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("layout round trip mismatch:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestUnmarshalLayoutInvalid(t *testing.T) {
	if _, err := UnmarshalLayout([]byte("[")); err == nil {
		t.Error("UnmarshalLayout() should fail on malformed JSON")
	}
}
