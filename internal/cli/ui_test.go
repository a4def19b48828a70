package cli

import (
	"strings"
	"testing"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

func TestFtoa(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{4, "4"},
		{-2, "-2"},
		{2.5, "2.5"},
		{0.4, "0.4"},
		{1.25, "1.25"},
	}
	for _, tt := range tests {
		if got := ftoa(tt.in); got != tt.want {
			t.Errorf("ftoa(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTierTable(t *testing.T) {
	nodes, err := talent.Decode([]byte(tieredTree))
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.BuildGraph(nodes, layout.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	out := tierTable(l)
	for _, want := range []string{"Points", "Divider above", "0 – 3", "5 – 8", "row 4", iconNone} {
		if !strings.Contains(out, want) {
			t.Errorf("tier table missing %q:\n%s", want, out)
		}
	}
}

func TestStatsLine(t *testing.T) {
	nodes, err := talent.Decode([]byte(tieredTree))
	if err != nil {
		t.Fatal(err)
	}
	l, err := layout.BuildGraph(nodes, layout.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}

	line := statsLine(l, true)
	for _, want := range []string{"4 talents", "3 edges", "1 dividers", iconCached} {
		if !strings.Contains(line, want) {
			t.Errorf("stats line %q missing %q", line, want)
		}
	}
}
