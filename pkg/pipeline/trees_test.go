package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestExampleTrees(t *testing.T) {
	tests := []struct {
		file        string
		talents     int
		dividerRows []float64
		goldArrows  int
		preFilled   bool
	}{
		{file: "fire_mage.json", talents: 9, dividerRows: []float64{3, 6}},
		{file: "starter.yaml", talents: 3, preFilled: true, goldArrows: 1},
	}

	runner := NewRunner(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			payload, err := os.ReadFile(filepath.Join("..", "..", "examples", "trees", tt.file))
			if err != nil {
				t.Fatal(err)
			}

			result, err := runner.Execute(context.Background(), payload, Options{PreFilled: tt.preFilled})
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			l := result.Layout
			if got := len(l.TalentNodes()); got != tt.talents {
				t.Errorf("talents = %d, want %d", got, tt.talents)
			}
			if len(l.Diagnostics) != 0 {
				t.Errorf("diagnostics = %+v, want none", l.Diagnostics)
			}

			var rows []float64
			for _, d := range l.Dividers {
				rows = append(rows, d.Row)
			}
			if !reflect.DeepEqual(rows, tt.dividerRows) {
				t.Errorf("divider rows = %v, want %v", rows, tt.dividerRows)
			}

			gold := 0
			for _, e := range l.Edges {
				if e.GoldArrow {
					gold++
				}
			}
			if gold != tt.goldArrows {
				t.Errorf("gold arrows = %d, want %d", gold, tt.goldArrows)
			}
		})
	}
}
