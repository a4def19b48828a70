package talent

import (
	"math"
	"testing"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{TypeDivider, TypePassive, TypeActive, TypeSwitch} {
		if !typ.Valid() {
			t.Errorf("%q.Valid() = false, want true", typ)
		}
	}
	for _, typ := range []Type{"", "passive", "CHOICE"} {
		if typ.Valid() {
			t.Errorf("%q.Valid() = true, want false", typ)
		}
	}
}

func TestCloneSharesNoSlices(t *testing.T) {
	orig := Node{OrderID: 1, ChildIDs: []int{2, 3}, ParentIDs: []int{0}}
	c := orig.Clone()
	c.ChildIDs[0] = 99
	c.ParentIDs[0] = 99

	if orig.ChildIDs[0] != 2 || orig.ParentIDs[0] != 0 {
		t.Errorf("Clone() aliases slices: orig = %+v", orig)
	}
}

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr bool
	}{
		{"Empty", nil, false},
		{"Unique", []Node{{OrderID: 1}, {OrderID: 2}}, false},
		{"DanglingChildAllowed", []Node{{OrderID: 1, ChildIDs: []int{42}}}, false},
		{"Duplicate", []Node{{OrderID: 1}, {OrderID: 2}, {OrderID: 1}}, true},
		{"BadIconSwitch", []Node{{OrderID: 1, IconNameSwitch: "a/b.png"}}, true},
		{"NaNRow", []Node{{OrderID: 1, Row: math.NaN()}}, true},
		{"InfColumn", []Node{{OrderID: 1, Column: math.Inf(1)}}, true},
		{"FractionalNegative", []Node{{OrderID: 1, Row: 1.5, Column: -2.5}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTree(tt.nodes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTree() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("ValidateTree() code = %v, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestIndexAndFind(t *testing.T) {
	nodes := []Node{{OrderID: 4, Name: "Starsurge"}, {OrderID: 7}}

	byID := Index(nodes)
	if len(byID) != 2 || byID[4].Name != "Starsurge" {
		t.Errorf("Index() = %+v", byID)
	}

	i, err := Find(nodes, 7)
	if err != nil || i != 1 {
		t.Errorf("Find(7) = %d, %v; want 1, nil", i, err)
	}

	if _, err := Find(nodes, 5); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Find(5) error = %v, want NOT_FOUND", err)
	}
}

func TestNodeString(t *testing.T) {
	if got := (Node{OrderID: 3, Name: "Moonkin Form"}).String(); got != "3 (Moonkin Form)" {
		t.Errorf("String() = %q", got)
	}
	if got := (Node{OrderID: 3}).String(); got != "3" {
		t.Errorf("String() = %q", got)
	}
}
