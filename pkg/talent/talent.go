package talent

import (
	"fmt"
	"math"
	"slices"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
)

// Type is the talent variant tag selecting the visual and interaction kind.
type Type string

// Talent variants. TypeDivider is synthesized by layout and never appears
// in an input record.
const (
	TypeDivider Type = "DIVIDER"
	TypePassive Type = "PASSIVE"
	TypeActive  Type = "ACTIVE"
	TypeSwitch  Type = "SWITCH"
)

// Valid reports whether t is one of the four recognized variants.
func (t Type) Valid() bool {
	switch t {
	case TypeDivider, TypePassive, TypeActive, TypeSwitch:
		return true
	}
	return false
}

// Node is one talent record of a tree.
type Node struct {
	OrderID        int     `json:"order_id" mapstructure:"order_id"`
	Type           Type    `json:"talent_type" mapstructure:"talent_type"`
	Row            float64 `json:"row" mapstructure:"row"`
	Column         float64 `json:"column" mapstructure:"column"`
	RequiredPoints int     `json:"required_points" mapstructure:"required_points"`
	MaxPoints      int     `json:"max_points" mapstructure:"max_points"`
	ChildIDs       []int   `json:"child_ids" mapstructure:"child_ids"`
	ParentIDs      []int   `json:"parent_ids" mapstructure:"parent_ids"`
	PreFilled      bool    `json:"pre_filled" mapstructure:"pre_filled"`

	// Display metadata, carried through layout unchanged.
	NodeID            int    `json:"node_id,omitempty" mapstructure:"node_id"`
	Name              string `json:"name,omitempty" mapstructure:"name"`
	Description       string `json:"description,omitempty" mapstructure:"description"`
	IconName          string `json:"icon_name,omitempty" mapstructure:"icon_name"`
	NameSwitch        string `json:"name_switch,omitempty" mapstructure:"name_switch"`
	DescriptionSwitch string `json:"description_switch,omitempty" mapstructure:"description_switch"`
	IconNameSwitch    string `json:"icon_name_switch,omitempty" mapstructure:"icon_name_switch"`
}

// Clone returns a deep copy of n. The copy shares no slices with n.
func (n Node) Clone() Node {
	n.ChildIDs = slices.Clone(n.ChildIDs)
	n.ParentIDs = slices.Clone(n.ParentIDs)
	return n
}

// Validate checks the grid coordinates and display metadata of a single
// record. The talent type is not checked here: unknown types are a per-node
// layout diagnostic, not a structural error.
func (n Node) Validate() error {
	if !finite(n.Row) || !finite(n.Column) {
		return errors.New(errors.ErrCodeInvalidInput, "talent %d has a non-finite position (row %g, column %g)", n.OrderID, n.Row, n.Column)
	}
	for _, name := range []string{n.Name, n.NameSwitch} {
		if err := errors.ValidateTalentName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "talent %d", n.OrderID)
		}
	}
	for _, icon := range []string{n.IconName, n.IconNameSwitch} {
		if err := errors.ValidateIconName(icon); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "talent %d", n.OrderID)
		}
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// ValidateTree checks the structural invariants of a record set: every
// record passes [Node.Validate] and order ids are unique.
// Child ids referencing absent records are allowed; layout drops those edges.
func ValidateTree(nodes []Node) error {
	seen := make(map[int]struct{}, len(nodes))
	for _, n := range nodes {
		if _, dup := seen[n.OrderID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate order id %d", n.OrderID)
		}
		seen[n.OrderID] = struct{}{}
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Index returns the records keyed by order id.
// Later records win on duplicate ids; call [ValidateTree] first to reject them.
func Index(nodes []Node) map[int]Node {
	byID := make(map[int]Node, len(nodes))
	for _, n := range nodes {
		byID[n.OrderID] = n
	}
	return byID
}

// Find returns the position of the record with the given order id.
func Find(nodes []Node, orderID int) (int, error) {
	i := slices.IndexFunc(nodes, func(n Node) bool { return n.OrderID == orderID })
	if i < 0 {
		return -1, errors.New(errors.ErrCodeNotFound, "talent %d not found", orderID)
	}
	return i, nil
}

// String returns a short description used in logs and diagnostics.
func (n Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%d (%s)", n.OrderID, n.Name)
	}
	return fmt.Sprintf("%d", n.OrderID)
}
