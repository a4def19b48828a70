package layout

import (
	"strings"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
)

// UnitMode selects the pixel unit used to convert grid cells to positions.
type UnitMode string

const (
	// UnitGrid uses the grid spacing as the unit.
	UnitGrid UnitMode = "grid"
	// UnitCell uses node size plus grid spacing as the unit.
	UnitCell UnitMode = "cell"
)

// ParseUnitMode parses "grid" or "cell" (case-insensitive). The empty
// string yields UnitGrid.
func ParseUnitMode(s string) (UnitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UnitGrid):
		return UnitGrid, nil
	case string(UnitCell):
		return UnitCell, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown unit mode %q (want grid or cell)", s)
}

// Default geometry.
const (
	DefaultGridSpacing   = 40.0
	DefaultNodeSize      = 80.0
	DefaultDividerMargin = 2.0
	DefaultDividerOffset = 0.4
)

// Settings holds the geometry of one layout pass.
type Settings struct {
	GridSpacing float64  `json:"grid_spacing" toml:"grid_spacing"`
	NodeSize    float64  `json:"node_size" toml:"node_size"`
	Unit        UnitMode `json:"unit" toml:"unit"`

	// DividerMargin is the number of columns a divider line extends past
	// the outermost talent on either side.
	DividerMargin float64 `json:"divider_margin" toml:"divider_margin"`
	// DividerOffset shifts the divider line down by a fraction of a row.
	DividerOffset float64 `json:"divider_offset" toml:"divider_offset"`
}

// DefaultSettings returns grid spacing 40, node size 80 and UnitGrid.
func DefaultSettings() Settings {
	return Settings{
		GridSpacing:   DefaultGridSpacing,
		NodeSize:      DefaultNodeSize,
		Unit:          UnitGrid,
		DividerMargin: DefaultDividerMargin,
		DividerOffset: DefaultDividerOffset,
	}
}

// WithDefaults fills zero fields from DefaultSettings. A zero divider margin
// or offset counts as unset here; to lay out with an explicit zero, start
// from DefaultSettings and assign the field.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.GridSpacing == 0 {
		s.GridSpacing = d.GridSpacing
	}
	if s.NodeSize == 0 {
		s.NodeSize = d.NodeSize
	}
	if s.Unit == "" {
		s.Unit = d.Unit
	}
	if s.DividerMargin == 0 {
		s.DividerMargin = d.DividerMargin
	}
	if s.DividerOffset == 0 {
		s.DividerOffset = d.DividerOffset
	}
	return s
}

// Validate returns an INVALID_INPUT error for non-positive sizes or an
// unknown unit mode.
func (s Settings) Validate() error {
	if s.GridSpacing <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "grid spacing must be positive, got %g", s.GridSpacing)
	}
	if s.NodeSize <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "node size must be positive, got %g", s.NodeSize)
	}
	if s.Unit != UnitGrid && s.Unit != UnitCell {
		return errors.New(errors.ErrCodeInvalidInput, "unknown unit mode %q", s.Unit)
	}
	if s.DividerMargin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "divider margin must not be negative")
	}
	return nil
}

// UnitSize returns the pixel size of one unit.
func (s Settings) UnitSize() float64 {
	if s.Unit == UnitCell {
		return s.NodeSize + s.GridSpacing
	}
	return s.GridSpacing
}

// Position converts a grid coordinate to a pixel position.
func (s Settings) Position(row, column float64) (x, y float64) {
	u := s.UnitSize()
	return 0.5 * (column + 1) * u, 0.5 * (row + 1) * u
}

// GridCoord is the inverse of Position.
func (s Settings) GridCoord(x, y float64) (row, column float64) {
	u := s.UnitSize()
	return 2*y/u - 1, 2*x/u - 1
}
