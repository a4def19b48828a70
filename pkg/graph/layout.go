package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Graph Plus Tier Information
// =============================================================================

// Layout is the complete result of a layout pass.
//
// The embedded Graph serializes at the top level so a Layout can be fed to
// the widget as-is. Tiers and Dividers describe the point-threshold
// segmentation; Diagnostics lists records that were skipped or edges that
// were dropped.
type Layout struct {
	Graph

	Tiers       []Tier       `json:"tiers,omitempty"`
	Dividers    []Divider    `json:"dividers,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Tier is the row extent of the talents sharing one point threshold.
type Tier struct {
	RequiredPoints int     `json:"required_points"`
	MinRow         float64 `json:"min_row"`
	MaxRow         float64 `json:"max_row"`
	Count          int     `json:"count"`
}

// Divider is a separator line drawn above the tier with RequiredPoints.
type Divider struct {
	RequiredPoints int     `json:"required_points"`
	Row            float64 `json:"row"`
}

// Diagnostic describes a record the layout pass could not fully honour.
type Diagnostic struct {
	Code    string `json:"code"`
	OrderID int    `json:"order_id"`
	Message string `json:"message"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
