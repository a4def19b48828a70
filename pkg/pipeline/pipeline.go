// Package pipeline runs the decode → layout → export pipeline shared by the
// CLI and the HTTP server.
//
// # Stages
//
//  1. Decode: parse a JSON or YAML payload into talent records
//  2. Layout: build the positioned graph with tier dividers
//  3. Export: produce artifacts (widget JSON, Graphviz DOT)
//
// Decoded trees and layouts are cached through a [cache.Cache]; keys cover
// the tree content and every setting that changes the result.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, payload, pipeline.Options{
//	    Unit:    "cell",
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatDOT},
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("tree.json", result.Artifacts[pipeline.FormatJSON], 0644)
//
// Run individual stages:
//
//	nodes, err := runner.Decode(ctx, payload, opts)
//	l, err := runner.Layout(ctx, nodes, opts)
//	moved, l, err := runner.Drag(ctx, nodes, 3, graph.Position{X: 120, Y: 80}, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// Export formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. Zero sizes, an empty unit and nil
// divider fields take the layout defaults; the divider fields are pointers
// so an explicit zero survives.
type Options struct {
	// Layout options
	GridSpacing   float64  `json:"grid_spacing,omitempty"`
	NodeSize      float64  `json:"node_size,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	DividerMargin *float64 `json:"divider_margin,omitempty"`
	DividerOffset *float64 `json:"divider_offset,omitempty"`
	PreFilled     bool     `json:"prefilled,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string

	// Tree is the decoded record set.
	Tree []talent.Node

	// TreeHash is the content hash of Tree.
	TreeHash string

	// Layout is the positioned graph with tiers and diagnostics.
	Layout graph.Layout

	// Artifacts contains exports keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	DividerCount int
	DecodeTime   time.Duration
	LayoutTime   time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	DecodeHit bool
	LayoutHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// Settings returns the layout settings described by o, defaults applied.
func (o *Options) Settings() (layout.Settings, error) {
	unit, err := layout.ParseUnitMode(o.Unit)
	if err != nil {
		return layout.Settings{}, err
	}
	s := layout.DefaultSettings()
	s.Unit = unit
	if o.GridSpacing != 0 {
		s.GridSpacing = o.GridSpacing
	}
	if o.NodeSize != 0 {
		s.NodeSize = o.NodeSize
	}
	if o.DividerMargin != nil {
		s.DividerMargin = *o.DividerMargin
	}
	if o.DividerOffset != nil {
		s.DividerOffset = *o.DividerOffset
	}
	if err := s.Validate(); err != nil {
		return layout.Settings{}, err
	}
	return s, nil
}

// LayoutOptions returns the layout options described by o.
func (o *Options) LayoutOptions() []layout.Option {
	if o.PreFilled {
		return []layout.Option{layout.WithPreFilled()}
	}
	return nil
}

// LayoutKeyOpts returns the cache key options for s.
func (o *Options) LayoutKeyOpts(s layout.Settings) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		GridSpacing:   s.GridSpacing,
		NodeSize:      s.NodeSize,
		Unit:          string(s.Unit),
		DividerMargin: s.DividerMargin,
		DividerOffset: s.DividerOffset,
		PreFilled:     o.PreFilled,
	}
}

// ValidateAndSetDefaults checks o and fills defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if _, err := o.Settings(); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
