package pipeline

import (
	"context"
	"time"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/render/nodelink"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// Decode parses payload into talent records, reporting to the pipeline hooks.
func Decode(ctx context.Context, payload []byte) ([]talent.Node, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, len(payload))
	start := time.Now()

	nodes, err := talent.Decode(payload)
	hooks.OnDecodeComplete(ctx, len(nodes), time.Since(start), err)
	return nodes, err
}

// ComputeLayout runs one layout pass, reporting to the pipeline hooks.
func ComputeLayout(ctx context.Context, nodes []talent.Node, s layout.Settings, opts ...layout.Option) (graph.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(s.Unit), len(nodes))
	start := time.Now()

	l, err := layout.BuildGraph(nodes, s, opts...)
	hooks.OnLayoutComplete(ctx, string(s.Unit), observability.LayoutStats{
		Nodes:       len(l.Nodes),
		Edges:       len(l.Edges),
		Dividers:    len(l.Dividers),
		Diagnostics: len(l.Diagnostics),
	}, time.Since(start), err)
	return l, err
}

// Export renders l in each of opts.Formats.
func Export(l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := graph.MarshalLayout(l)
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		case FormatDOT:
			artifacts[format] = []byte(nodelink.ToDOT(l.Graph, nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}
