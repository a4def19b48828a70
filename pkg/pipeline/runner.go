package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// Runner executes pipeline stages with caching.
//
// The Runner holds no per-run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// means DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs decode, layout and export over payload.
func (r *Runner) Execute(ctx context.Context, payload []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	decodeStart := time.Now()
	nodes, decodeHit, err := r.DecodeWithCacheInfo(ctx, payload, opts)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Tree = nodes
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.CacheInfo.DecodeHit = decodeHit

	logger.Info("decoded tree",
		"records", len(nodes),
		"cached", decodeHit,
		"duration", result.Stats.DecodeTime)

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, nodes, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.TreeHash, _ = cache.HashJSON(nodes)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.NodeCount = len(l.Nodes)
	result.Stats.EdgeCount = len(l.Edges)
	result.Stats.DividerCount = len(l.Dividers)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"dividers", len(l.Dividers),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)
	for _, d := range l.Diagnostics {
		logger.Warn("layout diagnostic", "code", d.Code, "talent", d.OrderID, "msg", d.Message)
	}

	exportStart := time.Now()
	artifacts, err := Export(l, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	logger.Debug("exported artifacts", "formats", opts.Formats, "duration", result.Stats.ExportTime)
	return result, nil
}

// DecodeWithCacheInfo decodes payload and reports whether the records came
// from the cache.
func (r *Runner) DecodeWithCacheInfo(ctx context.Context, payload []byte, opts Options) ([]talent.Node, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.TreeKey(cache.Hash(payload))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var nodes []talent.Node
			if err := json.Unmarshal(data, &nodes); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				return nodes, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	nodes, err := Decode(ctx, payload)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(nodes); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLTree); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "tree", len(data))
		}
	}
	return nodes, false, nil
}

// Decode is DecodeWithCacheInfo without the cache hit info.
func (r *Runner) Decode(ctx context.Context, payload []byte, opts Options) ([]talent.Node, error) {
	nodes, _, err := r.DecodeWithCacheInfo(ctx, payload, opts)
	return nodes, err
}

// LayoutWithCacheInfo lays out nodes and reports whether the result came
// from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, nodes []talent.Node, opts Options) (graph.Layout, bool, error) {
	r.applyLogger(&opts)
	s, err := opts.Settings()
	if err != nil {
		return graph.Layout{}, false, err
	}

	treeHash, err := cache.HashJSON(nodes)
	if err != nil {
		return graph.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts(s))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, err := ComputeLayout(ctx, nodes, s, opts.LayoutOptions()...)
	if err != nil {
		return graph.Layout{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// Layout is LayoutWithCacheInfo without the cache hit info.
func (r *Runner) Layout(ctx context.Context, nodes []talent.Node, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, nodes, opts)
	return l, err
}

// Drag moves the talent with orderID to pos and lays out the new tree.
// nodes is not modified.
func (r *Runner) Drag(ctx context.Context, nodes []talent.Node, orderID int, pos graph.Position, opts Options) ([]talent.Node, graph.Layout, error) {
	r.applyLogger(&opts)
	s, err := opts.Settings()
	if err != nil {
		return nil, graph.Layout{}, err
	}

	moved, err := layout.ApplyDrag(nodes, orderID, pos, s)
	observability.Pipeline().OnDrag(ctx, err)
	if err != nil {
		return nil, graph.Layout{}, err
	}

	i, _ := talent.Find(moved, orderID)
	opts.Logger.Debug("applied drag",
		"talent", moved[i].String(),
		"row", moved[i].Row,
		"column", moved[i].Column)

	l, err := r.Layout(ctx, moved, opts)
	if err != nil {
		return nil, graph.Layout{}, err
	}
	return moved, l, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
