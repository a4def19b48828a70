package pipeline

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability"
)

const treeJSON = `[
  {"order_id": 1, "talent_type": "ACTIVE", "row": 0, "column": 0, "max_points": 1, "child_ids": [2, 3, 4]},
  {"order_id": 2, "talent_type": "PASSIVE", "row": 1, "column": -2, "max_points": 2},
  {"order_id": 3, "talent_type": "PASSIVE", "row": 1, "column": 0, "max_points": 2},
  {"order_id": 4, "talent_type": "SWITCH", "row": 1, "column": 2, "max_points": 1},
  {"order_id": 5, "talent_type": "PASSIVE", "row": 4, "column": 0, "required_points": 8, "max_points": 1}
]`

// memCache is an in-memory Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", true},
		{"JSON", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func float(v float64) *float64 { return &v }

func TestOptionsSettings(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		want    layout.Settings
		wantErr bool
	}{
		{
			name: "Defaults",
			opts: Options{},
			want: layout.DefaultSettings(),
		},
		{
			name: "Cell",
			opts: Options{Unit: "cell", GridSpacing: 20},
			want: func() layout.Settings {
				s := layout.DefaultSettings()
				s.Unit = layout.UnitCell
				s.GridSpacing = 20
				return s
			}(),
		},
		{
			name: "ZeroDivider",
			opts: Options{DividerMargin: float(0), DividerOffset: float(0)},
			want: func() layout.Settings {
				s := layout.DefaultSettings()
				s.DividerMargin = 0
				s.DividerOffset = 0
				return s
			}(),
		},
		{name: "BadUnit", opts: Options{Unit: "hex"}, wantErr: true},
		{name: "NegativeSize", opts: Options{NodeSize: -5}, wantErr: true},
		{name: "NegativeMargin", opts: Options{DividerMargin: float(-1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.Settings()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Settings() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Settings() = %+v, want %+v", got, tt.want)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Settings() code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
		})
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	bad := Options{Formats: []string{"png"}}
	if err := bad.ValidateAndSetDefaults(); err == nil {
		t.Error("png should be rejected")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil)
	res, err := r.Execute(context.Background(), []byte(treeJSON), Options{
		Formats: []string{FormatJSON, FormatDOT},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.RunID == "" || res.TreeHash == "" {
		t.Error("RunID and TreeHash should be set")
	}
	if len(res.Tree) != 5 {
		t.Errorf("Tree = %d records, want 5", len(res.Tree))
	}
	// 5 talents + 2 divider anchors
	if res.Stats.NodeCount != 7 || res.Stats.EdgeCount != 4 || res.Stats.DividerCount != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.DecodeHit || res.CacheInfo.LayoutHit {
		t.Error("first run should miss the cache")
	}

	l, err := graph.UnmarshalLayout(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(l.Nodes) != 7 {
		t.Errorf("json artifact nodes = %d, want 7", len(l.Nodes))
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph talents {") {
		t.Error("dot artifact missing")
	}
}

func TestExecuteCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	if _, err := r.Execute(ctx, []byte(treeJSON), Options{}); err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, []byte(treeJSON), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.DecodeHit || !second.CacheInfo.LayoutHit {
		t.Errorf("second run CacheInfo = %+v, want both hits", second.CacheInfo)
	}

	cell, err := r.Execute(ctx, []byte(treeJSON), Options{Unit: "cell"})
	if err != nil {
		t.Fatal(err)
	}
	if cell.CacheInfo.LayoutHit {
		t.Error("a different unit mode must not hit the cached layout")
	}

	setsBefore := c.sets
	refreshed, err := r.Execute(ctx, []byte(treeJSON), Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.DecodeHit || refreshed.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass cache reads")
	}
	if c.sets == setsBefore {
		t.Error("Refresh should still write results")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	tests := []struct {
		name    string
		payload string
		opts    Options
		code    errors.Code
	}{
		{"Scalar", `42`, Options{}, errors.ErrCodeInvalidInput},
		{"Malformed", `[{"order_id": 1,`, Options{}, errors.ErrCodeInvalidFormat},
		{"Duplicate", `[{"order_id": 1, "talent_type": "PASSIVE"}, {"order_id": 1, "talent_type": "ACTIVE"}]`, Options{}, errors.ErrCodeInvalidInput},
		{"InfiniteRow", "- order_id: 1\n  talent_type: PASSIVE\n  row: .inf\n", Options{}, errors.ErrCodeInvalidInput},
		{"BadUnit", treeJSON, Options{Unit: "hex"}, errors.ErrCodeInvalidInput},
		{"BadFormat", treeJSON, Options{Formats: []string{"svg"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), []byte(tt.payload), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDrag(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	nodes, err := r.Decode(ctx, []byte(treeJSON), Options{})
	if err != nil {
		t.Fatal(err)
	}

	moved, l, err := r.Drag(ctx, nodes, 3, graph.Position{X: 100, Y: 60}, Options{})
	if err != nil {
		t.Fatalf("Drag() error = %v", err)
	}
	if moved[2].Row != 2 || moved[2].Column != 4 {
		t.Errorf("dragged talent at (%g, %g), want (2, 4)", moved[2].Row, moved[2].Column)
	}
	if nodes[2].Row != 1 || nodes[2].Column != 0 {
		t.Error("Drag() modified its input")
	}
	n, ok := l.Node("n3")
	if !ok || n.Position != (graph.Position{X: 100, Y: 60}) {
		t.Errorf("relaid node n3 = %+v", n.Position)
	}

	if _, _, err := r.Drag(ctx, nodes, 99, graph.Position{}, Options{}); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Drag(99) error = %v, want NOT_FOUND", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	layout []observability.LayoutStats
	drags  int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, _ string, s observability.LayoutStats, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layout = append(h.layout, s)
}

func (h *recordingHooks) OnDrag(context.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drags++
}

func TestHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), []byte(treeJSON), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.Drag(context.Background(), res.Tree, 1, graph.Position{}, Options{}); err != nil {
		t.Fatal(err)
	}

	if len(hooks.layout) != 2 {
		t.Fatalf("OnLayoutComplete called %d times, want 2", len(hooks.layout))
	}
	if hooks.layout[0].Nodes != 7 || hooks.layout[0].Dividers != 1 {
		t.Errorf("layout stats = %+v", hooks.layout[0])
	}
	if hooks.drags != 1 {
		t.Errorf("OnDrag called %d times, want 1", hooks.drags)
	}
}

func TestRunnerConcurrentLayout(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	shared := NewRunner(fc, nil, nil)
	fresh := NewRunner(nil, nil, nil)

	nodes, err := fresh.Decode(ctx, []byte(treeJSON), Options{})
	if err != nil {
		t.Fatal(err)
	}
	units := []string{"grid", "cell"}
	want := map[string]graph.Graph{}
	for _, u := range units {
		l, err := fresh.Layout(ctx, nodes, Options{Unit: u})
		if err != nil {
			t.Fatal(err)
		}
		want[u] = l.Canonical()
	}

	var wg sync.WaitGroup
	for i := range 24 {
		wg.Add(1)
		go func(unit string) {
			defer wg.Done()
			l, err := shared.Layout(ctx, nodes, Options{Unit: unit})
			if err != nil {
				t.Errorf("Layout(%s) error = %v", unit, err)
				return
			}
			if !reflect.DeepEqual(l.Canonical(), want[unit]) {
				t.Errorf("Layout(%s) differs from an uncached run", unit)
			}
		}(units[i%len(units)])
	}
	wg.Wait()
}

func TestRunnerScopedKeyer(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, cache.NewScopedKeyer(nil, "test:"), nil)
	if _, err := r.Execute(context.Background(), []byte(treeJSON), Options{}); err != nil {
		t.Fatal(err)
	}
	for k := range c.data {
		if !strings.HasPrefix(k, "test:") {
			t.Errorf("key %q not scoped", k)
		}
	}
}
