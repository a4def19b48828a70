package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/observability"
)

func TestPipelineHooks(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnLayoutComplete(ctx, "grid", observability.LayoutStats{Nodes: 12, Diagnostics: 2}, time.Millisecond, nil)
	m.OnLayoutComplete(ctx, "cell", observability.LayoutStats{}, time.Millisecond, errors.New("bad"))
	m.OnDecodeComplete(ctx, 12, time.Millisecond, nil)
	m.OnDrag(ctx, nil)
	m.OnDrag(ctx, errors.New("not found"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.layouts.WithLabelValues("grid", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.layouts.WithLabelValues("cell", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.diagnostics))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.drags.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.layoutNodes))
}

func TestCacheHooks(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	m.OnCacheMiss(ctx, "layout")
	m.OnCacheSet(ctx, "layout", 512)
	m.OnCacheHit(ctx, "layout")
	m.OnCacheHit(ctx, "layout")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheOps.WithLabelValues("layout", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheOps.WithLabelValues("layout", "miss")))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.cacheBytes.WithLabelValues("layout")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.OnRequest(context.Background(), "POST", "/v1/layout", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `ttm_http_requests_total{method="POST",route="/v1/layout",status="200"} 1`))
}

func TestInstall(t *testing.T) {
	defer observability.Reset()
	m := New(prometheus.NewRegistry())
	m.Install()

	assert.Same(t, m, observability.Pipeline())
	assert.Same(t, m, observability.Cache())
	assert.Same(t, m, observability.Server())
}
