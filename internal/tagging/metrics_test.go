package tagging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateMetrics(t *testing.T) {
	store := newMemStore("metrics_notes")
	tg, err := NewRegistry(nil).Register("MetricsNote", store, WithAggregation(true))
	require.NoError(t, err)

	ok := AggregationCounter.WithLabelValues("metrics_notes", "ok")
	failed := AggregationCounter.WithLabelValues("metrics_notes", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	require.NoError(t, tg.Aggregate(context.Background()))
	store.failWith = errors.New("boom")
	require.Error(t, tg.Aggregate(context.Background()))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestCacheMetrics(t *testing.T) {
	cached := NewCachedStore(newMemStore("cache_metrics"), 10, time.Minute)
	defer cached.Stop()

	hit := CacheRequestCounter.WithLabelValues("hit")
	miss := CacheRequestCounter.WithLabelValues("miss")
	hitBefore, missBefore := testutil.ToFloat64(hit), testutil.ToFloat64(miss)

	_, err := cached.ReadTagCounts(context.Background(), "cache_metrics_tags_aggregation")
	require.NoError(t, err)
	_, err = cached.ReadTagCounts(context.Background(), "cache_metrics_tags_aggregation")
	require.NoError(t, err)

	assert.Equal(t, missBefore+1, testutil.ToFloat64(miss))
	assert.Equal(t, hitBefore+1, testutil.ToFloat64(hit))
}

func TestMetricsRegistered(t *testing.T) {
	families, err := Gather.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "doc_tagging_aggregation_runs_total")
}
