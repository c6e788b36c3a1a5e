package tagging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"doc_tagging/internal/common"
)

func TestBuildTagCountPipeline(t *testing.T) {
	got := BuildTagCountPipeline("tags", "notes_tags_aggregation")
	want := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "tags", Value: bson.D{
			{Key: "$exists", Value: true},
			{Key: "$type", Value: "array"},
		}}}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "value", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$out", Value: "notes_tags_aggregation"}},
	}
	assert.Equal(t, want, got)
}

func TestBuildAggregateOptions(t *testing.T) {
	opts, err := BuildAggregateOptions(map[string]interface{}{
		"allowDiskUse": true,
		"maxTimeMS":    1500,
		"comment":      "tags",
		"batchSize":    int64(200),
	})
	require.NoError(t, err)
	require.NotNil(t, opts.AllowDiskUse)
	assert.True(t, *opts.AllowDiskUse)
	require.NotNil(t, opts.MaxTime)
	assert.Equal(t, 1500*time.Millisecond, *opts.MaxTime)
	require.NotNil(t, opts.BatchSize)
	assert.Equal(t, int32(200), *opts.BatchSize)

	_, err = BuildAggregateOptions(map[string]interface{}{"allowDiskUse": "yes"})
	assert.ErrorIs(t, err, common.ErrInvalidFormat)

	_, err = BuildAggregateOptions(map[string]interface{}{"unknown": 1})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	opts, err = BuildAggregateOptions(nil)
	require.NoError(t, err)
	assert.Nil(t, opts.AllowDiskUse)
}

func TestAggregationCollectionName(t *testing.T) {
	assert.Equal(t, "content_articles_tags_aggregation", AggregationCollectionName("content_articles"))
}

func TestCachedStore(t *testing.T) {
	inner := newMemStore("notes")
	cached := NewCachedStore(inner, 10, time.Minute)
	defer cached.Stop()
	ctx := context.Background()
	out := AggregationCollectionName("notes")

	inner.put("1", TagList{"a"})
	require.NoError(t, cached.RecomputeTagCounts(ctx, "tags", out, nil))

	first, err := cached.ReadTagCounts(ctx, out)
	require.NoError(t, err)
	second, err := cached.ReadTagCounts(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.reads)

	// Tính lại xóa cache, lần đọc sau thấy dữ liệu mới
	inner.put("2", TagList{"b"})
	require.NoError(t, cached.RecomputeTagCounts(ctx, "tags", out, nil))
	third, err := cached.ReadTagCounts(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, []TagWeight{{Tag: "a", Count: 1}, {Tag: "b", Count: 1}}, third)
	assert.Equal(t, 2, inner.reads)

	// Sửa slice trả về không làm hỏng cache
	third[0].Count = 99
	fourth, err := cached.ReadTagCounts(ctx, out)
	require.NoError(t, err)
	assert.Equal(t, 1, fourth[0].Count)

	assert.Equal(t, "notes", cached.CollectionName())
}
