package tagging

import (
	"context"
	"time"

	"doc_tagging/internal/common"
	"doc_tagging/internal/logger"
)

// AggregationSuffix là hậu tố của collection chứa bảng tổng hợp
const AggregationSuffix = "_tags_aggregation"

// AggregationCollectionName trả về tên collection tổng hợp của một collection
func AggregationCollectionName(collection string) string {
	return collection + AggregationSuffix
}

// Aggregate tính lại toàn bộ bảng tổng hợp từ trạng thái hiện tại của collection.
// Không phụ thuộc cờ AggregationEnabled; chạy lặp lại nhiều lần cho cùng kết quả.
func (t *Taggable) Aggregate(ctx context.Context) error {
	cfg := t.Config()
	out := t.AggregationCollectionName()
	collection := t.store.CollectionName()

	start := time.Now()
	err := t.store.RecomputeTagCounts(ctx, cfg.TagsField, out, cfg.AggregationOptions)
	AggregationHistogram.WithLabelValues(collection).Observe(time.Since(start).Seconds())

	if err != nil {
		AggregationCounter.WithLabelValues(collection, "error").Inc()
		logger.WithModuleAndCollection("tagging", collection).WithError(err).Error("Tính lại bảng tổng hợp tags thất bại")
		return common.WithDetails(common.ErrAggregationFailed, err)
	}
	AggregationCounter.WithLabelValues(collection, "ok").Inc()
	logger.WithModuleAndCollection("tagging", collection).WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Đã tính lại bảng tổng hợp tags")
	return nil
}

// Tags trả về danh sách tag trong bảng tổng hợp, sắp xếp tăng dần.
// Bảng chưa từng được tính trả về danh sách rỗng.
func (t *Taggable) Tags(ctx context.Context) ([]string, error) {
	weights, err := t.TagsWithWeight(ctx)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(weights))
	for i, w := range weights {
		tags[i] = w.Tag
	}
	return tags, nil
}

// TagsWithWeight trả về các cặp (tag, số tài liệu), sắp xếp theo tag tăng dần
func (t *Taggable) TagsWithWeight(ctx context.Context) ([]TagWeight, error) {
	return t.store.ReadTagCounts(ctx, t.AggregationCollectionName())
}

// trigger gửi một lần tính lại qua runner, key là tên bảng tổng hợp
// nên các loại con dùng chung collection gộp chung trigger.
func (t *Taggable) trigger(ctx context.Context) error {
	return t.runner.Trigger(ctx, t.AggregationCollectionName(), t.Aggregate)
}
