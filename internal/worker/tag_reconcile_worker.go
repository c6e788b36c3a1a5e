package worker

import (
	"context"
	"time"

	"doc_tagging/internal/logger"
	"doc_tagging/internal/tagging"
)

// TagReconcileWorker định kỳ tính lại mọi bảng tổng hợp tags đang bật.
// Dùng để sửa sai lệch khi tài liệu bị ghi trực tiếp vào MongoDB, không qua service.
type TagReconcileWorker struct {
	registry *tagging.Registry
	interval time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewTagReconcileWorker tạo mới TagReconcileWorker. interval <= 0 trả về nil (worker tắt).
func NewTagReconcileWorker(reg *tagging.Registry, interval time.Duration) *TagReconcileWorker {
	if reg == nil || interval <= 0 {
		return nil
	}
	return &TagReconcileWorker{registry: reg, interval: interval}
}

// Start chạy vòng lặp cho tới khi ctx bị hủy
func (w *TagReconcileWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🏷️ [TAG_RECONCILE] Starting Tag Reconcile Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🏷️ [TAG_RECONCILE] Tag Reconcile Worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce tính lại từng bảng tổng hợp một lần, trả về số bảng thành công.
// Lỗi của một bảng không chặn các bảng còn lại.
func (w *TagReconcileWorker) RunOnce(ctx context.Context) (done int) {
	log := logger.GetAppLogger()
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🏷️ [TAG_RECONCILE] Panic khi đối soát, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	targets := w.registry.AggregationTargets()
	for _, t := range targets {
		if ctx.Err() != nil {
			return done
		}
		if err := t.Aggregate(ctx); err != nil {
			log.WithError(err).WithFields(map[string]interface{}{
				"type":       t.TypeName(),
				"collection": t.AggregationCollectionName(),
			}).Warn("🏷️ [TAG_RECONCILE] Tính lại thất bại, sẽ thử lại lần sau")
			continue
		}
		done++
	}

	if done > 0 {
		log.WithFields(map[string]interface{}{
			"done":  done,
			"total": len(targets),
		}).Debug("🏷️ [TAG_RECONCILE] Đã đối soát bảng tổng hợp tags")
	}
	return done
}
