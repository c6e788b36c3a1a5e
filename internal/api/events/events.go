// Package events cung cấp cơ chế event trung tâm khi dữ liệu thay đổi qua CRUD.
// BaseServiceMongoImpl tự động phát event sau mỗi thao tác thành công.
// Logic phản ứng (audit log, metrics, ...) đăng ký qua OnDataChanged.
package events

import (
	"context"
	"sync"

	"doc_tagging/internal/logger"
)

// OpInsert, OpUpdate, OpDelete là các loại thao tác CRUD.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// DataChangeEvent mô tả sự kiện thay đổi dữ liệu.
// Document là bản ghi sau khi thay đổi (bản ghi trước khi xóa nếu delete).
type DataChangeEvent struct {
	CollectionName string
	Operation      string
	ResourceID     string
	ChangedFields  []string
	Document       interface{}
}

// DataChangeHandler xử lý sự kiện thay đổi dữ liệu.
type DataChangeHandler func(ctx context.Context, e DataChangeEvent)

var (
	handlers   []DataChangeHandler
	handlersMu sync.RWMutex
	inFlight   sync.WaitGroup
)

// OnDataChanged đăng ký handler. Gọi khi init.
func OnDataChanged(h DataChangeHandler) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = append(handlers, h)
}

// EmitDataChanged phát sự kiện. Mỗi handler chạy trong goroutine riêng,
// panic được recover để không ảnh hưởng handler khác.
func EmitDataChanged(ctx context.Context, e DataChangeEvent) {
	handlersMu.RLock()
	list := make([]DataChangeHandler, len(handlers))
	copy(list, handlers)
	handlersMu.RUnlock()

	for _, h := range list {
		inFlight.Add(1)
		go func(fn DataChangeHandler) {
			defer inFlight.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.WithModuleAndCollection("events", e.CollectionName).WithField("panic", r).Error("Panic trong data change handler")
				}
			}()
			fn(context.WithoutCancel(ctx), e)
		}(h)
	}
}

// Wait chờ các handler đang chạy kết thúc (dùng khi shutdown và trong test)
func Wait() {
	inFlight.Wait()
}

// Reset xóa toàn bộ handler đã đăng ký
func Reset() {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers = nil
}

// AuditHandler ghi mọi thay đổi vào audit log
func AuditHandler(_ context.Context, e DataChangeEvent) {
	logger.LogDataChange(logger.DataChangeAudit{
		Collection:    e.CollectionName,
		Operation:     e.Operation,
		ResourceID:    e.ResourceID,
		ChangedFields: e.ChangedFields,
	})
}
