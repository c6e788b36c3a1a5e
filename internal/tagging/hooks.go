package tagging

import "context"

// Hooks nối Taggable vào lifecycle của base service.
// Resolve chọn Taggable theo từng tài liệu, ví dụ theo field Kind khi nhiều loại
// dùng chung một collection.
type Hooks[T any, PT interface {
	*T
	Document
}] struct {
	Resolve func(doc *T) (*Taggable, error)
}

// NewHooks tạo Hooks với hàm chọn Taggable
func NewHooks[T any, PT interface {
	*T
	Document
}](resolve func(doc *T) (*Taggable, error)) *Hooks[T, PT] {
	return &Hooks[T, PT]{Resolve: resolve}
}

// BeforeSave chạy lượt loại trùng khi field tags nằm trong danh sách field thay đổi
func (h *Hooks[T, PT]) BeforeSave(ctx context.Context, doc *T, changedFields []string) error {
	t, err := h.Resolve(doc)
	if err != nil {
		return err
	}
	t.BeforeSave(PT(doc), fieldChanged(changedFields, t.config.Load().TagsField))
	return nil
}

// AfterCreate tính lại bảng tổng hợp nếu đã bật
func (h *Hooks[T, PT]) AfterCreate(ctx context.Context, doc *T) error {
	t, err := h.Resolve(doc)
	if err != nil {
		return err
	}
	return t.AfterCreate(ctx)
}

// AfterSave tính lại bảng tổng hợp nếu đã bật và field tags thay đổi
func (h *Hooks[T, PT]) AfterSave(ctx context.Context, doc *T, changedFields []string) error {
	t, err := h.Resolve(doc)
	if err != nil {
		return err
	}
	return t.AfterSave(ctx, fieldChanged(changedFields, t.config.Load().TagsField))
}

// AfterDestroy tính lại bảng tổng hợp nếu đã bật
func (h *Hooks[T, PT]) AfterDestroy(ctx context.Context, doc *T) error {
	t, err := h.Resolve(doc)
	if err != nil {
		return err
	}
	return t.AfterDestroy(ctx)
}

func fieldChanged(changedFields []string, field string) bool {
	for _, f := range changedFields {
		if f == field {
			return true
		}
	}
	return false
}
