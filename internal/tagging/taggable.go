package tagging

import (
	"context"
	"sync"
	"sync/atomic"
)

// Document là tài liệu có field tags mà Taggable đọc/ghi được
type Document interface {
	GetTags() TagList
	SetTagList(tags TagList)
}

// Taggable là khả năng tagging của một loại tài liệu đã đăng ký:
// chuẩn hóa tags khi ghi, quyết định khi nào tính lại bảng tổng hợp và tạo truy vấn.
type Taggable struct {
	typeName   string
	parentType string
	store      Store
	runner     Runner
	config     atomic.Pointer[Config]

	aggNameOnce sync.Once
	aggName     string
}

func newTaggable(typeName, parentType string, store Store, runner Runner, cfg Config) *Taggable {
	t := &Taggable{
		typeName:   typeName,
		parentType: parentType,
		store:      store,
		runner:     runner,
	}
	t.config.Store(&cfg)
	return t
}

// TypeName trả về tên loại tài liệu
func (t *Taggable) TypeName() string {
	return t.typeName
}

// ParentType trả về loại cha nếu đây là loại con, ngược lại chuỗi rỗng
func (t *Taggable) ParentType() string {
	return t.parentType
}

// CollectionName trả về tên collection lưu tài liệu
func (t *Taggable) CollectionName() string {
	return t.store.CollectionName()
}

// AggregationCollectionName trả về tên bảng tổng hợp, tính một lần
func (t *Taggable) AggregationCollectionName() string {
	t.aggNameOnce.Do(func() {
		t.aggName = AggregationCollectionName(t.store.CollectionName())
	})
	return t.aggName
}

// Config trả về bản sao cấu hình hiện tại
func (t *Taggable) Config() Config {
	return t.config.Load().clone()
}

// Reconfigure áp dụng override lên cấu hình hiện tại (thao tác quản trị, ví dụ bật tổng hợp)
func (t *Taggable) Reconfigure(opts ...Option) error {
	cfg := t.Config().Derive(opts...)
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.config.Store(&cfg)
	return nil
}

// Normalize chuẩn hóa input theo separator của loại tài liệu
func (t *Taggable) Normalize(input any) (TagList, error) {
	return Normalize(input, t.config.Load().Separator)
}

// SetTags chuẩn hóa input rồi gán vào tài liệu. Không có cách gán thô.
func (t *Taggable) SetTags(doc Document, input any) error {
	tags, err := t.Normalize(input)
	if err != nil {
		return err
	}
	doc.SetTagList(tags)
	return nil
}

// BeforeSave loại trùng lần cuối khi field tags thay đổi, phòng trường hợp danh sách
// bị sửa trực tiếp sau SetTags.
func (t *Taggable) BeforeSave(doc Document, changed bool) {
	if !changed {
		return
	}
	doc.SetTagList(Dedup(doc.GetTags()))
}

// AfterCreate tính lại bảng tổng hợp nếu đã bật
func (t *Taggable) AfterCreate(ctx context.Context) error {
	if !t.config.Load().AggregationEnabled {
		return nil
	}
	return t.trigger(ctx)
}

// AfterSave tính lại bảng tổng hợp nếu đã bật và field tags thay đổi
func (t *Taggable) AfterSave(ctx context.Context, changed bool) error {
	if !t.config.Load().AggregationEnabled || !changed {
		return nil
	}
	return t.trigger(ctx)
}

// AfterDestroy tính lại bảng tổng hợp nếu đã bật
func (t *Taggable) AfterDestroy(ctx context.Context) error {
	if !t.config.Load().AggregationEnabled {
		return nil
	}
	return t.trigger(ctx)
}
