package tagging

import (
	"fmt"
	"sort"

	"doc_tagging/internal/common"
	"doc_tagging/internal/registry"
)

// Registry quản lý các loại tài liệu đã đăng ký tagging theo tên loại
type Registry struct {
	types  *registry.Registry[*Taggable]
	runner Runner
}

// NewRegistry tạo registry; runner nil nghĩa là SyncRunner
func NewRegistry(runner Runner) *Registry {
	if runner == nil {
		runner = SyncRunner{}
	}
	return &Registry{
		types:  registry.NewRegistry[*Taggable](),
		runner: runner,
	}
}

// Register đăng ký một loại tài liệu gốc với store của nó
func (r *Registry) Register(typeName string, store Store, opts ...Option) (*Taggable, error) {
	if store == nil {
		return nil, common.WithDetails(common.ErrRequiredField, "store")
	}
	cfg := NewConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := newTaggable(typeName, "", store, r.runner, cfg)
	if _, err := r.types.Register(typeName, t); err != nil {
		return nil, err
	}
	return t, nil
}

// RegisterSubtype đăng ký loại con dùng chung store (và bảng tổng hợp) với loại cha.
// Cấu hình được kế thừa từ loại cha rồi áp dụng override; loại cha không bị ảnh hưởng.
func (r *Registry) RegisterSubtype(typeName, parentType string, opts ...Option) (*Taggable, error) {
	parent, err := r.Get(parentType)
	if err != nil {
		return nil, err
	}
	cfg := parent.Config().Derive(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := newTaggable(typeName, parentType, parent.store, r.runner, cfg)
	if _, err := r.types.Register(typeName, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get lấy Taggable theo tên loại, trả common.ErrNotConfigured nếu chưa đăng ký
func (r *Registry) Get(typeName string) (*Taggable, error) {
	t, ok := r.types.Get(typeName)
	if !ok {
		return nil, common.WithDetails(common.ErrNotConfigured, fmt.Sprintf("loại tài liệu: %s", typeName))
	}
	return t, nil
}

// ForCollection trả về các loại lưu trong collection, theo tên loại tăng dần
func (r *Registry) ForCollection(collection string) []*Taggable {
	var out []*Taggable
	for _, t := range r.All() {
		if t.CollectionName() == collection {
			out = append(out, t)
		}
	}
	return out
}

// All trả về tất cả các loại đã đăng ký, theo tên loại tăng dần
func (r *Registry) All() []*Taggable {
	names := r.types.Names()
	out := make([]*Taggable, 0, len(names))
	for _, name := range names {
		if t, ok := r.types.Get(name); ok {
			out = append(out, t)
		}
	}
	return out
}

// AggregationTargets trả về mỗi bảng tổng hợp một Taggable đại diện, chỉ lấy các loại
// đang bật tổng hợp. Loại gốc được ưu tiên làm đại diện.
func (r *Registry) AggregationTargets() []*Taggable {
	byOut := make(map[string]*Taggable)
	for _, t := range r.All() {
		if !t.Config().AggregationEnabled {
			continue
		}
		out := t.AggregationCollectionName()
		if existing, ok := byOut[out]; !ok || (existing.parentType != "" && t.parentType == "") {
			byOut[out] = t
		}
	}

	targets := make([]*Taggable, 0, len(byOut))
	for _, t := range byOut {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].AggregationCollectionName() < targets[j].AggregationCollectionName()
	})
	return targets
}
