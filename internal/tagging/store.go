package tagging

import "context"

// TagWeight là một dòng của bảng tổng hợp: tag và số tài liệu đang mang tag đó
type TagWeight struct {
	Tag   string `json:"tag" bson:"_id"`
	Count int    `json:"count" bson:"value"`
}

// Store là nơi lưu tài liệu của một collection và bảng tổng hợp tags của nó.
// MongoStore là implementation thật, CachedStore bọc thêm cache cho phần đọc.
type Store interface {
	// CollectionName trả về tên collection chứa tài liệu
	CollectionName() string

	// RecomputeTagCounts đếm, trên toàn collection, số tài liệu chứa mỗi giá trị của
	// field mảng và thay thế toàn bộ collection out bằng kết quả.
	RecomputeTagCounts(ctx context.Context, field, out string, opts map[string]interface{}) error

	// ReadTagCounts đọc collection out, sắp xếp theo tag tăng dần.
	// Collection chưa tồn tại được coi là rỗng.
	ReadTagCounts(ctx context.Context, out string) ([]TagWeight, error)
}
