package tagging

import (
	"fmt"
	"strings"

	"doc_tagging/internal/common"
)

// Giá trị mặc định cho một loại tài liệu được đăng ký tagging
const (
	DefaultTagsField = "tags"
	DefaultSeparator = ","
)

// Config là cấu hình tagging của một loại tài liệu
type Config struct {
	TagsField          string                 // Tên field lưu danh sách tags
	Separator          string                 // Ký tự phân cách khi tags được nhập dạng chuỗi
	AggregationEnabled bool                   // Bật tính lại bảng tổng hợp sau mỗi thay đổi
	AggregationOptions map[string]interface{} // Chuyển tiếp cho lệnh aggregate (allowDiskUse, maxTimeMS, comment, batchSize)
	FieldOptions       map[string]string      // Chuyển tiếp nguyên trạng cho khai báo field (index hints)
}

// Option thay đổi Config khi đăng ký
type Option func(*Config)

// WithField đổi tên field lưu tags
func WithField(name string) Option {
	return func(c *Config) { c.TagsField = name }
}

// WithSeparator đổi ký tự phân cách
func WithSeparator(sep string) Option {
	return func(c *Config) { c.Separator = sep }
}

// WithAggregation bật/tắt tính lại bảng tổng hợp
func WithAggregation(enabled bool) Option {
	return func(c *Config) { c.AggregationEnabled = enabled }
}

// WithAggregationOptions gộp thêm các option cho lệnh aggregate
func WithAggregationOptions(opts map[string]interface{}) Option {
	return func(c *Config) {
		for k, v := range opts {
			c.AggregationOptions[k] = v
		}
	}
}

// WithFieldOption thêm một option cho khai báo field, ví dụ ("index", "single")
func WithFieldOption(key, value string) Option {
	return func(c *Config) { c.FieldOptions[key] = value }
}

// DefaultConfig trả về cấu hình mặc định: field "tags", phân cách ",", tắt tổng hợp
func DefaultConfig() Config {
	return Config{
		TagsField:          DefaultTagsField,
		Separator:          DefaultSeparator,
		AggregationEnabled: false,
		AggregationOptions: map[string]interface{}{},
		FieldOptions:       map[string]string{},
	}
}

// NewConfig tạo Config từ mặc định và các option
func NewConfig(opts ...Option) Config {
	return DefaultConfig().Derive(opts...)
}

// Derive sao chép cấu hình rồi áp dụng override. Cấu hình gốc không bị thay đổi.
func (c Config) Derive(opts ...Option) Config {
	out := c.clone()
	for _, opt := range opts {
		opt(&out)
	}
	if out.Separator == "" {
		out.Separator = DefaultSeparator
	}
	return out
}

// Validate kiểm tra field name có dùng được trong pipeline hay không
func (c Config) Validate() error {
	if strings.TrimSpace(c.TagsField) == "" {
		return common.WithDetails(common.ErrRequiredField, "tags field")
	}
	if strings.HasPrefix(c.TagsField, "$") || strings.Contains(c.TagsField, " ") {
		return common.WithDetails(common.ErrInvalidFormat, fmt.Sprintf("tags field không hợp lệ: %q", c.TagsField))
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.AggregationOptions = make(map[string]interface{}, len(c.AggregationOptions))
	for k, v := range c.AggregationOptions {
		out.AggregationOptions[k] = v
	}
	out.FieldOptions = make(map[string]string, len(c.FieldOptions))
	for k, v := range c.FieldOptions {
		out.FieldOptions[k] = v
	}
	return out
}
