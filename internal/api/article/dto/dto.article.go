// Package dto - DTO cho domain content (article, review).
package dto

// ArticleCreateInput dữ liệu tạo bài viết mới.
// Tags nhận chuỗi phân cách hoặc mảng chuỗi.
type ArticleCreateInput struct {
	Kind  string      `json:"kind" validate:"omitempty,oneof=article review"`
	Title string      `json:"title" validate:"required,max=300,no_xss"`
	Body  string      `json:"body" validate:"omitempty,no_xss"`
	Tags  interface{} `json:"tags" validate:"omitempty,tag_input"`
}

// ArticleUpdateInput dữ liệu cập nhật bài viết. Field nil là không đổi.
type ArticleUpdateInput struct {
	Title *string     `json:"title,omitempty" validate:"omitempty,min=1,max=300,no_xss"`
	Body  *string     `json:"body,omitempty" validate:"omitempty,no_xss"`
	Tags  interface{} `json:"tags,omitempty" validate:"omitempty,tag_input"`
}

// ArticleResponse trả về bài viết.
type ArticleResponse struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
}
