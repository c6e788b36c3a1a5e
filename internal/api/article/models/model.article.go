// Package models - Article thuộc domain content (content_articles).
// Article và Review dùng chung collection, phân biệt bằng Kind.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc_tagging/internal/tagging"
)

// Các loại tài liệu lưu trong content_articles
const (
	KindArticle = "article"
	KindReview  = "review"
)

// Tên loại đăng ký tagging tương ứng với Kind
const (
	TypeArticle = "Article"
	TypeReview  = "Review"
)

// Article lưu bài viết hoặc review (content_articles).
type Article struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Kind  string          `json:"kind" bson:"kind" index:"single"`
	Title string          `json:"title" bson:"title" index:"text"`
	Body  string          `json:"body" bson:"body"`
	Tags  tagging.TagList `json:"tags" bson:"tags"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// GetTags trả về danh sách tags hiện tại
func (a *Article) GetTags() tagging.TagList {
	return a.Tags
}

// SetTagList gán danh sách tags đã chuẩn hóa
func (a *Article) SetTagList(tags tagging.TagList) {
	a.Tags = tags
}

// TypeNameForKind trả về tên loại tagging của một Kind; Kind rỗng là bài viết
func TypeNameForKind(kind string) string {
	switch kind {
	case "", KindArticle:
		return TypeArticle
	case KindReview:
		return TypeReview
	default:
		return kind
	}
}
