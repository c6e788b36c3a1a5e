// Package articlesvc chứa logic nghiệp vụ cho bài viết và review.
package articlesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	basemodels "doc_tagging/internal/api/base/models"
	basesvc "doc_tagging/internal/api/base/service"
	articledto "doc_tagging/internal/api/article/dto"
	articlemodels "doc_tagging/internal/api/article/models"
	"doc_tagging/internal/common"
	"doc_tagging/internal/global"
	"doc_tagging/internal/tagging"
)

// ArticleService là service quản lý content_articles
type ArticleService struct {
	*basesvc.BaseServiceMongoImpl[articlemodels.Article]
	taggables *tagging.Registry
}

// NewArticleService tạo ArticleService từ collection và registry đã khởi tạo trong global
func NewArticleService() (*ArticleService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.ContentArticles)
	if !exist {
		return nil, fmt.Errorf("failed to get %s collection: %w", global.MongoDB_ColNames.ContentArticles, common.ErrNotFound)
	}
	if global.TaggingRegistry == nil {
		return nil, fmt.Errorf("tagging registry chưa khởi tạo: %w", common.ErrNotConfigured)
	}
	return NewArticleServiceWith(collection, global.TaggingRegistry), nil
}

// NewArticleServiceWith tạo ArticleService với collection và registry cụ thể
func NewArticleServiceWith(collection *mongo.Collection, taggables *tagging.Registry) *ArticleService {
	base := basesvc.NewBaseServiceMongo[articlemodels.Article](collection)
	base.SetHooks(NewTaggingHooks(taggables))
	return &ArticleService{
		BaseServiceMongoImpl: base,
		taggables:            taggables,
	}
}

// Create tạo bài viết; tags được chuẩn hóa trước khi lưu.
// Nếu tính lại bảng tổng hợp thất bại, bài viết vẫn được trả về cùng lỗi.
func (s *ArticleService) Create(ctx context.Context, input *articledto.ArticleCreateInput) (*articlemodels.Article, error) {
	kind := input.Kind
	if kind == "" {
		kind = articlemodels.KindArticle
	}
	t, err := s.taggables.Get(articlemodels.TypeNameForKind(kind))
	if err != nil {
		return nil, err
	}

	doc := articlemodels.Article{
		Kind:  kind,
		Title: input.Title,
		Body:  input.Body,
	}
	if err := t.SetTags(&doc, input.Tags); err != nil {
		return nil, err
	}

	created, err := s.InsertOne(ctx, doc)
	if created.ID.IsZero() {
		return nil, err
	}
	return &created, err
}

// Get lấy bài viết theo id
func (s *ArticleService) Get(ctx context.Context, id primitive.ObjectID) (*articlemodels.Article, error) {
	doc, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update cập nhật các field được gửi lên. Tags gửi lên được chuẩn hóa theo loại của bài viết.
func (s *ArticleService) Update(ctx context.Context, id primitive.ObjectID, input *articledto.ArticleUpdateInput) (*articlemodels.Article, error) {
	existing, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	t, err := s.taggables.Get(articlemodels.TypeNameForKind(existing.Kind))
	if err != nil {
		return nil, err
	}

	set := map[string]interface{}{}
	if input.Title != nil {
		set["title"] = *input.Title
	}
	if input.Body != nil {
		set["body"] = *input.Body
	}
	if input.Tags != nil {
		probe := existing
		if err := t.SetTags(&probe, input.Tags); err != nil {
			return nil, err
		}
		set[t.Config().TagsField] = probe.Tags
	}
	if len(set) == 0 {
		return &existing, nil
	}

	updated, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: set})
	if updated.ID.IsZero() {
		return nil, err
	}
	return &updated, err
}

// Delete xóa bài viết
func (s *ArticleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.DeleteById(ctx, id)
}

// FindTaggedWith tìm bài viết chứa tất cả tags, lọc thêm theo kind nếu có, mới nhất trước
func (s *ArticleService) FindTaggedWith(ctx context.Context, kind string, tags interface{}, page, limit int64) (*basemodels.PaginateResult[articlemodels.Article], error) {
	q, err := s.TaggedWithQuery(kind, tags)
	if err != nil {
		return nil, err
	}
	return s.FindWithPagination(ctx, q.Filter(), page, limit, q.FindOptions())
}

// TaggedWithQuery dựng truy vấn tagged-with cho kind
func (s *ArticleService) TaggedWithQuery(kind string, tags interface{}) (*tagging.Query, error) {
	t, err := s.taggables.Get(articlemodels.TypeNameForKind(kind))
	if err != nil {
		return nil, err
	}
	q, err := t.TaggedWith(tags)
	if err != nil {
		return nil, err
	}
	if kind != "" {
		q.Where("kind", kind)
	}
	return q.Sort("createdAt", -1), nil
}
