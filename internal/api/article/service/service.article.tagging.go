package articlesvc

import (
	articlemodels "doc_tagging/internal/api/article/models"
	"doc_tagging/internal/tagging"
)

// RegisterTaggables đăng ký Article và Review (loại con dùng chung content_articles).
// Article bật tổng hợp tags và index trên field tags.
func RegisterTaggables(reg *tagging.Registry, store tagging.Store) error {
	if _, err := reg.Register(articlemodels.TypeArticle, store,
		tagging.WithAggregation(true),
		tagging.WithAggregationOptions(map[string]interface{}{"allowDiskUse": true, "comment": "content_articles tags"}),
		tagging.WithFieldOption("index", "single"),
	); err != nil {
		return err
	}
	if _, err := reg.RegisterSubtype(articlemodels.TypeReview, articlemodels.TypeArticle); err != nil {
		return err
	}
	return nil
}

// NewTaggingHooks nối tagging vào base service, chọn loại theo Kind của từng tài liệu
func NewTaggingHooks(reg *tagging.Registry) *tagging.Hooks[articlemodels.Article, *articlemodels.Article] {
	return tagging.NewHooks[articlemodels.Article](func(doc *articlemodels.Article) (*tagging.Taggable, error) {
		return reg.Get(articlemodels.TypeNameForKind(doc.Kind))
	})
}
