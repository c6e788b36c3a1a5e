package articlesvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	articlemodels "doc_tagging/internal/api/article/models"
	"doc_tagging/internal/common"
	"doc_tagging/internal/tagging"
)

// countingStore chỉ đếm số lần tính lại, không cần MongoDB. err != nil giả lập tính lại thất bại.
type countingStore struct {
	recomputes int
	err        error
}

func (s *countingStore) CollectionName() string { return "content_articles" }

func (s *countingStore) RecomputeTagCounts(ctx context.Context, field, out string, opts map[string]interface{}) error {
	s.recomputes++
	return s.err
}

func (s *countingStore) ReadTagCounts(ctx context.Context, out string) ([]tagging.TagWeight, error) {
	return []tagging.TagWeight{}, nil
}

func newRegistry(t *testing.T) (*tagging.Registry, *countingStore) {
	t.Helper()
	store := &countingStore{}
	reg := tagging.NewRegistry(nil)
	require.NoError(t, RegisterTaggables(reg, store))
	return reg, store
}

func TestRegisterTaggables(t *testing.T) {
	reg, _ := newRegistry(t)

	article, err := reg.Get(articlemodels.TypeArticle)
	require.NoError(t, err)
	review, err := reg.Get(articlemodels.TypeReview)
	require.NoError(t, err)

	assert.True(t, article.Config().AggregationEnabled)
	assert.True(t, review.Config().AggregationEnabled)
	assert.Equal(t, "single", article.Config().FieldOptions["index"])
	assert.Equal(t, "content_articles_tags_aggregation", review.AggregationCollectionName())
	assert.Len(t, reg.AggregationTargets(), 1)
}

func TestTaggingHooks_ResolveByKind(t *testing.T) {
	reg, store := newRegistry(t)
	hooks := NewTaggingHooks(reg)

	review := &articlemodels.Article{Kind: articlemodels.KindReview, Tags: tagging.TagList{"x", "X"}}
	require.NoError(t, hooks.BeforeSave(context.Background(), review, []string{"kind", "tags", "title"}))
	assert.Equal(t, tagging.TagList{"x"}, review.Tags)

	require.NoError(t, hooks.AfterSave(context.Background(), review, []string{"title"}))
	assert.Equal(t, 0, store.recomputes)
	require.NoError(t, hooks.AfterCreate(context.Background(), review))
	assert.Equal(t, 1, store.recomputes)

	err := hooks.AfterDestroy(context.Background(), &articlemodels.Article{Kind: "podcast"})
	assert.ErrorIs(t, err, common.ErrNotConfigured)
}

func TestTaggedWithQuery(t *testing.T) {
	reg, _ := newRegistry(t)
	svc := NewArticleServiceWith(nil, reg)

	q, err := svc.TaggedWithQuery(articlemodels.KindReview, "go, mongo")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"tags": bson.M{"$all": []string{"go", "mongo"}}},
		bson.M{"kind": "review"},
	}}, q.Filter())

	q, err = svc.TaggedWithQuery("", []string{"go"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"tags": bson.M{"$all": []string{"go"}}}, q.Filter())
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, q.FindOptions().Sort)
}

func TestTypeNameForKind(t *testing.T) {
	assert.Equal(t, articlemodels.TypeArticle, articlemodels.TypeNameForKind(""))
	assert.Equal(t, articlemodels.TypeArticle, articlemodels.TypeNameForKind(articlemodels.KindArticle))
	assert.Equal(t, articlemodels.TypeReview, articlemodels.TypeNameForKind(articlemodels.KindReview))
}
