package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTaggedWith(t *testing.T) {
	tg, err := NewRegistry(nil).Register("Note", newMemStore("notes"))
	require.NoError(t, err)

	q, err := tg.TaggedWith([]string{"tag1", "tag2"})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"tags": bson.M{"$all": []string{"tag1", "tag2"}}}, q.Filter())

	q, err = tg.TaggedWith(" tag1 ,tag2 ")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"tags": bson.M{"$all": []string{"tag1", "tag2"}}}, q.Filter())
}

func TestTaggedWith_ComposesWithOtherPredicates(t *testing.T) {
	tg, err := NewRegistry(nil).Register("Note", newMemStore("notes"), WithField("labels"), WithSeparator("|"))
	require.NoError(t, err)

	q, err := tg.TaggedWith("a|b")
	require.NoError(t, err)
	q.Where("kind", "review").And(bson.M{"title": bson.M{"$regex": "^Go"}}).Sort("createdAt", -1).Limit(10).Skip(5)

	assert.Equal(t, bson.M{"$and": bson.A{
		bson.M{"labels": bson.M{"$all": []string{"a", "b"}}},
		bson.M{"kind": "review"},
		bson.M{"title": bson.M{"$regex": "^Go"}},
	}}, q.Filter())

	opts := q.FindOptions()
	require.NotNil(t, opts.Limit)
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, int64(5), *opts.Skip)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
}

func TestTaggedWith_EmptyInput(t *testing.T) {
	tg, err := NewRegistry(nil).Register("Note", newMemStore("notes"))
	require.NoError(t, err)

	q, err := tg.TaggedWith("")
	require.NoError(t, err)
	assert.Equal(t, bson.M{"tags": bson.M{"$all": []string{}}}, q.Filter())
}

func TestQuery_EmptyFilter(t *testing.T) {
	q := NewQuery().And(nil)
	assert.Equal(t, bson.M{}, q.Filter())
	opts := q.FindOptions()
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Sort)
}
