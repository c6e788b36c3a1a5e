package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseIndexTag(t *testing.T) {
	got := parseIndexTag("single,order:-1;unique,sparse")
	assert.Equal(t, []map[string]string{
		{"single": "", "order": "-1"},
		{"unique": "", "sparse": ""},
	}, got)
	assert.Empty(t, parseIndexTag(""))
}

func TestIndexSpecsFromHints(t *testing.T) {
	specs, err := IndexSpecsFromHints("tags", map[string]string{"index": "single", "order": "-1"})
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "tags_single", specs[0].Name)
	assert.Equal(t, bson.D{{Key: "tags", Value: -1}}, specs[0].Keys)

	specs, err = IndexSpecsFromHints("tags", map[string]string{"index": "single|text"})
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, "tags_text", specs[0].Name)
	assert.Equal(t, bson.D{{Key: "tags", Value: "text"}}, specs[0].Keys)
	assert.Equal(t, bson.D{{Key: "tags", Value: 1}}, specs[1].Keys)

	specs, err = IndexSpecsFromHints("tags", map[string]string{"order": "-1"})
	require.NoError(t, err)
	assert.Empty(t, specs)

	_, err = IndexSpecsFromHints("expiresAt", map[string]string{"index": "ttl", "ttl": "abc"})
	assert.Error(t, err)
}

func TestSameIndex(t *testing.T) {
	specs, err := IndexSpecsFromHints("tags", map[string]string{"index": "unique"})
	require.NoError(t, err)
	spec := specs[0]

	assert.True(t, sameIndex(bson.M{"name": "tags_unique", "key": bson.M{"tags": int32(1)}, "unique": true}, spec))
	assert.False(t, sameIndex(bson.M{"name": "tags_unique", "key": bson.M{"tags": int32(1)}}, spec))
	assert.False(t, sameIndex(bson.M{"name": "tags_unique", "key": bson.M{"tags": int32(-1)}, "unique": true}, spec))

	text, err := IndexSpecsFromHints("tags", map[string]string{"index": "text"})
	require.NoError(t, err)
	assert.True(t, sameIndex(bson.M{"name": "tags_text", "key": bson.M{"_fts": "text", "_ftsx": int32(1)}, "textIndexVersion": int32(3)}, text[0]))
}
