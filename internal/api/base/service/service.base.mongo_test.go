package basesvc

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title string   `bson:"title"`
	Tags  []string `bson:"tags"`
}

// upperHooks viết hoa title trong BeforeSave và ghi lại field thay đổi
type upperHooks struct {
	changed []string
}

func (h *upperHooks) BeforeSave(ctx context.Context, doc *sample, changedFields []string) error {
	h.changed = changedFields
	doc.Title = strings.ToUpper(doc.Title)
	return nil
}

func (h *upperHooks) AfterCreate(ctx context.Context, doc *sample) error { return nil }

func (h *upperHooks) AfterSave(ctx context.Context, doc *sample, changedFields []string) error {
	return nil
}

func (h *upperHooks) AfterDestroy(ctx context.Context, doc *sample) error { return nil }

func TestToUpdateData(t *testing.T) {
	u, err := ToUpdateData(map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", u.Set["title"])
	assert.Nil(t, u.Unset)

	u, err = ToUpdateData(map[string]interface{}{
		"$set":   map[string]interface{}{"title": "y"},
		"$unset": map[string]interface{}{"body": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "y", u.Set["title"])
	assert.Contains(t, u.Unset, "body")

	in := &UpdateData{Set: map[string]interface{}{"a": 1}}
	u, err = ToUpdateData(in)
	require.NoError(t, err)
	assert.Same(t, in, u)
}

func TestApplyBeforeSave_CopiesHookChangesIntoSet(t *testing.T) {
	hooks := &upperHooks{}
	svc := NewBaseServiceMongo[sample](nil)
	svc.SetHooks(hooks)

	existing := map[string]interface{}{"title": "old", "tags": []interface{}{"a"}}
	update := &UpdateData{Set: map[string]interface{}{"title": "new"}}

	require.NoError(t, svc.applyBeforeSave(context.Background(), existing, update, []string{"title"}))
	assert.Equal(t, "NEW", update.Set["title"])
	assert.NotContains(t, update.Set, "tags")
	assert.Equal(t, []string{"title"}, hooks.changed)
}
