package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc_tagging/internal/common"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("a", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = r.Get("b")
	assert.False(t, ok)
}

func TestRegistry_EmptyName(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("", "x")
	assert.ErrorIs(t, err, common.ErrRequiredField)
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry[int]()
	for _, name := range []string{"Review", "Article", "Note"} {
		_, err := r.Register(name, 0)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"Article", "Note", "Review"}, r.Names())
}
