package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"doc_tagging/internal/common"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		separator string
		want      TagList
	}{
		{
			name:  "case-insensitive dedup keeps first casing",
			input: "sometimes, Sometimes, I, repeat, myself",
			want:  TagList{"sometimes", "I", "repeat", "myself"},
		},
		{
			name:  "whitespace collapse",
			input: "now ,  with, some spaces  , in places ",
			want:  TagList{"now", "with", "some spaces", "in places"},
		},
		{
			name:  "blank pieces dropped",
			input: "a,,b,,,c",
			want:  TagList{"a", "b", "c"},
		},
		{
			name:  "array elements expand",
			input: []string{"favorite", "colors", "blue, green"},
			want:  TagList{"favorite", "colors", "blue", "green"},
		},
		{
			name:      "custom separator",
			input:     "x;y;z",
			separator: ";",
			want:      TagList{"x", "y", "z"},
		},
		{
			name:      "separator is literal, not a pattern",
			input:     "a.b|c.d",
			separator: ".",
			want:      TagList{"a", "b|c", "d"},
		},
		{
			name:  "only separators and whitespace",
			input: " , ,\t,  ",
			want:  TagList{},
		},
		{
			name:  "empty string",
			input: "",
			want:  TagList{},
		},
		{
			name:  "nil input",
			input: nil,
			want:  TagList{},
		},
		{
			name:  "interface slice from json",
			input: []interface{}{"Go", "go", "mongo"},
			want:  TagList{"Go", "mongo"},
		},
		{
			name:  "bson array",
			input: bson.A{"one, two", "Two"},
			want:  TagList{"one", "two"},
		},
		{
			name:      "multi-character separator",
			input:     "red :: green::blue",
			separator: "::",
			want:      TagList{"red", "green", "blue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.separator)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{
		"sometimes, Sometimes, I, repeat, myself",
		"now ,  with, some spaces  , in places ",
		[]string{"favorite", "colors", "blue, green"},
		"A,a,B , b,  c  d ",
	}
	for _, input := range inputs {
		once, err := Normalize(input, ",")
		require.NoError(t, err)
		twice, err := Normalize(once, ",")
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestNormalize_InvalidInputKind(t *testing.T) {
	for _, input := range []any{42, map[string]string{"a": "b"}, []interface{}{"ok", 1}, true} {
		_, err := Normalize(input, ",")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInputKind)
	}
}

func TestDedup_DoesNotResplit(t *testing.T) {
	got := Dedup([]string{"blue, green", "Blue, Green", "red"})
	assert.Equal(t, TagList{"blue, green", "red"}, got)
}

func TestDedupAndContains_SameFolding(t *testing.T) {
	pairs := [][2]string{{"σ", "ς"}, {"Go", "GO"}, {"K", "\u212a"}, {"straße", "STRASSE"}}
	for _, p := range pairs {
		got, err := Normalize(p[0]+", "+p[1], ",")
		require.NoError(t, err)
		keptBoth := len(got) == 2
		assert.Equal(t, !keptBoth, TagList{p[0]}.Contains(p[1]), "cặp %q", p)
	}
}

func TestSplit(t *testing.T) {
	got, err := Split(" tag1 , tag2,,", ",")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag1", "tag2"}, got)

	got, err = Split([]string{" kept as is ", "x,y"}, ",")
	require.NoError(t, err)
	assert.Equal(t, []string{" kept as is ", "x,y"}, got)

	_, err = Split(3.14, ",")
	assert.ErrorIs(t, err, common.ErrInvalidInputKind)
}

func TestTagList(t *testing.T) {
	l := TagList{"Go", "mongo"}
	assert.True(t, l.Contains("go"))
	assert.False(t, l.Contains("rust"))
	assert.True(t, l.Equal(TagList{"Go", "mongo"}))
	assert.False(t, l.Equal(TagList{"go", "mongo"}))
	assert.False(t, l.Equal(TagList{"mongo", "Go"}))
	assert.Equal(t, "Go, mongo", l.Join(", "))

	s := l.Strings()
	s[0] = "changed"
	assert.Equal(t, "Go", l[0])
}
