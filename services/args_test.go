package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntval(t *testing.T) {
	tests := []struct {
		in   any
		want int64
	}{
		{"42", 42},
		{" 42abc", 42},
		{"-7", -7},
		{"+3", 3},
		{"sports", 0},
		{"", 0},
		{"-", 0},
		{int64(9), 9},
		{12, 12},
		{3.9, 3},
		{true, 1},
		{false, 0},
		{nil, 0},
		{"99999999999999999999", math.MaxInt64},
		{map[string]any{}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, intval(tt.in), "intval(%#v)", tt.in)
	}
}

func TestParseCategory(t *testing.T) {
	sel, err := parseCategory("42")
	require.NoError(t, err)
	assert.Equal(t, CategorySelector{IDs: []int64{42}}, sel)

	sel, err = parseCategory("news, local/sports")
	require.NoError(t, err)
	assert.Equal(t, CategorySelector{Slugs: []string{"news", "sports"}}, sel)

	// "0" is not a usable id, so it is treated as a slug
	sel, err = parseCategory("0")
	require.NoError(t, err)
	assert.Equal(t, CategorySelector{Slugs: []string{"0"}}, sel)

	for _, v := range []any{nil, false, int64(0), ""} {
		sel, err = parseCategory(v)
		require.NoError(t, err)
		assert.True(t, sel.IsEmpty(), "%#v", v)
	}

	_, err = parseCategory([]any{"a"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = parseCategory(map[string]any{"a": 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParsePostTypes(t *testing.T) {
	types, err := parsePostTypes("page")
	require.NoError(t, err)
	assert.Equal(t, []string{"page"}, types)

	types, err = parsePostTypes([]any{"post", " page "})
	require.NoError(t, err)
	assert.Equal(t, []string{"post", "page"}, types)

	types, err = parsePostTypes(false)
	require.NoError(t, err)
	assert.Equal(t, []string{"post"}, types)

	_, err = parsePostTypes([]any{"post", int64(1)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = parsePostTypes(map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseGetPostsArgs(t *testing.T) {
	_, err := parseGetPostsArgs([]any{1, "u", "p", "post", false, 10})
	assert.ErrorIs(t, err, ErrInsufficientArgs)

	_, err = parseGetPostsArgs([]any{1, []any{"u"}, "p", "post", false, 10, false})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	a, err := parseGetPostsArgs([]any{int64(1), "admin", "secret", "post", "sports", int64(5), false})
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)
	assert.Equal(t, "secret", a.Password)
	assert.Equal(t, "sports", a.Category)
	assert.Equal(t, int64(5), a.Count)
}

func TestParseCategoryIDs(t *testing.T) {
	ids, err := parseCategoryIDs("1, 2,-3")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, -3}, ids)

	ids, err = parseCategoryIDs([]any{int64(4), "5"})
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 5}, ids)

	_, err = parseCategoryIDs("sports")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
