package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyExtraFilters(t *testing.T) {
	q := PostQuery{PostTypes: []string{"post"}, Statuses: []string{"any"}, Count: 10}
	err := applyExtraFilters(&q, map[string]any{
		"orderby":       "post_modified",
		"order":         "asc",
		"offset":        int64(5),
		"paged":         "2",
		"author":        int64(3),
		"tag":           []any{"nfl", "nba"},
		"year":          int64(2024),
		"monthnum":      int64(3),
		"day":           "9",
		"cat":           "4,-5",
		"category_name": "local/sports",
	})
	require.NoError(t, err)

	assert.Equal(t, "modified", q.OrderBy)
	assert.Equal(t, "ASC", q.Order)
	assert.Equal(t, 5, q.Offset)
	assert.Equal(t, 2, q.Paged)
	assert.Equal(t, int64(3), q.AuthorID)
	assert.Equal(t, "nfl,nba", q.Tag)
	assert.Equal(t, 2024, q.Year)
	assert.Equal(t, 3, q.Month)
	assert.Equal(t, 9, q.Day)
	assert.Equal(t, []int64{4, -5}, q.Category.IDs)
	assert.Equal(t, []string{"sports"}, q.Category.Slugs)
	assert.Equal(t, 10, q.Count)
}

func TestApplyExtraFiltersCountAliases(t *testing.T) {
	q := PostQuery{Count: 10}
	require.NoError(t, applyExtraFilters(&q, map[string]any{"numberposts": int64(2), "posts_per_page": int64(7)}))
	assert.Equal(t, 7, q.Count, "posts_per_page is applied after numberposts")

	q = PostQuery{Count: 10}
	require.NoError(t, applyExtraFilters(&q, map[string]any{"numberposts": int64(-1)}))
	assert.Equal(t, -1, q.Count)
}

func TestApplyExtraFiltersIgnoresNonStruct(t *testing.T) {
	for _, v := range []any{false, "", nil, []any{}, int64(0)} {
		q := PostQuery{Count: 10}
		require.NoError(t, applyExtraFilters(&q, v), "%#v", v)
		assert.Equal(t, PostQuery{Count: 10}, q)
	}
}

func TestApplyExtraFiltersRejects(t *testing.T) {
	tests := map[string]any{
		"non-empty list":  []any{"orderby"},
		"unknown key":     map[string]any{"meta_key": "x"},
		"bad orderby":     map[string]any{"orderby": "rand"},
		"bad order":       map[string]any{"order": "sideways"},
		"bad status":      map[string]any{"post_status": "published"},
		"empty status":    map[string]any{"post_status": ""},
		"negative offset": map[string]any{"offset": int64(-1)},
		"month range":     map[string]any{"monthnum": int64(13)},
		"non int paged":   map[string]any{"paged": "two"},
		"struct type":     map[string]any{"post_type": map[string]any{}},
		"cat slug":        map[string]any{"cat": "sports"},
		"count float":     map[string]any{"posts_per_page": 2.5},
		"tag mixed":       map[string]any{"tag": "nfl,nba+mlb"},
		"tag list plus":   map[string]any{"tag": []any{"nfl+nba"}},
	}
	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			q := PostQuery{}
			assert.ErrorIs(t, applyExtraFilters(&q, v), ErrInvalidFilter)
		})
	}
}

func TestFilterTagAllOf(t *testing.T) {
	q := PostQuery{Tag: "old"}
	require.NoError(t, applyExtraFilters(&q, map[string]any{"tag": "nfl+patriots"}))
	assert.Empty(t, q.Tag)
	assert.Equal(t, []string{"nfl", "patriots"}, q.TagsAll)
}

func TestFilterOrderByNormalizes(t *testing.T) {
	for in, want := range map[string]string{
		"date":       "date",
		"post_date":  "date",
		"post_title": "title",
		"Modified":   "modified",
		"id":         "ID",
		"ID":         "ID",
		"":           "",
	} {
		q := PostQuery{}
		require.NoError(t, filterOrderBy(&q, in))
		assert.Equal(t, want, q.OrderBy, in)
	}
}
