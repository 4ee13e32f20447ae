package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extend-xmlrpc/dto"
	"extend-xmlrpc/services"
)

type stubGetter struct {
	params []any
	posts  []dto.PostStruct
	err    error
}

func (s *stubGetter) Handle(_ context.Context, params []any) (any, error) {
	s.params = params
	if s.err != nil {
		return nil, services.ToFault(s.err)
	}
	return s.posts, nil
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = "get_posts"
	req.Params.Arguments = args
	return req
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	require.IsType(t, mcp.TextContent{}, result.Content[0])
	return result.Content[0].(mcp.TextContent).Text
}

func TestGetPostsTool(t *testing.T) {
	bdn := &stubGetter{posts: []dto.PostStruct{{PostID: 7, Title: "Big game"}}}
	tool := &getPostsTool{
		methods:  map[string]PostsMethod{"bdn.getPosts": bdn, "my.getPosts": &stubGetter{}},
		username: "editor",
		password: "secret",
	}

	result, err := tool.handle(context.Background(), newRequest(map[string]any{
		"post_type": "post, page",
		"category":  "sports",
		"count":     float64(5),
		"filters":   `{"orderby":"modified","paged":2}`,
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	assert.Equal(t, []any{
		int64(1), "editor", "secret",
		[]any{"post", "page"}, "sports", int64(5),
		map[string]any{"orderby": "modified", "paged": float64(2)},
	}, bdn.params)

	var posts []map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Big game", posts[0]["title"])
}

func TestGetPostsToolDefaults(t *testing.T) {
	my := &stubGetter{posts: []dto.PostStruct{}}
	tool := &getPostsTool{methods: map[string]PostsMethod{"my.getPosts": my}}

	result, err := tool.handle(context.Background(), newRequest(map[string]any{}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "[]", textOf(t, result))
	assert.Equal(t, []any{int64(1), "", "", "post", false, int64(10), false}, my.params)
}

func TestGetPostsToolErrors(t *testing.T) {
	failing := &stubGetter{err: services.ErrBadLogin}
	tool := &getPostsTool{methods: map[string]PostsMethod{"bdn.getPosts": failing}}

	result, err := tool.handle(context.Background(), newRequest(map[string]any{"method": "bdn.getPosts"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "403: Incorrect username or password.", textOf(t, result))

	result, err = tool.handle(context.Background(), newRequest(map[string]any{"method": "wp.getPosts"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "bdn.getPosts")

	result, err = tool.handle(context.Background(), newRequest(map[string]any{"filters": "[1,2]"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestGetPostsToolDefinition(t *testing.T) {
	tool := &getPostsTool{methods: map[string]PostsMethod{"my.getPosts": &stubGetter{}, "bdn.getPosts": &stubGetter{}}}
	def := tool.definition()
	assert.Equal(t, "get_posts", def.Name)
	assert.Contains(t, def.InputSchema.Properties, "filters")
	assert.Contains(t, def.InputSchema.Properties, "count")
}
