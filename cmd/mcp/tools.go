package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"extend-xmlrpc/services"
	"extend-xmlrpc/xmlrpc"
)

// PostsMethod 는 getPosts 메서드 하나를 프로세스 내부에서 호출하는 인터페이스다.
// HTTP 경로와 같은 진입점(Handle)을 써서 fault 변환과 로깅을 공유한다.
type PostsMethod interface {
	Handle(ctx context.Context, params []any) (any, error)
}

type getPostsTool struct {
	methods  map[string]PostsMethod
	username string
	password string
}

func newGetPostsTool(methods map[string]PostsMethod) *getPostsTool {
	return &getPostsTool{
		methods:  methods,
		username: os.Getenv("WP_USERNAME"),
		password: os.Getenv("WP_PASSWORD"),
	}
}

func (t *getPostsTool) methodNames() []string {
	names := make([]string, 0, len(t.methods))
	for name := range t.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *getPostsTool) definition() mcp.Tool {
	names := t.methodNames()
	defaultMethod := ""
	if len(names) > 0 {
		defaultMethod = names[0]
	}
	return mcp.NewTool("get_posts",
		mcp.WithDescription("블로그 글 목록을 getPosts 메서드로 조회합니다 (초안, 예약 글 포함)"),
		mcp.WithString("method",
			mcp.Description("getPosts method name: "+strings.Join(names, ", ")),
			mcp.DefaultString(defaultMethod),
		),
		mcp.WithString("post_type",
			mcp.Description("Comma separated post types, default post"),
		),
		mcp.WithString("category",
			mcp.Description("Category id or slug"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of posts, -1 for all"),
			mcp.DefaultNumber(10),
		),
		mcp.WithString("filters",
			mcp.Description(`Extra query filters as a JSON object, e.g. {"orderby":"modified"}`),
		),
	)
}

func (t *getPostsTool) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := t.methodNames()
	method := request.GetString("method", "")
	if method == "" && len(names) > 0 {
		method = names[0]
	}
	getter, ok := t.methods[method]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown method %q, want one of %s", method, strings.Join(names, ", "))), nil
	}

	params, err := t.params(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	posts, err := getter.Handle(ctx, params)
	if err != nil {
		var fault *xmlrpc.Fault
		if !errors.As(err, &fault) {
			fault = services.ToFault(err)
		}
		return mcp.NewToolResultError(fmt.Sprintf("%d: %s", fault.Code, fault.Message)), nil
	}

	jsonBytes, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("응답 JSON 변환 실패: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (t *getPostsTool) params(request mcp.CallToolRequest) ([]any, error) {
	var postType any = "post"
	if raw := request.GetString("post_type", ""); raw != "" {
		var types []any
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				types = append(types, p)
			}
		}
		postType = types
	}

	var category any = false
	if c := request.GetString("category", ""); c != "" {
		category = c
	}

	var extra any = false
	if raw := request.GetString("filters", ""); raw != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("filters must be a JSON object: %w", err)
		}
		extra = m
	}

	count := int64(request.GetInt("count", 10))
	return []any{int64(1), t.username, t.password, postType, category, count, extra}, nil
}
