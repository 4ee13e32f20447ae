package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"extend-xmlrpc/dto"
	"extend-xmlrpc/internal/logger"
	"extend-xmlrpc/internal/trace"
	"extend-xmlrpc/models"
	"extend-xmlrpc/xmlrpc"
)

// GetPostsHandler serves one getPosts method name with one output variant.
type GetPostsHandler struct {
	method  string
	host    Host
	variant Variant
}

func NewGetPostsHandler(method string, host Host, variant Variant) *GetPostsHandler {
	return &GetPostsHandler{method: method, host: host, variant: variant}
}

func (h *GetPostsHandler) Method() string { return h.method }

// Register adds the handler to the dispatch table under its method name.
// It has the xmlrpc.MethodsFilter signature.
func (h *GetPostsHandler) Register(methods xmlrpc.Methods) xmlrpc.Methods {
	if methods == nil {
		methods = xmlrpc.Methods{}
	}
	methods[h.method] = h.Handle
	return methods
}

// Handle is the xmlrpc.MethodFunc entry point; errors become faults here.
func (h *GetPostsHandler) Handle(ctx context.Context, params []any) (any, error) {
	posts, err := h.GetPosts(ctx, params)
	if err != nil {
		fault := ToFault(err)
		fields := logger.Fields{
			"request_id":  trace.RequestIDFromContext(ctx),
			"method_name": h.method,
			"variant":     h.variant.Name(),
			"fault_code":  fault.Code,
			"error":       err.Error(),
		}
		if IsClientError(err) || errors.Is(err, ErrNoPosts) {
			logger.WarnWithFields("getPosts rejected", fields)
		} else {
			logger.ErrorWithFields("getPosts failed", fields)
		}
		return nil, fault
	}
	return posts, nil
}

// GetPosts runs the query described by params and returns one struct per
// post the caller may edit, in query order.
func (h *GetPostsHandler) GetPosts(ctx context.Context, params []any) ([]dto.PostStruct, error) {
	args, err := parseGetPostsArgs(params)
	if err != nil {
		return nil, err
	}

	user, err := h.host.Authenticate(ctx, args.Username, args.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrBadLogin
	}

	q, err := buildPostQuery(args)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	entries, err := h.host.QueryPosts(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}
	if len(entries) == 0 {
		return nil, ErrNoPosts
	}

	posts := make([]dto.PostStruct, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		if !h.host.CanEditPost(user, entry) {
			continue
		}
		out, err := h.buildPost(ctx, entry)
		if err != nil {
			return nil, err
		}
		posts = append(posts, out)
	}

	logger.InfoWithFields("getPosts served", logger.Fields{
		"request_id":  trace.RequestIDFromContext(ctx),
		"method_name": h.method,
		"user_login":  user.Login,
		"matched":     len(entries),
		"returned":    len(posts),
		"duration_ms": time.Since(started).Milliseconds(),
	})
	return posts, nil
}

func buildPostQuery(args getPostsArgs) (PostQuery, error) {
	category, err := parseCategory(args.Category)
	if err != nil {
		return PostQuery{}, err
	}
	postTypes, err := parsePostTypes(args.PostType)
	if err != nil {
		return PostQuery{}, err
	}
	q := PostQuery{
		PostTypes: postTypes,
		Statuses:  []string{"any"},
		Category:  category,
		Count:     int(intval(args.Count)),
	}
	if err := applyExtraFilters(&q, args.Extra); err != nil {
		return PostQuery{}, err
	}
	return q, nil
}

func (h *GetPostsHandler) buildPost(ctx context.Context, entry *models.Post) (dto.PostStruct, error) {
	dateCreatedGMT := parseMySQLDate(entry.DateGMT)
	// 초안은 GMT 날짜가 비어 있으므로 사이트 타임존 기준 로컬 날짜에서 다시 계산한다.
	if entry.Status == models.StatusDraft {
		dateCreatedGMT = localToGMT(entry.Date, h.host.Location())
	}

	content := SplitExtended(entry.Content)
	link := h.host.Permalink(entry)

	fields, err := h.host.CustomFields(ctx, entry)
	if err != nil {
		return dto.PostStruct{}, fmt.Errorf("custom fields of post %d: %w", entry.ID, err)
	}
	if fields == nil {
		fields = []models.CustomField{}
	}

	status := entry.Status
	if status == models.StatusFuture {
		status = models.StatusPublish
	}

	out := dto.PostStruct{
		DateCreated:    parseMySQLDate(entry.Date),
		DateModified:   parseMySQLDate(entry.Modified),
		UserID:         strconv.FormatInt(entry.AuthorID, 10),
		PostID:         entry.ID,
		Description:    content.Main,
		Title:          entry.Title,
		Link:           link,
		PermaLink:      link,
		Excerpt:        entry.Excerpt,
		TextMore:       content.Extended,
		AllowComments:  openFlag(entry.CommentStatus),
		AllowPings:     openFlag(entry.PingStatus),
		Slug:           entry.Name,
		Password:       entry.Password,
		AuthorID:       entry.AuthorID,
		DateCreatedGMT: dateCreatedGMT,
		Status:         status,
		CustomFields:   fields,
	}
	if err := h.variant.Decorate(ctx, h.host, entry, &out); err != nil {
		return dto.PostStruct{}, err
	}
	return out, nil
}

func openFlag(status string) int {
	if status == "open" {
		return 1
	}
	return 0
}

// parseMySQLDate keeps the wall clock of a stored date. Unset dates are zero.
func parseMySQLDate(s string) time.Time {
	if s == "" || s == models.ZeroDate {
		return time.Time{}
	}
	t, err := time.Parse(models.MySQLDateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// localToGMT reads s as a wall clock in loc and converts it to UTC.
func localToGMT(s string, loc *time.Location) time.Time {
	if s == "" || s == models.ZeroDate {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(models.MySQLDateFormat, s, loc)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// IsClientError reports whether err was caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInsufficientArgs) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidFilter) ||
		errors.Is(err, ErrBadLogin)
}
