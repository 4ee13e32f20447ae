package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const getPostsArgCount = 7

// getPostsArgs holds the positional arguments
// [siteId, username, password, postType(s), category, maxCount, extraFilters].
type getPostsArgs struct {
	Username string
	Password string
	PostType any
	Category any
	Count    any
	Extra    any
}

func parseGetPostsArgs(params []any) (getPostsArgs, error) {
	if len(params) < getPostsArgCount {
		return getPostsArgs{}, fmt.Errorf("%w: got %d, want %d", ErrInsufficientArgs, len(params), getPostsArgCount)
	}
	username, ok := toString(params[1])
	if !ok {
		return getPostsArgs{}, fmt.Errorf("%w: username must be a string", ErrInvalidArgument)
	}
	password, ok := toString(params[2])
	if !ok {
		return getPostsArgs{}, fmt.Errorf("%w: password must be a string", ErrInvalidArgument)
	}
	return getPostsArgs{
		Username: username,
		Password: password,
		PostType: params[3],
		Category: params[4],
		Count:    params[5],
		Extra:    params[6],
	}, nil
}

// intval coerces a value to an integer the loose way the blog platform does:
// strings keep their leading sign and digits ("42abc" is 42, "sports" is 0).
func intval(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimLeft(t, " \t\n\r\v\f")
		end := 0
		if end < len(s) && (s[end] == '+' || s[end] == '-') {
			end++
		}
		digits := end
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == digits {
			return 0
		}
		n, err := strconv.ParseInt(s[:end], 10, 64)
		if err != nil {
			if s[0] == '-' {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		return n
	}
	return 0
}

// toString accepts scalars only.
func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return strconv.FormatInt(t, 10), true
	case int:
		return strconv.Itoa(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if t {
			return "1", true
		}
		return "", true
	case nil:
		return "", true
	}
	return "", false
}

// strictInt accepts integers, integral floats and fully numeric strings.
func strictInt(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

// parseCategory decides between matching by id and by slug: a value whose
// integer coercion is non-zero is an id, anything else is a slug list.
func parseCategory(v any) (CategorySelector, error) {
	switch t := v.(type) {
	case nil:
		return CategorySelector{}, nil
	case bool:
		if !t {
			return CategorySelector{}, nil
		}
	case map[string]any, []any:
		return CategorySelector{}, fmt.Errorf("%w: category must be an id or a slug", ErrInvalidArgument)
	}

	if id := intval(v); id != 0 {
		if s, isString := v.(string); isString {
			return CategorySelector{IDs: looseIDList(s)}, nil
		}
		return CategorySelector{IDs: []int64{id}}, nil
	}
	if _, isString := v.(string); !isString {
		return CategorySelector{}, nil
	}
	return CategorySelector{Slugs: parseSlugs(v.(string))}, nil
}

// looseIDList reads "3,5,-7" with intval per item, zeros dropped.
func looseIDList(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		if id := intval(strings.TrimSpace(part)); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseSlugs splits "a, b,parent/child" into ["a", "b", "child"].
func parseSlugs(s string) []string {
	var slugs []string
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(strings.TrimSpace(part), "/")
		if i := strings.LastIndex(part, "/"); i >= 0 {
			part = part[i+1:]
		}
		if part != "" {
			slugs = append(slugs, part)
		}
	}
	return slugs
}

// parseCategoryIDs reads "1,2,-3" or a list of ids.
func parseCategoryIDs(v any) ([]int64, error) {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case string:
		for _, part := range strings.Split(t, ",") {
			items = append(items, strings.TrimSpace(part))
		}
	default:
		items = []any{v}
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s == "" {
			continue
		}
		id, ok := strictInt(item)
		if !ok {
			return nil, fmt.Errorf("%w: cat must be a list of category ids", ErrInvalidFilter)
		}
		if id != 0 {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// parsePostTypes accepts a single name or a list of names. Empty means "post".
func parsePostTypes(v any) ([]string, error) {
	var types []string
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			types = append(types, s)
		}
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: post types must be strings", ErrInvalidArgument)
			}
			if s = strings.TrimSpace(s); s != "" {
				types = append(types, s)
			}
		}
	case nil:
	case bool:
		if t {
			return nil, fmt.Errorf("%w: post type must be a name or a list of names", ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%w: post type must be a name or a list of names", ErrInvalidArgument)
	}
	if len(types) == 0 {
		types = []string{"post"}
	}
	return types, nil
}

// parseStringList accepts "a,b" or a list of strings.
func parseStringList(v any) ([]string, bool) {
	var out []string
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	case []any:
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	default:
		return nil, false
	}
	return out, true
}
