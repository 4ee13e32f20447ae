package services

import (
	"fmt"
	"sort"
	"strings"

	"extend-xmlrpc/models"
)

// OrderBy values accepted in extra filters. "post_" prefixes are stripped first.
var orderByNames = map[string]bool{
	"date":     true,
	"modified": true,
	"title":    true,
	"name":     true,
	"author":   true,
	"type":     true,
	"parent":   true,
	"ID":       true,
}

var knownStatuses = map[string]bool{
	models.StatusPublish:   true,
	models.StatusFuture:    true,
	models.StatusDraft:     true,
	models.StatusPending:   true,
	models.StatusPrivate:   true,
	models.StatusTrash:     true,
	models.StatusAutoDraft: true,
	models.StatusInherit:   true,
	"any":                  true,
}

type filterFunc func(q *PostQuery, v any) error

// extraFilters is the allow-list of keys a client may override.
var extraFilters = map[string]filterFunc{
	"orderby":        filterOrderBy,
	"order":          filterOrder,
	"s":              filterSearch,
	"offset":         intFilter(0, -1, func(q *PostQuery, n int) { q.Offset = n }),
	"paged":          intFilter(0, -1, func(q *PostQuery, n int) { q.Paged = n }),
	"author":         intFilter(0, -1, func(q *PostQuery, n int) { q.AuthorID = int64(n) }),
	"post_status":    filterPostStatus,
	"tag":            filterTag,
	"year":           intFilter(0, 9999, func(q *PostQuery, n int) { q.Year = n }),
	"monthnum":       intFilter(0, 12, func(q *PostQuery, n int) { q.Month = n }),
	"day":            intFilter(0, 31, func(q *PostQuery, n int) { q.Day = n }),
	"posts_per_page": filterCount,
	"numberposts":    filterCount,
	"post_type":      filterPostType,
	"cat":            filterCat,
	"category_name":  filterCategoryName,
}

// applyExtraFilters merges the client's extra filters into q. Keys are
// applied in sorted order so that aliases resolve the same way every time.
func applyExtraFilters(q *PostQuery, v any) error {
	var filters map[string]any
	switch t := v.(type) {
	case map[string]any:
		filters = t
	case []any:
		if len(t) > 0 {
			return fmt.Errorf("%w: extra filters must be a struct", ErrInvalidFilter)
		}
		return nil
	default:
		// false, "" and nil mean no extra filters
		return nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		if _, ok := extraFilters[k]; !ok {
			return fmt.Errorf("%w: unsupported key %q", ErrInvalidFilter, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := extraFilters[k](q, filters[k]); err != nil {
			return err
		}
	}
	return nil
}

func filterOrderBy(q *PostQuery, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: orderby must be a string", ErrInvalidFilter)
	}
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "id") {
		s = "ID"
	} else {
		s = strings.TrimPrefix(strings.ToLower(s), "post_")
	}
	if s != "" && !orderByNames[s] {
		return fmt.Errorf("%w: orderby %q", ErrInvalidFilter, s)
	}
	q.OrderBy = s
	return nil
}

func filterOrder(q *PostQuery, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: order must be ASC or DESC", ErrInvalidFilter)
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s != "ASC" && s != "DESC" {
		return fmt.Errorf("%w: order must be ASC or DESC", ErrInvalidFilter)
	}
	q.Order = s
	return nil
}

func filterSearch(q *PostQuery, v any) error {
	s, ok := toString(v)
	if !ok {
		return fmt.Errorf("%w: s must be a string", ErrInvalidFilter)
	}
	q.Search = strings.TrimSpace(s)
	return nil
}

// intFilter validates min <= n (and n <= max unless max is -1).
func intFilter(min, max int, set func(q *PostQuery, n int)) filterFunc {
	return func(q *PostQuery, v any) error {
		n, ok := strictInt(v)
		if !ok || int(n) < min || (max >= 0 && int(n) > max) {
			return fmt.Errorf("%w: %v is out of range", ErrInvalidFilter, v)
		}
		set(q, int(n))
		return nil
	}
}

func filterCount(q *PostQuery, v any) error {
	n, ok := strictInt(v)
	if !ok {
		return fmt.Errorf("%w: post count must be an integer", ErrInvalidFilter)
	}
	q.Count = int(n)
	return nil
}

func filterPostStatus(q *PostQuery, v any) error {
	statuses, ok := parseStringList(v)
	if !ok || len(statuses) == 0 {
		return fmt.Errorf("%w: post_status must be a status or a list of statuses", ErrInvalidFilter)
	}
	for _, s := range statuses {
		if !knownStatuses[s] {
			return fmt.Errorf("%w: post_status %q", ErrInvalidFilter, s)
		}
	}
	q.Statuses = statuses
	return nil
}

func filterTag(q *PostQuery, v any) error {
	if s, isString := v.(string); isString && strings.Contains(s, "+") {
		if strings.Contains(s, ",") {
			return fmt.Errorf("%w: tag cannot mix \",\" and \"+\"", ErrInvalidFilter)
		}
		var all []string
		for _, part := range strings.Split(s, "+") {
			if part = strings.TrimSpace(part); part != "" {
				all = append(all, part)
			}
		}
		q.Tag, q.TagsAll = "", all
		return nil
	}
	tags, ok := parseStringList(v)
	if !ok {
		return fmt.Errorf("%w: tag must be a slug list", ErrInvalidFilter)
	}
	for _, tag := range tags {
		if strings.Contains(tag, "+") {
			return fmt.Errorf("%w: tag list items cannot contain \"+\"", ErrInvalidFilter)
		}
	}
	q.Tag, q.TagsAll = strings.Join(tags, ","), nil
	return nil
}

func filterPostType(q *PostQuery, v any) error {
	types, ok := parseStringList(v)
	if !ok || len(types) == 0 {
		return fmt.Errorf("%w: post_type must be a name or a list of names", ErrInvalidFilter)
	}
	q.PostTypes = types
	return nil
}

func filterCat(q *PostQuery, v any) error {
	ids, err := parseCategoryIDs(v)
	if err != nil {
		return err
	}
	q.Category.IDs = ids
	return nil
}

func filterCategoryName(q *PostQuery, v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: category_name must be a slug", ErrInvalidFilter)
	}
	q.Category.Slugs = parseSlugs(s)
	return nil
}
