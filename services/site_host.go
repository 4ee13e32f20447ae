package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"extend-xmlrpc/models"
	"extend-xmlrpc/repositories"
)

type PostStore interface {
	Query(ctx context.Context, opt repositories.PostQueryOptions) ([]models.Post, error)
}

type TermStore interface {
	FindByIDs(ctx context.Context, taxonomy string, ids []int64) ([]models.Term, error)
	FindBySlugs(ctx context.Context, taxonomy string, slugs []string) ([]models.Term, error)
	ListByTaxonomy(ctx context.Context, taxonomy string) ([]models.Term, error)
}

type UserStore interface {
	FindByLogin(ctx context.Context, login string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

var (
	_ PostStore = (*repositories.PostRepository)(nil)
	_ TermStore = (*repositories.TermRepository)(nil)
	_ UserStore = (*repositories.UserRepository)(nil)
	_ Host      = (*SiteHost)(nil)
)

// SiteOptions are the site settings the host needs.
type SiteOptions struct {
	URL                string
	Timezone           string
	PermalinkStructure string
	PostsPerPage       int
	CoauthorsEnabled   bool
}

// SiteHost implements Host on top of the Mongo repositories.
type SiteHost struct {
	posts      PostStore
	terms      TermStore
	users      UserStore
	loc        *time.Location
	permalinks *Permalinker
	perPage    int
	coauthors  bool
}

func NewSiteHost(posts PostStore, terms TermStore, users UserStore, opts SiteOptions) (*SiteHost, error) {
	tz := opts.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load site timezone %q: %w", tz, err)
	}
	perPage := opts.PostsPerPage
	if perPage <= 0 {
		perPage = 10
	}
	return &SiteHost{
		posts:      posts,
		terms:      terms,
		users:      users,
		loc:        loc,
		permalinks: NewPermalinker(opts.URL, opts.PermalinkStructure),
		perPage:    perPage,
		coauthors:  opts.CoauthorsEnabled,
	}, nil
}

func (h *SiteHost) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrBadLogin
	}
	u, err := h.users.FindByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBadLogin
		}
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrBadLogin
	}
	return u, nil
}

var orderByFields = map[string]string{
	"":         "post_date",
	"date":     "post_date",
	"modified": "post_modified",
	"title":    "post_title",
	"name":     "post_name",
	"author":   "post_author",
	"type":     "post_type",
	"parent":   "post_parent",
	"ID":       "_id",
}

// QueryPosts resolves term slugs and category trees, then runs the query.
func (h *SiteHost) QueryPosts(ctx context.Context, q PostQuery) ([]models.Post, error) {
	opt := repositories.PostQueryOptions{
		PostTypes:  q.PostTypes,
		Statuses:   q.Statuses,
		Search:     strings.Fields(q.Search),
		AuthorID:   q.AuthorID,
		Year:       q.Year,
		Month:      q.Month,
		Day:        q.Day,
		Descending: q.Order != "ASC",
	}

	field, ok := orderByFields[q.OrderBy]
	if !ok {
		return nil, fmt.Errorf("%w: orderby %q", ErrInvalidFilter, q.OrderBy)
	}
	opt.OrderBy = field
	opt.Limit, opt.Skip = resolvePaging(q.Count, q.Offset, q.Paged, h.perPage)

	matchable, err := h.resolveCategories(ctx, q.Category, &opt)
	if err != nil {
		return nil, err
	}
	if !matchable {
		return nil, nil
	}

	if q.Tag != "" {
		tags, err := h.terms.FindBySlugs(ctx, models.TaxonomyPostTag, parseSlugs(q.Tag))
		if err != nil {
			return nil, fmt.Errorf("resolve tags: %w", err)
		}
		if len(tags) == 0 {
			return nil, nil
		}
		opt.TermIDSets = append(opt.TermIDSets, termIDs(tags))
	}
	if len(q.TagsAll) > 0 {
		tags, err := h.terms.FindBySlugs(ctx, models.TaxonomyPostTag, q.TagsAll)
		if err != nil {
			return nil, fmt.Errorf("resolve tags: %w", err)
		}
		bySlug := make(map[string]int64, len(tags))
		for _, t := range tags {
			bySlug[t.Slug] = t.ID
		}
		for _, slug := range q.TagsAll {
			id, found := bySlug[slug]
			if !found {
				return nil, nil
			}
			opt.TermIDSets = append(opt.TermIDSets, []int64{id})
		}
	}

	return h.posts.Query(ctx, opt)
}

// resolveCategories fills category term sets. It returns false when the
// selector names categories that do not exist, so nothing can match.
func (h *SiteHost) resolveCategories(ctx context.Context, sel CategorySelector, opt *repositories.PostQueryOptions) (bool, error) {
	if sel.IsEmpty() {
		return true, nil
	}

	var include []int64
	for _, id := range sel.IDs {
		if id < 0 {
			opt.ExcludeTermIDs = append(opt.ExcludeTermIDs, -id)
		} else {
			include = append(include, id)
		}
	}

	var all []models.Term
	loadAll := func() error {
		if all != nil {
			return nil
		}
		terms, err := h.terms.ListByTaxonomy(ctx, models.TaxonomyCategory)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		all = terms
		if all == nil {
			all = []models.Term{}
		}
		return nil
	}

	if len(include) > 0 {
		if err := loadAll(); err != nil {
			return false, err
		}
		opt.TermIDSets = append(opt.TermIDSets, collectDescendants(all, include))
	}

	if len(sel.Slugs) > 0 {
		found, err := h.terms.FindBySlugs(ctx, models.TaxonomyCategory, sel.Slugs)
		if err != nil {
			return false, fmt.Errorf("resolve categories: %w", err)
		}
		if len(found) == 0 {
			return false, nil
		}
		if err := loadAll(); err != nil {
			return false, err
		}
		opt.TermIDSets = append(opt.TermIDSets, collectDescendants(all, termIDs(found)))
	}
	return true, nil
}

// collectDescendants returns roots plus every category below them.
func collectDescendants(all []models.Term, roots []int64) []int64 {
	children := make(map[int64][]int64, len(all))
	for _, t := range all {
		if t.Parent != 0 {
			children[t.Parent] = append(children[t.Parent], t.ID)
		}
	}
	seen := make(map[int64]bool, len(roots))
	var out []int64
	queue := append([]int64(nil), roots...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
		queue = append(queue, children[id]...)
	}
	return out
}

// resolvePaging turns count/offset/paged into limit and skip. A zero limit
// means no limit.
func resolvePaging(count, offset, paged, perPage int) (limit, skip int64) {
	switch {
	case count == 0:
		limit = int64(perPage)
	case count == -1:
		limit = 0
	case count < -1:
		limit = int64(-count)
	default:
		limit = int64(count)
	}
	switch {
	case offset > 0:
		skip = int64(offset)
	case paged > 1 && limit > 0:
		skip = int64(paged-1) * limit
	}
	return limit, skip
}

func (h *SiteHost) CanEditPost(user *models.User, post *models.Post) bool {
	return CanEditPost(user, post)
}

func (h *SiteHost) Categories(ctx context.Context, post *models.Post) ([]models.Term, error) {
	return h.Terms(ctx, post, models.TaxonomyCategory)
}

func (h *SiteHost) Tags(ctx context.Context, post *models.Post) ([]models.Term, error) {
	return h.Terms(ctx, post, models.TaxonomyPostTag)
}

func (h *SiteHost) Terms(ctx context.Context, post *models.Post, taxonomy string) ([]models.Term, error) {
	return h.terms.FindByIDs(ctx, taxonomy, post.TermIDs)
}

// CustomFields returns the post meta without protected ("_" prefixed) keys.
func (h *SiteHost) CustomFields(_ context.Context, post *models.Post) ([]models.CustomField, error) {
	fields := make([]models.CustomField, 0, len(post.Meta))
	for _, f := range post.Meta {
		if strings.HasPrefix(f.Key, "_") {
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (h *SiteHost) Author(ctx context.Context, post *models.Post) (*models.User, error) {
	u, err := h.users.FindByID(ctx, post.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", post.AuthorID, err)
	}
	return u, nil
}

func (h *SiteHost) Coauthors(ctx context.Context, post *models.Post) ([]models.User, error) {
	if !h.coauthors || len(post.CoauthorIDs) == 0 {
		return nil, nil
	}
	return h.users.FindByIDs(ctx, post.CoauthorIDs)
}

func (h *SiteHost) Permalink(post *models.Post) string {
	return h.permalinks.Permalink(post)
}

func (h *SiteHost) Location() *time.Location {
	return h.loc
}

func termIDs(terms []models.Term) []int64 {
	ids := make([]int64, 0, len(terms))
	for _, t := range terms {
		ids = append(ids, t.ID)
	}
	return ids
}
