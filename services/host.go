package services

import (
	"context"
	"time"

	"extend-xmlrpc/models"
)

// Host is everything getPosts needs from the blog platform: accounts, the
// post query engine, taxonomy and meta storage, and the permission model.
type Host interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	QueryPosts(ctx context.Context, q PostQuery) ([]models.Post, error)
	CanEditPost(user *models.User, post *models.Post) bool
	Categories(ctx context.Context, post *models.Post) ([]models.Term, error)
	Tags(ctx context.Context, post *models.Post) ([]models.Term, error)
	Terms(ctx context.Context, post *models.Post, taxonomy string) ([]models.Term, error)
	CustomFields(ctx context.Context, post *models.Post) ([]models.CustomField, error)
	Author(ctx context.Context, post *models.Post) (*models.User, error)
	// Coauthors returns nil when co-authors are disabled or the post has none.
	Coauthors(ctx context.Context, post *models.Post) ([]models.User, error)
	Permalink(post *models.Post) string
	// Location is the site timezone that local post dates are written in.
	Location() *time.Location
}

// PostQuery is the validated filter handed to Host.QueryPosts.
type PostQuery struct {
	PostTypes []string
	Statuses  []string
	Category  CategorySelector
	// Tag holds comma separated post_tag slugs, any of which matches.
	Tag string
	// TagsAll holds post_tag slugs given as "a+b"; a post needs all of them.
	TagsAll  []string
	Search   string
	AuthorID int64
	Year     int
	Month    int
	Day      int
	// OrderBy is one of the names in orderByFields, empty for date.
	OrderBy string
	// Order is "ASC" or "DESC", empty for DESC.
	Order string
	// Count: 0 uses the site default, -1 means no limit.
	Count  int
	Offset int
	Paged  int
}

// CategorySelector matches categories by id or by slug. Negative ids exclude.
type CategorySelector struct {
	IDs   []int64
	Slugs []string
}

func (c CategorySelector) IsEmpty() bool {
	return len(c.IDs) == 0 && len(c.Slugs) == 0
}
