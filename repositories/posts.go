package repositories

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"extend-xmlrpc/models"
)

const (
	// AnyValue matches every post type or status except the hidden ones.
	AnyValue = "any"
	// TypeRevision is never returned for post_type "any".
	TypeRevision = "revision"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// PostQueryOptions is the resolved form of a post query.
// Term ids are already expanded (category descendants, tag slugs).
type PostQueryOptions struct {
	PostTypes []string
	Statuses  []string
	// TermIDSets: a post must carry at least one id of every set.
	TermIDSets     [][]int64
	ExcludeTermIDs []int64
	Search         []string
	AuthorID       int64
	Year           int
	Month          int
	Day            int
	// OrderBy is a document field, e.g. post_date or post_modified.
	OrderBy    string
	Descending bool
	Limit      int64
	Skip       int64
}

// Query returns posts matching opt in the requested order.
func (r *PostRepository) Query(ctx context.Context, opt PostQueryOptions) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, buildPostFilter(opt), buildFindOptions(opt))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Upsert replaces the post document with the same id, inserting it if missing.
func (r *PostRepository) Upsert(ctx context.Context, p *models.Post) (*mongo.UpdateResult, error) {
	opts := options.Replace().SetUpsert(true)
	return r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts)
}

func buildPostFilter(opt PostQueryOptions) bson.M {
	var and []bson.M

	if len(opt.PostTypes) > 0 {
		if contains(opt.PostTypes, AnyValue) {
			and = append(and, bson.M{"post_type": bson.M{"$ne": TypeRevision}})
		} else {
			and = append(and, bson.M{"post_type": bson.M{"$in": opt.PostTypes}})
		}
	}

	if len(opt.Statuses) > 0 {
		if contains(opt.Statuses, AnyValue) {
			and = append(and, bson.M{"post_status": bson.M{"$nin": []string{models.StatusTrash, models.StatusAutoDraft}}})
		} else {
			and = append(and, bson.M{"post_status": bson.M{"$in": opt.Statuses}})
		}
	}

	for _, ids := range opt.TermIDSets {
		and = append(and, bson.M{"term_ids": bson.M{"$in": ids}})
	}
	if len(opt.ExcludeTermIDs) > 0 {
		and = append(and, bson.M{"term_ids": bson.M{"$nin": opt.ExcludeTermIDs}})
	}

	for _, term := range opt.Search {
		if term == "" {
			continue
		}
		re := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		and = append(and, bson.M{"$or": []bson.M{
			{"post_title": re},
			{"post_excerpt": re},
			{"post_content": re},
		}})
	}

	if opt.AuthorID != 0 {
		and = append(and, bson.M{"post_author": opt.AuthorID})
	}

	if pattern := datePrefixPattern(opt.Year, opt.Month, opt.Day); pattern != "" {
		and = append(and, bson.M{"post_date": primitive.Regex{Pattern: pattern}})
	}

	switch len(and) {
	case 0:
		return bson.M{}
	case 1:
		return and[0]
	default:
		return bson.M{"$and": and}
	}
}

func buildFindOptions(opt PostQueryOptions) *options.FindOptions {
	orderBy := opt.OrderBy
	if orderBy == "" {
		orderBy = "post_date"
	}
	dir := 1
	if opt.Descending {
		dir = -1
	}
	sort := bson.D{{Key: orderBy, Value: dir}}
	if orderBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}

	findOpts := options.Find().SetSort(sort)
	if opt.Limit > 0 {
		findOpts.SetLimit(opt.Limit)
	}
	if opt.Skip > 0 {
		findOpts.SetSkip(opt.Skip)
	}
	return findOpts
}

// datePrefixPattern anchors on the "YYYY-MM-DD " prefix of post_date.
func datePrefixPattern(year, month, day int) string {
	if year <= 0 && month <= 0 && day <= 0 {
		return ""
	}
	pattern := `^\d{4}-`
	if year > 0 {
		pattern = fmt.Sprintf("^%04d-", year)
	}
	if month > 0 {
		pattern += fmt.Sprintf("%02d-", month)
	} else if day > 0 {
		pattern += `\d{2}-`
	}
	if day > 0 {
		pattern += fmt.Sprintf("%02d ", day)
	}
	return pattern
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
