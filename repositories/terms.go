package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"extend-xmlrpc/models"
)

type TermRepository struct {
	col *mongo.Collection
}

func NewTermRepository(db *mongo.Database) *TermRepository {
	return &TermRepository{col: db.Collection("terms")}
}

// FindByIDs returns the terms of one taxonomy among ids, sorted by name.
func (r *TermRepository) FindByIDs(ctx context.Context, taxonomy string, ids []int64) ([]models.Term, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "taxonomy": taxonomy})
}

// FindBySlugs returns the terms of one taxonomy whose slug is in slugs.
func (r *TermRepository) FindBySlugs(ctx context.Context, taxonomy string, slugs []string) ([]models.Term, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"slug": bson.M{"$in": slugs}, "taxonomy": taxonomy})
}

// ListByTaxonomy returns every term of a taxonomy.
func (r *TermRepository) ListByTaxonomy(ctx context.Context, taxonomy string) ([]models.Term, error) {
	return r.find(ctx, bson.M{"taxonomy": taxonomy})
}

// Upsert replaces the term with the same id, inserting it if missing.
func (r *TermRepository) Upsert(ctx context.Context, t *models.Term) (*mongo.UpdateResult, error) {
	opts := options.Replace().SetUpsert(true)
	return r.col.ReplaceOne(ctx, bson.M{"_id": t.ID}, t, opts)
}

func (r *TermRepository) find(ctx context.Context, filter bson.M) ([]models.Term, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Term
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
