package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"extend-xmlrpc/models"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByLogin returns a user by user_login
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"user_login": login}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user by id
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByIDs returns users in the order of ids; unknown ids are skipped.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var found []models.User
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	return orderUsers(found, ids), nil
}

// Upsert replaces the user with the same id, inserting it if missing.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) (*mongo.UpdateResult, error) {
	opts := options.Replace().SetUpsert(true)
	return r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts)
}

func orderUsers(users []models.User, ids []int64) []models.User {
	byID := make(map[int64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered
}
