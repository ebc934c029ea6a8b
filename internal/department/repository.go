package department

import (
	"context"
	"errors"

	"CollegeHub/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("departments")}
}

func (r *Repository) List(ctx context.Context) ([]*Department, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var items []*Department
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Department{}
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, d *Department) error {
	_, err := r.collection.InsertOne(ctx, d)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Department name or code already exists")
	}
	return err
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Department, error) {
	var updated Department
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Department not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("Department name or code already exists")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
