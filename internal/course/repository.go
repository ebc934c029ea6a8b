package course

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
	return &Repository{collection: db.Collection("courses")}
}

func (r *Repository) List(ctx context.Context, search string, page, limit int64) ([]*Course, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": search, "$options": "i"}},
			bson.M{"code": bson.M{"$regex": search, "$options": "i"}},
		}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var items []*Course
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Course{}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) Create(ctx context.Context, course *Course) error {
	_, err := r.collection.InsertOne(ctx, course)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Course code already exists")
	}
	return err
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Course, error) {
	var updated Course
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Course not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("Course code already exists")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
