package event

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("events")}
}

// List returns all events soonest-first.
func (r *Repository) List(ctx context.Context) ([]*Event, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var items []*Event
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Event{}
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, e *Event) error {
	_, err := r.collection.InsertOne(ctx, e)
	return err
}
