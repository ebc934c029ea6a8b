package contact

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("contact_messages")}
}

func (r *Repository) Insert(ctx context.Context, m *Message) error {
	_, err := r.collection.InsertOne(ctx, m)
	return err
}
