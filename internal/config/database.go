package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const databaseName = "college_website"

type MongoDBConfig struct {
	URI string
}

func NewMongoDBConfig() (*MongoDBConfig, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}
	return &MongoDBConfig{URI: uri}, nil
}

type MongoDBClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBClient(lc fx.Lifecycle, config *MongoDBConfig, logger *zap.Logger) (*MongoDBClient, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	logger.Info("connected to MongoDB")

	lc.Append(fx.Hook{
		OnStop: func(stopCtx context.Context) error {
			logger.Info("closing MongoDB connection")
			return client.Disconnect(stopCtx)
		},
	})

	db := client.Database(databaseName)
	return &MongoDBClient{Client: client, Database: db}, db, nil
}

// EnsureIndexes creates the unique and TTL indexes the flows rely on. The
// unique (email, purpose) index on otp_tokens is what makes the single-active-
// code upsert atomic; the TTL index only reaps stale records, expiry is still
// checked in code.
func EnsureIndexes(db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	specs := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"otp_tokens": {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "purpose", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
		},
		"departments": {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"courses": {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"alumni": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "department", Value: 1}, {Key: "graduation_year", Value: 1}}},
		},
		"student_profiles": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "roll_no", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"faculty_profiles": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"results": {
			{
				Keys: bson.D{
					{Key: "student_user_id", Value: 1},
					{Key: "course_id", Value: 1},
					{Key: "semester", Value: 1},
					{Key: "exam_type", Value: 1},
					{Key: "academic_year", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}
	logger.Info("indexes ensured")
	return nil
}
