package profile

import (
	"context"
	"errors"

	"CollegeHub/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StudentRepository struct {
	collection *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{collection: db.Collection("student_profiles")}
}

func (r *StudentRepository) List(ctx context.Context, search string, page, limit int64) ([]*StudentProfile, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["roll_no"] = bson.M{"$regex": search, "$options": "i"}
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var items []*StudentProfile
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*StudentProfile{}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*StudentProfile, error) {
	var p StudentProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *StudentRepository) Create(ctx context.Context, p *StudentProfile) error {
	_, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Roll number already registered")
	}
	return err
}

func (r *StudentRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*StudentProfile, error) {
	var updated StudentProfile
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Student not found")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *StudentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type FacultyRepository struct {
	collection *mongo.Collection
}

func NewFacultyRepository(db *mongo.Database) *FacultyRepository {
	return &FacultyRepository{collection: db.Collection("faculty_profiles")}
}

func (r *FacultyRepository) List(ctx context.Context) ([]*FacultyProfile, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var items []*FacultyProfile
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*FacultyProfile{}
	}
	return items, nil
}

func (r *FacultyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*FacultyProfile, error) {
	var p FacultyProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *FacultyRepository) Create(ctx context.Context, p *FacultyProfile) error {
	_, err := r.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Faculty profile already exists for this user")
	}
	return err
}

func (r *FacultyRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*FacultyProfile, error) {
	var updated FacultyProfile
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Faculty not found")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *FacultyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
