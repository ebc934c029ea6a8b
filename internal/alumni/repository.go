package alumni

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
	return &Repository{collection: db.Collection("alumni")}
}

func buildFilter(f ListFilter) bson.M {
	filter := bson.M{}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"email": regex},
			bson.M{"degree": regex},
			bson.M{"department": regex},
			bson.M{"current_company": regex},
			bson.M{"current_position": regex},
		}
	}
	if f.Department != "" {
		filter["department"] = bson.M{"$regex": f.Department, "$options": "i"}
	}
	if f.Degree != "" {
		filter["degree"] = bson.M{"$regex": f.Degree, "$options": "i"}
	}
	if f.GraduationYear > 0 {
		filter["graduation_year"] = f.GraduationYear
	}
	if f.IsActive != nil {
		filter["is_active"] = *f.IsActive
	}
	return filter
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]*Alumni, int64, error) {
	filter := buildFilter(f)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var items []*Alumni
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Alumni{}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search is the capped variant backing the public search endpoint.
func (r *Repository) Search(ctx context.Context, f ListFilter, limit int64) ([]*Alumni, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, err
	}
	var items []*Alumni
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Alumni{}
	}
	return items, nil
}

func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Alumni, error) {
	var a Alumni
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Alumni, error) {
	var a Alumni
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Create(ctx context.Context, a *Alumni) error {
	_, err := r.collection.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Alumni profile already exists for this user or email")
	}
	return err
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Alumni, error) {
	var updated Alumni
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Alumni not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("Email already exists in alumni database")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Stats aggregates headline counts plus per-department and per-year
// groupings.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	active, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:            total,
		Active:           active,
		ByDepartment:     map[string]int64{},
		ByGraduationYear: map[int]int64{},
	}

	deptPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$department", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, deptPipeline)
	if err != nil {
		return nil, err
	}
	var deptRows []struct {
		Department string `bson:"_id"`
		Count      int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &deptRows); err != nil {
		return nil, err
	}
	for _, row := range deptRows {
		stats.ByDepartment[row.Department] = row.Count
	}

	yearPipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$graduation_year", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
	}
	cursor, err = r.collection.Aggregate(ctx, yearPipeline)
	if err != nil {
		return nil, err
	}
	var yearRows []struct {
		Year  int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cursor.All(ctx, &yearRows); err != nil {
		return nil, err
	}
	for _, row := range yearRows {
		stats.ByGraduationYear[row.Year] = row.Count
	}
	return stats, nil
}
