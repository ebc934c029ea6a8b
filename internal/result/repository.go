package result

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
	return &Repository{collection: db.Collection("results")}
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]*Result, int64, error) {
	filter := bson.M{}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"academic_year": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"exam_type": bson.M{"$regex": f.Search, "$options": "i"}},
		}
	}
	if !f.StudentID.IsZero() {
		filter["student_user_id"] = f.StudentID
	}
	if !f.CourseID.IsZero() {
		filter["course_id"] = f.CourseID
	}
	if f.Semester > 0 {
		filter["semester"] = f.Semester
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((f.Page - 1) * f.Limit).
		SetLimit(f.Limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var items []*Result
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []*Result{}
	}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByStudent returns a student's results newest-semester-first, optionally
// narrowed to a semester or academic year.
func (r *Repository) ListByStudent(ctx context.Context, studentID primitive.ObjectID, semester int, academicYear string) ([]*Result, error) {
	filter := bson.M{"student_user_id": studentID}
	if semester > 0 {
		filter["semester"] = semester
	}
	if academicYear != "" {
		filter["academic_year"] = academicYear
	}
	opts := options.Find().SetSort(bson.D{{Key: "semester", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var items []*Result
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Result{}
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, res *Result) error {
	_, err := r.collection.InsertOne(ctx, res)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Result already recorded for this student, course, semester and exam type")
	}
	return err
}

func (r *Repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Result, error) {
	var updated Result
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Result not found")
		}
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
