package auth

import (
	"context"
	"errors"
	"time"

	"CollegeHub/internal/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Conflict("Email already registered")
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password_hash": hash, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("User not found")
	}
	return nil
}

// UpdateIdentity renames and/or re-addresses a user; empty fields are left
// untouched. Used by the profile module when a linked account is edited.
func (r *UserRepository) UpdateIdentity(ctx context.Context, id primitive.ObjectID, name, email string) error {
	set := bson.M{"updated_at": time.Now()}
	if name != "" {
		set["name"] = name
	}
	if email != "" {
		set["email"] = NormalizeEmail(email)
	}
	_, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set})
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict("Email already registered")
	}
	return err
}

// Delete removes a user record. The auth flows never call this; it exists for
// cascading cleanup when a linked profile is removed.
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

type OtpRepository struct {
	collection *mongo.Collection
}

func NewOtpRepository(db *mongo.Database) *OtpRepository {
	return &OtpRepository{collection: db.Collection("otp_tokens")}
}

// Replace upserts against the unique (email, purpose) index, so two
// concurrent issuances cannot leave two live records. The replacement goes in
// without an _id: an existing record keeps its id, a fresh one gets assigned.
func (r *OtpRepository) Replace(ctx context.Context, token *OtpToken) error {
	filter := bson.M{"email": token.Email, "purpose": token.Purpose}
	doc := *token
	doc.ID = primitive.NilObjectID
	_, err := r.collection.ReplaceOne(ctx, filter, &doc, options.Replace().SetUpsert(true))
	return err
}

func (r *OtpRepository) Find(ctx context.Context, email, purpose string) (*OtpToken, error) {
	var token OtpToken
	err := r.collection.FindOne(ctx, bson.M{"email": email, "purpose": purpose}).Decode(&token)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *OtpRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *OtpRepository) IncrementAttempts(ctx context.Context, id primitive.ObjectID) (int, error) {
	var updated OtpToken
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"attempts": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Record consumed or replaced mid-verify; treat as one failure.
			return 1, nil
		}
		return 0, err
	}
	return updated.Attempts, nil
}
