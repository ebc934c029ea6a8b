package department

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Department struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Code        string             `bson:"code" json:"code"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	HodUserID   primitive.ObjectID `bson:"hod_user_id,omitempty" json:"hodUserId,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Code        string `json:"code" validate:"required,min=1"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Code        *string `json:"code" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}
