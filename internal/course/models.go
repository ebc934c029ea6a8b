package course

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code         string             `bson:"code" json:"code"`
	Title        string             `bson:"title" json:"title"`
	Credits      int                `bson:"credits" json:"credits"`
	DepartmentID primitive.ObjectID `bson:"department_id,omitempty" json:"departmentId,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateCourseRequest struct {
	Code         string `json:"code" validate:"required,min=1"`
	Title        string `json:"title" validate:"required,min=1"`
	Credits      int    `json:"credits" validate:"omitempty,gt=0"`
	DepartmentID string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Description  string `json:"description"`
}

type UpdateCourseRequest struct {
	Code         *string `json:"code" validate:"omitempty,min=1"`
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Credits      *int    `json:"credits" validate:"omitempty,gt=0"`
	DepartmentID *string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Description  *string `json:"description"`
}
