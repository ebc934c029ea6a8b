package profile

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	RollNo       string             `bson:"roll_no" json:"rollNo"`
	DepartmentID primitive.ObjectID `bson:"department_id,omitempty" json:"departmentId,omitempty"`
	Semester     int                `bson:"semester,omitempty" json:"semester,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

type FacultyProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	DepartmentID primitive.ObjectID `bson:"department_id,omitempty" json:"departmentId,omitempty"`
	Bio          string             `bson:"bio,omitempty" json:"bio,omitempty"`
	Expertise    []string           `bson:"expertise,omitempty" json:"expertise,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// StudentView and FacultyView join the profile with the linked user's public
// fields for responses.
type StudentView struct {
	*StudentProfile
	User *LinkedUser `json:"user,omitempty"`
}

type FacultyView struct {
	*FacultyProfile
	User *LinkedUser `json:"user,omitempty"`
}

type LinkedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CreateStudentRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Email        string `json:"email" validate:"required,email"`
	RollNo       string `json:"rollNo" validate:"required,min=1"`
	DepartmentID string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Semester     int    `json:"semester" validate:"omitempty,gt=0"`
}

type UpdateStudentRequest struct {
	RollNo       *string `json:"rollNo" validate:"omitempty,min=1"`
	DepartmentID *string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Semester     *int    `json:"semester" validate:"omitempty,gt=0"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

type CreateFacultyRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Email        string `json:"email" validate:"required,email"`
	Designation  string `json:"designation"`
	DepartmentID string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Password     string `json:"password" validate:"omitempty,min=6"`
}

type UpdateFacultyRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Designation  *string `json:"designation"`
	DepartmentID *string `json:"departmentId" validate:"omitempty,len=24,hexadecimal"`
	Bio          *string `json:"bio"`
}
