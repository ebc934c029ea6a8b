package result

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Result struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentUserID primitive.ObjectID `bson:"student_user_id" json:"studentUserId"`
	CourseID      primitive.ObjectID `bson:"course_id" json:"courseId"`
	Semester      int                `bson:"semester" json:"semester"`
	Marks         float64            `bson:"marks" json:"marks"`
	Grade         string             `bson:"grade" json:"grade"`
	ExamType      string             `bson:"exam_type" json:"examType"`
	AcademicYear  string             `bson:"academic_year" json:"academicYear"`
	CreatedBy     primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateResultRequest struct {
	StudentUserID string  `json:"studentUserId" validate:"required,len=24,hexadecimal"`
	CourseID      string  `json:"courseId" validate:"required,len=24,hexadecimal"`
	Semester      int     `json:"semester" validate:"required,gt=0"`
	Marks         float64 `json:"marks" validate:"gte=0,lte=100"`
	Grade         string  `json:"grade" validate:"required,oneof=A+ A B+ B C+ C D F"`
	ExamType      string  `json:"examType" validate:"omitempty,oneof=midterm final assignment quiz"`
	AcademicYear  string  `json:"academicYear" validate:"required,min=1"`
}

type UpdateResultRequest struct {
	Semester     *int     `json:"semester" validate:"omitempty,gt=0"`
	Marks        *float64 `json:"marks" validate:"omitempty,gte=0,lte=100"`
	Grade        *string  `json:"grade" validate:"omitempty,oneof=A+ A B+ B C+ C D F"`
	ExamType     *string  `json:"examType" validate:"omitempty,oneof=midterm final assignment quiz"`
	AcademicYear *string  `json:"academicYear" validate:"omitempty,min=1"`
}

// ListFilter narrows the result listing; zero values mean no constraint.
type ListFilter struct {
	Search    string
	StudentID primitive.ObjectID
	CourseID  primitive.ObjectID
	Semester  int
	Page      int64
	Limit     int64
}
