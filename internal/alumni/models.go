package alumni

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Alumni struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	GraduationYear  int                `bson:"graduation_year" json:"graduationYear"`
	Degree          string             `bson:"degree" json:"degree"`
	Department      string             `bson:"department" json:"department"`
	CurrentCompany  string             `bson:"current_company,omitempty" json:"currentCompany,omitempty"`
	CurrentPosition string             `bson:"current_position,omitempty" json:"currentPosition,omitempty"`
	Location        string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn        string             `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Achievements    []string           `bson:"achievements,omitempty" json:"achievements,omitempty"`
	IsActive        bool               `bson:"is_active" json:"isActive"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateAlumniRequest struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	GraduationYear  int      `json:"graduationYear" validate:"required,min=1900"`
	Degree          string   `json:"degree" validate:"required,max=100"`
	Department      string   `json:"department" validate:"required,max=100"`
	CurrentCompany  string   `json:"currentCompany" validate:"max=200"`
	CurrentPosition string   `json:"currentPosition" validate:"max=200"`
	Location        string   `json:"location" validate:"max=200"`
	Phone           string   `json:"phone" validate:"omitempty,e164"`
	LinkedIn        string   `json:"linkedin" validate:"omitempty,url"`
	Achievements    []string `json:"achievements" validate:"omitempty,dive,max=500"`
	IsActive        *bool    `json:"isActive"`
}

type UpdateAlumniRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=100"`
	Email           *string  `json:"email" validate:"omitempty,email"`
	GraduationYear  *int     `json:"graduationYear" validate:"omitempty,min=1900"`
	Degree          *string  `json:"degree" validate:"omitempty,max=100"`
	Department      *string  `json:"department" validate:"omitempty,max=100"`
	CurrentCompany  *string  `json:"currentCompany" validate:"omitempty,max=200"`
	CurrentPosition *string  `json:"currentPosition" validate:"omitempty,max=200"`
	Location        *string  `json:"location" validate:"omitempty,max=200"`
	Phone           *string  `json:"phone" validate:"omitempty,e164"`
	LinkedIn        *string  `json:"linkedin" validate:"omitempty,url"`
	Achievements    []string `json:"achievements" validate:"omitempty,dive,max=500"`
	IsActive        *bool    `json:"isActive"`
}

// ListFilter narrows alumni queries; zero values mean no constraint.
type ListFilter struct {
	Search         string
	Department     string
	Degree         string
	GraduationYear int
	IsActive       *bool
	Page           int64
	Limit          int64
}

type Stats struct {
	Total            int64            `json:"total"`
	Active           int64            `json:"active"`
	ByDepartment     map[string]int64 `json:"byDepartment"`
	ByGraduationYear map[int]int64    `json:"byGraduationYear"`
}
