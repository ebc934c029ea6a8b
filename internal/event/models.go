package event

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartAt     time.Time          `bson:"start_at" json:"startAt"`
	EndAt       time.Time          `bson:"end_at" json:"endAt"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	BannerURL   string             `bson:"banner_url,omitempty" json:"bannerUrl,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	IsPublished bool               `bson:"is_published" json:"isPublished"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required,min=1"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"startAt" validate:"required"`
	EndAt       time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
	Location    string    `json:"location"`
	BannerURL   string    `json:"bannerUrl" validate:"omitempty,url"`
	Tags        []string  `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
}
