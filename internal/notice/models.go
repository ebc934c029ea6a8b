package notice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Content       string             `bson:"content" json:"content"`
	Category      string             `bson:"category" json:"category"`
	Attachments   []string           `bson:"attachments,omitempty" json:"attachments,omitempty"`
	IsPinned      bool               `bson:"is_pinned" json:"isPinned"`
	AudienceRoles []string           `bson:"audience_roles,omitempty" json:"audienceRoles,omitempty"`
	PublishedAt   time.Time          `bson:"published_at" json:"publishedAt"`
	CreatedBy     primitive.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateNoticeRequest struct {
	Title         string     `json:"title" validate:"required,min=1"`
	Content       string     `json:"content" validate:"required,min=1"`
	Category      string     `json:"category" validate:"omitempty"`
	Attachments   []string   `json:"attachments" validate:"omitempty,dive,uri"`
	IsPinned      *bool      `json:"isPinned"`
	AudienceRoles []string   `json:"audienceRoles" validate:"omitempty,dive,oneof=student teacher alumni admin"`
	PublishedAt   *time.Time `json:"publishedAt"`
}

type UpdateNoticeRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1"`
	Content       *string    `json:"content" validate:"omitempty,min=1"`
	Category      *string    `json:"category"`
	Attachments   []string   `json:"attachments" validate:"omitempty,dive,uri"`
	IsPinned      *bool      `json:"isPinned"`
	AudienceRoles []string   `json:"audienceRoles" validate:"omitempty,dive,oneof=student teacher alumni admin"`
	PublishedAt   *time.Time `json:"publishedAt"`
}
