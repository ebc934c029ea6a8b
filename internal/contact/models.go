package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an inbound contact-form submission. Reference is the
// opaque token handed back to the sender for follow-up.
type Message struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required,max=5000"`
}

type SubmitResponse struct {
	Ok        bool   `json:"ok"`
	Reference string `json:"reference"`
}
