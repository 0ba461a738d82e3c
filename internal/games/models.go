package games

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Game is the persistent model for a tracked title. Stored in the "juegos"
// collection.
type Game struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Platform    string             `json:"platform,omitempty" bson:"platform,omitempty"`
	Genre       string             `json:"genre,omitempty" bson:"genre,omitempty"`
	Completed   bool               `json:"completed" bson:"completed"`
	Rating      float64            `json:"rating" bson:"rating"`
	HoursPlayed float64            `json:"hoursPlayed" bson:"hoursPlayed"`
	CoverURL    string             `json:"coverUrl,omitempty" bson:"coverUrl,omitempty"`
	DateAdded   time.Time          `json:"dateAdded" bson:"dateAdded"`
}

// CreateInput is the accepted body for POST /api/juegos. Optional numeric and
// boolean fields are pointers so that an absent field can be told apart from
// an explicit zero.
type CreateInput struct {
	Title       string   `json:"title" binding:"required"`
	Platform    string   `json:"platform"`
	Genre       string   `json:"genre"`
	Completed   *bool    `json:"completed"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	HoursPlayed *float64 `json:"hoursPlayed"`
	CoverURL    string   `json:"coverUrl"`
}

// UpdateInput is the accepted body for PUT /api/juegos/:id. Only fields that
// are present are applied; title cannot be cleared.
type UpdateInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=1"`
	Platform    *string  `json:"platform"`
	Genre       *string  `json:"genre"`
	Completed   *bool    `json:"completed"`
	Rating      *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	HoursPlayed *float64 `json:"hoursPlayed"`
	CoverURL    *string  `json:"coverUrl"`
}
