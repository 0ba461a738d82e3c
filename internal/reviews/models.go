package reviews

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/juegoteca/backend/internal/games"
)

// Review is the persistent model for a game critique. Stored in the "resenas"
// collection. GameID holds the referenced game's hex id; the reference is
// lookup-only and is never checked at write time.
type Review struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	GameID  string             `json:"gameId" bson:"gameId"`
	Title   string             `json:"title,omitempty" bson:"title,omitempty"`
	Content string             `json:"content" bson:"content"`
	Rating  *float64           `json:"rating,omitempty" bson:"rating,omitempty"`
	Date    time.Time          `json:"date" bson:"date"`
}

// Resolved is a Review whose game reference has been replaced by the full
// game record. Game is null when the referenced game no longer exists.
type Resolved struct {
	ID      primitive.ObjectID `json:"id"`
	Game    *games.Game        `json:"game"`
	Title   string             `json:"title,omitempty"`
	Content string             `json:"content"`
	Rating  *float64           `json:"rating,omitempty"`
	Date    time.Time          `json:"date"`
}

// CreateInput is the accepted body for POST /api/resenas.
type CreateInput struct {
	GameID  string   `json:"gameId" binding:"required"`
	Title   string   `json:"title"`
	Content string   `json:"content" binding:"required"`
	Rating  *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
}

// UpdateInput is the accepted body for PUT /api/resenas/:id. Only present
// fields are applied.
type UpdateInput struct {
	GameID  *string  `json:"gameId" binding:"omitempty,min=1"`
	Title   *string  `json:"title"`
	Content *string  `json:"content" binding:"omitempty,min=1"`
	Rating  *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
}
