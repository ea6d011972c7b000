package review

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a user's accessibility rating and comment on a location.
type Review struct {
	ID         uuid.UUID
	LocationID uuid.UUID

	// Username of the authoring user; only the author may edit or delete.
	Username string

	Comment string
	Rating  int

	// Likes mirrors the cardinality of LikedBy; a username appears at most
	// once in the set.
	Likes   int64
	LikedBy []string

	Replies []*Reply

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reply is a threaded comment attached to a review. It is mutated and
// deleted only by its author, through operations on the parent review.
type Reply struct {
	ID       uuid.UUID
	ReviewID uuid.UUID

	Username string
	Text     string

	LikedBy []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAuthor reports whether username wrote the review.
func (r *Review) IsAuthor(username string) bool {
	return r.Username == username
}

// IsAuthor reports whether username wrote the reply.
func (r *Reply) IsAuthor(username string) bool {
	return r.Username == username
}

// RoundAverage rounds an average rating to one decimal place, the precision
// stored on the location aggregate.
func RoundAverage(avg float64) float64 {
	return math.Round(avg*10) / 10
}
