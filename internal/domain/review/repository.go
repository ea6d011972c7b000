package review

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for review repository operations.
//
// Create, Update with a rating change, and Delete must keep the owning
// location's average rating and review count in step with the reviews table
// atomically, so readers never observe a review without its aggregate effect.
type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, reviewID uuid.UUID) (*Review, error)
	GetByLocation(ctx context.Context, locationID uuid.UUID) ([]*Review, error)
	GetByUsername(ctx context.Context, username string) ([]*Review, error)
	Update(ctx context.Context, rev *Review, ratingChanged bool) error
	Delete(ctx context.Context, rev *Review) error

	HasLiked(ctx context.Context, reviewID uuid.UUID, username string) (bool, error)
	AddLike(ctx context.Context, reviewID uuid.UUID, username string) error
	RemoveLike(ctx context.Context, reviewID uuid.UUID, username string) error

	AddReply(ctx context.Context, reply *Reply) error
	GetReply(ctx context.Context, reviewID, replyID uuid.UUID) (*Reply, error)
	UpdateReply(ctx context.Context, reply *Reply) error
	DeleteReply(ctx context.Context, reviewID, replyID uuid.UUID) error

	HasReplyLike(ctx context.Context, replyID uuid.UUID, username string) (bool, error)
	AddReplyLike(ctx context.Context, replyID uuid.UUID, username string) error
	RemoveReplyLike(ctx context.Context, replyID uuid.UUID, username string) error
}
