package review

import (
	"time"

	domainReview "accessmap/internal/domain/review"

	"github.com/google/uuid"
)

// Request DTOs. Rating bounds are enforced by the service so that an
// out-of-range value reports ErrInvalidRating rather than a generic
// validation failure.
type AddReviewRequest struct {
	Comment string `json:"comment" validate:"required,max=5000"`
	Rating  int    `json:"accessibilityRating" validate:"required"`
}

// EditReviewRequest updates comment and/or rating; nil fields are left
// unchanged.
type EditReviewRequest struct {
	Comment *string `json:"comment" validate:"omitempty,max=5000"`
	Rating  *int    `json:"accessibilityRating"`
}

type ReplyRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// Response DTOs
type ReplyResponse struct {
	ID        uuid.UUID `json:"id"`
	ReviewID  uuid.UUID `json:"reviewId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	LikedBy   []string  `json:"likedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReviewResponse struct {
	ID         uuid.UUID        `json:"id"`
	LocationID uuid.UUID        `json:"locationId"`
	Username   string           `json:"user"`
	Comment    string           `json:"comment"`
	Rating     int              `json:"accessibilityRating"`
	Likes      int64            `json:"likes"`
	LikedBy    []string         `json:"likedBy"`
	Replies    []*ReplyResponse `json:"replies"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type LikeResponse struct {
	Likes   int64    `json:"likes"`
	LikedBy []string `json:"likedBy"`
	Liked   bool     `json:"liked"`
}

type ReplyLikeResponse struct {
	LikedBy []string `json:"likedBy"`
	Liked   bool     `json:"liked"`
}

func ToReplyResponse(reply *domainReview.Reply) *ReplyResponse {
	likedBy := reply.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}

	return &ReplyResponse{
		ID:        reply.ID,
		ReviewID:  reply.ReviewID,
		Username:  reply.Username,
		Text:      reply.Text,
		LikedBy:   likedBy,
		CreatedAt: reply.CreatedAt,
	}
}

func ToReviewResponse(rev *domainReview.Review) *ReviewResponse {
	likedBy := rev.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}

	replies := make([]*ReplyResponse, len(rev.Replies))
	for i, reply := range rev.Replies {
		replies[i] = ToReplyResponse(reply)
	}

	return &ReviewResponse{
		ID:         rev.ID,
		LocationID: rev.LocationID,
		Username:   rev.Username,
		Comment:    rev.Comment,
		Rating:     rev.Rating,
		Likes:      rev.Likes,
		LikedBy:    likedBy,
		Replies:    replies,
		CreatedAt:  rev.CreatedAt,
		UpdatedAt:  rev.UpdatedAt,
	}
}

func ToReviewResponses(reviews []*domainReview.Review) []*ReviewResponse {
	responses := make([]*ReviewResponse, len(reviews))
	for i, rev := range reviews {
		responses[i] = ToReviewResponse(rev)
	}
	return responses
}
