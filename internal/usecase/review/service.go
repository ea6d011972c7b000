package review

import (
	"context"
	"strings"

	domainLocation "accessmap/internal/domain/location"
	domainReview "accessmap/internal/domain/review"
	"accessmap/internal/logger"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements review and reply use cases
type Service struct {
	reviewRepo   domainReview.Repository
	locationRepo domainLocation.Repository
}

// NewService creates a new review service
func NewService(reviewRepo domainReview.Repository, locationRepo domainLocation.Repository) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		locationRepo: locationRepo,
	}
}

// Add creates a review for a location. The repository inserts the review
// and refreshes the location aggregate atomically.
func (s *Service) Add(ctx context.Context, username string, locationID uuid.UUID, req *AddReviewRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Missing required fields", err)
	}

	if req.Rating < domainReview.MinRating || req.Rating > domainReview.MaxRating {
		return nil, domainReview.ErrInvalidRating
	}

	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		return nil, err
	}

	rev := &domainReview.Review{
		LocationID: locationID,
		Username:   username,
		Comment:    req.Comment,
		Rating:     req.Rating,
	}

	if err := s.reviewRepo.Create(ctx, rev); err != nil {
		return nil, err
	}

	logger.Info("Review added",
		zap.String("review_id", rev.ID.String()),
		zap.String("location_id", locationID.String()),
		zap.String("username", username),
		zap.Int("rating", rev.Rating),
		zap.String("event", "review_added"),
	)

	return ToReviewResponse(rev), nil
}

// ListByLocation returns a location's reviews with their reply threads and
// like sets, newest first.
func (s *Service) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]*ReviewResponse, error) {
	reviews, err := s.reviewRepo.GetByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	return ToReviewResponses(reviews), nil
}

// ListByUser returns the reviews written by username, newest first.
func (s *Service) ListByUser(ctx context.Context, username string) ([]*ReviewResponse, error) {
	reviews, err := s.reviewRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return ToReviewResponses(reviews), nil
}

// Edit replaces the review's comment and/or rating. Only the author may
// edit; a rating change recomputes the location aggregate.
func (s *Service) Edit(ctx context.Context, username string, reviewID uuid.UUID, req *EditReviewRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	hasComment := req.Comment != nil && strings.TrimSpace(*req.Comment) != ""
	if !hasComment && req.Rating == nil {
		return nil, domainReview.ErrNothingToUpdate
	}

	if req.Rating != nil && (*req.Rating < domainReview.MinRating || *req.Rating > domainReview.MaxRating) {
		return nil, domainReview.ErrInvalidRating
	}

	rev, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !rev.IsAuthor(username) {
		return nil, domainReview.ErrNotAuthor
	}

	if hasComment {
		rev.Comment = *req.Comment
	}

	ratingChanged := false
	if req.Rating != nil && *req.Rating != rev.Rating {
		rev.Rating = *req.Rating
		ratingChanged = true
	}

	if err := s.reviewRepo.Update(ctx, rev, ratingChanged); err != nil {
		return nil, err
	}

	logger.Info("Review edited",
		zap.String("review_id", rev.ID.String()),
		zap.String("username", username),
		zap.Bool("rating_changed", ratingChanged),
		zap.String("event", "review_edited"),
	)

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return ToReviewResponse(updated), nil
}

// Delete removes the author's review and its thread; the location aggregate
// is refreshed in the same transaction.
func (s *Service) Delete(ctx context.Context, username string, reviewID uuid.UUID) error {
	rev, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !rev.IsAuthor(username) {
		return domainReview.ErrNotAuthor
	}

	if err := s.reviewRepo.Delete(ctx, rev); err != nil {
		return err
	}

	logger.Info("Review deleted",
		zap.String("review_id", reviewID.String()),
		zap.String("username", username),
		zap.String("event", "review_deleted"),
	)

	return nil
}

// ToggleLike adds or removes the user's like on a review based on current
// membership. The unique (review, username) pair keeps the toggle
// idempotent under concurrent requests.
func (s *Service) ToggleLike(ctx context.Context, username string, reviewID uuid.UUID) (*LikeResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	hasLiked, err := s.reviewRepo.HasLiked(ctx, reviewID, username)
	if err != nil {
		return nil, err
	}

	if hasLiked {
		err = s.reviewRepo.RemoveLike(ctx, reviewID, username)
	} else {
		err = s.reviewRepo.AddLike(ctx, reviewID, username)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return &LikeResponse{
		Likes:   updated.Likes,
		LikedBy: updated.LikedBy,
		Liked:   !hasLiked,
	}, nil
}

// AddReply appends a reply to a review's thread.
func (s *Service) AddReply(ctx context.Context, username string, reviewID uuid.UUID, req *ReplyRequest) (*ReplyResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Empty reply not allowed", err)
	}

	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	reply := &domainReview.Reply{
		ReviewID: reviewID,
		Username: username,
		Text:     req.Text,
	}

	if err := s.reviewRepo.AddReply(ctx, reply); err != nil {
		return nil, err
	}

	logger.Info("Reply added",
		zap.String("reply_id", reply.ID.String()),
		zap.String("review_id", reviewID.String()),
		zap.String("username", username),
		zap.String("event", "reply_added"),
	)

	return ToReplyResponse(reply), nil
}

// EditReply replaces a reply's text and returns the updated review thread.
func (s *Service) EditReply(ctx context.Context, username string, reviewID, replyID uuid.UUID, req *ReplyRequest) (*ReviewResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Empty reply not allowed", err)
	}

	reply, err := s.getOwnedReply(ctx, username, reviewID, replyID)
	if err != nil {
		return nil, err
	}

	reply.Text = req.Text
	if err := s.reviewRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return ToReviewResponse(updated), nil
}

// DeleteReply removes the author's reply and returns the updated review
// thread.
func (s *Service) DeleteReply(ctx context.Context, username string, reviewID, replyID uuid.UUID) (*ReviewResponse, error) {
	if _, err := s.getOwnedReply(ctx, username, reviewID, replyID); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.DeleteReply(ctx, reviewID, replyID); err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return ToReviewResponse(updated), nil
}

// ToggleReplyLike toggles the user's like on a reply.
func (s *Service) ToggleReplyLike(ctx context.Context, username string, reviewID, replyID uuid.UUID) (*ReplyLikeResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	reply, err := s.reviewRepo.GetReply(ctx, reviewID, replyID)
	if err != nil {
		return nil, err
	}

	hasLiked, err := s.reviewRepo.HasReplyLike(ctx, reply.ID, username)
	if err != nil {
		return nil, err
	}

	if hasLiked {
		err = s.reviewRepo.RemoveReplyLike(ctx, reply.ID, username)
	} else {
		err = s.reviewRepo.AddReplyLike(ctx, reply.ID, username)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.reviewRepo.GetReply(ctx, reviewID, replyID)
	if err != nil {
		return nil, err
	}

	return &ReplyLikeResponse{
		LikedBy: updated.LikedBy,
		Liked:   !hasLiked,
	}, nil
}

func (s *Service) getOwnedReply(ctx context.Context, username string, reviewID, replyID uuid.UUID) (*domainReview.Reply, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		return nil, err
	}

	reply, err := s.reviewRepo.GetReply(ctx, reviewID, replyID)
	if err != nil {
		return nil, err
	}

	if !reply.IsAuthor(username) {
		return nil, domainReview.ErrNotAuthor
	}

	return reply, nil
}
