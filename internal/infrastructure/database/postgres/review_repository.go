package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accessmap/internal/domain/review"
	"accessmap/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRepository implements the review domain Repository interface
type ReviewRepository struct {
	db *DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *DB) review.Repository {
	return &ReviewRepository{db: db}
}

// Create inserts the review and recomputes the owning location's aggregate
// inside one transaction; on failure neither change is persisted.
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	rev.ID = uuid.New()
	rev.CreatedAt = time.Now()
	rev.UpdatedAt = rev.CreatedAt

	dbModel := toReviewModel(rev)

	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbModel).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return recomputeLocationAggregate(tx, rev.LocationID)
	})
	if err != nil {
		return err
	}

	rev.ID = dbModel.ID

	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, reviewID uuid.UUID) (*review.Review, error) {
	var dbModel models.ReviewModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", reviewID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, review.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	reviews, err := r.assemble(ctx, []models.ReviewModel{dbModel})
	if err != nil {
		return nil, err
	}

	return reviews[0], nil
}

func (r *ReviewRepository) GetByLocation(ctx context.Context, locationID uuid.UUID) ([]*review.Review, error) {
	var dbModels []models.ReviewModel
	err := r.db.DB.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return r.assemble(ctx, dbModels)
}

func (r *ReviewRepository) GetByUsername(ctx context.Context, username string) ([]*review.Review, error) {
	var dbModels []models.ReviewModel
	err := r.db.DB.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return r.assemble(ctx, dbModels)
}

// Update replaces comment and rating. When the rating changed the location
// aggregate is recomputed in the same transaction.
func (r *ReviewRepository) Update(ctx context.Context, rev *review.Review, ratingChanged bool) error {
	rev.UpdatedAt = time.Now()

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ReviewModel{}).
			Where("id = ?", rev.ID).
			Updates(map[string]interface{}{
				"comment":    rev.Comment,
				"rating":     rev.Rating,
				"updated_at": rev.UpdatedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return review.ErrReviewNotFound
		}

		if !ratingChanged {
			return nil
		}
		return recomputeLocationAggregate(tx, rev.LocationID)
	})
}

// Delete removes the review along with its likes and reply thread, then
// recomputes the location aggregate, all atomically.
func (r *ReviewRepository) Delete(ctx context.Context, rev *review.Review) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var replyIDs []uuid.UUID
		if err := tx.Model(&models.ReplyModel{}).
			Where("review_id = ?", rev.ID).
			Pluck("id", &replyIDs).Error; err != nil {
			return fmt.Errorf("failed to list replies: %w", err)
		}

		if len(replyIDs) > 0 {
			if err := tx.Where("reply_id IN ?", replyIDs).Delete(&models.ReplyLikeModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete reply likes: %w", err)
			}
			if err := tx.Where("review_id = ?", rev.ID).Delete(&models.ReplyModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete replies: %w", err)
			}
		}

		if err := tx.Where("review_id = ?", rev.ID).Delete(&models.ReviewLikeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete review likes: %w", err)
		}

		result := tx.Where("id = ?", rev.ID).Delete(&models.ReviewModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete review: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return review.ErrReviewNotFound
		}

		return recomputeLocationAggregate(tx, rev.LocationID)
	})
}

func (r *ReviewRepository) HasLiked(ctx context.Context, reviewID uuid.UUID, username string) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.ReviewLikeModel{}).
		Where("review_id = ? AND username = ?", reviewID, username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return count > 0, nil
}

func (r *ReviewRepository) AddLike(ctx context.Context, reviewID uuid.UUID, username string) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &models.ReviewLikeModel{
			ID:        uuid.New(),
			ReviewID:  reviewID,
			Username:  username,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(like).Error; err != nil {
			// The unique pair index absorbs a concurrent double-like.
			if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
				return nil
			}
			return fmt.Errorf("failed to add like: %w", err)
		}

		return tx.Model(&models.ReviewModel{}).
			Where("id = ?", reviewID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error
	})
}

func (r *ReviewRepository) RemoveLike(ctx context.Context, reviewID uuid.UUID, username string) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("review_id = ? AND username = ?", reviewID, username).
			Delete(&models.ReviewLikeModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove like: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&models.ReviewModel{}).
			Where("id = ? AND likes > 0", reviewID).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error
	})
}

func (r *ReviewRepository) AddReply(ctx context.Context, reply *review.Reply) error {
	reply.ID = uuid.New()
	reply.CreatedAt = time.Now()
	reply.UpdatedAt = reply.CreatedAt

	dbModel := toReplyModel(reply)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create reply: %w", err)
	}

	reply.ID = dbModel.ID

	return nil
}

func (r *ReviewRepository) GetReply(ctx context.Context, reviewID, replyID uuid.UUID) (*review.Reply, error) {
	var dbModel models.ReplyModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND review_id = ?", replyID, reviewID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, review.ErrReplyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reply: %w", err)
	}

	reply := toReplyEntity(&dbModel)

	var likedBy []string
	err = r.db.DB.WithContext(ctx).Model(&models.ReplyLikeModel{}).
		Where("reply_id = ?", replyID).
		Order("created_at").
		Pluck("username", &likedBy).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reply likes: %w", err)
	}
	reply.LikedBy = likedBy

	return reply, nil
}

func (r *ReviewRepository) UpdateReply(ctx context.Context, reply *review.Reply) error {
	reply.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.ReplyModel{}).
		Where("id = ? AND review_id = ?", reply.ID, reply.ReviewID).
		Updates(map[string]interface{}{
			"text":       reply.Text,
			"updated_at": reply.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reply: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrReplyNotFound
	}

	return nil
}

func (r *ReviewRepository) DeleteReply(ctx context.Context, reviewID, replyID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reply_id = ?", replyID).Delete(&models.ReplyLikeModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete reply likes: %w", err)
		}

		result := tx.Where("id = ? AND review_id = ?", replyID, reviewID).
			Delete(&models.ReplyModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete reply: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return review.ErrReplyNotFound
		}

		return nil
	})
}

func (r *ReviewRepository) HasReplyLike(ctx context.Context, replyID uuid.UUID, username string) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.ReplyLikeModel{}).
		Where("reply_id = ? AND username = ?", replyID, username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reply like: %w", err)
	}

	return count > 0, nil
}

func (r *ReviewRepository) AddReplyLike(ctx context.Context, replyID uuid.UUID, username string) error {
	like := &models.ReplyLikeModel{
		ID:        uuid.New(),
		ReplyID:   replyID,
		Username:  username,
		CreatedAt: time.Now(),
	}
	if err := r.db.DB.WithContext(ctx).Create(like).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return nil
		}
		return fmt.Errorf("failed to add reply like: %w", err)
	}

	return nil
}

func (r *ReviewRepository) RemoveReplyLike(ctx context.Context, replyID uuid.UUID, username string) error {
	err := r.db.DB.WithContext(ctx).
		Where("reply_id = ? AND username = ?", replyID, username).
		Delete(&models.ReplyLikeModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove reply like: %w", err)
	}

	return nil
}

// recomputeLocationAggregate refreshes the denormalized average rating and
// review count from the reviews table within the caller's transaction.
func recomputeLocationAggregate(tx *gorm.DB, locationID uuid.UUID) error {
	var agg struct {
		Avg   float64
		Count int64
	}

	err := tx.Model(&models.ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("location_id = ?", locationID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("failed to compute aggregate: %w", err)
	}

	result := tx.Model(&models.LocationModel{}).
		Where("id = ?", locationID).
		Updates(map[string]interface{}{
			"average_rating": review.RoundAverage(agg.Avg),
			"review_count":   agg.Count,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update aggregate: %w", result.Error)
	}

	return nil
}

// assemble attaches like sets and reply threads to a batch of reviews.
func (r *ReviewRepository) assemble(ctx context.Context, dbModels []models.ReviewModel) ([]*review.Review, error) {
	reviews := make([]*review.Review, len(dbModels))
	if len(dbModels) == 0 {
		return reviews, nil
	}

	reviewIDs := make([]uuid.UUID, len(dbModels))
	byID := make(map[uuid.UUID]*review.Review, len(dbModels))
	for i := range dbModels {
		rev := toReviewEntity(&dbModels[i])
		rev.LikedBy = []string{}
		rev.Replies = []*review.Reply{}
		reviews[i] = rev
		reviewIDs[i] = rev.ID
		byID[rev.ID] = rev
	}

	var likes []models.ReviewLikeModel
	err := r.db.DB.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Order("created_at").
		Find(&likes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get review likes: %w", err)
	}
	for i := range likes {
		if rev, ok := byID[likes[i].ReviewID]; ok {
			rev.LikedBy = append(rev.LikedBy, likes[i].Username)
		}
	}

	var replyModels []models.ReplyModel
	err = r.db.DB.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Order("created_at").
		Find(&replyModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}

	replyByID := make(map[uuid.UUID]*review.Reply, len(replyModels))
	replyIDs := make([]uuid.UUID, 0, len(replyModels))
	for i := range replyModels {
		reply := toReplyEntity(&replyModels[i])
		reply.LikedBy = []string{}
		replyByID[reply.ID] = reply
		replyIDs = append(replyIDs, reply.ID)
		if rev, ok := byID[reply.ReviewID]; ok {
			rev.Replies = append(rev.Replies, reply)
		}
	}

	if len(replyIDs) > 0 {
		var replyLikes []models.ReplyLikeModel
		err = r.db.DB.WithContext(ctx).
			Where("reply_id IN ?", replyIDs).
			Order("created_at").
			Find(&replyLikes).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get reply likes: %w", err)
		}
		for i := range replyLikes {
			if reply, ok := replyByID[replyLikes[i].ReplyID]; ok {
				reply.LikedBy = append(reply.LikedBy, replyLikes[i].Username)
			}
		}
	}

	return reviews, nil
}

func toReviewModel(rev *review.Review) *models.ReviewModel {
	return &models.ReviewModel{
		ID:         rev.ID,
		LocationID: rev.LocationID,
		Username:   rev.Username,
		Comment:    rev.Comment,
		Rating:     rev.Rating,
		Likes:      rev.Likes,
		CreatedAt:  rev.CreatedAt,
		UpdatedAt:  rev.UpdatedAt,
	}
}

func toReviewEntity(m *models.ReviewModel) *review.Review {
	return &review.Review{
		ID:         m.ID,
		LocationID: m.LocationID,
		Username:   m.Username,
		Comment:    m.Comment,
		Rating:     m.Rating,
		Likes:      m.Likes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toReplyModel(reply *review.Reply) *models.ReplyModel {
	return &models.ReplyModel{
		ID:        reply.ID,
		ReviewID:  reply.ReviewID,
		Username:  reply.Username,
		Text:      reply.Text,
		CreatedAt: reply.CreatedAt,
		UpdatedAt: reply.UpdatedAt,
	}
}

func toReplyEntity(m *models.ReplyModel) *review.Reply {
	return &review.Reply{
		ID:        m.ID,
		ReviewID:  m.ReviewID,
		Username:  m.Username,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
