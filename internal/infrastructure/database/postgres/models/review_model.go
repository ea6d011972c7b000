package models

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel represents the database model for Review
type ReviewModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Username   string    `gorm:"type:varchar(100);not null;index"`
	Comment    string    `gorm:"type:text;not null"`
	Rating     int       `gorm:"not null"`

	// Kept equal to the number of review_likes rows for this review.
	Likes int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// ReviewLikeModel stores one like per (review, username) pair.
type ReviewLikeModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_likes_pair"`
	Username string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_review_likes_pair"`

	CreatedAt time.Time `gorm:"not null"`
}

func (ReviewLikeModel) TableName() string {
	return "review_likes"
}

// ReplyModel represents the database model for Reply
type ReplyModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;index"`
	Username string    `gorm:"type:varchar(100);not null"`
	Text     string    `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ReplyModel) TableName() string {
	return "replies"
}

// ReplyLikeModel stores one like per (reply, username) pair.
type ReplyLikeModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReplyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reply_likes_pair"`
	Username string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_reply_likes_pair"`

	CreatedAt time.Time `gorm:"not null"`
}

func (ReplyLikeModel) TableName() string {
	return "reply_likes"
}
