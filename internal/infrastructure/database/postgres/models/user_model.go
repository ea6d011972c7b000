package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username       string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	AccessToken    string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName      string    `gorm:"type:varchar(100);not null;default:''"`
	LastName       string    `gorm:"type:varchar(100);not null;default:''"`
	About          string    `gorm:"type:text;not null;default:''"`
	ProfilePic     string    `gorm:"type:varchar(512);not null;default:''"`

	ResetToken          *string    `gorm:"type:varchar(255);uniqueIndex"`
	ResetTokenExpiresAt *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// FavoriteModel stores one favorited location per row; the (user, location)
// pair is unique so a toggle can never double-add.
type FavoriteModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_location"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_location"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (FavoriteModel) TableName() string {
	return "favorites"
}
