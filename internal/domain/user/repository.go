package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByAccessToken(ctx context.Context, token string) (*User, error)
	GetByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error

	AddFavorite(ctx context.Context, userID, locationID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, locationID uuid.UUID) error
	HasFavorite(ctx context.Context, userID, locationID uuid.UUID) (bool, error)
	FavoriteLocationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
