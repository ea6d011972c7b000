package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"accessmap/internal/domain/user"
	"accessmap/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements the user domain Repository interface
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		errStr := strings.ToLower(err.Error())
		if strings.Contains(errStr, "duplicate key") {
			if strings.Contains(errStr, "username") {
				return user.ErrUsernameTaken
			}
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = dbModel.ID
	u.CreatedAt = dbModel.CreatedAt
	u.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return r.getOne(ctx, "id = ?", userID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) GetByAccessToken(ctx context.Context, token string) (*user.User, error) {
	return r.getOne(ctx, "access_token = ?", token)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*user.User, error) {
	return r.getOne(ctx, "reset_token = ?", token)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where(query, arg).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"username":    u.Username,
			"first_name":  u.FirstName,
			"last_name":   u.LastName,
			"about":       u.About,
			"profile_pic": u.ProfilePic,
			"updated_at":  u.UpdatedAt,
		})

	if result.Error != nil {
		errStr := strings.ToLower(result.Error.Error())
		if strings.Contains(errStr, "duplicate key") && strings.Contains(errStr, "username") {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hashed": passwordHash,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set reset token: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, userID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            nil,
			"reset_token_expires_at": nil,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to clear reset token: %w", result.Error)
	}

	return nil
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, locationID uuid.UUID) error {
	fav := &models.FavoriteModel{
		ID:         uuid.New(),
		UserID:     userID,
		LocationID: locationID,
		CreatedAt:  time.Now(),
	}

	if err := r.db.DB.WithContext(ctx).Create(fav).Error; err != nil {
		// A concurrent toggle may have added the pair already; the unique
		// index keeps membership at most once.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate key") {
			return nil
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, locationID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Delete(&models.FavoriteModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	return nil
}

func (r *UserRepository) HasFavorite(ctx context.Context, userID, locationID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	return count > 0, nil
}

func (r *UserRepository) FavoriteLocationIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.DB.WithContext(ctx).Model(&models.FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("location_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	return ids, nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		PasswordHashed:      u.PasswordHashed,
		AccessToken:         u.AccessToken,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		About:               u.About,
		ProfilePic:          u.ProfilePic,
		ResetToken:          u.ResetToken,
		ResetTokenExpiresAt: u.ResetTokenExpiresAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:                  m.ID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHashed:      m.PasswordHashed,
		AccessToken:         m.AccessToken,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		About:               m.About,
		ProfilePic:          m.ProfilePic,
		ResetToken:          m.ResetToken,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
