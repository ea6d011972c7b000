package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accessmap/internal/config"
	domainLocation "accessmap/internal/domain/location"
	domainUser "accessmap/internal/domain/user"
	"accessmap/internal/logger"
	"accessmap/internal/mailer"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resetTokenTTL = 1 * time.Hour

// Service implements account and profile use cases
type Service struct {
	userRepo     domainUser.Repository
	locationRepo domainLocation.Repository
	mail         mailer.Mailer
	config       *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	locationRepo domainLocation.Repository,
	mail mailer.Mailer,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:     userRepo,
		locationRepo: locationRepo,
		mail:         mail,
		config:       cfg,
	}
}

func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "All fields are required", err)
	}

	if req.Password != req.ConfirmPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domainUser.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		logger.Warn("Signup attempt with existing email",
			zap.String("email", req.Email),
			zap.String("event", "signup_failed_duplicate_email"),
		)
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		Username:       req.Username,
		Email:          req.Email,
		PasswordHashed: hashedPassword,
		AccessToken:    utils.GenerateAccessToken(),
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User signed up",
		zap.String("user_id", u.ID.String()),
		zap.String("email", u.Email),
		zap.String("username", u.Username),
		zap.String("event", "user_signed_up"),
	)

	return &AuthResponse{
		User:        ToUserResponse(u),
		AccessToken: u.AccessToken,
	}, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Please enter your email and password", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "login_failed_user_not_found"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(u.PasswordHashed, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", u.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	logger.Info("User logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "login_success"),
	)

	// The stored opaque token is re-issued as is; there is no rotation.
	return &AuthResponse{
		User:        ToUserResponse(u),
		AccessToken: u.AccessToken,
	}, nil
}

func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Email is required", err)
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			// Don't reveal whether the account exists.
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", req.Email),
				zap.String("event", "password_reset_unknown_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token := utils.GenerateResetToken()
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := s.userRepo.SetResetToken(ctx, u.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.config.Server.BaseURL, token)
	if err := s.mail.SendPasswordReset(ctx, u.Email, resetLink); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	logger.Info("Password reset token sent",
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", expiresAt),
		zap.String("event", "password_reset_token_sent"),
	)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "All fields are required", err)
	}

	if req.NewPassword != req.ConfirmPassword {
		return appErrors.ErrPasswordMismatch
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	u, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return domainUser.ErrResetTokenInvalid
		}
		return err
	}

	if !u.ResetTokenValid(time.Now()) {
		return domainUser.ErrResetTokenInvalid
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, u.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.userRepo.ClearResetToken(ctx, u.ID); err != nil {
		logger.Error("Failed to clear reset token",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Password reset",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

// Profile returns the user's profile fields with favorites resolved to full
// location records.
func (s *Service) Profile(ctx context.Context, u *domainUser.User) (*ProfileResponse, error) {
	favorites, err := s.FavoriteLocations(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileResponse{
		User:      ToUserResponse(u),
		Favorites: favorites,
	}, nil
}

// FavoriteLocations resolves the user's favorite location ids.
func (s *Service) FavoriteLocations(ctx context.Context, userID uuid.UUID) ([]*FavoriteLocation, error) {
	ids, err := s.userRepo.FavoriteLocationIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	locations, err := s.locationRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return toFavoriteLocations(locations), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if req.Empty() {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "At least one field to update is required", nil)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.About != nil {
		u.About = *req.About
	}
	if req.ProfilePic != nil {
		u.ProfilePic = *req.ProfilePic
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", u.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(u), nil
}

// ToggleFavorite adds or removes the location from the user's favorites
// based on current membership and returns the new state.
func (s *Service) ToggleFavorite(ctx context.Context, userID, locationID uuid.UUID) (*ToggleFavoriteResponse, error) {
	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		return nil, err
	}

	hasFavorited, err := s.userRepo.HasFavorite(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}

	if hasFavorited {
		err = s.userRepo.RemoveFavorite(ctx, userID, locationID)
	} else {
		err = s.userRepo.AddFavorite(ctx, userID, locationID)
	}
	if err != nil {
		return nil, err
	}

	return &ToggleFavoriteResponse{Favorited: !hasFavorited}, nil
}
