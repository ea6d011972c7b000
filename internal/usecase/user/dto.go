package user

import (
	"time"

	domainLocation "accessmap/internal/domain/location"
	domainUser "accessmap/internal/domain/user"

	"github.com/google/uuid"
)

// Request DTOs
type SignupRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateProfileRequest carries profile edits; nil fields are left unchanged.
// ProfilePic is set by the handler after storing an uploaded avatar.
type UpdateProfileRequest struct {
	Username   *string `json:"username" validate:"omitempty,min=3,max=100"`
	FirstName  *string `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,max=100"`
	About      *string `json:"about" validate:"omitempty,max=2000"`
	ProfilePic *string `json:"-"`
}

// Empty reports whether there is nothing to update.
func (r *UpdateProfileRequest) Empty() bool {
	return r.Username == nil && r.FirstName == nil && r.LastName == nil &&
		r.About == nil && r.ProfilePic == nil
}

// Response DTOs
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	About      string    `json:"about"`
	ProfilePic string    `json:"profilePic"`
	CreatedAt  time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User        *UserResponse `json:"user"`
	AccessToken string        `json:"-"`
}

// FavoriteLocation mirrors the location fields the profile views need.
type FavoriteLocation struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	Category      string    `json:"category"`
	Latitude      float64   `json:"lat"`
	Longitude     float64   `json:"lng"`
	AverageRating float64   `json:"averageAccessibilityRating"`
	ReviewCount   int64     `json:"reviewCount"`
}

type ProfileResponse struct {
	User      *UserResponse       `json:"user"`
	Favorites []*FavoriteLocation `json:"favorites"`
}

type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		About:      u.About,
		ProfilePic: u.ProfilePic,
		CreatedAt:  u.CreatedAt,
	}
}

func toFavoriteLocations(locations []*domainLocation.Location) []*FavoriteLocation {
	favorites := make([]*FavoriteLocation, len(locations))
	for i, loc := range locations {
		favorites[i] = &FavoriteLocation{
			ID:            loc.ID,
			Name:          loc.Name,
			Address:       loc.Address,
			City:          loc.City,
			Category:      string(loc.Category),
			Latitude:      loc.Latitude,
			Longitude:     loc.Longitude,
			AverageRating: loc.AverageRating,
			ReviewCount:   loc.ReviewCount,
		}
	}
	return favorites
}
