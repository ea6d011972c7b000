package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the domain. The access token is an opaque
// string matched by equality against the auth cookie; there is no session
// model beyond that lookup.
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHashed string
	AccessToken    string

	// Profile fields
	FirstName  string
	LastName   string
	About      string
	ProfilePic string

	// Password reset state; cleared once the token is consumed.
	ResetToken          *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResetTokenValid reports whether the stored reset token can still be used.
func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}
