package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUsernameTaken     = errors.New("username is already taken")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)
