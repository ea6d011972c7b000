package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidCategory  = errors.New("invalid location category")
)
