package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReplyNotFound   = errors.New("reply not found")
	ErrNotAuthor       = errors.New("only the author may modify this")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrNothingToUpdate = errors.New("nothing to update")
)
