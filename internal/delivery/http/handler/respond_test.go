package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	domainLocation "accessmap/internal/domain/location"
	domainReview "accessmap/internal/domain/review"
	domainUser "accessmap/internal/domain/user"
	"accessmap/internal/geocoding"
	appErrors "accessmap/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func respondStatus(t *testing.T, err error) int {
	t.Helper()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondWithError(c, err)

	return recorder.Code
}

func TestRespondWithError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", appErrors.ErrInvalidCredentials, http.StatusBadRequest},
		{"weak password", fmt.Errorf("%w: too short", appErrors.ErrWeakPassword), http.StatusBadRequest},
		{"password mismatch", appErrors.ErrPasswordMismatch, http.StatusBadRequest},
		{"reset token invalid", domainUser.ErrResetTokenInvalid, http.StatusBadRequest},
		{"invalid category", domainLocation.ErrInvalidCategory, http.StatusBadRequest},
		{"invalid rating", domainReview.ErrInvalidRating, http.StatusBadRequest},
		{"nothing to update", domainReview.ErrNothingToUpdate, http.StatusBadRequest},
		{"geocoder miss", geocoding.ErrNoResults, http.StatusBadRequest},
		{"invalid token", appErrors.ErrInvalidToken, http.StatusUnauthorized},
		{"token expired", appErrors.ErrTokenExpired, http.StatusUnauthorized},
		{"unauthorized", appErrors.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", appErrors.ErrForbidden, http.StatusForbidden},
		{"not author", domainReview.ErrNotAuthor, http.StatusForbidden},
		{"user not found", domainUser.ErrUserNotFound, http.StatusNotFound},
		{"location not found", domainLocation.ErrLocationNotFound, http.StatusNotFound},
		{"review not found", domainReview.ErrReviewNotFound, http.StatusNotFound},
		{"reply not found", domainReview.ErrReplyNotFound, http.StatusNotFound},
		{"duplicate user", domainUser.ErrUserAlreadyExists, http.StatusConflict},
		{"username taken", domainUser.ErrUsernameTaken, http.StatusConflict},
		{"validation app error", appErrors.NewAppError("VALIDATION_ERROR", "Missing required fields", nil), http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, respondStatus(t, tc.err))
		})
	}
}
