package handler

import (
	"errors"
	"net/http"

	domainLocation "accessmap/internal/domain/location"
	domainReview "accessmap/internal/domain/review"
	domainUser "accessmap/internal/domain/user"
	"accessmap/internal/geocoding"
	"accessmap/internal/logger"
	"accessmap/internal/middleware"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrUsernameTaken):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrTokenExpired),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrForbidden),
		errors.Is(err, domainReview.ErrNotAuthor):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainLocation.ErrLocationNotFound),
		errors.Is(err, domainReview.ErrReviewNotFound),
		errors.Is(err, domainReview.ErrReplyNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	// Invalid credentials are a client error here, not an auth challenge.
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrWeakPassword),
		errors.Is(err, appErrors.ErrPasswordMismatch),
		errors.Is(err, domainUser.ErrResetTokenInvalid),
		errors.Is(err, domainLocation.ErrInvalidCategory),
		errors.Is(err, domainReview.ErrInvalidRating),
		errors.Is(err, domainReview.ErrNothingToUpdate),
		errors.Is(err, geocoding.ErrNoResults):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
