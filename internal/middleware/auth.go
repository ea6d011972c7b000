package middleware

import (
	"errors"
	"net/http"

	"accessmap/internal/domain/user"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	// AuthCookieName is the cookie carrying the opaque access token.
	AuthCookieName = "auth"

	currentUserKey = "currentUser"
)

// AuthMiddleware authenticates requests by looking the auth cookie's opaque
// token up against the user table. Missing cookie and unknown token both
// reject with 401; the lookup is the whole session model.
func AuthMiddleware(userRepo user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		u, err := userRepo.GetByAccessToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid token")
			} else {
				utils.ErrorResponse(c, http.StatusInternalServerError, "Server error")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, u)

		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the Gin context.
func CurrentUser(c *gin.Context) (*user.User, bool) {
	val, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}

	u, ok := val.(*user.User)
	return u, ok
}
