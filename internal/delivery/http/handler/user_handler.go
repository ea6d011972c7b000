package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"accessmap/internal/config"
	"accessmap/internal/middleware"
	"accessmap/internal/usecase/user"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const authCookieMaxAge = 7 * 24 * 3600

var errUnsupportedAvatarType = errors.New("unsupported avatar file type")

// allowed avatar extensions
var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UserHandler struct {
	service *user.Service
	config  *config.Config
}

func NewUserHandler(service *user.Service, cfg *config.Config) *UserHandler {
	return &UserHandler{service: service, config: cfg}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.POST("/forgot-password", h.ForgotPassword)
	router.POST("/reset-password", h.ResetPassword)
}

func (h *UserHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.Profile)
	router.GET("/my-favorites", h.MyFavorites)
	router.PATCH("/edit-user", h.EditUser)
	router.POST("/logout", h.Logout)
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = utils.SanitizeString(req.Username)
	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setAuthCookie(c, authResponse.AccessToken)
	utils.SuccessResponse(c, http.StatusCreated, "User registered successfully", authResponse)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	authResponse, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setAuthCookie(c, authResponse.AccessToken)
	utils.SuccessResponse(c, http.StatusOK, "Login successful", authResponse)
}

func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.secureCookies(), true)
	utils.SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = utils.SanitizeEmail(req.Email)

	if err := h.service.ForgotPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "If the email exists, a reset link has been sent", nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), &req); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

func (h *UserHandler) Profile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), current)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *UserHandler) MyFavorites(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	favorites, err := h.service.FavoriteLocations(c.Request.Context(), current.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Favorites retrieved successfully", favorites)
}

// EditUser updates profile fields. It accepts either a JSON body or a
// multipart form with an optional avatar file.
func (h *UserHandler) EditUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req user.UpdateProfileRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if err := h.bindMultipartProfile(c, &req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username != nil {
		sanitized := utils.SanitizeString(*req.Username)
		req.Username = &sanitized
	}
	if req.FirstName != nil {
		sanitized := utils.SanitizeString(*req.FirstName)
		req.FirstName = &sanitized
	}
	if req.LastName != nil {
		sanitized := utils.SanitizeString(*req.LastName)
		req.LastName = &sanitized
	}
	if req.About != nil {
		sanitized := utils.SanitizeText(*req.About)
		req.About = &sanitized
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), current.ID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated successfully", profile)
}

func (h *UserHandler) bindMultipartProfile(c *gin.Context, req *user.UpdateProfileRequest) error {
	formValue := func(key string) *string {
		if v, ok := c.GetPostForm(key); ok {
			return &v
		}
		return nil
	}

	req.Username = formValue("username")
	req.FirstName = formValue("firstName")
	req.LastName = formValue("lastName")
	req.About = formValue("about")

	file, err := c.FormFile("avatar")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil
		}
		return err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !avatarExtensions[ext] {
		return errUnsupportedAvatarType
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.config.Uploads.Dir, name)); err != nil {
		return err
	}

	pic := "/uploads/" + name
	req.ProfilePic = &pic
	return nil
}

func (h *UserHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, token, authCookieMaxAge, "/", "", h.secureCookies(), true)
}

func (h *UserHandler) secureCookies() bool {
	return h.config.Server.Environment == "production"
}
