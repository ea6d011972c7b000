package handler

import (
	"net/http"

	"accessmap/internal/middleware"
	"accessmap/internal/usecase/location"
	"accessmap/internal/usecase/user"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LocationHandler struct {
	locations *location.Service
	users     *user.Service
}

func NewLocationHandler(locations *location.Service, users *user.Service) *LocationHandler {
	return &LocationHandler{locations: locations, users: users}
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations", h.List)
}

func (h *LocationHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/locations", h.Create)
	router.POST("/locations/:locationId/toggle-favorite", h.ToggleFavorite)
	router.GET("/my-submissions", h.MySubmissions)
}

func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locations.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Locations retrieved successfully", locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req location.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	req.Address = utils.SanitizeString(req.Address)
	req.City = utils.SanitizeString(req.City)

	created, err := h.locations.Create(c.Request.Context(), current.Username, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Location added successfully", created)
}

func (h *LocationHandler) ToggleFavorite(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid location ID")
		return
	}

	result, err := h.users.ToggleFavorite(c.Request.Context(), current.ID, locationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Favorite updated", result)
}

func (h *LocationHandler) MySubmissions(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	locations, err := h.locations.Submissions(c.Request.Context(), current.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Submissions retrieved successfully", locations)
}
