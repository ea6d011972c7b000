package handler

import (
	"net/http"

	"accessmap/internal/middleware"
	"accessmap/internal/usecase/review"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	service *review.Service
}

func NewReviewHandler(service *review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations/:locationId/reviews", h.ListByLocation)
}

func (h *ReviewHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/locations/:locationId/reviews", h.Add)
	router.GET("/my-reviews", h.MyReviews)

	reviews := router.Group("/reviews/:reviewId")
	{
		reviews.PATCH("", h.Edit)
		reviews.DELETE("", h.Delete)
		reviews.POST("/toggle-like", h.ToggleLike)
		reviews.POST("/replies", h.AddReply)
		reviews.PATCH("/replies/:replyId", h.EditReply)
		reviews.DELETE("/replies/:replyId", h.DeleteReply)
		reviews.POST("/replies/:replyId/like", h.ToggleReplyLike)
	}
}

func (h *ReviewHandler) ListByLocation(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid location ID")
		return
	}

	reviews, err := h.service.ListByLocation(c.Request.Context(), locationID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) MyReviews(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviews, err := h.service.ListByUser(c.Request.Context(), current.Username)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) Add(c *gin.Context) {
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

	var req review.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Comment = utils.SanitizeText(req.Comment)

	created, err := h.service.Add(c.Request.Context(), current.Username, locationID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Review added successfully", created)
}

func (h *ReviewHandler) Edit(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var req review.EditReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Comment != nil {
		sanitized := utils.SanitizeText(*req.Comment)
		req.Comment = &sanitized
	}

	updated, err := h.service.Edit(c.Request.Context(), current.Username, reviewID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review updated successfully", updated)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), current.Username, reviewID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review deleted successfully", nil)
}

func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), current.Username, reviewID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Like updated", result)
}

func (h *ReviewHandler) AddReply(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var req review.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Text = utils.SanitizeText(req.Text)

	created, err := h.service.AddReply(c.Request.Context(), current.Username, reviewID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Reply added successfully", created)
}

func (h *ReviewHandler) EditReply(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, replyID, ok := parseThreadIDs(c)
	if !ok {
		return
	}

	var req review.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Text = utils.SanitizeText(req.Text)

	updated, err := h.service.EditReply(c.Request.Context(), current.Username, reviewID, replyID, &req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply updated successfully", updated)
}

func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, replyID, ok := parseThreadIDs(c)
	if !ok {
		return
	}

	updated, err := h.service.DeleteReply(c.Request.Context(), current.Username, reviewID, replyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reply deleted successfully", updated)
}

func (h *ReviewHandler) ToggleReplyLike(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	reviewID, replyID, ok := parseThreadIDs(c)
	if !ok {
		return
	}

	result, err := h.service.ToggleReplyLike(c.Request.Context(), current.Username, reviewID, replyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Like updated", result)
}

func parseThreadIDs(c *gin.Context) (reviewID, replyID uuid.UUID, ok bool) {
	reviewID, err := uuid.Parse(c.Param("reviewId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return uuid.Nil, uuid.Nil, false
	}

	replyID, err = uuid.Parse(c.Param("replyId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid reply ID")
		return uuid.Nil, uuid.Nil, false
	}

	return reviewID, replyID, true
}
