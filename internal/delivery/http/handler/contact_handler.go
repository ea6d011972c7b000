package handler

import (
	"errors"
	"net/http"

	"accessmap/internal/usecase/contact"
	appErrors "accessmap/pkg/errors"
	"accessmap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service *contact.Service
}

func NewContactHandler(service *contact.Service) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contact", h.Send)
}

func (h *ContactHandler) Send(c *gin.Context) {
	var req contact.ContactRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Send(c.Request.Context(), &req); err != nil {
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) && appErr.Code == "MAIL_ERROR" {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to send message")
			return
		}
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message sent successfully", nil)
}
