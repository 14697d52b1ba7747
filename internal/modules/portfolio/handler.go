package portfolio

import (
	"errors"
	"net/http"

	"videoportfolio/internal/middleware"
	"videoportfolio/internal/pkg/response"
	"videoportfolio/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/portfolio/public", h.GetPublic)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.PUT("/portfolio/update", h.Update)
}

func (h *Handler) GetPublic(c *gin.Context) {
	profile, err := h.service.GetPublic(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrPortfolioNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Portfolio not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Update(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		var verr *validator.Error
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
		case errors.Is(err, ErrPortfolioNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Portfolio not found")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, user)
}
