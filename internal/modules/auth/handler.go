package auth

import (
	"errors"
	"net/http"

	"videoportfolio/internal/middleware"
	"videoportfolio/internal/pkg/response"
	"videoportfolio/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.Me)
}

// Register godoc
// @Summary First-time setup: create an account and get a token
// @Tags Auth
// @Param request body RegisterRequest true "username, email, password, name"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]interface{} "validation error or user already exists"
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		var verr *validator.Error
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
		case errors.Is(err, ErrUserAlreadyExists):
			response.Error(c, http.StatusBadRequest, "USER_EXISTS", "User already exists")
		default:
			response.Internal(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Param request body LoginRequest true "email, password"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{} "invalid credentials"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Internal(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}
