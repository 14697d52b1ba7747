package video

import (
	"errors"
	"net/http"

	"videoportfolio/internal/pkg/response"
	"videoportfolio/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// multipartOverhead covers form fields and part headers sent next to the file.
const multipartOverhead = 1 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	videos := api.Group("/videos")
	{
		videos.GET("", h.List)
		videos.GET("/featured", h.ListFeatured)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	videos := protected.Group("/videos")
	{
		videos.POST("/upload", h.Upload)
		videos.PUT("/:id", h.Update)
		videos.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary All videos
// @Tags Videos
// @Produce json
// @Success 200 {array} domain.Video
// @Router /videos [get]
func (h *Handler) List(c *gin.Context) {
	videos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, videos)
}

// ListFeatured godoc
// @Summary Featured videos
// @Tags Videos
// @Produce json
// @Success 200 {array} domain.Video
// @Router /videos/featured [get]
func (h *Handler) ListFeatured(c *gin.Context) {
	videos, err := h.service.ListFeatured(c.Request.Context())
	if err != nil {
		response.Internal(c, err)
		return
	}
	response.Success(c, http.StatusOK, videos)
}

// Upload godoc
// @Summary Upload a video
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param video formData file true "Video file"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Success 201 {object} domain.Video
// @Failure 400 {object} map[string]interface{}
// @Failure 413 {object} map[string]interface{}
// @Router /videos/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if limit := h.service.MaxUploadBytes(); limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	fh, err := c.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, ErrFileTooLarge)
			return
		}
		h.fail(c, ErrNoFile)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Internal(c, err)
		return
	}
	defer f.Close()

	req := UploadRequest{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Client:      c.PostForm("client"),
		Year:        c.PostForm("year"),
		Featured:    c.PostForm("featured"),
		Order:       c.PostForm("order"),
	}

	v, err := h.service.Upload(c.Request.Context(), req, &UploadFile{
		Filename:  fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Size:      fh.Size,
		Content:   f,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, v)
}

// Update godoc
// @Summary Patch video metadata
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} domain.Video
// @Failure 404 {object} map[string]interface{}
// @Router /videos/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	v, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, v)
}

// Delete godoc
// @Summary Delete a video and its file
// @Tags Videos
// @Security BearerAuth
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /videos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Video deleted successfully")
}

func (h *Handler) fail(c *gin.Context, err error) {
	var verr *validator.Error
	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verr.Fields)
	case errors.Is(err, ErrNoFile):
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No video file uploaded")
	case errors.Is(err, ErrUnsupportedMediaType):
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "Only video files are allowed")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Video file too large")
	case errors.Is(err, ErrVideoNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Video not found")
	default:
		response.Internal(c, err)
	}
}
