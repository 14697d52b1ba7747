package server

import (
	"context"
	"net/http"
	"time"

	"videoportfolio/internal/metrics"
	"videoportfolio/internal/middleware"
	"videoportfolio/internal/modules/auth"
	"videoportfolio/internal/modules/portfolio"
	"videoportfolio/internal/modules/video"
	"videoportfolio/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Metrics     *metrics.Metrics
	Tokens      middleware.TokenValidator
	Auth        *auth.Handler
	Portfolio   *portfolio.Handler
	Video       *video.Handler
	UploadDir   string
	UploadURL   string
	CORSOrigins []string
}

// NewRouter mounts every route under /api. Stored files are served
// statically from UploadURL.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(d.CORSOrigins))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	r.GET("/healthz", healthz(d.DB))
	r.Static(d.UploadURL, d.UploadDir)

	api := r.Group("/api")
	{
		d.Auth.RegisterPublicRoutes(api)
		d.Portfolio.RegisterPublicRoutes(api)
		d.Video.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(d.Tokens))
		{
			d.Auth.RegisterProtectedRoutes(protected)
			d.Portfolio.RegisterProtectedRoutes(protected)
			d.Video.RegisterProtectedRoutes(protected)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
