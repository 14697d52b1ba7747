package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"videoportfolio/internal/config"
	"videoportfolio/internal/database"
	"videoportfolio/internal/logger"
	"videoportfolio/internal/metrics"
	"videoportfolio/internal/modules/auth"
	"videoportfolio/internal/modules/portfolio"
	"videoportfolio/internal/modules/video"
	"videoportfolio/internal/pkg/filestore"
	jwtsvc "videoportfolio/internal/pkg/jwt"
	"videoportfolio/internal/repository"
	"videoportfolio/internal/server"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, !cfg.IsProd())
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload directory unavailable")
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	if cfg.Bypass.Enabled() {
		log.Warn().Str("email", cfg.Bypass.Email).Str("subject", cfg.Bypass.Subject).
			Msg("bypass login is enabled; disable it once the owner account exists")
	}

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, cfg.Bypass))
	portfolioHandler := portfolio.NewHandler(portfolio.NewService(userRepo))
	m := metrics.New()
	videoService := video.NewService(videoRepo, files, cfg.MaxUploadBytes, cfg.UploadURLPath).WithUploadObserver(m)
	videoHandler := video.NewHandler(videoService)

	r := server.NewRouter(server.Deps{
		DB:          db,
		Metrics:     m,
		Tokens:      j,
		Auth:        authHandler,
		Portfolio:   portfolioHandler,
		Video:       videoHandler,
		UploadDir:   cfg.UploadDir,
		UploadURL:   cfg.UploadURLPath,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.AppEnv).
			Str("upload_dir", cfg.UploadDir).
			Str("max_upload", humanize.IBytes(uint64(cfg.MaxUploadBytes))).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
