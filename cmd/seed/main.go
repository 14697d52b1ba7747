package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"videoportfolio/internal/config"
	"videoportfolio/internal/database"
	"videoportfolio/internal/domain"
	"videoportfolio/internal/logger"
	"videoportfolio/internal/pkg/password"
	"videoportfolio/internal/repository"
)

// seed creates the portfolio owner from SEED_* variables. It does nothing
// when a user already exists, so it is safe to run on every deploy.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, !cfg.IsProd())

	s := cfg.Seed
	if s.Username == "" || s.Email == "" || s.Password == "" {
		log.Fatal().Msg("SEED_USERNAME, SEED_EMAIL and SEED_PASSWORD are required")
	}
	if s.Name == "" {
		s.Name = s.Username
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)

	existing, err := users.First(ctx)
	switch {
	case err == nil:
		log.Info().Str("username", existing.Username).Msg("owner already exists, nothing to seed")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatal().Err(err).Msg("lookup failed")
	}

	hash, err := password.Hash(s.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}

	owner := &domain.User{
		Username:     s.Username,
		Email:        s.Email,
		PasswordHash: hash,
		Name:         s.Name,
	}
	if err := users.Create(ctx, owner); err != nil {
		log.Fatal().Err(err).Msg("create owner")
	}

	log.Info().Str("id", owner.ID).Str("email", owner.Email).Msg("owner created")
}
