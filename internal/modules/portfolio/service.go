package portfolio

import (
	"context"
	"errors"
	"fmt"

	"videoportfolio/internal/domain"
	"videoportfolio/internal/pkg/password"
	"videoportfolio/internal/pkg/validator"

	"gorm.io/gorm"
)

type UserRepositoryInterface interface {
	First(ctx context.Context) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User, fields []string) error
}

type Service struct {
	users UserRepositoryInterface
}

func NewService(users UserRepositoryInterface) *Service {
	return &Service{users: users}
}

// GetPublic returns the portfolio owner's profile without credentials,
// email, username or timestamps.
func (s *Service) GetPublic(ctx context.Context) (*domain.PublicProfile, error) {
	user, err := s.users.First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("get portfolio owner: %w", err)
	}
	return user.Public(), nil
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (*domain.User, error) {
	req = req.trimmed()
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	fields := req.apply(user)
	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
		fields = append(fields, "PasswordHash")
	}

	if err := s.users.Update(ctx, user, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}
