package repository

import (
	"context"
	"strings"

	"videoportfolio/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = normalizeEmail(u.Email)
	u.Username = strings.TrimSpace(u.Username)
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

// First returns the oldest user, which is treated as the portfolio owner.
func (r *UserRepository) First(ctx context.Context) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("email = ? OR username = ?", normalizeEmail(email), strings.TrimSpace(username)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes only the named fields (struct field names) of u.
// Returns gorm.ErrRecordNotFound when no row has u.ID.
func (r *UserRepository) Update(ctx context.Context, u *domain.User, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	columns := append([]string{"UpdatedAt"}, fields...)
	tx := r.db.WithContext(ctx).Model(u).Select(columns).Updates(u)
	if tx.Error != nil {
		if isUniqueViolation(tx.Error) {
			return ErrDuplicateKey
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
