package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"videoportfolio/internal/database"
	"videoportfolio/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:repo_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func TestUserRepository_CreateNormalizesAndDefaults(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := &domain.User{Username: " editor ", Email: " Editor@Example.COM ", PasswordHash: "h", Name: "E"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail(ctx, "editor@example.com")
	require.NoError(t, err)
	assert.Equal(t, "editor", got.Username)
	assert.Equal(t, domain.DefaultUserTitle, got.Title)
	assert.NotNil(t, got.Skills)
	assert.NotNil(t, got.Experience)

	exists, err := repo.ExistsByEmailOrUsername(ctx, "other@example.com", "editor")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByEmailOrUsername(ctx, "other@example.com", "other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_DuplicateKey(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "a", Email: "a@x.com", PasswordHash: "h", Name: "A"}))

	err := repo.Create(ctx, &domain.User{Username: "b", Email: "A@x.com", PasswordHash: "h", Name: "B"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	err = repo.Create(ctx, &domain.User{Username: "a", Email: "b@x.com", PasswordHash: "h", Name: "B"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	err := repo.Update(context.Background(), &domain.User{ID: "missing", Title: "x"}, []string{"Title"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVideoRepository_DeleteAndUpdateMissing(t *testing.T) {
	repo := NewVideoRepository(setupTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, repo.Delete(ctx, "missing"), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Video{ID: "missing"}, []string{"Title"}), gorm.ErrRecordNotFound)

	v := &domain.Video{Title: "t", Description: "d", Filename: "f.mp4", OriginalName: "f.mp4", Size: 1}
	require.NoError(t, repo.Create(ctx, v))
	assert.Equal(t, domain.CategoryOther, v.Category)

	dup := &domain.Video{Title: "t", Description: "d", Filename: "f.mp4", OriginalName: "f.mp4", Size: 1}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrDuplicateKey)

	require.NoError(t, repo.Delete(ctx, v.ID))
	assert.ErrorIs(t, repo.Delete(ctx, v.ID), gorm.ErrRecordNotFound)
}

func TestVideoRepository_ListEmpty(t *testing.T) {
	repo := NewVideoRepository(setupTestDB(t))

	videos, err := repo.List(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, videos)
	assert.Empty(t, videos)
}
