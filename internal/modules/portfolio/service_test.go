package portfolio

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"videoportfolio/internal/database"
	"videoportfolio/internal/domain"
	"videoportfolio/internal/pkg/password"
	"videoportfolio/internal/pkg/validator"
	"videoportfolio/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(fmt.Sprintf("file:portfolio_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedOwner(t *testing.T, repo *repository.UserRepository, username string, createdAt time.Time) *domain.User {
	t.Helper()
	hash, err := password.Hash("secret")
	require.NoError(t, err)

	u := &domain.User{
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: hash,
		Name:         "Owner " + username,
		About:        "I cut trailers",
		Skills:       []string{"Premiere", "DaVinci"},
		Experience:   []domain.Experience{{Company: "Studio", Position: "Editor", Duration: "2y"}},
		Contact:      domain.Contact{Email: "hire@x.com", Location: "Berlin", Social: domain.Social{Instagram: "@cut"}},
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func ptr[T any](v T) *T { return &v }

func TestService_GetPublic_NotFound(t *testing.T) {
	svc := NewService(repository.NewUserRepository(setupTestDB(t)))

	_, err := svc.GetPublic(context.Background())
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}

func TestService_GetPublic_ReturnsFirstUser(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedOwner(t, repo, "second", base.Add(time.Hour))
	first := seedOwner(t, repo, "first", base)

	profile, err := svc.GetPublic(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.ID, profile.ID)
	assert.Equal(t, "Owner first", profile.Name)
	assert.Equal(t, domain.DefaultUserTitle, profile.Title)
	assert.Equal(t, []string{"Premiere", "DaVinci"}, profile.Skills)
	assert.Equal(t, "Berlin", profile.Contact.Location)
}

func TestService_Update_TitleOnlyLeavesOtherFields(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)
	owner := seedOwner(t, repo, "owner", time.Now().UTC())

	before, err := repo.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), owner.ID, UpdateRequest{Title: ptr("New Title")})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Empty(t, updated.PasswordHash)

	after, err := repo.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", after.Title)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.About, after.About)
	assert.Equal(t, before.Skills, after.Skills)
	assert.Equal(t, before.Experience, after.Experience)
	assert.Equal(t, before.Contact, after.Contact)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestService_Update_ReplacesNestedBlocks(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)
	owner := seedOwner(t, repo, "owner", time.Now().UTC())

	_, err := svc.Update(context.Background(), owner.ID, UpdateRequest{
		Skills:  ptr([]string{"After Effects"}),
		Contact: &domain.Contact{Phone: "+49 1234"},
	})
	require.NoError(t, err)

	after, err := repo.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"After Effects"}, after.Skills)
	assert.Equal(t, domain.Contact{Phone: "+49 1234"}, after.Contact)
	assert.Len(t, after.Experience, 1)
}

func TestService_Update_PasswordIsRehashed(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)
	owner := seedOwner(t, repo, "owner", time.Now().UTC())

	_, err := svc.Update(context.Background(), owner.ID, UpdateRequest{Password: ptr("new-secret")})
	require.NoError(t, err)

	after, err := repo.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "new-secret", after.PasswordHash)
	assert.NoError(t, password.Check("new-secret", after.PasswordHash))
}

func TestService_Update_Validation(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)
	owner := seedOwner(t, repo, "owner", time.Now().UTC())

	cases := []UpdateRequest{
		{Name: ptr("")},
		{Name: ptr("   ")},
		{Password: ptr("")},
		{Password: ptr(strings.Repeat("p", 73))},
		{Password: ptr(strings.Repeat("é", 40))},
		{Contact: &domain.Contact{Email: "not-an-email"}},
	}
	for _, req := range cases {
		_, err := svc.Update(context.Background(), owner.ID, req)
		var verr *validator.Error
		assert.ErrorAs(t, err, &verr)
	}
}

func TestService_Update_NameIsTrimmed(t *testing.T) {
	repo := repository.NewUserRepository(setupTestDB(t))
	svc := NewService(repo)
	owner := seedOwner(t, repo, "owner", time.Now().UTC())

	_, err := svc.Update(context.Background(), owner.ID, UpdateRequest{Name: ptr("  Jane Doe ")})
	require.NoError(t, err)

	after, err := repo.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", after.Name)
}

func TestService_Update_UnknownUser(t *testing.T) {
	svc := NewService(repository.NewUserRepository(setupTestDB(t)))

	_, err := svc.Update(context.Background(), "bootstrap-admin", UpdateRequest{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}
