package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-account-service/internal/domain/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Migrate the schema
	err = db.AutoMigrate(&UserSchema{})
	require.NoError(t, err)

	return db
}

func setupTestRepo(t *testing.T) *UserRepoPG {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	return NewUserRepoPG(db, logger)
}

func newTestUser() *user.User {
	return &user.User{
		Name:         "Alice",
		Email:        "alice@x.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		IsActive:     true,
	}
}

func TestUserRepoPG_Save_InsertAssignsID(t *testing.T) {
	repo := setupTestRepo(t)

	saved, err := repo.Save(context.Background(), newTestUser())
	require.NoError(t, err)

	assert.NotZero(t, saved.ID)
	assert.Equal(t, "Alice", saved.Name)
	assert.Equal(t, "alice@x.com", saved.Email)
	assert.True(t, saved.IsActive)
}

func TestUserRepoPG_Save_NilUser(t *testing.T) {
	repo := setupTestRepo(t)

	saved, err := repo.Save(context.Background(), nil)
	assert.Error(t, err)
	assert.Nil(t, saved)
}

func TestUserRepoPG_Save_RoundTrip(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newTestUser())
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, saved.Name, found.Name)
	assert.Equal(t, saved.Email, found.Email)
	// Hash stability: the stored credential must come back byte-identical
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", found.PasswordHash)
	assert.True(t, found.IsActive)
}

func TestUserRepoPG_Save_DuplicateEmailViolatesConstraint(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, newTestUser())
	require.NoError(t, err)

	second := newTestUser()
	second.Name = "Other Alice"

	saved, err := repo.Save(ctx, second)
	assert.Error(t, err)
	assert.Nil(t, saved)
}

func TestUserRepoPG_Save_UpdatePreservesUntouchedFields(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newTestUser())
	require.NoError(t, err)

	// Soft delete: load fresh, flip IsActive, save back
	loaded, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	loaded.Deactivate()

	updated, err := repo.Save(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.False(t, updated.IsActive)

	found, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "alice@x.com", found.Email)
	assert.Equal(t, "$2a$10$abcdefghijklmnopqrstuv", found.PasswordHash)
	assert.False(t, found.IsActive)
}

func TestUserRepoPG_Save_UpdateMissingRow(t *testing.T) {
	repo := setupTestRepo(t)

	ghost := newTestUser()
	ghost.ID = 999

	saved, err := repo.Save(context.Background(), ghost)
	assert.Error(t, err)
	assert.Nil(t, saved)
	assert.Contains(t, err.Error(), "failed to update user")
}

func TestUserRepoPG_FindByID_Absent(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindByID(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepoPG_FindByEmail(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newTestUser())
	require.NoError(t, err)

	found, err := repo.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, saved.ID, found.ID)

	absent, err := repo.FindByEmail(ctx, "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, absent)
}
