package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-pos-dashboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	users := NewUsers(setupTestDB(t))

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	u := &models.User{Phone: "01711000000", FirstName: "Karim", PasswordHash: "x", Role: "staff", IsActive: true}
	require.NoError(t, users.Create(ctx, u))
	assert.NotZero(t, u.ID)

	found, err := users.FindByPhone(ctx, "01711000000")
	require.NoError(t, err)
	assert.Equal(t, "Karim", found.FirstName)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Phone, byID.Phone)

	exists, err := users.PhoneExists(ctx, "01711000000")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = users.FindByPhone(ctx, "01800000000")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = users.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// unique phone
	assert.Error(t, users.Create(ctx, &models.User{Phone: "01711000000"}))
}

func TestConnect_Sqlite(t *testing.T) {
	db, err := Connect("sqlite", ":memory:", nil)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable(&models.Preference{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestConnect_Invalid(t *testing.T) {
	_, err := Connect("postgres", "dsn", nil)
	assert.Error(t, err)
	_, err = Connect("sqlite", "", nil)
	assert.Error(t, err)
}
