package columnmapping_test

import (
	"context"
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepository_DeactivateOthersIsScopedToUser(t *testing.T) {
	ctx := context.Background()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(&columnmapping.ColumnMapping{}))

	repo := columnmapping.NewRepository(db)
	owner, other := uuid.New(), uuid.New()

	mk := func(user uuid.UUID, name string, active bool) *columnmapping.ColumnMapping {
		m := &columnmapping.ColumnMapping{ID: uuid.New(), UserID: user, Name: name, IsActive: active, Mapping: columnmapping.DefaultMapping()}
		require.NoError(t, repo.Create(ctx, m))
		return m
	}
	oldActive := mk(owner, "old", true)
	keep := mk(owner, "new", false)
	foreign := mk(other, "theirs", true)

	require.NoError(t, repo.DeactivateOthers(ctx, owner.String(), keep.ID.String()))

	got, err := repo.FindByIDAndUser(ctx, owner.String(), oldActive.ID.String())
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	theirs, err := repo.FindActiveByUser(ctx, other.String())
	require.NoError(t, err)
	assert.Equal(t, foreign.ID, theirs.ID)
	assert.Equal(t, "Employee ID", theirs.EmployeeID)

	_, err = repo.FindActiveByUser(ctx, owner.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByIDAndUser(ctx, other.String(), keep.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
