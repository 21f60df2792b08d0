package notification_test

import (
	"context"
	"testing"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&notification.Notification{}))
	return db
}

func TestRepository_UnreadLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := notification.NewRepository(openTestDB(t))
	owner, other := uuid.New(), uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &notification.Notification{
			ID: uuid.New(), UserID: owner, Message: msg, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &notification.Notification{ID: uuid.New(), UserID: other, Message: "theirs"}))

	items, err := repo.FindAllByUser(ctx, owner.String())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Message)

	count, err := repo.CountUnreadByUser(ctx, owner.String())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	first := items[2]
	first.IsRead = true
	require.NoError(t, repo.Update(ctx, &first))

	count, err = repo.CountUnreadByUser(ctx, owner.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := repo.MarkAllReadByUser(ctx, owner.String())
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	updated, err = repo.MarkAllReadByUser(ctx, owner.String())
	require.NoError(t, err)
	assert.Zero(t, updated)

	theirs, err := repo.CountUnreadByUser(ctx, other.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), theirs)

	_, err = repo.FindByIDAndUser(ctx, other.String(), first.ID.String())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
