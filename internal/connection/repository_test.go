package connection

import (
	"context"
	"testing"
	"time"

	"plusone_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ConnectionRequest{}, &Connection{}))
	return db
}

func TestConnectionRepository_FindBetweenIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMConnectionRepository(db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	conn := &Connection{User1ID: a, User2ID: b, ConnectionRequestID: uuid.New()}
	require.NoError(t, repo.Create(ctx, conn))

	found, err := repo.FindBetween(ctx, a, b)
	assert.NoError(t, err)
	assert.Equal(t, conn.ID, found.ID)

	// Reversed member order matches the same record.
	found, err = repo.FindBetween(ctx, b, a)
	assert.NoError(t, err)
	assert.Equal(t, conn.ID, found.ID)

	_, err = repo.FindBetween(ctx, a, c)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestConnectionRepository_CountForAccount(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMConnectionRepository(db)
	ctx := context.Background()

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, repo.Create(ctx, &Connection{User1ID: a, User2ID: b, ConnectionRequestID: uuid.New()}))
	require.NoError(t, repo.Create(ctx, &Connection{User1ID: c, User2ID: a, ConnectionRequestID: uuid.New()}))

	count, err := repo.CountForAccount(ctx, a)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountForAccount(ctx, b)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRequestRepository_UpdateStatusGuardsOnPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRequestRepository(db)
	ctx := context.Background()

	req := &ConnectionRequest{
		FromUserID: uuid.New(),
		ToUserID:   uuid.New(),
		Message:    "hello",
		Status:     RequestPending,
	}
	require.NoError(t, repo.Create(ctx, req))

	assert.NoError(t, repo.UpdateStatus(ctx, req, RequestAccepted))
	assert.Equal(t, RequestAccepted, req.Status)

	// A second transition loses the guard and leaves the row untouched.
	err := repo.UpdateStatus(ctx, req, RequestRejected)
	assert.ErrorIs(t, err, common.ErrInvalidState)

	stored, err := repo.FindByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, RequestAccepted, stored.Status)
}

func TestRequestRepository_FindByFromAndToReturnsLatest(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRequestRepository(db)
	ctx := context.Background()

	from, to := uuid.New(), uuid.New()

	older := &ConnectionRequest{FromUserID: from, ToUserID: to, Message: "first", Status: RequestRejected}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := &ConnectionRequest{FromUserID: from, ToUserID: to, Message: "second", Status: RequestPending}
	require.NoError(t, repo.Create(ctx, newer))

	found, err := repo.FindByFromAndTo(ctx, from, to)
	assert.NoError(t, err)
	assert.Equal(t, newer.ID, found.ID)

	// The ordered pair does not match in reverse.
	_, err = repo.FindByFromAndTo(ctx, to, from)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRequestRepository_FindAndCountByToAndStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGORMRequestRepository(db)
	ctx := context.Background()

	to := uuid.New()
	require.NoError(t, repo.Create(ctx, &ConnectionRequest{FromUserID: uuid.New(), ToUserID: to, Message: "a", Status: RequestPending}))
	require.NoError(t, repo.Create(ctx, &ConnectionRequest{FromUserID: uuid.New(), ToUserID: to, Message: "b", Status: RequestPending}))
	require.NoError(t, repo.Create(ctx, &ConnectionRequest{FromUserID: uuid.New(), ToUserID: to, Message: "c", Status: RequestRejected}))

	pending, err := repo.FindByToAndStatus(ctx, to, RequestPending)
	assert.NoError(t, err)
	assert.Len(t, pending, 2)

	count, err := repo.CountByToAndStatus(ctx, to, RequestPending)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
