package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ba6/gatekeeper/internal/domain/space"
	"github.com/ba6/gatekeeper/internal/infrastructure/persistence/models"
	"github.com/ba6/gatekeeper/internal/shared/db"
	"github.com/ba6/gatekeeper/internal/shared/logger"
)

func TestSpaceMemberRepository_AddIsIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSpaceMemberRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	member, err := space.NewMember("space-1", "user-1")
	require.NoError(t, err)

	created, err := repo.Add(ctx, member)
	require.NoError(t, err)
	assert.True(t, created)

	again, err := space.NewMember("space-1", "user-1")
	require.NoError(t, err)
	created, err = repo.Add(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, gdb.Model(&models.SpaceMemberModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	found, err := repo.Get(ctx, "space-1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, space.RoleMember, found.Role())

	missing, err := repo.Get(ctx, "space-1", "user-2")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSpaceThreadRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewSpaceThreadRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	thread, err := space.NewThread("space-1", "user-1", "Roadmap")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, thread))

	found, err := repo.GetByID(ctx, thread.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Roadmap", found.Title())
	assert.Equal(t, "space-1", found.SpaceID())

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSpaceRepositories_TransactionRollback(t *testing.T) {
	gdb := setupTestDB(t)
	threads := NewSpaceThreadRepository(gdb, logger.NewNopLogger())
	messages := NewSpaceMessageRepository(gdb, logger.NewNopLogger())
	tm := db.NewTransactionManager(gdb)
	abort := errors.New("abort")

	thread, err := space.NewThread("space-1", "user-1", "Roadmap")
	require.NoError(t, err)
	threadID := thread.ID()
	msg, err := space.NewMessage("space-1", "user-1", "first", &threadID)
	require.NoError(t, err)

	err = tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := threads.Create(ctx, thread); err != nil {
			return err
		}
		if err := messages.Create(ctx, msg); err != nil {
			return err
		}
		return abort
	})
	assert.ErrorIs(t, err, abort)

	var threadCount, messageCount int64
	require.NoError(t, gdb.Model(&models.SpaceThreadModel{}).Count(&threadCount).Error)
	require.NoError(t, gdb.Model(&models.SpaceMessageModel{}).Count(&messageCount).Error)
	assert.Zero(t, threadCount)
	assert.Zero(t, messageCount)

	err = tm.RunInTransaction(context.Background(), func(ctx context.Context) error {
		if err := threads.Create(ctx, thread); err != nil {
			return err
		}
		return messages.Create(ctx, msg)
	})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(&models.SpaceMessageModel{}).Where("thread_id = ?", threadID).Count(&messageCount).Error)
	assert.Equal(t, int64(1), messageCount)
}
