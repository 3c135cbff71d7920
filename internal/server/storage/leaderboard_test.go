package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LeaderboardStore {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewLeaderboardStore(client)
}

func TestLeaderboardStore_RecordAndTop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordWin(ctx, "甲"))
	require.NoError(t, store.RecordWin(ctx, "甲"))
	require.NoError(t, store.RecordWin(ctx, "乙"))

	entries, err := store.GetTop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "甲", entries[0].Name)
	assert.Equal(t, 2, entries[0].Wins)
	assert.Equal(t, "乙", entries[1].Name)
	assert.Equal(t, 1, entries[1].Wins)

	games, err := store.GetTotalGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), games)
}

func TestLeaderboardStore_EmptyName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordWin(ctx, ""))

	entries, err := store.GetTop(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboardStore_LimitClamped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordWin(ctx, "甲"))

	// limit <= 0 回落到默认值
	entries, err := store.GetTop(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	games, err := store.GetTotalGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), games)
}
