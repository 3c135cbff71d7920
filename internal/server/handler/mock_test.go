package handler

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/apples-to-apples/internal/game/card"
	"github.com/palemoky/apples-to-apples/internal/game/room"
	"github.com/palemoky/apples-to-apples/internal/server/storage"
)

// fakeServer 提供测试用的服务器状态
type fakeServer struct {
	maintenance bool
	online      int
}

func (s *fakeServer) IsMaintenanceMode() bool { return s.maintenance }
func (s *fakeServer) GetOnlineCount() int     { return s.online }

// setupHandler builds a handler backed by a real room manager and a
// miniredis-backed leaderboard store.
func setupHandler(t *testing.T) (*Handler, *fakeServer, *storage.LeaderboardStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	lb := storage.NewLeaderboardStore(rdb)
	opts := room.DefaultOptions()
	opts.MinPlayers = 3
	rm := room.NewRoomManager(card.Builtin(), opts, lb, time.Hour)

	srv := &fakeServer{}
	h := NewHandler(srv, rm, lb)
	require.NotNil(t, h)
	return h, srv, lb
}
