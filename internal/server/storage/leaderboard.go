package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	winsKey       = "leaderboard:wins"
	gamesKey      = "stats:games_total"
	lastWinPrefix = "stats:last_win:"

	defaultTopN = 10
	maxTopN     = 100
)

// WinEntry 排行榜条目
type WinEntry struct {
	Rank int
	Name string
	Wins int
}

// LeaderboardStore 全局胜场排行榜
// 只存跨局聚合数据，房间状态本身不落盘
type LeaderboardStore struct {
	redis *redis.Client
}

// NewLeaderboardStore 创建排行榜存储
func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{redis: client}
}

// RecordWin 记录一次胜场
func (ls *LeaderboardStore) RecordWin(ctx context.Context, playerName string) error {
	if playerName == "" {
		return nil
	}

	pipe := ls.redis.Pipeline()
	pipe.ZIncrBy(ctx, winsKey, 1, playerName)
	pipe.Incr(ctx, gamesKey)
	pipe.Set(ctx, lastWinPrefix+playerName, time.Now().Unix(), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("记录胜场失败: %w", err)
	}
	return nil
}

// GetTop 获取胜场前 limit 名
func (ls *LeaderboardStore) GetTop(ctx context.Context, limit int) ([]WinEntry, error) {
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}

	results, err := ls.redis.ZRevRangeWithScores(ctx, winsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]WinEntry, 0, len(results))
	for i, z := range results {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, WinEntry{
			Rank: i + 1,
			Name: name,
			Wins: int(z.Score),
		})
	}
	return entries, nil
}

// GetTotalGames 获取累计完成的对局数
func (ls *LeaderboardStore) GetTotalGames(ctx context.Context) (int64, error) {
	count, err := ls.redis.Get(ctx, gamesKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}
