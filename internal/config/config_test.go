package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1780, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Game.WinScore)
	assert.Equal(t, 7, cfg.Game.HandSize)
	assert.Equal(t, 3, cfg.Game.MinPlayers)
	assert.Equal(t, 4, cfg.Game.RoomCodeLength)
	assert.NotContains(t, cfg.Game.RoomCodeChars, "O")
	assert.NotContains(t, cfg.Game.RoomCodeChars, "0")
	assert.Equal(t, 30*time.Minute, cfg.Game.RoomTimeoutDuration())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	content := `
server:
  host: 127.0.0.1
  port: 9000
game:
  win_score: 8
  min_players: 4
security:
  rate_limit:
    ban_duration: 5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Game.WinScore)
	assert.Equal(t, 4, cfg.Game.MinPlayers)
	assert.Equal(t, 5*time.Minute, cfg.Security.RateLimit.BanDurationTime())

	// 未配置的项回落到默认值
	assert.Equal(t, 7, cfg.Game.HandSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
