package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/testutil"
)

func TestHandlePing(t *testing.T) {
	t.Parallel()
	h, _, _ := setupHandler(t)

	c := testutil.NewSimpleClient("c1", "甲")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: 1234567890}))

	msg := c.LastMessageOfType(protocol.MsgPong)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890), payload.ClientTimestamp)
	assert.Positive(t, payload.ServerTimestamp)
}

func TestHandleGetLeaderboard(t *testing.T) {
	t.Parallel()
	h, _, lb := setupHandler(t)

	ctx := context.Background()
	require.NoError(t, lb.RecordWin(ctx, "甲"))
	require.NoError(t, lb.RecordWin(ctx, "甲"))
	require.NoError(t, lb.RecordWin(ctx, "乙"))

	c := testutil.NewSimpleClient("c1", "丙")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: 10}))

	msg := c.LastMessageOfType(protocol.MsgLeaderboardResult)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.LeaderboardResultPayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Entries, 2)
	assert.Equal(t, "甲", payload.Entries[0].PlayerName)
	assert.Equal(t, 2, payload.Entries[0].Wins)
	assert.Equal(t, 1, payload.Entries[0].Rank)
	assert.Equal(t, "乙", payload.Entries[1].PlayerName)
}

func TestHandleGetOnlineCount(t *testing.T) {
	t.Parallel()
	h, srv, _ := setupHandler(t)
	srv.online = 42

	c := testutil.NewSimpleClient("c1", "甲")
	h.Handle(c, protocol.MustNewMessage(protocol.MsgGetOnlineCount, nil))

	msg := c.LastMessageOfType(protocol.MsgOnlineCount)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.OnlineCountPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, 42, payload.Count)
}
