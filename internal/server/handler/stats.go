package handler

import (
	"context"
	"time"

	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleGetLeaderboard 获取全局胜场排行榜
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		// 默认获取前 10
		payload = &protocol.GetLeaderboardPayload{Limit: 10}
	}

	entries, err := h.leaderboard.GetTop(context.Background(), payload.Limit)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "获取排行榜失败"))
		return
	}

	result := protocol.LeaderboardResultPayload{
		Entries: make([]protocol.LeaderboardEntry, 0, len(entries)),
	}
	for _, e := range entries {
		result.Entries = append(result.Entries, protocol.LeaderboardEntry{
			Rank:       e.Rank,
			PlayerName: e.Name,
			Wins:       e.Wins,
		})
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardResult, result))
}

// handleGetOnlineCount 获取在线人数
func (h *Handler) handleGetOnlineCount(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{
		Count: h.server.GetOnlineCount(),
	}))
}
