package handler

import (
	"errors"
	"log"

	"github.com/palemoky/apples-to-apples/internal/apperrors"
	"github.com/palemoky/apples-to-apples/internal/game/room"
	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/server/storage"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// Handler 消息处理器
type Handler struct {
	server      types.ServerInterface
	rooms       *room.RoomManager
	leaderboard *storage.LeaderboardStore
}

// NewHandler 创建处理器
func NewHandler(s types.ServerInterface, rooms *room.RoomManager, lb *storage.LeaderboardStore) *Handler {
	return &Handler{server: s, rooms: rooms, leaderboard: lb}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 房间操作
	case protocol.MsgCreateRoom:
		h.handleCreateRoom(client, msg)
	case protocol.MsgJoinRoom:
		h.handleJoinRoom(client, msg)
	case protocol.MsgToggleReady:
		h.handleToggleReady(client)

	// 游戏操作
	case protocol.MsgStartGame:
		h.handleStartGame(client)
	case protocol.MsgSubmitCard:
		h.handleSubmitCard(client, msg)
	case protocol.MsgJudgePick:
		h.handleJudgePick(client, msg)
	case protocol.MsgNextRound:
		h.handleNextRound(client)
	case protocol.MsgRematch:
		h.handleRematch(client)

	// 统计操作
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)
	case protocol.MsgGetOnlineCount:
		h.handleGetOnlineCount(client)

	default:
		log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// sendError 将错误下发给客户端，游戏错误带协议错误码
func sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(protocol.NewErrorMessageWithText(gameErr.Code, gameErr.Message))
		return
	}
	client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}

// currentRoom 解析客户端所在房间，未入房返回 ErrNotInRoom
func (h *Handler) currentRoom(client types.ClientInterface) (*room.Room, error) {
	code := client.GetRoom()
	if code == "" {
		return nil, apperrors.ErrNotInRoom
	}
	r := h.rooms.GetRoom(code)
	if r == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return r, nil
}
