package handler

import (
	"log"

	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	// 已在房间中不允许再建房
	if client.GetRoom() != "" {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeUnknown, "请先退出当前房间"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r := h.rooms.CreateRoom(client, payload.PlayerName)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{
		RoomCode: r.Code,
		PlayerID: client.GetPlayerID(),
		IsHost:   true,
	}))

	log.Printf("🏠 玩家 %s 创建了房间 %s", client.GetName(), r.Code)
}

// handleJoinRoom 处理加入房间（携带 player_id 时为重连）
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 维护模式下只允许重连，不允许新玩家加入
	if h.server.IsMaintenanceMode() && payload.PlayerID == "" {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	if client.GetRoom() != "" {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeUnknown, "请先退出当前房间"))
		return
	}

	r, player, rejoined, err := h.rooms.JoinRoom(client, payload.RoomCode, payload.PlayerName, payload.PlayerID)
	if err != nil {
		sendError(client, err)
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgJoined, protocol.JoinedPayload{
		RoomCode: r.Code,
		PlayerID: player.ID,
		IsHost:   r.IsHost(player.ID),
		Rejoined: rejoined,
	}))

	if rejoined {
		log.Printf("🔁 玩家 %s 重连回房间 %s", player.Name, r.Code)
	} else {
		log.Printf("🚪 玩家 %s 加入了房间 %s", player.Name, r.Code)
	}
}

// handleToggleReady 处理准备状态切换
func (h *Handler) handleToggleReady(client types.ClientInterface) {
	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.ToggleReady(client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}
