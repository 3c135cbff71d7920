package handler

import (
	"github.com/palemoky/apples-to-apples/internal/protocol"
	"github.com/palemoky/apples-to-apples/internal/types"
)

// handleStartGame 处理房主开始游戏
func (h *Handler) handleStartGame(client types.ClientInterface) {
	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.Start(client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}

// handleSubmitCard 处理提交红卡
func (h *Handler) handleSubmitCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SubmitCardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.SubmitCard(client.GetPlayerID(), payload.CardID); err != nil {
		sendError(client, err)
	}
}

// handleJudgePick 处理裁判选牌
func (h *Handler) handleJudgePick(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.JudgePickPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.JudgePick(client.GetPlayerID(), payload.SubmissionID); err != nil {
		sendError(client, err)
	}
}

// handleNextRound 处理房主进入下一轮
func (h *Handler) handleNextRound(client types.ClientInterface) {
	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.NextRound(client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}

// handleRematch 处理重新开局
func (h *Handler) handleRematch(client types.ClientInterface) {
	// 维护模式下不允许开新对局
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停开启新对局"))
		return
	}

	r, err := h.currentRoom(client)
	if err != nil {
		sendError(client, err)
		return
	}

	if err := r.Rematch(client.GetPlayerID()); err != nil {
		sendError(client, err)
	}
}
