package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create_room"  // 创建房间
	MsgJoinRoom    MessageType = "join_room"    // 加入房间（携带 player_id 时为重连）
	MsgToggleReady MessageType = "toggle_ready" // 切换准备状态

	// 游戏操作
	MsgStartGame  MessageType = "start_game"  // 房主开始游戏
	MsgSubmitCard MessageType = "submit_card" // 提交红卡
	MsgJudgePick  MessageType = "judge_pick"  // 裁判选出本轮获胜卡
	MsgNextRound  MessageType = "next_round"  // 房主进入下一轮
	MsgRematch    MessageType = "rematch"     // 游戏结束后重新开局

	// 信息查询
	MsgGetLeaderboard MessageType = "get_leaderboard"  // 获取全局胜场排行榜
	MsgGetOnlineCount MessageType = "get_online_count" // 获取在线人数
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected   MessageType = "connected"    // 连接成功
	MsgPong        MessageType = "pong"         // 心跳 pong
	MsgOnlineCount MessageType = "online_count" // 在线人数更新

	// 房间相关
	MsgJoined      MessageType = "joined"       // 加入/重连房间成功（仅发给本人）
	MsgRoomUpdate  MessageType = "room_update"  // 房间公开快照（广播）
	MsgPlayerState MessageType = "player_state" // 玩家私有状态（仅发给本人）

	// 游戏流程
	MsgCardsExhausted MessageType = "cards_exhausted" // 绿卡耗尽，本局终止

	// 排行榜
	MsgLeaderboardResult MessageType = "leaderboard_result" // 排行榜结果

	// 错误
	MsgError MessageType = "error" // 错误消息
)
