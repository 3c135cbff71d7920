package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	PlayerName string `json:"player_name"`
}

// JoinRoomPayload 加入房间请求
// PlayerID 非空且匹配房间内已有玩家时视为重连，任意阶段均可
type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
	PlayerID   string `json:"player_id,omitempty"` // 重连令牌
}

// SubmitCardPayload 提交红卡请求
type SubmitCardPayload struct {
	CardID string `json:"card_id"`
}

// JudgePickPayload 裁判选牌请求
type JudgePickPayload struct {
	SubmissionID string `json:"submission_id"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 数量，0 表示默认
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	ConnectionID string `json:"connection_id"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// OnlineCountPayload 在线人数更新
type OnlineCountPayload struct {
	Count int `json:"count"` // 当前在线人数
}

// JoinedPayload 加入/重连房间成功响应（仅发给本人）
// PlayerID 即重连令牌，客户端需要保存
type JoinedPayload struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
	IsHost   bool   `json:"is_host"`
	Rejoined bool   `json:"rejoined"`
}

// CardInfo 卡牌信息（仅 id + 文本，标签不进入协议）
type CardInfo struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlayerInfo 玩家公开信息（绝不包含手牌）
type PlayerInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Ready     bool   `json:"ready"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"is_host"`
}

// SubmissionInfo 匿名化的提交信息（任何阶段都不含玩家身份）
type SubmissionInfo struct {
	ID       string `json:"id"`
	CardID   string `json:"card_id"`
	CardText string `json:"card_text"`
}

// ScoreEntry 排名条目（按分数降序，同分按名字升序）
type ScoreEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// RoomUpdatePayload 房间公开快照（广播给房间内所有连接）
type RoomUpdatePayload struct {
	RoomCode          string           `json:"room_code"`
	Phase             string           `json:"phase"`
	Round             int              `json:"round"`
	HostID            string           `json:"host_id"`
	JudgeID           string           `json:"judge_id,omitempty"`
	LastWinnerID      string           `json:"last_winner_id,omitempty"` // 仅 score/game_over 阶段
	WinningSubmission string           `json:"winning_submission,omitempty"`
	GreenCard         *CardInfo        `json:"green_card,omitempty"`
	SubmissionCount   int              `json:"submission_count"`
	ExpectedCount     int              `json:"expected_count"`
	Players           []PlayerInfo     `json:"players"`
	Leaderboard       []ScoreEntry     `json:"leaderboard"`
	Submissions       []SubmissionInfo `json:"submissions,omitempty"` // 仅 judge_pick/score/game_over 阶段
}

// PlayerStatePayload 玩家私有状态（仅发给本人，绝不广播）
type PlayerStatePayload struct {
	Hand      []CardInfo `json:"hand"`
	Submitted bool       `json:"submitted"` // 本轮是否已提交
}

// CardsExhaustedPayload 绿卡耗尽通知
type CardsExhaustedPayload struct {
	RoomCode string `json:"room_code"`
}

// LeaderboardEntry 全局排行榜条目
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"player_name"`
	Wins       int    `json:"wins"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload 错误响应（仅发给出错的连接，绝不广播）
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
