package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001
	ErrCodeRateLimit  = 1002 // 速率限制

	ErrCodeRoomNotFound        = 2001
	ErrCodeGameAlreadyStarted  = 2002 // 非重连玩家在开局后加入
	ErrCodeNotInRoom           = 2003
	ErrCodeInsufficientPlayers = 2004

	ErrCodeWrongPhase          = 3001 // 当前阶段不允许该操作
	ErrCodeNotAuthorized       = 3002 // 需要房主/裁判身份
	ErrCodeDuplicateSubmission = 3003
	ErrCodeCardNotInHand       = 3004
	ErrCodeInvalidWinner       = 3005

	ErrCodeServerMaintenance = 5003 // 服务器维护中
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "未知错误",
	ErrCodeInvalidMsg:          "无效的消息格式",
	ErrCodeRateLimit:           "请求过于频繁",
	ErrCodeRoomNotFound:        "房间不存在",
	ErrCodeGameAlreadyStarted:  "游戏已开始，无法加入",
	ErrCodeNotInRoom:           "您不在房间中",
	ErrCodeInsufficientPlayers: "在线玩家人数不足",
	ErrCodeWrongPhase:          "当前阶段不能进行该操作",
	ErrCodeNotAuthorized:       "您没有权限进行该操作",
	ErrCodeDuplicateSubmission: "本轮您已经提交过了",
	ErrCodeCardNotInHand:       "这张牌不在您的手牌中",
	ErrCodeInvalidWinner:       "无效的获胜卡片",
	ErrCodeServerMaintenance:   "服务器维护中",
}
