package apperrors

import (
	"github.com/palemoky/apples-to-apples/internal/protocol"
)

// GameError 游戏错误（携带协议错误码，便于处理器直接下发）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound        = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrGameAlreadyStarted  = &GameError{Code: protocol.ErrCodeGameAlreadyStarted, Message: "游戏已开始，无法加入"}
	ErrNotInRoom           = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrInsufficientPlayers = &GameError{Code: protocol.ErrCodeInsufficientPlayers, Message: "在线玩家人数不足"}
	ErrWrongPhase          = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不能进行该操作"}
	ErrNotAuthorized       = &GameError{Code: protocol.ErrCodeNotAuthorized, Message: "您没有权限进行该操作"}
	ErrDuplicateSubmission = &GameError{Code: protocol.ErrCodeDuplicateSubmission, Message: "本轮您已经提交过了"}
	ErrCardNotInHand       = &GameError{Code: protocol.ErrCodeCardNotInHand, Message: "这张牌不在您的手牌中"}
	ErrInvalidWinner       = &GameError{Code: protocol.ErrCodeInvalidWinner, Message: "无效的获胜卡片"}
)
