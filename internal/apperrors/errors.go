package apperrors

import (
	"github.com/zimocha/crazy-sevens/internal/protocol"
)

// GameError 游戏错误（房间和会话共享）
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "房间不存在"}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: "房间已满"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "您不在房间中"}
	ErrGameStarted  = &GameError{Code: protocol.ErrCodeGameStarted, Message: "游戏已开始"}
	ErrGameNotStart = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "游戏尚未开始"}
	ErrNotYourTurn  = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrIllegalPlay  = &GameError{Code: protocol.ErrCodeIllegalPlay, Message: "这手牌不合法"}
	ErrMustDraw     = &GameError{Code: protocol.ErrCodeMustDraw, Message: "请先结算欠下的摸牌"}
	ErrNotResponder = &GameError{Code: protocol.ErrCodeNotResponder, Message: "当前不由您应答"}
	ErrCannotAct    = &GameError{Code: protocol.ErrCodeCannotAct, Message: "当前阶段不允许该操作"}
)
