package protocol

// 错误码
const (
	ErrCodeUnknown      = 1000
	ErrCodeInvalidMsg   = 1001
	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004 // 游戏已开始
	ErrCodeGameNotStart = 3001
	ErrCodeNotYourTurn  = 3002
	ErrCodeIllegalPlay  = 3003
	ErrCodeMustDraw     = 3004 // 欠摸未结算
	ErrCodeNotResponder = 3005 // 不是子协议的应答方
	ErrCodeCannotAct    = 3006 // 当前阶段不允许该操作
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:      "未知错误",
	ErrCodeInvalidMsg:   "无效的消息格式",
	ErrCodeRoomNotFound: "房间不存在",
	ErrCodeRoomFull:     "房间已满",
	ErrCodeNotInRoom:    "您不在房间中",
	ErrCodeGameStarted:  "游戏已开始",
	ErrCodeGameNotStart: "游戏尚未开始",
	ErrCodeNotYourTurn:  "还没轮到您",
	ErrCodeIllegalPlay:  "这手牌不合法",
	ErrCodeMustDraw:     "请先结算欠下的摸牌",
	ErrCodeNotResponder: "当前不由您应答",
	ErrCodeCannotAct:    "当前阶段不允许该操作",
}
