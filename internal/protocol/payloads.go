package protocol

// --- 客户端请求 Payloads ---

// ReconnectPayload 断线重连请求
type ReconnectPayload struct {
	Token    string `json:"token"`     // 重连令牌
	PlayerID string `json:"player_id"` // 玩家 ID
}

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomCode string `json:"room_code"`
}

// PlayCardsPayload 出牌请求。末张为 A 时 suit 为声明的新花色，
// activate 为 false 时功能牌按普通牌结算
type PlayCardsPayload struct {
	Cards    []CardInfo `json:"cards"`
	Suit     int        `json:"suit,omitempty"`
	Activate bool       `json:"activate"`
}

// DeflectPayload 连锁转嫁请求
type DeflectPayload struct {
	Card CardInfo `json:"card"`
}

// PlaySevenPayload 质疑请求
type PlaySevenPayload struct {
	Card CardInfo `json:"card"`
}

// CancelWindowPayload 取消窗口请求
type CancelWindowPayload struct {
	Card CardInfo `json:"card"`
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID       string `json:"player_id"`
	PlayerName     string `json:"player_name"`
	ReconnectToken string `json:"reconnect_token"` // 重连令牌
}

// ReconnectedPayload 重连成功响应
type ReconnectedPayload struct {
	PlayerID   string        `json:"player_id"`
	PlayerName string        `json:"player_name"`
	RoomCode   string        `json:"room_code,omitempty"`  // 如果在房间中
	GameState  *GameStateDTO `json:"game_state,omitempty"` // 如果在游戏中
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// PlayerOfflinePayload 玩家掉线通知
type PlayerOfflinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Timeout    int    `json:"timeout"` // 等待重连超时（秒）
}

// PlayerOnlinePayload 玩家上线通知
type PlayerOnlinePayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// RoomCreatedPayload 房间创建成功响应
type RoomCreatedPayload struct {
	RoomCode string     `json:"room_code"`
	Player   PlayerInfo `json:"player"`
}

// RoomJoinedPayload 加入房间成功响应
type RoomJoinedPayload struct {
	RoomCode string       `json:"room_code"`
	Player   PlayerInfo   `json:"player"`
	Players  []PlayerInfo `json:"players"` // 房间内所有玩家
}

// PlayerJoinedPayload 其他玩家加入通知
type PlayerJoinedPayload struct {
	Player PlayerInfo `json:"player"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PlayerReadyPayload 玩家准备通知
type PlayerReadyPayload struct {
	PlayerID string `json:"player_id"`
	Ready    bool   `json:"ready"`
}

// RoomListResultPayload 房间列表结果
type RoomListResultPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	RoomCode    string `json:"room_code"`
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
}

// GameStartPayload 游戏开始通知
type GameStartPayload struct {
	Players []PlayerInfo `json:"players"` // 按座位顺序排列
	Seat    int          `json:"seat"`    // 接收者自己的座位
}

// GameStateDTO 游戏状态快照。每个观察者收到的版本只含自己的手牌，
// 其余座位脱敏为手牌数量
type GameStateDTO struct {
	Phase        string     `json:"phase"`
	Seats        []SeatInfo `json:"seats"`
	Hand         []CardInfo `json:"hand"` // 观察者自己的手牌
	TopCard      CardInfo   `json:"top_card"`
	SuitOverride int        `json:"suit_override"` // -1 表示无变色
	Direction    int        `json:"direction"`     // 0 正向 1 反向
	Current      int        `json:"current"`
	DrawCount    int        `json:"draw_count"`
	SkipPending  bool       `json:"skip_pending"`
	DrawPileLeft int        `json:"draw_pile_left"`
	Interrupt    string     `json:"interrupt,omitempty"` // chain/dispute/jack/ace
	Responder    int        `json:"responder,omitempty"`
	Winner       int        `json:"winner"` // -1 表示未分胜负
	Turn         int        `json:"turn"`
}

// SeatInfo 座位信息（脱敏后）
type SeatInfo struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Seat       int    `json:"seat"`
	CardsCount int    `json:"cards_count"`
	Declared   bool   `json:"declared"`
	Penalty    bool   `json:"penalty"`
	Online     bool   `json:"online"`
	Bot        bool   `json:"bot"`
}

// TurnBeginPayload 回合开始通知
type TurnBeginPayload struct {
	PlayerID string `json:"player_id"`
	Seat     int    `json:"seat"`
	MustDraw bool   `json:"must_draw"` // 是否欠摸（必须先结算）
	Timeout  int    `json:"timeout"`   // 超时时间（秒）
}

// ActionWarningPayload 响应即将超时提醒
type ActionWarningPayload struct {
	PlayerID  string `json:"player_id"`
	Remaining int    `json:"remaining"` // 剩余秒数
}

// CardPlayedPayload 出牌通知
type CardPlayedPayload struct {
	PlayerID   string     `json:"player_id"`
	PlayerName string     `json:"player_name"`
	Cards      []CardInfo `json:"cards"`
	Suit       int        `json:"suit,omitempty"` // A 声明的花色
	Activated  bool       `json:"activated"`
	CardsLeft  int        `json:"cards_left"` // 剩余手牌数
}

// CardsDrawnPayload 摸牌通知。牌面只进自己的状态快照，这里只广播张数
type CardsDrawnPayload struct {
	PlayerID  string `json:"player_id"`
	Count     int    `json:"count"`
	CardsLeft int    `json:"cards_left"`
}

// ChainDeflectPayload 连锁转嫁通知
type ChainDeflectPayload struct {
	PlayerID  string   `json:"player_id"`
	Card      CardInfo `json:"card"`
	DrawCount int      `json:"draw_count"` // 转嫁后的累计罚摸
	Responder int      `json:"responder"`  // 新的应答座位
}

// ChainResolvedPayload 连锁结算通知
type ChainResolvedPayload struct {
	PlayerID  string `json:"player_id"`
	DrawCount int    `json:"draw_count"` // 结算的罚摸总数
}

// DisputeOpenedPayload 质疑开启/反制通知
type DisputeOpenedPayload struct {
	PlayerID  string   `json:"player_id"`
	Card      CardInfo `json:"card"`
	Kind      string   `json:"kind"` // effect/claim
	Cancelled bool     `json:"cancelled"`
	Responder int      `json:"responder"`
}

// DisputeSettledPayload 质疑裁定通知
type DisputeSettledPayload struct {
	Kind      string `json:"kind"`
	Cancelled bool   `json:"cancelled"` // 最终是否撤销
}

// WindowOpenedPayload J/A 窗口开启通知
type WindowOpenedPayload struct {
	PlayerID  string `json:"player_id"`
	Kind      string `json:"kind"`           // jack/ace
	Suit      int    `json:"suit,omitempty"` // A 声明的花色
	Responder int    `json:"responder"`
}

// WindowClosedPayload J/A 窗口关闭通知
type WindowClosedPayload struct {
	Kind      string   `json:"kind"`
	Cancelled bool     `json:"cancelled"`
	Card      CardInfo `json:"card,omitempty"` // 取消时打出的牌
}

// LastDeclaredPayload 报单牌通知
type LastDeclaredPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// GameOverPayload 游戏结束通知
type GameOverPayload struct {
	WinnerID    string       `json:"winner_id"`
	WinnerName  string       `json:"winner_name"`
	PlayerHands []PlayerHand `json:"player_hands"` // 所有玩家剩余手牌
}

// PlayerHand 玩家手牌信息（用于游戏结束展示）
type PlayerHand struct {
	PlayerID   string     `json:"player_id"`
	PlayerName string     `json:"player_name"`
	Cards      []CardInfo `json:"cards"`
}

// ChatPayload 聊天消息
type ChatPayload struct {
	SenderID   string `json:"sender_id,omitempty"`   // 发送者 ID (服务端填充)
	SenderName string `json:"sender_name,omitempty"` // 发送者名字 (服务端填充)
	Content    string `json:"content"`               // 消息内容
	Time       int64  `json:"time,omitempty"`        // 发送时间 (服务端填充)
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- 通用数据结构 ---

// PlayerInfo 玩家信息
type PlayerInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seat       int    `json:"seat"`        // 座位号 0-3
	Ready      bool   `json:"ready"`       // 是否准备
	CardsCount int    `json:"cards_count"` // 手牌数量
	Online     bool   `json:"online"`      // 是否在线
}

// CardInfo 牌信息
type CardInfo struct {
	Suit int `json:"suit"` // 花色: 0=黑桃, 1=红心, 2=梅花, 3=方块
	Rank int `json:"rank"` // 点数: 1=A, 2-10, 11=J, 12=Q, 13=K
}
