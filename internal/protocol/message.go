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
	MsgReconnect MessageType = "reconnect" // 断线重连
	MsgPing      MessageType = "ping"      // 心跳 ping

	// 房间操作
	MsgCreateRoom  MessageType = "create_room"  // 创建房间
	MsgJoinRoom    MessageType = "join_room"    // 加入房间
	MsgLeaveRoom   MessageType = "leave_room"   // 离开房间
	MsgReady       MessageType = "ready"        // 准备就绪
	MsgCancelReady MessageType = "cancel_ready" // 取消准备
	MsgGetRoomList MessageType = "get_room_list"

	// 游戏操作
	MsgPlayCards     MessageType = "play_cards"     // 出牌（含 A 的变色声明）
	MsgDrawCard      MessageType = "draw_card"      // 摸牌（主动或结算欠摸）
	MsgEndTurn       MessageType = "end_turn"       // 结束回合
	MsgDeclareLast   MessageType = "declare_last"   // 报单牌
	MsgDeflect       MessageType = "deflect"        // 连锁转嫁
	MsgResolveChain  MessageType = "resolve_chain"  // 接受连锁结算
	MsgPlaySeven     MessageType = "play_seven"     // 打出 7 质疑
	MsgAcceptDispute MessageType = "accept_dispute" // 接受质疑结果
	MsgCancelWindow  MessageType = "cancel_window"  // 取消 J/A 窗口
	MsgAcceptWindow  MessageType = "accept_window"  // 确认 J/A 窗口

	MsgChat MessageType = "chat" // 聊天消息
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected     MessageType = "connected"      // 连接成功
	MsgReconnected   MessageType = "reconnected"    // 重连成功
	MsgPong          MessageType = "pong"           // 心跳 pong
	MsgPlayerOffline MessageType = "player_offline" // 玩家掉线通知
	MsgPlayerOnline  MessageType = "player_online"  // 玩家上线通知

	// 房间相关
	MsgRoomCreated    MessageType = "room_created"  // 房间创建成功
	MsgRoomJoined     MessageType = "room_joined"   // 加入房间成功
	MsgPlayerJoined   MessageType = "player_joined" // 其他玩家加入
	MsgPlayerLeft     MessageType = "player_left"   // 玩家离开
	MsgPlayerReady    MessageType = "player_ready"  // 玩家准备
	MsgRoomListResult MessageType = "room_list_result"

	// 游戏流程
	MsgGameStart     MessageType = "game_start"      // 游戏开始
	MsgGameState     MessageType = "game_state"      // 状态快照（按观察者脱敏）
	MsgTurnBegin     MessageType = "turn_begin"      // 回合开始
	MsgActionWarning MessageType = "action_warning"  // 响应即将超时
	MsgCardPlayed    MessageType = "card_played"     // 有人出牌
	MsgCardsDrawn    MessageType = "cards_drawn"     // 有人摸牌
	MsgChainDeflect  MessageType = "chain_deflected" // 连锁被转嫁
	MsgChainResolved MessageType = "chain_resolved"  // 连锁已结算
	MsgDisputeOpened MessageType = "dispute_opened"  // 7 质疑开启/反制
	MsgDisputeSettle MessageType = "dispute_settled" // 质疑已裁定
	MsgWindowOpened  MessageType = "window_opened"   // J/A 窗口开启
	MsgWindowClosed  MessageType = "window_closed"   // J/A 窗口关闭
	MsgLastDeclared  MessageType = "last_declared"   // 有人报单牌
	MsgGameOver      MessageType = "game_over"       // 游戏结束

	// 错误
	MsgError MessageType = "error" // 错误消息
)
