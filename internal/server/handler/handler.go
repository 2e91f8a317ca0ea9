package handler

import (
	"log"
	"sync"

	"github.com/zimocha/crazy-sevens/internal/config"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/server/room"
	"github.com/zimocha/crazy-sevens/internal/server/session"
	"github.com/zimocha/crazy-sevens/internal/server/storage"
	"github.com/zimocha/crazy-sevens/internal/types"
)

// Deps 处理器依赖
type Deps struct {
	Server         types.ServerInterface
	Config         *config.Config
	RoomManager    *room.RoomManager
	SessionManager *session.SessionManager
	Store          *storage.RedisStore
}

// Handler 消息处理器
type Handler struct {
	server         types.ServerInterface
	config         *config.Config
	roomManager    *room.RoomManager
	sessionManager *session.SessionManager
	store          *storage.RedisStore
	handlers       map[protocol.MessageType]handlerFunc
	games          map[string]*session.GameSession
	gamesMu        sync.RWMutex
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		server:         deps.Server,
		config:         deps.Config,
		roomManager:    deps.RoomManager,
		sessionManager: deps.SessionManager,
		store:          deps.Store,
		games:          make(map[string]*session.GameSession),
	}
	h.initHandlers()

	// 人齐且全员准备时开局
	h.roomManager.OnRoomReady = h.startGame

	return h
}

// GetGameSession 获取房间的游戏会话
func (h *Handler) GetGameSession(roomCode string) *session.GameSession {
	h.gamesMu.RLock()
	defer h.gamesMu.RUnlock()
	return h.games[roomCode]
}

// SetGameSession 设置房间的游戏会话，gs 为 nil 则移除
func (h *Handler) SetGameSession(roomCode string, gs *session.GameSession) {
	h.gamesMu.Lock()
	defer h.gamesMu.Unlock()
	if gs == nil {
		delete(h.games, roomCode)
	} else {
		h.games[roomCode] = gs
	}
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing:      h.handlePing,
		protocol.MsgReconnect: h.handleReconnect,

		// 房间操作
		protocol.MsgCreateRoom:  func(c types.ClientInterface, _ *protocol.Message) { h.handleCreateRoom(c) },
		protocol.MsgJoinRoom:    h.handleJoinRoom,
		protocol.MsgLeaveRoom:   func(c types.ClientInterface, _ *protocol.Message) { h.handleLeaveRoom(c) },
		protocol.MsgReady:       func(c types.ClientInterface, _ *protocol.Message) { h.handleReady(c, true) },
		protocol.MsgCancelReady: func(c types.ClientInterface, _ *protocol.Message) { h.handleReady(c, false) },
		protocol.MsgGetRoomList: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetRoomList(c) },

		// 游戏操作
		protocol.MsgPlayCards:     h.handlePlayCards,
		protocol.MsgDrawCard:      func(c types.ClientInterface, _ *protocol.Message) { h.handleDrawCard(c) },
		protocol.MsgEndTurn:       func(c types.ClientInterface, _ *protocol.Message) { h.handleEndTurn(c) },
		protocol.MsgDeclareLast:   func(c types.ClientInterface, _ *protocol.Message) { h.handleDeclareLast(c) },
		protocol.MsgDeflect:       h.handleDeflect,
		protocol.MsgResolveChain:  func(c types.ClientInterface, _ *protocol.Message) { h.handleResolveChain(c) },
		protocol.MsgPlaySeven:     h.handlePlaySeven,
		protocol.MsgAcceptDispute: func(c types.ClientInterface, _ *protocol.Message) { h.handleAcceptDispute(c) },
		protocol.MsgCancelWindow:  h.handleCancelWindow,
		protocol.MsgAcceptWindow:  func(c types.ClientInterface, _ *protocol.Message) { h.handleAcceptWindow(c) },

		// 聊天
		protocol.MsgChat: h.handleChat,
	}
}

// Handle 处理消息
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️ 未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}
