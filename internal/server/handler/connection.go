package handler

import (
	"log"
	"time"

	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/server/session"
	"github.com/zimocha/crazy-sevens/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	// 立即回复 pong
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连：凭令牌换回旧身份，
// 恢复房间绑定和对局计时，并下发观察者视角的状态快照
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 验证重连令牌
	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "重连令牌无效或已过期"))
		return
	}

	ps := h.sessionManager.GetSession(payload.PlayerID)
	if ps == nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "会话不存在"))
		return
	}

	// 换回旧身份：新连接废弃临时 ID，按旧 ID 注册
	if newID := client.GetID(); newID != ps.PlayerID {
		h.server.UnregisterClient(newID)
		h.sessionManager.DeleteSession(newID)
		client.SetIdentity(ps.PlayerID, ps.PlayerName)
	}
	h.server.RegisterClient(ps.PlayerID, client)

	h.sessionManager.SetOnline(ps.PlayerID)

	reconnected := protocol.ReconnectedPayload{
		PlayerID:   ps.PlayerID,
		PlayerName: ps.PlayerName,
	}

	// 如果在房间中，恢复房间绑定和对局状态
	if ps.RoomCode != "" {
		h.restoreRoomState(client, ps, &reconnected)
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgReconnected, reconnected))

	log.Printf("🔄 玩家 %s (%s) 重连成功", ps.PlayerName, ps.PlayerID)
}

// restoreRoomState 重连后恢复房间和对局
func (h *Handler) restoreRoomState(client types.ClientInterface, ps *session.PlayerSession, payload *protocol.ReconnectedPayload) {
	if h.roomManager.GetRoom(ps.RoomCode) == nil {
		return
	}

	if err := h.roomManager.ReconnectPlayer(ps.PlayerID, client, ps.RoomCode); err != nil {
		log.Printf("重连到房间失败: %v", err)
		return
	}
	payload.RoomCode = ps.RoomCode

	// 对局进行中：恢复计时并带上状态快照
	if gs := h.GetGameSession(ps.RoomCode); gs != nil {
		gs.PlayerOnline(ps.PlayerID)
		payload.GameState = gs.StateDTOFor(ps.PlayerID)
	}
}
