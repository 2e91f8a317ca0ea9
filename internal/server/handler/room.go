package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/zimocha/crazy-sevens/internal/apperrors"
	"github.com/zimocha/crazy-sevens/internal/protocol"
	"github.com/zimocha/crazy-sevens/internal/protocol/codec"
	"github.com/zimocha/crazy-sevens/internal/server/room"
	"github.com/zimocha/crazy-sevens/internal/server/session"
	"github.com/zimocha/crazy-sevens/internal/types"
)

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface) {
	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	r, err := h.roomManager.CreateRoom(client)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		return
	}

	h.sessionManager.SetRoom(client.GetID(), r.Code)

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: r.Code,
		Player:   r.GetPlayerInfo(client.GetID()),
	}))

	h.pushRoomList()
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.handleLeaveRoom(client)
	}

	r, err := h.roomManager.JoinRoom(client, payload.RoomCode)
	if err != nil {
		h.sendError(client, err)
		return
	}

	h.sessionManager.SetRoom(client.GetID(), r.Code)

	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: r.Code,
		Player:   r.GetPlayerInfo(client.GetID()),
		Players:  r.GetPlayerInfos(),
	}))

	h.pushRoomList()
}

// handleLeaveRoom 处理离开房间
func (h *Handler) handleLeaveRoom(client types.ClientInterface) {
	h.roomManager.LeaveRoom(client)
	h.sessionManager.SetRoom(client.GetID(), "")
	h.pushRoomList()
}

// handleReady 处理准备/取消准备
func (h *Handler) handleReady(client types.ClientInterface, ready bool) {
	if err := h.roomManager.SetPlayerReady(client, ready); err != nil {
		h.sendError(client, err)
	}
}

// handleGetRoomList 处理房间列表查询
func (h *Handler) handleGetRoomList(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListResultPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}

// pushRoomList 房间列表变化时推给大厅里的玩家
func (h *Handler) pushRoomList() {
	h.server.BroadcastToLobby(codec.MustNewMessage(protocol.MsgRoomListResult, protocol.RoomListResultPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}

// startGame 开局：建游戏会话并交给会话驱动
func (h *Handler) startGame(r *room.Room) {
	r.SetState(room.RoomStatePlaying)

	gs, err := session.NewGameSession(r, &h.config.Game, h.store, uint64(time.Now().UnixNano()))
	if err != nil {
		log.Printf("⚠️ 开局失败: 房间 %s, %v", r.Code, err)
		r.SetState(room.RoomStateWaiting)
		r.Broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "开局失败"))
		return
	}

	gs.OnGameOver = func(roomCode string) {
		h.SetGameSession(roomCode, nil)
		if ended := h.roomManager.GetRoom(roomCode); ended != nil {
			ended.SetState(room.RoomStateEnded)
		}
		// 结束的对局快照一小时后过期
		if err := h.store.SetRoomExpiration(context.Background(), roomCode, time.Hour); err != nil {
			log.Printf("⚠️ 设置房间 %s 过期失败: %v", roomCode, err)
		}
	}

	h.SetGameSession(r.Code, gs)
	gs.Start()

	// 开局的房间从可加入列表里消失
	h.pushRoomList()
}

// sendError 把业务错误转成协议错误消息
func (h *Handler) sendError(client types.ClientInterface, err error) {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		client.SendMessage(codec.NewErrorMessage(gameErr.Code))
		return
	}
	client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
